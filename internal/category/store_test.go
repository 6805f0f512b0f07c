package category

import (
	"regexp"
	"testing"

	"odeme-takip-backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestPaymentColumn(t *testing.T) {
	tests := []struct {
		kind models.CategoryKind
		want string
	}{
		{models.CategoryBank, "bank"},
		{models.CategoryCompany, "company"},
		{models.CategoryBusinessGroup, "business_group"},
	}
	for _, tt := range tests {
		got, err := paymentColumn(tt.kind)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := paymentColumn(models.CategoryKind("renk"))
	assert.Error(t, err)
}

func TestItemInUse(t *testing.T) {
	t.Run("referenced item", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "payments" WHERE bank = $1`)).
			WithArgs("Halk Bankası").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		inUse, err := ItemInUse(db, models.CategoryBank, "Halk Bankası")
		require.NoError(t, err)
		assert.True(t, inUse)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unreferenced item", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "payments" WHERE company = $1`)).
			WithArgs("Firma X").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		inUse, err := ItemInUse(db, models.CategoryCompany, "Firma X")
		require.NoError(t, err)
		assert.False(t, inUse)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown kind", func(t *testing.T) {
		db, _ := newMockDB(t)

		_, err := ItemInUse(db, models.CategoryKind("renk"), "x")
		assert.Error(t, err)
	})
}

func TestItemUsageStats(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) as usage, COALESCE(SUM(amount), 0) as total FROM "payments" WHERE business_group = $1`)).
		WithArgs("Grup A").
		WillReturnRows(sqlmock.NewRows([]string{"usage", "total"}).AddRow(5, 12500.75))

	usage, total, err := ItemUsageStats(db, models.CategoryBusinessGroup, "Grup A")
	require.NoError(t, err)
	assert.Equal(t, int64(5), usage)
	assert.Equal(t, 12500.75, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
