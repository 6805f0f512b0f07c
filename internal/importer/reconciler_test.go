package importer

import (
	"errors"
	"testing"
	"time"

	"odeme-takip-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var importHeader = []string{"Vade Tarihi", "Çek No", "Banka", "Firma", "İş Grubu", "Açıklama", "Tutar"}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseTabularImport_EmptyDataset(t *testing.T) {
	_, err := ParseTabularImport(nil, day(2024, 1, 1))
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = ParseTabularImport([][]string{importHeader}, day(2024, 1, 1))
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestParseTabularImport_SchemaMismatch(t *testing.T) {
	rows := [][]string{
		{"Tarih", "Çek No", "Banka", "Firma", "İş Grubu", "Açıklama", "Tutar"},
		{"01.01.2024", "CK1", "Halk Bankası", "Firma A", "Grup A", "", "100"},
	}
	_, err := ParseTabularImport(rows, day(2024, 1, 1))

	var schemaErr *SchemaMismatchError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, rows[0], schemaErr.Headers)
}

func TestParseTabularImport_HeaderCaseInsensitive(t *testing.T) {
	rows := [][]string{
		{"VADE TARİHİ", "ÇEK NO", "BANKA", "FİRMA", "İŞ GRUBU", "AÇIKLAMA", "TUTAR"},
		{"01.01.2024", "CK1", "Halk Bankası", "Firma A", "Grup A", "", "100"},
	}
	result, err := ParseTabularImport(rows, day(2024, 1, 1))
	require.NoError(t, err)
	assert.Len(t, result.Drafts, 1)
}

func TestParseTabularImport_DropsInvalidRows(t *testing.T) {
	rows := [][]string{
		importHeader,
		{"01.01.2024", "", "Banka", "Firma", "Grup", "çek no boş", "100"},
		{"01.01.2024", "CK1", "", "Firma", "Grup", "banka boş", "100"},
		{"01.01.2024", "CK2", "Banka", "", "Grup", "firma boş", "100"},
		{"01.01.2024", "CK3", "Banka", "Firma", "", "iş grubu boş", "100"},
		{"01.01.2024", "CK4", "Banka", "Firma", "Grup", "tutar sıfır", "0"},
		{"01.01.2024", "CK5", "Banka", "Firma", "Grup", "tutar negatif", "-50"},
		{"01.01.2024", "CK6", "Banka", "Firma", "Grup", "tutar bozuk", "abc"},
		{"01.01.2024", "CK7", "Banka", "Firma"},
		{"01.01.2024", "CK8", "Banka", "Firma", "Grup", "geçerli", "250"},
	}
	result, err := ParseTabularImport(rows, day(2024, 1, 1))
	require.NoError(t, err)

	require.Len(t, result.Drafts, 1)
	assert.Equal(t, "CK8", result.Drafts[0].CheckNumber)
	assert.Equal(t, 250.0, result.TotalAmount)
}

func TestParseTabularImport_NoValidRows(t *testing.T) {
	rows := [][]string{
		importHeader,
		{"01.01.2024", "", "", "", "", "", ""},
	}
	_, err := ParseTabularImport(rows, day(2024, 1, 1))
	assert.ErrorIs(t, err, ErrNoValidRows)
}

func TestParseTabularImport_PastDueDetection(t *testing.T) {
	rows := [][]string{
		importHeader,
		{"01.01.2020", "CK1", "Banka", "Firma", "Grup", "vadesi geçti", "100"},
		{"01.01.2099", "CK2", "Banka", "Firma", "Grup", "vadesi gelecekte", "200"},
	}
	result, err := ParseTabularImport(rows, day(2024, 1, 1))
	require.NoError(t, err)

	require.Len(t, result.Drafts, 2)
	assert.Equal(t, []int{0}, result.PastDueIndices)
	assert.Equal(t, 100.0, result.PastDueTotal)
	assert.Equal(t, 300.0, result.TotalAmount)
}

func TestParseTabularImport_DueTodayIsNotPastDue(t *testing.T) {
	rows := [][]string{
		importHeader,
		{"01.01.2024", "CK1", "Banka", "Firma", "Grup", "", "100"},
	}
	result, err := ParseTabularImport(rows, day(2024, 1, 1))
	require.NoError(t, err)
	assert.Empty(t, result.PastDueIndices)
}

func TestParseTabularImport_PastDueIndicesSkipDroppedRows(t *testing.T) {
	// Düşen satır taslak listesine girmez, indeksler kalanlara göredir
	rows := [][]string{
		importHeader,
		{"01.01.2020", "", "Banka", "Firma", "Grup", "düşer", "100"},
		{"01.01.2020", "CK1", "Banka", "Firma", "Grup", "kalır", "100"},
	}
	result, err := ParseTabularImport(rows, day(2024, 1, 1))
	require.NoError(t, err)

	require.Len(t, result.Drafts, 1)
	assert.Equal(t, []int{0}, result.PastDueIndices)
}

func TestParseCellDate_Formats(t *testing.T) {
	fallback := day(2024, 1, 1)

	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"gün.ay.yıl", "15.03.2024", day(2024, 3, 15)},
		{"ISO", "2024-03-15", day(2024, 3, 15)},
		{"ay/gün/yıl", "03/15/2024", day(2024, 3, 15)},
		{"seri tarih", "45366", day(2024, 3, 15)},
		{"boş hücre fallback", "", fallback},
		{"bozuk tarih fallback", "bugün", fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseCellDate(tt.raw, fallback))
		})
	}
}

func TestParseCellAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"100", 100},
		{"1234.56", 1234.56},
		{"1.234,56", 1234.56},
		{"1,5", 1.5},
		{"₺ 2.500,00", 2500},
		{"-100", -100},
		{"abc", 0},
		{"", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseCellAmount(tt.raw), "raw=%q", tt.raw)
	}
}

func TestReconcilePastDue(t *testing.T) {
	drafts := []Draft{
		{DueDate: day(2020, 1, 1), CheckNumber: "CK1", Bank: "B", Company: "F", BusinessGroup: "G", Amount: 100},
		{DueDate: day(2099, 1, 1), CheckNumber: "CK2", Bank: "B", Company: "F", BusinessGroup: "G", Amount: 200},
	}

	t.Run("auto mark paid", func(t *testing.T) {
		payments := ReconcilePastDue(drafts, []int{0}, true)
		require.Len(t, payments, 2)
		assert.Equal(t, models.PaymentStatusPaid, payments[0].Status)
		assert.Equal(t, models.PaymentStatusPending, payments[1].Status)
		assert.NotEmpty(t, payments[0].ID)
		assert.NotEqual(t, payments[0].ID, payments[1].ID)
	})

	t.Run("without auto mark", func(t *testing.T) {
		payments := ReconcilePastDue(drafts, []int{0}, false)
		assert.Equal(t, models.PaymentStatusPending, payments[0].Status)
		assert.Equal(t, models.PaymentStatusPending, payments[1].Status)
	})
}

func TestSchemaMismatchError_MessageListsColumns(t *testing.T) {
	err := &SchemaMismatchError{Headers: []string{"x"}}
	var target *SchemaMismatchError
	assert.True(t, errors.As(error(err), &target))
	assert.Contains(t, err.Error(), "Vade Tarihi")
	assert.Contains(t, err.Error(), "Tutar")
}
