package importer

import (
	"testing"
	"time"

	"odeme-takip-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBackupSnapshot_NotAnArray(t *testing.T) {
	for _, raw := range []string{`{"payments": []}`, `"text"`, `42`, `bozuk json`} {
		_, err := ParseBackupSnapshot([]byte(raw))
		assert.ErrorIs(t, err, ErrNotAnArray, "raw=%s", raw)
	}
}

func TestParseBackupSnapshot_EmptyArray(t *testing.T) {
	payments, err := ParseBackupSnapshot([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestParseBackupSnapshot_ValidRecord(t *testing.T) {
	raw := `[{
		"id": "abc-123",
		"dueDate": "2024-03-15T00:00:00Z",
		"checkNumber": "CK1",
		"bank": "Halk Bankası",
		"company": "Firma A",
		"businessGroup": "Grup A",
		"description": "açıklama",
		"amount": 1250.5,
		"status": "paid"
	}]`

	payments, err := ParseBackupSnapshot([]byte(raw))
	require.NoError(t, err)
	require.Len(t, payments, 1)

	p := payments[0]
	assert.Equal(t, "abc-123", p.ID)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), p.DueDate)
	assert.Equal(t, "CK1", p.CheckNumber)
	assert.Equal(t, "Halk Bankası", p.Bank)
	assert.Equal(t, 1250.5, p.Amount)
	assert.Equal(t, models.PaymentStatusPaid, p.Status)
}

func TestParseBackupSnapshot_DateOnlyFormat(t *testing.T) {
	raw := `[{
		"id": "abc", "dueDate": "2024-03-15", "checkNumber": "CK1",
		"bank": "B", "company": "F", "businessGroup": "G",
		"amount": 1, "status": "pending"
	}]`

	payments, err := ParseBackupSnapshot([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), payments[0].DueDate)
}

func TestParseBackupSnapshot_CollectsAllProblems(t *testing.T) {
	// İlk hatada durmaz, tüm kayıtların tüm alan hataları birlikte döner
	raw := `[
		{"id": "", "dueDate": "dün", "checkNumber": "CK1", "bank": "B",
		 "company": "F", "businessGroup": "G", "amount": "yüz", "status": "iptal"},
		"kayıt değil",
		{"id": "ok", "dueDate": "2024-01-01", "checkNumber": "CK2", "bank": "B",
		 "company": "F", "businessGroup": "G", "amount": 5, "status": "pending"}
	]`

	_, err := ParseBackupSnapshot([]byte(raw))

	var recErr *RecordValidationError
	require.ErrorAs(t, err, &recErr)

	fields := make(map[string]int)
	for _, p := range recErr.Problems {
		fields[p.Field]++
	}
	assert.Equal(t, 1, fields["id"])
	assert.Equal(t, 1, fields["dueDate"])
	assert.Equal(t, 1, fields["amount"])
	assert.Equal(t, 1, fields["status"])
	assert.Equal(t, 1, fields["kayıt"])

	assert.Contains(t, recErr.Error(), "kayıt 1:")
	assert.Contains(t, recErr.Error(), "kayıt 2:")
}

func TestParseBackupSnapshot_MissingFields(t *testing.T) {
	_, err := ParseBackupSnapshot([]byte(`[{}]`))

	var recErr *RecordValidationError
	require.ErrorAs(t, err, &recErr)

	var fields []string
	for _, p := range recErr.Problems {
		fields = append(fields, p.Field)
	}
	assert.ElementsMatch(t, []string{"id", "checkNumber", "bank", "company", "businessGroup", "dueDate", "amount", "status"}, fields)
}

func TestBackupSnapshot_RoundTrip(t *testing.T) {
	original := []models.Payment{
		{
			ID:            "id-1",
			DueDate:       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			CheckNumber:   "CK1",
			Bank:          "Halk Bankası",
			Company:       "Firma A",
			BusinessGroup: "Grup A",
			Description:   "ilk çek",
			Amount:        1234.56,
			Status:        models.PaymentStatusPending,
		},
		{
			ID:            "id-2",
			DueDate:       time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
			CheckNumber:   "CK2",
			Bank:          "Ziraat Bankası",
			Company:       "Firma B",
			BusinessGroup: "Grup B",
			Amount:        500,
			Status:        models.PaymentStatusPaid,
		},
	}

	raw, err := EncodeBackupSnapshot(original)
	require.NoError(t, err)

	restored, err := ParseBackupSnapshot(raw)
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}
