package export

import (
	"testing"
	"time"

	"odeme-takip-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildWorkbook(t *testing.T) {
	payments := []models.Payment{
		{
			DueDate:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			CheckNumber:   "CK-100",
			Bank:          "Halk Bankası",
			Company:       "Firma A",
			BusinessGroup: "Grup A",
			Description:   "ilk çek",
			Amount:        1234.56,
			Status:        models.PaymentStatusPaid,
		},
		{
			DueDate:       time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			CheckNumber:   "CK-200",
			Bank:          "Ziraat Bankası",
			Company:       "Firma B",
			BusinessGroup: "Grup B",
			Amount:        500,
			Status:        models.PaymentStatusPending,
		},
	}

	f, err := BuildWorkbook(payments)
	require.NoError(t, err)
	defer f.Close()

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	reopened, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer reopened.Close()

	sheets := reopened.GetSheetList()
	require.Equal(t, []string{"Ödemeler"}, sheets)

	rows, err := reopened.GetRows("Ödemeler")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, excelHeaders, rows[0])
	assert.Equal(t, []string{"15.03.2024", "CK-100", "Halk Bankası", "Firma A", "Grup A", "ilk çek", "1.234,56", "Ödendi"}, rows[1])
	assert.Equal(t, "01.04.2024", rows[2][0])
	assert.Equal(t, "Ödenmedi", rows[2][7])
}

func TestBuildWorkbook_Empty(t *testing.T) {
	f, err := BuildWorkbook(nil)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Ödemeler")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, excelHeaders, rows[0])
}
