package export

import (
	"fmt"

	"odeme-takip-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Ödemeler"

var excelHeaders = []string{
	"Vade Tarihi",
	"Çek No",
	"Banka",
	"Firma",
	"İş Grubu",
	"Açıklama",
	"Tutar",
	"Durum",
}

var excelColumnWidths = []float64{12, 15, 20, 20, 15, 30, 15, 10}

// BuildWorkbook: Ödeme listesini ekran tablosuyla aynı 8 sütunlu xlsx
// çalışma kitabına çevirir.
func BuildWorkbook(payments []models.Payment) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("sheet adlandırılamadı: %w", err)
	}

	for i, header := range excelHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}

		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, col, col, excelColumnWidths[i]); err != nil {
			return nil, err
		}
	}

	for rowIdx, p := range payments {
		values := []any{
			p.DueDate.Format("02.01.2006"),
			p.CheckNumber,
			p.Bank,
			p.Company,
			p.BusinessGroup,
			p.Description,
			FormatTurkishAmount(p.Amount),
			StatusLabel(p.Status),
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
