package export

import (
	"bytes"
	"fmt"
	"time"

	"odeme-takip-backend/internal/models"
	"odeme-takip-backend/internal/payment"

	"github.com/jung-kurt/gofpdf"
)

var pdfHeaders = []string{"Vade", "Cek No", "Banka", "Firma", "Is Grubu", "Aciklama", "Tutar", "Durum"}

var pdfColumnWidths = []float64{25, 25, 35, 35, 35, 50, 25, 20}

// BuildPDF: Yatay A4 rapor: özet bloğu ve ardından detay tablosu. Temel
// fontlarla uyum için metinler ASCII'ye çevrilir.
func BuildPDF(payments []models.Payment, now time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Odeme Takip Raporu", false)
	pdf.SetAuthor("Odeme Takip Sistemi", false)
	pdf.AliasNbPages("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Sayfa %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "ODEME TAKIP RAPORU", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Olusturma Tarihi: "+now.Format("02.01.2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Özet bloğu
	totalAmount := payment.SumAmounts(payments)
	paidAmount := payment.SumAmounts(filterByStatus(payments, models.PaymentStatusPaid))
	pendingAmount := totalAmount - paidAmount

	summaryRows := [][2]string{
		{"Toplam Odeme:", fmt.Sprintf("%d adet", len(payments))},
		{"Toplam Tutar:", FormatTurkishAmount(totalAmount) + " TL"},
		{"Odenen:", FormatTurkishAmount(paidAmount) + " TL"},
		{"Kalan:", FormatTurkishAmount(pendingAmount) + " TL"},
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(63, 81, 181)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(80, 7, "OZET BILGILER", "1", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range summaryRows {
		pdf.CellFormat(40, 6, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// Detay tablosu
	tableWidth := 0.0
	for _, w := range pdfColumnWidths {
		tableWidth += w
	}
	leftMargin := (pageWidth - tableWidth) / 2
	pdf.SetX(leftMargin)

	drawTableHeader(pdf, leftMargin)

	pdf.SetFont("Helvetica", "", 8)
	for _, p := range payments {
		// Sayfa sonuna yaklaşınca yeni sayfa açıp başlığı tekrarla
		if pdf.GetY() > 180 {
			pdf.AddPage()
			pdf.SetX(leftMargin)
			drawTableHeader(pdf, leftMargin)
			pdf.SetFont("Helvetica", "", 8)
		}

		cells := []string{
			p.DueDate.Format("02.01.2006"),
			TransliterateTurkish(p.CheckNumber),
			TransliterateTurkish(p.Bank),
			TransliterateTurkish(p.Company),
			TransliterateTurkish(p.BusinessGroup),
			TransliterateTurkish(p.Description),
			FormatTurkishAmount(p.Amount),
			TransliterateTurkish(StatusLabel(p.Status)),
		}

		pdf.SetX(leftMargin)
		for i, cell := range cells {
			align := "L"
			if i == 6 {
				align = "R"
			}
			if i == 7 {
				align = "C"
			}
			pdf.CellFormat(pdfColumnWidths[i], 6, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableHeader(pdf *gofpdf.Fpdf, leftMargin float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(63, 81, 181)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetX(leftMargin)
	for i, header := range pdfHeaders {
		pdf.CellFormat(pdfColumnWidths[i], 7, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

func filterByStatus(payments []models.Payment, status models.PaymentStatus) []models.Payment {
	out := make([]models.Payment, 0, len(payments))
	for _, p := range payments {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out
}
