package export

import (
	"fmt"
	"time"

	"odeme-takip-backend/internal/payment"

	"github.com/gofiber/fiber/v2"
)

// -------------------------------------------------
// GET /api/payments/export/excel
// Liste filtreleriyle aynı query parametrelerini kabul eder
// -------------------------------------------------
func ExcelExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		payments, err := payment.LoadAll()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ödemeler yüklenemedi")
		}
		filtered := payment.FilterFromQuery(c).Apply(payments)

		f, err := BuildWorkbook(filtered)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
		}

		fileName := fmt.Sprintf("odemeler_%s.xlsx", time.Now().Format("02_01_2006"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
		return c.Send(buf.Bytes())
	}
}

// -------------------------------------------------
// GET /api/payments/export/pdf
// -------------------------------------------------
func PDFExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		payments, err := payment.LoadAll()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ödemeler yüklenemedi")
		}
		filtered := payment.FilterFromQuery(c).Apply(payments)

		data, err := BuildPDF(filtered, time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "PDF dosyası oluşturulamadı")
		}

		fileName := fmt.Sprintf("odeme_raporu_%s.pdf", time.Now().Format("02_01_2006"))
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
		return c.Send(data)
	}
}
