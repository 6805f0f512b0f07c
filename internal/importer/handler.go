package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"odeme-takip-backend/internal/audit"
	"odeme-takip-backend/internal/auth"
	"odeme-takip-backend/internal/database"
	"odeme-takip-backend/internal/models"
	"odeme-takip-backend/internal/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ImportSummaryResponse struct {
	Count         int     `json:"count"`
	TotalAmount   float64 `json:"total_amount"`
	PastDueCount  int     `json:"past_due_count"`
	PastDueAmount float64 `json:"past_due_amount"`
}

func summaryResponse(result *ImportResult) ImportSummaryResponse {
	return ImportSummaryResponse{
		Count:         len(result.Drafts),
		TotalAmount:   result.TotalAmount,
		PastDueCount:  len(result.PastDueIndices),
		PastDueAmount: result.PastDueTotal,
	}
}

// readUploadedSheet: Yüklenen xlsx dosyasının ilk sayfasındaki satırları okur.
func readUploadedSheet(c *fiber.Ctx) ([][]string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Dosya yüklenemedi: "+err.Error())
	}

	name := strings.ToLower(fileHeader.Filename)
	if !strings.HasSuffix(name, ".xlsx") && !strings.HasSuffix(name, ".xls") {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Sadece .xlsx/.xls dosyaları yüklenebilir")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Dosya açılamadı: "+err.Error())
	}
	defer file.Close()

	excelFile, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Excel dosyası okunamadı: "+err.Error())
	}
	defer excelFile.Close()

	sheetList := excelFile.GetSheetList()
	if len(sheetList) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Excel dosyasında sheet bulunamadı")
	}

	rows, err := excelFile.GetRows(sheetList[0])
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Sheet okunamadı: "+err.Error())
	}

	return rows, nil
}

// importErrorToFiber: Çözümleme hatalarını kullanıcıya dönen 400'lere çevirir.
func importErrorToFiber(err error) error {
	var schemaErr *SchemaMismatchError
	var recordErr *RecordValidationError
	switch {
	case errors.Is(err, ErrEmptyDataset),
		errors.Is(err, ErrNoValidRows),
		errors.Is(err, ErrNotAnArray),
		errors.As(err, &schemaErr),
		errors.As(err, &recordErr):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "İçe aktarma başarısız")
	}
}

// -------------------------------------------------
// POST /api/payments/import/preview
// Dosyayı çözümler, store'a dokunmaz; vadesi geçmiş sayısını döner
// -------------------------------------------------
func PreviewImportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := readUploadedSheet(c)
		if err != nil {
			return err
		}

		result, err := ParseTabularImport(rows, time.Now())
		if err != nil {
			return importErrorToFiber(err)
		}

		return c.JSON(summaryResponse(result))
	}
}

// -------------------------------------------------
// POST /api/payments/import?auto_mark_paid=true
// -------------------------------------------------
func ImportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := readUploadedSheet(c)
		if err != nil {
			return err
		}

		result, err := ParseTabularImport(rows, time.Now())
		if err != nil {
			return importErrorToFiber(err)
		}

		autoMarkPaid := c.FormValue("auto_mark_paid") == "true" || c.Query("auto_mark_paid") == "true"
		payments := ReconcilePastDue(result.Drafts, result.PastDueIndices, autoMarkPaid)

		if err := database.DB.Transaction(func(tx *gorm.DB) error {
			return tx.CreateInBatches(payments, 200).Error
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlar oluşturulamadı")
		}

		writeAuditLog(c, models.AuditActionImport,
			fmt.Sprintf("Excel'den %d ödeme aktarıldı", len(payments)),
			fiber.Map{"count": len(payments), "auto_mark_paid": autoMarkPaid})

		return c.Status(fiber.StatusCreated).JSON(summaryResponse(result))
	}
}

// -------------------------------------------------
// GET /api/payments/backup
// -------------------------------------------------
func BackupHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		payments, err := payment.LoadAll()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ödemeler yüklenemedi")
		}

		data, err := EncodeBackupSnapshot(payments)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yedek oluşturulamadı")
		}

		fileName := fmt.Sprintf("odeme_takip_yedek_%s.json", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
		return c.Send(data)
	}
}

// -------------------------------------------------
// POST /api/payments/restore
// Doğrulama geçerse store'u tek transaction içinde tamamen değiştirir
// -------------------------------------------------
func RestoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya yüklenemedi: "+err.Error())
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya açılamadı: "+err.Error())
		}
		defer file.Close()

		raw, err := io.ReadAll(file)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya okunamadı: "+err.Error())
		}

		payments, err := ParseBackupSnapshot(raw)
		if err != nil {
			return importErrorToFiber(err)
		}

		if err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("1 = 1").Delete(&models.Payment{}).Error; err != nil {
				return err
			}
			if len(payments) == 0 {
				return nil
			}
			return tx.CreateInBatches(payments, 200).Error
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Geri yükleme başarısız")
		}

		writeAuditLog(c, models.AuditActionRestore,
			fmt.Sprintf("Yedekten %d ödeme geri yüklendi", len(payments)),
			fiber.Map{"count": len(payments)})

		return c.JSON(fiber.Map{
			"message": "Veriler başarıyla geri yüklendi!",
			"count":   len(payments),
		})
	}
}

func writeAuditLog(c *fiber.Ctx, action models.AuditAction, description string, after any) {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return
	}
	_ = audit.WriteLog(audit.LogOptions{
		UserID:      userID,
		UserName:    auth.CurrentUsername(c),
		EntityType:  "payment",
		Action:      action,
		Description: description,
		After:       after,
	})
}
