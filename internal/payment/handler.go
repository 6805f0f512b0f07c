package payment

import (
	"strings"
	"time"

	"odeme-takip-backend/internal/audit"
	"odeme-takip-backend/internal/auth"
	"odeme-takip-backend/internal/database"
	"odeme-takip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type PaymentRequest struct {
	DueDate       string  `json:"due_date"` // "2006-01-02" biçiminde
	CheckNumber   string  `json:"check_number"`
	Bank          string  `json:"bank"`
	Company       string  `json:"company"`
	BusinessGroup string  `json:"business_group"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
}

type StatusRequest struct {
	Status models.PaymentStatus `json:"status"`
}

type ClearRequest struct {
	Password string `json:"password"`
}

// LoadAll: Tüm ödemeleri ekleniş sırasıyla yükler.
func LoadAll() ([]models.Payment, error) {
	var payments []models.Payment
	if err := database.DB.Order("seq ASC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *PaymentRequest) validate() (time.Time, error) {
	r.CheckNumber = strings.TrimSpace(r.CheckNumber)
	r.Bank = strings.TrimSpace(r.Bank)
	r.Company = strings.TrimSpace(r.Company)
	r.BusinessGroup = strings.TrimSpace(r.BusinessGroup)
	r.Description = strings.TrimSpace(r.Description)

	if r.CheckNumber == "" || r.Bank == "" || r.Company == "" || r.BusinessGroup == "" {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Çek no, banka, firma ve iş grubu zorunlu")
	}
	if r.Amount <= 0 {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Tutar 0'dan büyük olmalı")
	}

	dueDate, err := time.Parse("2006-01-02", r.DueDate)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Tarih formatı geçersiz, 'YYYY-MM-DD' olmalı")
	}
	return dueDate, nil
}

// -------------------------------------------------
// GET /api/payments
// -------------------------------------------------
func ListPaymentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		payments, err := LoadAll()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ödemeler listelenemedi")
		}

		filtered := FilterFromQuery(c).Apply(payments)

		return c.JSON(fiber.Map{
			"payments":     filtered,
			"count":        len(filtered),
			"total_amount": SumAmounts(filtered),
		})
	}
}

// -------------------------------------------------
// GET /api/payments/summary
// -------------------------------------------------
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		payments, err := LoadAll()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ödemeler listelenemedi")
		}

		return c.JSON(BuildSummary(payments, time.Now()))
	}
}

// -------------------------------------------------
// POST /api/payments
// -------------------------------------------------
func CreatePaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		dueDate, err := body.validate()
		if err != nil {
			return err
		}

		// Manuel eklenen kayıt her zaman pending başlar
		p := models.Payment{
			ID:            uuid.NewString(),
			DueDate:       dueDate,
			CheckNumber:   body.CheckNumber,
			Bank:          body.Bank,
			Company:       body.Company,
			BusinessGroup: body.BusinessGroup,
			Description:   body.Description,
			Amount:        body.Amount,
			Status:        models.PaymentStatusPending,
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt oluşturulamadı")
		}

		writeAuditLog(c, models.AuditActionCreate, p.ID, "Ödeme eklendi: "+p.CheckNumber, nil, p)

		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// -------------------------------------------------
// PUT /api/payments/:id
// id ve status dışındaki tüm alanları değiştirir
// -------------------------------------------------
func UpdatePaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var existing models.Payment
		if err := database.DB.First(&existing, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ödeme bulunamadı")
		}

		var body PaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		dueDate, err := body.validate()
		if err != nil {
			return err
		}

		before := existing

		existing.DueDate = dueDate
		existing.CheckNumber = body.CheckNumber
		existing.Bank = body.Bank
		existing.Company = body.Company
		existing.BusinessGroup = body.BusinessGroup
		existing.Description = body.Description
		existing.Amount = body.Amount

		if err := database.DB.Save(&existing).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt güncellenemedi")
		}

		writeAuditLog(c, models.AuditActionUpdate, existing.ID, "Ödeme güncellendi: "+existing.CheckNumber, before, existing)

		return c.JSON(existing)
	}
}

// -------------------------------------------------
// PATCH /api/payments/:id/status
// -------------------------------------------------
func ChangeStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body StatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		switch body.Status {
		case models.PaymentStatusPaid, models.PaymentStatusPending:
			// ok
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz durum (paid|pending)")
		}

		var existing models.Payment
		if err := database.DB.First(&existing, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ödeme bulunamadı")
		}

		before := existing
		existing.Status = body.Status

		if err := database.DB.Save(&existing).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Durum güncellenemedi")
		}

		writeAuditLog(c, models.AuditActionStatusChange, existing.ID, "Ödeme durumu değiştirildi: "+existing.CheckNumber, before, existing)

		return c.JSON(existing)
	}
}

// -------------------------------------------------
// DELETE /api/payments/:id
// -------------------------------------------------
func DeletePaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var existing models.Payment
		if err := database.DB.First(&existing, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ödeme bulunamadı")
		}

		if err := database.DB.Delete(&existing).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt silinemedi")
		}

		writeAuditLog(c, models.AuditActionDelete, existing.ID, "Ödeme silindi: "+existing.CheckNumber, existing, nil)

		return c.JSON(fiber.Map{"message": "Ödeme silindi"})
	}
}

// -------------------------------------------------
// DELETE /api/payments
// Tüm kayıtları temizler; mevcut şifrenin yeniden doğrulanmasını ister
// -------------------------------------------------
func ClearPaymentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body ClearRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı bulunamadı")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Geçersiz şifre")
		}

		var count int64
		database.DB.Model(&models.Payment{}).Count(&count)

		if err := database.DB.Where("1 = 1").Delete(&models.Payment{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlar silinemedi")
		}

		writeAuditLog(c, models.AuditActionClear, "", "Tüm ödeme verileri temizlendi", nil, fiber.Map{"deleted_count": count})

		return c.JSON(fiber.Map{"message": "Tüm ödeme verileri temizlendi", "deleted_count": count})
	}
}

// writeAuditLog: Audit yazımı işlemin başarısını etkilemez, hata yutulur.
func writeAuditLog(c *fiber.Ctx, action models.AuditAction, entityID, description string, before, after any) {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return
	}
	_ = audit.WriteLog(audit.LogOptions{
		UserID:      userID,
		UserName:    auth.CurrentUsername(c),
		EntityType:  "payment",
		EntityID:    entityID,
		Action:      action,
		Description: description,
		Before:      before,
		After:       after,
	})
}
