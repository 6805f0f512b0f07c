package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"odeme-takip-backend/internal/database"
	"odeme-takip-backend/internal/models"
)

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    string
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(opts LogOptions) error {
	// PostgreSQL jsonb için boş string yerine "null" JSON string'i kullanmalıyız
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
		IsUndone:    false,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}

	return nil
}

// UndoLog - Tek bir ödeme işlemini geri alır. Toplu işlemler (import, restore,
// clear) geri alınamaz.
func UndoLog(logID uint, userID uint, userName string) error {
	var entry models.AuditLog
	if err := database.DB.First(&entry, "id = ?", logID).Error; err != nil {
		return fmt.Errorf("log bulunamadı: %w", err)
	}

	if entry.IsUndone {
		return fmt.Errorf("bu işlem zaten geri alınmış")
	}

	if entry.EntityType != "payment" {
		return fmt.Errorf("bilinmeyen entity tipi: %s", entry.EntityType)
	}

	switch entry.Action {
	case models.AuditActionCreate:
		// Create ise ödemeyi sil
		if err := database.DB.Delete(&models.Payment{}, "id = ?", entry.EntityID).Error; err != nil {
			return fmt.Errorf("ödeme silinemedi: %w", err)
		}

	case models.AuditActionUpdate, models.AuditActionStatusChange:
		// Önceki haline geri döndür
		if err := restorePayment(entry.EntityID, entry.BeforeData); err != nil {
			return fmt.Errorf("ödeme geri yüklenemedi: %w", err)
		}

	case models.AuditActionDelete:
		// Delete ise ödemeyi aynı id ile geri oluştur
		if err := recreatePayment(entry.BeforeData); err != nil {
			return fmt.Errorf("ödeme geri oluşturulamadı: %w", err)
		}

	default:
		return fmt.Errorf("bu işlem türü geri alınamaz")
	}

	now := time.Now()
	entry.IsUndone = true
	entry.UndoneBy = &userID
	entry.UndoneAt = &now

	if err := database.DB.Save(&entry).Error; err != nil {
		return fmt.Errorf("log güncellenemedi: %w", err)
	}

	undoEntry := models.AuditLog{
		UserID:      userID,
		UserName:    userName,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		Action:      models.AuditActionUndo,
		Description: fmt.Sprintf("Geri alındı: %s", entry.Description),
		BeforeData:  entry.AfterData,
		AfterData:   entry.BeforeData,
	}

	if err := database.DB.Create(&undoEntry).Error; err != nil {
		return fmt.Errorf("undo log kaydedilemedi: %w", err)
	}

	return nil
}

func restorePayment(paymentID string, dataJSON string) error {
	var payment models.Payment
	if err := json.Unmarshal([]byte(dataJSON), &payment); err != nil {
		return err
	}
	return database.DB.Model(&models.Payment{}).
		Where("id = ?", paymentID).
		Updates(map[string]any{
			"due_date":       payment.DueDate,
			"check_number":   payment.CheckNumber,
			"bank":           payment.Bank,
			"company":        payment.Company,
			"business_group": payment.BusinessGroup,
			"description":    payment.Description,
			"amount":         payment.Amount,
			"status":         payment.Status,
		}).Error
}

func recreatePayment(dataJSON string) error {
	var payment models.Payment
	if err := json.Unmarshal([]byte(dataJSON), &payment); err != nil {
		return err
	}
	payment.Seq = 0 // yeni sıra numarası alsın
	return database.DB.Create(&payment).Error
}
