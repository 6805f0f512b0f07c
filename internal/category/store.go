package category

import (
	"fmt"

	"odeme-takip-backend/internal/models"

	"gorm.io/gorm"
)

// paymentColumn: Kategori türünün payments tablosundaki karşılığı
func paymentColumn(kind models.CategoryKind) (string, error) {
	switch kind {
	case models.CategoryBank:
		return "bank", nil
	case models.CategoryCompany:
		return "company", nil
	case models.CategoryBusinessGroup:
		return "business_group", nil
	default:
		return "", fmt.Errorf("bilinmeyen kategori türü: %s", kind)
	}
}

// ItemInUse: Öğe herhangi bir ödeme tarafından referans alınıyor mu?
// Referansı olan öğe silinemez.
func ItemInUse(db *gorm.DB, kind models.CategoryKind, name string) (bool, error) {
	column, err := paymentColumn(kind)
	if err != nil {
		return false, err
	}

	var count int64
	if err := db.Model(&models.Payment{}).Where(column+" = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ItemUsageStats: Öğenin kullanım sayısı ve toplam tutarı (yönetim ekranı için)
func ItemUsageStats(db *gorm.DB, kind models.CategoryKind, name string) (int64, float64, error) {
	column, err := paymentColumn(kind)
	if err != nil {
		return 0, 0, err
	}

	type row struct {
		Usage int64   `gorm:"column:usage"`
		Total float64 `gorm:"column:total"`
	}
	var r row
	err = db.Model(&models.Payment{}).
		Select("COUNT(*) as usage, COALESCE(SUM(amount), 0) as total").
		Where(column+" = ?", name).
		Scan(&r).Error
	if err != nil {
		return 0, 0, err
	}
	return r.Usage, r.Total, nil
}
