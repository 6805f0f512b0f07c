package models

import "time"

type CategoryKind string

const (
	CategoryBank          CategoryKind = "bank"
	CategoryCompany       CategoryKind = "company"
	CategoryBusinessGroup CategoryKind = "businessGroup"
)

// CategoryItem: Seçim listelerini besleyen kategori öğesi (banka, firma, iş grubu).
// Sıralama kullanıcı tarafından yönetilir, sort_order anlamlıdır.
type CategoryItem struct {
	ID        uint         `gorm:"primaryKey"`
	Kind      CategoryKind `gorm:"size:20;not null;uniqueIndex:idx_category_items_kind_name"`
	Name      string       `gorm:"size:100;not null;uniqueIndex:idx_category_items_kind_name"`
	SortOrder int          `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryDisplayName: Kategori türünün ekranda görünen adı
func CategoryDisplayName(kind CategoryKind) string {
	switch kind {
	case CategoryBank:
		return "Banka"
	case CategoryCompany:
		return "Firma"
	case CategoryBusinessGroup:
		return "İş Grubu"
	default:
		return string(kind)
	}
}

// ValidCategoryKind: Bilinen bir kategori türü mü?
func ValidCategoryKind(kind CategoryKind) bool {
	switch kind {
	case CategoryBank, CategoryCompany, CategoryBusinessGroup:
		return true
	}
	return false
}
