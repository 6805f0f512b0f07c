package category

import (
	"fmt"
	"strings"

	"odeme-takip-backend/internal/database"
	"odeme-takip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CategoryResponse struct {
	ID    models.CategoryKind `json:"id"`
	Name  string              `json:"name"`
	Items []string            `json:"items"`
}

type ItemRequest struct {
	Name string `json:"name"`
}

type ReorderRequest struct {
	Items []string `json:"items"`
}

var categoryKinds = []models.CategoryKind{
	models.CategoryBank,
	models.CategoryCompany,
	models.CategoryBusinessGroup,
}

func kindFromParams(c *fiber.Ctx) (models.CategoryKind, error) {
	kind := models.CategoryKind(c.Params("kind"))
	if !models.ValidCategoryKind(kind) {
		return "", fiber.NewError(fiber.StatusBadRequest, "Geçersiz kategori türü (bank|company|businessGroup)")
	}
	return kind, nil
}

func loadItems(kind models.CategoryKind) ([]models.CategoryItem, error) {
	var items []models.CategoryItem
	err := database.DB.
		Where("kind = ?", kind).
		Order("sort_order ASC, id ASC").
		Find(&items).Error
	return items, err
}

// -------------------------------------------------
// GET /api/categories
// -------------------------------------------------
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp := make([]CategoryResponse, 0, len(categoryKinds))
		for _, kind := range categoryKinds {
			items, err := loadItems(kind)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Kategoriler listelenemedi")
			}

			names := make([]string, 0, len(items))
			for _, item := range items {
				names = append(names, item.Name)
			}

			resp = append(resp, CategoryResponse{
				ID:    kind,
				Name:  models.CategoryDisplayName(kind),
				Items: names,
			})
		}
		return c.JSON(resp)
	}
}

// -------------------------------------------------
// POST /api/categories/:kind/items
// -------------------------------------------------
func AddItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := kindFromParams(c)
		if err != nil {
			return err
		}

		var body ItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		name := strings.TrimSpace(body.Name)
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Öğe adı zorunlu")
		}

		var count int64
		database.DB.Model(&models.CategoryItem{}).
			Where("kind = ? AND name = ?", kind, name).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Bu öğe zaten mevcut")
		}

		// Yeni öğe listenin sonuna eklenir, sıra daha sonra değiştirilebilir
		var maxOrder int
		database.DB.Model(&models.CategoryItem{}).
			Where("kind = ?", kind).
			Select("COALESCE(MAX(sort_order), -1)").
			Scan(&maxOrder)

		item := models.CategoryItem{Kind: kind, Name: name, SortOrder: maxOrder + 1}
		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Öğe oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":   item.ID,
			"kind": item.Kind,
			"name": item.Name,
		})
	}
}

// -------------------------------------------------
// GET /api/categories/:kind/items/usage?name=...
// Yönetim ekranı: öğenin kaç ödemede geçtiği ve toplam tutarı
// -------------------------------------------------
func ItemUsageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := kindFromParams(c)
		if err != nil {
			return err
		}

		name := strings.TrimSpace(c.Query("name"))
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Öğe adı zorunlu")
		}

		usage, total, err := ItemUsageStats(database.DB, kind, name)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanım bilgisi alınamadı")
		}

		return c.JSON(fiber.Map{
			"name":         name,
			"usage_count":  usage,
			"total_amount": total,
			"in_use":       usage > 0,
		})
	}
}

// -------------------------------------------------
// DELETE /api/categories/:kind/items
// Ödeme tarafından kullanılan öğe silinemez
// -------------------------------------------------
func RemoveItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := kindFromParams(c)
		if err != nil {
			return err
		}

		var body ItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		name := strings.TrimSpace(body.Name)
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Öğe adı zorunlu")
		}

		var item models.CategoryItem
		if err := database.DB.Where("kind = ? AND name = ?", kind, name).First(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Öğe bulunamadı")
		}

		inUse, err := ItemInUse(database.DB, kind, name)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanım kontrolü yapılamadı")
		}
		if inUse {
			return fiber.NewError(fiber.StatusConflict,
				fmt.Sprintf("'%s' öğesi ödemeler tarafından kullanılıyor ve silinemez", name))
		}

		if err := database.DB.Delete(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Öğe silinemedi")
		}

		return c.JSON(fiber.Map{"message": "Öğe silindi"})
	}
}

// -------------------------------------------------
// PUT /api/categories/:kind/items/order
// Gövde mevcut öğelerin tam bir permütasyonu olmalı
// -------------------------------------------------
func ReorderItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := kindFromParams(c)
		if err != nil {
			return err
		}

		var body ReorderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		existing, err := loadItems(kind)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategoriler listelenemedi")
		}

		if len(body.Items) != len(existing) {
			return fiber.NewError(fiber.StatusBadRequest, "Sıralama mevcut öğelerin tamamını içermeli")
		}

		known := make(map[string]bool, len(existing))
		for _, item := range existing {
			known[item.Name] = true
		}
		seen := make(map[string]bool, len(body.Items))
		for _, name := range body.Items {
			if !known[name] || seen[name] {
				return fiber.NewError(fiber.StatusBadRequest, "Sıralama mevcut öğelerin tamamını içermeli")
			}
			seen[name] = true
		}

		if err := database.DB.Transaction(func(tx *gorm.DB) error {
			for i, name := range body.Items {
				if err := tx.Model(&models.CategoryItem{}).
					Where("kind = ? AND name = ?", kind, name).
					Update("sort_order", i).Error; err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sıralama güncellenemedi")
		}

		return c.JSON(fiber.Map{"message": "Sıralama güncellendi"})
	}
}
