package database

import (
	"log"

	"odeme-takip-backend/internal/config"
	"odeme-takip-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.CategoryItem{},
		&models.Payment{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	seedDefaultAdmin()
	seedDefaultCategories()

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// seedDefaultAdmin: Hiç kullanıcı yoksa tüm yetkilere sahip varsayılan admin oluşturur.
// İlk girişten sonra şifre mutlaka değiştirilmeli.
func seedDefaultAdmin() {
	var count int64
	DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Varsayılan admin şifresi hashlenemedi: %v", err)
	}

	admin := models.User{
		Username:            "altay",
		PasswordHash:        string(hash),
		CanAdd:              true,
		CanEdit:             true,
		CanDelete:           true,
		CanChangeStatus:     true,
		CanManageCategories: true,
		CanManageUsers:      true,
	}

	if err := DB.Create(&admin).Error; err != nil {
		log.Fatalf("Varsayılan admin oluşturulamadı: %v", err)
	}
	log.Println("[WARN] Varsayılan admin kullanıcısı oluşturuldu (altay). Şifreyi hemen değiştir!")
}

var defaultCategoryItems = map[models.CategoryKind][]string{
	models.CategoryBank: {
		"Halk Bankası",
		"Halk Bankası Hamiline",
		"Ziraat Bankası",
		"Ziraat Bankası Hamiline",
		"Deniz Bank",
	},
	models.CategoryCompany: {
		"DOĞU İNŞAAT",
		"DOĞU İNŞAAT HAMİLİNE",
		"ALTAY",
		"ALTAY HAMİLİNE",
		"ONURAY İNŞAAT",
	},
	models.CategoryBusinessGroup: {
		"KULU",
		"CİHANBEYLİ",
		"AKHİSAR",
		"AKSARAY",
		"ESENYURT",
		"SHİFA",
		"KONYA OKUL",
		"OKUL ONARIM",
		"HATIR ÇEKİ",
		"DİĞER",
	},
}

// seedDefaultCategories: Kategori tablosu boşsa başlangıç öğelerini yükler.
func seedDefaultCategories() {
	var count int64
	DB.Model(&models.CategoryItem{}).Count(&count)
	if count > 0 {
		return
	}

	for _, kind := range []models.CategoryKind{models.CategoryBank, models.CategoryCompany, models.CategoryBusinessGroup} {
		for i, name := range defaultCategoryItems[kind] {
			item := models.CategoryItem{Kind: kind, Name: name, SortOrder: i}
			if err := DB.Create(&item).Error; err != nil {
				log.Fatalf("Varsayılan kategori öğesi oluşturulamadı (%s/%s): %v", kind, name, err)
			}
		}
	}
	log.Println("Varsayılan kategori öğeleri yüklendi.")
}
