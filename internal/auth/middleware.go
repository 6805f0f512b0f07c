package auth

import (
	"fmt"
	"strings"

	"odeme-takip-backend/internal/config"
	"odeme-takip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUserIDKey      = "user_id"
	CtxUsernameKey    = "username"
	CtxPermissionsKey = "permissions"
)

// Permission: RequirePermission ile kontrol edilen yetki anahtarı
type Permission string

const (
	PermAdd              Permission = "add"
	PermEdit             Permission = "edit"
	PermDelete           Permission = "delete"
	PermChangeStatus     Permission = "changeStatus"
	PermManageCategories Permission = "manageCategories"
	PermManageUsers      Permission = "manageUsers"
)

// Yetki yoksa gösterilecek mesajlar
var permissionDeniedMessages = map[Permission]string{
	PermAdd:              "Ödeme ekleme yetkiniz bulunmamaktadır",
	PermEdit:             "Ödeme düzenleme yetkiniz bulunmamaktadır",
	PermDelete:           "Ödeme silme yetkiniz bulunmamaktadır",
	PermChangeStatus:     "Ödeme durumu değiştirme yetkiniz bulunmamaktadır",
	PermManageCategories: "Kategori yönetimi yetkiniz bulunmamaktadır",
	PermManageUsers:      "Kullanıcı yönetimi yetkiniz bulunmamaktadır",
}

func hasPermission(p models.Permissions, perm Permission) bool {
	switch perm {
	case PermAdd:
		return p.Add
	case PermEdit:
		return p.Edit
	case PermDelete:
		return p.Delete
	case PermChangeStatus:
		return p.ChangeStatus
	case PermManageCategories:
		return p.ManageCategories
	case PermManageUsers:
		return p.ManageUsers
	}
	return false
}

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header eksik")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization formatı 'Bearer <token>' olmalı")
		}

		tokenStr := parts[1]

		token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("geçersiz imzalama yöntemi")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Geçersiz veya süresi dolmuş token")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Token çözümlenemedi")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUsernameKey, claims.Username)
		c.Locals(CtxPermissionsKey, claims.Permissions)

		return c.Next()
	}
}

// RequirePermission: İlgili yetki bayrağı yoksa işlemi bildirimle reddeder.
func RequirePermission(perm Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		permsVal := c.Locals(CtxPermissionsKey)
		perms, ok := permsVal.(models.Permissions)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Yetki bilgisi alınamadı")
		}

		if hasPermission(perms, perm) {
			return c.Next()
		}

		msg, ok := permissionDeniedMessages[perm]
		if !ok {
			msg = "Bu işlem için yetkiniz yok"
		}
		return fiber.NewError(fiber.StatusForbidden, msg)
	}
}

// CurrentUserID: Middleware'in locals'a yazdığı kullanıcı id'sini döndürür.
func CurrentUserID(c *fiber.Ctx) (uint, error) {
	userID, ok := c.Locals(CtxUserIDKey).(uint)
	if !ok {
		return 0, fiber.NewError(fiber.StatusForbidden, "Kullanıcı bilgisi alınamadı")
	}
	return userID, nil
}

// CurrentUsername: Middleware'in locals'a yazdığı kullanıcı adını döndürür.
func CurrentUsername(c *fiber.Ctx) string {
	if name, ok := c.Locals(CtxUsernameKey).(string); ok {
		return name
	}
	return ""
}
