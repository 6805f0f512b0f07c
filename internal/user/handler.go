package user

import (
	"fmt"
	"strings"

	"odeme-takip-backend/internal/auth"
	"odeme-takip-backend/internal/database"
	"odeme-takip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type UserRequest struct {
	Username    string             `json:"username"`
	Password    string             `json:"password"` // boşsa güncellemede şifre değişmez
	Permissions models.Permissions `json:"permissions"`
}

type UserResponse struct {
	ID          uint               `json:"id"`
	Username    string             `json:"username"`
	Permissions models.Permissions `json:"permissions"`
}

func toResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Permissions: u.Permissions(),
	}
}

func parseUserID(c *fiber.Ctx) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı ID")
	}
	return id, nil
}

// -------------------------------------------------
// GET /api/users
// -------------------------------------------------
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("id ASC").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcılar listelenemedi")
		}

		resp := make([]UserResponse, 0, len(users))
		for i := range users {
			resp = append(resp, toResponse(&users[i]))
		}
		return c.JSON(resp)
	}
}

// -------------------------------------------------
// POST /api/users
// -------------------------------------------------
func CreateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı ve şifre zorunlu")
		}
		if len(body.Password) < 6 {
			return fiber.NewError(fiber.StatusBadRequest, "Şifre en az 6 karakter olmalı")
		}

		var count int64
		database.DB.Model(&models.User{}).Where("username = ?", body.Username).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Bu kullanıcı adı zaten kullanılıyor")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		u := models.User{
			Username:     body.Username,
			PasswordHash: string(hash),
		}
		u.SetPermissions(body.Permissions)

		if err := database.DB.Create(&u).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&u))
	}
}

// -------------------------------------------------
// PUT /api/users/:id
// -------------------------------------------------
func UpdateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseUserID(c)
		if err != nil {
			return err
		}

		var body UserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var u models.User
		if err := database.DB.First(&u, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		if username := strings.TrimSpace(body.Username); username != "" && username != u.Username {
			var count int64
			database.DB.Model(&models.User{}).
				Where("username = ? AND id <> ?", username, id).
				Count(&count)
			if count > 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Bu kullanıcı adı zaten kullanılıyor")
			}
			u.Username = username
		}

		if body.Password != "" {
			if len(body.Password) < 6 {
				return fiber.NewError(fiber.StatusBadRequest, "Şifre en az 6 karakter olmalı")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
			}
			u.PasswordHash = string(hash)
		}

		u.SetPermissions(body.Permissions)

		if err := database.DB.Save(&u).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı güncellenemedi")
		}

		return c.JSON(toResponse(&u))
	}
}

// -------------------------------------------------
// DELETE /api/users/:id
// -------------------------------------------------
func DeleteUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseUserID(c)
		if err != nil {
			return err
		}

		currentID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		if id == currentID {
			return fiber.NewError(fiber.StatusBadRequest, "Kendi hesabınızı silemezsiniz")
		}

		var u models.User
		if err := database.DB.First(&u, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		if err := database.DB.Delete(&u).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı silinemedi")
		}

		return c.JSON(fiber.Map{"message": "Kullanıcı silindi"})
	}
}
