package main

import (
	"log"
	"strings"

	"odeme-takip-backend/internal/audit"
	"odeme-takip-backend/internal/auth"
	"odeme-takip-backend/internal/category"
	"odeme-takip-backend/internal/config"
	"odeme-takip-backend/internal/database"
	"odeme-takip-backend/internal/export"
	"odeme-takip-backend/internal/importer"
	"odeme-takip-backend/internal/payment"
	"odeme-takip-backend/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Post("/auth/change-password", auth.ChangePasswordHandler())

	// Ödemeler
	protected.Get("/payments", payment.ListPaymentsHandler())
	protected.Get("/payments/summary", payment.SummaryHandler())
	protected.Post("/payments", auth.RequirePermission(auth.PermAdd), payment.CreatePaymentHandler())
	protected.Put("/payments/:id", auth.RequirePermission(auth.PermEdit), payment.UpdatePaymentHandler())
	protected.Patch("/payments/:id/status", auth.RequirePermission(auth.PermChangeStatus), payment.ChangeStatusHandler())
	protected.Delete("/payments/:id", auth.RequirePermission(auth.PermDelete), payment.DeletePaymentHandler())
	protected.Delete("/payments", auth.RequirePermission(auth.PermDelete), payment.ClearPaymentsHandler())

	// Excel içe aktarma
	protected.Post("/payments/import/preview", importer.PreviewImportHandler())
	protected.Post("/payments/import", auth.RequirePermission(auth.PermAdd), importer.ImportHandler())

	// Yedekleme / geri yükleme
	protected.Get("/payments/backup", importer.BackupHandler())
	protected.Post("/payments/restore", auth.RequirePermission(auth.PermAdd), importer.RestoreHandler())

	// Dışa aktarma
	protected.Get("/payments/export/excel", export.ExcelExportHandler())
	protected.Get("/payments/export/pdf", export.PDFExportHandler())

	// Kategoriler
	protected.Get("/categories", category.ListCategoriesHandler())
	categoryRoutes := protected.Group("/categories", auth.RequirePermission(auth.PermManageCategories))
	categoryRoutes.Get("/:kind/items/usage", category.ItemUsageHandler())
	categoryRoutes.Post("/:kind/items", category.AddItemHandler())
	categoryRoutes.Delete("/:kind/items", category.RemoveItemHandler())
	categoryRoutes.Put("/:kind/items/order", category.ReorderItemsHandler())

	// Kullanıcı yönetimi
	userRoutes := protected.Group("/users", auth.RequirePermission(auth.PermManageUsers))
	userRoutes.Get("/", user.ListUsersHandler())
	userRoutes.Post("/", user.CreateUserHandler())
	userRoutes.Put("/:id", user.UpdateUserHandler())
	userRoutes.Delete("/:id", user.DeleteUserHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())
	protected.Post("/audit-logs/:id/undo", audit.UndoAuditLogHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
