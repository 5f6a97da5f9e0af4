// file: internals/features/finance/categories/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	categoryController "schoolku_backend/internals/features/finance/categories/controller"
)

// CategoriesAdminRoutes mendaftarkan endpoint kategori transaksi (admin only).
func CategoriesAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &categoryController.TransactionCategoryHandler{DB: db}

	admin.Get("/transaction-categories", h.List)
	admin.Post("/transaction-categories", h.Create)
	admin.Patch("/transaction-categories/:id", h.Update)
	admin.Delete("/transaction-categories/:id", h.Delete)
}
