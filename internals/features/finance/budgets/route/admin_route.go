// file: internals/features/finance/budgets/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditSvc "schoolku_backend/internals/features/finance/audit/service"
	budgetController "schoolku_backend/internals/features/finance/budgets/controller"
)

// BudgetsAdminRoutes mendaftarkan endpoint anggaran (admin only).
func BudgetsAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &budgetController.BudgetHandler{
		DB:    db,
		Audit: auditSvc.NewRecorder(db),
	}

	admin.Put("/budgets", h.Upsert)
	admin.Get("/budgets/summary", h.Summary)
	admin.Get("/budgets/period-summary", h.PeriodSummary)
}
