// file: internals/features/finance/plans/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditSvc "schoolku_backend/internals/features/finance/audit/service"
	planController "schoolku_backend/internals/features/finance/plans/controller"
	planSvc "schoolku_backend/internals/features/finance/plans/service"
)

// PlansAdminRoutes mendaftarkan endpoint plan cicilan (admin only).
func PlansAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &planController.PaymentPlanHandler{
		DB:        db,
		Audit:     auditSvc.NewRecorder(db),
		Messenger: &planSvc.LogMessenger{},
	}

	admin.Post("/payment-plans", h.CreatePlan)
	admin.Delete("/payment-plans/:id", h.DeletePlan)

	admin.Post("/student-plans", h.AssignPlan)

	admin.Post("/installments/sweep-overdue", h.SweepOverdue)
	admin.Post("/installments/:id/payments", h.RecordPayment)
	admin.Post("/installments/:id/reminder", h.SendReminder)
}
