// file: internals/features/finance/balances/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditSvc "schoolku_backend/internals/features/finance/audit/service"
	balanceapi "schoolku_backend/internals/features/finance/balances/controller"
)

func BalancesAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &balanceapi.StudentBalanceHandler{DB: db, Audit: auditSvc.NewRecorder(db)}

	admin.Get("/student-balances/:student_id/:term_id", h.Get)
	admin.Put("/student-balances/total-fees", h.SetTotalFees)
	admin.Put("/student-balances/previous", h.SetPreviousBalance)
}
