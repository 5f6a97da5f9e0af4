// file: internals/features/finance/ledger/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditSvc "schoolku_backend/internals/features/finance/audit/service"
	ledgerapi "schoolku_backend/internals/features/finance/ledger/controller"
	"schoolku_backend/internals/features/finance/ledger/service"
)

/*
Admin routes — buku kas (income/expense + void + kwitansi).
*/
func LedgerAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &ledgerapi.TransactionHandler{
		DB:       db,
		Audit:    auditSvc.NewRecorder(db),
		Renderer: &service.TextReceiptRenderer{},
	}

	admin.Post("/incomes", h.CreateIncome)
	admin.Post("/expenses", h.CreateExpense)

	admin.Get("/transactions", h.List)
	admin.Get("/transactions/:id", h.Detail)
	admin.Patch("/transactions/:id", h.Amend)
	admin.Post("/transactions/:id/void", h.Void)

	admin.Get("/incomes/:id/receipt", h.RenderReceipt)
}
