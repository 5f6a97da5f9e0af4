// file: internals/route/details/finance_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	balancesRoute "schoolku_backend/internals/features/finance/balances/route"
	budgetsRoute "schoolku_backend/internals/features/finance/budgets/route"
	categoriesRoute "schoolku_backend/internals/features/finance/categories/route"
	ledgerRoute "schoolku_backend/internals/features/finance/ledger/route"
	plansRoute "schoolku_backend/internals/features/finance/plans/route"
)

// FinanceAdminRoutes memasang seluruh fitur keuangan di group admin.
func FinanceAdminRoutes(admin fiber.Router, db *gorm.DB) {
	categoriesRoute.CategoriesAdminRoutes(admin, db)
	ledgerRoute.LedgerAdminRoutes(admin, db)
	balancesRoute.BalancesAdminRoutes(admin, db)
	plansRoute.PlansAdminRoutes(admin, db)
	budgetsRoute.BudgetsAdminRoutes(admin, db)
}
