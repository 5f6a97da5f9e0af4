// file: internals/features/finance/budgets/dto/budget_dto.go
package dto

import (
	"github.com/google/uuid"

	model "schoolku_backend/internals/features/finance/budgets/model"
)

/* =========================================================
   REQUEST
========================================================= */

type UpsertBudgetRequest struct {
	BudgetCategoryID uuid.UUID `json:"budget_category_id" validate:"required"`
	BudgetPeriodType string    `json:"budget_period_type" validate:"required,oneof=monthly yearly"`
	BudgetYear       int       `json:"budget_year" validate:"required"`
	BudgetMonth      int       `json:"budget_month" validate:"omitempty,min=1,max=12"`
	BudgetAmountIDR  int64     `json:"budget_amount_idr" validate:"min=0"`
}

/* =========================================================
   RESPONSE
========================================================= */

type BudgetResponse struct {
	BudgetID         uuid.UUID              `json:"budget_id"`
	BudgetCategoryID uuid.UUID              `json:"budget_category_id"`
	BudgetPeriodType model.BudgetPeriodType `json:"budget_period_type"`
	BudgetYear       int                    `json:"budget_year"`
	BudgetMonth      int                    `json:"budget_month,omitempty"`
	BudgetAmountIDR  int64                  `json:"budget_amount_idr"`
}

func FromModel(m *model.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:         m.BudgetID,
		BudgetCategoryID: m.BudgetCategoryID,
		BudgetPeriodType: m.BudgetPeriodType,
		BudgetYear:       m.BudgetYear,
		BudgetMonth:      m.BudgetMonth,
		BudgetAmountIDR:  m.BudgetAmountIDR,
	}
}
