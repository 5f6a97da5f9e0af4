// file: internals/features/finance/budgets/controller/budget_controller.go
package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditSvc "schoolku_backend/internals/features/finance/audit/service"
	"schoolku_backend/internals/features/finance/budgets/dto"
	"schoolku_backend/internals/features/finance/budgets/model"
	"schoolku_backend/internals/features/finance/budgets/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type BudgetHandler struct {
	DB    *gorm.DB
	Audit *auditSvc.Recorder
}

// =======================================================
// UPSERT
// =======================================================

// PUT /budgets
func (h *BudgetHandler) Upsert(c *fiber.Ctx) error {
	actor, err := helperAuth.GetIdentityFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.UpsertBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	row, err := service.UpsertBudget(c.UserContext(), h.DB, service.UpsertBudgetInput{
		SchoolID:   actor.SchoolID,
		CategoryID: req.BudgetCategoryID,
		PeriodType: model.BudgetPeriodType(req.BudgetPeriodType),
		Year:       req.BudgetYear,
		Month:      req.BudgetMonth,
		AmountIDR:  req.BudgetAmountIDR,
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	h.Audit.Record(actor, "budget.upsert", "budget", &row.BudgetID, "", nil, dto.FromModel(row))

	return helper.JsonOK(c, "Anggaran disimpan", dto.FromModel(row))
}

// =======================================================
// SUMMARY
// =======================================================

func parsePeriodQuery(c *fiber.Ctx) (model.BudgetPeriodType, int, int, error) {
	periodType := model.BudgetPeriodType(c.Query("period_type", string(model.BudgetPeriodMonthly)))

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return "", 0, 0, fiber.NewError(fiber.StatusBadRequest, "Parameter year wajib berupa angka")
	}

	month := 0
	if m := c.Query("month"); m != "" {
		month, err = strconv.Atoi(m)
		if err != nil {
			return "", 0, 0, fiber.NewError(fiber.StatusBadRequest, "Parameter month tidak valid")
		}
	}
	return periodType, year, month, nil
}

// GET /budgets/summary?category_id=&period_type=&year=&month=
func (h *BudgetHandler) Summary(c *fiber.Ctx) error {
	actor, err := helperAuth.GetIdentityFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	categoryID, err := uuid.Parse(c.Query("category_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "category_id tidak valid")
	}
	periodType, year, month, err := parsePeriodQuery(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	sum, err := service.Summarize(c.UserContext(), h.DB, actor.SchoolID, categoryID, periodType, year, month)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", sum)
}

// GET /budgets/period-summary?period_type=&year=&month=
func (h *BudgetHandler) PeriodSummary(c *fiber.Ctx) error {
	actor, err := helperAuth.GetIdentityFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	periodType, year, month, err := parsePeriodQuery(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	sums, err := service.SummarizePeriod(c.UserContext(), h.DB, actor.SchoolID, periodType, year, month)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", sums)
}
