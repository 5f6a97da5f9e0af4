// file: internals/features/finance/balances/controller/student_balance_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditSvc "schoolku_backend/internals/features/finance/audit/service"
	"schoolku_backend/internals/features/finance/balances/dto"
	"schoolku_backend/internals/features/finance/balances/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type StudentBalanceHandler struct {
	DB    *gorm.DB
	Audit *auditSvc.Recorder
}

// GET /student-balances/:student_id/:term_id
func (h *StudentBalanceHandler) Get(c *fiber.Ctx) error {
	actor, err := helperAuth.GetIdentityFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
	}
	termID, err := uuid.Parse(c.Params("term_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "term_id tidak valid")
	}

	row, err := service.GetBalance(c.UserContext(), h.DB, actor.SchoolID, studentID, termID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.FromModel(row))
}

// PUT /student-balances/total-fees
func (h *StudentBalanceHandler) SetTotalFees(c *fiber.Ctx) error {
	actor, err := helperAuth.GetIdentityFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.SetTotalFeesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if err := service.SetTotalFees(c.UserContext(), h.DB, actor.SchoolID,
		req.StudentBalanceStudentID, req.StudentBalanceTermID, req.StudentBalanceTotalFeesIDR); err != nil {
		return helper.JsonFromError(c, err)
	}

	h.Audit.Record(actor, "balance.set_total_fees", "student_balance", nil,
		"", nil, req)

	row, err := service.GetBalance(c.UserContext(), h.DB, actor.SchoolID,
		req.StudentBalanceStudentID, req.StudentBalanceTermID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Total tagihan diperbarui", dto.FromModel(row))
}

// PUT /student-balances/previous
func (h *StudentBalanceHandler) SetPreviousBalance(c *fiber.Ctx) error {
	actor, err := helperAuth.GetIdentityFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.SetPreviousBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if err := service.SetPreviousBalance(c.UserContext(), h.DB, actor.SchoolID,
		req.StudentBalanceStudentID, req.StudentBalanceTermID, req.StudentBalancePreviousIDR); err != nil {
		return helper.JsonFromError(c, err)
	}

	h.Audit.Record(actor, "balance.set_previous", "student_balance", nil,
		"", nil, req)

	row, err := service.GetBalance(c.UserContext(), h.DB, actor.SchoolID,
		req.StudentBalanceStudentID, req.StudentBalanceTermID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Saldo bawaan diperbarui", dto.FromModel(row))
}
