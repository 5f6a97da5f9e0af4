// file: internals/features/finance/plans/controller/payment_plan_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditSvc "schoolku_backend/internals/features/finance/audit/service"
	"schoolku_backend/internals/features/finance/plans/dto"
	"schoolku_backend/internals/features/finance/plans/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

// =======================================================
// BOOTSTRAP
// =======================================================

type PaymentPlanHandler struct {
	DB        *gorm.DB
	Audit     *auditSvc.Recorder
	Messenger service.Messenger
}

// =======================================================
// TEMPLATE PLAN
// =======================================================

// POST /payment-plans
func (h *PaymentPlanHandler) CreatePlan(c *fiber.Ctx) error {
	actor, err := helperAuth.GetIdentityFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.CreatePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	plan, err := service.CreatePlan(c.UserContext(), h.DB, service.CreatePlanInput{
		SchoolID:         actor.SchoolID,
		Name:             req.PaymentPlanName,
		TotalAmountIDR:   req.PaymentPlanTotalAmountIDR,
		InstallmentCount: req.PaymentPlanInstallmentCount,
		TermID:           req.PaymentPlanTermID,
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	h.Audit.Record(actor, "payment_plan.create", "payment_plan", &plan.PaymentPlanID,
		plan.PaymentPlanName, nil, dto.PlanFromModel(plan))

	return helper.JsonCreated(c, "Plan pembayaran dibuat", dto.PlanFromModel(plan))
}

// DELETE /payment-plans/:id
func (h *PaymentPlanHandler) DeletePlan(c *fiber.Ctx) error {
	actor, err := helperAuth.GetIdentityFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID plan tidak valid")
	}

	if err := service.DeletePlan(c.UserContext(), h.DB, actor.SchoolID, id); err != nil {
		return helper.JsonFromError(c, err)
	}

	h.Audit.Record(actor, "payment_plan.delete", "payment_plan", &id, "", nil, nil)

	return helper.JsonOK(c, "Plan pembayaran dihapus", fiber.Map{"payment_plan_id": id})
}

// =======================================================
// ENROLLMENT
// =======================================================

// POST /student-plans
func (h *PaymentPlanHandler) AssignPlan(c *fiber.Ctx) error {
	actor, err := helperAuth.GetIdentityFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.AssignPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	dueDates := make([]time.Time, 0, len(req.DueDates))
	for _, raw := range req.DueDates {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal jatuh tempo tidak valid")
		}
		dueDates = append(dueDates, d)
	}

	enrollment, installments, err := service.AssignPlan(c.UserContext(), h.DB, service.AssignPlanInput{
		SchoolID:        actor.SchoolID,
		StudentID:       req.StudentID,
		PlanID:          req.PlanID,
		CustomAmountIDR: req.CustomAmountIDR,
		DueDates:        dueDates,
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	resp := dto.StudentPlanFromModel(enrollment, installments)

	h.Audit.Record(actor, "student_plan.assign", "student_payment_plan",
		&enrollment.StudentPaymentPlanID, "", nil, resp)

	return helper.JsonCreated(c, "Plan cicilan siswa dibuat", resp)
}

// =======================================================
// INSTALLMENT OPS
// =======================================================

// POST /installments/:id/payments
func (h *PaymentPlanHandler) RecordPayment(c *fiber.Ctx) error {
	actor, err := helperAuth.GetIdentityFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID cicilan tidak valid")
	}

	var req dto.RecordInstallmentPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	inst, err := service.RecordInstallmentPayment(c.UserContext(), h.DB, actor.SchoolID, id, req.AmountIDR)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	h.Audit.Record(actor, "installment.pay", "plan_installment", &inst.PlanInstallmentID,
		"", nil, dto.InstallmentFromModel(inst))

	return helper.JsonOK(c, "Pembayaran cicilan tercatat", dto.InstallmentFromModel(inst))
}

// POST /installments/sweep-overdue
func (h *PaymentPlanHandler) SweepOverdue(c *fiber.Ctx) error {
	actor, err := helperAuth.GetIdentityFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	affected, err := service.SweepOverdue(c.UserContext(), h.DB, actor.SchoolID, time.Now())
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	h.Audit.Record(actor, "installment.sweep_overdue", "plan_installment", nil, "", nil,
		fiber.Map{"affected": affected})

	return helper.JsonOK(c, "Sweep jatuh tempo selesai", fiber.Map{"affected": affected})
}

// POST /installments/:id/reminder
func (h *PaymentPlanHandler) SendReminder(c *fiber.Ctx) error {
	actor, err := helperAuth.GetIdentityFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID cicilan tidak valid")
	}

	var req dto.SendReminderRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if err := service.SendReminder(c.UserContext(), h.DB, h.Messenger, actor.SchoolID, id, req.To); err != nil {
		return helper.JsonFromError(c, err)
	}

	h.Audit.Record(actor, "installment.remind", "plan_installment", &id, req.To, nil, nil)

	return helper.JsonOK(c, "Pengingat cicilan terkirim", fiber.Map{"plan_installment_id": id})
}
