// file: internals/features/finance/plans/dto/payment_plan_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "schoolku_backend/internals/features/finance/plans/model"
)

/* =========================================================
   REQUEST
========================================================= */

type CreatePlanRequest struct {
	PaymentPlanName             string     `json:"payment_plan_name" validate:"required,max=100"`
	PaymentPlanTotalAmountIDR   int64      `json:"payment_plan_total_amount_idr" validate:"required,gt=0"`
	PaymentPlanInstallmentCount int        `json:"payment_plan_installment_count" validate:"required,gt=0"`
	PaymentPlanTermID           *uuid.UUID `json:"payment_plan_term_id"`
}

type AssignPlanRequest struct {
	StudentID       uuid.UUID  `json:"student_id" validate:"required"`
	PlanID          *uuid.UUID `json:"plan_id"`
	CustomAmountIDR *int64     `json:"custom_amount_idr" validate:"omitempty,gt=0"`

	// "YYYY-MM-DD", minimal satu
	DueDates []string `json:"due_dates" validate:"required,min=1,dive,datetime=2006-01-02"`
}

type RecordInstallmentPaymentRequest struct {
	AmountIDR int64 `json:"amount_idr" validate:"required,gt=0"`
}

type SendReminderRequest struct {
	To string `json:"to" validate:"required"`
}

/* =========================================================
   RESPONSE
========================================================= */

type PlanResponse struct {
	PaymentPlanID               uuid.UUID  `json:"payment_plan_id"`
	PaymentPlanName             string     `json:"payment_plan_name"`
	PaymentPlanTotalAmountIDR   int64      `json:"payment_plan_total_amount_idr"`
	PaymentPlanInstallmentCount int        `json:"payment_plan_installment_count"`
	PaymentPlanTermID           *uuid.UUID `json:"payment_plan_term_id,omitempty"`
}

func PlanFromModel(m *model.PaymentPlan) PlanResponse {
	return PlanResponse{
		PaymentPlanID:               m.PaymentPlanID,
		PaymentPlanName:             m.PaymentPlanName,
		PaymentPlanTotalAmountIDR:   m.PaymentPlanTotalAmountIDR,
		PaymentPlanInstallmentCount: m.PaymentPlanInstallmentCount,
		PaymentPlanTermID:           m.PaymentPlanTermID,
	}
}

type InstallmentResponse struct {
	PlanInstallmentID            uuid.UUID               `json:"plan_installment_id"`
	PlanInstallmentSeqNo         int                     `json:"plan_installment_seq_no"`
	PlanInstallmentAmountIDR     int64                   `json:"plan_installment_amount_idr"`
	PlanInstallmentDueDate       string                  `json:"plan_installment_due_date"`
	PlanInstallmentPaidAmountIDR int64                   `json:"plan_installment_paid_amount_idr"`
	PlanInstallmentRemainingIDR  int64                   `json:"plan_installment_remaining_idr"`
	PlanInstallmentStatus        model.InstallmentStatus `json:"plan_installment_status"`
	PlanInstallmentPaidAt        *time.Time              `json:"plan_installment_paid_at,omitempty"`
	PlanInstallmentReminderSent  bool                    `json:"plan_installment_reminder_sent"`
}

func InstallmentFromModel(m *model.PlanInstallment) InstallmentResponse {
	return InstallmentResponse{
		PlanInstallmentID:            m.PlanInstallmentID,
		PlanInstallmentSeqNo:         m.PlanInstallmentSeqNo,
		PlanInstallmentAmountIDR:     m.PlanInstallmentAmountIDR,
		PlanInstallmentDueDate:       m.PlanInstallmentDueDate.Format("2006-01-02"),
		PlanInstallmentPaidAmountIDR: m.PlanInstallmentPaidAmountIDR,
		PlanInstallmentRemainingIDR:  m.RemainingIDR(),
		PlanInstallmentStatus:        m.PlanInstallmentStatus,
		PlanInstallmentPaidAt:        m.PlanInstallmentPaidAt,
		PlanInstallmentReminderSent:  m.PlanInstallmentReminderSent,
	}
}

func InstallmentsFromModels(ms []model.PlanInstallment) []InstallmentResponse {
	out := make([]InstallmentResponse, 0, len(ms))
	for i := range ms {
		out = append(out, InstallmentFromModel(&ms[i]))
	}
	return out
}

type StudentPlanResponse struct {
	StudentPaymentPlanID          uuid.UUID               `json:"student_payment_plan_id"`
	StudentPaymentPlanStudentID   uuid.UUID               `json:"student_payment_plan_student_id"`
	StudentPaymentPlanPlanID      uuid.UUID               `json:"student_payment_plan_plan_id"`
	StudentPaymentPlanTermID      *uuid.UUID              `json:"student_payment_plan_term_id,omitempty"`
	StudentPaymentPlanStatus      model.StudentPlanStatus `json:"student_payment_plan_status"`
	StudentPaymentPlanCompletedAt *time.Time              `json:"student_payment_plan_completed_at,omitempty"`
	Installments                  []InstallmentResponse   `json:"installments,omitempty"`
}

func StudentPlanFromModel(m *model.StudentPaymentPlan, installments []model.PlanInstallment) StudentPlanResponse {
	return StudentPlanResponse{
		StudentPaymentPlanID:          m.StudentPaymentPlanID,
		StudentPaymentPlanStudentID:   m.StudentPaymentPlanStudentID,
		StudentPaymentPlanPlanID:      m.StudentPaymentPlanPlanID,
		StudentPaymentPlanTermID:      m.StudentPaymentPlanTermID,
		StudentPaymentPlanStatus:      m.StudentPaymentPlanStatus,
		StudentPaymentPlanCompletedAt: m.StudentPaymentPlanCompletedAt,
		Installments:                  InstallmentsFromModels(installments),
	}
}
