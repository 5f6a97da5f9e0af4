// file: internals/features/finance/balances/dto/student_balance_dto.go
package dto

import (
	"github.com/google/uuid"

	model "schoolku_backend/internals/features/finance/balances/model"
)

type SetTotalFeesRequest struct {
	StudentBalanceStudentID    uuid.UUID `json:"student_balance_student_id" validate:"required"`
	StudentBalanceTermID       uuid.UUID `json:"student_balance_term_id" validate:"required"`
	StudentBalanceTotalFeesIDR int64     `json:"student_balance_total_fees_idr" validate:"min=0"`
}

type SetPreviousBalanceRequest struct {
	StudentBalanceStudentID   uuid.UUID `json:"student_balance_student_id" validate:"required"`
	StudentBalanceTermID      uuid.UUID `json:"student_balance_term_id" validate:"required"`
	StudentBalancePreviousIDR int64     `json:"student_balance_previous_idr"`
}

type StudentBalanceResponse struct {
	StudentBalanceStudentID     uuid.UUID `json:"student_balance_student_id"`
	StudentBalanceTermID        uuid.UUID `json:"student_balance_term_id"`
	StudentBalanceTotalFeesIDR  int64     `json:"student_balance_total_fees_idr"`
	StudentBalancePreviousIDR   int64     `json:"student_balance_previous_idr"`
	StudentBalanceAmountPaidIDR int64     `json:"student_balance_amount_paid_idr"`

	// selalu dihitung, tidak pernah dibaca dari kolom
	StudentBalanceOutstandingIDR int64 `json:"student_balance_outstanding_idr"`
}

func FromModel(m *model.StudentBalance) StudentBalanceResponse {
	return StudentBalanceResponse{
		StudentBalanceStudentID:      m.StudentBalanceStudentID,
		StudentBalanceTermID:         m.StudentBalanceTermID,
		StudentBalanceTotalFeesIDR:   m.StudentBalanceTotalFeesIDR,
		StudentBalancePreviousIDR:    m.StudentBalancePreviousIDR,
		StudentBalanceAmountPaidIDR:  m.StudentBalanceAmountPaidIDR,
		StudentBalanceOutstandingIDR: m.OutstandingIDR(),
	}
}
