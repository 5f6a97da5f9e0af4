// file: internals/features/finance/ledger/dto/transaction_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "schoolku_backend/internals/features/finance/ledger/model"
)

/* =========================================================
   REQUEST: Create (income / expense)
========================================================= */

type CreateIncomeRequest struct {
	TransactionDate          string     `json:"transaction_date" validate:"required,datetime=2006-01-02"`
	TransactionCategoryID    *uuid.UUID `json:"transaction_category_id"`
	TransactionDescription   string     `json:"transaction_description" validate:"required"`
	TransactionAmountIDR     int64      `json:"transaction_amount_idr" validate:"required,gt=0"`
	TransactionPaymentMethod string     `json:"transaction_payment_method" validate:"required,oneof=cash transfer qris"`

	// opsional, berpasangan → pembayaran SPP
	TransactionStudentID *uuid.UUID `json:"transaction_student_id"`
	TransactionTermID    *uuid.UUID `json:"transaction_term_id"`
}

type CreateExpenseRequest struct {
	TransactionDate        string     `json:"transaction_date" validate:"required,datetime=2006-01-02"`
	TransactionCategoryID  *uuid.UUID `json:"transaction_category_id"`
	TransactionDescription string     `json:"transaction_description" validate:"required"`
	TransactionAmountIDR   int64      `json:"transaction_amount_idr" validate:"required,gt=0"`
}

/* =========================================================
   REQUEST: Amend / Void
========================================================= */

type AmendTransactionRequest struct {
	TransactionDate          *string    `json:"transaction_date" validate:"omitempty,datetime=2006-01-02"`
	TransactionCategoryID    *uuid.UUID `json:"transaction_category_id"`
	TransactionDescription   *string    `json:"transaction_description"`
	TransactionAmountIDR     *int64     `json:"transaction_amount_idr" validate:"omitempty,gt=0"`
	TransactionPaymentMethod *string    `json:"transaction_payment_method" validate:"omitempty,oneof=cash transfer qris"`
}

type VoidTransactionRequest struct {
	TransactionVoidReason string `json:"transaction_void_reason" validate:"required"`
}

/* =========================================================
   RESPONSE
========================================================= */

type TransactionResponse struct {
	TransactionID            uuid.UUID             `json:"transaction_id"`
	TransactionType          model.TransactionType `json:"transaction_type"`
	TransactionDate          string                `json:"transaction_date"`
	TransactionCategoryID    *uuid.UUID            `json:"transaction_category_id,omitempty"`
	TransactionDescription   string                `json:"transaction_description"`
	TransactionAmountIDR     int64                 `json:"transaction_amount_idr"`
	TransactionPaymentMethod *model.PaymentMethod  `json:"transaction_payment_method,omitempty"`
	TransactionStudentID     *uuid.UUID            `json:"transaction_student_id,omitempty"`
	TransactionTermID        *uuid.UUID            `json:"transaction_term_id,omitempty"`
	TransactionReceiptNumber *int64                `json:"transaction_receipt_number,omitempty"`
	TransactionReceiptCode   *string               `json:"transaction_receipt_code,omitempty"`
	TransactionIsVoided      bool                  `json:"transaction_is_voided"`
	TransactionVoidReason    *string               `json:"transaction_void_reason,omitempty"`
	TransactionVoidedAt      *time.Time            `json:"transaction_voided_at,omitempty"`
	TransactionCreatedAt     time.Time             `json:"transaction_created_at"`
}

func FromModel(m *model.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:            m.TransactionID,
		TransactionType:          m.TransactionType,
		TransactionDate:          m.TransactionDate.Format("2006-01-02"),
		TransactionCategoryID:    m.TransactionCategoryID,
		TransactionDescription:   m.TransactionDescription,
		TransactionAmountIDR:     m.TransactionAmountIDR,
		TransactionPaymentMethod: m.TransactionPaymentMethod,
		TransactionStudentID:     m.TransactionStudentID,
		TransactionTermID:        m.TransactionTermID,
		TransactionReceiptNumber: m.TransactionReceiptNumber,
		TransactionReceiptCode:   m.TransactionReceiptCode,
		TransactionIsVoided:      m.TransactionIsVoided,
		TransactionVoidReason:    m.TransactionVoidReason,
		TransactionVoidedAt:      m.TransactionVoidedAt,
		TransactionCreatedAt:     m.TransactionCreatedAt,
	}
}

func FromModels(ms []model.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}

// ParseDateYMD dipakai controller untuk kolom tanggal "YYYY-MM-DD".
func ParseDateYMD(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}
