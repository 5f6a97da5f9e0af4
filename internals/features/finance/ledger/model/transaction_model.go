// file: internals/features/finance/ledger/model/transaction_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — jenis & metode pembayaran
// =========================================================

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodQRIS     PaymentMethod = "qris"
)

// =========================================================
// MODEL
// =========================================================

// Transaction adalah entri buku kas (pemasukan/pengeluaran).
// Tidak ada hard delete: pembatalan hanya lewat jalur void, dan entri
// yang sudah void tidak boleh diubah kecuali kolom void itu sendiri.
type Transaction struct {
	// PK
	TransactionID uuid.UUID `gorm:"column:transaction_id;type:uuid;primaryKey" json:"transaction_id"`

	// Scope sekolah
	TransactionSchoolID uuid.UUID `gorm:"column:transaction_school_id;type:uuid;not null;index:ix_transaction_school;uniqueIndex:uq_transaction_receipt,priority:1" json:"transaction_school_id"`

	TransactionType TransactionType `gorm:"column:transaction_type;type:varchar(10);not null;index:ix_transaction_type" json:"transaction_type"`
	TransactionDate time.Time       `gorm:"column:transaction_date;not null;index:ix_transaction_date" json:"transaction_date"`

	// FK → transaction_categories (opsional)
	TransactionCategoryID *uuid.UUID `gorm:"column:transaction_category_id;type:uuid;index" json:"transaction_category_id,omitempty"`

	TransactionDescription string `gorm:"column:transaction_description;type:text;not null" json:"transaction_description"`

	// Nominal selalu tersimpan positif; arah ditentukan TransactionType.
	TransactionAmountIDR int64 `gorm:"column:transaction_amount_idr;not null;check:transaction_amount_idr>0" json:"transaction_amount_idr"`

	// Income only
	TransactionPaymentMethod *PaymentMethod `gorm:"column:transaction_payment_method;type:varchar(20)" json:"transaction_payment_method,omitempty"`

	// Referensi siswa+term (income only, berpasangan)
	TransactionStudentID *uuid.UUID `gorm:"column:transaction_student_id;type:uuid;index:ix_transaction_student" json:"transaction_student_id,omitempty"`
	TransactionTermID    *uuid.UUID `gorm:"column:transaction_term_id;type:uuid" json:"transaction_term_id,omitempty"`

	// Nomor kwitansi (income only); angka dari allocator, kode untuk display.
	TransactionReceiptNumber *int64  `gorm:"column:transaction_receipt_number;uniqueIndex:uq_transaction_receipt,priority:2" json:"transaction_receipt_number,omitempty"`
	TransactionReceiptCode   *string `gorm:"column:transaction_receipt_code;type:varchar(40)" json:"transaction_receipt_code,omitempty"`

	// Void (soft reversal)
	TransactionIsVoided       bool       `gorm:"column:transaction_is_voided;not null;default:false;index:ix_transaction_voided" json:"transaction_is_voided"`
	TransactionVoidReason     *string    `gorm:"column:transaction_void_reason;type:text" json:"transaction_void_reason,omitempty"`
	TransactionVoidByUserID   *uuid.UUID `gorm:"column:transaction_void_by_user_id;type:uuid" json:"transaction_void_by_user_id,omitempty"`
	TransactionVoidByUserName *string    `gorm:"column:transaction_void_by_user_name;type:varchar(100)" json:"transaction_void_by_user_name,omitempty"`
	TransactionVoidedAt       *time.Time `gorm:"column:transaction_voided_at" json:"transaction_voided_at,omitempty"`

	// Actor pembuat
	TransactionCreatedByUserID   uuid.UUID `gorm:"column:transaction_created_by_user_id;type:uuid;not null" json:"transaction_created_by_user_id"`
	TransactionCreatedByUserName string    `gorm:"column:transaction_created_by_user_name;type:varchar(100);not null;default:''" json:"transaction_created_by_user_name"`

	// Timestamps (eksplisit)
	TransactionCreatedAt time.Time `gorm:"column:transaction_created_at;not null" json:"transaction_created_at"`
	TransactionUpdatedAt time.Time `gorm:"column:transaction_updated_at;not null" json:"transaction_updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// IsFeePayment: entri income yang menempel ke (siswa, term) dan karenanya
// ikut menggerakkan StudentBalance.
func (m *Transaction) IsFeePayment() bool {
	return m.TransactionType == TransactionTypeIncome &&
		m.TransactionStudentID != nil && m.TransactionTermID != nil
}

// =========================================================
// HOOKS
// =========================================================

func (m *Transaction) BeforeCreate(tx *gorm.DB) (err error) {
	if m.TransactionID == uuid.Nil {
		m.TransactionID = uuid.New()
	}
	now := time.Now()
	if m.TransactionCreatedAt.IsZero() {
		m.TransactionCreatedAt = now
	}
	m.TransactionUpdatedAt = now
	return nil
}

func (m *Transaction) BeforeUpdate(tx *gorm.DB) (err error) {
	m.TransactionUpdatedAt = time.Now()
	return nil
}
