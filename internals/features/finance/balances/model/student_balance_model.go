// file: internals/features/finance/balances/model/student_balance_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentBalance adalah agregat turunan per (siswa, term).
// Outstanding TIDAK pernah disimpan — selalu dihitung saat baca:
//
//	outstanding = total_fees + previous - amount_paid
//
// amount_paid hanya bergerak lewat delta atomik (ApplyPayment/ReversePayment)
// di dalam transaksi yang sama dengan penulisan entri buku kas.
type StudentBalance struct {
	// PK
	StudentBalanceID uuid.UUID `gorm:"column:student_balance_id;type:uuid;primaryKey" json:"student_balance_id"`

	// Kunci unik (school, student, term)
	StudentBalanceSchoolID  uuid.UUID `gorm:"column:student_balance_school_id;type:uuid;not null;uniqueIndex:uq_student_balance,priority:1" json:"student_balance_school_id"`
	StudentBalanceStudentID uuid.UUID `gorm:"column:student_balance_student_id;type:uuid;not null;index;uniqueIndex:uq_student_balance,priority:2" json:"student_balance_student_id"`
	StudentBalanceTermID    uuid.UUID `gorm:"column:student_balance_term_id;type:uuid;not null;uniqueIndex:uq_student_balance,priority:3" json:"student_balance_term_id"`

	StudentBalanceTotalFeesIDR  int64 `gorm:"column:student_balance_total_fees_idr;not null;default:0" json:"student_balance_total_fees_idr"`
	StudentBalancePreviousIDR   int64 `gorm:"column:student_balance_previous_idr;not null;default:0" json:"student_balance_previous_idr"`
	StudentBalanceAmountPaidIDR int64 `gorm:"column:student_balance_amount_paid_idr;not null;default:0" json:"student_balance_amount_paid_idr"`

	// Timestamps (eksplisit)
	StudentBalanceCreatedAt time.Time `gorm:"column:student_balance_created_at;not null" json:"student_balance_created_at"`
	StudentBalanceUpdatedAt time.Time `gorm:"column:student_balance_updated_at;not null" json:"student_balance_updated_at"`
}

func (StudentBalance) TableName() string {
	return "student_balances"
}

// OutstandingIDR menghitung sisa tagihan; tidak ada kolom tersimpan untuk ini.
func (m *StudentBalance) OutstandingIDR() int64 {
	return m.StudentBalanceTotalFeesIDR + m.StudentBalancePreviousIDR - m.StudentBalanceAmountPaidIDR
}

// =========================================================
// HOOKS
// =========================================================

func (m *StudentBalance) BeforeCreate(tx *gorm.DB) (err error) {
	if m.StudentBalanceID == uuid.Nil {
		m.StudentBalanceID = uuid.New()
	}
	now := time.Now()
	if m.StudentBalanceCreatedAt.IsZero() {
		m.StudentBalanceCreatedAt = now
	}
	m.StudentBalanceUpdatedAt = now
	return nil
}

func (m *StudentBalance) BeforeUpdate(tx *gorm.DB) (err error) {
	m.StudentBalanceUpdatedAt = time.Now()
	return nil
}
