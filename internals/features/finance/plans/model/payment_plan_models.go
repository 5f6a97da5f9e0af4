// file: internals/features/finance/plans/model/payment_plan_models.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — status plan & cicilan
// =========================================================

type StudentPlanStatus string

const (
	StudentPlanStatusActive    StudentPlanStatus = "active"
	StudentPlanStatusCompleted StudentPlanStatus = "completed"
)

type InstallmentStatus string

const (
	InstallmentStatusPending InstallmentStatus = "pending"
	InstallmentStatusPartial InstallmentStatus = "partial"
	InstallmentStatusPaid    InstallmentStatus = "paid"
	InstallmentStatusOverdue InstallmentStatus = "overdue"
)

// =========================================================
// MODEL — template plan
// =========================================================

// PaymentPlan adalah template jadwal cicilan yang bisa dipakai banyak siswa.
// Template tidak boleh dihapus selama masih ada siswa ter-enroll (409).
type PaymentPlan struct {
	PaymentPlanID       uuid.UUID `gorm:"column:payment_plan_id;type:uuid;primaryKey" json:"payment_plan_id"`
	PaymentPlanSchoolID uuid.UUID `gorm:"column:payment_plan_school_id;type:uuid;not null;index:ix_payment_plan_school" json:"payment_plan_school_id"`

	PaymentPlanName             string     `gorm:"column:payment_plan_name;type:varchar(100);not null" json:"payment_plan_name"`
	PaymentPlanTotalAmountIDR   int64      `gorm:"column:payment_plan_total_amount_idr;not null;check:payment_plan_total_amount_idr>0" json:"payment_plan_total_amount_idr"`
	PaymentPlanInstallmentCount int        `gorm:"column:payment_plan_installment_count;not null;check:payment_plan_installment_count>0" json:"payment_plan_installment_count"`
	PaymentPlanTermID           *uuid.UUID `gorm:"column:payment_plan_term_id;type:uuid" json:"payment_plan_term_id,omitempty"`

	PaymentPlanCreatedAt time.Time      `gorm:"column:payment_plan_created_at;not null" json:"payment_plan_created_at"`
	PaymentPlanUpdatedAt time.Time      `gorm:"column:payment_plan_updated_at;not null" json:"payment_plan_updated_at"`
	PaymentPlanDeletedAt gorm.DeletedAt `gorm:"column:payment_plan_deleted_at;index" json:"-"`
}

func (PaymentPlan) TableName() string { return "payment_plans" }

func (m *PaymentPlan) BeforeCreate(tx *gorm.DB) (err error) {
	if m.PaymentPlanID == uuid.Nil {
		m.PaymentPlanID = uuid.New()
	}
	now := time.Now()
	if m.PaymentPlanCreatedAt.IsZero() {
		m.PaymentPlanCreatedAt = now
	}
	m.PaymentPlanUpdatedAt = now
	return nil
}

func (m *PaymentPlan) BeforeUpdate(tx *gorm.DB) (err error) {
	m.PaymentPlanUpdatedAt = time.Now()
	return nil
}

// =========================================================
// MODEL — enrollment siswa
// =========================================================

type StudentPaymentPlan struct {
	StudentPaymentPlanID        uuid.UUID `gorm:"column:student_payment_plan_id;type:uuid;primaryKey" json:"student_payment_plan_id"`
	StudentPaymentPlanSchoolID  uuid.UUID `gorm:"column:student_payment_plan_school_id;type:uuid;not null;index:ix_student_payment_plan_school" json:"student_payment_plan_school_id"`
	StudentPaymentPlanStudentID uuid.UUID `gorm:"column:student_payment_plan_student_id;type:uuid;not null;index:ix_student_payment_plan_student" json:"student_payment_plan_student_id"`

	// FK → payment_plans
	StudentPaymentPlanPlanID uuid.UUID `gorm:"column:student_payment_plan_plan_id;type:uuid;not null;index" json:"student_payment_plan_plan_id"`

	// Override nominal total (jika beda dari template)
	StudentPaymentPlanCustomAmountIDR *int64 `gorm:"column:student_payment_plan_custom_amount_idr" json:"student_payment_plan_custom_amount_idr,omitempty"`

	// Term snapshot dari template saat assign; pembayaran cicilan plan ber-term
	// ikut menggerakkan StudentBalance (siswa, term) tsb.
	StudentPaymentPlanTermID *uuid.UUID `gorm:"column:student_payment_plan_term_id;type:uuid" json:"student_payment_plan_term_id,omitempty"`

	StudentPaymentPlanStatus      StudentPlanStatus `gorm:"column:student_payment_plan_status;type:varchar(20);not null;default:'active';index:ix_student_payment_plan_status" json:"student_payment_plan_status"`
	StudentPaymentPlanCompletedAt *time.Time        `gorm:"column:student_payment_plan_completed_at" json:"student_payment_plan_completed_at,omitempty"`

	StudentPaymentPlanCreatedAt time.Time `gorm:"column:student_payment_plan_created_at;not null" json:"student_payment_plan_created_at"`
	StudentPaymentPlanUpdatedAt time.Time `gorm:"column:student_payment_plan_updated_at;not null" json:"student_payment_plan_updated_at"`
}

func (StudentPaymentPlan) TableName() string { return "student_payment_plans" }

func (m *StudentPaymentPlan) BeforeCreate(tx *gorm.DB) (err error) {
	if m.StudentPaymentPlanID == uuid.Nil {
		m.StudentPaymentPlanID = uuid.New()
	}
	now := time.Now()
	if m.StudentPaymentPlanCreatedAt.IsZero() {
		m.StudentPaymentPlanCreatedAt = now
	}
	m.StudentPaymentPlanUpdatedAt = now
	return nil
}

func (m *StudentPaymentPlan) BeforeUpdate(tx *gorm.DB) (err error) {
	m.StudentPaymentPlanUpdatedAt = time.Now()
	return nil
}

// =========================================================
// MODEL — cicilan
// =========================================================

// PlanInstallment: status adalah fungsi deterministik dari paid vs amount
// (partial/paid) plus due date vs now untuk overdue (via sweep eksplisit).
// paid adalah terminal; tidak ada batas atas paid_amount (overpayment
// diterima dan tampil sebagai sisa negatif).
type PlanInstallment struct {
	PlanInstallmentID       uuid.UUID `gorm:"column:plan_installment_id;type:uuid;primaryKey" json:"plan_installment_id"`
	PlanInstallmentSchoolID uuid.UUID `gorm:"column:plan_installment_school_id;type:uuid;not null;index:ix_plan_installment_school" json:"plan_installment_school_id"`

	// FK → student_payment_plans
	PlanInstallmentStudentPlanID uuid.UUID `gorm:"column:plan_installment_student_plan_id;type:uuid;not null;index:ix_plan_installment_student_plan" json:"plan_installment_student_plan_id"`

	PlanInstallmentSeqNo     int       `gorm:"column:plan_installment_seq_no;not null" json:"plan_installment_seq_no"`
	PlanInstallmentAmountIDR int64     `gorm:"column:plan_installment_amount_idr;not null;check:plan_installment_amount_idr>0" json:"plan_installment_amount_idr"`
	PlanInstallmentDueDate   time.Time `gorm:"column:plan_installment_due_date;not null;index:ix_plan_installment_due" json:"plan_installment_due_date"`

	PlanInstallmentPaidAmountIDR int64             `gorm:"column:plan_installment_paid_amount_idr;not null;default:0" json:"plan_installment_paid_amount_idr"`
	PlanInstallmentStatus        InstallmentStatus `gorm:"column:plan_installment_status;type:varchar(20);not null;default:'pending';index:ix_plan_installment_status" json:"plan_installment_status"`
	PlanInstallmentPaidAt        *time.Time        `gorm:"column:plan_installment_paid_at" json:"plan_installment_paid_at,omitempty"`

	PlanInstallmentReminderSent bool `gorm:"column:plan_installment_reminder_sent;not null;default:false" json:"plan_installment_reminder_sent"`

	PlanInstallmentCreatedAt time.Time `gorm:"column:plan_installment_created_at;not null" json:"plan_installment_created_at"`
	PlanInstallmentUpdatedAt time.Time `gorm:"column:plan_installment_updated_at;not null" json:"plan_installment_updated_at"`
}

func (PlanInstallment) TableName() string { return "plan_installments" }

// RemainingIDR bisa negatif saat overpayment.
func (m *PlanInstallment) RemainingIDR() int64 {
	return m.PlanInstallmentAmountIDR - m.PlanInstallmentPaidAmountIDR
}

func (m *PlanInstallment) BeforeCreate(tx *gorm.DB) (err error) {
	if m.PlanInstallmentID == uuid.Nil {
		m.PlanInstallmentID = uuid.New()
	}
	now := time.Now()
	if m.PlanInstallmentCreatedAt.IsZero() {
		m.PlanInstallmentCreatedAt = now
	}
	m.PlanInstallmentUpdatedAt = now
	return nil
}

func (m *PlanInstallment) BeforeUpdate(tx *gorm.DB) (err error) {
	m.PlanInstallmentUpdatedAt = time.Now()
	return nil
}
