// file: internals/features/finance/budgets/model/budget_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — tipe periode
// =========================================================

type BudgetPeriodType string

const (
	BudgetPeriodMonthly BudgetPeriodType = "monthly"
	BudgetPeriodYearly  BudgetPeriodType = "yearly"
)

// =========================================================
// MODEL
// =========================================================

// Budget menyimpan angka rencana per (school, category, period_type, year,
// month). Month disimpan 0 untuk periode yearly supaya unique index tetap
// bekerja (NULL di Postgres dianggap distinct). Upsert mengganti angka tanpa
// histori; angka aktual selalu dihitung saat baca dari transaksi expense
// non-void.
type Budget struct {
	BudgetID       uuid.UUID `gorm:"column:budget_id;type:uuid;primaryKey" json:"budget_id"`
	BudgetSchoolID uuid.UUID `gorm:"column:budget_school_id;type:uuid;not null;uniqueIndex:uq_budget_period,priority:1" json:"budget_school_id"`

	// FK → transaction_categories
	BudgetCategoryID uuid.UUID `gorm:"column:budget_category_id;type:uuid;not null;index;uniqueIndex:uq_budget_period,priority:2" json:"budget_category_id"`

	BudgetPeriodType BudgetPeriodType `gorm:"column:budget_period_type;type:varchar(10);not null;uniqueIndex:uq_budget_period,priority:3" json:"budget_period_type"`
	BudgetYear       int              `gorm:"column:budget_year;not null;uniqueIndex:uq_budget_period,priority:4" json:"budget_year"`
	BudgetMonth      int              `gorm:"column:budget_month;not null;default:0;uniqueIndex:uq_budget_period,priority:5" json:"budget_month"`

	BudgetAmountIDR int64 `gorm:"column:budget_amount_idr;not null;check:budget_amount_idr>=0" json:"budget_amount_idr"`

	BudgetCreatedAt time.Time `gorm:"column:budget_created_at;not null" json:"budget_created_at"`
	BudgetUpdatedAt time.Time `gorm:"column:budget_updated_at;not null" json:"budget_updated_at"`
}

func (Budget) TableName() string { return "budgets" }

func (m *Budget) BeforeCreate(tx *gorm.DB) (err error) {
	if m.BudgetID == uuid.Nil {
		m.BudgetID = uuid.New()
	}
	now := time.Now()
	if m.BudgetCreatedAt.IsZero() {
		m.BudgetCreatedAt = now
	}
	m.BudgetUpdatedAt = now
	return nil
}

func (m *Budget) BeforeUpdate(tx *gorm.DB) (err error) {
	m.BudgetUpdatedAt = time.Now()
	return nil
}
