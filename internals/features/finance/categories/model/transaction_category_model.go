// file: internals/features/finance/categories/model/transaction_category_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — arah kategori
// =========================================================

type TransactionCategoryKind string

const (
	CategoryKindIncome  TransactionCategoryKind = "income"
	CategoryKindExpense TransactionCategoryKind = "expense"
	CategoryKindBoth    TransactionCategoryKind = "both"
)

// =========================================================
// MODEL
// =========================================================

type TransactionCategory struct {
	// PK
	TransactionCategoryID uuid.UUID `gorm:"column:transaction_category_id;type:uuid;primaryKey" json:"transaction_category_id"`

	// Scope sekolah
	TransactionCategorySchoolID uuid.UUID `gorm:"column:transaction_category_school_id;type:uuid;not null;index:ix_transaction_category_school;uniqueIndex:uq_transaction_category_name,priority:1" json:"transaction_category_school_id"`

	TransactionCategoryName string                  `gorm:"column:transaction_category_name;type:varchar(80);not null;uniqueIndex:uq_transaction_category_name,priority:2" json:"transaction_category_name"`
	TransactionCategoryKind TransactionCategoryKind `gorm:"column:transaction_category_kind;type:varchar(10);not null;default:'both'" json:"transaction_category_kind"`

	TransactionCategoryIsActive bool `gorm:"column:transaction_category_is_active;not null;default:true" json:"transaction_category_is_active"`

	// Timestamps (eksplisit)
	TransactionCategoryCreatedAt time.Time      `gorm:"column:transaction_category_created_at;not null" json:"transaction_category_created_at"`
	TransactionCategoryUpdatedAt time.Time      `gorm:"column:transaction_category_updated_at;not null" json:"transaction_category_updated_at"`
	TransactionCategoryDeletedAt gorm.DeletedAt `gorm:"column:transaction_category_deleted_at;index" json:"-"`
}

func (TransactionCategory) TableName() string {
	return "transaction_categories"
}

// =========================================================
// HOOKS — id & timestamps eksplisit
// =========================================================

func (m *TransactionCategory) BeforeCreate(tx *gorm.DB) (err error) {
	if m.TransactionCategoryID == uuid.Nil {
		m.TransactionCategoryID = uuid.New()
	}
	now := time.Now()
	if m.TransactionCategoryCreatedAt.IsZero() {
		m.TransactionCategoryCreatedAt = now
	}
	m.TransactionCategoryUpdatedAt = now
	return nil
}

func (m *TransactionCategory) BeforeUpdate(tx *gorm.DB) (err error) {
	m.TransactionCategoryUpdatedAt = time.Now()
	return nil
}
