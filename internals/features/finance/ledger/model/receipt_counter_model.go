// file: internals/features/finance/ledger/model/receipt_counter_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ReceiptCounter menyimpan nomor kwitansi terakhir per sekolah.
// Increment HARUS satu statement atomik (lihat service.NextReceiptNumber);
// read-then-write akan menghasilkan nomor ganda saat concurrent.
type ReceiptCounter struct {
	ReceiptCounterSchoolID uuid.UUID `gorm:"column:receipt_counter_school_id;type:uuid;primaryKey" json:"receipt_counter_school_id"`
	ReceiptCounterValue    int64     `gorm:"column:receipt_counter_value;not null;default:0" json:"receipt_counter_value"`

	ReceiptCounterCreatedAt time.Time `gorm:"column:receipt_counter_created_at;not null" json:"receipt_counter_created_at"`
	ReceiptCounterUpdatedAt time.Time `gorm:"column:receipt_counter_updated_at;not null" json:"receipt_counter_updated_at"`
}

func (ReceiptCounter) TableName() string {
	return "receipt_counters"
}
