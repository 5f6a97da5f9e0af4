// file: internals/features/finance/ledger/service/receipt_counter_service.go
package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   Sequence Allocator

   Increment + read HARUS satu statement atomik. Read-then-write di sini
   pernah menghasilkan nomor kwitansi ganda saat dua kasir menagih
   bersamaan — jangan diulang.
========================================================= */

// NextReceiptNumber mengalokasikan nomor kwitansi berikutnya untuk sekolah.
// Selalu panggil dengan *gorm.DB transaksi yang sama dengan insert entri
// supaya nomor ikut rollback kalau insert gagal.
func NextReceiptNumber(tx *gorm.DB, schoolID uuid.UUID) (int64, error) {
	now := time.Now()
	var value int64
	err := tx.Raw(`
		INSERT INTO receipt_counters
			(receipt_counter_school_id, receipt_counter_value, receipt_counter_created_at, receipt_counter_updated_at)
		VALUES (?, 1, ?, ?)
		ON CONFLICT (receipt_counter_school_id)
		DO UPDATE SET
			receipt_counter_value      = receipt_counters.receipt_counter_value + 1,
			receipt_counter_updated_at = excluded.receipt_counter_updated_at
		RETURNING receipt_counter_value`,
		schoolID, now, now,
	).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}

/* =========================================================
   Formatting — murni presentasi, bukan bagian invariant
========================================================= */

// FormatReceiptCode: KWT-<8 hex awal school id>-<6 digit>.
func FormatReceiptCode(schoolID uuid.UUID, number int64) string {
	short := strings.ToUpper(strings.ReplaceAll(schoolID.String(), "-", "")[:8])
	return fmt.Sprintf("KWT-%s-%06d", short, number)
}

// FormatDailyReceiptCode: varian display tanggal + urutan harian.
func FormatDailyReceiptCode(date time.Time, dailySeq int64) string {
	return fmt.Sprintf("KWT-%s-%04d", date.Format("20060102"), dailySeq)
}
