// file: internals/features/finance/balances/service/student_balance_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/features/finance/balances/model"
	helper "schoolku_backend/internals/helpers"
)

/* =========================================================
   Delta atomik amount_paid

   Semua mutasi amount_paid dinyatakan sebagai
   "amount_paid = amount_paid ± ?" di storage, BUKAN read-modify-write,
   supaya dua pembayaran concurrent untuk siswa yang sama tidak saling
   menimpa. Pemanggil wajib meneruskan *gorm.DB transaksi yang sama
   dengan penulisan entri buku kas.
========================================================= */

func addToAmountPaid(tx *gorm.DB, schoolID, studentID, termID uuid.UUID, delta int64) (int64, error) {
	res := tx.Model(&model.StudentBalance{}).
		Where("student_balance_school_id = ? AND student_balance_student_id = ? AND student_balance_term_id = ?",
			schoolID, studentID, termID).
		Updates(map[string]any{
			"student_balance_amount_paid_idr": gorm.Expr("student_balance_amount_paid_idr + ?", delta),
			"student_balance_updated_at":      time.Now(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// ApplyPayment menambah amount_paid; baris dibuat lazy saat pembayaran
// pertama untuk pasangan (siswa, term).
func ApplyPayment(tx *gorm.DB, schoolID, studentID, termID uuid.UUID, amount int64) error {
	if amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Nominal pembayaran harus lebih dari 0")
	}

	affected, err := addToAmountPaid(tx, schoolID, studentID, termID, amount)
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	row := model.StudentBalance{
		StudentBalanceSchoolID:      schoolID,
		StudentBalanceStudentID:     studentID,
		StudentBalanceTermID:        termID,
		StudentBalanceAmountPaidIDR: amount,
	}
	if err := tx.Create(&row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			// baris keburu dibuat penulis lain; ulangi delta
			if _, err := addToAmountPaid(tx, schoolID, studentID, termID, amount); err != nil {
				return err
			}
			return nil
		}
		return err
	}
	return nil
}

// ReversePayment mengurangi amount_paid saat entri di-void. Baris yang tidak
// ada berarti tidak ada yang bisa di-reverse — itu error, bukan no-op.
func ReversePayment(tx *gorm.DB, schoolID, studentID, termID uuid.UUID, amount int64) error {
	if amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Nominal reversal harus lebih dari 0")
	}

	affected, err := addToAmountPaid(tx, schoolID, studentID, termID, -amount)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Saldo siswa untuk term tersebut tidak ditemukan")
	}
	return nil
}

/* =========================================================
   Penetapan tagihan / saldo bawaan
========================================================= */

// SetTotalFees upsert angka tagihan term tanpa menyentuh amount_paid.
// Dipakai saat enrollment / penyesuaian tarif.
func SetTotalFees(ctx context.Context, db *gorm.DB, schoolID, studentID, termID uuid.UUID, amount int64) error {
	if amount < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Total tagihan tidak boleh negatif")
	}

	row := model.StudentBalance{
		StudentBalanceSchoolID:     schoolID,
		StudentBalanceStudentID:    studentID,
		StudentBalanceTermID:       termID,
		StudentBalanceTotalFeesIDR: amount,
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "student_balance_school_id"},
			{Name: "student_balance_student_id"},
			{Name: "student_balance_term_id"},
		},
		DoUpdates: clause.Assignments(map[string]any{
			"student_balance_total_fees_idr": amount,
			"student_balance_updated_at":     time.Now(),
		}),
	}).Create(&row).Error
}

// SetPreviousBalance upsert saldo bawaan dari term sebelumnya.
func SetPreviousBalance(ctx context.Context, db *gorm.DB, schoolID, studentID, termID uuid.UUID, amount int64) error {
	row := model.StudentBalance{
		StudentBalanceSchoolID:    schoolID,
		StudentBalanceStudentID:   studentID,
		StudentBalanceTermID:      termID,
		StudentBalancePreviousIDR: amount,
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "student_balance_school_id"},
			{Name: "student_balance_student_id"},
			{Name: "student_balance_term_id"},
		},
		DoUpdates: clause.Assignments(map[string]any{
			"student_balance_previous_idr": amount,
			"student_balance_updated_at":   time.Now(),
		}),
	}).Create(&row).Error
}

/* =========================================================
   Read side
========================================================= */

// GetBalance mengambil baris saldo; outstanding dihitung, tidak dibaca dari kolom.
func GetBalance(ctx context.Context, db *gorm.DB, schoolID, studentID, termID uuid.UUID) (*model.StudentBalance, error) {
	var row model.StudentBalance
	err := db.WithContext(ctx).
		Where("student_balance_school_id = ? AND student_balance_student_id = ? AND student_balance_term_id = ?",
			schoolID, studentID, termID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Saldo siswa untuk term tersebut tidak ditemukan")
		}
		return nil, err
	}
	return &row, nil
}
