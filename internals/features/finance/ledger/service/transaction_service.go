// file: internals/features/finance/ledger/service/transaction_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	balanceSvc "schoolku_backend/internals/features/finance/balances/service"
	"schoolku_backend/internals/features/finance/ledger/model"
)

/* =========================================================
   INPUTS
========================================================= */

type CreateTransactionInput struct {
	SchoolID    uuid.UUID
	Type        model.TransactionType
	Date        time.Time
	CategoryID  *uuid.UUID
	Description string
	AmountIDR   int64

	// income only
	PaymentMethod *model.PaymentMethod
	StudentID     *uuid.UUID
	TermID        *uuid.UUID

	ActorUserID   uuid.UUID
	ActorUserName string
}

type AmendTransactionInput struct {
	Date          *time.Time
	CategoryID    *uuid.UUID
	Description   *string
	AmountIDR     *int64
	PaymentMethod *model.PaymentMethod
}

func (in *CreateTransactionInput) validate() error {
	if in.Type != model.TransactionTypeIncome && in.Type != model.TransactionTypeExpense {
		return fiber.NewError(fiber.StatusBadRequest, "Jenis transaksi tidak dikenal")
	}
	if in.Date.IsZero() {
		return fiber.NewError(fiber.StatusBadRequest, "Tanggal transaksi wajib diisi")
	}
	if strings.TrimSpace(in.Description) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Deskripsi transaksi wajib diisi")
	}
	if in.AmountIDR <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Nominal transaksi harus lebih dari 0")
	}
	if in.Type == model.TransactionTypeIncome {
		if in.PaymentMethod == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Metode pembayaran wajib untuk pemasukan")
		}
		// referensi siswa harus berpasangan dengan term
		if (in.StudentID == nil) != (in.TermID == nil) {
			return fiber.NewError(fiber.StatusBadRequest, "Referensi siswa dan term harus diisi berpasangan")
		}
	} else {
		if in.StudentID != nil || in.TermID != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Pengeluaran tidak boleh menempel ke siswa/term")
		}
		if in.PaymentMethod != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Metode pembayaran hanya untuk pemasukan")
		}
	}
	return nil
}

/* =========================================================
   CREATE

   Entri + nomor kwitansi + delta saldo siswa commit/rollback bersama.
   Partial apply (entri tercatat tapi saldo tidak bergerak) adalah failure
   mode utama yang dicegah di sini.
========================================================= */

func CreateTransaction(ctx context.Context, db *gorm.DB, in CreateTransactionInput) (*model.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	trx := model.Transaction{
		TransactionSchoolID:          in.SchoolID,
		TransactionType:              in.Type,
		TransactionDate:              in.Date,
		TransactionCategoryID:        in.CategoryID,
		TransactionDescription:       strings.TrimSpace(in.Description),
		TransactionAmountIDR:         in.AmountIDR,
		TransactionPaymentMethod:     in.PaymentMethod,
		TransactionStudentID:         in.StudentID,
		TransactionTermID:            in.TermID,
		TransactionCreatedByUserID:   in.ActorUserID,
		TransactionCreatedByUserName: in.ActorUserName,
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.Type == model.TransactionTypeIncome {
			number, err := NextReceiptNumber(tx, in.SchoolID)
			if err != nil {
				return err
			}
			code := FormatReceiptCode(in.SchoolID, number)
			trx.TransactionReceiptNumber = &number
			trx.TransactionReceiptCode = &code
		}

		if err := tx.Create(&trx).Error; err != nil {
			return err
		}

		if trx.IsFeePayment() {
			return balanceSvc.ApplyPayment(tx, in.SchoolID, *in.StudentID, *in.TermID, in.AmountIDR)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &trx, nil
}

/* =========================================================
   AMEND

   Entri yang sudah void tidak boleh disentuh. Catatan: perubahan nominal
   TIDAK menyesuaikan StudentBalance yang sudah tercatat (perilaku sistem
   berjalan; jangan diubah diam-diam).
========================================================= */

func AmendTransaction(ctx context.Context, db *gorm.DB, schoolID, transactionID uuid.UUID, in AmendTransactionInput) (*model.Transaction, error) {
	var trx model.Transaction

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("transaction_id = ? AND transaction_school_id = ?", transactionID, schoolID).
			First(&trx).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Transaksi tidak ditemukan")
			}
			return err
		}
		if trx.TransactionIsVoided {
			return fiber.NewError(fiber.StatusConflict, "Transaksi sudah dibatalkan dan tidak bisa diubah")
		}

		if in.Date != nil {
			if in.Date.IsZero() {
				return fiber.NewError(fiber.StatusBadRequest, "Tanggal transaksi tidak valid")
			}
			trx.TransactionDate = *in.Date
		}
		if in.CategoryID != nil {
			trx.TransactionCategoryID = in.CategoryID
		}
		if in.Description != nil {
			d := strings.TrimSpace(*in.Description)
			if d == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Deskripsi transaksi wajib diisi")
			}
			trx.TransactionDescription = d
		}
		if in.AmountIDR != nil {
			if *in.AmountIDR <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Nominal transaksi harus lebih dari 0")
			}
			trx.TransactionAmountIDR = *in.AmountIDR
		}
		if in.PaymentMethod != nil {
			if trx.TransactionType != model.TransactionTypeIncome {
				return fiber.NewError(fiber.StatusBadRequest, "Metode pembayaran hanya untuk pemasukan")
			}
			trx.TransactionPaymentMethod = in.PaymentMethod
		}

		return tx.Save(&trx).Error
	})
	if err != nil {
		return nil, err
	}
	return &trx, nil
}

/* =========================================================
   VOID — satu-satunya jalur "undo"; tidak ada hard delete
========================================================= */

func VoidTransaction(ctx context.Context, db *gorm.DB, schoolID, transactionID uuid.UUID, reason string, actorUserID uuid.UUID, actorUserName string) (*model.Transaction, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Alasan pembatalan wajib diisi")
	}

	var trx model.Transaction

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("transaction_id = ? AND transaction_school_id = ?", transactionID, schoolID).
			First(&trx).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Transaksi tidak ditemukan")
			}
			return err
		}
		if trx.TransactionIsVoided {
			return fiber.NewError(fiber.StatusConflict, "Transaksi sudah dibatalkan sebelumnya")
		}

		now := time.Now()
		res := tx.Model(&model.Transaction{}).
			Where("transaction_id = ? AND transaction_is_voided = ?", transactionID, false).
			Updates(map[string]any{
				"transaction_is_voided":         true,
				"transaction_void_reason":       reason,
				"transaction_void_by_user_id":   actorUserID,
				"transaction_void_by_user_name": actorUserName,
				"transaction_voided_at":         now,
				"transaction_updated_at":        now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// kalah balapan dengan void lain
			return fiber.NewError(fiber.StatusConflict, "Transaksi sudah dibatalkan sebelumnya")
		}

		trx.TransactionIsVoided = true
		trx.TransactionVoidReason = &reason
		trx.TransactionVoidByUserID = &actorUserID
		trx.TransactionVoidByUserName = &actorUserName
		trx.TransactionVoidedAt = &now

		if trx.IsFeePayment() {
			// reversal saldo harus satu transaksi dengan penandaan void
			return balanceSvc.ReversePayment(tx, schoolID, *trx.TransactionStudentID, *trx.TransactionTermID, trx.TransactionAmountIDR)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &trx, nil
}

/* =========================================================
   READ SIDE
========================================================= */

func GetTransaction(ctx context.Context, db *gorm.DB, schoolID, transactionID uuid.UUID) (*model.Transaction, error) {
	var trx model.Transaction
	err := db.WithContext(ctx).
		Where("transaction_id = ? AND transaction_school_id = ?", transactionID, schoolID).
		First(&trx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Transaksi tidak ditemukan")
		}
		return nil, err
	}
	return &trx, nil
}

type ListTransactionsFilter struct {
	Type       *model.TransactionType
	CategoryID *uuid.UUID
	StudentID  *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
	Voided     *bool
	Offset     int
	Limit      int
}

func ListTransactions(ctx context.Context, db *gorm.DB, schoolID uuid.UUID, f ListTransactionsFilter) ([]model.Transaction, int64, error) {
	q := db.WithContext(ctx).Model(&model.Transaction{}).
		Where("transaction_school_id = ?", schoolID)

	if f.Type != nil {
		q = q.Where("transaction_type = ?", *f.Type)
	}
	if f.CategoryID != nil {
		q = q.Where("transaction_category_id = ?", *f.CategoryID)
	}
	if f.StudentID != nil {
		q = q.Where("transaction_student_id = ?", *f.StudentID)
	}
	if f.DateFrom != nil {
		q = q.Where("transaction_date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("transaction_date < ?", *f.DateTo)
	}
	if f.Voided != nil {
		q = q.Where("transaction_is_voided = ?", *f.Voided)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.Transaction
	if err := q.Order("transaction_date DESC, transaction_created_at DESC").
		Offset(f.Offset).Limit(f.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
