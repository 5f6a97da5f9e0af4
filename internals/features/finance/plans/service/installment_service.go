// file: internals/features/finance/plans/service/installment_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	balanceSvc "schoolku_backend/internals/features/finance/balances/service"
	"schoolku_backend/internals/features/finance/plans/model"
)

/* =========================================================
   TEMPLATE PLAN
========================================================= */

type CreatePlanInput struct {
	SchoolID         uuid.UUID
	Name             string
	TotalAmountIDR   int64
	InstallmentCount int
	TermID           *uuid.UUID
}

func CreatePlan(ctx context.Context, db *gorm.DB, in CreatePlanInput) (*model.PaymentPlan, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Nama plan wajib diisi")
	}
	if in.TotalAmountIDR <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Total plan harus lebih dari 0")
	}
	if in.InstallmentCount <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Jumlah cicilan harus lebih dari 0")
	}

	plan := model.PaymentPlan{
		PaymentPlanSchoolID:         in.SchoolID,
		PaymentPlanName:             strings.TrimSpace(in.Name),
		PaymentPlanTotalAmountIDR:   in.TotalAmountIDR,
		PaymentPlanInstallmentCount: in.InstallmentCount,
		PaymentPlanTermID:           in.TermID,
	}
	if err := db.WithContext(ctx).Create(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// DeletePlan menolak selama masih ada enrollment — template jadi immutable
// begitu dipakai siswa.
func DeletePlan(ctx context.Context, db *gorm.DB, schoolID, planID uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var plan model.PaymentPlan
		if err := tx.
			Where("payment_plan_id = ? AND payment_plan_school_id = ?", planID, schoolID).
			First(&plan).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Plan tidak ditemukan")
			}
			return err
		}

		var enrolled int64
		if err := tx.Model(&model.StudentPaymentPlan{}).
			Where("student_payment_plan_plan_id = ?", planID).
			Count(&enrolled).Error; err != nil {
			return err
		}
		if enrolled > 0 {
			return fiber.NewError(fiber.StatusConflict, "Plan masih dipakai siswa dan tidak bisa dihapus")
		}

		return tx.Delete(&plan).Error
	})
}

/* =========================================================
   ASSIGN — satu batch: 1 enrollment + N cicilan
========================================================= */

type AssignPlanInput struct {
	SchoolID        uuid.UUID
	StudentID       uuid.UUID
	PlanID          *uuid.UUID
	CustomAmountIDR *int64
	DueDates        []time.Time
}

// AssignPlan membagi total rata per due date (pembagian bulat; sisa bagi
// tidak didistribusikan ulang — jumlah cicilan bisa kurang tipis dari
// total, perilaku sistem berjalan).
func AssignPlan(ctx context.Context, db *gorm.DB, in AssignPlanInput) (*model.StudentPaymentPlan, []model.PlanInstallment, error) {
	if len(in.DueDates) == 0 {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Minimal satu tanggal jatuh tempo")
	}
	if in.PlanID == nil && in.CustomAmountIDR == nil {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Wajib memilih plan atau mengisi nominal custom")
	}
	if in.CustomAmountIDR != nil && *in.CustomAmountIDR <= 0 {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Nominal custom harus lebih dari 0")
	}

	dueDates := make([]time.Time, len(in.DueDates))
	copy(dueDates, in.DueDates)
	sort.Slice(dueDates, func(i, j int) bool { return dueDates[i].Before(dueDates[j]) })

	var (
		enrollment   model.StudentPaymentPlan
		installments []model.PlanInstallment
	)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var termID *uuid.UUID
		total := int64(0)
		planID := uuid.Nil

		if in.PlanID != nil {
			var plan model.PaymentPlan
			if err := tx.
				Where("payment_plan_id = ? AND payment_plan_school_id = ?", *in.PlanID, in.SchoolID).
				First(&plan).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Plan tidak ditemukan")
				}
				return err
			}
			planID = plan.PaymentPlanID
			total = plan.PaymentPlanTotalAmountIDR
			termID = plan.PaymentPlanTermID
		}
		if in.CustomAmountIDR != nil {
			total = *in.CustomAmountIDR
		}

		perInstallment := total / int64(len(dueDates))
		if perInstallment <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nominal per cicilan jatuh ke 0; kurangi jumlah tanggal")
		}

		enrollment = model.StudentPaymentPlan{
			StudentPaymentPlanSchoolID:        in.SchoolID,
			StudentPaymentPlanStudentID:       in.StudentID,
			StudentPaymentPlanPlanID:          planID,
			StudentPaymentPlanCustomAmountIDR: in.CustomAmountIDR,
			StudentPaymentPlanTermID:          termID,
			StudentPaymentPlanStatus:          model.StudentPlanStatusActive,
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}

		installments = make([]model.PlanInstallment, 0, len(dueDates))
		for i, due := range dueDates {
			installments = append(installments, model.PlanInstallment{
				PlanInstallmentSchoolID:      in.SchoolID,
				PlanInstallmentStudentPlanID: enrollment.StudentPaymentPlanID,
				PlanInstallmentSeqNo:         i + 1,
				PlanInstallmentAmountIDR:     perInstallment,
				PlanInstallmentDueDate:       due,
				PlanInstallmentStatus:        model.InstallmentStatusPending,
			})
		}
		return tx.Create(&installments).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &enrollment, installments, nil
}

/* =========================================================
   RECORD PAYMENT

   paid += amount; status dihitung ulang; kalau semua cicilan saudara
   sudah paid, plan naik jadi completed — semua dalam satu transaksi.
   Plan ber-term juga menggerakkan StudentBalance di transaksi yang sama.
========================================================= */

func RecordInstallmentPayment(ctx context.Context, db *gorm.DB, schoolID, installmentID uuid.UUID, amount int64) (*model.PlanInstallment, error) {
	if amount <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Nominal pembayaran harus lebih dari 0")
	}

	var inst model.PlanInstallment

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("plan_installment_id = ? AND plan_installment_school_id = ?", installmentID, schoolID).
			First(&inst).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Cicilan tidak ditemukan")
			}
			return err
		}

		inst.PlanInstallmentPaidAmountIDR += amount

		now := time.Now()
		updates := map[string]any{
			"plan_installment_paid_amount_idr": inst.PlanInstallmentPaidAmountIDR,
			"plan_installment_updated_at":      now,
		}

		switch {
		case inst.PlanInstallmentPaidAmountIDR >= inst.PlanInstallmentAmountIDR:
			inst.PlanInstallmentStatus = model.InstallmentStatusPaid
			if inst.PlanInstallmentPaidAt == nil {
				inst.PlanInstallmentPaidAt = &now
				updates["plan_installment_paid_at"] = now
			}
			updates["plan_installment_status"] = model.InstallmentStatusPaid
		case inst.PlanInstallmentPaidAmountIDR > 0:
			inst.PlanInstallmentStatus = model.InstallmentStatusPartial
			updates["plan_installment_status"] = model.InstallmentStatusPartial
		}

		if err := tx.Model(&model.PlanInstallment{}).
			Where("plan_installment_id = ?", inst.PlanInstallmentID).
			Updates(updates).Error; err != nil {
			return err
		}

		// promosi plan → completed saat tidak ada saudara yang belum paid
		if inst.PlanInstallmentStatus == model.InstallmentStatusPaid {
			var unpaid int64
			if err := tx.Model(&model.PlanInstallment{}).
				Where("plan_installment_student_plan_id = ? AND plan_installment_status <> ?",
					inst.PlanInstallmentStudentPlanID, model.InstallmentStatusPaid).
				Count(&unpaid).Error; err != nil {
				return err
			}
			if unpaid == 0 {
				if err := tx.Model(&model.StudentPaymentPlan{}).
					Where("student_payment_plan_id = ? AND student_payment_plan_status = ?",
						inst.PlanInstallmentStudentPlanID, model.StudentPlanStatusActive).
					Updates(map[string]any{
						"student_payment_plan_status":       model.StudentPlanStatusCompleted,
						"student_payment_plan_completed_at": now,
						"student_payment_plan_updated_at":   now,
					}).Error; err != nil {
					return err
				}
			}
		}

		// plan ber-term ikut menggerakkan saldo (siswa, term)
		var enrollment model.StudentPaymentPlan
		if err := tx.
			Where("student_payment_plan_id = ?", inst.PlanInstallmentStudentPlanID).
			First(&enrollment).Error; err != nil {
			return err
		}
		if enrollment.StudentPaymentPlanTermID != nil {
			return balanceSvc.ApplyPayment(tx, schoolID, enrollment.StudentPaymentPlanStudentID, *enrollment.StudentPaymentPlanTermID, amount)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

/* =========================================================
   SWEEP OVERDUE

   Satu bulk update, idempotent. Hanya pending yang disapu; partial yang
   lewat jatuh tempo dibiarkan (perilaku sistem berjalan).
========================================================= */

func SweepOverdue(ctx context.Context, db *gorm.DB, schoolID uuid.UUID, now time.Time) (int64, error) {
	res := db.WithContext(ctx).Model(&model.PlanInstallment{}).
		Where("plan_installment_school_id = ? AND plan_installment_status = ? AND plan_installment_due_date < ?",
			schoolID, model.InstallmentStatusPending, now).
		Updates(map[string]any{
			"plan_installment_status":     model.InstallmentStatusOverdue,
			"plan_installment_updated_at": time.Now(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

/* =========================================================
   REMINDER
========================================================= */

// SendReminder mengirim pesan via Messenger lalu menandai reminder_sent.
// Delivery gagal → flag tidak disentuh dan error diteruskan ke pemanggil.
func SendReminder(ctx context.Context, db *gorm.DB, msgr Messenger, schoolID, installmentID uuid.UUID, to string) error {
	if strings.TrimSpace(to) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Tujuan pengiriman wajib diisi")
	}

	var inst model.PlanInstallment
	if err := db.WithContext(ctx).
		Where("plan_installment_id = ? AND plan_installment_school_id = ?", installmentID, schoolID).
		First(&inst).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Cicilan tidak ditemukan")
		}
		return err
	}

	body := fmt.Sprintf(
		"Pengingat cicilan ke-%d: Rp %d jatuh tempo %s. Sisa tagihan Rp %d.",
		inst.PlanInstallmentSeqNo,
		inst.PlanInstallmentAmountIDR,
		inst.PlanInstallmentDueDate.Format("02-01-2006"),
		inst.RemainingIDR(),
	)
	if err := msgr.Send(ctx, to, body); err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Pengiriman pengingat gagal")
	}

	return db.WithContext(ctx).Model(&model.PlanInstallment{}).
		Where("plan_installment_id = ?", inst.PlanInstallmentID).
		Updates(map[string]any{
			"plan_installment_reminder_sent": true,
			"plan_installment_updated_at":    time.Now(),
		}).Error
}
