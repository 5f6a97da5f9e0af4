// file: internals/features/finance/budgets/service/budget_service.go
package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/features/finance/budgets/model"
	ledgerModel "schoolku_backend/internals/features/finance/ledger/model"
)

/* =========================================================
   ENUM status realisasi
========================================================= */

type BudgetStatus string

const (
	BudgetStatusOK       BudgetStatus = "ok"
	BudgetStatusWarning  BudgetStatus = "warning"
	BudgetStatusExceeded BudgetStatus = "exceeded"
)

type BudgetSummary struct {
	CategoryID   uuid.UUID              `json:"category_id"`
	PeriodType   model.BudgetPeriodType `json:"period_type"`
	Year         int                    `json:"year"`
	Month        int                    `json:"month,omitempty"`
	PlannedIDR   int64                  `json:"planned_idr"`
	ActualIDR    int64                  `json:"actual_idr"`
	Percentage   float64                `json:"percentage"`
	BudgetStatus BudgetStatus           `json:"status"`
}

/* =========================================================
   UPSERT — satu angka rencana per kunci periode, tanpa histori
========================================================= */

type UpsertBudgetInput struct {
	SchoolID   uuid.UUID
	CategoryID uuid.UUID
	PeriodType model.BudgetPeriodType
	Year       int
	Month      int // 0 untuk yearly
	AmountIDR  int64
}

func (in *UpsertBudgetInput) validate() error {
	switch in.PeriodType {
	case model.BudgetPeriodMonthly:
		if in.Month < 1 || in.Month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "Bulan harus 1-12 untuk anggaran bulanan")
		}
	case model.BudgetPeriodYearly:
		if in.Month != 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Anggaran tahunan tidak memakai bulan")
		}
	default:
		return fiber.NewError(fiber.StatusBadRequest, "Tipe periode tidak dikenal")
	}
	if in.Year < 2000 || in.Year > 2200 {
		return fiber.NewError(fiber.StatusBadRequest, "Tahun tidak valid")
	}
	if in.AmountIDR < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Nominal anggaran tidak boleh negatif")
	}
	return nil
}

func UpsertBudget(ctx context.Context, db *gorm.DB, in UpsertBudgetInput) (*model.Budget, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	row := model.Budget{
		BudgetSchoolID:   in.SchoolID,
		BudgetCategoryID: in.CategoryID,
		BudgetPeriodType: in.PeriodType,
		BudgetYear:       in.Year,
		BudgetMonth:      in.Month,
		BudgetAmountIDR:  in.AmountIDR,
	}
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "budget_school_id"},
			{Name: "budget_category_id"},
			{Name: "budget_period_type"},
			{Name: "budget_year"},
			{Name: "budget_month"},
		},
		DoUpdates: clause.Assignments(map[string]any{
			"budget_amount_idr": in.AmountIDR,
			"budget_updated_at": time.Now(),
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	// baca balik supaya ID/timestamp konsisten setelah conflict-update
	var saved model.Budget
	if err := db.WithContext(ctx).
		Where("budget_school_id = ? AND budget_category_id = ? AND budget_period_type = ? AND budget_year = ? AND budget_month = ?",
			in.SchoolID, in.CategoryID, in.PeriodType, in.Year, in.Month).
		First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

/* =========================================================
   SUMMARIZE — aktual dihitung dari expense non-void di jendela kalender
========================================================= */

func periodWindow(periodType model.BudgetPeriodType, year, month int) (time.Time, time.Time) {
	if periodType == model.BudgetPeriodMonthly {
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
		return start, start.AddDate(0, 1, 0)
	}
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(1, 0, 0)
}

func actualSpend(ctx context.Context, db *gorm.DB, schoolID, categoryID uuid.UUID, from, to time.Time) (int64, error) {
	var actual int64
	err := db.WithContext(ctx).Model(&ledgerModel.Transaction{}).
		Select("COALESCE(SUM(transaction_amount_idr), 0)").
		Where("transaction_school_id = ?", schoolID).
		Where("transaction_type = ?", ledgerModel.TransactionTypeExpense).
		Where("transaction_is_voided = ?", false).
		Where("transaction_category_id = ?", categoryID).
		Where("transaction_date >= ? AND transaction_date < ?", from, to).
		Scan(&actual).Error
	return actual, err
}

func classify(plannedIDR, actualIDR int64) (float64, BudgetStatus) {
	if plannedIDR <= 0 {
		return 0, BudgetStatusOK
	}
	pct := math.Round(float64(actualIDR)/float64(plannedIDR)*1000) / 10
	switch {
	case pct >= 100:
		return pct, BudgetStatusExceeded
	case pct >= 80:
		return pct, BudgetStatusWarning
	default:
		return pct, BudgetStatusOK
	}
}

// Summarize untuk satu kategori pada satu periode.
func Summarize(ctx context.Context, db *gorm.DB, schoolID, categoryID uuid.UUID, periodType model.BudgetPeriodType, year, month int) (*BudgetSummary, error) {
	in := UpsertBudgetInput{SchoolID: schoolID, CategoryID: categoryID, PeriodType: periodType, Year: year, Month: month}
	if err := in.validate(); err != nil {
		return nil, err
	}

	var budget model.Budget
	err := db.WithContext(ctx).
		Where("budget_school_id = ? AND budget_category_id = ? AND budget_period_type = ? AND budget_year = ? AND budget_month = ?",
			schoolID, categoryID, periodType, year, month).
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Anggaran untuk periode tersebut belum diatur")
		}
		return nil, err
	}

	from, to := periodWindow(periodType, year, month)
	actual, err := actualSpend(ctx, db, schoolID, categoryID, from, to)
	if err != nil {
		return nil, err
	}

	pct, status := classify(budget.BudgetAmountIDR, actual)
	return &BudgetSummary{
		CategoryID:   categoryID,
		PeriodType:   periodType,
		Year:         year,
		Month:        month,
		PlannedIDR:   budget.BudgetAmountIDR,
		ActualIDR:    actual,
		Percentage:   pct,
		BudgetStatus: status,
	}, nil
}

// SummarizePeriod melaporkan seluruh anggaran pada satu periode sekaligus.
func SummarizePeriod(ctx context.Context, db *gorm.DB, schoolID uuid.UUID, periodType model.BudgetPeriodType, year, month int) ([]BudgetSummary, error) {
	var budgets []model.Budget
	err := db.WithContext(ctx).
		Where("budget_school_id = ? AND budget_period_type = ? AND budget_year = ? AND budget_month = ?",
			schoolID, periodType, year, month).
		Order("budget_created_at ASC").
		Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	from, to := periodWindow(periodType, year, month)
	out := make([]BudgetSummary, 0, len(budgets))
	for _, b := range budgets {
		actual, err := actualSpend(ctx, db, schoolID, b.BudgetCategoryID, from, to)
		if err != nil {
			return nil, err
		}
		pct, status := classify(b.BudgetAmountIDR, actual)
		out = append(out, BudgetSummary{
			CategoryID:   b.BudgetCategoryID,
			PeriodType:   periodType,
			Year:         year,
			Month:        month,
			PlannedIDR:   b.BudgetAmountIDR,
			ActualIDR:    actual,
			Percentage:   pct,
			BudgetStatus: status,
		})
	}
	return out, nil
}
