// file: internals/features/finance/budgets/service/budget_service_test.go
package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	database "schoolku_backend/internals/databases"
	"schoolku_backend/internals/features/finance/budgets/model"
	ledgerSvc "schoolku_backend/internals/features/finance/ledger/service"
	ledgerModel "schoolku_backend/internals/features/finance/ledger/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrateFinance(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *fiber.Error, got %T: %v", err, err)
	}
	return fe.Code
}

func seedExpense(t *testing.T, db *gorm.DB, schoolID, categoryID uuid.UUID, date time.Time, amount int64) *ledgerModel.Transaction {
	t.Helper()
	trx, err := ledgerSvc.CreateTransaction(context.Background(), db, ledgerSvc.CreateTransactionInput{
		SchoolID:    schoolID,
		Type:        ledgerModel.TransactionTypeExpense,
		Date:        date,
		CategoryID:  &categoryID,
		Description: "operasional",
		AmountIDR:   amount,
		ActorUserID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("seed expense: %v", err)
	}
	return trx
}

func TestUpsertBudgetValidation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	base := UpsertBudgetInput{
		SchoolID:   uuid.New(),
		CategoryID: uuid.New(),
		PeriodType: model.BudgetPeriodMonthly,
		Year:       2026,
		Month:      3,
		AmountIDR:  1000000,
	}

	bad := base
	bad.Month = 13
	if _, err := UpsertBudget(ctx, db, bad); fiberCode(t, err) != fiber.StatusBadRequest {
		t.Fatalf("month 13 should be 400")
	}

	bad = base
	bad.PeriodType = model.BudgetPeriodYearly
	if _, err := UpsertBudget(ctx, db, bad); fiberCode(t, err) != fiber.StatusBadRequest {
		t.Fatalf("yearly with month should be 400")
	}

	bad = base
	bad.AmountIDR = -1
	if _, err := UpsertBudget(ctx, db, bad); fiberCode(t, err) != fiber.StatusBadRequest {
		t.Fatalf("negative amount should be 400")
	}
}

func TestUpsertBudgetReplacesAmount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	in := UpsertBudgetInput{
		SchoolID:   uuid.New(),
		CategoryID: uuid.New(),
		PeriodType: model.BudgetPeriodMonthly,
		Year:       2026,
		Month:      4,
		AmountIDR:  500000,
	}

	first, err := UpsertBudget(ctx, db, in)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	in.AmountIDR = 750000
	second, err := UpsertBudget(ctx, db, in)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.BudgetID != first.BudgetID {
		t.Fatalf("upsert created a new row")
	}
	if second.BudgetAmountIDR != 750000 {
		t.Fatalf("amount = %d, want 750000", second.BudgetAmountIDR)
	}

	var count int64
	if err := db.Model(&model.Budget{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("rows = %d, want 1", count)
	}
}

func TestSummarizeClassification(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	schoolID := uuid.New()
	categoryID := uuid.New()
	march := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)

	if _, err := UpsertBudget(ctx, db, UpsertBudgetInput{
		SchoolID: schoolID, CategoryID: categoryID,
		PeriodType: model.BudgetPeriodMonthly, Year: 2026, Month: 3, AmountIDR: 1000000,
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	seedExpense(t, db, schoolID, categoryID, march, 750000)

	sum, err := Summarize(ctx, db, schoolID, categoryID, model.BudgetPeriodMonthly, 2026, 3)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if sum.ActualIDR != 750000 || sum.Percentage != 75.0 || sum.BudgetStatus != BudgetStatusOK {
		t.Fatalf("got actual=%d pct=%v status=%s, want 750000/75.0/ok", sum.ActualIDR, sum.Percentage, sum.BudgetStatus)
	}

	// naik ke warning
	seedExpense(t, db, schoolID, categoryID, march, 100000)
	sum, err = Summarize(ctx, db, schoolID, categoryID, model.BudgetPeriodMonthly, 2026, 3)
	if err != nil {
		t.Fatalf("summarize warning: %v", err)
	}
	if sum.Percentage != 85.0 || sum.BudgetStatus != BudgetStatusWarning {
		t.Fatalf("got pct=%v status=%s, want 85.0/warning", sum.Percentage, sum.BudgetStatus)
	}

	// lewat 100% → exceeded
	seedExpense(t, db, schoolID, categoryID, march, 200000)
	sum, err = Summarize(ctx, db, schoolID, categoryID, model.BudgetPeriodMonthly, 2026, 3)
	if err != nil {
		t.Fatalf("summarize exceeded: %v", err)
	}
	if sum.Percentage != 105.0 || sum.BudgetStatus != BudgetStatusExceeded {
		t.Fatalf("got pct=%v status=%s, want 105.0/exceeded", sum.Percentage, sum.BudgetStatus)
	}
}

func TestSummarizeExcludesVoidedAndOtherWindows(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	schoolID := uuid.New()
	categoryID := uuid.New()
	march := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)

	if _, err := UpsertBudget(ctx, db, UpsertBudgetInput{
		SchoolID: schoolID, CategoryID: categoryID,
		PeriodType: model.BudgetPeriodMonthly, Year: 2026, Month: 3, AmountIDR: 1000000,
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	seedExpense(t, db, schoolID, categoryID, march, 300000)
	voided := seedExpense(t, db, schoolID, categoryID, march, 400000)
	if _, err := ledgerSvc.VoidTransaction(ctx, db, schoolID, voided.TransactionID, "salah", uuid.New(), "admin"); err != nil {
		t.Fatalf("void: %v", err)
	}
	// bulan lain, di luar jendela
	seedExpense(t, db, schoolID, categoryID, time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local), 999000)
	// kategori lain
	seedExpense(t, db, schoolID, uuid.New(), march, 888000)

	sum, err := Summarize(ctx, db, schoolID, categoryID, model.BudgetPeriodMonthly, 2026, 3)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if sum.ActualIDR != 300000 {
		t.Fatalf("actual = %d, want 300000", sum.ActualIDR)
	}
}

func TestSummarizeMissingBudgetIs404(t *testing.T) {
	db := newTestDB(t)
	_, err := Summarize(context.Background(), db, uuid.New(), uuid.New(), model.BudgetPeriodMonthly, 2026, 5)
	if fiberCode(t, err) != fiber.StatusNotFound {
		t.Fatalf("missing budget should be 404")
	}
}

func TestSummarizePeriodYearlyWindow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	schoolID := uuid.New()
	catA, catB := uuid.New(), uuid.New()

	for _, cat := range []uuid.UUID{catA, catB} {
		if _, err := UpsertBudget(ctx, db, UpsertBudgetInput{
			SchoolID: schoolID, CategoryID: cat,
			PeriodType: model.BudgetPeriodYearly, Year: 2026, Month: 0, AmountIDR: 2000000,
		}); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	seedExpense(t, db, schoolID, catA, time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local), 500000)
	seedExpense(t, db, schoolID, catA, time.Date(2026, 11, 1, 0, 0, 0, 0, time.Local), 700000)
	// tahun lain
	seedExpense(t, db, schoolID, catB, time.Date(2025, 12, 31, 0, 0, 0, 0, time.Local), 999000)

	sums, err := SummarizePeriod(ctx, db, schoolID, model.BudgetPeriodYearly, 2026, 0)
	if err != nil {
		t.Fatalf("summarize period: %v", err)
	}
	if len(sums) != 2 {
		t.Fatalf("summaries = %d, want 2", len(sums))
	}
	byCat := map[uuid.UUID]BudgetSummary{}
	for _, s := range sums {
		byCat[s.CategoryID] = s
	}
	if byCat[catA].ActualIDR != 1200000 {
		t.Fatalf("catA actual = %d, want 1200000", byCat[catA].ActualIDR)
	}
	if byCat[catB].ActualIDR != 0 {
		t.Fatalf("catB actual = %d, want 0", byCat[catB].ActualIDR)
	}
}
