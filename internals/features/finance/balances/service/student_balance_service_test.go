// file: internals/features/finance/balances/service/student_balance_service_test.go
package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	database "schoolku_backend/internals/databases"
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

func TestApplyPaymentCreatesRowThenAccumulates(t *testing.T) {
	db := newTestDB(t)
	schoolID, studentID, termID := uuid.New(), uuid.New(), uuid.New()

	if err := ApplyPayment(db, schoolID, studentID, termID, 100000); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if err := ApplyPayment(db, schoolID, studentID, termID, 50000); err != nil {
		t.Fatalf("second apply: %v", err)
	}

	bal, err := GetBalance(context.Background(), db, schoolID, studentID, termID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if bal.StudentBalanceAmountPaidIDR != 150000 {
		t.Fatalf("amount paid = %d, want 150000", bal.StudentBalanceAmountPaidIDR)
	}
}

func TestApplyPaymentRejectsNonPositive(t *testing.T) {
	db := newTestDB(t)
	if err := ApplyPayment(db, uuid.New(), uuid.New(), uuid.New(), 0); fiberCode(t, err) != fiber.StatusBadRequest {
		t.Fatalf("zero payment should be 400")
	}
	if err := ApplyPayment(db, uuid.New(), uuid.New(), uuid.New(), -5); fiberCode(t, err) != fiber.StatusBadRequest {
		t.Fatalf("negative payment should be 400")
	}
}

func TestReversePaymentOnMissingRowIs404(t *testing.T) {
	db := newTestDB(t)
	err := ReversePayment(db, uuid.New(), uuid.New(), uuid.New(), 10000)
	if fiberCode(t, err) != fiber.StatusNotFound {
		t.Fatalf("reverse without row should be 404")
	}
}

func TestOutstandingComputation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	schoolID, studentID, termID := uuid.New(), uuid.New(), uuid.New()

	if err := SetTotalFees(ctx, db, schoolID, studentID, termID, 600000); err != nil {
		t.Fatalf("set fees: %v", err)
	}
	if err := SetPreviousBalance(ctx, db, schoolID, studentID, termID, 150000); err != nil {
		t.Fatalf("set previous: %v", err)
	}
	if err := ApplyPayment(db, schoolID, studentID, termID, 500000); err != nil {
		t.Fatalf("apply: %v", err)
	}

	bal, err := GetBalance(ctx, db, schoolID, studentID, termID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := bal.OutstandingIDR(); got != 250000 {
		t.Fatalf("outstanding = %d, want 250000", got)
	}
}

func TestOverpaymentGoesNegativeOutstanding(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	schoolID, studentID, termID := uuid.New(), uuid.New(), uuid.New()

	if err := SetTotalFees(ctx, db, schoolID, studentID, termID, 100000); err != nil {
		t.Fatalf("set fees: %v", err)
	}
	// pembayaran tidak di-cap ke tagihan
	if err := ApplyPayment(db, schoolID, studentID, termID, 130000); err != nil {
		t.Fatalf("apply: %v", err)
	}

	bal, err := GetBalance(ctx, db, schoolID, studentID, termID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := bal.OutstandingIDR(); got != -30000 {
		t.Fatalf("outstanding = %d, want -30000", got)
	}
}

func TestSetTotalFeesUpsertKeepsAmountPaid(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	schoolID, studentID, termID := uuid.New(), uuid.New(), uuid.New()

	if err := ApplyPayment(db, schoolID, studentID, termID, 40000); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := SetTotalFees(ctx, db, schoolID, studentID, termID, 200000); err != nil {
		t.Fatalf("set fees: %v", err)
	}
	if err := SetTotalFees(ctx, db, schoolID, studentID, termID, 250000); err != nil {
		t.Fatalf("set fees again: %v", err)
	}

	bal, err := GetBalance(ctx, db, schoolID, studentID, termID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if bal.StudentBalanceTotalFeesIDR != 250000 {
		t.Fatalf("total fees = %d, want 250000", bal.StudentBalanceTotalFeesIDR)
	}
	if bal.StudentBalanceAmountPaidIDR != 40000 {
		t.Fatalf("amount paid disturbed: %d", bal.StudentBalanceAmountPaidIDR)
	}
}

func TestGetBalanceMissingIs404(t *testing.T) {
	db := newTestDB(t)
	_, err := GetBalance(context.Background(), db, uuid.New(), uuid.New(), uuid.New())
	if fiberCode(t, err) != fiber.StatusNotFound {
		t.Fatalf("missing balance should be 404")
	}
}
