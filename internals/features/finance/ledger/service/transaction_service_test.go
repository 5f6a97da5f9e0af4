// file: internals/features/finance/ledger/service/transaction_service_test.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	balanceModel "schoolku_backend/internals/features/finance/balances/model"
	database "schoolku_backend/internals/databases"
	"schoolku_backend/internals/features/finance/ledger/model"
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

func incomeInput(schoolID uuid.UUID, amount int64) CreateTransactionInput {
	method := model.PaymentMethodCash
	return CreateTransactionInput{
		SchoolID:      schoolID,
		Type:          model.TransactionTypeIncome,
		Date:          time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local),
		Description:   "SPP Maret",
		AmountIDR:     amount,
		PaymentMethod: &method,
		ActorUserID:   uuid.New(),
		ActorUserName: "bendahara",
	}
}

func TestCreateIncomeAllocatesSequentialReceipts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	schoolID := uuid.New()

	seen := map[int64]bool{}
	for i := 0; i < 5; i++ {
		trx, err := CreateTransaction(ctx, db, incomeInput(schoolID, 50000))
		if err != nil {
			t.Fatalf("create income #%d: %v", i, err)
		}
		if trx.TransactionReceiptNumber == nil || trx.TransactionReceiptCode == nil {
			t.Fatalf("income #%d missing receipt", i)
		}
		n := *trx.TransactionReceiptNumber
		if n != int64(i+1) {
			t.Fatalf("receipt number = %d, want %d", n, i+1)
		}
		if seen[n] {
			t.Fatalf("duplicate receipt number %d", n)
		}
		seen[n] = true
	}

	// sekolah lain mulai dari 1 lagi
	other, err := CreateTransaction(ctx, db, incomeInput(uuid.New(), 50000))
	if err != nil {
		t.Fatalf("create income other school: %v", err)
	}
	if *other.TransactionReceiptNumber != 1 {
		t.Fatalf("other school receipt = %d, want 1", *other.TransactionReceiptNumber)
	}
}

func TestCreateExpenseSkipsReceipt(t *testing.T) {
	db := newTestDB(t)
	trx, err := CreateTransaction(context.Background(), db, CreateTransactionInput{
		SchoolID:    uuid.New(),
		Type:        model.TransactionTypeExpense,
		Date:        time.Now(),
		Description: "Beli spidol",
		AmountIDR:   30000,
		ActorUserID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}
	if trx.TransactionReceiptNumber != nil || trx.TransactionReceiptCode != nil {
		t.Fatalf("expense must not carry a receipt")
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	schoolID := uuid.New()
	studentID := uuid.New()

	// income tanpa metode pembayaran
	in := incomeInput(schoolID, 50000)
	in.PaymentMethod = nil
	if _, err := CreateTransaction(ctx, db, in); fiberCode(t, err) != fiber.StatusBadRequest {
		t.Fatalf("income without method should be 400")
	}

	// student tanpa term
	in = incomeInput(schoolID, 50000)
	in.StudentID = &studentID
	if _, err := CreateTransaction(ctx, db, in); fiberCode(t, err) != fiber.StatusBadRequest {
		t.Fatalf("student without term should be 400")
	}

	// expense menempel ke siswa
	termID := uuid.New()
	if _, err := CreateTransaction(ctx, db, CreateTransactionInput{
		SchoolID:    schoolID,
		Type:        model.TransactionTypeExpense,
		Date:        time.Now(),
		Description: "salah",
		AmountIDR:   10000,
		StudentID:   &studentID,
		TermID:      &termID,
	}); fiberCode(t, err) != fiber.StatusBadRequest {
		t.Fatalf("expense with student ref should be 400")
	}

	// nominal nol
	in = incomeInput(schoolID, 0)
	if _, err := CreateTransaction(ctx, db, in); fiberCode(t, err) != fiber.StatusBadRequest {
		t.Fatalf("zero amount should be 400")
	}
}

func TestFeePaymentMovesBalanceAndVoidReverses(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	schoolID := uuid.New()
	studentID := uuid.New()
	termID := uuid.New()

	in := incomeInput(schoolID, 150000)
	in.StudentID = &studentID
	in.TermID = &termID

	trx, err := CreateTransaction(ctx, db, in)
	if err != nil {
		t.Fatalf("create fee payment: %v", err)
	}

	var bal balanceModel.StudentBalance
	if err := db.Where("student_balance_student_id = ? AND student_balance_term_id = ?", studentID, termID).
		First(&bal).Error; err != nil {
		t.Fatalf("balance row not created: %v", err)
	}
	if bal.StudentBalanceAmountPaidIDR != 150000 {
		t.Fatalf("amount paid = %d, want 150000", bal.StudentBalanceAmountPaidIDR)
	}

	// void mengembalikan saldo dalam transaksi yang sama
	voided, err := VoidTransaction(ctx, db, schoolID, trx.TransactionID, "salah input", uuid.New(), "admin")
	if err != nil {
		t.Fatalf("void: %v", err)
	}
	if !voided.TransactionIsVoided || voided.TransactionVoidedAt == nil {
		t.Fatalf("void flags not set")
	}

	if err := db.Where("student_balance_student_id = ?", studentID).First(&bal).Error; err != nil {
		t.Fatalf("re-read balance: %v", err)
	}
	if bal.StudentBalanceAmountPaidIDR != 0 {
		t.Fatalf("amount paid after void = %d, want 0", bal.StudentBalanceAmountPaidIDR)
	}
}

func TestVoidTwiceIsConflict(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	schoolID := uuid.New()

	trx, err := CreateTransaction(ctx, db, incomeInput(schoolID, 75000))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := VoidTransaction(ctx, db, schoolID, trx.TransactionID, "dobel", uuid.New(), "admin"); err != nil {
		t.Fatalf("first void: %v", err)
	}
	_, err = VoidTransaction(ctx, db, schoolID, trx.TransactionID, "dobel lagi", uuid.New(), "admin")
	if fiberCode(t, err) != fiber.StatusConflict {
		t.Fatalf("second void should be 409")
	}
}

func TestVoidRequiresReason(t *testing.T) {
	db := newTestDB(t)
	_, err := VoidTransaction(context.Background(), db, uuid.New(), uuid.New(), "   ", uuid.New(), "admin")
	if fiberCode(t, err) != fiber.StatusBadRequest {
		t.Fatalf("blank reason should be 400")
	}
}

func TestAmendRejectedOnVoidedAndDoesNotTouchBalance(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	schoolID := uuid.New()
	studentID := uuid.New()
	termID := uuid.New()

	in := incomeInput(schoolID, 100000)
	in.StudentID = &studentID
	in.TermID = &termID
	trx, err := CreateTransaction(ctx, db, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// amend nominal: entri berubah, saldo TIDAK ikut berubah
	newAmount := int64(120000)
	amended, err := AmendTransaction(ctx, db, schoolID, trx.TransactionID, AmendTransactionInput{AmountIDR: &newAmount})
	if err != nil {
		t.Fatalf("amend: %v", err)
	}
	if amended.TransactionAmountIDR != 120000 {
		t.Fatalf("amount = %d, want 120000", amended.TransactionAmountIDR)
	}
	var bal balanceModel.StudentBalance
	if err := db.Where("student_balance_student_id = ?", studentID).First(&bal).Error; err != nil {
		t.Fatalf("read balance: %v", err)
	}
	if bal.StudentBalanceAmountPaidIDR != 100000 {
		t.Fatalf("amend must not move balance, got %d", bal.StudentBalanceAmountPaidIDR)
	}

	if _, err := VoidTransaction(ctx, db, schoolID, trx.TransactionID, "batal", uuid.New(), "admin"); err != nil {
		t.Fatalf("void: %v", err)
	}
	desc := "diubah"
	_, err = AmendTransaction(ctx, db, schoolID, trx.TransactionID, AmendTransactionInput{Description: &desc})
	if fiberCode(t, err) != fiber.StatusConflict {
		t.Fatalf("amend on voided should be 409")
	}
}

func TestAmendNotFound(t *testing.T) {
	db := newTestDB(t)
	desc := "x"
	_, err := AmendTransaction(context.Background(), db, uuid.New(), uuid.New(), AmendTransactionInput{Description: &desc})
	if fiberCode(t, err) != fiber.StatusNotFound {
		t.Fatalf("missing transaction should be 404")
	}
}

func TestListTransactionsFilters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	schoolID := uuid.New()

	for i := 0; i < 3; i++ {
		if _, err := CreateTransaction(ctx, db, incomeInput(schoolID, 10000)); err != nil {
			t.Fatalf("seed income: %v", err)
		}
	}
	exp, err := CreateTransaction(ctx, db, CreateTransactionInput{
		SchoolID:    schoolID,
		Type:        model.TransactionTypeExpense,
		Date:        time.Now(),
		Description: "listrik",
		AmountIDR:   200000,
		ActorUserID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("seed expense: %v", err)
	}
	if _, err := VoidTransaction(ctx, db, schoolID, exp.TransactionID, "salah", uuid.New(), "admin"); err != nil {
		t.Fatalf("void expense: %v", err)
	}

	tt := model.TransactionTypeIncome
	rows, total, err := ListTransactions(ctx, db, schoolID, ListTransactionsFilter{Type: &tt, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(rows) != 3 {
		t.Fatalf("income filter: total=%d rows=%d, want 3/3", total, len(rows))
	}

	voided := true
	rows, total, err = ListTransactions(ctx, db, schoolID, ListTransactionsFilter{Voided: &voided, Limit: 10})
	if err != nil {
		t.Fatalf("list voided: %v", err)
	}
	if total != 1 || rows[0].TransactionID != exp.TransactionID {
		t.Fatalf("voided filter mismatch, total=%d", total)
	}

	// scope antar sekolah ketat
	_, total, err = ListTransactions(ctx, db, uuid.New(), ListTransactionsFilter{Limit: 10})
	if err != nil {
		t.Fatalf("list other school: %v", err)
	}
	if total != 0 {
		t.Fatalf("other school sees %d rows, want 0", total)
	}
}

func TestTextReceiptRenderer(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	schoolID := uuid.New()

	trx, err := CreateTransaction(ctx, db, incomeInput(schoolID, 250000))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	r := &TextReceiptRenderer{SchoolName: "SD Harapan"}
	doc, err := r.Render(trx)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"KWITANSI", "SD Harapan", *trx.TransactionReceiptCode, "Rp 250000"} {
		if !strings.Contains(doc, want) {
			t.Fatalf("receipt missing %q in:\n%s", want, doc)
		}
	}

	// expense tidak punya kwitansi
	exp, err := CreateTransaction(ctx, db, CreateTransactionInput{
		SchoolID:    schoolID,
		Type:        model.TransactionTypeExpense,
		Date:        time.Now(),
		Description: "ATK",
		AmountIDR:   5000,
		ActorUserID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}
	if _, err := r.Render(exp); fiberCode(t, err) != fiber.StatusBadRequest {
		t.Fatalf("rendering an expense should be 400")
	}

	// transaksi void tetap bisa dirender, dengan penanda batal
	if _, err := VoidTransaction(ctx, db, schoolID, trx.TransactionID, "contoh", uuid.New(), "admin"); err != nil {
		t.Fatalf("void: %v", err)
	}
	voided, err := GetTransaction(ctx, db, schoolID, trx.TransactionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	doc, err = r.Render(voided)
	if err != nil {
		t.Fatalf("render voided: %v", err)
	}
	if !strings.Contains(doc, "DIBATALKAN") {
		t.Fatalf("voided receipt missing marker:\n%s", doc)
	}
}

func TestReceiptCodeFormat(t *testing.T) {
	schoolID := uuid.MustParse("aabbccdd-0000-0000-0000-000000000000")
	code := FormatReceiptCode(schoolID, 42)
	if code != "KWT-AABBCCDD-000042" {
		t.Fatalf("code = %q", code)
	}
}
