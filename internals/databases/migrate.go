package database

import (
	"log"

	"gorm.io/gorm"

	auditModel "schoolku_backend/internals/features/finance/audit/model"
	balanceModel "schoolku_backend/internals/features/finance/balances/model"
	budgetModel "schoolku_backend/internals/features/finance/budgets/model"
	categoryModel "schoolku_backend/internals/features/finance/categories/model"
	ledgerModel "schoolku_backend/internals/features/finance/ledger/model"
	planModel "schoolku_backend/internals/features/finance/plans/model"
)

// AutoMigrateFinance memastikan semua tabel keuangan tersedia.
// Dipakai saat bootstrap dan oleh test (sqlite in-memory).
func AutoMigrateFinance(db *gorm.DB) error {
	return db.AutoMigrate(
		&categoryModel.TransactionCategory{},
		&ledgerModel.Transaction{},
		&ledgerModel.ReceiptCounter{},
		&balanceModel.StudentBalance{},
		&planModel.PaymentPlan{},
		&planModel.StudentPaymentPlan{},
		&planModel.PlanInstallment{},
		&budgetModel.Budget{},
		&auditModel.AuditLog{},
	)
}

func MigrateOrDie(db *gorm.DB) {
	if err := AutoMigrateFinance(db); err != nil {
		log.Fatalf("❌ Gagal migrate tabel keuangan: %v", err)
	}
	log.Println("✅ Migrasi tabel keuangan selesai.")
}
