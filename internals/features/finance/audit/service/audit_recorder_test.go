// file: internals/features/finance/audit/service/audit_recorder_test.go
package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	database "schoolku_backend/internals/databases"
	"schoolku_backend/internals/features/finance/audit/model"
	helperAuth "schoolku_backend/internals/helpers/auth"
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

func TestRecordWritesRowWithSnapshots(t *testing.T) {
	db := newTestDB(t)
	rec := NewRecorder(db)

	actor := helperAuth.Identity{
		SchoolID: uuid.New(),
		UserID:   uuid.New(),
		UserName: "bendahara",
		Role:     "admin",
	}
	entityID := uuid.New()

	rec.Record(actor, "transaction.void", "transaction", &entityID, "salah input",
		map[string]any{"amount": 100000},
		map[string]any{"amount": 100000, "voided": true},
	)

	var row model.AuditLog
	if err := db.First(&row, "audit_log_school_id = ?", actor.SchoolID).Error; err != nil {
		t.Fatalf("audit row not written: %v", err)
	}
	if row.AuditLogAction != "transaction.void" || row.AuditLogEntityType != "transaction" {
		t.Fatalf("action/entity mismatch: %s/%s", row.AuditLogAction, row.AuditLogEntityType)
	}
	if row.AuditLogEntityID == nil || *row.AuditLogEntityID != entityID {
		t.Fatalf("entity id mismatch")
	}
	if len(row.AuditLogBefore) == 0 || len(row.AuditLogAfter) == 0 {
		t.Fatalf("snapshots missing")
	}
}

func TestRecordNilSnapshotsAreAllowed(t *testing.T) {
	db := newTestDB(t)
	rec := NewRecorder(db)

	actor := helperAuth.Identity{SchoolID: uuid.New(), UserID: uuid.New(), UserName: "admin"}
	rec.Record(actor, "installment.sweep_overdue", "plan_installment", nil, "", nil, nil)

	var count int64
	if err := db.Model(&model.AuditLog{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("rows = %d, want 1", count)
	}
}

func TestRecordNeverPanicsOnBrokenDB(t *testing.T) {
	db := newTestDB(t)
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	_ = sqlDB.Close()

	rec := NewRecorder(db)
	actor := helperAuth.Identity{SchoolID: uuid.New(), UserID: uuid.New()}
	// koneksi mati: cukup tidak panic dan tidak mengembalikan error ke pemanggil
	rec.Record(actor, "budget.upsert", "budget", nil, "", nil, nil)
}
