// file: internals/features/finance/audit/service/audit_recorder.go
package service

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/audit/model"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

// Recorder menulis jejak audit. Fire-and-forget: error hanya dicatat ke log
// dan TIDAK pernah menggagalkan operasi yang diaudit.
type Recorder struct {
	DB *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{DB: db}
}

func toJSON(v any) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

// Record menulis satu baris audit atas nama identitas pemanggil.
// before/after boleh nil.
func (r *Recorder) Record(actor helperAuth.Identity, action, entityType string, entityID *uuid.UUID, description string, before, after any) {
	row := model.AuditLog{
		AuditLogSchoolID:    actor.SchoolID,
		AuditLogUserID:      actor.UserID,
		AuditLogUserName:    actor.UserName,
		AuditLogAction:      action,
		AuditLogEntityType:  entityType,
		AuditLogEntityID:    entityID,
		AuditLogDescription: description,
		AuditLogBefore:      toJSON(before),
		AuditLogAfter:       toJSON(after),
	}
	if err := r.DB.Create(&row).Error; err != nil {
		log.Printf("⚠️ audit gagal ditulis (action=%s entity=%s): %v", action, entityType, err)
	}
}
