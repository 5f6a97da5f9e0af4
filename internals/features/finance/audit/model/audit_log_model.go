// file: internals/features/finance/audit/model/audit_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog mencatat jejak tiap operasi mutasi keuangan. Append-only;
// kegagalan menulis audit TIDAK boleh menggagalkan operasi induknya.
type AuditLog struct {
	AuditLogID       uuid.UUID `gorm:"column:audit_log_id;type:uuid;primaryKey" json:"audit_log_id"`
	AuditLogSchoolID uuid.UUID `gorm:"column:audit_log_school_id;type:uuid;not null;index:ix_audit_log_school" json:"audit_log_school_id"`

	AuditLogUserID   uuid.UUID `gorm:"column:audit_log_user_id;type:uuid;not null" json:"audit_log_user_id"`
	AuditLogUserName string    `gorm:"column:audit_log_user_name;type:varchar(100);not null;default:''" json:"audit_log_user_name"`

	AuditLogAction     string     `gorm:"column:audit_log_action;type:varchar(60);not null;index:ix_audit_log_action" json:"audit_log_action"`
	AuditLogEntityType string     `gorm:"column:audit_log_entity_type;type:varchar(60);not null" json:"audit_log_entity_type"`
	AuditLogEntityID   *uuid.UUID `gorm:"column:audit_log_entity_id;type:uuid;index" json:"audit_log_entity_id,omitempty"`

	AuditLogDescription string `gorm:"column:audit_log_description;type:text;not null;default:''" json:"audit_log_description"`

	// Snapshot sebelum/sesudah (JSONB di Postgres)
	AuditLogBefore datatypes.JSON `gorm:"column:audit_log_before" json:"audit_log_before,omitempty"`
	AuditLogAfter  datatypes.JSON `gorm:"column:audit_log_after" json:"audit_log_after,omitempty"`

	AuditLogCreatedAt time.Time `gorm:"column:audit_log_created_at;not null" json:"audit_log_created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }

func (m *AuditLog) BeforeCreate(tx *gorm.DB) (err error) {
	if m.AuditLogID == uuid.Nil {
		m.AuditLogID = uuid.New()
	}
	if m.AuditLogCreatedAt.IsZero() {
		m.AuditLogCreatedAt = time.Now()
	}
	return nil
}
