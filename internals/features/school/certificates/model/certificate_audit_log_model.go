// file: internals/features/school/certificates/model/certificate_audit_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ========================= ENUMS =========================

type AuditEntityType string
type AuditAction string

const (
	AuditEntityGraduationBatch AuditEntityType = "graduation_batch"
	AuditEntityCertificate     AuditEntityType = "certificate"
	AuditEntityCourseStudent   AuditEntityType = "course_student"

	AuditActionCreated   AuditAction = "created"
	AuditActionUpdated   AuditAction = "updated"
	AuditActionGenerated AuditAction = "generated"
	AuditActionApproved  AuditAction = "approved"
	AuditActionIssued    AuditAction = "issued"
	AuditActionDeleted   AuditAction = "deleted"
)

// ========================= MODEL =========================

// CertificateAuditLogModel: append-only. Tidak ada path update/delete —
// BeforeUpdate/BeforeDelete menolak supaya salah pakai ketahuan di dev.
type CertificateAuditLogModel struct {
	CertificateAuditLogID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:certificate_audit_log_id" json:"certificate_audit_log_id"`

	CertificateAuditLogEntityType AuditEntityType `gorm:"type:text;not null;column:certificate_audit_log_entity_type;index:idx_certificate_audit_logs_entity,priority:1" json:"certificate_audit_log_entity_type"`
	CertificateAuditLogEntityID   uuid.UUID       `gorm:"type:uuid;not null;column:certificate_audit_log_entity_id;index:idx_certificate_audit_logs_entity,priority:2" json:"certificate_audit_log_entity_id"`
	CertificateAuditLogAction     AuditAction     `gorm:"type:text;not null;column:certificate_audit_log_action" json:"certificate_audit_log_action"`

	CertificateAuditLogPerformedBy uuid.UUID      `gorm:"type:uuid;not null;column:certificate_audit_log_performed_by" json:"certificate_audit_log_performed_by"`
	CertificateAuditLogPerformedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:certificate_audit_log_performed_at;index:idx_certificate_audit_logs_performed_at,sort:desc" json:"certificate_audit_log_performed_at"`
	CertificateAuditLogMetadata    datatypes.JSON `gorm:"type:jsonb;column:certificate_audit_log_metadata" json:"certificate_audit_log_metadata,omitempty"`
}

func (CertificateAuditLogModel) TableName() string { return "certificate_audit_logs" }

func (m *CertificateAuditLogModel) BeforeCreate(tx *gorm.DB) error {
	if m.CertificateAuditLogID == uuid.Nil {
		m.CertificateAuditLogID = uuid.New()
	}
	return nil
}

func (m *CertificateAuditLogModel) BeforeUpdate(tx *gorm.DB) error {
	return gorm.ErrInvalidData // audit log append-only
}

func (m *CertificateAuditLogModel) BeforeDelete(tx *gorm.DB) error {
	return gorm.ErrInvalidData // audit log append-only
}
