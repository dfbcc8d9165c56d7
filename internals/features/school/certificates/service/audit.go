// file: internals/features/school/certificates/service/audit.go
package service

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	certmodel "schoolku_backend/internals/features/school/certificates/model"
)

// WriteAuditLog menulis satu baris audit append-only. Dipanggil dari dalam
// transaksi yang sama dengan mutasi yang dicatat, supaya log dan datanya
// commit/rollback bareng.
func WriteAuditLog(tx *gorm.DB, entityType certmodel.AuditEntityType, entityID uuid.UUID, action certmodel.AuditAction, actorID uuid.UUID, metadata map[string]any) error {
	row := certmodel.CertificateAuditLogModel{
		CertificateAuditLogEntityType:  entityType,
		CertificateAuditLogEntityID:    entityID,
		CertificateAuditLogAction:      action,
		CertificateAuditLogPerformedBy: actorID,
		CertificateAuditLogPerformedAt: time.Now(),
	}
	if len(metadata) > 0 {
		b, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		row.CertificateAuditLogMetadata = datatypes.JSON(b)
	}
	return tx.Create(&row).Error
}
