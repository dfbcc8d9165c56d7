// file: internals/features/school/certificates/model/certificate_template_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CertificateTemplateModel: desain sertifikat per organisasi.
// Maksimal SATU default per org — flip default dilakukan transaksional
// (unset semua sibling dulu) di controller.
type CertificateTemplateModel struct {
	CertificateTemplateID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:certificate_template_id" json:"certificate_template_id"`

	CertificateTemplateOrgID uuid.UUID `gorm:"type:uuid;not null;column:certificate_template_org_id;index:idx_certificate_templates_org" json:"certificate_template_org_id"`

	CertificateTemplateName                string         `gorm:"size:120;not null;column:certificate_template_name" json:"certificate_template_name"`
	CertificateTemplateDescription         *string        `gorm:"type:text;column:certificate_template_description" json:"certificate_template_description,omitempty"`
	CertificateTemplateBackgroundImagePath *string        `gorm:"size:255;column:certificate_template_background_image_path" json:"certificate_template_background_image_path,omitempty"`
	CertificateTemplateLayoutConfig        datatypes.JSON `gorm:"type:jsonb;column:certificate_template_layout_config" json:"certificate_template_layout_config,omitempty"`

	CertificateTemplateIsDefault bool `gorm:"not null;default:false;column:certificate_template_is_default;index:idx_certificate_templates_default" json:"certificate_template_is_default"`
	CertificateTemplateIsActive  bool `gorm:"not null;default:true;column:certificate_template_is_active" json:"certificate_template_is_active"`

	CertificateTemplateCreatedAt time.Time      `gorm:"column:certificate_template_created_at;autoCreateTime" json:"certificate_template_created_at"`
	CertificateTemplateUpdatedAt time.Time      `gorm:"column:certificate_template_updated_at;autoUpdateTime" json:"certificate_template_updated_at"`
	CertificateTemplateDeletedAt gorm.DeletedAt `gorm:"column:certificate_template_deleted_at;index" json:"certificate_template_deleted_at,omitempty"`
}

func (CertificateTemplateModel) TableName() string { return "certificate_templates" }

func (m *CertificateTemplateModel) BeforeCreate(tx *gorm.DB) error {
	if m.CertificateTemplateID == uuid.Nil {
		m.CertificateTemplateID = uuid.New()
	}
	return nil
}
