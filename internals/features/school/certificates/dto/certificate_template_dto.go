// file: internals/features/school/certificates/dto/certificate_template_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	certmodel "schoolku_backend/internals/features/school/certificates/model"
)

////////////////////////////////////////////////////////////////////////////////
// CERTIFICATE TEMPLATE — DTO
////////////////////////////////////////////////////////////////////////////////

type CertificateTemplateCreateDTO struct {
	Name         string         `json:"name" validate:"required,max=120"`
	Description  *string        `json:"description,omitempty"`
	LayoutConfig datatypes.JSON `json:"layout_config,omitempty"`
	IsDefault    bool           `json:"is_default"`
	IsActive     *bool          `json:"is_active,omitempty"`
}

type CertificateTemplateUpdateDTO struct {
	Name         *string        `json:"name,omitempty" validate:"omitempty,max=120"`
	Description  *string        `json:"description,omitempty"`
	LayoutConfig datatypes.JSON `json:"layout_config,omitempty"`
	IsDefault    *bool          `json:"is_default,omitempty"`
	IsActive     *bool          `json:"is_active,omitempty"`
}

type CertificateTemplateResponse struct {
	CertificateTemplateID uuid.UUID `json:"certificate_template_id"`
	OrgID                 uuid.UUID `json:"org_id"`

	Name                string         `json:"name"`
	Description         *string        `json:"description,omitempty"`
	BackgroundImagePath *string        `json:"background_image_path,omitempty"`
	LayoutConfig        datatypes.JSON `json:"layout_config,omitempty"`

	IsDefault bool `json:"is_default"`
	IsActive  bool `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToCertificateTemplateResponse(m certmodel.CertificateTemplateModel) CertificateTemplateResponse {
	return CertificateTemplateResponse{
		CertificateTemplateID: m.CertificateTemplateID,
		OrgID:                 m.CertificateTemplateOrgID,

		Name:                m.CertificateTemplateName,
		Description:         m.CertificateTemplateDescription,
		BackgroundImagePath: m.CertificateTemplateBackgroundImagePath,
		LayoutConfig:        m.CertificateTemplateLayoutConfig,

		IsDefault: m.CertificateTemplateIsDefault,
		IsActive:  m.CertificateTemplateIsActive,

		CreatedAt: m.CertificateTemplateCreatedAt,
		UpdatedAt: m.CertificateTemplateUpdatedAt,
	}
}

// ApplyCertificateTemplateUpdate menerapkan field partial ke model.
// Flip is_default ditangani terpisah (transaksional) oleh controller.
func ApplyCertificateTemplateUpdate(m *certmodel.CertificateTemplateModel, in CertificateTemplateUpdateDTO) {
	if in.Name != nil {
		m.CertificateTemplateName = *in.Name
	}
	if in.Description != nil {
		m.CertificateTemplateDescription = in.Description
	}
	if len(in.LayoutConfig) > 0 {
		m.CertificateTemplateLayoutConfig = in.LayoutConfig
	}
	if in.IsActive != nil {
		m.CertificateTemplateIsActive = *in.IsActive
	}
}
