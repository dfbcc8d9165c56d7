// file: internals/features/school/certificates/dto/certificate_template_dto_test.go
package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	certmodel "schoolku_backend/internals/features/school/certificates/model"
)

func TestApplyCertificateTemplateUpdate(t *testing.T) {
	m := &certmodel.CertificateTemplateModel{
		CertificateTemplateName:     "Ijazah Lama",
		CertificateTemplateIsActive: true,
	}

	name := "Ijazah 2025"
	desc := "Desain baru"
	inactive := false
	layout := datatypes.JSON(`{"fields":[{"key":"student_name","x":120,"y":300}]}`)

	ApplyCertificateTemplateUpdate(m, CertificateTemplateUpdateDTO{
		Name:         &name,
		Description:  &desc,
		LayoutConfig: layout,
		IsActive:     &inactive,
	})

	assert.Equal(t, "Ijazah 2025", m.CertificateTemplateName)
	assert.Equal(t, &desc, m.CertificateTemplateDescription)
	assert.Equal(t, layout, m.CertificateTemplateLayoutConfig)
	assert.False(t, m.CertificateTemplateIsActive)
}

func TestApplyCertificateTemplateUpdate_PartialLeavesRest(t *testing.T) {
	layout := datatypes.JSON(`{"fields":[]}`)
	m := &certmodel.CertificateTemplateModel{
		CertificateTemplateName:         "Tetap",
		CertificateTemplateLayoutConfig: layout,
		CertificateTemplateIsActive:     true,
	}

	ApplyCertificateTemplateUpdate(m, CertificateTemplateUpdateDTO{})

	assert.Equal(t, "Tetap", m.CertificateTemplateName)
	assert.Equal(t, layout, m.CertificateTemplateLayoutConfig)
	assert.True(t, m.CertificateTemplateIsActive)
}
