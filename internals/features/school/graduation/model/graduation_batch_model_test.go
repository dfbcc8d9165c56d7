// file: internals/features/school/graduation/model/graduation_batch_model_test.go
package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGraduationBatchStatus_Valid(t *testing.T) {
	assert.True(t, GraduationBatchDraft.Valid())
	assert.True(t, GraduationBatchApproved.Valid())
	assert.True(t, GraduationBatchIssued.Valid())
	assert.False(t, GraduationBatchStatus("archived").Valid())
	assert.False(t, GraduationBatchStatus("").Valid())
}

func TestGraduationType_Valid(t *testing.T) {
	assert.True(t, GraduationTypeFinalYear.Valid())
	assert.True(t, GraduationTypePromotion.Valid())
	assert.True(t, GraduationTypeTransfer.Valid())
	assert.False(t, GraduationType("expulsion").Valid())
}

func TestEnsureConsistency_MoveClassesRequired(t *testing.T) {
	from, to := uuid.New(), uuid.New()
	m := &GraduationBatchModel{
		GraduationBatchStatus: GraduationBatchDraft,
		GraduationBatchType:   GraduationTypePromotion,
	}
	assert.Error(t, m.ensureConsistency())

	m.GraduationBatchFromClassID = &from
	assert.Error(t, m.ensureConsistency())

	m.GraduationBatchToClassID = &to
	assert.NoError(t, m.ensureConsistency())

	// final_year tidak butuh from/to
	m2 := &GraduationBatchModel{
		GraduationBatchStatus: GraduationBatchDraft,
		GraduationBatchType:   GraduationTypeFinalYear,
	}
	assert.NoError(t, m2.ensureConsistency())
}

func TestEnsureConsistency_AttendancePctRange(t *testing.T) {
	m := &GraduationBatchModel{
		GraduationBatchStatus:                  GraduationBatchDraft,
		GraduationBatchType:                    GraduationTypeFinalYear,
		GraduationBatchMinAttendancePercentage: 101,
	}
	assert.Error(t, m.ensureConsistency())

	m.GraduationBatchMinAttendancePercentage = -1
	assert.Error(t, m.ensureConsistency())

	m.GraduationBatchMinAttendancePercentage = 100
	assert.NoError(t, m.ensureConsistency())
}

func TestIsEditable(t *testing.T) {
	m := &GraduationBatchModel{GraduationBatchStatus: GraduationBatchDraft}
	assert.True(t, m.IsEditable())
	m.GraduationBatchStatus = GraduationBatchApproved
	assert.False(t, m.IsEditable())
	m.GraduationBatchStatus = GraduationBatchIssued
	assert.False(t, m.IsEditable())
}

func TestCertificateFieldsConsistent(t *testing.T) {
	num := "GRAD-2025-0001"
	tpl := uuid.New()
	now := time.Now()

	m := &GraduationBatchStudentModel{}
	assert.True(t, m.certificateFieldsConsistent()) // semua kosong = konsisten

	m.GraduationBatchStudentCertificateNumber = &num
	assert.False(t, m.certificateFieldsConsistent())

	m.GraduationBatchStudentCertificateTemplateID = &tpl
	assert.False(t, m.certificateFieldsConsistent())

	m.GraduationBatchStudentCertificateIssuedAt = &now
	assert.True(t, m.certificateFieldsConsistent())
}
