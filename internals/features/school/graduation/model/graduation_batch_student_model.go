// file: internals/features/school/graduation/model/graduation_batch_student_model.go
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GraduationBatchStudentModel: hasil evaluasi per siswa untuk satu batch.
// Dibuat HANYA oleh generateStudents; regenerate mengganti seluruh row batch.
type GraduationBatchStudentModel struct {
	GraduationBatchStudentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:graduation_batch_student_id" json:"graduation_batch_student_id"`

	GraduationBatchStudentBatchID   uuid.UUID `gorm:"type:uuid;not null;column:graduation_batch_student_batch_id;index:idx_graduation_batch_students_batch;uniqueIndex:uq_batch_student,priority:1;uniqueIndex:uq_batch_student_cert_number,priority:1" json:"graduation_batch_student_batch_id"`
	GraduationBatchStudentStudentID uuid.UUID `gorm:"type:uuid;not null;column:graduation_batch_student_student_id;uniqueIndex:uq_batch_student,priority:2" json:"graduation_batch_student_student_id"`
	GraduationBatchStudentSchoolID  uuid.UUID `gorm:"type:uuid;not null;column:graduation_batch_student_school_id" json:"graduation_batch_student_school_id"`

	// Snapshot identitas saat generate
	GraduationBatchStudentNameSnapshot string `gorm:"size:120;not null;column:graduation_batch_student_name_snapshot" json:"graduation_batch_student_name_snapshot"`

	// Verdict eligibility
	GraduationBatchStudentAggregateScore       float64 `gorm:"not null;default:0;column:graduation_batch_student_aggregate_score" json:"graduation_batch_student_aggregate_score"`
	GraduationBatchStudentAttendancePercentage float64 `gorm:"not null;default:0;column:graduation_batch_student_attendance_percentage" json:"graduation_batch_student_attendance_percentage"`
	GraduationBatchStudentAttendancePassed     bool    `gorm:"not null;default:true;column:graduation_batch_student_attendance_passed" json:"graduation_batch_student_attendance_passed"`
	GraduationBatchStudentIsEligible           bool    `gorm:"not null;default:false;column:graduation_batch_student_is_eligible" json:"graduation_batch_student_is_eligible"`

	// Detail skor per exam (JSONB): [{exam_id, score, weight, is_absent}, ...]
	GraduationBatchStudentExamDetail datatypes.JSON `gorm:"type:jsonb;column:graduation_batch_student_exam_detail" json:"graduation_batch_student_exam_detail,omitempty"`

	// Sertifikat (diisi saat issue). Nomor unik PER BATCH, bukan global:
	// dua batch boleh sama-sama punya GRAD-2025-0001.
	GraduationBatchStudentCertificateNumber     *string    `gorm:"size:60;column:graduation_batch_student_certificate_number;uniqueIndex:uq_batch_student_cert_number,priority:2" json:"graduation_batch_student_certificate_number,omitempty"`
	GraduationBatchStudentCertificateTemplateID *uuid.UUID `gorm:"type:uuid;column:graduation_batch_student_certificate_template_id" json:"graduation_batch_student_certificate_template_id,omitempty"`
	GraduationBatchStudentCertificateIssuedAt   *time.Time `gorm:"type:timestamptz;column:graduation_batch_student_certificate_issued_at" json:"graduation_batch_student_certificate_issued_at,omitempty"`

	GraduationBatchStudentCreatedAt time.Time `gorm:"column:graduation_batch_student_created_at;autoCreateTime" json:"graduation_batch_student_created_at"`
	GraduationBatchStudentUpdatedAt time.Time `gorm:"column:graduation_batch_student_updated_at;autoUpdateTime" json:"graduation_batch_student_updated_at"`
}

func (GraduationBatchStudentModel) TableName() string { return "graduation_batch_students" }

// ErrCertificateFieldsIncomplete dipakai hook & service: nomor, template, dan
// issued_at harus terisi bersama-sama.
var ErrCertificateFieldsIncomplete = errors.New("certificate number, template, and issued_at must be set together")

func (m *GraduationBatchStudentModel) certificateFieldsConsistent() bool {
	hasNumber := m.GraduationBatchStudentCertificateNumber != nil
	hasTemplate := m.GraduationBatchStudentCertificateTemplateID != nil
	hasIssuedAt := m.GraduationBatchStudentCertificateIssuedAt != nil
	return hasNumber == hasTemplate && hasTemplate == hasIssuedAt
}

// chk_gbstudent_certificate_fields
func (m *GraduationBatchStudentModel) BeforeSave(tx *gorm.DB) error {
	if !m.certificateFieldsConsistent() {
		return ErrCertificateFieldsIncomplete
	}
	return nil
}

func (m *GraduationBatchStudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.GraduationBatchStudentID == uuid.Nil {
		m.GraduationBatchStudentID = uuid.New()
	}
	return nil
}
