// file: internals/features/school/graduation/model/graduation_batch_model.go
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ========================= ENUMS (app-level) =========================

type GraduationBatchStatus string
type GraduationType string

const (
	// Status lifecycle (harus cocok dengan CHECK di SQL).
	// Tidak ada status khusus "students_generated": batch tetap draft
	// setelah generate; approve memeriksa jumlah row siswa.
	GraduationBatchDraft    GraduationBatchStatus = "draft"
	GraduationBatchApproved GraduationBatchStatus = "approved"
	GraduationBatchIssued   GraduationBatchStatus = "issued"

	GraduationTypeFinalYear GraduationType = "final_year"
	GraduationTypePromotion GraduationType = "promotion"
	GraduationTypeTransfer  GraduationType = "transfer"
)

func (s GraduationBatchStatus) Valid() bool {
	switch s {
	case GraduationBatchDraft, GraduationBatchApproved, GraduationBatchIssued:
		return true
	}
	return false
}

func (t GraduationType) Valid() bool {
	switch t {
	case GraduationTypeFinalYear, GraduationTypePromotion, GraduationTypeTransfer:
		return true
	}
	return false
}

// ========================= MODEL =========================

type GraduationBatchModel struct {
	GraduationBatchID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:graduation_batch_id" json:"graduation_batch_id"`

	// Tenant scope (immutable setelah create)
	GraduationBatchOrgID    uuid.UUID `gorm:"type:uuid;not null;column:graduation_batch_org_id;index:idx_graduation_batches_org" json:"graduation_batch_org_id"`
	GraduationBatchSchoolID uuid.UUID `gorm:"type:uuid;not null;column:graduation_batch_school_id;index:idx_graduation_batches_school" json:"graduation_batch_school_id"`

	// Konfigurasi
	GraduationBatchAcademicYearID uuid.UUID      `gorm:"type:uuid;not null;column:graduation_batch_academic_year_id;index:idx_graduation_batches_year" json:"graduation_batch_academic_year_id"`
	GraduationBatchClassID        uuid.UUID      `gorm:"type:uuid;not null;column:graduation_batch_class_id;index:idx_graduation_batches_class" json:"graduation_batch_class_id"`
	GraduationBatchType           GraduationType `gorm:"type:text;not null;default:'final_year';column:graduation_batch_type" json:"graduation_batch_type"`
	GraduationBatchFromClassID    *uuid.UUID     `gorm:"type:uuid;column:graduation_batch_from_class_id" json:"graduation_batch_from_class_id,omitempty"`
	GraduationBatchToClassID      *uuid.UUID     `gorm:"type:uuid;column:graduation_batch_to_class_id" json:"graduation_batch_to_class_id,omitempty"`
	GraduationBatchGraduationDate *time.Time     `gorm:"type:date;column:graduation_batch_graduation_date" json:"graduation_batch_graduation_date,omitempty"`

	// Aturan eligibility
	GraduationBatchMinAttendancePercentage float64 `gorm:"not null;default:0;column:graduation_batch_min_attendance_percentage" json:"graduation_batch_min_attendance_percentage"`
	GraduationBatchRequireAttendance       bool    `gorm:"not null;default:false;column:graduation_batch_require_attendance" json:"graduation_batch_require_attendance"`
	GraduationBatchExcludeApprovedLeaves   bool    `gorm:"not null;default:false;column:graduation_batch_exclude_approved_leaves" json:"graduation_batch_exclude_approved_leaves"`

	// Lifecycle
	GraduationBatchStatus GraduationBatchStatus `gorm:"type:text;not null;default:'draft';column:graduation_batch_status;index:idx_graduation_batches_status" json:"graduation_batch_status"`

	// Derived (di-refresh saat generate students)
	GraduationBatchStudentCount int `gorm:"not null;default:0;column:graduation_batch_student_count" json:"graduation_batch_student_count"`

	// Relasi pivot exam (per-exam weight/required/order)
	GraduationBatchExams []GraduationBatchExamModel `gorm:"foreignKey:GraduationBatchExamBatchID;references:GraduationBatchID" json:"graduation_batch_exams,omitempty"`

	GraduationBatchCreatedAt time.Time      `gorm:"column:graduation_batch_created_at;autoCreateTime;index:idx_graduation_batches_created_at,sort:desc" json:"graduation_batch_created_at"`
	GraduationBatchUpdatedAt time.Time      `gorm:"column:graduation_batch_updated_at;autoUpdateTime" json:"graduation_batch_updated_at"`
	GraduationBatchDeletedAt gorm.DeletedAt `gorm:"column:graduation_batch_deleted_at;index" json:"graduation_batch_deleted_at,omitempty"`
}

func (GraduationBatchModel) TableName() string { return "graduation_batches" }

// ========================= Hooks (mirror CHECK constraints) =========================

// ensureConsistency memantulkan rule CHECK di SQL agar error terdeteksi sebelum kena DB.
func (m *GraduationBatchModel) ensureConsistency() error {
	if !m.GraduationBatchStatus.Valid() {
		return errors.New("graduation_batch_status invalid")
	}
	if !m.GraduationBatchType.Valid() {
		return errors.New("graduation_batch_type invalid")
	}

	// chk_gradbatch_move_classes: promotion/transfer wajib punya from & to class
	if m.GraduationBatchType == GraduationTypePromotion || m.GraduationBatchType == GraduationTypeTransfer {
		if m.GraduationBatchFromClassID == nil || m.GraduationBatchToClassID == nil {
			return errors.New("graduation_batch_from_class_id and graduation_batch_to_class_id are required for promotion/transfer")
		}
	}

	// chk_gradbatch_attendance_pct
	if m.GraduationBatchMinAttendancePercentage < 0 || m.GraduationBatchMinAttendancePercentage > 100 {
		return errors.New("graduation_batch_min_attendance_percentage must be between 0 and 100")
	}
	return nil
}

func (m *GraduationBatchModel) BeforeCreate(tx *gorm.DB) error {
	if m.GraduationBatchID == uuid.Nil {
		m.GraduationBatchID = uuid.New()
	}
	return m.ensureConsistency()
}
func (m *GraduationBatchModel) BeforeUpdate(tx *gorm.DB) error { return m.ensureConsistency() }

// IsEditable: hanya draft yang boleh diubah/dihapus.
func (m *GraduationBatchModel) IsEditable() bool {
	return m.GraduationBatchStatus == GraduationBatchDraft
}
