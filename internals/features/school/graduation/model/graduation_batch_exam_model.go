// file: internals/features/school/graduation/model/graduation_batch_exam_model.go
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GraduationBatchExamModel: pivot batch ↔ exam, bawa bobot per-exam.
// Weight nullable: exam tanpa weight dibagi rata dari sisa 100 (lihat service).
type GraduationBatchExamModel struct {
	GraduationBatchExamID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:graduation_batch_exam_id" json:"graduation_batch_exam_id"`

	GraduationBatchExamBatchID uuid.UUID `gorm:"type:uuid;not null;column:graduation_batch_exam_batch_id;index:idx_graduation_batch_exams_batch;uniqueIndex:uq_batch_exam,priority:1" json:"graduation_batch_exam_batch_id"`
	GraduationBatchExamExamID  uuid.UUID `gorm:"type:uuid;not null;column:graduation_batch_exam_exam_id;uniqueIndex:uq_batch_exam,priority:2" json:"graduation_batch_exam_exam_id"`

	GraduationBatchExamWeightPercentage *float64 `gorm:"column:graduation_batch_exam_weight_percentage" json:"graduation_batch_exam_weight_percentage,omitempty"`
	GraduationBatchExamIsRequired       bool     `gorm:"not null;default:true;column:graduation_batch_exam_is_required" json:"graduation_batch_exam_is_required"`
	GraduationBatchExamDisplayOrder     int      `gorm:"not null;default:0;column:graduation_batch_exam_display_order" json:"graduation_batch_exam_display_order"`

	GraduationBatchExamCreatedAt time.Time `gorm:"column:graduation_batch_exam_created_at;autoCreateTime" json:"graduation_batch_exam_created_at"`
}

func (GraduationBatchExamModel) TableName() string { return "graduation_batch_exams" }

// chk_gradbatchexam_weight: 0..100 bila diisi
func (m *GraduationBatchExamModel) BeforeCreate(tx *gorm.DB) error {
	if m.GraduationBatchExamID == uuid.Nil {
		m.GraduationBatchExamID = uuid.New()
	}
	if w := m.GraduationBatchExamWeightPercentage; w != nil && (*w < 0 || *w > 100) {
		return errors.New("graduation_batch_exam_weight_percentage must be between 0 and 100")
	}
	return nil
}
