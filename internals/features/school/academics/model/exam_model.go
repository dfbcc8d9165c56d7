// file: internals/features/school/academics/model/exam_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExamModel struct {
	ExamID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:exam_id" json:"exam_id"`

	// Tenant scope
	ExamOrgID    uuid.UUID `gorm:"type:uuid;not null;column:exam_org_id;index:idx_exams_org" json:"exam_org_id"`
	ExamSchoolID uuid.UUID `gorm:"type:uuid;not null;column:exam_school_id;index:idx_exams_school" json:"exam_school_id"`

	ExamAcademicYearID uuid.UUID `gorm:"type:uuid;not null;column:exam_academic_year_id" json:"exam_academic_year_id"`
	ExamName           string    `gorm:"size:120;not null;column:exam_name" json:"exam_name"`
	ExamMaxScore       float64   `gorm:"not null;default:100;column:exam_max_score" json:"exam_max_score"`
	ExamPassingScore   float64   `gorm:"not null;default:60;column:exam_passing_score" json:"exam_passing_score"`

	ExamCreatedAt time.Time      `gorm:"column:exam_created_at;autoCreateTime" json:"exam_created_at"`
	ExamUpdatedAt time.Time      `gorm:"column:exam_updated_at;autoUpdateTime" json:"exam_updated_at"`
	ExamDeletedAt gorm.DeletedAt `gorm:"column:exam_deleted_at;index" json:"exam_deleted_at,omitempty"`
}

func (ExamModel) TableName() string { return "exams" }

// ExamResultModel: nilai per siswa per exam (sumber agregasi kelulusan).
type ExamResultModel struct {
	ExamResultID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:exam_result_id" json:"exam_result_id"`

	ExamResultExamID    uuid.UUID `gorm:"type:uuid;not null;column:exam_result_exam_id;index:idx_exam_results_exam" json:"exam_result_exam_id"`
	ExamResultStudentID uuid.UUID `gorm:"type:uuid;not null;column:exam_result_student_id;index:idx_exam_results_student" json:"exam_result_student_id"`
	ExamResultSchoolID  uuid.UUID `gorm:"type:uuid;not null;column:exam_result_school_id" json:"exam_result_school_id"`

	ExamResultScore    float64 `gorm:"not null;default:0;column:exam_result_score" json:"exam_result_score"`
	ExamResultIsAbsent bool    `gorm:"not null;default:false;column:exam_result_is_absent" json:"exam_result_is_absent"`

	ExamResultCreatedAt time.Time `gorm:"column:exam_result_created_at;autoCreateTime" json:"exam_result_created_at"`
	ExamResultUpdatedAt time.Time `gorm:"column:exam_result_updated_at;autoUpdateTime" json:"exam_result_updated_at"`
}

func (ExamResultModel) TableName() string { return "exam_results" }
