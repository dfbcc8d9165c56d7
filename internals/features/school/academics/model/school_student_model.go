// file: internals/features/school/academics/model/school_student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchoolStudentModel: enrolment siswa per kelas per tahun ajaran.
// Sumber roster untuk generate graduation batch students.
type SchoolStudentModel struct {
	SchoolStudentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:school_student_id" json:"school_student_id"`

	// Tenant scope
	SchoolStudentOrgID    uuid.UUID `gorm:"type:uuid;not null;column:school_student_org_id" json:"school_student_org_id"`
	SchoolStudentSchoolID uuid.UUID `gorm:"type:uuid;not null;column:school_student_school_id;index:idx_school_students_school" json:"school_student_school_id"`

	SchoolStudentUserID         uuid.UUID `gorm:"type:uuid;not null;column:school_student_user_id" json:"school_student_user_id"`
	SchoolStudentClassID        uuid.UUID `gorm:"type:uuid;not null;column:school_student_class_id;index:idx_school_students_class" json:"school_student_class_id"`
	SchoolStudentAcademicYearID uuid.UUID `gorm:"type:uuid;not null;column:school_student_academic_year_id;index:idx_school_students_year" json:"school_student_academic_year_id"`

	// Snapshot identitas (per enrolment)
	SchoolStudentNameSnapshot string `gorm:"size:120;not null;column:school_student_name_snapshot" json:"school_student_name_snapshot"`
	SchoolStudentNISSnapshot  *string `gorm:"size:40;column:school_student_nis_snapshot" json:"school_student_nis_snapshot,omitempty"`

	SchoolStudentIsActive bool `gorm:"not null;default:true;column:school_student_is_active" json:"school_student_is_active"`

	SchoolStudentCreatedAt time.Time      `gorm:"column:school_student_created_at;autoCreateTime" json:"school_student_created_at"`
	SchoolStudentUpdatedAt time.Time      `gorm:"column:school_student_updated_at;autoUpdateTime" json:"school_student_updated_at"`
	SchoolStudentDeletedAt gorm.DeletedAt `gorm:"column:school_student_deleted_at;index" json:"school_student_deleted_at,omitempty"`
}

func (SchoolStudentModel) TableName() string { return "school_students" }
