// file: internals/features/school/academics/model/course_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseModel struct {
	CourseID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:course_id" json:"course_id"`

	CourseOrgID uuid.UUID `gorm:"type:uuid;not null;column:course_org_id;index:idx_courses_org" json:"course_org_id"`

	CourseName     string  `gorm:"size:150;not null;column:course_name" json:"course_name"`
	CourseCode     *string `gorm:"size:30;column:course_code" json:"course_code,omitempty"` // dipakai sebagai prefix nomor sertifikat course
	CourseIsActive bool    `gorm:"not null;default:true;column:course_is_active" json:"course_is_active"`

	CourseCreatedAt time.Time      `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt time.Time      `gorm:"column:course_updated_at;autoUpdateTime" json:"course_updated_at"`
	CourseDeletedAt gorm.DeletedAt `gorm:"column:course_deleted_at;index" json:"course_deleted_at,omitempty"`
}

func (CourseModel) TableName() string { return "courses" }
