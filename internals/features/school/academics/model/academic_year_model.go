// file: internals/features/school/academics/model/academic_year_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AcademicYearModel struct {
	AcademicYearID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:academic_year_id" json:"academic_year_id"`

	// Tenant scope
	AcademicYearOrgID    uuid.UUID `gorm:"type:uuid;not null;column:academic_year_org_id;index:idx_academic_years_org" json:"academic_year_org_id"`
	AcademicYearSchoolID uuid.UUID `gorm:"type:uuid;not null;column:academic_year_school_id;index:idx_academic_years_school" json:"academic_year_school_id"`

	AcademicYearName      string    `gorm:"size:50;not null;column:academic_year_name" json:"academic_year_name"` // mis. "2024/2025"
	AcademicYearStartDate time.Time `gorm:"type:date;not null;column:academic_year_start_date" json:"academic_year_start_date"`
	AcademicYearEndDate   time.Time `gorm:"type:date;not null;column:academic_year_end_date" json:"academic_year_end_date"`
	AcademicYearIsActive  bool      `gorm:"not null;default:true;column:academic_year_is_active" json:"academic_year_is_active"`

	AcademicYearCreatedAt time.Time      `gorm:"column:academic_year_created_at;autoCreateTime" json:"academic_year_created_at"`
	AcademicYearUpdatedAt time.Time      `gorm:"column:academic_year_updated_at;autoUpdateTime" json:"academic_year_updated_at"`
	AcademicYearDeletedAt gorm.DeletedAt `gorm:"column:academic_year_deleted_at;index" json:"academic_year_deleted_at,omitempty"`
}

func (AcademicYearModel) TableName() string { return "academic_years" }
