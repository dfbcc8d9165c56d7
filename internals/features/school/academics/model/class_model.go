// file: internals/features/school/academics/model/class_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassModel struct {
	ClassID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_id" json:"class_id"`

	// Tenant scope
	ClassOrgID    uuid.UUID `gorm:"type:uuid;not null;column:class_org_id;index:idx_classes_org" json:"class_org_id"`
	ClassSchoolID uuid.UUID `gorm:"type:uuid;not null;column:class_school_id;index:idx_classes_school" json:"class_school_id"`

	ClassName     string `gorm:"size:100;not null;column:class_name" json:"class_name"`
	ClassLevel    *int   `gorm:"column:class_level" json:"class_level,omitempty"`
	ClassIsActive bool   `gorm:"not null;default:true;column:class_is_active" json:"class_is_active"`

	ClassCreatedAt time.Time      `gorm:"column:class_created_at;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt time.Time      `gorm:"column:class_updated_at;autoUpdateTime" json:"class_updated_at"`
	ClassDeletedAt gorm.DeletedAt `gorm:"column:class_deleted_at;index" json:"class_deleted_at,omitempty"`
}

func (ClassModel) TableName() string { return "classes" }
