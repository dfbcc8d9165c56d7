// file: internals/features/school/certificates/model/course_student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseStudentModel: enrolment siswa di course + sertifikat single-student.
// Penomoran path ini per org+course (CourseCertificateNumberer), TERPISAH
// dari penomoran batch graduation.
type CourseStudentModel struct {
	CourseStudentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:course_student_id" json:"course_student_id"`

	CourseStudentOrgID    uuid.UUID `gorm:"type:uuid;not null;column:course_student_org_id;uniqueIndex:uq_course_student_cert_number,priority:1" json:"course_student_org_id"`
	CourseStudentCourseID uuid.UUID `gorm:"type:uuid;not null;column:course_student_course_id;index:idx_course_students_course;uniqueIndex:uq_course_student_cert_number,priority:2" json:"course_student_course_id"`
	CourseStudentUserID   uuid.UUID `gorm:"type:uuid;not null;column:course_student_user_id" json:"course_student_user_id"`

	CourseStudentNameSnapshot string `gorm:"size:120;not null;column:course_student_name_snapshot" json:"course_student_name_snapshot"`

	// Sertifikat. Nomor unik per org+course: course lain (atau org lain)
	// boleh menghasilkan nomor yang sama.
	CourseStudentCertificateNumber     *string    `gorm:"size:60;column:course_student_certificate_number;uniqueIndex:uq_course_student_cert_number,priority:3" json:"course_student_certificate_number,omitempty"`
	CourseStudentCertificateTemplateID *uuid.UUID `gorm:"type:uuid;column:course_student_certificate_template_id;index:idx_course_students_template" json:"course_student_certificate_template_id,omitempty"`
	CourseStudentCertificateIssuedAt   *time.Time `gorm:"type:timestamptz;column:course_student_certificate_issued_at" json:"course_student_certificate_issued_at,omitempty"`

	CourseStudentCreatedAt time.Time      `gorm:"column:course_student_created_at;autoCreateTime" json:"course_student_created_at"`
	CourseStudentUpdatedAt time.Time      `gorm:"column:course_student_updated_at;autoUpdateTime" json:"course_student_updated_at"`
	CourseStudentDeletedAt gorm.DeletedAt `gorm:"column:course_student_deleted_at;index" json:"course_student_deleted_at,omitempty"`
}

func (CourseStudentModel) TableName() string { return "course_students" }

func (m *CourseStudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.CourseStudentID == uuid.Nil {
		m.CourseStudentID = uuid.New()
	}
	return nil
}
