// file: internals/features/school/certificates/dto/course_certificate_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	certmodel "schoolku_backend/internals/features/school/certificates/model"
)

////////////////////////////////////////////////////////////////////////////////
// COURSE CERTIFICATE — DTO
////////////////////////////////////////////////////////////////////////////////

// Generate sertifikat single-student course. Template opsional —
// fallback ke template default org.
type GenerateCourseCertificateDTO struct {
	CertificateTemplateID *uuid.UUID `json:"certificate_template_id,omitempty"`
}

type CourseStudentResponse struct {
	CourseStudentID uuid.UUID `json:"course_student_id"`
	CourseID        uuid.UUID `json:"course_id"`
	UserID          uuid.UUID `json:"user_id"`
	Name            string    `json:"name"`

	CertificateNumber     *string    `json:"certificate_number,omitempty"`
	CertificateTemplateID *uuid.UUID `json:"certificate_template_id,omitempty"`
	CertificateIssuedAt   *time.Time `json:"certificate_issued_at,omitempty"`
}

func ToCourseStudentResponse(m certmodel.CourseStudentModel) CourseStudentResponse {
	return CourseStudentResponse{
		CourseStudentID: m.CourseStudentID,
		CourseID:        m.CourseStudentCourseID,
		UserID:          m.CourseStudentUserID,
		Name:            m.CourseStudentNameSnapshot,

		CertificateNumber:     m.CourseStudentCertificateNumber,
		CertificateTemplateID: m.CourseStudentCertificateTemplateID,
		CertificateIssuedAt:   m.CourseStudentCertificateIssuedAt,
	}
}

// CertificateDataResponse: payload render sertifikat (dipakai frontend
// untuk menggambar di atas background + layout_config template).
type CertificateDataResponse struct {
	CertificateNumber string    `json:"certificate_number"`
	IssuedAt          time.Time `json:"issued_at"`

	StudentName string    `json:"student_name"`
	CourseID    uuid.UUID `json:"course_id"`
	CourseName  string    `json:"course_name"`

	TemplateID         uuid.UUID      `json:"template_id"`
	TemplateName       string         `json:"template_name"`
	BackgroundImageURL *string        `json:"background_image_url,omitempty"`
	LayoutConfig       datatypes.JSON `json:"layout_config,omitempty"`
}
