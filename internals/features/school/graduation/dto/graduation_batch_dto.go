// file: internals/features/school/graduation/dto/graduation_batch_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	gradmodel "schoolku_backend/internals/features/school/graduation/model"
	certmodel "schoolku_backend/internals/features/school/certificates/model"
)

////////////////////////////////////////////////////////////////////////////////
// GRADUATION BATCH — DTO
////////////////////////////////////////////////////////////////////////////////

// Konfigurasi exam per batch. Weight nullable — exam tanpa weight
// dibagi rata dari sisa 100 oleh service.
type BatchExamConfigDTO struct {
	ExamID           uuid.UUID `json:"exam_id" validate:"required"`
	WeightPercentage *float64  `json:"weight_percentage,omitempty" validate:"omitempty,min=0,max=100"`
	IsRequired       *bool     `json:"is_required,omitempty"`
	DisplayOrder     *int      `json:"display_order,omitempty"`
}

// Create: exams (atau legacy exam_id tunggal) wajib minimal satu.
// org_id & school_id TIDAK dari body — selalu dari TenantContext.
type GraduationBatchCreateDTO struct {
	AcademicYearID uuid.UUID `json:"academic_year_id" validate:"required"`
	ClassID        uuid.UUID `json:"class_id" validate:"required"`

	Exams []BatchExamConfigDTO `json:"exams,omitempty" validate:"omitempty,dive"`
	// Legacy payload lama: satu exam tanpa konfigurasi
	ExamID *uuid.UUID `json:"exam_id,omitempty"`

	GraduationType gradmodel.GraduationType `json:"graduation_type" validate:"omitempty,oneof=final_year promotion transfer"`
	FromClassID    *uuid.UUID               `json:"from_class_id,omitempty"`
	ToClassID      *uuid.UUID               `json:"to_class_id,omitempty"`
	GraduationDate *time.Time               `json:"graduation_date,omitempty"`

	MinAttendancePercentage *float64 `json:"min_attendance_percentage,omitempty" validate:"omitempty,min=0,max=100"`
	RequireAttendance       bool     `json:"require_attendance"`
	ExcludeApprovedLeaves   bool     `json:"exclude_approved_leaves"`
}

// NormalizedExams menggabungkan exams + legacy exam_id (dedup by exam id).
func (in *GraduationBatchCreateDTO) NormalizedExams() []BatchExamConfigDTO {
	out := make([]BatchExamConfigDTO, 0, len(in.Exams)+1)
	seen := map[uuid.UUID]bool{}
	for _, e := range in.Exams {
		if e.ExamID == uuid.Nil || seen[e.ExamID] {
			continue
		}
		seen[e.ExamID] = true
		out = append(out, e)
	}
	if in.ExamID != nil && *in.ExamID != uuid.Nil && !seen[*in.ExamID] {
		out = append(out, BatchExamConfigDTO{ExamID: *in.ExamID})
	}
	return out
}

// Update (partial): hanya berlaku saat status draft; service re-validasi
// semua relasi yang berubah terhadap org+school.
type GraduationBatchUpdateDTO struct {
	AcademicYearID *uuid.UUID           `json:"academic_year_id,omitempty"`
	ClassID        *uuid.UUID           `json:"class_id,omitempty"`
	Exams          []BatchExamConfigDTO `json:"exams,omitempty" validate:"omitempty,dive"`

	GraduationType *gradmodel.GraduationType `json:"graduation_type,omitempty" validate:"omitempty,oneof=final_year promotion transfer"`
	FromClassID    *uuid.UUID                `json:"from_class_id,omitempty"`
	ToClassID      *uuid.UUID                `json:"to_class_id,omitempty"`
	GraduationDate *time.Time                `json:"graduation_date,omitempty"`

	MinAttendancePercentage *float64 `json:"min_attendance_percentage,omitempty" validate:"omitempty,min=0,max=100"`
	RequireAttendance       *bool    `json:"require_attendance,omitempty"`
	ExcludeApprovedLeaves   *bool    `json:"exclude_approved_leaves,omitempty"`
}

// Issue certificates request (POST /:id/issue-certificates)
type IssueCertificatesDTO struct {
	CertificateTemplateID uuid.UUID `json:"certificate_template_id" validate:"required"`
	StartingNumber        *int      `json:"starting_number,omitempty" validate:"omitempty,min=1"`
	Prefix                *string   `json:"prefix,omitempty" validate:"omitempty,max=20"`
	CertificateType       *string   `json:"certificate_type,omitempty" validate:"omitempty,max=40"`
	Padding               *int      `json:"padding,omitempty" validate:"omitempty,min=1,max=10"`
}

////////////////////////////////////////////////////////////////////////////////
// RESPONSES
////////////////////////////////////////////////////////////////////////////////

type BatchExamResponse struct {
	ExamID           uuid.UUID `json:"exam_id"`
	WeightPercentage *float64  `json:"weight_percentage,omitempty"`
	IsRequired       bool      `json:"is_required"`
	DisplayOrder     int       `json:"display_order"`
}

type GraduationBatchResponse struct {
	GraduationBatchID uuid.UUID `json:"graduation_batch_id"`
	OrgID             uuid.UUID `json:"org_id"`
	SchoolID          uuid.UUID `json:"school_id"`

	AcademicYearID uuid.UUID                      `json:"academic_year_id"`
	ClassID        uuid.UUID                      `json:"class_id"`
	GraduationType gradmodel.GraduationType       `json:"graduation_type"`
	FromClassID    *uuid.UUID                     `json:"from_class_id,omitempty"`
	ToClassID      *uuid.UUID                     `json:"to_class_id,omitempty"`
	GraduationDate *time.Time                     `json:"graduation_date,omitempty"`
	Status         gradmodel.GraduationBatchStatus `json:"status"`

	MinAttendancePercentage float64 `json:"min_attendance_percentage"`
	RequireAttendance       bool    `json:"require_attendance"`
	ExcludeApprovedLeaves   bool    `json:"exclude_approved_leaves"`

	StudentCount int                 `json:"student_count"`
	Exams        []BatchExamResponse `json:"exams,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

type GraduationBatchStudentResponse struct {
	GraduationBatchStudentID uuid.UUID      `json:"graduation_batch_student_id"`
	StudentID                uuid.UUID      `json:"student_id"`
	Name                     string         `json:"name"`
	AggregateScore           float64        `json:"aggregate_score"`
	AttendancePercentage     float64        `json:"attendance_percentage"`
	AttendancePassed         bool           `json:"attendance_passed"`
	IsEligible               bool           `json:"is_eligible"`
	ExamDetail               datatypes.JSON `json:"exam_detail,omitempty"`
	CertificateNumber        *string        `json:"certificate_number,omitempty"`
	CertificateTemplateID    *uuid.UUID     `json:"certificate_template_id,omitempty"`
	CertificateIssuedAt      *time.Time     `json:"certificate_issued_at,omitempty"`
}

type AuditLogResponse struct {
	EntityType  certmodel.AuditEntityType `json:"entity_type"`
	EntityID    uuid.UUID                 `json:"entity_id"`
	Action      certmodel.AuditAction     `json:"action"`
	PerformedBy uuid.UUID                 `json:"performed_by"`
	PerformedAt time.Time                 `json:"performed_at"`
	Metadata    datatypes.JSON            `json:"metadata,omitempty"`
}

// Show: batch + 20 audit terakhir (terbaru dulu)
type GraduationBatchShowResponse struct {
	Batch     GraduationBatchResponse `json:"batch"`
	AuditLogs []AuditLogResponse      `json:"audit_logs"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToGraduationBatchResponse(m gradmodel.GraduationBatchModel) GraduationBatchResponse {
	exams := make([]BatchExamResponse, 0, len(m.GraduationBatchExams))
	for _, e := range m.GraduationBatchExams {
		exams = append(exams, BatchExamResponse{
			ExamID:           e.GraduationBatchExamExamID,
			WeightPercentage: e.GraduationBatchExamWeightPercentage,
			IsRequired:       e.GraduationBatchExamIsRequired,
			DisplayOrder:     e.GraduationBatchExamDisplayOrder,
		})
	}
	return GraduationBatchResponse{
		GraduationBatchID: m.GraduationBatchID,
		OrgID:             m.GraduationBatchOrgID,
		SchoolID:          m.GraduationBatchSchoolID,

		AcademicYearID: m.GraduationBatchAcademicYearID,
		ClassID:        m.GraduationBatchClassID,
		GraduationType: m.GraduationBatchType,
		FromClassID:    m.GraduationBatchFromClassID,
		ToClassID:      m.GraduationBatchToClassID,
		GraduationDate: m.GraduationBatchGraduationDate,
		Status:         m.GraduationBatchStatus,

		MinAttendancePercentage: m.GraduationBatchMinAttendancePercentage,
		RequireAttendance:       m.GraduationBatchRequireAttendance,
		ExcludeApprovedLeaves:   m.GraduationBatchExcludeApprovedLeaves,

		StudentCount: m.GraduationBatchStudentCount,
		Exams:        exams,

		CreatedAt: m.GraduationBatchCreatedAt,
		UpdatedAt: m.GraduationBatchUpdatedAt,
		DeletedAt: toPtrTimeFromDeletedAt(m.GraduationBatchDeletedAt),
	}
}

func ToGraduationBatchStudentResponse(m gradmodel.GraduationBatchStudentModel) GraduationBatchStudentResponse {
	return GraduationBatchStudentResponse{
		GraduationBatchStudentID: m.GraduationBatchStudentID,
		StudentID:                m.GraduationBatchStudentStudentID,
		Name:                     m.GraduationBatchStudentNameSnapshot,
		AggregateScore:           m.GraduationBatchStudentAggregateScore,
		AttendancePercentage:     m.GraduationBatchStudentAttendancePercentage,
		AttendancePassed:         m.GraduationBatchStudentAttendancePassed,
		IsEligible:               m.GraduationBatchStudentIsEligible,
		ExamDetail:               m.GraduationBatchStudentExamDetail,
		CertificateNumber:        m.GraduationBatchStudentCertificateNumber,
		CertificateTemplateID:    m.GraduationBatchStudentCertificateTemplateID,
		CertificateIssuedAt:      m.GraduationBatchStudentCertificateIssuedAt,
	}
}

func ToAuditLogResponse(m certmodel.CertificateAuditLogModel) AuditLogResponse {
	return AuditLogResponse{
		EntityType:  m.CertificateAuditLogEntityType,
		EntityID:    m.CertificateAuditLogEntityID,
		Action:      m.CertificateAuditLogAction,
		PerformedBy: m.CertificateAuditLogPerformedBy,
		PerformedAt: m.CertificateAuditLogPerformedAt,
		Metadata:    m.CertificateAuditLogMetadata,
	}
}

// ApplyGraduationBatchUpdate menerapkan field partial ke model (draft only —
// dijaga oleh service). Return true kalau ada relasi yang berubah dan perlu
// re-validasi org+school.
func ApplyGraduationBatchUpdate(m *gradmodel.GraduationBatchModel, in GraduationBatchUpdateDTO) (relationsChanged bool) {
	if in.AcademicYearID != nil && *in.AcademicYearID != m.GraduationBatchAcademicYearID {
		m.GraduationBatchAcademicYearID = *in.AcademicYearID
		relationsChanged = true
	}
	if in.ClassID != nil && *in.ClassID != m.GraduationBatchClassID {
		m.GraduationBatchClassID = *in.ClassID
		relationsChanged = true
	}
	if in.GraduationType != nil {
		m.GraduationBatchType = *in.GraduationType
	}
	if in.FromClassID != nil {
		m.GraduationBatchFromClassID = in.FromClassID
		relationsChanged = true
	}
	if in.ToClassID != nil {
		m.GraduationBatchToClassID = in.ToClassID
		relationsChanged = true
	}
	if in.GraduationDate != nil {
		m.GraduationBatchGraduationDate = in.GraduationDate
	}
	if in.MinAttendancePercentage != nil {
		m.GraduationBatchMinAttendancePercentage = *in.MinAttendancePercentage
	}
	if in.RequireAttendance != nil {
		m.GraduationBatchRequireAttendance = *in.RequireAttendance
	}
	if in.ExcludeApprovedLeaves != nil {
		m.GraduationBatchExcludeApprovedLeaves = *in.ExcludeApprovedLeaves
	}
	return relationsChanged
}

func toPtrTimeFromDeletedAt(d gorm.DeletedAt) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}
