// file: internals/features/school/certificates/controller/course_certificate_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/constants"
	acadmodel "schoolku_backend/internals/features/school/academics/model"
	"schoolku_backend/internals/features/school/certificates/dto"
	certmodel "schoolku_backend/internals/features/school/certificates/model"
	certservice "schoolku_backend/internals/features/school/certificates/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

// CourseCertificateController: penerbitan sertifikat single-student per
// course. Jalur TERPISAH dari batch graduation, counter nomor sendiri.
type CourseCertificateController struct {
	DB *gorm.DB
}

func NewCourseCertificateController(db *gorm.DB) *CourseCertificateController {
	return &CourseCertificateController{DB: db}
}

func parseCourseStudentID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "id course student tidak valid")
	}
	return id, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "duplicate key value")
}

// POST /api/a/course-students/:id/generate-certificate
func (ctl *CourseCertificateController) GenerateCertificate(c *fiber.Ctx) error {
	tc, err := helperAuth.ResolveTenantContext(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := helperAuth.RequirePermission(c, tc.SchoolID, constants.PermCourseCertificatesIssue); err != nil {
		return helper.FromFiberError(c, err)
	}
	actorID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseCourseStudentID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var in dto.GenerateCourseCertificateDTO
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
		}
	}

	var out certmodel.CourseStudentModel
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var cs certmodel.CourseStudentModel
		err := helper.LockForUpdate(tx).
			First(&cs, "course_student_id = ? AND course_student_org_id = ?", id, tc.OrgID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "course student tidak ditemukan")
		}
		if err != nil {
			return err
		}
		if cs.CourseStudentCertificateNumber != nil {
			return fiber.NewError(fiber.StatusConflict, "sertifikat sudah pernah diterbitkan untuk siswa ini")
		}

		// Template: dari body, atau fallback ke default org
		var tpl certmodel.CertificateTemplateModel
		q := tx.Where("certificate_template_org_id = ?", tc.OrgID)
		if in.CertificateTemplateID != nil {
			q = q.Where("certificate_template_id = ?", *in.CertificateTemplateID)
		} else {
			q = q.Where("certificate_template_is_default = TRUE")
		}
		if err := q.First(&tpl).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if in.CertificateTemplateID != nil {
					return fiber.NewError(fiber.StatusNotFound, "certificate template tidak ditemukan")
				}
				return fiber.NewError(fiber.StatusUnprocessableEntity, "org belum punya template default; kirim certificate_template_id")
			}
			return err
		}
		if !tpl.CertificateTemplateIsActive {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "certificate template tidak aktif")
		}

		num, err := certservice.NextCourseCertificateNumber(tx, tc.OrgID, cs.CourseStudentCourseID, time.Now().Year())
		if err != nil {
			return err
		}

		now := time.Now()
		cs.CourseStudentCertificateNumber = &num
		cs.CourseStudentCertificateTemplateID = &tpl.CertificateTemplateID
		cs.CourseStudentCertificateIssuedAt = &now
		if err := tx.Save(&cs).Error; err != nil {
			return err
		}

		if err := certservice.WriteAuditLog(tx, certmodel.AuditEntityCourseStudent, cs.CourseStudentID, certmodel.AuditActionIssued, actorID, map[string]any{
			"certificate_number": num,
			"course_id":          cs.CourseStudentCourseID,
			"template_id":        tpl.CertificateTemplateID,
		}); err != nil {
			return err
		}

		out = cs
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "nomor sertifikat bentrok, coba ulangi")
		}
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "sertifikat course diterbitkan", dto.ToCourseStudentResponse(out))
}

// GET /api/a/course-students/:id/certificate-data
// Payload render sertifikat: nomor, siswa, course, template + layout.
func (ctl *CourseCertificateController) CertificateData(c *fiber.Ctx) error {
	tc, err := helperAuth.ResolveTenantContext(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := helperAuth.RequirePermission(c, tc.SchoolID, constants.PermCertificateTemplatesRead); err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseCourseStudentID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var cs certmodel.CourseStudentModel
	err = ctl.DB.First(&cs, "course_student_id = ? AND course_student_org_id = ?", id, tc.OrgID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "course student tidak ditemukan")
	}
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if cs.CourseStudentCertificateNumber == nil || cs.CourseStudentCertificateTemplateID == nil || cs.CourseStudentCertificateIssuedAt == nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "siswa belum punya sertifikat terbit")
	}

	var course acadmodel.CourseModel
	if err := ctl.DB.First(&course, "course_id = ?", cs.CourseStudentCourseID).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	var tpl certmodel.CertificateTemplateModel
	if err := ctl.DB.First(&tpl, "certificate_template_id = ?", *cs.CourseStudentCertificateTemplateID).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	resp := dto.CertificateDataResponse{
		CertificateNumber: *cs.CourseStudentCertificateNumber,
		IssuedAt:          *cs.CourseStudentCertificateIssuedAt,

		StudentName: cs.CourseStudentNameSnapshot,
		CourseID:    course.CourseID,
		CourseName:  course.CourseName,

		TemplateID:   tpl.CertificateTemplateID,
		TemplateName: tpl.CertificateTemplateName,
		LayoutConfig: tpl.CertificateTemplateLayoutConfig,
	}
	if tpl.CertificateTemplateBackgroundImagePath != nil {
		url := configs.AppBaseURL + "/static/certificates/" + *tpl.CertificateTemplateBackgroundImagePath
		resp.BackgroundImageURL = &url
	}
	return helper.JsonOK(c, "data sertifikat", resp)
}
