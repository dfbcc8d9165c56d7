// file: internals/features/school/graduation/controller/graduation_batch_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/school/graduation/dto"
	gradmodel "schoolku_backend/internals/features/school/graduation/model"
	"schoolku_backend/internals/features/school/graduation/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type GraduationBatchController struct {
	DB      *gorm.DB
	Service *service.GraduationBatchService
}

func NewGraduationBatchController(db *gorm.DB) *GraduationBatchController {
	return &GraduationBatchController{
		DB:      db,
		Service: service.NewGraduationBatchService(db),
	}
}

func parseBatchID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "id batch tidak valid")
	}
	return id, nil
}

// guard: tenant context + permission dalam satu langkah
func (ctl *GraduationBatchController) guard(c *fiber.Ctx, permission string) (helperAuth.TenantContext, uuid.UUID, error) {
	tc, err := helperAuth.ResolveTenantContext(c)
	if err != nil {
		return helperAuth.TenantContext{}, uuid.Nil, err
	}
	if err := helperAuth.RequirePermission(c, tc.SchoolID, permission); err != nil {
		return helperAuth.TenantContext{}, uuid.Nil, err
	}
	actorID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helperAuth.TenantContext{}, uuid.Nil, err
	}
	return tc, actorID, nil
}

/* =======================================================
   CRUD
======================================================= */

// POST /api/a/graduation-batches
func (ctl *GraduationBatchController) Create(c *fiber.Ctx) error {
	tc, actorID, err := ctl.guard(c, constants.PermGraduationBatchesWrite)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var in dto.GraduationBatchCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	if err := helper.Validate(&in); err != nil {
		return helper.JsonValidationErrorFrom(c, err)
	}

	m, err := ctl.Service.Create(tc, actorID, in)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "graduation batch dibuat", dto.ToGraduationBatchResponse(*m))
}

// GET /api/a/graduation-batches
func (ctl *GraduationBatchController) List(c *fiber.Ctx) error {
	tc, _, err := ctl.guard(c, constants.PermGraduationBatchesRead)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var f service.BatchListFilter
	if v := strings.TrimSpace(c.Query("academic_year_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "academic_year_id tidak valid")
		}
		f.AcademicYearID = &id
	}
	if v := strings.TrimSpace(c.Query("class_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
		}
		f.ClassID = &id
	}
	if v := strings.TrimSpace(c.Query("exam_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "exam_id tidak valid")
		}
		f.ExamID = &id
	}
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		st := gradmodel.GraduationBatchStatus(v)
		if !st.Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "status tidak valid (draft|approved|issued)")
		}
		f.Status = &st
	}

	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Service.List(tc, f, p.Offset, p.Limit)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	resp := make([]dto.GraduationBatchResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, dto.ToGraduationBatchResponse(r))
	}
	return helper.JsonList(c, "daftar graduation batch", resp, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/a/graduation-batches/:id
func (ctl *GraduationBatchController) Show(c *fiber.Ctx) error {
	tc, _, err := ctl.guard(c, constants.PermGraduationBatchesRead)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseBatchID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	m, logs, err := ctl.Service.Show(tc, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	auditResp := make([]dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		auditResp = append(auditResp, dto.ToAuditLogResponse(l))
	}
	return helper.JsonOK(c, "detail graduation batch", dto.GraduationBatchShowResponse{
		Batch:     dto.ToGraduationBatchResponse(*m),
		AuditLogs: auditResp,
	})
}

// PATCH /api/a/graduation-batches/:id
func (ctl *GraduationBatchController) Update(c *fiber.Ctx) error {
	tc, actorID, err := ctl.guard(c, constants.PermGraduationBatchesWrite)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseBatchID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var in dto.GraduationBatchUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	if err := helper.Validate(&in); err != nil {
		return helper.JsonValidationErrorFrom(c, err)
	}

	m, err := ctl.Service.Update(tc, id, actorID, in)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "graduation batch diperbarui", dto.ToGraduationBatchResponse(*m))
}

// DELETE /api/a/graduation-batches/:id
func (ctl *GraduationBatchController) Delete(c *fiber.Ctx) error {
	tc, actorID, err := ctl.guard(c, constants.PermGraduationBatchesWrite)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseBatchID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctl.Service.Delete(tc, id, actorID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "graduation batch dihapus", fiber.Map{"graduation_batch_id": id})
}

/* =======================================================
   LIFECYCLE
======================================================= */

// POST /api/a/graduation-batches/:id/generate-students
func (ctl *GraduationBatchController) GenerateStudents(c *fiber.Ctx) error {
	tc, actorID, err := ctl.guard(c, constants.PermGraduationBatchesWrite)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseBatchID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	rows, err := ctl.Service.GenerateStudents(tc, id, actorID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	resp := make([]dto.GraduationBatchStudentResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, dto.ToGraduationBatchStudentResponse(r))
	}
	return helper.JsonOK(c, "siswa batch berhasil digenerate", fiber.Map{
		"student_count": len(resp),
		"students":      resp,
	})
}

// GET /api/a/graduation-batches/:id/students
func (ctl *GraduationBatchController) ListStudents(c *fiber.Ctx) error {
	tc, _, err := ctl.guard(c, constants.PermGraduationBatchesRead)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseBatchID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	rows, err := ctl.Service.ListStudents(tc, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	resp := make([]dto.GraduationBatchStudentResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, dto.ToGraduationBatchStudentResponse(r))
	}
	return helper.JsonOK(c, "daftar siswa batch", resp)
}

// POST /api/a/graduation-batches/:id/approve
func (ctl *GraduationBatchController) Approve(c *fiber.Ctx) error {
	tc, actorID, err := ctl.guard(c, constants.PermGraduationBatchesWrite)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseBatchID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	m, err := ctl.Service.Approve(tc, id, actorID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "graduation batch di-approve", dto.ToGraduationBatchResponse(*m))
}

// POST /api/a/graduation-batches/:id/issue-certificates
// Permission terpisah dari write biasa: certificates.issue.
func (ctl *GraduationBatchController) IssueCertificates(c *fiber.Ctx) error {
	tc, actorID, err := ctl.guard(c, constants.PermGraduationBatchesIssue)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseBatchID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var in dto.IssueCertificatesDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	if err := helper.Validate(&in); err != nil {
		return helper.JsonValidationErrorFrom(c, err)
	}

	rows, err := ctl.Service.IssueCertificates(tc, id, actorID, in)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	resp := make([]dto.GraduationBatchStudentResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, dto.ToGraduationBatchStudentResponse(r))
	}
	return helper.JsonOK(c, "sertifikat berhasil diterbitkan", fiber.Map{
		"issued_count": len(resp),
		"students":     resp,
	})
}
