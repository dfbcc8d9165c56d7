// file: internals/features/school/certificates/controller/certificate_template_controller.go
package controller

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/school/certificates/dto"
	certmodel "schoolku_backend/internals/features/school/certificates/model"
	gradmodel "schoolku_backend/internals/features/school/graduation/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

// CertificateTemplateController: CRUD template sertifikat (scope org).
// Template dipakai dua jalur penerbitan (batch graduation & course),
// makanya delete dicek silang ke dua-duanya.
type CertificateTemplateController struct {
	DB *gorm.DB
}

func NewCertificateTemplateController(db *gorm.DB) *CertificateTemplateController {
	return &CertificateTemplateController{DB: db}
}

func parseTemplateID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "id template tidak valid")
	}
	return id, nil
}

func (ctl *CertificateTemplateController) guard(c *fiber.Ctx, permission string) (helperAuth.TenantContext, error) {
	tc, err := helperAuth.ResolveTenantContext(c)
	if err != nil {
		return helperAuth.TenantContext{}, err
	}
	if err := helperAuth.RequirePermission(c, tc.SchoolID, permission); err != nil {
		return helperAuth.TenantContext{}, err
	}
	return tc, nil
}

func (ctl *CertificateTemplateController) findOwned(db *gorm.DB, tc helperAuth.TenantContext, id uuid.UUID) (*certmodel.CertificateTemplateModel, error) {
	var m certmodel.CertificateTemplateModel
	err := db.First(&m,
		"certificate_template_id = ? AND certificate_template_org_id = ?",
		id, tc.OrgID,
	).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "certificate template tidak ditemukan")
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// unset default semua template org (sebelum set default baru)
func unsetOrgDefault(tx *gorm.DB, orgID uuid.UUID) error {
	return tx.Model(&certmodel.CertificateTemplateModel{}).
		Where("certificate_template_org_id = ? AND certificate_template_is_default = TRUE", orgID).
		Update("certificate_template_is_default", false).Error
}

/* =======================================================
   CRUD
======================================================= */

// POST /api/a/certificate-templates
func (ctl *CertificateTemplateController) Create(c *fiber.Ctx) error {
	tc, err := ctl.guard(c, constants.PermCertificateTemplatesWrite)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var in dto.CertificateTemplateCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	if err := helper.Validate(&in); err != nil {
		return helper.JsonValidationErrorFrom(c, err)
	}

	m := certmodel.CertificateTemplateModel{
		CertificateTemplateOrgID:        tc.OrgID,
		CertificateTemplateName:         strings.TrimSpace(in.Name),
		CertificateTemplateDescription:  in.Description,
		CertificateTemplateLayoutConfig: in.LayoutConfig,
		CertificateTemplateIsDefault:    in.IsDefault,
		CertificateTemplateIsActive:     true,
	}
	if in.IsActive != nil {
		m.CertificateTemplateIsActive = *in.IsActive
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if m.CertificateTemplateIsDefault {
			if err := unsetOrgDefault(tx, tc.OrgID); err != nil {
				return err
			}
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "certificate template dibuat", dto.ToCertificateTemplateResponse(m))
}

// GET /api/a/certificate-templates
func (ctl *CertificateTemplateController) List(c *fiber.Ctx) error {
	tc, err := ctl.guard(c, constants.PermCertificateTemplatesRead)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	q := ctl.DB.Model(&certmodel.CertificateTemplateModel{}).
		Where("certificate_template_org_id = ?", tc.OrgID)
	if v := strings.TrimSpace(c.Query("active")); v == "true" {
		q = q.Where("certificate_template_is_active = TRUE")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 20, 100)
	var rows []certmodel.CertificateTemplateModel
	if err := q.
		Order("certificate_template_is_default DESC, certificate_template_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	resp := make([]dto.CertificateTemplateResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, dto.ToCertificateTemplateResponse(r))
	}
	return helper.JsonList(c, "daftar certificate template", resp, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/a/certificate-templates/:id
func (ctl *CertificateTemplateController) Show(c *fiber.Ctx) error {
	tc, err := ctl.guard(c, constants.PermCertificateTemplatesRead)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseTemplateID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	m, err := ctl.findOwned(ctl.DB, tc, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "detail certificate template", dto.ToCertificateTemplateResponse(*m))
}

// PATCH /api/a/certificate-templates/:id
func (ctl *CertificateTemplateController) Update(c *fiber.Ctx) error {
	tc, err := ctl.guard(c, constants.PermCertificateTemplatesWrite)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseTemplateID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var in dto.CertificateTemplateUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	if err := helper.Validate(&in); err != nil {
		return helper.JsonValidationErrorFrom(c, err)
	}

	var out certmodel.CertificateTemplateModel
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		m, err := ctl.findOwned(tx, tc, id)
		if err != nil {
			return err
		}
		dto.ApplyCertificateTemplateUpdate(m, in)
		if in.IsDefault != nil && *in.IsDefault && !m.CertificateTemplateIsDefault {
			if err := unsetOrgDefault(tx, tc.OrgID); err != nil {
				return err
			}
			m.CertificateTemplateIsDefault = true
		}
		if in.IsDefault != nil && !*in.IsDefault {
			m.CertificateTemplateIsDefault = false
		}
		if err := tx.Save(m).Error; err != nil {
			return err
		}
		out = *m
		return nil
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "certificate template diperbarui", dto.ToCertificateTemplateResponse(out))
}

// POST /api/a/certificate-templates/:id/set-default
func (ctl *CertificateTemplateController) SetDefault(c *fiber.Ctx) error {
	tc, err := ctl.guard(c, constants.PermCertificateTemplatesWrite)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseTemplateID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var out certmodel.CertificateTemplateModel
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		m, err := ctl.findOwned(tx, tc, id)
		if err != nil {
			return err
		}
		if !m.CertificateTemplateIsActive {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "template nonaktif tidak bisa dijadikan default")
		}
		if err := unsetOrgDefault(tx, tc.OrgID); err != nil {
			return err
		}
		m.CertificateTemplateIsDefault = true
		if err := tx.Save(m).Error; err != nil {
			return err
		}
		out = *m
		return nil
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "template dijadikan default", dto.ToCertificateTemplateResponse(out))
}

// DELETE /api/a/certificate-templates/:id
// Tolak kalau masih direferensikan sertifikat terbit (dua jalur).
// Sukses → file background ikut dibersihkan dari disk.
func (ctl *CertificateTemplateController) Destroy(c *fiber.Ctx) error {
	tc, err := ctl.guard(c, constants.PermCertificateTemplatesWrite)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseTemplateID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var background *string
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		m, err := ctl.findOwned(tx, tc, id)
		if err != nil {
			return err
		}
		background = m.CertificateTemplateBackgroundImagePath

		var n int64
		if err := tx.Model(&gradmodel.GraduationBatchStudentModel{}).
			Where("graduation_batch_student_certificate_template_id = ?", m.CertificateTemplateID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "template masih dipakai sertifikat graduation yang sudah terbit")
		}
		if err := tx.Model(&certmodel.CourseStudentModel{}).
			Where("course_student_certificate_template_id = ?", m.CertificateTemplateID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "template masih dipakai sertifikat course yang sudah terbit")
		}

		return tx.Delete(m).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if background != nil {
		_ = helper.RemoveBackgroundImage(configs.CertStorageDir, *background)
	}
	return helper.JsonDeleted(c, "certificate template dihapus", fiber.Map{"certificate_template_id": id})
}

/* =======================================================
   BACKGROUND IMAGE
======================================================= */

// POST /api/a/certificate-templates/:id/background (multipart: file)
func (ctl *CertificateTemplateController) UploadBackground(c *fiber.Ctx) error {
	tc, err := ctl.guard(c, constants.PermCertificateTemplatesWrite)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseTemplateID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "file gambar wajib dikirim (field: file)")
	}

	m, err := ctl.findOwned(ctl.DB, tc, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	rel, err := helper.SaveBackgroundImage(configs.CertStorageDir, "templates/"+tc.OrgID.String(), fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	// hapus background lama setelah yang baru tersimpan (best-effort)
	old := m.CertificateTemplateBackgroundImagePath
	m.CertificateTemplateBackgroundImagePath = &rel
	if err := ctl.DB.Save(m).Error; err != nil {
		_ = helper.RemoveBackgroundImage(configs.CertStorageDir, rel)
		return helper.FromFiberError(c, err)
	}
	if old != nil {
		_ = helper.RemoveBackgroundImage(configs.CertStorageDir, *old)
	}

	return helper.JsonUpdated(c, "background template diperbarui", dto.ToCertificateTemplateResponse(*m))
}

// GET /api/a/certificate-templates/:id/background
func (ctl *CertificateTemplateController) GetBackground(c *fiber.Ctx) error {
	tc, err := ctl.guard(c, constants.PermCertificateTemplatesRead)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseTemplateID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	m, err := ctl.findOwned(ctl.DB, tc, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if m.CertificateTemplateBackgroundImagePath == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "template belum punya background")
	}
	return c.SendFile(filepath.Join(configs.CertStorageDir, *m.CertificateTemplateBackgroundImagePath))
}
