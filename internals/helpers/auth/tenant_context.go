// file: internals/helpers/auth/tenant_context.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schoolku_backend/internals/constants"
)

// TenantContext adalah scope multi-tenant yang wajib di-thread
// ke semua method service (bukan global state).
type TenantContext struct {
	OrgID    uuid.UUID
	SchoolID uuid.UUID
}

var (
	ErrOrgContextMissing    = fiber.NewError(fiber.StatusForbidden, "Organization context tidak ditemukan")
	ErrSchoolContextMissing = fiber.NewError(fiber.StatusForbidden, "School context tidak ditemukan")
	ErrPermissionMisconfig  = fiber.NewError(fiber.StatusInternalServerError, "Permission tidak terdaftar")
)

/* ==========================
   Resolvers (dari Locals hasil middleware)
========================== */

func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	if v, ok := c.Locals(LocUserID).(string); ok {
		if id, err := uuid.Parse(strings.TrimSpace(v)); err == nil {
			return id, nil
		}
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
}

func GetActiveSchoolID(c *fiber.Ctx) (uuid.UUID, error) {
	if v, ok := c.Locals(LocActiveSchoolID).(string); ok {
		if id, err := uuid.Parse(strings.TrimSpace(v)); err == nil && id != uuid.Nil {
			return id, nil
		}
	}
	return uuid.Nil, ErrSchoolContextMissing
}

func GetOrgID(c *fiber.Ctx) (uuid.UUID, error) {
	if v, ok := c.Locals(LocOrgID).(string); ok {
		if id, err := uuid.Parse(strings.TrimSpace(v)); err == nil && id != uuid.Nil {
			return id, nil
		}
	}
	return uuid.Nil, ErrOrgContextMissing
}

// ResolveTenantContext membaca org+school scope dari request.
// Kedua-duanya wajib untuk semua endpoint graduation/certificate (403 jika absen).
func ResolveTenantContext(c *fiber.Ctx) (TenantContext, error) {
	orgID, err := GetOrgID(c)
	if err != nil {
		return TenantContext{}, err
	}
	schoolID, err := GetActiveSchoolID(c)
	if err != nil {
		return TenantContext{}, err
	}
	return TenantContext{OrgID: orgID, SchoolID: schoolID}, nil
}

/* ==========================
   School roles (klaim token)
========================== */

type schoolRoleEntry struct {
	SchoolID uuid.UUID
	Roles    []string
}

func parseSchoolRoles(c *fiber.Ctx) []schoolRoleEntry {
	v := c.Locals(LocSchoolRoles)
	if v == nil {
		return nil
	}
	out := make([]schoolRoleEntry, 0)
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	for _, it := range arr {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		var e schoolRoleEntry
		if s, ok := m["school_id"].(string); ok {
			if id, err := uuid.Parse(strings.TrimSpace(s)); err == nil {
				e.SchoolID = id
			}
		}
		if rr, ok := m["roles"].([]interface{}); ok {
			for _, it2 := range rr {
				if rs, ok := it2.(string); ok {
					rs = strings.ToLower(strings.TrimSpace(rs))
					if rs != "" {
						e.Roles = append(e.Roles, rs)
					}
				}
			}
		}
		if e.SchoolID != uuid.Nil && len(e.Roles) > 0 {
			out = append(out, e)
		}
	}
	return out
}

// UserHasSchool: apakah user punya role apapun di school tsb.
func UserHasSchool(c *fiber.Ctx, schoolID uuid.UUID) bool {
	if schoolID == uuid.Nil {
		return false
	}
	for _, e := range parseSchoolRoles(c) {
		if e.SchoolID == schoolID {
			return true
		}
	}
	return false
}

func rolesInSchool(c *fiber.Ctx, schoolID uuid.UUID) []string {
	for _, e := range parseSchoolRoles(c) {
		if e.SchoolID == schoolID {
			return e.Roles
		}
	}
	return nil
}

func isOwnerGlobal(c *fiber.Ctx) bool {
	if v, ok := c.Locals(LocIsOwner).(bool); ok && v {
		return true
	}
	if v := c.Locals(LocRolesGlobal); v != nil {
		if arr, ok := v.([]interface{}); ok {
			for _, it := range arr {
				if s, ok := it.(string); ok && strings.EqualFold(strings.TrimSpace(s), constants.RoleOwner) {
					return true
				}
			}
		}
	}
	return false
}

/* ==========================
   Capability check

   HasPermission TIDAK pernah melempar untuk kasus "tidak punya izin" —
   selalu boolean. Error hanya untuk salah konfigurasi (permission
   tidak terdaftar di constants.PermissionRoles).
========================== */

func HasPermission(c *fiber.Ctx, schoolID uuid.UUID, permission string) (bool, error) {
	allowed, ok := constants.PermissionRoles[permission]
	if !ok {
		return false, ErrPermissionMisconfig
	}
	if isOwnerGlobal(c) {
		return true, nil
	}
	have := rolesInSchool(c, schoolID)
	for _, r := range have {
		for _, a := range allowed {
			if r == a {
				return true, nil
			}
		}
	}
	return false, nil
}

// RequirePermission: versi guard — 403 kalau tidak punya,
// 500 hanya kalau permission-nya sendiri salah konfigurasi.
func RequirePermission(c *fiber.Ctx, schoolID uuid.UUID, permission string) error {
	ok, err := HasPermission(c, schoolID, permission)
	if err != nil {
		return err
	}
	if !ok {
		return fiber.NewError(fiber.StatusForbidden, "Anda tidak memiliki izin untuk aksi ini")
	}
	return nil
}
