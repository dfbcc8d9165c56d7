// file: internals/middlewares/auth_school/school_context.go
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	helperAuth "schoolku_backend/internals/helpers/auth"
)

/* ==========================
   School scope middleware

   current_school_id TIDAK dipercaya dari client begitu saja:
   - sumber utama: klaim school_id di token
   - header X-Active-School-ID hanya dipakai kalau user multi-school
     dan school tsb memang ada di school_roles token
   Tanpa school context yang valid → 403.
========================== */

func UseSchoolScope() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) dari token (single-session)
		if v, ok := c.Locals(helperAuth.LocActiveSchoolID).(string); ok && v != "" {
			if _, err := uuid.Parse(v); err == nil {
				return c.Next()
			}
		}

		// 2) header, divalidasi terhadap school_roles token
		if h := strings.TrimSpace(c.Get("X-Active-School-ID")); h != "" {
			uid, err := uuid.Parse(h)
			if err == nil && helperAuth.UserHasSchool(c, uid) {
				c.Locals(helperAuth.LocActiveSchoolID, uid.String())
				return c.Next()
			}
		}

		return fiber.NewError(fiber.StatusForbidden, "School context tidak ditemukan")
	}
}
