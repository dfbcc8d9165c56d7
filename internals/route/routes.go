// file: internals/route/routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	certroute "schoolku_backend/internals/features/school/certificates/route"
	gradroute "schoolku_backend/internals/features/school/graduation/route"
	authmw "schoolku_backend/internals/middlewares/auth_school"
)

// SetupRoutes mendaftarkan semua route aplikasi.
//
// Group /api/a = admin area: wajib JWT + school scope aktif.
// Semua endpoint graduation & certificate hidup di sini.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Healthcheck (tanpa auth, dipakai platform deploy)
	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Static: background sertifikat (di-serve untuk render frontend)
	app.Static("/static/certificates", configs.CertStorageDir)

	api := app.Group("/api")

	admin := api.Group("/a",
		authmw.AuthJWT(authmw.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		authmw.UseSchoolScope(),
	)

	gradroute.GraduationAdminRoutes(admin, db)
	certroute.CertificateAdminRoutes(admin, db)
}
