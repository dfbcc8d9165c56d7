// file: internals/features/school/graduation/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gradcontroller "schoolku_backend/internals/features/school/graduation/controller"
	"schoolku_backend/internals/middlewares"
)

// GraduationAdminRoutes mendaftarkan route graduation batch di bawah
// group admin (sudah melewati AuthJWT + school scope).
func GraduationAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := gradcontroller.NewGraduationBatchController(db)

	batches := admin.Group("/graduation-batches")
	batches.Post("/", ctl.Create)
	batches.Get("/", ctl.List)
	batches.Get("/:id", ctl.Show)
	batches.Put("/:id", ctl.Update)
	batches.Patch("/:id", ctl.Update)
	batches.Delete("/:id", ctl.Delete)

	// Aksi lifecycle (generate & issue dibatasi rate-limit berat)
	batches.Post("/:id/generate-students", middlewares.HeavyActionRateLimiter(), ctl.GenerateStudents)
	batches.Get("/:id/students", ctl.ListStudents)
	batches.Post("/:id/approve", ctl.Approve)
	batches.Post("/:id/issue-certificates", middlewares.HeavyActionRateLimiter(), ctl.IssueCertificates)
}
