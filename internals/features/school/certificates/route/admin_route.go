// file: internals/features/school/certificates/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	certcontroller "schoolku_backend/internals/features/school/certificates/controller"
)

// CertificateAdminRoutes: template sertifikat + penerbitan course.
func CertificateAdminRoutes(admin fiber.Router, db *gorm.DB) {
	tplCtl := certcontroller.NewCertificateTemplateController(db)
	courseCtl := certcontroller.NewCourseCertificateController(db)

	templates := admin.Group("/certificate-templates")
	templates.Post("/", tplCtl.Create)
	templates.Get("/", tplCtl.List)
	templates.Get("/:id", tplCtl.Show)
	templates.Put("/:id", tplCtl.Update)
	templates.Patch("/:id", tplCtl.Update)
	templates.Delete("/:id", tplCtl.Destroy)
	templates.Post("/:id/set-default", tplCtl.SetDefault)
	templates.Post("/:id/background", tplCtl.UploadBackground)
	templates.Get("/:id/background", tplCtl.GetBackground)

	courseStudents := admin.Group("/course-students")
	courseStudents.Post("/:id/generate-certificate", courseCtl.GenerateCertificate)
	courseStudents.Get("/:id/certificate-data", courseCtl.CertificateData)
}
