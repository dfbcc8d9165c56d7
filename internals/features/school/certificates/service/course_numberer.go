// file: internals/features/school/certificates/service/course_numberer.go
package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	acadmodel "schoolku_backend/internals/features/school/academics/model"
	certmodel "schoolku_backend/internals/features/school/certificates/model"
	helper "schoolku_backend/internals/helpers"
)

// Penomoran sertifikat course: {PREFIX}-{tahun}-{seq 4 digit}, counter
// per org+course+tahun. TERPISAH dari penomoran batch graduation —
// dua jalur penerbitan, dua counter, tidak pernah berbagi sequence.
const (
	DefaultCourseCertPrefix  = "CERT"
	DefaultCourseCertPadding = 4
)

// NextCourseCertificateNumber mengalokasikan nomor berikutnya untuk satu
// course. Caller WAJIB memanggil ini di dalam transaksi; fungsi ini
// mengambil row-lock course supaya dua penerbitan paralel di course yang
// sama tidak mendapat sequence kembar.
func NextCourseCertificateNumber(tx *gorm.DB, orgID, courseID uuid.UUID, year int) (string, error) {
	var course acadmodel.CourseModel
	err := helper.LockForUpdate(tx).
		First(&course, "course_id = ? AND course_org_id = ?", courseID, orgID).Error
	if err != nil {
		return "", err
	}

	prefix := DefaultCourseCertPrefix
	if course.CourseCode != nil {
		if code := strings.ToUpper(strings.TrimSpace(*course.CourseCode)); code != "" {
			prefix = code
		}
	}

	// Sequence = jumlah nomor yang sudah dialokasikan di scope prefix-tahun + 1.
	// Unscoped: enrolment yang di-soft-delete tetap memegang nomornya di
	// unique index, jadi harus tetap dihitung. Aman di bawah lock course;
	// unique index (org, course, nomor) jadi jaring terakhir.
	pattern := fmt.Sprintf("%s-%d-%%", prefix, year)
	var allocated int64
	if err := tx.Model(&certmodel.CourseStudentModel{}).Unscoped().
		Where("course_student_org_id = ? AND course_student_course_id = ? AND course_student_certificate_number LIKE ?",
			orgID, courseID, pattern).
		Count(&allocated).Error; err != nil {
		return "", err
	}

	seq := int(allocated) + 1
	return fmt.Sprintf("%s-%d-%0*d", prefix, year, DefaultCourseCertPadding, seq), nil
}
