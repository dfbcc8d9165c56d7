// file: internals/features/school/certificates/service/course_numberer_test.go
package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	acadmodel "schoolku_backend/internals/features/school/academics/model"
	certmodel "schoolku_backend/internals/features/school/certificates/model"
)

var courseTestSchema = []string{
	`CREATE TABLE courses (
		course_id TEXT PRIMARY KEY,
		course_org_id TEXT NOT NULL,
		course_name TEXT NOT NULL,
		course_code TEXT,
		course_is_active NUMERIC NOT NULL DEFAULT 1,
		course_created_at DATETIME,
		course_updated_at DATETIME,
		course_deleted_at DATETIME
	)`,
	`CREATE TABLE course_students (
		course_student_id TEXT PRIMARY KEY,
		course_student_org_id TEXT NOT NULL,
		course_student_course_id TEXT NOT NULL,
		course_student_user_id TEXT NOT NULL,
		course_student_name_snapshot TEXT NOT NULL,
		course_student_certificate_number TEXT,
		course_student_certificate_template_id TEXT,
		course_student_certificate_issued_at DATETIME,
		course_student_created_at DATETIME,
		course_student_updated_at DATETIME,
		course_student_deleted_at DATETIME
	)`,
}

func newCourseTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range courseTestSchema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	// Index unik dibangun dari tag model supaya scope-nya (org+course+nomor)
	// ikut teruji, bukan dari SQL tulisan tangan.
	require.NoError(t, db.Migrator().CreateIndex(&certmodel.CourseStudentModel{}, "uq_course_student_cert_number"))
	return db
}

func seedCourse(t *testing.T, db *gorm.DB, orgID uuid.UUID, code *string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Create(&acadmodel.CourseModel{
		CourseID:       id,
		CourseOrgID:    orgID,
		CourseName:     "Kelas Tahfidz",
		CourseCode:     code,
		CourseIsActive: true,
	}).Error)
	return id
}

// enrolWithNumber menyimpan enrolment yang sudah memegang nomor sertifikat.
func enrolWithNumber(t *testing.T, db *gorm.DB, orgID, courseID uuid.UUID, number string) certmodel.CourseStudentModel {
	t.Helper()
	now := time.Now()
	tplID := uuid.New()
	row := certmodel.CourseStudentModel{
		CourseStudentOrgID:                 orgID,
		CourseStudentCourseID:              courseID,
		CourseStudentUserID:                uuid.New(),
		CourseStudentNameSnapshot:          "Peserta",
		CourseStudentCertificateNumber:     &number,
		CourseStudentCertificateTemplateID: &tplID,
		CourseStudentCertificateIssuedAt:   &now,
	}
	require.NoError(t, db.Create(&row).Error)
	return row
}

func TestNextCourseCertificateNumber_PrefixFromCourseCode(t *testing.T) {
	db := newCourseTestDB(t)
	orgID := uuid.New()
	code := " go101 "
	courseID := seedCourse(t, db, orgID, &code)

	num, err := NextCourseCertificateNumber(db, orgID, courseID, 2025)
	require.NoError(t, err)
	assert.Equal(t, "GO101-2025-0001", num)
}

func TestNextCourseCertificateNumber_FallbackPrefix(t *testing.T) {
	db := newCourseTestDB(t)
	orgID := uuid.New()

	// code nil → CERT
	courseID := seedCourse(t, db, orgID, nil)
	num, err := NextCourseCertificateNumber(db, orgID, courseID, 2025)
	require.NoError(t, err)
	assert.Equal(t, "CERT-2025-0001", num)

	// code blank → CERT juga
	blank := "   "
	blankID := seedCourse(t, db, orgID, &blank)
	num, err = NextCourseCertificateNumber(db, orgID, blankID, 2025)
	require.NoError(t, err)
	assert.Equal(t, "CERT-2025-0001", num)
}

func TestNextCourseCertificateNumber_SequenceAdvances(t *testing.T) {
	db := newCourseTestDB(t)
	orgID := uuid.New()
	courseID := seedCourse(t, db, orgID, nil)
	year := time.Now().Year()

	first, err := NextCourseCertificateNumber(db, orgID, courseID, year)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("CERT-%d-0001", year), first)
	enrolWithNumber(t, db, orgID, courseID, first)

	second, err := NextCourseCertificateNumber(db, orgID, courseID, year)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("CERT-%d-0002", year), second)
}

// Enrolment yang di-soft-delete tetap memegang nomornya di unique index,
// jadi counter tidak boleh mundur dan membentur nomor lama.
func TestNextCourseCertificateNumber_SoftDeletedHolderStillCounted(t *testing.T) {
	db := newCourseTestDB(t)
	orgID := uuid.New()
	courseID := seedCourse(t, db, orgID, nil)
	year := time.Now().Year()

	first, err := NextCourseCertificateNumber(db, orgID, courseID, year)
	require.NoError(t, err)
	row := enrolWithNumber(t, db, orgID, courseID, first)

	require.NoError(t, db.Delete(&row).Error)

	next, err := NextCourseCertificateNumber(db, orgID, courseID, year)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("CERT-%d-0002", year), next)

	// dan nomor baru itu memang masih bisa disimpan
	enrolWithNumber(t, db, orgID, courseID, next)
}

// Counter per org+course: dua course di org yang sama boleh sama-sama
// memegang CERT-{tahun}-0001 tanpa bentrok index.
func TestNextCourseCertificateNumber_IndependentPerCourse(t *testing.T) {
	db := newCourseTestDB(t)
	orgID := uuid.New()
	courseA := seedCourse(t, db, orgID, nil)
	courseB := seedCourse(t, db, orgID, nil)
	year := time.Now().Year()

	numA, err := NextCourseCertificateNumber(db, orgID, courseA, year)
	require.NoError(t, err)
	enrolWithNumber(t, db, orgID, courseA, numA)

	numB, err := NextCourseCertificateNumber(db, orgID, courseB, year)
	require.NoError(t, err)
	assert.Equal(t, numA, numB)
	enrolWithNumber(t, db, orgID, courseB, numB)

	// tapi di DALAM satu course nomor tetap unik
	dupNow := time.Now()
	dupTpl := uuid.New()
	dup := certmodel.CourseStudentModel{
		CourseStudentOrgID:                 orgID,
		CourseStudentCourseID:              courseA,
		CourseStudentUserID:                uuid.New(),
		CourseStudentNameSnapshot:          "Peserta",
		CourseStudentCertificateNumber:     &numA,
		CourseStudentCertificateTemplateID: &dupTpl,
		CourseStudentCertificateIssuedAt:   &dupNow,
	}
	assert.Error(t, db.Create(&dup).Error)
}

func TestNextCourseCertificateNumber_UnknownCourse(t *testing.T) {
	db := newCourseTestDB(t)
	_, err := NextCourseCertificateNumber(db, uuid.New(), uuid.New(), 2025)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
