// file: internals/features/school/academics/model/student_attendance_summary_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// StudentAttendanceSummaryModel: rekap kehadiran per siswa per tahun ajaran.
// Diisi oleh modul absensi; dibaca oleh eligibility check graduation batch.
type StudentAttendanceSummaryModel struct {
	StudentAttendanceSummaryID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_attendance_summary_id" json:"student_attendance_summary_id"`

	StudentAttendanceSummarySchoolID       uuid.UUID `gorm:"type:uuid;not null;column:student_attendance_summary_school_id" json:"student_attendance_summary_school_id"`
	StudentAttendanceSummaryStudentID      uuid.UUID `gorm:"type:uuid;not null;column:student_attendance_summary_student_id;index:idx_attendance_summaries_student" json:"student_attendance_summary_student_id"`
	StudentAttendanceSummaryAcademicYearID uuid.UUID `gorm:"type:uuid;not null;column:student_attendance_summary_academic_year_id" json:"student_attendance_summary_academic_year_id"`

	StudentAttendanceSummaryTotalDays         int `gorm:"not null;default:0;column:student_attendance_summary_total_days" json:"student_attendance_summary_total_days"`
	StudentAttendanceSummaryPresentDays       int `gorm:"not null;default:0;column:student_attendance_summary_present_days" json:"student_attendance_summary_present_days"`
	StudentAttendanceSummaryApprovedLeaveDays int `gorm:"not null;default:0;column:student_attendance_summary_approved_leave_days" json:"student_attendance_summary_approved_leave_days"`

	StudentAttendanceSummaryCreatedAt time.Time `gorm:"column:student_attendance_summary_created_at;autoCreateTime" json:"student_attendance_summary_created_at"`
	StudentAttendanceSummaryUpdatedAt time.Time `gorm:"column:student_attendance_summary_updated_at;autoUpdateTime" json:"student_attendance_summary_updated_at"`
}

func (StudentAttendanceSummaryModel) TableName() string { return "student_attendance_summaries" }
