// file: internals/features/school/graduation/service/graduation_batch_service.go
package service

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	acadmodel "schoolku_backend/internals/features/school/academics/model"
	certmodel "schoolku_backend/internals/features/school/certificates/model"
	certservice "schoolku_backend/internals/features/school/certificates/service"
	"schoolku_backend/internals/features/school/graduation/dto"
	gradmodel "schoolku_backend/internals/features/school/graduation/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

// GraduationBatchService: state machine lifecycle batch.
//
//	draft → (generateStudents, berulang) → draft
//	draft → (approve, butuh ≥1 siswa) → approved
//	approved → (issueCertificates) → issued
//
// Hanya draft yang boleh di-update/di-delete. Semua method menerima
// TenantContext eksplisit; scope mismatch dilaporkan 404 (bukan 403)
// supaya keberadaan data lintas tenant tidak bocor.
type GraduationBatchService struct {
	DB *gorm.DB
}

func NewGraduationBatchService(db *gorm.DB) *GraduationBatchService {
	return &GraduationBatchService{DB: db}
}

var (
	ErrBatchNotFound    = fiber.NewError(fiber.StatusNotFound, "graduation batch tidak ditemukan")
	ErrBatchNotDraft    = fiber.NewError(fiber.StatusConflict, "graduation batch sudah tidak berstatus draft")
	ErrBatchIssued      = fiber.NewError(fiber.StatusConflict, "graduation batch sudah issued")
	ErrBatchNotApproved = fiber.NewError(fiber.StatusConflict, "graduation batch belum di-approve")
	ErrBatchNoStudents  = fiber.NewError(fiber.StatusConflict, "graduation batch belum punya siswa hasil generate")
)

/* =======================================================
   HELPERS
======================================================= */

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return err != nil &&
		(strings.Contains(err.Error(), "duplicate key value") ||
			strings.Contains(err.Error(), "unique constraint"))
}

func writeAudit(tx *gorm.DB, entityType certmodel.AuditEntityType, entityID uuid.UUID, action certmodel.AuditAction, actorID uuid.UUID, metadata map[string]any) error {
	return certservice.WriteAuditLog(tx, entityType, entityID, action, actorID, metadata)
}

// getForUpdate: ambil batch dalam scope tenant + row lock.
// Lock ini yang menserialkan generate/approve/issue untuk batch yang sama.
func (s *GraduationBatchService) getForUpdate(tx *gorm.DB, tc helperAuth.TenantContext, batchID uuid.UUID) (*gradmodel.GraduationBatchModel, error) {
	var m gradmodel.GraduationBatchModel
	err := helper.LockForUpdate(tx).
		First(&m,
			"graduation_batch_id = ? AND graduation_batch_org_id = ? AND graduation_batch_school_id = ?",
			batchID, tc.OrgID, tc.SchoolID,
		).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// validateRefs memastikan tahun ajaran, kelas, dan exam milik org+school
// yang sama sebelum di-attach ke batch. Referensi lintas school → 422.
func validateRefs(tx *gorm.DB, tc helperAuth.TenantContext, yearID, classID uuid.UUID, extraClassIDs []uuid.UUID, examIDs []uuid.UUID) error {
	var n int64
	if err := tx.Model(&acadmodel.AcademicYearModel{}).
		Where("academic_year_id = ? AND academic_year_org_id = ? AND academic_year_school_id = ?", yearID, tc.OrgID, tc.SchoolID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "academic year tidak ditemukan di school ini")
	}

	classIDs := append([]uuid.UUID{classID}, extraClassIDs...)
	if err := tx.Model(&acadmodel.ClassModel{}).
		Where("class_id IN ? AND class_org_id = ? AND class_school_id = ?", classIDs, tc.OrgID, tc.SchoolID).
		Count(&n).Error; err != nil {
		return err
	}
	if n != int64(len(classIDs)) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "class tidak ditemukan di school ini")
	}

	if len(examIDs) > 0 {
		if err := tx.Model(&acadmodel.ExamModel{}).
			Where("exam_id IN ? AND exam_org_id = ? AND exam_school_id = ?", examIDs, tc.OrgID, tc.SchoolID).
			Count(&n).Error; err != nil {
			return err
		}
		if n != int64(len(examIDs)) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "exam tidak ditemukan di school ini")
		}
	}
	return nil
}

func buildBatchExamPivots(batchID uuid.UUID, exams []dto.BatchExamConfigDTO) []gradmodel.GraduationBatchExamModel {
	out := make([]gradmodel.GraduationBatchExamModel, 0, len(exams))
	for i, e := range exams {
		pivot := gradmodel.GraduationBatchExamModel{
			GraduationBatchExamBatchID:          batchID,
			GraduationBatchExamExamID:           e.ExamID,
			GraduationBatchExamWeightPercentage: e.WeightPercentage,
			GraduationBatchExamIsRequired:       true,
			GraduationBatchExamDisplayOrder:     i,
		}
		if e.IsRequired != nil {
			pivot.GraduationBatchExamIsRequired = *e.IsRequired
		}
		if e.DisplayOrder != nil {
			pivot.GraduationBatchExamDisplayOrder = *e.DisplayOrder
		}
		out = append(out, pivot)
	}
	return out
}

/* =======================================================
   CREATE
======================================================= */

func (s *GraduationBatchService) Create(tc helperAuth.TenantContext, actorID uuid.UUID, in dto.GraduationBatchCreateDTO) (*gradmodel.GraduationBatchModel, error) {
	exams := in.NormalizedExams()
	if len(exams) == 0 {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "minimal satu exam wajib dipilih (exams atau exam_id)")
	}

	gradType := in.GraduationType
	if gradType == "" {
		gradType = gradmodel.GraduationTypeFinalYear
	}

	m := gradmodel.GraduationBatchModel{
		GraduationBatchOrgID:    tc.OrgID,
		GraduationBatchSchoolID: tc.SchoolID,

		GraduationBatchAcademicYearID: in.AcademicYearID,
		GraduationBatchClassID:        in.ClassID,
		GraduationBatchType:           gradType,
		GraduationBatchFromClassID:    in.FromClassID,
		GraduationBatchToClassID:      in.ToClassID,
		GraduationBatchGraduationDate: in.GraduationDate,

		GraduationBatchRequireAttendance:     in.RequireAttendance,
		GraduationBatchExcludeApprovedLeaves: in.ExcludeApprovedLeaves,

		GraduationBatchStatus: gradmodel.GraduationBatchDraft,
	}
	if in.MinAttendancePercentage != nil {
		m.GraduationBatchMinAttendancePercentage = *in.MinAttendancePercentage
	}

	// Validasi bobot di muka (total eksplisit > 100 → tolak)
	if _, err := ResolveExamWeights(buildBatchExamPivots(uuid.Nil, exams)); err != nil {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		extraClasses := make([]uuid.UUID, 0, 2)
		if in.FromClassID != nil {
			extraClasses = append(extraClasses, *in.FromClassID)
		}
		if in.ToClassID != nil {
			extraClasses = append(extraClasses, *in.ToClassID)
		}
		examIDs := make([]uuid.UUID, 0, len(exams))
		for _, e := range exams {
			examIDs = append(examIDs, e.ExamID)
		}
		if err := validateRefs(tx, tc, in.AcademicYearID, in.ClassID, extraClasses, examIDs); err != nil {
			return err
		}

		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		pivots := buildBatchExamPivots(m.GraduationBatchID, exams)
		if err := tx.Create(&pivots).Error; err != nil {
			return err
		}
		m.GraduationBatchExams = pivots

		return writeAudit(tx, certmodel.AuditEntityGraduationBatch, m.GraduationBatchID, certmodel.AuditActionCreated, actorID, map[string]any{
			"academic_year_id": in.AcademicYearID,
			"class_id":         in.ClassID,
			"exam_count":       len(pivots),
		})
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

/* =======================================================
   LIST & SHOW
======================================================= */

type BatchListFilter struct {
	AcademicYearID *uuid.UUID
	ClassID        *uuid.UUID
	ExamID         *uuid.UUID
	Status         *gradmodel.GraduationBatchStatus
}

func (s *GraduationBatchService) List(tc helperAuth.TenantContext, f BatchListFilter, offset, limit int) ([]gradmodel.GraduationBatchModel, int64, error) {
	q := s.DB.Model(&gradmodel.GraduationBatchModel{}).
		Where("graduation_batch_org_id = ? AND graduation_batch_school_id = ?", tc.OrgID, tc.SchoolID)

	if f.AcademicYearID != nil {
		q = q.Where("graduation_batch_academic_year_id = ?", *f.AcademicYearID)
	}
	if f.ClassID != nil {
		q = q.Where("graduation_batch_class_id = ?", *f.ClassID)
	}
	if f.Status != nil {
		q = q.Where("graduation_batch_status = ?", *f.Status)
	}
	if f.ExamID != nil {
		q = q.Where("graduation_batch_id IN (?)",
			s.DB.Model(&gradmodel.GraduationBatchExamModel{}).
				Select("graduation_batch_exam_batch_id").
				Where("graduation_batch_exam_exam_id = ?", *f.ExamID),
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []gradmodel.GraduationBatchModel
	err := q.
		Preload("GraduationBatchExams", func(db *gorm.DB) *gorm.DB {
			return db.Order("graduation_batch_exam_display_order ASC")
		}).
		Order("graduation_batch_created_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Show: batch + 20 audit terakhir (terbaru dulu).
func (s *GraduationBatchService) Show(tc helperAuth.TenantContext, batchID uuid.UUID) (*gradmodel.GraduationBatchModel, []certmodel.CertificateAuditLogModel, error) {
	var m gradmodel.GraduationBatchModel
	err := s.DB.
		Preload("GraduationBatchExams", func(db *gorm.DB) *gorm.DB {
			return db.Order("graduation_batch_exam_display_order ASC")
		}).
		First(&m,
			"graduation_batch_id = ? AND graduation_batch_org_id = ? AND graduation_batch_school_id = ?",
			batchID, tc.OrgID, tc.SchoolID,
		).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrBatchNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	var logs []certmodel.CertificateAuditLogModel
	if err := s.DB.
		Where("certificate_audit_log_entity_type = ? AND certificate_audit_log_entity_id = ?",
			certmodel.AuditEntityGraduationBatch, batchID).
		Order("certificate_audit_log_performed_at DESC").
		Limit(20).
		Find(&logs).Error; err != nil {
		return nil, nil, err
	}
	return &m, logs, nil
}

// ListStudents: hasil generate untuk satu batch (tenant-guarded).
func (s *GraduationBatchService) ListStudents(tc helperAuth.TenantContext, batchID uuid.UUID) ([]gradmodel.GraduationBatchStudentModel, error) {
	var n int64
	if err := s.DB.Model(&gradmodel.GraduationBatchModel{}).
		Where("graduation_batch_id = ? AND graduation_batch_org_id = ? AND graduation_batch_school_id = ?",
			batchID, tc.OrgID, tc.SchoolID).
		Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrBatchNotFound
	}

	var rows []gradmodel.GraduationBatchStudentModel
	err := s.DB.
		Where("graduation_batch_student_batch_id = ?", batchID).
		Order("graduation_batch_student_name_snapshot ASC").
		Find(&rows).Error
	return rows, err
}

/* =======================================================
   UPDATE & DELETE (draft only)
======================================================= */

func (s *GraduationBatchService) Update(tc helperAuth.TenantContext, batchID, actorID uuid.UUID, in dto.GraduationBatchUpdateDTO) (*gradmodel.GraduationBatchModel, error) {
	var out *gradmodel.GraduationBatchModel

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		m, err := s.getForUpdate(tx, tc, batchID)
		if err != nil {
			return err
		}
		if !m.IsEditable() {
			return ErrBatchNotDraft
		}

		before := map[string]any{
			"academic_year_id":          m.GraduationBatchAcademicYearID,
			"class_id":                  m.GraduationBatchClassID,
			"graduation_type":           m.GraduationBatchType,
			"min_attendance_percentage": m.GraduationBatchMinAttendancePercentage,
			"require_attendance":        m.GraduationBatchRequireAttendance,
		}

		relationsChanged := dto.ApplyGraduationBatchUpdate(m, in)

		examIDs := make([]uuid.UUID, 0, len(in.Exams))
		for _, e := range in.Exams {
			examIDs = append(examIDs, e.ExamID)
		}

		if relationsChanged || len(examIDs) > 0 {
			extraClasses := make([]uuid.UUID, 0, 2)
			if m.GraduationBatchFromClassID != nil {
				extraClasses = append(extraClasses, *m.GraduationBatchFromClassID)
			}
			if m.GraduationBatchToClassID != nil {
				extraClasses = append(extraClasses, *m.GraduationBatchToClassID)
			}
			if err := validateRefs(tx, tc, m.GraduationBatchAcademicYearID, m.GraduationBatchClassID, extraClasses, examIDs); err != nil {
				return err
			}
		}

		// Ganti set exam bila dikirim
		var pivots []gradmodel.GraduationBatchExamModel
		if len(in.Exams) > 0 {
			pivots = buildBatchExamPivots(m.GraduationBatchID, in.Exams)
			if _, err := ResolveExamWeights(pivots); err != nil {
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			}
			if err := tx.
				Where("graduation_batch_exam_batch_id = ?", m.GraduationBatchID).
				Delete(&gradmodel.GraduationBatchExamModel{}).Error; err != nil {
				return err
			}
			if err := tx.Create(&pivots).Error; err != nil {
				return err
			}
		}

		if err := tx.Save(m).Error; err != nil {
			return err
		}
		if pivots != nil {
			m.GraduationBatchExams = pivots
		}

		after := map[string]any{
			"academic_year_id":          m.GraduationBatchAcademicYearID,
			"class_id":                  m.GraduationBatchClassID,
			"graduation_type":           m.GraduationBatchType,
			"min_attendance_percentage": m.GraduationBatchMinAttendancePercentage,
			"require_attendance":        m.GraduationBatchRequireAttendance,
		}

		out = m
		return writeAudit(tx, certmodel.AuditEntityGraduationBatch, m.GraduationBatchID, certmodel.AuditActionUpdated, actorID, map[string]any{
			"before": before,
			"after":  after,
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GraduationBatchService) Delete(tc helperAuth.TenantContext, batchID, actorID uuid.UUID) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		m, err := s.getForUpdate(tx, tc, batchID)
		if err != nil {
			return err
		}
		if !m.IsEditable() {
			return ErrBatchNotDraft
		}
		if err := tx.Delete(m).Error; err != nil {
			return err
		}
		return writeAudit(tx, certmodel.AuditEntityGraduationBatch, m.GraduationBatchID, certmodel.AuditActionDeleted, actorID, nil)
	})
}

/* =======================================================
   GENERATE STUDENTS
======================================================= */

// GenerateStudents mengevaluasi semua siswa kelas/tahun-ajaran batch dan
// MENGGANTI seluruh hasil generate sebelumnya (idempotent re-run).
func (s *GraduationBatchService) GenerateStudents(tc helperAuth.TenantContext, batchID, actorID uuid.UUID) ([]gradmodel.GraduationBatchStudentModel, error) {
	var out []gradmodel.GraduationBatchStudentModel

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		m, err := s.getForUpdate(tx, tc, batchID)
		if err != nil {
			return err
		}
		if m.GraduationBatchStatus == gradmodel.GraduationBatchIssued {
			return ErrBatchIssued
		}

		// Konfigurasi exam + bobot efektif
		var pivots []gradmodel.GraduationBatchExamModel
		if err := tx.
			Where("graduation_batch_exam_batch_id = ?", m.GraduationBatchID).
			Order("graduation_batch_exam_display_order ASC").
			Find(&pivots).Error; err != nil {
			return err
		}
		weights, err := ResolveExamWeights(pivots)
		if err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		examIDs := make([]uuid.UUID, 0, len(pivots))
		requiredExam := make(map[uuid.UUID]bool, len(pivots))
		for _, p := range pivots {
			examIDs = append(examIDs, p.GraduationBatchExamExamID)
			requiredExam[p.GraduationBatchExamExamID] = p.GraduationBatchExamIsRequired
		}

		var exams []acadmodel.ExamModel
		if err := tx.Where("exam_id IN ?", examIDs).Find(&exams).Error; err != nil {
			return err
		}
		maxScore := make(map[uuid.UUID]float64, len(exams))
		passingPct := make(map[uuid.UUID]float64, len(exams))
		for _, e := range exams {
			maxScore[e.ExamID] = e.ExamMaxScore
			if e.ExamMaxScore > 0 {
				passingPct[e.ExamID] = e.ExamPassingScore / e.ExamMaxScore * 100
			}
		}
		threshold := ComputePassingThreshold(weights, passingPct)

		// Roster kelas
		var roster []acadmodel.SchoolStudentModel
		if err := tx.
			Where("school_student_school_id = ? AND school_student_class_id = ? AND school_student_academic_year_id = ? AND school_student_is_active = TRUE",
				tc.SchoolID, m.GraduationBatchClassID, m.GraduationBatchAcademicYearID).
			Find(&roster).Error; err != nil {
			return err
		}
		if len(roster) == 0 {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "kelas tidak memiliki siswa aktif untuk tahun ajaran ini")
		}
		rosterIDs := make([]uuid.UUID, 0, len(roster))
		for _, st := range roster {
			rosterIDs = append(rosterIDs, st.SchoolStudentID)
		}

		// Nilai exam per siswa
		var results []acadmodel.ExamResultModel
		if err := tx.
			Where("exam_result_exam_id IN ? AND exam_result_student_id IN ?", examIDs, rosterIDs).
			Find(&results).Error; err != nil {
			return err
		}
		scoreByStudent := make(map[uuid.UUID]map[uuid.UUID]ExamScoreInput, len(roster))
		for _, r := range results {
			mm, ok := scoreByStudent[r.ExamResultStudentID]
			if !ok {
				mm = make(map[uuid.UUID]ExamScoreInput, len(examIDs))
				scoreByStudent[r.ExamResultStudentID] = mm
			}
			mm[r.ExamResultExamID] = ExamScoreInput{
				ExamID:   r.ExamResultExamID,
				Score:    r.ExamResultScore,
				MaxScore: maxScore[r.ExamResultExamID],
				IsAbsent: r.ExamResultIsAbsent,
			}
		}

		// Rekap kehadiran (hanya dibaca kalau batch mensyaratkan)
		attendanceByStudent := map[uuid.UUID]acadmodel.StudentAttendanceSummaryModel{}
		if m.GraduationBatchRequireAttendance {
			var summaries []acadmodel.StudentAttendanceSummaryModel
			if err := tx.
				Where("student_attendance_summary_student_id IN ? AND student_attendance_summary_academic_year_id = ?",
					rosterIDs, m.GraduationBatchAcademicYearID).
				Find(&summaries).Error; err != nil {
				return err
			}
			for _, sm := range summaries {
				attendanceByStudent[sm.StudentAttendanceSummaryStudentID] = sm
			}
		}

		// Hitung verdict per siswa
		rows := make([]gradmodel.GraduationBatchStudentModel, 0, len(roster))
		eligibleCount := 0
		for _, st := range roster {
			scores := scoreByStudent[st.SchoolStudentID]

			attendancePct := 100.0
			if m.GraduationBatchRequireAttendance {
				sm := attendanceByStudent[st.SchoolStudentID]
				attendancePct = ComputeAttendancePercentage(
					sm.StudentAttendanceSummaryPresentDays,
					sm.StudentAttendanceSummaryTotalDays,
					sm.StudentAttendanceSummaryApprovedLeaveDays,
					m.GraduationBatchExcludeApprovedLeaves,
				)
			}
			attendanceOK := AttendancePassed(m, attendancePct)

			aggregate := ComputeAggregateScore(weights, scores)
			eligible := attendanceOK && aggregate >= threshold

			detail := make([]ExamDetailEntry, 0, len(examIDs))
			for _, examID := range examIDs {
				entry := ExamDetailEntry{
					ExamID:     examID,
					Weight:     weights[examID],
					IsRequired: requiredExam[examID],
				}
				if in, ok := scores[examID]; ok {
					entry.IsAbsent = in.IsAbsent
					if !in.IsAbsent {
						entry.ScorePct = in.Score
						if in.MaxScore > 0 && in.MaxScore != 100 {
							entry.ScorePct = in.Score / in.MaxScore * 100
						}
					}
				}
				detail = append(detail, entry)
			}
			detailJSON, err := json.Marshal(detail)
			if err != nil {
				return err
			}

			if eligible {
				eligibleCount++
			}
			rows = append(rows, gradmodel.GraduationBatchStudentModel{
				GraduationBatchStudentBatchID:   m.GraduationBatchID,
				GraduationBatchStudentStudentID: st.SchoolStudentID,
				GraduationBatchStudentSchoolID:  tc.SchoolID,

				GraduationBatchStudentNameSnapshot: st.SchoolStudentNameSnapshot,

				GraduationBatchStudentAggregateScore:       aggregate,
				GraduationBatchStudentAttendancePercentage: attendancePct,
				GraduationBatchStudentAttendancePassed:     attendanceOK,
				GraduationBatchStudentIsEligible:           eligible,
				GraduationBatchStudentExamDetail:           datatypes.JSON(detailJSON),
			})
		}

		// Regenerate = replace: hapus hasil lama, tulis ulang
		if err := tx.
			Where("graduation_batch_student_batch_id = ?", m.GraduationBatchID).
			Delete(&gradmodel.GraduationBatchStudentModel{}).Error; err != nil {
			return err
		}
		if err := tx.CreateInBatches(&rows, 100).Error; err != nil {
			return err
		}

		if err := tx.Model(m).
			Update("graduation_batch_student_count", len(rows)).Error; err != nil {
			return err
		}

		out = rows
		return writeAudit(tx, certmodel.AuditEntityGraduationBatch, m.GraduationBatchID, certmodel.AuditActionGenerated, actorID, map[string]any{
			"student_count":  len(rows),
			"eligible_count": eligibleCount,
			"pass_threshold": threshold,
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

/* =======================================================
   APPROVE
======================================================= */

func (s *GraduationBatchService) Approve(tc helperAuth.TenantContext, batchID, actorID uuid.UUID) (*gradmodel.GraduationBatchModel, error) {
	var out *gradmodel.GraduationBatchModel

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		m, err := s.getForUpdate(tx, tc, batchID)
		if err != nil {
			return err
		}
		if m.GraduationBatchStatus != gradmodel.GraduationBatchDraft {
			return ErrBatchNotDraft
		}

		var n int64
		if err := tx.Model(&gradmodel.GraduationBatchStudentModel{}).
			Where("graduation_batch_student_batch_id = ?", m.GraduationBatchID).
			Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrBatchNoStudents
		}

		m.GraduationBatchStatus = gradmodel.GraduationBatchApproved
		if err := tx.Save(m).Error; err != nil {
			return err
		}

		out = m
		return writeAudit(tx, certmodel.AuditEntityGraduationBatch, m.GraduationBatchID, certmodel.AuditActionApproved, actorID, map[string]any{
			"student_count": n,
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

/* =======================================================
   ISSUE CERTIFICATES
======================================================= */

// IssueCertificates menerbitkan sertifikat untuk semua siswa eligible yang
// belum punya nomor, dengan penomoran sekuensial batch-scoped. Satu
// transaksi: gagal di tengah → rollback total, status batch tidak berubah.
func (s *GraduationBatchService) IssueCertificates(tc helperAuth.TenantContext, batchID, actorID uuid.UUID, in dto.IssueCertificatesDTO) ([]gradmodel.GraduationBatchStudentModel, error) {
	var out []gradmodel.GraduationBatchStudentModel

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		m, err := s.getForUpdate(tx, tc, batchID)
		if err != nil {
			return err
		}
		switch m.GraduationBatchStatus {
		case gradmodel.GraduationBatchIssued:
			return ErrBatchIssued
		case gradmodel.GraduationBatchDraft:
			return ErrBatchNotApproved
		}

		// Template: harus milik org dan aktif
		var tpl certmodel.CertificateTemplateModel
		err = tx.First(&tpl,
			"certificate_template_id = ? AND certificate_template_org_id = ?",
			in.CertificateTemplateID, tc.OrgID,
		).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "certificate template tidak ditemukan")
		}
		if err != nil {
			return err
		}
		if !tpl.CertificateTemplateIsActive {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "certificate template tidak aktif")
		}

		year := time.Now().Year()
		if m.GraduationBatchGraduationDate != nil {
			year = m.GraduationBatchGraduationDate.Year()
		}
		prefix := DefaultCertificatePrefix
		if in.Prefix != nil {
			prefix = *in.Prefix
		}
		padding := DefaultCertificatePadding
		if in.Padding != nil {
			padding = *in.Padding
		}
		starting := 1
		if in.StartingNumber != nil {
			starting = *in.StartingNumber
		}

		// Lanjutkan dari alokasi sebelumnya di batch ini (monotonic)
		var allocated int64
		if err := tx.Model(&gradmodel.GraduationBatchStudentModel{}).
			Where("graduation_batch_student_batch_id = ? AND graduation_batch_student_certificate_number IS NOT NULL", m.GraduationBatchID).
			Count(&allocated).Error; err != nil {
			return err
		}
		if next := int(allocated) + 1; next > starting {
			starting = next
		}
		numberer := NewBatchCertificateNumberer(prefix, year, starting, padding)

		var students []gradmodel.GraduationBatchStudentModel
		if err := tx.
			Where("graduation_batch_student_batch_id = ? AND graduation_batch_student_is_eligible = TRUE AND graduation_batch_student_certificate_number IS NULL", m.GraduationBatchID).
			Order("graduation_batch_student_name_snapshot ASC").
			Find(&students).Error; err != nil {
			return err
		}
		if len(students) == 0 {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "tidak ada siswa eligible yang belum bersertifikat")
		}

		now := time.Now()
		for i := range students {
			num := numberer.Next()
			students[i].GraduationBatchStudentCertificateNumber = &num
			students[i].GraduationBatchStudentCertificateTemplateID = &tpl.CertificateTemplateID
			students[i].GraduationBatchStudentCertificateIssuedAt = &now
			if err := tx.Save(&students[i]).Error; err != nil {
				return err
			}
			if err := writeAudit(tx, certmodel.AuditEntityCertificate, students[i].GraduationBatchStudentID, certmodel.AuditActionIssued, actorID, map[string]any{
				"certificate_number": num,
				"student_id":         students[i].GraduationBatchStudentStudentID,
				"batch_id":           m.GraduationBatchID,
			}); err != nil {
				return err
			}
		}

		m.GraduationBatchStatus = gradmodel.GraduationBatchIssued
		if err := tx.Save(m).Error; err != nil {
			return err
		}

		out = students
		meta := map[string]any{
			"issued_count": len(students),
			"template_id":  tpl.CertificateTemplateID,
			"prefix":       prefix,
			"year":         year,
		}
		if in.CertificateType != nil {
			meta["certificate_type"] = *in.CertificateType
		}
		return writeAudit(tx, certmodel.AuditEntityGraduationBatch, m.GraduationBatchID, certmodel.AuditActionIssued, actorID, meta)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fiber.NewError(fiber.StatusConflict, "nomor sertifikat bentrok, coba ulangi")
		}
		return nil, err
	}
	return out, nil
}
