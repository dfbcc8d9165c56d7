// file: internals/features/school/graduation/service/eligibility.go
package service

import (
	"fmt"

	"github.com/google/uuid"

	gradmodel "schoolku_backend/internals/features/school/graduation/model"
)

// ExamScoreInput: nilai mentah satu siswa untuk satu exam.
type ExamScoreInput struct {
	ExamID   uuid.UUID
	Score    float64
	MaxScore float64
	IsAbsent bool
}

// ExamDetailEntry: snapshot per-exam yang disimpan di kolom JSONB.
type ExamDetailEntry struct {
	ExamID     uuid.UUID `json:"exam_id"`
	ScorePct   float64   `json:"score_pct"`
	Weight     float64   `json:"weight"`
	IsAbsent   bool      `json:"is_absent"`
	IsRequired bool      `json:"is_required"`
}

// ResolveExamWeights menentukan bobot efektif (total 100) dari pivot batch-exam.
//
// Aturan (pilihan bisnis eksplisit, bukan dari input mentah):
//   - exam dengan weight eksplisit memakai weight-nya
//   - exam tanpa weight membagi rata sisa (100 - total eksplisit)
//   - total eksplisit > 100 → error (ditolak 422 di service)
//   - semua eksplisit tapi total ≠ 100 → dinormalisasi proporsional ke 100
func ResolveExamWeights(exams []gradmodel.GraduationBatchExamModel) (map[uuid.UUID]float64, error) {
	if len(exams) == 0 {
		return nil, fmt.Errorf("batch has no exams")
	}

	out := make(map[uuid.UUID]float64, len(exams))
	explicitSum := 0.0
	var unweighted []uuid.UUID

	for _, e := range exams {
		if w := e.GraduationBatchExamWeightPercentage; w != nil {
			if *w < 0 || *w > 100 {
				return nil, fmt.Errorf("exam %s weight out of range", e.GraduationBatchExamExamID)
			}
			out[e.GraduationBatchExamExamID] = *w
			explicitSum += *w
		} else {
			unweighted = append(unweighted, e.GraduationBatchExamExamID)
		}
	}

	if explicitSum > 100 {
		return nil, fmt.Errorf("explicit exam weights sum to %.2f (max 100)", explicitSum)
	}

	if len(unweighted) > 0 {
		share := (100 - explicitSum) / float64(len(unweighted))
		for _, id := range unweighted {
			out[id] = share
		}
		return out, nil
	}

	// semua eksplisit: normalisasi ke 100 bila perlu
	if explicitSum > 0 && explicitSum != 100 {
		factor := 100 / explicitSum
		for id, w := range out {
			out[id] = w * factor
		}
	}
	return out, nil
}

// ComputeAggregateScore menghitung skor agregat berbobot (skala 0–100).
// Skor per exam dinormalisasi ke persen dari max score; absen dihitung nol.
func ComputeAggregateScore(weights map[uuid.UUID]float64, scores map[uuid.UUID]ExamScoreInput) float64 {
	total := 0.0
	for examID, weight := range weights {
		in, ok := scores[examID]
		if !ok || in.IsAbsent {
			continue // tanpa nilai / absen → kontribusi nol
		}
		pct := in.Score
		if in.MaxScore > 0 && in.MaxScore != 100 {
			pct = in.Score / in.MaxScore * 100
		}
		total += weight / 100 * pct
	}
	return total
}

// ComputePassingThreshold: ambang lulus agregat = rata-rata berbobot dari
// passing score tiap exam (dinormalisasi ke persen).
func ComputePassingThreshold(weights map[uuid.UUID]float64, passingPct map[uuid.UUID]float64) float64 {
	total := 0.0
	for examID, weight := range weights {
		p, ok := passingPct[examID]
		if !ok {
			continue
		}
		total += weight / 100 * p
	}
	return total
}

// ComputeAttendancePercentage menghitung persen kehadiran.
// excludeApprovedLeaves: hari cuti yang disetujui dikeluarkan dari penyebut.
func ComputeAttendancePercentage(presentDays, totalDays, approvedLeaveDays int, excludeApprovedLeaves bool) float64 {
	denom := totalDays
	if excludeApprovedLeaves {
		denom -= approvedLeaveDays
	}
	if denom <= 0 {
		return 100 // tidak ada hari efektif → dianggap penuh
	}
	pct := float64(presentDays) / float64(denom) * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}

// AttendancePassed: lolos syarat kehadiran batch?
func AttendancePassed(batch *gradmodel.GraduationBatchModel, attendancePct float64) bool {
	if !batch.GraduationBatchRequireAttendance {
		return true
	}
	return attendancePct >= batch.GraduationBatchMinAttendancePercentage
}
