// file: internals/features/school/graduation/service/eligibility_test.go
package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gradmodel "schoolku_backend/internals/features/school/graduation/model"
)

func fptr(v float64) *float64 { return &v }

func pivot(examID uuid.UUID, weight *float64) gradmodel.GraduationBatchExamModel {
	return gradmodel.GraduationBatchExamModel{
		GraduationBatchExamExamID:           examID,
		GraduationBatchExamWeightPercentage: weight,
	}
}

func TestResolveExamWeights_Explicit(t *testing.T) {
	examA, examB := uuid.New(), uuid.New()
	w, err := ResolveExamWeights([]gradmodel.GraduationBatchExamModel{
		pivot(examA, fptr(60)),
		pivot(examB, fptr(40)),
	})
	require.NoError(t, err)
	assert.Equal(t, 60.0, w[examA])
	assert.Equal(t, 40.0, w[examB])
}

func TestResolveExamWeights_UnweightedSplitRemainder(t *testing.T) {
	examA, examB, examC := uuid.New(), uuid.New(), uuid.New()
	w, err := ResolveExamWeights([]gradmodel.GraduationBatchExamModel{
		pivot(examA, fptr(50)),
		pivot(examB, nil),
		pivot(examC, nil),
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, w[examA])
	assert.Equal(t, 25.0, w[examB])
	assert.Equal(t, 25.0, w[examC])
}

func TestResolveExamWeights_AllUnweighted(t *testing.T) {
	examA, examB := uuid.New(), uuid.New()
	w, err := ResolveExamWeights([]gradmodel.GraduationBatchExamModel{
		pivot(examA, nil),
		pivot(examB, nil),
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, w[examA])
	assert.Equal(t, 50.0, w[examB])
}

func TestResolveExamWeights_ExplicitSumOver100(t *testing.T) {
	_, err := ResolveExamWeights([]gradmodel.GraduationBatchExamModel{
		pivot(uuid.New(), fptr(70)),
		pivot(uuid.New(), fptr(50)),
	})
	assert.Error(t, err)
}

func TestResolveExamWeights_AllExplicitNormalized(t *testing.T) {
	examA, examB := uuid.New(), uuid.New()
	w, err := ResolveExamWeights([]gradmodel.GraduationBatchExamModel{
		pivot(examA, fptr(30)),
		pivot(examB, fptr(30)),
	})
	require.NoError(t, err)
	// 30:30 → dinormalisasi proporsional ke 50:50
	assert.InDelta(t, 50.0, w[examA], 0.001)
	assert.InDelta(t, 50.0, w[examB], 0.001)
}

func TestResolveExamWeights_Empty(t *testing.T) {
	_, err := ResolveExamWeights(nil)
	assert.Error(t, err)
}

func TestComputeAggregateScore(t *testing.T) {
	examA, examB := uuid.New(), uuid.New()
	weights := map[uuid.UUID]float64{examA: 60, examB: 40}
	scores := map[uuid.UUID]ExamScoreInput{
		examA: {ExamID: examA, Score: 80, MaxScore: 100},
		examB: {ExamID: examB, Score: 50, MaxScore: 100},
	}
	// 0.6*80 + 0.4*50 = 68
	assert.InDelta(t, 68.0, ComputeAggregateScore(weights, scores), 0.001)
}

func TestComputeAggregateScore_NormalizesMaxScore(t *testing.T) {
	examA := uuid.New()
	weights := map[uuid.UUID]float64{examA: 100}
	scores := map[uuid.UUID]ExamScoreInput{
		examA: {ExamID: examA, Score: 40, MaxScore: 50}, // 80%
	}
	assert.InDelta(t, 80.0, ComputeAggregateScore(weights, scores), 0.001)
}

func TestComputeAggregateScore_AbsentAndMissingAreZero(t *testing.T) {
	examA, examB := uuid.New(), uuid.New()
	weights := map[uuid.UUID]float64{examA: 50, examB: 50}
	scores := map[uuid.UUID]ExamScoreInput{
		examA: {ExamID: examA, Score: 90, MaxScore: 100, IsAbsent: true},
		// examB tidak punya nilai sama sekali
	}
	assert.Equal(t, 0.0, ComputeAggregateScore(weights, scores))
}

func TestComputePassingThreshold(t *testing.T) {
	examA, examB := uuid.New(), uuid.New()
	weights := map[uuid.UUID]float64{examA: 60, examB: 40}
	passing := map[uuid.UUID]float64{examA: 60, examB: 70}
	// 0.6*60 + 0.4*70 = 64
	assert.InDelta(t, 64.0, ComputePassingThreshold(weights, passing), 0.001)
}

func TestComputeAttendancePercentage(t *testing.T) {
	// 90 hadir dari 100 hari
	assert.InDelta(t, 90.0, ComputeAttendancePercentage(90, 100, 0, false), 0.001)

	// 10 hari cuti disetujui, dikeluarkan dari penyebut: 85/90
	assert.InDelta(t, 85.0/90.0*100, ComputeAttendancePercentage(85, 100, 10, true), 0.001)

	// cuti TIDAK dikeluarkan → penyebut tetap 100
	assert.InDelta(t, 85.0, ComputeAttendancePercentage(85, 100, 10, false), 0.001)

	// tidak ada hari efektif → dianggap penuh
	assert.Equal(t, 100.0, ComputeAttendancePercentage(0, 0, 0, false))
	assert.Equal(t, 100.0, ComputeAttendancePercentage(5, 10, 10, true))

	// tidak pernah lebih dari 100
	assert.Equal(t, 100.0, ComputeAttendancePercentage(120, 100, 0, false))
}

func TestAttendancePassed(t *testing.T) {
	batch := &gradmodel.GraduationBatchModel{
		GraduationBatchRequireAttendance:       true,
		GraduationBatchMinAttendancePercentage: 80,
	}
	assert.True(t, AttendancePassed(batch, 80))
	assert.True(t, AttendancePassed(batch, 95.5))
	assert.False(t, AttendancePassed(batch, 79.9))

	// kehadiran tidak disyaratkan → selalu lolos
	batch.GraduationBatchRequireAttendance = false
	assert.True(t, AttendancePassed(batch, 0))
}
