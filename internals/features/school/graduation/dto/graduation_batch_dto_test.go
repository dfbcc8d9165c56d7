// file: internals/features/school/graduation/dto/graduation_batch_dto_test.go
package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	gradmodel "schoolku_backend/internals/features/school/graduation/model"
)

func TestNormalizedExams_MergesLegacyExamID(t *testing.T) {
	examA, examB := uuid.New(), uuid.New()
	in := GraduationBatchCreateDTO{
		Exams:  []BatchExamConfigDTO{{ExamID: examA}},
		ExamID: &examB,
	}
	out := in.NormalizedExams()
	assert.Len(t, out, 2)
	assert.Equal(t, examA, out[0].ExamID)
	assert.Equal(t, examB, out[1].ExamID)
}

func TestNormalizedExams_DedupsLegacyAgainstList(t *testing.T) {
	examA := uuid.New()
	w := 60.0
	in := GraduationBatchCreateDTO{
		Exams:  []BatchExamConfigDTO{{ExamID: examA, WeightPercentage: &w}},
		ExamID: &examA,
	}
	out := in.NormalizedExams()
	assert.Len(t, out, 1)
	// konfigurasi dari list menang atas legacy exam_id polos
	assert.Equal(t, &w, out[0].WeightPercentage)
}

func TestNormalizedExams_SkipsNilAndDuplicates(t *testing.T) {
	examA := uuid.New()
	in := GraduationBatchCreateDTO{
		Exams: []BatchExamConfigDTO{
			{ExamID: uuid.Nil},
			{ExamID: examA},
			{ExamID: examA},
		},
	}
	assert.Len(t, in.NormalizedExams(), 1)
}

func TestApplyGraduationBatchUpdate_RelationsChanged(t *testing.T) {
	yearOld, yearNew := uuid.New(), uuid.New()
	classID := uuid.New()
	m := &gradmodel.GraduationBatchModel{
		GraduationBatchAcademicYearID: yearOld,
		GraduationBatchClassID:        classID,
	}

	// ganti tahun ajaran → relasi berubah
	changed := ApplyGraduationBatchUpdate(m, GraduationBatchUpdateDTO{AcademicYearID: &yearNew})
	assert.True(t, changed)
	assert.Equal(t, yearNew, m.GraduationBatchAcademicYearID)

	// set class yang sama → bukan perubahan relasi
	changed = ApplyGraduationBatchUpdate(m, GraduationBatchUpdateDTO{ClassID: &classID})
	assert.False(t, changed)
}

func TestApplyGraduationBatchUpdate_ScalarFields(t *testing.T) {
	m := &gradmodel.GraduationBatchModel{}
	minAtt := 85.0
	req := true
	changed := ApplyGraduationBatchUpdate(m, GraduationBatchUpdateDTO{
		MinAttendancePercentage: &minAtt,
		RequireAttendance:       &req,
	})
	assert.False(t, changed)
	assert.Equal(t, 85.0, m.GraduationBatchMinAttendancePercentage)
	assert.True(t, m.GraduationBatchRequireAttendance)
}
