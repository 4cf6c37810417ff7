package diary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/sge/core"
)

func TestCheckGrades(t *testing.T) {
	assert.NoError(t, CheckGrades(map[int]float64{11: 0, 12: 10}, 10))

	err := CheckGrades(map[int]float64{13: 10.5, 11: -1, 12: 7}, 10)
	assert.True(t, core.IsValidationError(err))
	assert.EqualError(t, err, "11: nota deve estar entre 0 e 10; 13: nota deve estar entre 0 e 10")
}

func TestEvaluation(t *testing.T) {
	ev := Evaluation{Name: "Prova 1", MaxValue: 10}
	assert.Equal(t, "Prova 1 (Max: 10)", ev.Label())
	assert.Equal(t, 10.0, ev.GradeCeiling())

	ev.MaxValue = 0
	assert.Equal(t, DefaultMaxGrade, ev.GradeCeiling())
}

func TestPayloads(t *testing.T) {
	batch := NewGradeBatch(map[int]float64{12: 4.5, 11: 8})
	assert.Equal(t, []GradeEntry{{EnrollmentID: 11, Value: 8}, {EnrollmentID: 12, Value: 4.5}}, batch.Grades)

	sheet := NewAttendanceSheet(1, map[int]bool{13: true, 11: true, 12: false})
	assert.Equal(t, 1, sheet.ClassID)
	assert.Equal(t, []AttendanceRecord{
		{EnrollmentID: 11, Present: true},
		{EnrollmentID: 12, Present: false},
		{EnrollmentID: 13, Present: true},
	}, sheet.Records)
}
