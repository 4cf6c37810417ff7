package diary

import (
	"context"
	"fmt"
	"sort"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sge/core"
)

// DefaultMaxGrade bounds grades when the evaluation's maximum is unknown.
const DefaultMaxGrade = 100.0

type (
	Evaluation struct {
		ID          int         `json:"id" validate:"gt=0"`
		Name        string      `json:"nome" validate:"required"`
		Date        string      `json:"data"`
		MaxValue    float64     `json:"valor_maximo" validate:"gte=0"`
		SubjectID   null.Int    `json:"disciplina_id"`
		SubjectName null.String `json:"disciplina_nome"`
	}

	EvaluationInput struct {
		ClassID   int      `json:"turma_id" validate:"gt=0"`
		SubjectID null.Int `json:"disciplina_id"`
		Name      string   `json:"nome" validate:"required,notblank"`
		Date      string   `json:"data" validate:"required,isodate"`
		MaxValue  float64  `json:"valor_maximo" validate:"gt=0"`
	}

	// Grade is a student's value for an evaluation. ID is 0 and Value null until a grade is saved.
	Grade struct {
		ID           int          `json:"id" validate:"gte=0"`
		EnrollmentID int          `json:"matricula_id" validate:"gt=0"`
		StudentName  string       `json:"aluno_nome"`
		Value        null.Float64 `json:"valor"`
	}

	GradeEntry struct {
		EnrollmentID int     `json:"matricula_id"`
		Value        float64 `json:"valor"`
	}

	GradeBatch struct {
		Grades []GradeEntry `json:"notas"`
	}

	LessonPlan struct {
		ID          int         `json:"id" validate:"gt=0"`
		ClassID     int         `json:"turma_id"`
		Date        string      `json:"data"`
		Content     string      `json:"conteudo"`
		Methodology null.String `json:"metodologia"`
		Homework    null.String `json:"tarefa_casa"`
	}

	LessonPlanInput struct {
		ClassID     int         `json:"turma_id" validate:"gt=0"`
		Date        string      `json:"data" validate:"required,isodate"`
		Content     string      `json:"conteudo" validate:"required,min=5"`
		Methodology null.String `json:"metodologia"`
		Homework    null.String `json:"tarefa_casa"`
	}

	AttendanceRecord struct {
		EnrollmentID int  `json:"matricula_id"`
		Present      bool `json:"presente"`
	}

	// AttendanceSheet is a whole roster's attendance, submitted at once.
	AttendanceSheet struct {
		ClassID int                `json:"turma_id"`
		Records []AttendanceRecord `json:"presencas"`
	}

	// AttendanceResult tells a real write apart from a simulated acceptance.
	AttendanceResult struct {
		Simulated bool
		Records   int
	}
)

// Label renders the evaluation the way selectors show it, e.g. "Prova 1 (Max: 10)".
func (e Evaluation) Label() string {
	return fmt.Sprintf("%s (Max: %g)", e.Name, e.MaxValue)
}

// GradeCeiling is the highest value a grade may take for e.
func (e Evaluation) GradeCeiling() float64 {
	if e.MaxValue > 0 {
		return e.MaxValue
	}
	return DefaultMaxGrade
}

func (ei *EvaluationInput) Clean() {
	ei.Name = core.CleanString(ei.Name)
	ei.Date = core.CleanString(ei.Date)
}

func (li *LessonPlanInput) Clean() {
	li.Content = core.CleanString(li.Content)
	li.Date = core.CleanString(li.Date)
}

func (p LessonPlan) AsInput() LessonPlanInput {
	return LessonPlanInput{
		ClassID:     p.ClassID,
		Date:        p.Date,
		Content:     p.Content,
		Methodology: p.Methodology,
		Homework:    p.Homework,
	}
}

// NewGradeBatch builds the payload from a matricula -> value mapping, ordered by enrollment.
func NewGradeBatch(values map[int]float64) GradeBatch {
	batch := GradeBatch{Grades: make([]GradeEntry, 0, len(values))}
	for id, v := range values {
		batch.Grades = append(batch.Grades, GradeEntry{EnrollmentID: id, Value: v})
	}
	sort.Slice(batch.Grades, func(i, j int) bool { return batch.Grades[i].EnrollmentID < batch.Grades[j].EnrollmentID })
	return batch
}

// NewAttendanceSheet builds the payload from a matricula -> present mapping, ordered by enrollment.
func NewAttendanceSheet(classID int, presence map[int]bool) AttendanceSheet {
	sheet := AttendanceSheet{ClassID: classID, Records: make([]AttendanceRecord, 0, len(presence))}
	for id, present := range presence {
		sheet.Records = append(sheet.Records, AttendanceRecord{EnrollmentID: id, Present: present})
	}
	sort.Slice(sheet.Records, func(i, j int) bool { return sheet.Records[i].EnrollmentID < sheet.Records[j].EnrollmentID })
	return sheet
}

// CheckGrades validates every value against 0..ceiling and reports offending enrollments as fields.
func CheckGrades(values map[int]float64, ceiling float64) error {
	var flds []core.FieldError
	for id, v := range values {
		if v < 0 || v > ceiling {
			flds = append(flds, core.FieldError{
				Field: fmt.Sprintf("%d", id),
				Error: fmt.Sprintf("nota deve estar entre 0 e %g", ceiling),
			})
		}
	}
	if len(flds) > 0 {
		sort.Slice(flds, func(i, j int) bool { return flds[i].Field < flds[j].Field })
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

// Repository is the backend's diary area.
type Repository interface {
	ListEvaluations(ctx context.Context, classID int) ([]Evaluation, error)
	CreateEvaluation(ctx context.Context, in EvaluationInput) (Evaluation, error)
	ListGrades(ctx context.Context, evaluationID int) ([]Grade, error)
	SaveGrades(ctx context.Context, evaluationID int, batch GradeBatch) error

	ListLessonPlans(ctx context.Context, classID int) ([]LessonPlan, error)
	CreateLessonPlan(ctx context.Context, in LessonPlanInput) (LessonPlan, error)
	UpdateLessonPlan(ctx context.Context, id int, in LessonPlanInput) (LessonPlan, error)
	DeleteLessonPlan(ctx context.Context, id int) error
}

// AttendanceRecorder saves a class's attendance sheet.
type AttendanceRecorder interface {
	RecordAttendance(ctx context.Context, sheet AttendanceSheet) (AttendanceResult, error)
}
