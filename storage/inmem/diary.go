package inmemdb

import (
	"context"
	"fmt"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sge/core"
	"github.com/trezcool/sge/core/diary"
)

type diaryRepository struct {
	db *DB
}

func NewDiaryRepository(db *DB) diary.Repository {
	return &diaryRepository{db: db}
}

func (repo *diaryRepository) ListEvaluations(ctx context.Context, classID int) ([]diary.Evaluation, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if _, err := repo.db.classes.get(classID); err != nil {
		return nil, err
	}
	evaluations := make([]diary.Evaluation, 0)
	for _, ev := range repo.db.evaluations.all() {
		if ev.ClassID == classID {
			evaluations = append(evaluations, ev.Evaluation)
		}
	}
	return evaluations, nil
}

func (repo *diaryRepository) CreateEvaluation(ctx context.Context, in diary.EvaluationInput) (diary.Evaluation, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, err := repo.db.classes.get(in.ClassID); err != nil {
		return diary.Evaluation{}, core.NewValidationError(nil, core.FieldError{Field: "turma_id", Error: "turma não encontrada"})
	}
	ev := evaluation{
		Evaluation: diary.Evaluation{
			ID:        repo.db.evaluations.newID(),
			Name:      in.Name,
			Date:      in.Date,
			MaxValue:  in.MaxValue,
			SubjectID: in.SubjectID,
		},
		ClassID: in.ClassID,
	}
	if in.SubjectID.Valid {
		s, err := repo.db.subjects.get(in.SubjectID.Int)
		if err != nil {
			return diary.Evaluation{}, core.NewValidationError(nil, core.FieldError{Field: "disciplina_id", Error: "disciplina não encontrada"})
		}
		ev.SubjectName = null.StringFrom(s.Name)
	}
	repo.db.evaluations.insert(ev.ID, ev)
	return ev.Evaluation, nil
}

// ListGrades lists every enrollment of the evaluation's class, with its grade when one was saved.
func (repo *diaryRepository) ListGrades(ctx context.Context, evaluationID int) ([]diary.Grade, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	ev, err := repo.db.evaluations.get(evaluationID)
	if err != nil {
		return nil, err
	}
	saved := repo.db.grades[evaluationID]
	grades := make([]diary.Grade, 0)
	for _, e := range repo.db.classEnrollments(ev.ClassID) {
		g := diary.Grade{EnrollmentID: e.ID, StudentName: e.Name}
		if v, ok := saved[e.ID]; ok {
			g.ID = gradeID(evaluationID, e.ID)
			g.Value = null.Float64From(v)
		}
		grades = append(grades, g)
	}
	return grades, nil
}

func gradeID(evaluationID, enrollmentID int) int {
	return evaluationID*100000 + enrollmentID
}

// SaveGrades upserts the whole batch, or nothing when any entry is rejected.
func (repo *diaryRepository) SaveGrades(ctx context.Context, evaluationID int, batch diary.GradeBatch) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	ev, err := repo.db.evaluations.get(evaluationID)
	if err != nil {
		return err
	}
	var flds []core.FieldError
	for _, g := range batch.Grades {
		e, err := repo.db.enrollments.get(g.EnrollmentID)
		if err != nil || e.ClassID != ev.ClassID {
			flds = append(flds, core.FieldError{Field: fmt.Sprint(g.EnrollmentID), Error: "matrícula não pertence à turma"})
			continue
		}
		if g.Value < 0 || g.Value > ev.MaxValue {
			flds = append(flds, core.FieldError{Field: fmt.Sprint(g.EnrollmentID), Error: fmt.Sprintf("nota deve estar entre 0 e %g", ev.MaxValue)})
		}
	}
	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}

	saved, ok := repo.db.grades[evaluationID]
	if !ok {
		saved = make(map[int]float64)
		repo.db.grades[evaluationID] = saved
	}
	for _, g := range batch.Grades {
		saved[g.EnrollmentID] = g.Value
	}
	return nil
}

func (repo *diaryRepository) ListLessonPlans(ctx context.Context, classID int) ([]diary.LessonPlan, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if _, err := repo.db.classes.get(classID); err != nil {
		return nil, err
	}
	plans := make([]diary.LessonPlan, 0)
	for _, p := range repo.db.plans.all() {
		if p.ClassID == classID {
			plans = append(plans, p)
		}
	}
	return plans, nil
}

func (repo *diaryRepository) CreateLessonPlan(ctx context.Context, in diary.LessonPlanInput) (diary.LessonPlan, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, err := repo.db.classes.get(in.ClassID); err != nil {
		return diary.LessonPlan{}, core.NewValidationError(nil, core.FieldError{Field: "turma_id", Error: "turma não encontrada"})
	}
	p := diary.LessonPlan{
		ID:          repo.db.plans.newID(),
		ClassID:     in.ClassID,
		Date:        in.Date,
		Content:     in.Content,
		Methodology: in.Methodology,
		Homework:    in.Homework,
	}
	repo.db.plans.insert(p.ID, p)
	return p, nil
}

func (repo *diaryRepository) UpdateLessonPlan(ctx context.Context, id int, in diary.LessonPlanInput) (diary.LessonPlan, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	p, err := repo.db.plans.get(id)
	if err != nil {
		return diary.LessonPlan{}, err
	}
	p.Date, p.Content, p.Methodology, p.Homework = in.Date, in.Content, in.Methodology, in.Homework
	return *p, nil
}

func (repo *diaryRepository) DeleteLessonPlan(ctx context.Context, id int) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	return repo.db.plans.remove(id)
}

type attendanceRecorder struct {
	db *DB
}

func NewAttendanceRecorder(db *DB) diary.AttendanceRecorder {
	return &attendanceRecorder{db: db}
}

// RecordAttendance adds one class day to every enrollment of the sheet.
func (r *attendanceRecorder) RecordAttendance(ctx context.Context, sheet diary.AttendanceSheet) (diary.AttendanceResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, err := r.db.classes.get(sheet.ClassID); err != nil {
		return diary.AttendanceResult{}, core.NewValidationError(nil, core.FieldError{Field: "turma_id", Error: "turma não encontrada"})
	}
	for _, rec := range sheet.Records {
		e, err := r.db.enrollments.get(rec.EnrollmentID)
		if err != nil || e.ClassID != sheet.ClassID {
			return diary.AttendanceResult{}, core.NewValidationError(nil, core.FieldError{Field: fmt.Sprint(rec.EnrollmentID), Error: "matrícula não pertence à turma"})
		}
	}
	for _, rec := range sheet.Records {
		a, ok := r.db.attendance[rec.EnrollmentID]
		if !ok {
			a = &attendance{}
			r.db.attendance[rec.EnrollmentID] = a
		}
		a.total++
		if rec.Present {
			a.present++
		}
	}
	return diary.AttendanceResult{Records: len(sheet.Records)}, nil
}
