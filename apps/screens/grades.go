package screens

import (
	"context"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sge/core/academic"
	"github.com/trezcool/sge/core/diary"
	"github.com/trezcool/sge/core/draft"
	"github.com/trezcool/sge/core/form"
	"github.com/trezcool/sge/core/mutation"
	"github.com/trezcool/sge/core/pedagogical"
	"github.com/trezcool/sge/core/query"
)

type gradeSubmission struct {
	evaluationID int
	batch        diary.GradeBatch
}

// Grades chains class -> evaluations -> grades. Changing the class drops the
// evaluation selection and the grade draft.
type Grades struct {
	env         Env
	classes     *query.List[[]academic.Class]
	subjects    *query.List[[]pedagogical.Subject]
	evaluations *query.Dependent[int, []diary.Evaluation]
	grades      *query.Dependent[int, []diary.Grade]
	values      *draft.Draft[int, float64]

	evalForm   *form.Form[diary.EvaluationInput]
	createEval *mutation.Mutation[diary.EvaluationInput, diary.Evaluation]
	save       *mutation.Mutation[gradeSubmission, struct{}]
}

func NewGrades(env Env, repo diary.Repository, academicRepo academic.Repository, pedagogicalRepo pedagogical.Repository) *Grades {
	g := &Grades{
		env:         env,
		classes:     query.NewList(env.Client, KeyClasses, academicRepo.ListClasses),
		subjects:    query.NewList(env.Client, KeySubjects, pedagogicalRepo.ListSubjects),
		evaluations: query.NewDependent(env.Client, KeyEvaluations, repo.ListEvaluations),
		grades:      query.NewDependent(env.Client, KeyGradeList, repo.ListGrades),
		values:      draft.New[int, float64](),
	}

	// saved values seed the draft, unsaved grades stay unset
	g.grades.OnResult(func(_ int, grades []diary.Grade) {
		ids := make([]int, 0, len(grades))
		saved := make(map[int]float64, len(grades))
		for _, gr := range grades {
			ids = append(ids, gr.EnrollmentID)
			if gr.Value.Valid {
				saved[gr.EnrollmentID] = gr.Value.Float64
			}
		}
		g.values.Seed(ids, saved)
	})
	g.grades.OnReset(g.values.Clear)
	g.evaluations.OnReset(g.grades.Clear)

	g.evalForm = form.New(env.Validate, env.Translator,
		func() diary.EvaluationInput { return diary.EvaluationInput{MaxValue: 10} },
		form.IDField("turma_id", func(v *diary.EvaluationInput) *int { return &v.ClassID }),
		form.OptionalIDField("disciplina_id", func(v *diary.EvaluationInput) *null.Int { return &v.SubjectID }),
		form.TextField("nome", func(v *diary.EvaluationInput) *string { return &v.Name }),
		form.DateField("data", func(v *diary.EvaluationInput) *string { return &v.Date }),
		form.FloatField("valor_maximo", func(v *diary.EvaluationInput) *float64 { return &v.MaxValue }),
	)
	g.createEval = newMutation(env, repo.CreateEvaluation).
		InvalidatesFunc(func(in diary.EvaluationInput) query.Key { return KeyEvaluations(in.ClassID) }).
		SuccessMessage("Avaliação criada!").
		ErrorTitle(saveFailedTitle).
		OnSuccess(func(diary.Evaluation) { g.evalForm.Close() })

	g.save = newMutation(env, func(ctx context.Context, s gradeSubmission) (struct{}, error) {
		return struct{}{}, repo.SaveGrades(ctx, s.evaluationID, s.batch)
	}).
		InvalidatesFunc(func(s gradeSubmission) query.Key { return KeyGradeList(s.evaluationID) }).
		SuccessMessage("Notas salvas!").
		ErrorTitle(saveFailedTitle)
	return g
}

func (g *Grades) Classes(ctx context.Context) ([]academic.Class, error) { return g.classes.Load(ctx) }

func (g *Grades) Subjects(ctx context.Context) ([]pedagogical.Subject, error) {
	return g.subjects.Load(ctx)
}

// SelectClass loads the evaluations of classID, clearing the evaluation selection and its grades.
func (g *Grades) SelectClass(ctx context.Context, classID int) ([]diary.Evaluation, error) {
	g.discardUnsaved()
	return g.evaluations.Select(ctx, classID)
}

func (g *Grades) Class() (int, bool) { return g.evaluations.Parent() }

func (g *Grades) Evaluations() query.State[[]diary.Evaluation] { return g.evaluations.View() }

// SelectEvaluation loads the grades of evaluationID and seeds the draft from them.
// evaluationID must be one of the selected class's evaluations; 0 clears.
func (g *Grades) SelectEvaluation(ctx context.Context, evaluationID int) ([]diary.Grade, error) {
	if evaluationID != 0 {
		if _, ok := g.findEvaluation(evaluationID); !ok {
			return nil, ErrNoSelection
		}
	}
	g.discardUnsaved()
	return g.grades.Select(ctx, evaluationID)
}

func (g *Grades) findEvaluation(id int) (diary.Evaluation, bool) {
	for _, e := range g.evaluations.View().Data {
		if e.ID == id {
			return e, true
		}
	}
	return diary.Evaluation{}, false
}

func (g *Grades) Evaluation() (diary.Evaluation, bool) {
	id, ok := g.grades.Parent()
	if !ok {
		return diary.Evaluation{}, false
	}
	return g.findEvaluation(id)
}

// Unsaved reports grade edits made since the grades were loaded.
func (g *Grades) Unsaved() bool { return g.values.Dirty() }

func (g *Grades) discardUnsaved() {
	if g.values.Dirty() {
		g.env.Logger.Info("discarding unsaved grades")
	}
}

func (g *Grades) Grades() query.State[[]diary.Grade] { return g.grades.View() }

func (g *Grades) SetGrade(enrollmentID int, value float64) error {
	return g.values.Set(enrollmentID, value)
}

// UnsetGrade leaves enrollmentID out of the next save. The backend keeps a grade
// it already has: an unset grade is not submitted, it is not deleted.
func (g *Grades) UnsetGrade(enrollmentID int) error {
	return g.values.Unset(enrollmentID)
}

// Values returns the draft grades, keyed by enrollment.
func (g *Grades) Values() map[int]float64 { return g.values.Snapshot() }

// SaveGrades posts every set value of the draft. Values out of 0..valor_maximo are rejected before sending.
func (g *Grades) SaveGrades(ctx context.Context) error {
	evaluation, ok := g.Evaluation()
	if !ok {
		return ErrNoSelection
	}
	values := g.values.Snapshot()
	if err := diary.CheckGrades(values, evaluation.GradeCeiling()); err != nil {
		return err
	}
	if _, err := g.save.Run(ctx, gradeSubmission{evaluationID: evaluation.ID, batch: diary.NewGradeBatch(values)}); err != nil {
		return err
	}
	// only the saved evaluation is refetched; a refetch re-seeds the draft
	if id, _ := g.grades.Parent(); id == evaluation.ID {
		refetch(ctx, g.env.Logger, dependentLoader(g.grades))
	}
	return nil
}

func (g *Grades) EvaluationForm() *form.Form[diary.EvaluationInput] { return g.evalForm }

// NewEvaluation opens the evaluation form for the selected class.
func (g *Grades) NewEvaluation() error {
	classID, ok := g.evaluations.Parent()
	if !ok {
		return ErrNoSelection
	}
	g.evalForm.OpenNew()
	return g.evalForm.Update(func(v *diary.EvaluationInput) { v.ClassID = classID })
}

func (g *Grades) CancelEvaluation() { g.evalForm.Close() }

func (g *Grades) SubmitEvaluation(ctx context.Context) (diary.Evaluation, error) {
	in, err := g.evalForm.Validate()
	if err != nil {
		return diary.Evaluation{}, err
	}
	evaluation, err := g.createEval.Run(ctx, in)
	if err != nil {
		return evaluation, err
	}
	refetch(ctx, g.env.Logger, dependentLoader(g.evaluations))
	return evaluation, nil
}
