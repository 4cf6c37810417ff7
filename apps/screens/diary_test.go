package screens

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sge/core"
	"github.com/trezcool/sge/core/academic"
	"github.com/trezcool/sge/core/diary"
	"github.com/trezcool/sge/core/query"
	"github.com/trezcool/sge/storage/inmem"
	"github.com/trezcool/sge/storage/rest"
)

func findClass(t *testing.T, classes []academic.Class, label string) academic.Class {
	t.Helper()
	for _, c := range classes {
		if c.Label() == label {
			return c
		}
	}
	t.Fatalf("class %q not found", label)
	return academic.Class{}
}

func TestDiary_submitRoster(t *testing.T) {
	ctx := context.Background()
	te := newTestEnv(t)
	recorder := &sheetRecorder{AttendanceRecorder: restrepo.NewAttendanceRecorder(nil, "", te.logger)}
	d := NewDiary(te.Env, inmemdb.NewAcademicRepository(te.db), recorder)

	classes, err := d.Classes(ctx)
	require.NoError(t, err)
	class := findClass(t, classes, "5A (2024)")

	roster, err := d.SelectClass(ctx, class.ID)
	require.NoError(t, err)
	require.Len(t, roster, 3)
	assert.Equal(t, map[int]bool{11: true, 12: true, 13: true}, d.Presence())

	require.NoError(t, d.Toggle(12))
	res, err := d.Submit(ctx)
	require.NoError(t, err)
	assert.True(t, res.Simulated)
	assert.Equal(t, core.Success("Chamada realizada com sucesso (Simulação)"), te.notes.Last())

	require.Len(t, recorder.sheets, 1)
	assert.Equal(t, diary.AttendanceSheet{
		ClassID: class.ID,
		Records: []diary.AttendanceRecord{
			{EnrollmentID: 11, Present: true},
			{EnrollmentID: 12, Present: false},
			{EnrollmentID: 13, Present: true},
		},
	}, recorder.sheets[0])
}

func TestDiary_recordedAttendance(t *testing.T) {
	ctx := context.Background()
	te := newTestEnv(t)
	d := NewDiary(te.Env, inmemdb.NewAcademicRepository(te.db), inmemdb.NewAttendanceRecorder(te.db))

	_, err := d.Submit(ctx)
	assert.ErrorIs(t, err, ErrNoSelection)

	_, err = d.SelectClass(ctx, 2)
	require.NoError(t, err)
	res, err := d.Submit(ctx)
	require.NoError(t, err)
	assert.False(t, res.Simulated)
	assert.Equal(t, "Chamada realizada com sucesso", te.notes.Last().Message)
	assert.ErrorIs(t, d.Toggle(11), draftErrUnknownKey())
}

func TestDiary_reseedOnReselect(t *testing.T) {
	ctx := context.Background()
	te := newTestEnv(t)
	d := NewDiary(te.Env, inmemdb.NewAcademicRepository(te.db), inmemdb.NewAttendanceRecorder(te.db))

	_, err := d.SelectClass(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, d.SetPresent(12, false))
	assert.True(t, d.Unsaved())

	_, err = d.SelectClass(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{14: true}, d.Presence())
	assert.False(t, d.Unsaved())
	_, ok := te.logged("discarding unsaved attendance")
	assert.True(t, ok)

	_, err = d.SelectClass(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{11: true, 12: true, 13: true}, d.Presence())
	assert.Equal(t, 1, te.Client.Fetches(KeyRoster(1)), "reselection is served from the cache")

	_, err = d.SelectClass(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, d.Presence())
	assert.Empty(t, d.Roster().Data)
}

func TestDiary_latestSelectionWins(t *testing.T) {
	ctx := context.Background()
	te := newTestEnv(t)
	gate := make(chan struct{})
	repo := &gatedRoster{
		Repository: inmemdb.NewAcademicRepository(te.db),
		gates:      map[int]chan struct{}{1: gate},
		started:    make(chan int, 1),
	}
	d := NewDiary(te.Env, repo, inmemdb.NewAttendanceRecorder(te.db))

	slow := make(chan error, 1)
	go func() {
		_, err := d.SelectClass(ctx, 1)
		slow <- err
	}()
	select {
	case <-repo.started:
	case <-time.After(time.Second):
		t.Fatal("roster fetch of class 1 never started")
	}

	roster, err := d.SelectClass(ctx, 2)
	require.NoError(t, err)
	require.Len(t, roster, 1)

	close(gate)
	select {
	case err := <-slow:
		assert.ErrorIs(t, err, query.ErrSuperseded)
	case <-time.After(time.Second):
		t.Fatal("superseded fetch never returned")
	}

	classID, _ := d.Class()
	assert.Equal(t, 2, classID)
	assert.Equal(t, []academic.Enrollment{{ID: 14, StudentID: 4, Name: "Daniel Rocha"}}, d.Roster().Data)
	assert.Equal(t, map[int]bool{14: true}, d.Presence())
}

func TestGrades(t *testing.T) {
	ctx := context.Background()
	te := newTestEnv(t)
	g := NewGrades(te.Env,
		inmemdb.NewDiaryRepository(te.db),
		inmemdb.NewAcademicRepository(te.db),
		inmemdb.NewPedagogicalRepository(te.db),
	)

	assert.ErrorIs(t, g.NewEvaluation(), ErrNoSelection)
	evaluations, err := g.SelectClass(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, evaluations)

	require.NoError(t, g.NewEvaluation())
	f := g.EvaluationForm()
	require.NoError(t, f.Set("nome", "Prova 1"))
	require.NoError(t, f.Set("data", "2024-03-10"))
	require.NoError(t, f.Set("valor_maximo", "10"))
	evaluation, err := g.SubmitEvaluation(ctx)
	require.NoError(t, err)
	assert.False(t, f.IsOpen())
	assert.Equal(t, "Avaliação criada!", te.notes.Last().Message)
	assert.Equal(t, 1, te.Client.Invalidations(KeyEvaluations(1)))

	require.Len(t, g.Evaluations().Data, 1)
	assert.Equal(t, "Prova 1 (Max: 10)", g.Evaluations().Data[0].Label())

	grades, err := g.SelectEvaluation(ctx, evaluation.ID)
	require.NoError(t, err)
	require.Len(t, grades, 3)
	for _, gr := range grades {
		assert.False(t, gr.Value.Valid)
	}
	assert.Empty(t, g.Values())

	// out of range grades never reach the backend
	sent := len(te.notes.Sent())
	require.NoError(t, g.SetGrade(11, 11))
	err = g.SaveGrades(ctx)
	require.True(t, core.IsValidationError(err))
	assert.Len(t, te.notes.Sent(), sent)

	require.NoError(t, g.SetGrade(11, 9.5))
	require.NoError(t, g.SetGrade(12, 4))
	require.NoError(t, g.SaveGrades(ctx))
	assert.Equal(t, "Notas salvas!", te.notes.Last().Message)
	assert.Equal(t, map[int]float64{11: 9.5, 12: 4}, g.Values())
	assert.True(t, g.Grades().Data[0].Value.Valid)

	// switching classes drops the evaluation and the draft
	_, err = g.SelectClass(ctx, 2)
	require.NoError(t, err)
	_, ok := g.Evaluation()
	assert.False(t, ok)
	assert.Empty(t, g.Values())
	assert.Empty(t, g.Grades().Data)
	assert.ErrorIs(t, g.SaveGrades(ctx), ErrNoSelection)
}

func gradeOf(t *testing.T, grades []diary.Grade, enrollmentID int) null.Float64 {
	t.Helper()
	for _, g := range grades {
		if g.EnrollmentID == enrollmentID {
			return g.Value
		}
	}
	t.Fatalf("enrollment %d has no grade row", enrollmentID)
	return null.Float64{}
}

func newGrades(te *testEnv, repo diary.Repository) *Grades {
	return NewGrades(te.Env, repo, inmemdb.NewAcademicRepository(te.db), inmemdb.NewPedagogicalRepository(te.db))
}

func TestGrades_saveWhileSwitchingEvaluation(t *testing.T) {
	ctx := context.Background()
	te := newTestEnv(t)
	dRepo := inmemdb.NewDiaryRepository(te.db)
	first, err := dRepo.CreateEvaluation(ctx, diary.EvaluationInput{ClassID: 1, Name: "Prova 1", Date: "2024-03-10", MaxValue: 10})
	require.NoError(t, err)
	second, err := dRepo.CreateEvaluation(ctx, diary.EvaluationInput{ClassID: 1, Name: "Prova 2", Date: "2024-04-10", MaxValue: 10})
	require.NoError(t, err)

	gate := newWriteGate()
	g := newGrades(te, &gatedDiary{Repository: dRepo, gate: gate})
	_, err = g.SelectClass(ctx, 1)
	require.NoError(t, err)
	_, err = g.SelectEvaluation(ctx, first.ID)
	require.NoError(t, err)
	require.NoError(t, g.SetGrade(11, 9))

	saved := inBackground(func() error { return g.SaveGrades(ctx) })
	gate.waitStarted(t)
	_, err = g.SelectEvaluation(ctx, second.ID)
	require.NoError(t, err)
	require.NoError(t, g.SetGrade(12, 5))
	gate.open()
	require.NoError(t, wait(t, saved))

	// the saved evaluation goes stale, the one on screen keeps its edits
	assert.Equal(t, 1, te.Client.Invalidations(KeyGradeList(first.ID)))
	assert.Equal(t, 0, te.Client.Invalidations(KeyGradeList(second.ID)))
	assert.Equal(t, map[int]float64{12: 5}, g.Values())

	grades, err := g.SelectEvaluation(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, null.Float64From(9), gradeOf(t, grades, 11))
	assert.Equal(t, map[int]float64{11: 9}, g.Values())
}

func TestGrades_createEvaluationWhileSwitchingClass(t *testing.T) {
	ctx := context.Background()
	te := newTestEnv(t)
	gate := newWriteGate()
	g := newGrades(te, &gatedDiary{Repository: inmemdb.NewDiaryRepository(te.db), gate: gate})

	_, err := g.SelectClass(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, g.NewEvaluation())
	require.NoError(t, g.EvaluationForm().Set("nome", "Prova 1"))
	require.NoError(t, g.EvaluationForm().Set("data", "2024-03-10"))

	created := inBackground(func() error {
		_, err := g.SubmitEvaluation(ctx)
		return err
	})
	gate.waitStarted(t)
	_, err = g.SelectClass(ctx, 2)
	require.NoError(t, err)
	gate.open()
	require.NoError(t, wait(t, created))

	assert.Equal(t, 1, te.Client.Invalidations(KeyEvaluations(1)))
	assert.Equal(t, 0, te.Client.Invalidations(KeyEvaluations(2)))
	assert.Empty(t, g.Evaluations().Data)

	evaluations, err := g.SelectClass(ctx, 1)
	require.NoError(t, err)
	require.Len(t, evaluations, 1)
	assert.Equal(t, "Prova 1", evaluations[0].Name)
}

func TestGrades_evaluationOfAnotherClass(t *testing.T) {
	ctx := context.Background()
	te := newTestEnv(t)
	dRepo := inmemdb.NewDiaryRepository(te.db)
	other, err := dRepo.CreateEvaluation(ctx, diary.EvaluationInput{ClassID: 2, Name: "Prova 6B", Date: "2024-03-10", MaxValue: 10})
	require.NoError(t, err)
	g := newGrades(te, dRepo)

	_, err = g.SelectEvaluation(ctx, other.ID)
	assert.ErrorIs(t, err, ErrNoSelection)

	_, err = g.SelectClass(ctx, 1)
	require.NoError(t, err)
	for _, id := range []int{other.ID, 99} {
		_, err = g.SelectEvaluation(ctx, id)
		assert.ErrorIs(t, err, ErrNoSelection)
	}
	_, ok := g.Evaluation()
	assert.False(t, ok)
	assert.Zero(t, te.Client.Fetches(KeyGradeList(other.ID)))
}

func TestGrades_unsetIsNotSubmitted(t *testing.T) {
	ctx := context.Background()
	te := newTestEnv(t)
	dRepo := inmemdb.NewDiaryRepository(te.db)
	ev, err := dRepo.CreateEvaluation(ctx, diary.EvaluationInput{ClassID: 1, Name: "Prova 1", Date: "2024-03-10", MaxValue: 10})
	require.NoError(t, err)
	require.NoError(t, dRepo.SaveGrades(ctx, ev.ID, diary.NewGradeBatch(map[int]float64{11: 7, 12: 6})))
	g := newGrades(te, dRepo)

	_, err = g.SelectClass(ctx, 1)
	require.NoError(t, err)
	_, err = g.SelectEvaluation(ctx, ev.ID)
	require.NoError(t, err)
	require.NoError(t, g.UnsetGrade(11))
	require.NoError(t, g.SetGrade(12, 8))
	assert.True(t, g.Unsaved())
	require.NoError(t, g.SaveGrades(ctx))

	// the refetch shows the grade the backend kept
	assert.Equal(t, map[int]float64{11: 7, 12: 8}, g.Values())
	assert.False(t, g.Unsaved())
}

func TestLessonPlans_writeWhileSwitchingClass(t *testing.T) {
	ctx := context.Background()
	te := newTestEnv(t)
	dRepo := inmemdb.NewDiaryRepository(te.db)
	plan, err := dRepo.CreateLessonPlan(ctx, diary.LessonPlanInput{ClassID: 1, Date: "2024-03-11", Content: "Frações"})
	require.NoError(t, err)

	gate := newWriteGate()
	lp := NewLessonPlans(te.Env, &gatedDiary{Repository: dRepo, gate: gate}, inmemdb.NewAcademicRepository(te.db))
	_, err = lp.SelectClass(ctx, 1)
	require.NoError(t, err)
	lp.Edit(plan)
	require.NoError(t, lp.Form().Set("conteudo", "Frações equivalentes"))

	updated := inBackground(func() error {
		_, err := lp.Submit(ctx)
		return err
	})
	gate.waitStarted(t)
	_, err = lp.SelectClass(ctx, 2)
	require.NoError(t, err)
	gate.open()
	require.NoError(t, wait(t, updated))
	assert.Equal(t, 1, te.Client.Invalidations(KeyLessonPlans(1)))
	assert.Equal(t, 0, te.Client.Invalidations(KeyLessonPlans(2)))

	plans, err := lp.SelectClass(ctx, 1)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Frações equivalentes", plans[0].Content)

	removed := inBackground(func() error { return lp.Delete(ctx, plan.ID) })
	gate.waitStarted(t)
	_, err = lp.SelectClass(ctx, 2)
	require.NoError(t, err)
	gate.open()
	require.NoError(t, wait(t, removed))
	assert.Equal(t, 2, te.Client.Invalidations(KeyLessonPlans(1)))
	assert.Equal(t, 0, te.Client.Invalidations(KeyLessonPlans(2)))

	plans, err = lp.SelectClass(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestLessonPlans(t *testing.T) {
	ctx := context.Background()
	te := newTestEnv(t)
	lp := NewLessonPlans(te.Env, inmemdb.NewDiaryRepository(te.db), inmemdb.NewAcademicRepository(te.db))

	_, err := lp.SelectClass(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, lp.New())
	require.NoError(t, lp.Form().Set("data", "2024-03-11"))
	require.NoError(t, lp.Form().Set("conteudo", "Frações"))
	require.NoError(t, lp.Form().Set("tarefa_casa", "Exercícios 1 a 5"))
	plan, err := lp.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Plano salvo!", te.notes.Last().Message)
	require.Len(t, lp.View().Data, 1)

	lp.Edit(plan)
	require.NoError(t, lp.Form().Set("conteudo", "Frações equivalentes"))
	_, err = lp.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Frações equivalentes", lp.View().Data[0].Content)
	assert.Equal(t, 2, te.Client.Invalidations(KeyLessonPlans(1)))

	require.NoError(t, lp.Delete(ctx, plan.ID))
	assert.Equal(t, []string{"Excluir plano?"}, te.prompts)
	assert.Equal(t, "Plano removido!", te.notes.Last().Message)
	assert.Empty(t, lp.View().Data)
}

func TestCouncil(t *testing.T) {
	ctx := context.Background()
	te := newTestEnv(t)
	dRepo := inmemdb.NewDiaryRepository(te.db)
	ev, err := dRepo.CreateEvaluation(ctx, diary.EvaluationInput{ClassID: 1, SubjectID: nullInt(1), Name: "Prova 1", Date: "2024-03-10", MaxValue: 100})
	require.NoError(t, err)
	require.NoError(t, dRepo.SaveGrades(ctx, ev.ID, diary.NewGradeBatch(map[int]float64{11: 80, 12: 40})))

	c := NewCouncil(te.Env, inmemdb.NewAcademicRepository(te.db))
	rows, err := c.SelectClass(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Contains(t, c.Subjects(), "Matemática")
}
