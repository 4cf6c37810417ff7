package screens

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sge/core"
	"github.com/trezcool/sge/core/academic"
	"github.com/trezcool/sge/core/diary"
	"github.com/trezcool/sge/core/draft"
	"github.com/trezcool/sge/core/pedagogical"
	"github.com/trezcool/sge/core/query"
	logsvc "github.com/trezcool/sge/services/logger"
	notifysvc "github.com/trezcool/sge/services/notify"
	"github.com/trezcool/sge/storage/inmem"
)

type testEnv struct {
	Env
	notes    *notifysvc.Recorder
	logger   *logsvc.MockLogger
	db       *inmemdb.DB
	prompts  []string
	declined bool
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	validate, translator := core.NewValidator()
	pedagogical.InitValidators(validate, translator)

	te := &testEnv{
		notes:  notifysvc.NewRecorder(),
		logger: logsvc.NewMockLogger(),
		db:     inmemdb.Seed(inmemdb.Open()),
	}
	te.Env = Env{
		Client:     query.NewClient(),
		Notifier:   te.notes,
		Logger:     te.logger,
		Validate:   validate,
		Translator: translator,
		Confirm: ConfirmFunc(func(prompt string) bool {
			te.prompts = append(te.prompts, prompt)
			return !te.declined
		}),
	}
	return te
}

// logged returns the first entry logged with msg.
func (te *testEnv) logged(msg string) (logsvc.Entry, bool) {
	for _, e := range te.logger.Entries() {
		if e.Msg == msg {
			return e, true
		}
	}
	return logsvc.Entry{}, false
}

var errServer = &core.APIError{Kind: core.KindServer, Method: http.MethodPost, Path: "/pedagogical/escolas", StatusCode: http.StatusInternalServerError}

// failingSchools refuses every school write.
type failingSchools struct {
	pedagogical.Repository
	calls int
}

func (r *failingSchools) CreateSchool(ctx context.Context, in pedagogical.SchoolInput) (pedagogical.School, error) {
	r.calls++
	return pedagogical.School{}, errServer
}

func (r *failingSchools) UpdateSchool(ctx context.Context, id int, in pedagogical.SchoolInput) (pedagogical.School, error) {
	r.calls++
	return pedagogical.School{}, errServer
}

func (r *failingSchools) DeleteSchool(ctx context.Context, id int) error {
	r.calls++
	return errServer
}

// gatedRoster holds the roster fetch of a class until its gate is closed.
type gatedRoster struct {
	academic.Repository
	gates   map[int]chan struct{}
	started chan int
}

func (r *gatedRoster) ListEnrollments(ctx context.Context, classID int) ([]academic.Enrollment, error) {
	if gate, ok := r.gates[classID]; ok {
		r.started <- classID
		<-gate
	}
	return r.Repository.ListEnrollments(ctx, classID)
}

// sheetRecorder keeps the sheets it forwards.
type sheetRecorder struct {
	diary.AttendanceRecorder
	mu     sync.Mutex
	sheets []diary.AttendanceSheet
}

func (r *sheetRecorder) RecordAttendance(ctx context.Context, sheet diary.AttendanceSheet) (diary.AttendanceResult, error) {
	r.mu.Lock()
	r.sheets = append(r.sheets, sheet)
	r.mu.Unlock()
	return r.AttendanceRecorder.RecordAttendance(ctx, sheet)
}

// writeGate holds each gated write until the test opens the gate once for it.
type writeGate struct {
	started chan struct{}
	release chan struct{}
}

func newWriteGate() *writeGate {
	return &writeGate{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (g *writeGate) hold() {
	g.started <- struct{}{}
	<-g.release
}

func (g *writeGate) waitStarted(t *testing.T) {
	t.Helper()
	select {
	case <-g.started:
	case <-time.After(time.Second):
		t.Fatal("write never started")
	}
}

func (g *writeGate) open() { g.release <- struct{}{} }

// inBackground runs fn in a goroutine; wait returns its error.
func inBackground(fn func() error) <-chan error {
	done := make(chan error, 1)
	go func() { done <- fn() }()
	return done
}

func wait(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(time.Second):
		t.Fatal("write never returned")
		return nil
	}
}

// gatedDiary holds the diary writes behind a gate.
type gatedDiary struct {
	diary.Repository
	gate *writeGate
}

func (r *gatedDiary) CreateEvaluation(ctx context.Context, in diary.EvaluationInput) (diary.Evaluation, error) {
	r.gate.hold()
	return r.Repository.CreateEvaluation(ctx, in)
}

func (r *gatedDiary) SaveGrades(ctx context.Context, evaluationID int, batch diary.GradeBatch) error {
	r.gate.hold()
	return r.Repository.SaveGrades(ctx, evaluationID, batch)
}

func (r *gatedDiary) UpdateLessonPlan(ctx context.Context, id int, in diary.LessonPlanInput) (diary.LessonPlan, error) {
	r.gate.hold()
	return r.Repository.UpdateLessonPlan(ctx, id, in)
}

func (r *gatedDiary) DeleteLessonPlan(ctx context.Context, id int) error {
	r.gate.hold()
	return r.Repository.DeleteLessonPlan(ctx, id)
}

// gatedYears holds academic year updates and deletions behind a gate.
type gatedYears struct {
	pedagogical.Repository
	gate *writeGate
}

func (r *gatedYears) UpdateAcademicYear(ctx context.Context, id int, in pedagogical.AcademicYearInput) (pedagogical.AcademicYear, error) {
	r.gate.hold()
	return r.Repository.UpdateAcademicYear(ctx, id, in)
}

func (r *gatedYears) DeleteAcademicYear(ctx context.Context, id int) error {
	r.gate.hold()
	return r.Repository.DeleteAcademicYear(ctx, id)
}

func draftErrUnknownKey() error { return draft.ErrUnknownKey }

func nullInt(i int) null.Int { return null.IntFrom(i) }
