package echoapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sge/core"
	"github.com/trezcool/sge/core/academic"
	"github.com/trezcool/sge/core/diary"
	"github.com/trezcool/sge/core/pedagogical"
	"github.com/trezcool/sge/core/portal"
	"github.com/trezcool/sge/core/reports"
	"github.com/trezcool/sge/core/session"
	logsvc "github.com/trezcool/sge/services/logger"
	"github.com/trezcool/sge/storage/inmem"
	restrepo "github.com/trezcool/sge/storage/rest"
)

type testApp struct {
	client *restrepo.Client
	logger *logsvc.MockLogger
	url    string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	validate, translator := core.NewValidator()
	pedagogical.InitValidators(validate, translator)
	logger := logsvc.NewMockLogger()

	srv := httptest.NewServer(NewServer(&Options{
		DisableReqLogs: true,
		Logger:         logger,
		Validate:       validate,
		Translator:     translator,
		DB:             inmemdb.Seed(inmemdb.Open()),
	}))
	t.Cleanup(srv.Close)

	conf := &core.Config{API: core.APIConfig{BaseURL: srv.URL + "/api", Timeout: time.Second}}
	return &testApp{
		client: restrepo.NewClient(conf, validate, translator, logger),
		logger: logger,
		url:    srv.URL,
	}
}

func TestServer_home(t *testing.T) {
	app := newTestApp(t)
	resp, err := http.Get(app.url + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestPedagogicalAPI(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	repo := restrepo.NewPedagogicalRepository(app.client)

	schools, err := repo.ListSchools(ctx)
	require.NoError(t, err)
	require.Len(t, schools, 2)
	assert.Equal(t, null.StringFrom("35000001"), schools[0].INEP)

	_, err = repo.CreateSchool(ctx, pedagogical.SchoolInput{Name: "ab"})
	apiErr, ok := core.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, core.KindValidation, apiErr.Kind)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "nome")

	school, err := repo.CreateSchool(ctx, pedagogical.SchoolInput{Name: "EMEF Paulo Freire"})
	require.NoError(t, err)
	assert.Equal(t, 3, school.ID)

	_, err = repo.CreateAcademicYear(ctx, pedagogical.AcademicYearInput{SchoolID: school.ID, Year: 2025, StartDate: "2025-12-01", EndDate: "2025-02-01"})
	apiErr, ok = core.AsAPIError(err)
	require.True(t, ok)
	assert.Contains(t, apiErr.Message, "data_fim")

	year, err := repo.CreateAcademicYear(ctx, pedagogical.AcademicYearInput{SchoolID: school.ID, Year: 2025, StartDate: "2025-02-01", EndDate: "2025-12-01", Active: true})
	require.NoError(t, err)
	years, err := repo.ListAcademicYears(ctx, school.ID)
	require.NoError(t, err)
	assert.Equal(t, []pedagogical.AcademicYear{year}, years)

	assert.True(t, core.IsNotFound(repo.DeleteSubject(ctx, 99)))
	require.NoError(t, repo.DeleteAcademicYear(ctx, year.ID))
	require.NoError(t, repo.DeleteSchool(ctx, school.ID))
}

func TestAcademicAndDiaryAPI(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	aRepo := restrepo.NewAcademicRepository(app.client)
	dRepo := restrepo.NewDiaryRepository(app.client)

	classes, err := aRepo.ListClasses(ctx)
	require.NoError(t, err)
	require.Len(t, classes, 2)

	roster, err := aRepo.ListEnrollments(ctx, classes[0].ID)
	require.NoError(t, err)
	assert.Len(t, roster, 3)

	entry, err := aRepo.Enqueue(ctx, academic.QueueEntryInput{StudentID: 3, SchoolID: null.IntFrom(2)})
	require.NoError(t, err)
	assert.Equal(t, null.StringFrom("EMEF Cecília Meireles"), entry.SchoolName)
	require.NoError(t, aRepo.Dequeue(ctx, entry.ID))

	ev, err := dRepo.CreateEvaluation(ctx, diary.EvaluationInput{ClassID: 1, SubjectID: null.IntFrom(1), Name: "Prova 1", Date: "2024-03-10", MaxValue: 10})
	require.NoError(t, err)
	require.NoError(t, dRepo.SaveGrades(ctx, ev.ID, diary.NewGradeBatch(map[int]float64{11: 8})))

	err = dRepo.SaveGrades(ctx, ev.ID, diary.NewGradeBatch(map[int]float64{12: 11}))
	apiErr, ok := core.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, core.KindValidation, apiErr.Kind)

	grades, err := dRepo.ListGrades(ctx, ev.ID)
	require.NoError(t, err)
	require.Len(t, grades, 3)
	assert.Equal(t, null.Float64From(8), grades[0].Value)
	assert.False(t, grades[1].Value.Valid, "rejected batches save nothing")

	council, err := aRepo.ClassCouncil(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Matemática", "Português"}, academic.CouncilSubjects(council))

	recorder := restrepo.NewAttendanceRecorder(app.client, "/diary/chamadas", app.logger)
	res, err := recorder.RecordAttendance(ctx, diary.NewAttendanceSheet(1, map[int]bool{11: true, 12: false, 13: true}))
	require.NoError(t, err)
	assert.False(t, res.Simulated)
	assert.Equal(t, 3, res.Records)
}

func TestReportsAPI(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	repo := restrepo.NewReportsRepository(app.client)

	stats, err := repo.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Counts.Students)

	csv, err := repo.Educacenso(ctx, reports.ExportStudents)
	require.NoError(t, err)
	assert.Contains(t, string(csv), "id;nome;cpf;data_nascimento")

	// unknown exports are refused before any request is sent
	_, err = repo.Educacenso(ctx, "turmas")
	assert.EqualError(t, err, `unknown educacenso export "turmas"`)
	_, isAPIErr := core.AsAPIError(err)
	assert.False(t, isAPIErr)

	resp, err := http.Get(app.url + "/api/reports/educacenso/turmas")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, app.url+"/api/reports/boletim/1", repo.ReportCardURL(1))
}

func TestPortalAPI(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	repo := restrepo.NewPortalRepository(app.client)

	_, err := repo.Login(ctx, portal.LoginRequest{CPF: "11111111111"})
	assert.True(t, core.IsNotFound(err))

	res, err := repo.Login(ctx, portal.LoginRequest{CPF: "123.456.789-09"})
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", res.Name)

	// no session, no token
	_, err = repo.Overview(ctx, res.ID)
	apiErr, ok := core.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	authed := session.NewContext(ctx, session.Session{StudentID: res.ID, Token: res.Token})
	overview, err := repo.Overview(authed, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "5A (2024)", overview.ClassName())

	// a token only opens its own student's data
	_, err = repo.Overview(authed, 2)
	apiErr, ok = core.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}
