package screens

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/sge/core/reports"
	"github.com/trezcool/sge/storage/inmem"
)

type brokenExports struct {
	reports.Repository
}

func (brokenExports) Educacenso(ctx context.Context, kind string) ([]byte, error) {
	return nil, errServer
}

func TestEducacenso(t *testing.T) {
	ctx := context.Background()
	te := newTestEnv(t)
	e := NewEducacenso(te.Env, inmemdb.NewReportsRepository(te.db))

	var buf bytes.Buffer
	name, err := e.Download(ctx, reports.ExportSchools, &buf)
	require.NoError(t, err)
	assert.Equal(t, "escolas_educacenso.csv", name)
	assert.Contains(t, buf.String(), "1;Escola Municipal Monteiro Lobato;35000001")

	_, err = e.Download(ctx, "professores", &buf)
	assert.ErrorIs(t, err, ErrUnknownExport)

	broken := NewEducacenso(te.Env, brokenExports{})
	_, err = broken.Download(ctx, reports.ExportStudents, &buf)
	assert.Error(t, err)
	assert.Equal(t, "Erro ao baixar arquivo.", te.notes.Last().Message)
}

func TestDashboards(t *testing.T) {
	ctx := context.Background()
	te := newTestEnv(t)
	repo := inmemdb.NewReportsRepository(te.db)

	counts, err := NewDashboard(te.Env, repo).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, reports.Counts{Schools: 2, Students: 4, Teachers: 8, Classes: 2}, counts)

	pd := NewPedagogicalDashboard(te.Env, repo)
	_, err = pd.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, pd.AtRisk())
	assert.Equal(t, 1, te.Client.Fetches(KeyDashboard), "both dashboards share one cache entry")
}

func TestStudents(t *testing.T) {
	ctx := context.Background()
	te := newTestEnv(t)
	s := NewStudents(te.Env, inmemdb.NewPeopleRepository(te.db), inmemdb.NewReportsRepository(te.db))

	students, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 4)

	found, err := s.Search(ctx, "brno")
	require.NoError(t, err)
	require.NotEmpty(t, found)
	assert.Equal(t, "Bruno Lima", found[0].Name)
	assert.Equal(t, "/reports/boletim/2", s.ReportCardURL(2))
}
