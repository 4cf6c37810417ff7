package mutation

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/sge/core"
	"github.com/trezcool/sge/core/query"
	logsvc "github.com/trezcool/sge/services/logger"
	notifysvc "github.com/trezcool/sge/services/notify"
)

var schoolsKey = query.Key{"pedagogical", "escolas"}

func setup(t *testing.T) (*query.Client, *notifysvc.Recorder) {
	c := query.NewClient()
	_, err := query.Fetch(context.Background(), c, schoolsKey, func(ctx context.Context) ([]string, error) {
		return []string{"Escola A"}, nil
	})
	require.NoError(t, err)
	return c, notifysvc.NewRecorder()
}

func TestMutation_success(t *testing.T) {
	c, rec := setup(t)
	closed := false

	m := New(c, rec, logsvc.NewMockLogger(), func(ctx context.Context, name string) (int, error) {
		return 1, nil
	}).
		Invalidates(schoolsKey, schoolsKey).
		InvalidatesFunc(func(string) query.Key { return nil }).
		OnSuccess(func(int) { closed = true }).
		SuccessMessage("Escola salva com sucesso!")

	out, err := m.Run(context.Background(), "Escola B")
	require.NoError(t, err)
	assert.Equal(t, 1, out)
	assert.Equal(t, 1, c.Invalidations(schoolsKey))
	assert.True(t, closed)
	assert.Equal(t, core.Success("Escola salva com sucesso!"), rec.Last())
	assert.False(t, m.Pending())
}

func TestMutation_invalidatesKeyOfInput(t *testing.T) {
	c, rec := setup(t)
	yearsKey := func(schoolID int) query.Key { return query.Key{"anos-letivos", strconv.Itoa(schoolID)} }
	for _, id := range []int{1, 2} {
		_, err := query.Fetch(context.Background(), c, yearsKey(id), func(ctx context.Context) ([]string, error) {
			return nil, nil
		})
		require.NoError(t, err)
	}

	// the selection moves to school 2 while the write for school 1 is in flight
	selected := 1
	m := New(c, rec, logsvc.NewMockLogger(), func(ctx context.Context, schoolID int) (struct{}, error) {
		selected = 2
		return struct{}{}, nil
	}).InvalidatesFunc(yearsKey)

	_, err := m.Run(context.Background(), selected)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Invalidations(yearsKey(1)))
	assert.Equal(t, 0, c.Invalidations(yearsKey(2)))
}

func TestMutation_failure(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "network",
			err:     &core.APIError{Kind: core.KindNetwork, Method: http.MethodPost, Path: "/x"},
			wantMsg: "Falha de comunicação com o servidor.",
		},
		{
			name:    "server",
			err:     &core.APIError{Kind: core.KindServer, StatusCode: 500},
			wantMsg: "Erro interno do servidor. Tente novamente mais tarde.",
		},
		{
			name:    "validation",
			err:     &core.APIError{Kind: core.KindValidation, StatusCode: 400, Message: "nome já existe"},
			wantMsg: "nome já existe",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := setup(t)
			closed := false
			m := New(c, rec, logsvc.NewMockLogger(), func(ctx context.Context, name string) (int, error) {
				return 0, tt.err
			}).Invalidates(schoolsKey).OnSuccess(func(int) { closed = true }).SuccessMessage("ok")

			_, err := m.Run(context.Background(), "Escola B")
			assert.Equal(t, tt.err, err)
			assert.Equal(t, 0, c.Invalidations(schoolsKey))
			assert.False(t, closed)
			assert.Equal(t, core.Failure("", tt.wantMsg), rec.Last())
		})
	}
}

func TestMutation_pending(t *testing.T) {
	c, rec := setup(t)
	started := make(chan struct{})
	release := make(chan struct{})
	calls := 0
	m := New(c, rec, logsvc.NewMockLogger(), func(ctx context.Context, _ struct{}) (struct{}, error) {
		calls++
		close(started)
		<-release
		return struct{}{}, nil
	})

	done := make(chan error)
	go func() {
		_, err := m.Run(context.Background(), struct{}{})
		done <- err
	}()
	<-started
	assert.True(t, m.Pending())

	_, err := m.Run(context.Background(), struct{}{})
	assert.ErrorIs(t, err, ErrPending)

	close(release)
	assert.NoError(t, <-done)
	assert.Equal(t, 1, calls)
	assert.Empty(t, rec.Sent())
}
