package query

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_HasPrefix(t *testing.T) {
	tests := []struct {
		name   string
		key    Key
		prefix Key
		want   bool
	}{
		{name: "empty prefix", key: Key{"turmas", "1"}, prefix: nil, want: true},
		{name: "same key", key: Key{"turmas", "1"}, prefix: Key{"turmas", "1"}, want: true},
		{name: "root prefix", key: Key{"turmas", "1", "alunos"}, prefix: Key{"turmas"}, want: true},
		{name: "other root", key: Key{"escolas"}, prefix: Key{"turmas"}, want: false},
		{name: "longer prefix", key: Key{"turmas"}, prefix: Key{"turmas", "1"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.HasPrefix(tt.prefix))
		})
	}
}

func TestFetch_cachesUntilInvalidated(t *testing.T) {
	c := NewClient()
	key := Key{"escolas"}
	calls := 0
	fn := func(ctx context.Context) ([]string, error) {
		calls++
		return []string{"Escola A"}, nil
	}

	data, err := Fetch(context.Background(), c, key, fn)
	require.NoError(t, err)
	assert.Equal(t, []string{"Escola A"}, data)

	_, err = Fetch(context.Background(), c, key, fn)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	assert.Equal(t, 1, c.Invalidate(Key{"escolas"}))
	assert.True(t, Get[[]string](c, key).Stale)

	_, err = Fetch(context.Background(), c, key, fn)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, c.Fetches(key))
	assert.Equal(t, 1, c.Invalidations(key))
	assert.False(t, Get[[]string](c, key).Stale)
}

func TestFetch_errorKeepsLastKnownGood(t *testing.T) {
	c := NewClient()
	key := Key{"disciplinas"}
	boom := errors.New("boom")

	_, err := Fetch(context.Background(), c, key, func(ctx context.Context) (int, error) { return 0, boom })
	require.Error(t, err)
	state := Get[int](c, key)
	assert.Equal(t, StatusError, state.Status)
	assert.False(t, state.HasData)

	_, err = Refresh(context.Background(), c, key, func(ctx context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)

	_, err = Refresh(context.Background(), c, key, func(ctx context.Context) (int, error) { return 0, boom })
	require.Error(t, err)
	state = Get[int](c, key)
	assert.Equal(t, StatusError, state.Status)
	assert.Equal(t, 7, state.Data)
	assert.True(t, state.HasData)
	assert.Equal(t, boom, state.Err)
}

func TestClient_Invalidate_prefix(t *testing.T) {
	c := NewClient()
	ctx := context.Background()
	ok := func(ctx context.Context) (int, error) { return 1, nil }
	for _, k := range []Key{{"turmas"}, {"turmas", "1", "alunos"}, {"turmas", "2", "alunos"}, {"escolas"}} {
		_, err := Fetch(ctx, c, k, ok)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, c.Invalidate(Key{"turmas"}))
	assert.False(t, Get[int](c, Key{"escolas"}).Stale)
	assert.Equal(t, 0, c.Invalidate(Key{"fila"}))
}

func TestDependent_latestSelectionWins(t *testing.T) {
	c := NewClient()
	started := map[int]chan struct{}{1: make(chan struct{}), 2: make(chan struct{})}
	release := map[int]chan struct{}{1: make(chan struct{}), 2: make(chan struct{})}

	var seeded []int
	d := NewDependent(c,
		func(classID int) Key { return Key{"turmas", itoa(classID), "alunos"} },
		func(ctx context.Context, classID int) ([]int, error) {
			close(started[classID])
			<-release[classID]
			return []int{classID * 10}, nil
		},
	).OnResult(func(classID int, data []int) { seeded = append(seeded, classID) })

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = d.Select(context.Background(), 1)
	}()
	<-started[1]

	close(release[2])
	data, err := d.Select(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []int{20}, data)

	close(release[1])
	wg.Wait()
	assert.ErrorIs(t, firstErr, ErrSuperseded)

	view := d.View()
	assert.Equal(t, StatusSuccess, view.Status)
	assert.Equal(t, []int{20}, view.Data)
	assert.Equal(t, []int{2}, seeded)
}

func TestDependent_selectClearsPreviousResult(t *testing.T) {
	c := NewClient()
	resets := 0
	block := make(chan struct{})
	d := NewDependent(c,
		func(id int) Key { return Key{"escolas", itoa(id), "anos"} },
		func(ctx context.Context, id int) (int, error) {
			if id == 2 {
				<-block
			}
			return id, nil
		},
	).OnReset(func() { resets++ })

	_, err := d.Select(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, d.View().Data)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = d.Select(context.Background(), 2)
	}()
	assert.Eventually(t, func() bool { return d.View().Status == StatusLoading }, timeout, tick)
	view := d.View()
	assert.False(t, view.HasData)
	assert.Equal(t, 0, view.Data)

	close(block)
	<-done
	assert.Equal(t, 2, d.View().Data)

	d.Clear()
	_, ok := d.Parent()
	assert.False(t, ok)
	assert.Equal(t, StatusIdle, d.View().Status)
	assert.Equal(t, 3, resets)
}

func TestDependent_zeroParentDoesNotFetch(t *testing.T) {
	c := NewClient()
	calls := 0
	d := NewDependent(c,
		func(id int) Key { return Key{"x", itoa(id)} },
		func(ctx context.Context, id int) (int, error) { calls++; return id, nil },
	)

	_, err := d.Select(context.Background(), 0)
	require.NoError(t, err)
	_, err = d.Refetch(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 0, calls)
	assert.Nil(t, d.Key())
}
