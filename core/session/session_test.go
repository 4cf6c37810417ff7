package session

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/sge/core"
	"github.com/trezcool/sge/core/portal"
)

var (
	t0    = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	login = portal.LoginResult{ID: 5, Name: "Ana Souza", Token: "abc123"}
	conf  = &core.Config{Portal: core.PortalConfig{
		SessionTTL:    time.Hour,
		RefreshWindow: 10 * time.Minute,
		RefreshLimit:  3 * time.Hour,
	}}
)

func newManager(store Store, now *time.Time) *Manager {
	m := NewManager(store, conf)
	m.NowFunc = func() time.Time { return *now }
	return m
}

func TestManager(t *testing.T) {
	now := t0
	m := newManager(NewMemoryStore(), &now)

	_, err := m.Current()
	assert.ErrorIs(t, err, ErrNoSession)

	s, err := m.Start(login)
	require.NoError(t, err)
	assert.Equal(t, 5, s.StudentID)
	assert.Equal(t, t0.Add(time.Hour), s.ExpiresAt)

	// outside the refresh window: unchanged
	now = t0.Add(30 * time.Minute)
	cur, err := m.Current()
	require.NoError(t, err)
	assert.Equal(t, s, cur)

	// inside the refresh window: slides
	now = t0.Add(55 * time.Minute)
	cur, err = m.Current()
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), cur.ExpiresAt)
	assert.Equal(t, t0, cur.OrigIssuedAt)

	now = t0.Add(time.Hour + 50*time.Minute)
	cur, err = m.Current()
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), cur.ExpiresAt)

	// never past the refresh limit
	now = t0.Add(2*time.Hour + 45*time.Minute)
	cur, err = m.Current()
	require.NoError(t, err)
	assert.Equal(t, t0.Add(3*time.Hour), cur.ExpiresAt)

	_, err = m.Refresh()
	require.NoError(t, err)

	now = t0.Add(3 * time.Hour)
	_, err = m.Current()
	assert.ErrorIs(t, err, ErrExpired)
	_, err = m.Current()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_End(t *testing.T) {
	now := t0
	m := newManager(NewMemoryStore(), &now)
	_, err := m.Start(login)
	require.NoError(t, err)
	require.NoError(t, m.End())
	_, err = m.Current()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal", "session")
	store := NewFileStore(path, "secret")
	now := t0
	m := newManager(store, &now)

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	s, err := m.Start(login)
	require.NoError(t, err)

	loaded, err := NewFileStore(path, "secret").Load()
	require.NoError(t, err)
	assert.Equal(t, s, loaded)

	t.Run("wrong key", func(t *testing.T) {
		_, err := NewFileStore(path, "other").Load()
		assert.Equal(t, ErrInvalid, errorsCause(err))
	})

	t.Run("tampered", func(t *testing.T) {
		data, err := ioutil.ReadFile(path)
		require.NoError(t, err)
		data[len(data)-3] ^= 0x01
		tampered := filepath.Join(t.TempDir(), "session")
		require.NoError(t, ioutil.WriteFile(tampered, data, 0o600))

		tm := newManager(NewFileStore(tampered, "secret"), &now)
		_, err = tm.Current()
		assert.Equal(t, ErrInvalid, errorsCause(err))
		_, err = tm.Current()
		assert.ErrorIs(t, err, ErrNoSession)
	})

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := NewContext(context.Background(), Session{StudentID: 1, Token: "x"})
	s, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "x", s.Token)
}
