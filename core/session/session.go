// Package session keeps the student portal session between runs.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/sge/core"
	"github.com/trezcool/sge/core/portal"
)

var (
	ErrNoSession      = errors.New("no portal session")
	ErrExpired        = errors.New("portal session expired")
	ErrRefreshExpired = errors.New("portal session refresh has expired")
	ErrInvalid        = errors.New("invalid portal session")
)

type Session struct {
	StudentID    int
	Name         string
	Token        string
	IssuedAt     time.Time
	OrigIssuedAt time.Time
	ExpiresAt    time.Time
}

// Store persists at most one session.
type Store interface {
	Load() (Session, error) // ErrNoSession when empty
	Save(s Session) error
	Clear() error
}

// Manager issues, refreshes and ends the portal session.
// A session is valid until ExpiresAt; within RefreshWindow of it, reads slide the
// expiry, never past OrigIssuedAt+RefreshLimit.
type Manager struct {
	mu     sync.Mutex
	store  Store
	ttl    time.Duration
	window time.Duration
	limit  time.Duration

	NowFunc func() time.Time // mockable
}

func NewManager(store Store, conf *core.Config) *Manager {
	return &Manager{
		store:   store,
		ttl:     conf.Portal.SessionTTL,
		window:  conf.Portal.RefreshWindow,
		limit:   conf.Portal.RefreshLimit,
		NowFunc: time.Now,
	}
}

func (m *Manager) now() time.Time {
	return m.NowFunc().UTC().Truncate(time.Second)
}

// Start replaces any current session with one for the logged in student.
func (m *Manager) Start(res portal.LoginResult) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	s := Session{
		StudentID:    res.ID,
		Name:         res.Name,
		Token:        res.Token,
		IssuedAt:     now,
		OrigIssuedAt: now,
		ExpiresAt:    now.Add(m.ttl),
	}
	if err := m.store.Save(s); err != nil {
		return Session{}, errors.Wrap(err, "saving session")
	}
	return s, nil
}

// Current returns the stored session. An expired session is cleared.
func (m *Manager) Current() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.store.Load()
	if err != nil {
		if errors.Cause(err) == ErrInvalid {
			_ = m.store.Clear()
		}
		return Session{}, err
	}
	now := m.now()
	if !now.Before(s.ExpiresAt) {
		_ = m.store.Clear()
		return Session{}, ErrExpired
	}
	if now.Add(m.window).Before(s.ExpiresAt) {
		return s, nil
	}
	refreshed, err := m.refresh(s, now)
	if err != nil {
		// still valid until ExpiresAt
		return s, nil
	}
	return refreshed, nil
}

// Refresh extends the current session by the TTL.
func (m *Manager) Refresh() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.store.Load()
	if err != nil {
		return Session{}, err
	}
	now := m.now()
	if !now.Before(s.ExpiresAt) {
		_ = m.store.Clear()
		return Session{}, ErrExpired
	}
	return m.refresh(s, now)
}

func (m *Manager) refresh(s Session, now time.Time) (Session, error) {
	deadline := s.OrigIssuedAt.Add(m.limit)
	if !now.Before(deadline) {
		return Session{}, ErrRefreshExpired
	}
	s.IssuedAt = now
	s.ExpiresAt = now.Add(m.ttl)
	if s.ExpiresAt.After(deadline) {
		s.ExpiresAt = deadline
	}
	if err := m.store.Save(s); err != nil {
		return Session{}, errors.Wrap(err, "saving session")
	}
	return s, nil
}

// End logs the student out.
func (m *Manager) End() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Clear()
}

type ctxKey struct{}

func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}
