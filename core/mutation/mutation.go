// Package mutation runs backend writes: on success it invalidates the owning
// queries, closes the form and notifies; on failure it only notifies.
package mutation

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/sge/core"
	"github.com/trezcool/sge/core/query"
)

// ErrPending is returned when a mutation is submitted again before the previous submission ended.
var ErrPending = errors.New("mutation already in flight")

type Mutation[In, Out any] struct {
	mu      sync.Mutex
	pending bool

	client   *query.Client
	notifier core.Notifier
	logger   core.Logger
	fn       func(ctx context.Context, in In) (Out, error)

	invalidates []func(In) query.Key
	message     func(Out) string
	errTitle    string
	onSuccess   []func(Out)
}

func New[In, Out any](
	client *query.Client,
	notifier core.Notifier,
	logger core.Logger,
	fn func(ctx context.Context, in In) (Out, error),
) *Mutation[In, Out] {
	return &Mutation[In, Out]{client: client, notifier: notifier, logger: logger, fn: fn}
}

// Invalidates adds fixed keys marked stale after every success.
func (m *Mutation[In, Out]) Invalidates(keys ...query.Key) *Mutation[In, Out] {
	for _, k := range keys {
		k := k
		m.invalidates = append(m.invalidates, func(In) query.Key { return k })
	}
	return m
}

// InvalidatesFunc adds a key derived from the submitted input, e.g. the list of the
// parent the record was written under. A nil key is skipped.
func (m *Mutation[In, Out]) InvalidatesFunc(fn func(in In) query.Key) *Mutation[In, Out] {
	m.invalidates = append(m.invalidates, fn)
	return m
}

func (m *Mutation[In, Out]) SuccessMessage(msg string) *Mutation[In, Out] {
	m.message = func(Out) string { return msg }
	return m
}

func (m *Mutation[In, Out]) SuccessMessageFunc(fn func(Out) string) *Mutation[In, Out] {
	m.message = fn
	return m
}

// ErrorTitle sets the notification title used on failure.
func (m *Mutation[In, Out]) ErrorTitle(title string) *Mutation[In, Out] {
	m.errTitle = title
	return m
}

// OnSuccess adds fn, run after invalidation and before the success notification.
func (m *Mutation[In, Out]) OnSuccess(fn func(Out)) *Mutation[In, Out] {
	m.onSuccess = append(m.onSuccess, fn)
	return m
}

func (m *Mutation[In, Out]) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}

// Run submits in. A second Run while the first is pending returns ErrPending and sends nothing.
func (m *Mutation[In, Out]) Run(ctx context.Context, in In) (Out, error) {
	m.mu.Lock()
	if m.pending {
		m.mu.Unlock()
		var zero Out
		return zero, ErrPending
	}
	m.pending = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.pending = false
		m.mu.Unlock()
	}()

	out, err := m.fn(ctx, in)
	if err != nil {
		m.fail(err)
		return out, err
	}

	seen := make(map[string]bool, len(m.invalidates))
	for _, keyFn := range m.invalidates {
		key := keyFn(in)
		if key == nil || seen[key.String()] {
			continue
		}
		seen[key.String()] = true
		m.client.Invalidate(key)
	}
	for _, fn := range m.onSuccess {
		fn(out)
	}
	if m.message != nil {
		m.notifier.Notify(core.Success(m.message(out)))
	}
	return out, nil
}

func (m *Mutation[In, Out]) fail(err error) {
	if apiErr, ok := core.AsAPIError(err); ok && apiErr.Kind != core.KindValidation {
		m.logger.Error("mutation failed", err)
	} else {
		m.logger.Warn("mutation rejected", err)
	}
	m.notifier.Notify(core.Failure(m.errTitle, core.UserMessage(err)))
}
