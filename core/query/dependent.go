package query

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// ErrSuperseded is returned by a fetch whose parent selection changed while it was pending.
var ErrSuperseded = errors.New("query superseded by a newer selection")

// Dependent is a query gated on a parent value: it runs only once a non-zero
// parent is selected, and the latest selection always wins.
type Dependent[P comparable, T any] struct {
	mu     sync.Mutex
	client *Client
	key    func(P) Key
	fetch  func(ctx context.Context, parent P) (T, error)

	onResult []func(parent P, data T)
	onReset  []func()

	gen     uint64
	parent  P
	data    T
	hasData bool
	err     error
	status  Status
}

func NewDependent[P comparable, T any](
	c *Client,
	key func(P) Key,
	fetch func(ctx context.Context, parent P) (T, error),
) *Dependent[P, T] {
	return &Dependent[P, T]{client: c, key: key, fetch: fetch}
}

// OnResult registers fn to run with every successful result of the current selection.
// fn runs while d is locked and must not call back into d.
func (d *Dependent[P, T]) OnResult(fn func(parent P, data T)) *Dependent[P, T] {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onResult = append(d.onResult, fn)
	return d
}

// OnReset registers fn to run whenever the visible result is cleared.
func (d *Dependent[P, T]) OnReset(fn func()) *Dependent[P, T] {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onReset = append(d.onReset, fn)
	return d
}

func (d *Dependent[P, T]) reset(parent P) uint64 {
	var zero T
	d.gen++
	d.parent = parent
	d.data = zero
	d.hasData = false
	d.err = nil
	d.status = StatusIdle
	for _, fn := range d.onReset {
		fn()
	}
	return d.gen
}

// Select makes parent the current selection, clears the previous result and fetches.
// The zero parent only clears.
func (d *Dependent[P, T]) Select(ctx context.Context, parent P) (T, error) {
	var zero P
	d.mu.Lock()
	gen := d.reset(parent)
	if parent == zero {
		d.mu.Unlock()
		var data T
		return data, nil
	}
	d.status = StatusLoading
	d.mu.Unlock()

	return d.load(ctx, gen, parent, false)
}

// Refetch reloads the current selection, bypassing the cache when force is set.
// Without a selection it does nothing.
func (d *Dependent[P, T]) Refetch(ctx context.Context, force bool) (T, error) {
	var zero P
	d.mu.Lock()
	parent := d.parent
	if parent == zero {
		d.mu.Unlock()
		var data T
		return data, nil
	}
	d.gen++
	gen := d.gen
	d.status = StatusLoading
	d.mu.Unlock()

	return d.load(ctx, gen, parent, force)
}

// Clear drops the selection and its result.
func (d *Dependent[P, T]) Clear() {
	var zero P
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset(zero)
}

func (d *Dependent[P, T]) load(ctx context.Context, gen uint64, parent P, force bool) (T, error) {
	fn := func(ctx context.Context) (T, error) { return d.fetch(ctx, parent) }

	var data T
	var err error
	if force {
		data, err = Refresh(ctx, d.client, d.key(parent), fn)
	} else {
		data, err = Fetch(ctx, d.client, d.key(parent), fn)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen {
		var zero T
		return zero, ErrSuperseded
	}
	if err != nil {
		d.err = err
		d.status = StatusError
		return data, err
	}
	d.data = data
	d.hasData = true
	d.err = nil
	d.status = StatusSuccess
	for _, fn := range d.onResult {
		fn(parent, data)
	}
	return data, nil
}

// Parent returns the current selection and whether there is one.
func (d *Dependent[P, T]) Parent() (P, bool) {
	var zero P
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.parent, d.parent != zero
}

// View returns the visible result of the current selection.
func (d *Dependent[P, T]) View() State[T] {
	d.mu.Lock()
	defer d.mu.Unlock()
	return State[T]{Data: d.data, HasData: d.hasData, Err: d.err, Status: d.status}
}

// Key returns the cache key of the current selection, or nil without one.
func (d *Dependent[P, T]) Key() Key {
	var zero P
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.parent == zero {
		return nil
	}
	return d.key(d.parent)
}
