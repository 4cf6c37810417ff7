package query

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Status is the lifecycle of a cached query.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Key identifies a cached query, e.g. Key{"turmas", "3", "alunos"}.
type Key []string

func (k Key) String() string {
	return strings.Join(k, "/")
}

// HasPrefix reports whether k starts with every element of prefix.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}

type entry struct {
	key           Key
	data          interface{}
	hasData       bool
	err           error
	status        Status
	stale         bool
	fetches       int
	invalidations int
}

// State is a typed view of a cached query.
// Data keeps the last successful value even when Status is StatusError.
type State[T any] struct {
	Data    T
	HasData bool
	Err     error
	Status  Status
	Stale   bool
}

// Client is the shared query cache. Entries are written only by fetches; callers
// change them through Invalidate and a later fetch.
type Client struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewClient() *Client {
	return &Client{entries: make(map[string]*entry)}
}

func (c *Client) entry(key Key) *entry {
	e, ok := c.entries[key.String()]
	if !ok {
		e = &entry{key: append(Key(nil), key...)}
		c.entries[key.String()] = e
	}
	return e
}

// Fetch returns the cached value for key, calling fn when there is none or it is stale.
// A failed fetch keeps the previous data and records the error.
func Fetch[T any](ctx context.Context, c *Client, key Key, fn func(ctx context.Context) (T, error)) (T, error) {
	c.mu.Lock()
	e := c.entry(key)
	if e.status == StatusSuccess && !e.stale {
		data, _ := e.data.(T)
		c.mu.Unlock()
		return data, nil
	}
	return run(ctx, c, e, fn)
}

// Refresh always calls fn, ignoring any cached value.
func Refresh[T any](ctx context.Context, c *Client, key Key, fn func(ctx context.Context) (T, error)) (T, error) {
	c.mu.Lock()
	return run(ctx, c, c.entry(key), fn)
}

// run must be called with c.mu held; it releases it around fn.
func run[T any](ctx context.Context, c *Client, e *entry, fn func(ctx context.Context) (T, error)) (T, error) {
	e.status = StatusLoading
	e.fetches++
	invalidations := e.invalidations
	c.mu.Unlock()

	data, err := fn(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		e.err = err
		e.status = StatusError
		var zero T
		return zero, errors.Wrapf(err, "fetching %s", e.key)
	}
	e.data = data
	e.hasData = true
	e.err = nil
	e.status = StatusSuccess
	// an invalidation that raced the fetch still applies
	e.stale = e.invalidations != invalidations
	return data, nil
}

// Get returns the cached state of key without fetching.
func Get[T any](c *Client, key Key) State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	if !ok {
		return State[T]{}
	}
	data, _ := e.data.(T)
	return State[T]{Data: data, HasData: e.hasData, Err: e.err, Status: e.status, Stale: e.stale}
}

// Invalidate marks every entry under prefix stale and returns how many were marked.
func (c *Client) Invalidate(prefix Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int
	for _, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			e.stale = true
			e.invalidations++
			n++
		}
	}
	return n
}

// Invalidations returns how many times key was invalidated.
func (c *Client) Invalidations(key Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key.String()]; ok {
		return e.invalidations
	}
	return 0
}

// Fetches returns how many times key was fetched from the backend.
func (c *Client) Fetches(key Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key.String()]; ok {
		return e.fetches
	}
	return 0
}
