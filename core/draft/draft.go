// Package draft holds editable state seeded from the last successful fetch.
// Edits never reach the query cache; a re-seed discards them.
package draft

import (
	"sync"

	"github.com/pkg/errors"
)

var ErrUnknownKey = errors.New("key is not part of the seeded data")

type Draft[K comparable, V any] struct {
	mu     sync.RWMutex
	keys   map[K]struct{}
	values map[K]V
	dirty  bool
}

func New[K comparable, V any]() *Draft[K, V] {
	return &Draft[K, V]{keys: make(map[K]struct{}), values: make(map[K]V)}
}

// Seed replaces the draft with keys, setting the entries found in values.
// Keys missing from values stay unset.
func (d *Draft[K, V]) Seed(keys []K, values map[K]V) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.keys = make(map[K]struct{}, len(keys))
	d.values = make(map[K]V, len(values))
	for _, k := range keys {
		d.keys[k] = struct{}{}
		if v, ok := values[k]; ok {
			d.values[k] = v
		}
	}
	d.dirty = false
}

func (d *Draft[K, V]) Set(k K, v V) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.keys[k]; !ok {
		return ErrUnknownKey
	}
	d.values[k] = v
	d.dirty = true
	return nil
}

func (d *Draft[K, V]) Unset(k K) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.keys[k]; !ok {
		return ErrUnknownKey
	}
	delete(d.values, k)
	d.dirty = true
	return nil
}

func (d *Draft[K, V]) Get(k K) (V, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.values[k]
	return v, ok
}

// Snapshot copies the set entries.
func (d *Draft[K, V]) Snapshot() map[K]V {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snap := make(map[K]V, len(d.values))
	for k, v := range d.values {
		snap[k] = v
	}
	return snap
}

// Clear empties the draft; every key becomes unknown.
func (d *Draft[K, V]) Clear() {
	d.Seed(nil, nil)
}

// Dirty reports edits since the last seed.
func (d *Draft[K, V]) Dirty() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.dirty
}

func (d *Draft[K, V]) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.keys)
}
