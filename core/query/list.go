package query

import (
	"context"
)

// List is a root collection query bound to a fixed key.
type List[T any] struct {
	client *Client
	key    Key
	fetch  func(ctx context.Context) (T, error)
}

func NewList[T any](c *Client, key Key, fetch func(ctx context.Context) (T, error)) *List[T] {
	return &List[T]{client: c, key: key, fetch: fetch}
}

func (l *List[T]) Key() Key {
	return l.key
}

// Load returns the cached collection, refetching it when stale.
func (l *List[T]) Load(ctx context.Context) (T, error) {
	return Fetch(ctx, l.client, l.key, l.fetch)
}

func (l *List[T]) View() State[T] {
	return Get[T](l.client, l.key)
}
