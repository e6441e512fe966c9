package ports

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Store.Get when the key is absent.
var ErrKeyNotFound = errors.New("key not found")

// Store is the flat key-value persistence primitive everything sits on.
// Semantics are last-writer-wins with no multi-key transactions; every
// mutation above this interface is read-then-write, so concurrent updates
// to the same key can lose one of the writes.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// GetByPrefix returns the values of all keys starting with prefix,
	// ordered by key. Key order is the stable listing order callers rely on.
	GetByPrefix(ctx context.Context, prefix string) ([][]byte, error)
}
