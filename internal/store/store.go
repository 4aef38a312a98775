// Package store provides the key-value persistence capability used for
// drafts and per-session platform prompt overrides. Implementations are
// best-effort: callers treat an unavailable or corrupted store as empty and
// never fail an operation because of it.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("store: key not found")

// Store is the abstract key-value capability.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
