package repositories

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned when a session key has never been set or was cleared.
var ErrKeyNotFound = errors.New("session key not found")

// SessionRepository defines the interface for the persistent key-value store
// that backs the vendor session.
type SessionRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
}
