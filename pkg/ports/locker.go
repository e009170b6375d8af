package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a lock.
type UnlockFunc func(ctx context.Context) error

// Locker defines the interface for concurrency control over filesystem paths.
// It lets several scaffolders share a project tree without racing on the
// existence check that precedes each create.
type Locker interface {
	// Lock acquires the lock for key.
	// It blocks until the lock is acquired or the context is canceled.
	// ttl bounds how long a crashed holder can keep the lock (implementation specific).
	// Returns an UnlockFunc that MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
