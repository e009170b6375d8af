package ports

import "context"

// ArtifactStore defines the interface for persisting stage artifacts.
// Payloads are opaque bytes; encoding is the caller's concern.
type ArtifactStore interface {
	// Put stores data under key, replacing any previous payload.
	Put(ctx context.Context, key string, data []byte) error

	// Get retrieves the payload stored under key.
	// Returns domain.ErrArtifactNotFound if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the payload stored under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the keys currently stored, in ascending order.
	List(ctx context.Context) ([]string, error)
}
