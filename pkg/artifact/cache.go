// Package artifact provides a typed cache for pipeline stage artifacts on top
// of any ports.ArtifactStore backend.
//
// Values are encoded with the same codec the configuration store uses for
// binary files, so a cached artifact and a saved artifact file carry identical
// bytes and can be moved between the two without re-encoding.
package artifact

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/seedbed/internal/logfields"
	"github.com/aretw0/seedbed/internal/logging"
	"github.com/aretw0/seedbed/pkg/codec"
	"github.com/aretw0/seedbed/pkg/domain"
	"github.com/aretw0/seedbed/pkg/ports"
)

// Cache stores encoded values under string keys.
type Cache struct {
	store  ports.ArtifactStore
	codec  codec.Codec
	logger *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithCodec replaces the value codec (default: CBOR).
func WithCodec(c codec.Codec) Option {
	return func(cc *Cache) {
		cc.codec = c
	}
}

// WithLogger sets the structured logger (default: no-op).
func WithLogger(logger *slog.Logger) Option {
	return func(cc *Cache) {
		cc.logger = logger
	}
}

// New creates a Cache backed by store.
func New(store ports.ArtifactStore, opts ...Option) *Cache {
	c := &Cache{store: store}
	for _, opt := range opts {
		opt(c)
	}
	if c.codec == nil {
		c.codec = codec.MustCBOR()
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	return c
}

// Put encodes v and stores it under key.
func (c *Cache) Put(ctx context.Context, key string, v any) error {
	data, err := c.codec.Marshal(v)
	if err != nil {
		return domain.NewPathError("cache_put", key, domain.ErrEncode, err)
	}
	return c.Import(ctx, key, data)
}

// Get decodes the value stored under key into target, a non-nil pointer.
func (c *Cache) Get(ctx context.Context, key string, target any) error {
	data, err := c.Export(ctx, key)
	if err != nil {
		return err
	}
	if err := c.codec.Unmarshal(data, target); err != nil {
		return domain.NewPathError("cache_get", key, domain.ErrParse, err)
	}
	return nil
}

// GetValue decodes the value stored under key into a generic value graph.
func (c *Cache) GetValue(ctx context.Context, key string) (any, error) {
	data, err := c.Export(ctx, key)
	if err != nil {
		return nil, err
	}
	v, err := codec.DecodeValue(c.codec, data)
	if err != nil {
		return nil, domain.NewPathError("cache_get", key, domain.ErrParse, err)
	}
	return v, nil
}

// Import stores an already encoded payload, typically read from an artifact
// file. The payload must decode with the cache codec.
func (c *Cache) Import(ctx context.Context, key string, data []byte) error {
	if _, err := codec.DecodeValue(c.codec, data); err != nil {
		return domain.NewPathError("cache_put", key, domain.ErrParse, err)
	}
	if err := c.store.Put(ctx, key, data); err != nil {
		return domain.NewPathError("cache_put", key, domain.ErrIO, err)
	}
	c.logger.Info("artifact cached", logfields.Key(key), logfields.Bytes(len(data)))
	return nil
}

// Export returns the encoded payload stored under key.
// A missing key yields an error matching domain.ErrArtifactNotFound.
func (c *Cache) Export(ctx context.Context, key string) ([]byte, error) {
	data, err := c.store.Get(ctx, key)
	if errors.Is(err, domain.ErrArtifactNotFound) {
		return nil, domain.NewPathError("cache_get", key, domain.ErrArtifactNotFound, nil)
	}
	if err != nil {
		return nil, domain.NewPathError("cache_get", key, domain.ErrIO, err)
	}
	c.logger.Debug("artifact read from cache", logfields.Key(key), logfields.Bytes(len(data)))
	return data, nil
}

// Delete removes the value stored under key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.store.Delete(ctx, key); err != nil {
		return domain.NewPathError("cache_delete", key, domain.ErrIO, err)
	}
	c.logger.Info("artifact evicted", logfields.Key(key))
	return nil
}

// Keys lists the cached keys in ascending order.
func (c *Cache) Keys(ctx context.Context) ([]string, error) {
	keys, err := c.store.List(ctx)
	if err != nil {
		return nil, domain.NewPathError("cache_list", "", domain.ErrIO, err)
	}
	return keys, nil
}
