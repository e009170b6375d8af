package artifact_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/seedbed/pkg/adapters/memory"
	"github.com/aretw0/seedbed/pkg/artifact"
	"github.com/aretw0/seedbed/pkg/codec"
	"github.com/aretw0/seedbed/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trainingResult struct {
	Model   string
	Epochs  int
	Metrics map[string]float64
}

func TestCache_PutGet(t *testing.T) {
	ctx := context.Background()
	cache := artifact.New(memory.NewStore())

	in := trainingResult{Model: "resnet", Epochs: 12, Metrics: map[string]float64{"acc": 0.93}}
	require.NoError(t, cache.Put(ctx, "training", in))

	var out trainingResult
	require.NoError(t, cache.Get(ctx, "training", &out))
	assert.Equal(t, in, out)
}

func TestCache_GetValue(t *testing.T) {
	ctx := context.Background()
	cache := artifact.New(memory.NewStore())

	require.NoError(t, cache.Put(ctx, "params", map[string]any{"lr": 0.01, "layers": []int{64, 32}}))

	v, err := cache.GetValue(ctx, "params")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"lr": 0.01, "layers": []any{64, 32}}, v)
}

func TestCache_Missing(t *testing.T) {
	ctx := context.Background()
	cache := artifact.New(memory.NewStore())

	var out trainingResult
	err := cache.Get(ctx, "nope", &out)
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)

	_, err = cache.Export(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestCache_ImportExportMatchesCodec(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	cache := artifact.New(store)

	payload, err := codec.MustCBOR().Marshal([]string{"a", "b"})
	require.NoError(t, err)

	require.NoError(t, cache.Import(ctx, "list", payload))

	out, err := cache.Export(ctx, "list")
	require.NoError(t, err)
	assert.Equal(t, payload, out)

	raw, err := store.Get(ctx, "list")
	require.NoError(t, err)
	assert.Equal(t, payload, raw, "cache must store codec bytes unchanged")
}

func TestCache_ImportAcceptsIntKeyedMaps(t *testing.T) {
	ctx := context.Background()
	cache := artifact.New(memory.NewStore())

	payload, err := codec.MustCBOR().Marshal(map[string]any{"labels": map[int]string{0: "cat", 1: "dog"}})
	require.NoError(t, err)

	require.NoError(t, cache.Import(ctx, "labels", payload))

	v, err := cache.GetValue(ctx, "labels")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"labels": map[string]any{"0": "cat", "1": "dog"}}, v)
}

func TestCache_ImportRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	cache := artifact.New(store)

	// 0xff is a CBOR "break" byte outside of any indefinite-length item.
	err := cache.Import(ctx, "junk", []byte{0xff})
	assert.ErrorIs(t, err, domain.ErrParse)

	keys, err := cache.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestCache_DeleteAndKeys(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	cache := artifact.New(memory.NewStore(), artifact.WithLogger(logger))

	require.NoError(t, cache.Put(ctx, "b", 2))
	require.NoError(t, cache.Put(ctx, "a", 1))

	keys, err := cache.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, cache.Delete(ctx, "a"))
	keys, err = cache.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, keys)

	assert.Contains(t, logs.String(), "artifact cached")
	assert.Contains(t, logs.String(), "artifact evicted")
}
