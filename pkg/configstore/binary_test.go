package configstore_test

import (
	"testing"
	"time"

	"github.com/aretw0/seedbed/pkg/domain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trainingArtifact struct {
	Name       string
	Epoch      int
	Weights    [][]float64
	Vocabulary map[string]int
	Tags       []string
	Checksum   []byte
	Started    time.Time
}

func TestSaveBinary_LoadBinary_Struct(t *testing.T) {
	store, _, logs := newTestStore(t)
	original := trainingArtifact{
		Name:       "classifier",
		Epoch:      7,
		Weights:    [][]float64{{0.5, -1.25}, {3, 4.75}},
		Vocabulary: map[string]int{"cat": 0, "dog": 1},
		Tags:       []string{"baseline", "augmented"},
		Checksum:   []byte{0xde, 0xad, 0xbe, 0xef},
		Started:    time.Date(2024, 5, 1, 12, 30, 0, 123456789, time.UTC),
	}

	require.NoError(t, store.SaveBinary(original, "artifacts/training/model.bin"))

	var loaded trainingArtifact
	require.NoError(t, store.LoadBinary("artifacts/training/model.bin", &loaded))
	assert.Equal(t, original, loaded)

	info := logs.lines("INFO")
	require.Len(t, info, 2)
	assert.Contains(t, info[0], "path=artifacts/training/model.bin")
	assert.Contains(t, info[1], "path=artifacts/training/model.bin")
}

func TestSaveBinary_LoadBinary_Containers(t *testing.T) {
	store, _, _ := newTestStore(t)
	original := map[string][]int{"train": {1, 2, 3}, "test": {4, 5}}

	require.NoError(t, store.SaveBinary(original, "split.bin"))

	var loaded map[string][]int
	require.NoError(t, store.LoadBinary("split.bin", &loaded))
	assert.Equal(t, original, loaded)
}

func TestLoadBinaryValue_Generic(t *testing.T) {
	store, _, _ := newTestStore(t)
	original := map[string]any{
		"epochs": 10,
		"lr":     0.001,
		"layers": []any{"conv", "pool", "dense"},
		"nested": map[string]any{"frozen": true, "depth": -3},
	}

	require.NoError(t, store.SaveBinary(original, "params.bin"))

	v, err := store.LoadBinaryValue("params.bin")
	require.NoError(t, err)
	assert.Equal(t, original, v)
}

func TestLoadBinaryValue_IntKeyedMap(t *testing.T) {
	store, _, _ := newTestStore(t)
	labels := map[int]string{0: "cat", 1: "dog"}

	require.NoError(t, store.SaveBinary(map[string]any{"labels": labels}, "labels.bin"))

	v, err := store.LoadBinaryValue("labels.bin")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"labels": map[string]any{"0": "cat", "1": "dog"}}, v)

	var typed struct {
		Labels map[int]string `cbor:"labels"`
	}
	require.NoError(t, store.LoadBinary("labels.bin", &typed))
	assert.Equal(t, labels, typed.Labels)
}

func TestLoadBinary_Errors(t *testing.T) {
	store, fsys, _ := newTestStore(t)
	require.NoError(t, afero.WriteFile(fsys, "garbage.bin", []byte{0xff, 0x01}, 0o644))

	var v map[string]any
	err := store.LoadBinary("missing.bin", &v)
	assert.ErrorIs(t, err, domain.ErrIO)

	err = store.LoadBinary("garbage.bin", &v)
	assert.ErrorIs(t, err, domain.ErrParse)

	_, err = store.LoadBinaryValue("garbage.bin")
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestSaveBinary_Errors(t *testing.T) {
	store, _, _ := newTestStore(t)

	err := store.SaveBinary(make(chan int), "chan.bin")
	assert.ErrorIs(t, err, domain.ErrEncode)

	err = store.SaveBinary(1, "")
	assert.ErrorIs(t, err, domain.ErrInvalidPath)
}
