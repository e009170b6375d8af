package document_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aretw0/seedbed/pkg/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() document.Document {
	return document.New(map[string]any{
		"key":            "value",
		"artifacts_root": "artifacts",
		"data_ingestion": map[string]any{
			"root_dir":   "artifacts/data_ingestion",
			"source_url": "https://example.com/data.zip",
			"retries":    3,
		},
		"params": map[any]any{
			"epochs":        10,
			"learning_rate": 0.01,
			"augmentation":  true,
			"image_size":    []any{224, 224, 3},
		},
		"classes": []any{"cat", "dog"},
	})
}

func TestDocument_KeyedAndFieldAccess(t *testing.T) {
	doc := sampleDocument()

	v, ok := doc.Get("key")
	require.True(t, ok)
	assert.Equal(t, "value", v)

	s, ok := doc.String("key")
	require.True(t, ok)
	assert.Equal(t, "value", s)

	dir, ok := doc.String("data_ingestion.root_dir")
	require.True(t, ok)
	assert.Equal(t, "artifacts/data_ingestion", dir)

	_, ok = doc.Lookup("data_ingestion.missing")
	assert.False(t, ok)
	_, ok = doc.Lookup("key.nested")
	assert.False(t, ok)
}

func TestDocument_TypedGetters(t *testing.T) {
	doc := sampleDocument()

	epochs, ok := doc.Int("params.epochs")
	require.True(t, ok)
	assert.Equal(t, 10, epochs)

	lr, ok := doc.Float("params.learning_rate")
	require.True(t, ok)
	assert.InDelta(t, 0.01, lr, 1e-12)

	aug, ok := doc.Bool("params.augmentation")
	require.True(t, ok)
	assert.True(t, aug)

	size, ok := doc.Slice("params.image_size")
	require.True(t, ok)
	assert.Equal(t, []any{224, 224, 3}, size)

	classes, ok := doc.Strings("classes")
	require.True(t, ok)
	assert.Equal(t, []string{"cat", "dog"}, classes)

	_, ok = doc.Int("params.learning_rate")
	assert.False(t, ok, "fractional numbers are not ints")
	_, ok = doc.Strings("params.image_size")
	assert.False(t, ok)
}

func TestDocument_NormalizesNonStringKeys(t *testing.T) {
	doc := sampleDocument()

	params := doc.Sub("params")
	assert.Equal(t, []string{"augmentation", "epochs", "image_size", "learning_rate"}, params.Keys())
	assert.True(t, doc.Sub("missing").IsEmpty())
	assert.True(t, doc.Sub("key").IsEmpty())
}

func TestDocument_DottedKeyTakesPrecedence(t *testing.T) {
	doc := document.New(map[string]any{
		"model.name": "resnet",
		"model":      map[string]any{"name": "vgg"},
	})

	v, ok := doc.String("model.name")
	require.True(t, ok)
	assert.Equal(t, "resnet", v)
}

type ingestionConfig struct {
	RootDir   string `mapstructure:"root_dir"`
	SourceURL string `mapstructure:"source_url"`
	Retries   int    `mapstructure:"retries"`
}

func TestDocument_Decode(t *testing.T) {
	doc := sampleDocument()

	var cfg ingestionConfig
	require.NoError(t, doc.Sub("data_ingestion").Decode(&cfg))

	assert.Equal(t, ingestionConfig{
		RootDir:   "artifacts/data_ingestion",
		SourceURL: "https://example.com/data.zip",
		Retries:   3,
	}, cfg)
}

func TestDocument_DecodeDuration(t *testing.T) {
	doc := document.New(map[string]any{"timeout": "1m30s"})

	var cfg struct {
		Timeout time.Duration `mapstructure:"timeout"`
	}
	require.NoError(t, doc.Decode(&cfg))
	assert.Equal(t, 90*time.Second, cfg.Timeout)
}

func TestDocument_DecodeRejectsNonPointer(t *testing.T) {
	doc := sampleDocument()
	var cfg ingestionConfig
	assert.Error(t, doc.Decode(cfg))
}

func TestDocument_MarshalJSON(t *testing.T) {
	doc := document.New(map[string]any{"a": 1, "b": []any{"x"}})

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1, "b": ["x"]}`, string(data))

	var empty document.Document
	data, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestNormalize_JSONNumbers(t *testing.T) {
	got := document.Normalize(map[string]any{
		"int":   json.Number("42"),
		"float": json.Number("0.5"),
		"big":   json.Number("1e400"),
		"list":  []any{json.Number("1"), json.Number("2.5")},
	})

	m := got.(map[string]any)
	assert.Equal(t, 42, m["int"])
	assert.Equal(t, 0.5, m["float"])
	assert.Equal(t, "1e400", m["big"])
	assert.Equal(t, []any{1, 2.5}, m["list"])
}
