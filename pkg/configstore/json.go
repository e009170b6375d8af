package configstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"

	"github.com/aretw0/seedbed/internal/logfields"
	"github.com/aretw0/seedbed/pkg/document"
	"github.com/aretw0/seedbed/pkg/domain"
	"github.com/spf13/afero"
)

const (
	opSaveJSON = "save_json"
	opLoadJSON = "load_json"

	jsonIndent = "    "
)

var errNotObject = errors.New("value is not a JSON object")

// SaveJSON writes data to path as JSON indented with four spaces, replacing
// any existing file and creating the parent directory when missing.
// data must encode to a JSON object: a map, a struct or a document.Document.
func (s *Store) SaveJSON(path string, data any) error {
	err := s.saveJSON(path, data)
	s.metrics.ObserveResult(component, opSaveJSON, err)
	if err != nil {
		return err
	}
	s.logger.Info("json file saved", logfields.Path(path))
	return nil
}

func (s *Store) saveJSON(path string, data any) error {
	if path == "" {
		return domain.NewPathError(opSaveJSON, path, domain.ErrInvalidPath, nil)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", jsonIndent)
	if err := enc.Encode(keepFloats(data)); err != nil {
		return domain.NewPathError(opSaveJSON, path, domain.ErrEncode, err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("{")) {
		return domain.NewPathError(opSaveJSON, path, domain.ErrEncode, errNotObject)
	}

	return s.writeFile(opSaveJSON, path, buf.Bytes())
}

// LoadJSON parses the JSON object stored at path into a Document.
// An empty object is valid. Integer literals decode as int, others as float64.
func (s *Store) LoadJSON(path string) (document.Document, error) {
	doc, err := s.loadJSON(path)
	s.metrics.ObserveResult(component, opLoadJSON, err)
	if err != nil {
		return document.Document{}, err
	}
	s.logger.Info("json file loaded", logfields.Path(path))
	return doc, nil
}

func (s *Store) loadJSON(path string) (document.Document, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return document.Document{}, domain.NewPathError(opLoadJSON, path, domain.ErrIO, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return document.Document{}, domain.NewPathError(opLoadJSON, path, domain.ErrParse, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		cause := errors.New("unexpected data after top-level value")
		return document.Document{}, domain.NewPathError(opLoadJSON, path, domain.ErrParse, cause)
	}

	m, ok := document.Normalize(raw).(map[string]any)
	if !ok {
		cause := fmt.Errorf("%w: got %T", errNotObject, raw)
		return document.Document{}, domain.NewPathError(opLoadJSON, path, domain.ErrParse, cause)
	}
	return document.New(m), nil
}

// maxPlainFloat is the magnitude from which encoding/json switches to
// exponent notation, which already reads back as a float.
const maxPlainFloat = 1e21

// keepFloats rewrites integral floats in generic value graphs as numbers with
// a fractional part, so 1.0 is written as 1.0 and loads back as float64.
// Structs and other typed values are passed through unchanged.
func keepFloats(v any) any {
	switch val := v.(type) {
	case document.Document:
		return keepFloats(val.Map())
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = keepFloats(item)
		}
		return out
	case map[string]float64:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = keepFloats(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = keepFloats(item)
		}
		return out
	case []float64:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = keepFloats(item)
		}
		return out
	case float32:
		if f := float64(val); math.Trunc(f) == f {
			return keepFloats(f)
		}
		return val
	case float64:
		if math.Trunc(val) != val || math.Abs(val) >= maxPlainFloat {
			return val
		}
		return json.Number(strconv.FormatFloat(val, 'f', 1, 64))
	default:
		return v
	}
}

// writeFile creates the parent directory of path and replaces its content.
func (s *Store) writeFile(op, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
			return domain.NewPathError(op, path, domain.ErrIO, err)
		}
	}
	if err := afero.WriteFile(s.fs, path, data, filePerm); err != nil {
		return domain.NewPathError(op, path, domain.ErrIO, err)
	}
	return nil
}
