package configstore

import (
	"fmt"

	"github.com/aretw0/seedbed/internal/logfields"
	"github.com/aretw0/seedbed/pkg/document"
	"github.com/aretw0/seedbed/pkg/domain"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const opReadConfig = "read_config"

// ReadConfig parses the YAML file at path into a Document.
//
// It fails with domain.ErrEmptyDocument when the file parses to null or to an
// empty mapping, and with domain.ErrParse (wrapping the original cause) for
// any read or syntax fault or a top-level value that is not a mapping.
func (s *Store) ReadConfig(path string) (document.Document, error) {
	doc, err := s.readConfig(path)
	s.metrics.ObserveResult(component, opReadConfig, err)
	if err != nil {
		return document.Document{}, err
	}
	s.logger.Info("yaml file loaded", logfields.Path(path))
	return doc, nil
}

func (s *Store) readConfig(path string) (document.Document, error) {
	if path == "" {
		return document.Document{}, domain.NewPathError(opReadConfig, path, domain.ErrInvalidPath, nil)
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return document.Document{}, domain.NewPathError(opReadConfig, path, domain.ErrParse, err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return document.Document{}, domain.NewPathError(opReadConfig, path, domain.ErrParse, err)
	}
	if raw == nil {
		return document.Document{}, domain.NewPathError(opReadConfig, path, domain.ErrEmptyDocument, nil)
	}

	m, ok := document.Normalize(raw).(map[string]any)
	if !ok {
		cause := fmt.Errorf("top-level value is %T, want a mapping", raw)
		return document.Document{}, domain.NewPathError(opReadConfig, path, domain.ErrParse, cause)
	}
	if len(m) == 0 {
		return document.Document{}, domain.NewPathError(opReadConfig, path, domain.ErrEmptyDocument, nil)
	}

	return document.New(m), nil
}

// ReadConfigAs reads the YAML file at path and decodes it into a new T.
// Decoding failures are reported as domain.ErrParse.
func ReadConfigAs[T any](s *Store, path string) (*T, error) {
	doc, err := s.ReadConfig(path)
	if err != nil {
		return nil, err
	}
	var out T
	if err := doc.Decode(&out); err != nil {
		return nil, domain.NewPathError(opReadConfig, path, domain.ErrParse, err)
	}
	return &out, nil
}
