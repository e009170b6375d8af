package configstore

import (
	"github.com/aretw0/seedbed/internal/logfields"
	"github.com/aretw0/seedbed/pkg/codec"
	"github.com/aretw0/seedbed/pkg/domain"
	"github.com/spf13/afero"
)

const (
	opSaveBinary = "save_binary"
	opLoadBinary = "load_binary"
)

// SaveBinary encodes data with the store's codec and writes it to path,
// replacing any existing file and creating the parent directory when missing.
func (s *Store) SaveBinary(data any, path string) error {
	n, err := s.saveBinary(data, path)
	s.metrics.ObserveResult(component, opSaveBinary, err)
	if err != nil {
		return err
	}
	s.metrics.ObserveBytes(opSaveBinary, n)
	s.logger.Info("binary file saved", logfields.Path(path), logfields.Bytes(n))
	return nil
}

func (s *Store) saveBinary(data any, path string) (int, error) {
	if path == "" {
		return 0, domain.NewPathError(opSaveBinary, path, domain.ErrInvalidPath, nil)
	}
	payload, err := s.codec.Marshal(data)
	if err != nil {
		return 0, domain.NewPathError(opSaveBinary, path, domain.ErrEncode, err)
	}
	if err := s.writeFile(opSaveBinary, path, payload); err != nil {
		return 0, err
	}
	return len(payload), nil
}

// LoadBinary decodes the artifact at path into target, which must be a non-nil
// pointer. Decoding into the type that was saved reproduces the original value.
func (s *Store) LoadBinary(path string, target any) error {
	payload, err := s.readBinary(path)
	if err == nil {
		if decodeErr := s.codec.Unmarshal(payload, target); decodeErr != nil {
			err = domain.NewPathError(opLoadBinary, path, domain.ErrParse, decodeErr)
		}
	}
	return s.finishLoadBinary(path, len(payload), err)
}

// LoadBinaryValue decodes the artifact at path into a generic value graph
// (map[string]any, []any, int, float64, string, bool, []byte).
func (s *Store) LoadBinaryValue(path string) (any, error) {
	payload, err := s.readBinary(path)
	var v any
	if err == nil {
		var decodeErr error
		v, decodeErr = codec.DecodeValue(s.codec, payload)
		if decodeErr != nil {
			err = domain.NewPathError(opLoadBinary, path, domain.ErrParse, decodeErr)
		}
	}
	if err := s.finishLoadBinary(path, len(payload), err); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Store) readBinary(path string) ([]byte, error) {
	payload, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, domain.NewPathError(opLoadBinary, path, domain.ErrIO, err)
	}
	return payload, nil
}

func (s *Store) finishLoadBinary(path string, n int, err error) error {
	s.metrics.ObserveResult(component, opLoadBinary, err)
	if err != nil {
		return err
	}
	s.metrics.ObserveBytes(opLoadBinary, n)
	s.logger.Info("binary file loaded", logfields.Path(path), logfields.Bytes(n))
	return nil
}
