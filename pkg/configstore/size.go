package configstore

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"

	"github.com/aretw0/seedbed/internal/logfields"
	"github.com/aretw0/seedbed/pkg/domain"
)

const opFileSize = "file_size"

// FileSizeKB returns the size of path in kibibytes as a display string such as "~ 2 KB".
// The size is rounded to the nearest integer, halves to even.
func (s *Store) FileSizeKB(path string) (string, error) {
	size, err := s.fileSize(path)
	s.metrics.ObserveResult(component, opFileSize, err)
	if err != nil {
		return "", err
	}
	kb := int64(math.RoundToEven(float64(size) / 1024))
	s.logger.Info("file size measured", logfields.Path(path), slog.Int64("kb", kb))
	return fmt.Sprintf("~ %d KB", kb), nil
}

func (s *Store) fileSize(path string) (int64, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, domain.NewPathError(opFileSize, path, domain.ErrNotFound, err)
		}
		return 0, domain.NewPathError(opFileSize, path, domain.ErrIO, err)
	}
	return info.Size(), nil
}
