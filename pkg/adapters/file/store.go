package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/seedbed/pkg/domain"
	"github.com/spf13/afero"
)

// Ext is the file extension of stored artifacts.
const Ext = ".cbor"

// DefaultDir is used when New receives an empty directory.
var DefaultDir = filepath.Join("artifacts", "cache")

// Store implements ports.ArtifactStore on an afero filesystem.
// Each artifact is one file named <key>.cbor inside Dir.
type Store struct {
	fs  afero.Fs
	dir string
}

// New creates a Store rooted at dir on fs. A nil fs selects the OS filesystem.
func New(fs afero.Fs, dir string) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{fs: fs, dir: dir}
}

// Dir returns the directory holding the artifacts.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(op, key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", domain.NewPathError(op, key, domain.ErrInvalidPath, errors.New("artifact key must be a plain file name"))
	}
	return filepath.Join(s.dir, key+Ext), nil
}

// Put writes the payload to a temporary file and renames it into place, so a
// reader never observes a partially written artifact.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	dest, err := s.path("put", key)
	if err != nil {
		return err
	}

	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to ensure artifact directory: %w", err)
	}

	tmp, err := afero.TempFile(s.fs, s.dir, "tmp-"+key+"-*.part")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Windows refuses to rename over an existing file.
	if _, err := s.fs.Stat(dest); err == nil {
		if err := s.fs.Remove(dest); err != nil {
			return fmt.Errorf("failed to remove existing artifact for overwrite: %w", err)
		}
	}

	if err := s.fs.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("failed to rename temp file into place: %w", err)
	}
	return nil
}

// Get reads the artifact file.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	p, err := s.path("get", key)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(s.fs, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("failed to read artifact file: %w", err)
	}
	return data, nil
}

// Delete removes the artifact file.
func (s *Store) Delete(ctx context.Context, key string) error {
	p, err := s.path("delete", key)
	if err != nil {
		return err
	}

	if err := s.fs.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete artifact file: %w", err)
	}
	return nil
}

// List returns the keys of all artifact files in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}

	keys := []string{}
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == Ext {
			keys = append(keys, strings.TrimSuffix(entry.Name(), Ext))
		}
	}
	slices.Sort(keys)
	return keys, nil
}
