package configstore

import (
	"path/filepath"

	"github.com/aretw0/seedbed/internal/logfields"
	"github.com/aretw0/seedbed/pkg/domain"
	"github.com/aretw0/seedbed/pkg/observability"
	"github.com/spf13/afero"
)

const opEnsureDirectory = "ensure_directory"

type ensureConfig struct {
	verbose bool
}

// EnsureOption configures EnsureDirectories.
type EnsureOption func(*ensureConfig)

// WithVerbose controls whether each ensured directory is logged at info level
// (the default) or at debug level.
func WithVerbose(verbose bool) EnsureOption {
	return func(c *ensureConfig) {
		c.verbose = verbose
	}
}

// EnsureDirectories creates every directory in paths along with any missing ancestors.
//
// Paths are processed in order and the first occurrence of a string wins; later
// duplicates are logged and skipped. A path that looks like a file (it has a
// suffix) is rejected with domain.ErrInvalidPath. Failures are logged at error
// level and collected in the report; they never stop the remaining paths.
func (s *Store) EnsureDirectories(paths []string, opts ...EnsureOption) domain.Report {
	cfg := ensureConfig{verbose: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	var report domain.Report
	seen := make(map[string]struct{}, len(paths))

	for _, path := range paths {
		if _, ok := seen[path]; ok {
			s.logger.Info("directory already processed", logfields.Path(path))
			s.metrics.Observe(component, opEnsureDirectory, observability.OutcomeSkipped)
			report.Skipped = append(report.Skipped, path)
			continue
		}
		seen[path] = struct{}{}

		existed, err := s.ensureDirectory(path)
		s.metrics.ObserveResult(component, opEnsureDirectory, err)
		if err != nil {
			s.logger.Error("failed to ensure directory", logfields.Path(path), logfields.Error(err))
			report.Failed = append(report.Failed, domain.Failure{Path: path, Err: err})
			continue
		}

		if existed {
			report.Existing = append(report.Existing, path)
		} else {
			report.Created = append(report.Created, path)
		}
		if cfg.verbose {
			s.logger.Info("directory ensured", logfields.Path(path))
		} else {
			s.logger.Debug("directory ensured", logfields.Path(path))
		}
	}

	return report
}

func (s *Store) ensureDirectory(path string) (bool, error) {
	if path == "" || domain.ClassifyPath(path) == domain.KindFile {
		return false, domain.NewPathError(opEnsureDirectory, path, domain.ErrInvalidPath, nil)
	}

	clean := filepath.Clean(path)
	existed, err := afero.DirExists(s.fs, clean)
	if err != nil {
		return false, domain.NewPathError(opEnsureDirectory, path, domain.ErrIO, err)
	}
	if err := s.fs.MkdirAll(clean, dirPerm); err != nil {
		return false, domain.NewPathError(opEnsureDirectory, path, domain.ErrIO, err)
	}
	return existed, nil
}
