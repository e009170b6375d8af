package scaffold

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/seedbed/internal/logfields"
	"github.com/aretw0/seedbed/internal/logging"
	"github.com/aretw0/seedbed/pkg/domain"
	"github.com/aretw0/seedbed/pkg/observability"
	"github.com/aretw0/seedbed/pkg/ports"
	"github.com/spf13/afero"
)

const (
	component     = "scaffold"
	opMaterialize = "materialize"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// DefaultLockTTL bounds how long a crashed holder keeps a path locked.
const DefaultLockTTL = 10 * time.Second

// Scaffolder creates files and directories on a filesystem.
// It keeps no state between Materialize calls.
type Scaffolder struct {
	fs      afero.Fs
	logger  *slog.Logger
	metrics *observability.Metrics
	locker  ports.Locker
	lockTTL time.Duration
}

// Option configures a Scaffolder.
type Option func(*Scaffolder)

// WithFs sets the filesystem (default: the OS filesystem).
func WithFs(fs afero.Fs) Option {
	return func(s *Scaffolder) {
		s.fs = fs
	}
}

// WithLogger sets the structured logger (default: no-op).
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scaffolder) {
		s.logger = logger
	}
}

// WithMetrics records one outcome per materialized path.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Scaffolder) {
		s.metrics = m
	}
}

// WithLocker serializes the existence check and the create of each path
// through locker, keyed by the cleaned path.
func WithLocker(locker ports.Locker) Option {
	return func(s *Scaffolder) {
		s.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(s *Scaffolder) {
		s.lockTTL = ttl
	}
}

// New creates a Scaffolder.
func New(opts ...Option) *Scaffolder {
	s := &Scaffolder{lockTTL: DefaultLockTTL}
	for _, opt := range opts {
		opt(s)
	}
	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	return s
}

// Materialize creates every path in order and returns what happened to each.
//
// Existing targets are skipped. Otherwise the parent directory is created
// unless this call already did, then the target itself: a directory for a
// suffix-less path, an empty file for a path with a suffix. Once ctx is done
// the remaining paths are recorded as failed with the context error.
func (s *Scaffolder) Materialize(ctx context.Context, paths []string) domain.Report {
	var report domain.Report
	dirs := make(map[string]struct{})

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			report.Failed = append(report.Failed, domain.Failure{Path: path, Err: err})
			continue
		}

		existed, err := s.materializeLocked(ctx, path, dirs)
		switch {
		case err != nil:
			s.metrics.Observe(component, opMaterialize, observability.OutcomeError)
			s.logger.Error("failed to materialize path", logfields.Path(path), logfields.Error(err))
			report.Failed = append(report.Failed, domain.Failure{Path: path, Err: err})
		case existed:
			s.metrics.Observe(component, opMaterialize, observability.OutcomeSkipped)
			s.logger.Info("already exists", logfields.Path(path))
			report.Existing = append(report.Existing, path)
		default:
			s.metrics.Observe(component, opMaterialize, observability.OutcomeOK)
			report.Created = append(report.Created, path)
		}
	}

	return report
}

func (s *Scaffolder) materializeLocked(ctx context.Context, path string, dirs map[string]struct{}) (bool, error) {
	if path == "" {
		return false, domain.NewPathError(opMaterialize, path, domain.ErrInvalidPath, nil)
	}
	if s.locker == nil {
		return s.materialize(path, dirs)
	}

	unlock, err := s.locker.Lock(ctx, filepath.Clean(path), s.lockTTL)
	if err != nil {
		return false, domain.NewPathError(opMaterialize, path, domain.ErrIO, err)
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("failed to release path lock", logfields.Path(path), logfields.Error(err))
		}
	}()
	return s.materialize(path, dirs)
}

func (s *Scaffolder) materialize(path string, dirs map[string]struct{}) (bool, error) {
	kind := domain.ClassifyPath(path)
	clean := filepath.Clean(path)

	exists, err := afero.Exists(s.fs, clean)
	if err != nil {
		return false, domain.NewPathError(opMaterialize, path, domain.ErrIO, err)
	}
	if exists {
		return true, nil
	}

	parent := filepath.Dir(clean)
	if _, ok := dirs[parent]; !ok && parent != "." {
		s.logger.Debug("creating parent directory", logfields.Path(parent), slog.String("for", path))
		if err := s.fs.MkdirAll(parent, dirPerm); err != nil {
			return false, domain.NewPathError(opMaterialize, path, domain.ErrIO, err)
		}
		dirs[parent] = struct{}{}
	}

	if kind == domain.KindDirectory {
		s.logger.Info("creating directory", logfields.Path(path))
		if err := s.fs.MkdirAll(clean, dirPerm); err != nil {
			return false, domain.NewPathError(opMaterialize, path, domain.ErrIO, err)
		}
		dirs[clean] = struct{}{}
		return false, nil
	}

	s.logger.Info("creating file", logfields.Path(path))
	f, err := s.fs.OpenFile(clean, os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return false, domain.NewPathError(opMaterialize, path, domain.ErrIO, err)
	}
	if err := f.Close(); err != nil {
		return false, domain.NewPathError(opMaterialize, path, domain.ErrIO, err)
	}
	return false, nil
}
