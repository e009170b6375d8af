package configstore

import (
	"log/slog"

	"github.com/aretw0/seedbed/internal/logging"
	"github.com/aretw0/seedbed/pkg/codec"
	"github.com/aretw0/seedbed/pkg/observability"
	"github.com/spf13/afero"
)

const component = "configstore"

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Store performs config and artifact I/O against a filesystem.
// It holds no references to documents or artifacts after a call returns.
type Store struct {
	fs      afero.Fs
	logger  *slog.Logger
	codec   codec.Codec
	metrics *observability.Metrics
}

// Option configures a Store.
type Option func(*Store)

// WithFs sets the filesystem the store operates on (default: the OS filesystem).
func WithFs(fs afero.Fs) Option {
	return func(s *Store) {
		s.fs = fs
	}
}

// WithLogger sets the structured logger (default: no-op).
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithCodec replaces the binary artifact codec (default: CBOR).
func WithCodec(c codec.Codec) Option {
	return func(s *Store) {
		s.codec = c
	}
}

// WithMetrics records operation outcomes.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// New creates a Store.
func New(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	if s.codec == nil {
		s.codec = codec.MustCBOR()
	}
	return s
}

// Fs returns the filesystem the store operates on.
func (s *Store) Fs() afero.Fs {
	return s.fs
}
