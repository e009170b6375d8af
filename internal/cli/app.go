package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/seedbed/internal/logging"
	"github.com/aretw0/seedbed/pkg/adapters/file"
	"github.com/aretw0/seedbed/pkg/adapters/memory"
	"github.com/aretw0/seedbed/pkg/adapters/redis"
	"github.com/aretw0/seedbed/pkg/artifact"
	"github.com/aretw0/seedbed/pkg/configstore"
	"github.com/aretw0/seedbed/pkg/observability"
	"github.com/aretw0/seedbed/pkg/persistence/middleware"
	"github.com/aretw0/seedbed/pkg/ports"
	"github.com/aretw0/seedbed/pkg/scaffold"
	"github.com/prometheus/client_golang/prometheus"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
)

// App holds the collaborators shared by every command of one CLI invocation.
type App struct {
	Settings Settings
	Logger   *slog.Logger
	Metrics  *observability.Metrics

	registry *prometheus.Registry
	closers  []io.Closer
}

// NewApp builds the logger and metrics described by s. Logs go to logOut
// (stderr when nil) and to s.LogFile when set.
func NewApp(s Settings, logOut io.Writer) (*App, error) {
	level, err := logging.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, err
	}
	logger, logCloser, err := logging.New(logging.Options{
		Level:  level,
		Format: s.LogFormat,
		File:   s.LogFile,
		Output: logOut,
	})
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(registry)
	if err != nil {
		_ = logCloser.Close()
		return nil, err
	}

	return &App{
		Settings: s,
		Logger:   logger,
		Metrics:  metrics,
		registry: registry,
		closers:  []io.Closer{logCloser},
	}, nil
}

// Registry exposes the metrics registry.
func (a *App) Registry() *prometheus.Registry {
	return a.registry
}

// ConfigStore returns a store on fs, or on the OS filesystem when fs is nil.
func (a *App) ConfigStore(fs afero.Fs) *configstore.Store {
	opts := []configstore.Option{
		configstore.WithLogger(a.Logger),
		configstore.WithMetrics(a.Metrics),
	}
	if fs != nil {
		opts = append(opts, configstore.WithFs(fs))
	}
	return configstore.New(opts...)
}

// Scaffolder returns a scaffolder rooted at root. A nil locker disables locking.
func (a *App) Scaffolder(root string, locker ports.Locker) *scaffold.Scaffolder {
	fs := afero.NewOsFs()
	if root != "" && filepath.Clean(root) != "." {
		fs = afero.NewBasePathFs(fs, root)
	}
	opts := []scaffold.Option{
		scaffold.WithFs(fs),
		scaffold.WithLogger(a.Logger),
		scaffold.WithMetrics(a.Metrics),
	}
	if locker != nil {
		opts = append(opts, scaffold.WithLocker(locker))
	}
	return scaffold.New(opts...)
}

// RedisLocker connects to the configured redis address and returns a path locker.
func (a *App) RedisLocker(ctx context.Context) (ports.Locker, error) {
	client, err := a.redisClient(ctx)
	if err != nil {
		return nil, err
	}
	return redis.NewLocker(client, redis.DefaultPrefix), nil
}

func (a *App) redisClient(ctx context.Context) (*backend.Client, error) {
	client := backend.NewClient(&backend.Options{Addr: a.Settings.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", a.Settings.RedisAddr, err)
	}
	a.closers = append(a.closers, client)
	return client, nil
}

// OpenCache builds the artifact cache for the configured backend, wrapped in
// the metrics middleware and, when a cache key is set, in encryption.
func (a *App) OpenCache(ctx context.Context) (*artifact.Cache, error) {
	var store ports.ArtifactStore
	switch a.Settings.CacheBackend {
	case BackendMemory:
		store = memory.NewStore()
	case BackendRedis:
		client, err := a.redisClient(ctx)
		if err != nil {
			return nil, err
		}
		store = redis.NewFromClient(client)
	default:
		store = file.New(afero.NewOsFs(), a.Settings.CacheDir)
	}

	mws := []middleware.Middleware{middleware.NewMetricsMiddleware(a.Metrics)}
	if a.Settings.CacheKey != "" {
		key, err := middleware.ParseKey(a.Settings.CacheKey)
		if err != nil {
			return nil, err
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}))
	}

	a.Logger.Debug("artifact cache opened", slog.String("backend", a.Settings.CacheBackend))
	return artifact.New(middleware.Chain(store, mws...), artifact.WithLogger(a.Logger)), nil
}

// Close writes the metrics textfile when configured and releases every
// connection and file the app opened.
func (a *App) Close() error {
	var errs []error
	if a.Settings.MetricsFile != "" {
		errs = append(errs, observability.WriteTextfile(a.Settings.MetricsFile, a.registry))
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}
