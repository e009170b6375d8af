package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the CLI reads,
// e.g. SEEDBED_LOG_LEVEL.
const EnvPrefix = "SEEDBED"

// Cache backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Settings is the resolved CLI configuration.
type Settings struct {
	LogLevel     string `mapstructure:"log-level"`
	LogFormat    string `mapstructure:"log-format"`
	LogFile      string `mapstructure:"log-file"`
	CacheBackend string `mapstructure:"cache-backend"`
	CacheDir     string `mapstructure:"cache-dir"`
	RedisAddr    string `mapstructure:"redis-addr"`
	CacheKey     string `mapstructure:"cache-key"`
	MetricsFile  string `mapstructure:"metrics-file"`
}

// NewViper returns a viper instance that resolves settings from bound flags
// and SEEDBED_* environment variables, in that order of precedence.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "text")
	v.SetDefault("log-file", "")
	v.SetDefault("cache-backend", BackendFile)
	v.SetDefault("cache-dir", ".seedbed/cache")
	v.SetDefault("redis-addr", "localhost:6379")
	v.SetDefault("cache-key", "")
	v.SetDefault("metrics-file", "")
	return v
}

// RegisterFlags declares the persistent flags and binds each one to v.
func RegisterFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "text", "Log format (text, json)")
	flags.String("log-file", "", "Also append logs to this file, e.g. logs/running_logs.log")
	flags.String("cache-backend", BackendFile, "Artifact cache backend (file, memory, redis)")
	flags.String("cache-dir", ".seedbed/cache", "Directory of the file cache backend")
	flags.String("redis-addr", "localhost:6379", "Address of the redis cache backend")
	flags.String("cache-key", "", "AES-256 key (hex or base64) to encrypt cached artifacts")
	flags.String("metrics-file", "", "Write Prometheus metrics to this file on exit")

	for _, name := range []string{"log-level", "log-format", "log-file", "cache-backend", "cache-dir", "redis-addr", "cache-key", "metrics-file"} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// LoadSettings resolves and validates Settings from v.
func LoadSettings(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}

	s.CacheBackend = strings.ToLower(strings.TrimSpace(s.CacheBackend))
	switch s.CacheBackend {
	case BackendFile, BackendMemory, BackendRedis:
	default:
		return Settings{}, fmt.Errorf("unknown cache backend %q (want file, memory or redis)", s.CacheBackend)
	}

	s.LogFormat = strings.ToLower(strings.TrimSpace(s.LogFormat))
	switch s.LogFormat {
	case "text", "json":
	default:
		return Settings{}, fmt.Errorf("unknown log format %q (want text or json)", s.LogFormat)
	}
	return s, nil
}
