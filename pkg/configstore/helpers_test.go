package configstore_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/seedbed/pkg/configstore"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// logBuffer collects log lines written by a store under test.
type logBuffer struct {
	buf bytes.Buffer
}

func (l *logBuffer) lines(level string) []string {
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(l.buf.String()), "\n") {
		if strings.Contains(line, "level="+level) {
			out = append(out, line)
		}
	}
	return out
}

func newTestStore(t *testing.T, opts ...configstore.Option) (*configstore.Store, afero.Fs, *logBuffer) {
	t.Helper()
	fs := afero.NewMemMapFs()
	logs := &logBuffer{}
	logger := slog.New(slog.NewTextHandler(&logs.buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	all := append([]configstore.Option{configstore.WithFs(fs), configstore.WithLogger(logger)}, opts...)
	return configstore.New(all...), fs, logs
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}
