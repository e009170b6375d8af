package scaffold_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aretw0/seedbed/pkg/adapters/memory"
	"github.com/aretw0/seedbed/pkg/domain"
	"github.com/aretw0/seedbed/pkg/observability"
	"github.com/aretw0/seedbed/pkg/scaffold"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) count(substr string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Count(b.buf.String(), substr)
}

func newScaffolder(t *testing.T, fs afero.Fs, opts ...scaffold.Option) (*scaffold.Scaffolder, *syncBuffer) {
	t.Helper()
	logs := &syncBuffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	all := append([]scaffold.Option{scaffold.WithFs(fs), scaffold.WithLogger(logger)}, opts...)
	return scaffold.New(all...), logs
}

func assertDir(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	ok, err := afero.DirExists(fs, path)
	require.NoError(t, err)
	assert.True(t, ok, "%s should be a directory", path)
}

func assertEmptyFile(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	info, err := fs.Stat(path)
	require.NoError(t, err, "%s should exist", path)
	assert.False(t, info.IsDir(), "%s should be a file", path)
	assert.Zero(t, info.Size(), "%s should be empty", path)
}

func TestMaterialize_Classification(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, _ := newScaffolder(t, fs)

	report := s.Materialize(context.Background(), []string{"a/b/config.yaml", "a/c"})

	require.True(t, report.OK(), "unexpected failures: %v", report.Err())
	assert.Equal(t, []string{"a/b/config.yaml", "a/c"}, report.Created)
	assertDir(t, fs, "a")
	assertDir(t, fs, "a/b")
	assertEmptyFile(t, fs, "a/b/config.yaml")
	assertDir(t, fs, "a/c")
}

func TestMaterialize_SuffixlessNamesAreDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, _ := newScaffolder(t, fs)

	report := s.Materialize(context.Background(), []string{".github/workflows/.gitkeep", "docker/Dockerfile", "data/raw.v2/"})
	require.True(t, report.OK())

	assertDir(t, fs, ".github/workflows/.gitkeep")
	assertDir(t, fs, "docker/Dockerfile")
	assertDir(t, fs, "data/raw.v2")
}

func TestMaterialize_Idempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, logs := newScaffolder(t, fs)
	ctx := context.Background()
	layout := scaffold.DefaultLayout("demo")

	first := s.Materialize(ctx, layout)
	require.True(t, first.OK())
	assert.Len(t, first.Created, len(layout))

	// Content written between runs must survive the second run.
	require.NoError(t, afero.WriteFile(fs, "params.yaml", []byte("lr: 0.1\n"), 0o644))

	second := s.Materialize(ctx, layout)
	assert.True(t, second.OK())
	assert.Empty(t, second.Created)
	assert.Equal(t, layout, second.Existing)
	assert.Equal(t, len(layout), logs.count("msg=\"already exists\""))
	assert.Zero(t, logs.count("level=ERROR"))

	data, err := afero.ReadFile(fs, "params.yaml")
	require.NoError(t, err)
	assert.Equal(t, "lr: 0.1\n", string(data))
}

func TestMaterialize_CreatesParentOnce(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, logs := newScaffolder(t, fs)

	report := s.Materialize(context.Background(), []string{"pkg/a.py", "pkg/b.py", "pkg/c.py"})
	require.True(t, report.OK())
	assert.Equal(t, 1, logs.count("creating parent directory"))
}

func TestMaterialize_OneInfoLinePerCreatedPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, logs := newScaffolder(t, fs)
	paths := []string{"src/model/train.py", "config/config.yaml", "artifacts/checkpoints"}

	report := s.Materialize(context.Background(), paths)
	require.True(t, report.OK())
	assert.Equal(t, paths, report.Created)
	assert.Equal(t, len(paths), logs.count("level=INFO"))
	assert.Equal(t, 3, logs.count("level=DEBUG msg=\"creating parent directory\""))
}

func TestMaterialize_FaultIsolation(t *testing.T) {
	root := t.TempDir()
	fs := afero.NewBasePathFs(afero.NewOsFs(), root)
	require.NoError(t, afero.WriteFile(fs, "blocker", []byte("x"), 0o644))

	s, logs := newScaffolder(t, fs)
	report := s.Materialize(context.Background(), []string{"ok_before", "blocker/child.txt", "", "ok_after/file.md"})

	assert.Equal(t, []string{"ok_before", "ok_after/file.md"}, report.Created)
	assert.Equal(t, []string{"blocker/child.txt", ""}, report.FailedPaths())
	assert.ErrorIs(t, report.Failed[0].Err, domain.ErrIO)
	assert.ErrorIs(t, report.Failed[1].Err, domain.ErrInvalidPath)
	assert.Equal(t, 2, logs.count("level=ERROR"))

	_, err := os.Stat(filepath.Join(root, "ok_after", "file.md"))
	assert.NoError(t, err)
}

func TestMaterialize_CanceledContext(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, _ := newScaffolder(t, fs)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := s.Materialize(ctx, []string{"a", "b.txt"})
	assert.Empty(t, report.Created)
	require.Len(t, report.Failed, 2)
	assert.ErrorIs(t, report.Failed[0].Err, context.Canceled)

	exists, err := afero.Exists(fs, "a")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMaterialize_Metrics(t *testing.T) {
	m, err := observability.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	fs := afero.NewMemMapFs()
	s, _ := newScaffolder(t, fs, scaffold.WithMetrics(m))
	ctx := context.Background()

	s.Materialize(ctx, []string{"x", "y.txt"})
	s.Materialize(ctx, []string{"x", ""})

	ops := m.Operations
	assert.Equal(t, 2.0, testutil.ToFloat64(ops.WithLabelValues("scaffold", "materialize", observability.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(ops.WithLabelValues("scaffold", "materialize", observability.OutcomeSkipped)))
	assert.Equal(t, 1.0, testutil.ToFloat64(ops.WithLabelValues("scaffold", "materialize", observability.OutcomeError)))
}

func TestMaterialize_LockerSerializesConcurrentRuns(t *testing.T) {
	fs := afero.NewMemMapFs()
	locker := memory.NewLocker()
	layout := scaffold.DefaultLayout("shared")

	const workers = 4
	reports := make([]domain.Report, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, _ := newScaffolder(t, fs, scaffold.WithLocker(locker))
			reports[i] = s.Materialize(context.Background(), layout)
		}(i)
	}
	wg.Wait()

	// Every path is created exactly once across all workers.
	created := map[string]int{}
	for _, r := range reports {
		assert.True(t, r.OK(), "unexpected failures: %v", r.Err())
		for _, p := range r.Created {
			created[p]++
		}
	}
	for _, p := range layout {
		assert.Equal(t, 1, created[p], "path %s", p)
	}
}
