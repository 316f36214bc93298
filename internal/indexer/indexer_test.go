package indexer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mvp-joe/docuai/internal/indexer/parsers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Indexer:
// - Discovery honours include patterns, ignore patterns and the default ignore dirs
// - Discovery drops files no parser supports
// - Extract keeps input order, sequentially and with several workers
// - Per-file failures (syntax, unsupported, too large, missing) are skipped, not fatal
// - Degraded JavaScript files count as parsed
// - Progress callbacks fire once per file, skipped ones included
// - A canceled context aborts the batch

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func setupRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "main.py", "def main():\n    pass\n")
	writeFile(t, root, "pkg/util.py", "class Util:\n    def run(self):\n        pass\n")
	writeFile(t, root, "web/app.js", "export function app() {}\n")
	writeFile(t, root, "web/types.ts", "export class Store {}\n")
	writeFile(t, root, "README.md", "# readme\n")
	writeFile(t, root, "node_modules/lib/index.js", "function vendored() {}\n")
	writeFile(t, root, "web/node_modules/x.js", "function vendored() {}\n")
	writeFile(t, root, ".venv/lib/site.py", "def site():\n    pass\n")
	writeFile(t, root, "__pycache__/main.py", "def cached():\n    pass\n")
	writeFile(t, root, ".docuai/config.yml", "llm:\n  model: x\n")
	return root
}

func TestFileDiscovery_DefaultConfig(t *testing.T) {
	t.Parallel()

	root := setupRepo(t)
	idx := New(DefaultConfig(root), nil)

	files, err := idx.Discover(context.Background())
	require.NoError(t, err)

	rel := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.Equal(t, []string{"main.py", "pkg/util.py", "web/app.js", "web/types.ts"}, rel)
}

func TestFileDiscovery_CustomPatterns(t *testing.T) {
	t.Parallel()

	root := setupRepo(t)

	fd, err := NewFileDiscovery(root, []string{"**/*.py"}, []string{"pkg/**"})
	require.NoError(t, err)

	files, err := fd.DiscoverFiles()
	require.NoError(t, err)

	// No default ignores here, so .venv and __pycache__ are included.
	assert.Contains(t, files, filepath.Join(root, "main.py"))
	assert.Contains(t, files, filepath.Join(root, ".venv", "lib", "site.py"))
	assert.NotContains(t, files, filepath.Join(root, "pkg", "util.py"))
}

func TestFileDiscovery_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewFileDiscovery(t.TempDir(), []string{"[unclosed"}, nil)
	assert.Error(t, err)
}

func TestIndexer_ExtractKeepsOrderAndSkipsFailures(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	files := []string{
		writeFile(t, root, "a.py", "def a():\n    pass\n"),
		writeFile(t, root, "b.py", "def broken(:\n"),
		writeFile(t, root, "c.js", "function c(x) {}\n"),
		writeFile(t, root, "d.rb", "def d; end\n"),
		writeFile(t, root, "e.js", "function (((\n"),
		filepath.Join(root, "missing.py"),
		writeFile(t, root, "f.ts", "class F { g() {} }\n"),
	}

	for _, workers := range []int{1, 4} {
		cfg := DefaultConfig(root)
		cfg.Workers = workers

		result, err := New(cfg, nil).Extract(context.Background(), files)
		require.NoError(t, err)

		var parsed []string
		for _, fm := range result.Files {
			parsed = append(parsed, filepath.Base(fm.FilePath))
		}
		assert.Equal(t, []string{"a.py", "c.js", "e.js", "f.ts"}, parsed, "workers=%d", workers)

		require.Len(t, result.Skipped, 3)
		assert.Equal(t, "b.py", filepath.Base(result.Skipped[0].Path))
		assert.True(t, errors.Is(result.Skipped[0].Err, parsers.ErrSyntax))
		assert.Equal(t, "d.rb", filepath.Base(result.Skipped[1].Path))
		assert.True(t, errors.Is(result.Skipped[1].Err, parsers.ErrUnsupportedFileType))
		assert.Equal(t, "missing.py", filepath.Base(result.Skipped[2].Path))
		assert.True(t, errors.Is(result.Skipped[2].Err, parsers.ErrIO))
		assert.NotEmpty(t, result.Skipped[2].Reason())

		assert.Equal(t, 7, result.Stats.FilesDiscovered)
		assert.Equal(t, 4, result.Stats.FilesParsed)
		assert.Equal(t, 3, result.Stats.FilesSkipped)
		assert.Equal(t, 1, result.Stats.FilesDegraded)
		assert.Equal(t, 1, result.Stats.TotalClasses)
		assert.Equal(t, 2, result.Stats.TotalFunctions)
	}
}

func TestIndexer_FileTooLarge(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	big := make([]byte, 1024*1024+1)
	for i := range big {
		big[i] = '#'
	}
	path := writeFile(t, root, "big.py", string(big))

	cfg := DefaultConfig(root)
	cfg.MaxFileSizeMB = 1

	result, err := New(cfg, nil).Extract(context.Background(), []string{path})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	require.Len(t, result.Skipped, 1)
	assert.True(t, errors.Is(result.Skipped[0].Err, ErrFileTooLarge))
}

type recordingReporter struct {
	NoOpProgressReporter
	mu        sync.Mutex
	total     int
	processed []string
	skipped   []string
	completed *ProcessingStats
}

func (r *recordingReporter) OnFileProcessingStart(totalFiles int) { r.total = totalFiles }

func (r *recordingReporter) OnFileProcessed(fileName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processed = append(r.processed, fileName)
}

func (r *recordingReporter) OnFileSkipped(fileName string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped = append(r.skipped, fileName)
}

func (r *recordingReporter) OnComplete(stats *ProcessingStats) { r.completed = stats }

func TestIndexer_Index(t *testing.T) {
	t.Parallel()

	root := setupRepo(t)
	writeFile(t, root, "bad.py", "class Foo\n")

	reporter := &recordingReporter{}
	cfg := DefaultConfig(root)
	cfg.Workers = 2

	result, err := New(cfg, reporter).Index(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, reporter.total)
	assert.Len(t, reporter.processed, 5)
	assert.Equal(t, []string{filepath.Join(root, "bad.py")}, reporter.skipped)
	require.NotNil(t, reporter.completed)
	assert.Equal(t, 4, reporter.completed.FilesParsed)
	assert.Len(t, result.Files, 4)
}

func TestIndexer_Canceled(t *testing.T) {
	t.Parallel()

	root := setupRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(DefaultConfig(root), nil).Index(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
