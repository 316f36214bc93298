package indexer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mvp-joe/docuai/internal/indexer/parsers"
	"github.com/mvp-joe/docuai/internal/metadata"
	"golang.org/x/sync/errgroup"
)

// Indexer discovers source files and extracts their structural metadata.
type Indexer interface {
	// Discover returns the source files under the configured root.
	Discover(ctx context.Context) ([]string, error)

	// Extract parses files in order. Per-file failures are recorded in the
	// result's Skipped list and never abort the batch; only context
	// cancellation does.
	Extract(ctx context.Context, files []string) (*Result, error)

	// Index runs Discover followed by Extract.
	Index(ctx context.Context) (*Result, error)
}

// Parser extracts structured information from source code files.
type Parser interface {
	// ParseFile extracts code structure from a source file.
	ParseFile(ctx context.Context, filePath string) (*metadata.FileMetadata, error)

	// ForFile returns the language parser for filePath, or an error wrapping
	// parsers.ErrUnsupportedFileType.
	ForFile(filePath string) (parsers.Parser, error)

	// Supports reports whether filePath has a supported extension.
	Supports(filePath string) bool
}

// Config contains configuration for the indexer.
type Config struct {
	// Root directory of the codebase to index
	RootDir string

	// Paths configuration
	IncludePatterns []string
	IgnorePatterns  []string

	// Workers is the number of files parsed concurrently. 1 parses strictly
	// sequentially.
	Workers int

	// MaxFileSizeMB skips larger files. 0 disables the limit.
	MaxFileSizeMB int
}

// DefaultIgnorePatterns are the directories never worth documenting.
var DefaultIgnorePatterns = []string{
	".git/**",
	".venv/**",
	"venv/**",
	"node_modules/**",
	"__pycache__/**",
	"dist/**",
	"build/**",
	".idea/**",
	".vscode/**",
	"**/.git/**",
	"**/.venv/**",
	"**/venv/**",
	"**/node_modules/**",
	"**/__pycache__/**",
	"**/dist/**",
	"**/build/**",
	"**/.idea/**",
	"**/.vscode/**",
}

// DefaultIncludePatterns matches every extension a parser handles.
func DefaultIncludePatterns() []string {
	exts := SupportedExtensions()
	patterns := make([]string, 0, len(exts))
	for _, ext := range exts {
		patterns = append(patterns, "**/*"+ext)
	}
	return patterns
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig(rootDir string) *Config {
	return &Config{
		RootDir:         rootDir,
		IncludePatterns: DefaultIncludePatterns(),
		IgnorePatterns:  append([]string(nil), DefaultIgnorePatterns...),
		Workers:         1,
		MaxFileSizeMB:   10,
	}
}

// SkippedFile records a file that produced no metadata and why.
type SkippedFile struct {
	Path string `json:"path" yaml:"path"`
	Err  error  `json:"-" yaml:"-"`
}

// Reason returns the skip cause as text.
func (s SkippedFile) Reason() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// Result is the outcome of a batch extraction.
type Result struct {
	// Files holds one record per successfully parsed file, in input order.
	Files   []*metadata.FileMetadata
	Skipped []SkippedFile
	Stats   ProcessingStats
}

// ProcessingStats tracks statistics about the extraction process.
type ProcessingStats struct {
	FilesDiscovered       int     `json:"files_discovered" yaml:"files_discovered"`
	FilesParsed           int     `json:"files_parsed" yaml:"files_parsed"`
	FilesSkipped          int     `json:"files_skipped" yaml:"files_skipped"`
	FilesDegraded         int     `json:"files_degraded" yaml:"files_degraded"` // parsed with no classes or functions
	TotalClasses          int     `json:"total_classes" yaml:"total_classes"`
	TotalFunctions        int     `json:"total_functions" yaml:"total_functions"`
	ProcessingTimeSeconds float64 `json:"processing_time_seconds" yaml:"processing_time_seconds"`
}

// ErrFileTooLarge is recorded for files above Config.MaxFileSizeMB.
var ErrFileTooLarge = errors.New("file exceeds size limit")

type indexer struct {
	config   *Config
	parser   Parser
	progress ProgressReporter
}

// New creates an indexer. A nil progress reporter disables progress output.
func New(config *Config, progress ProgressReporter) Indexer {
	return NewWithParser(config, NewParser(), progress)
}

// NewWithParser creates an indexer that uses the given parser.
func NewWithParser(config *Config, parser Parser, progress ProgressReporter) Indexer {
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}
	return &indexer{
		config:   config,
		parser:   parser,
		progress: progress,
	}
}

func (idx *indexer) Discover(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx.progress.OnDiscoveryStart()

	discovery, err := NewFileDiscovery(idx.config.RootDir, idx.config.IncludePatterns, idx.config.IgnorePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to create file discovery: %w", err)
	}

	all, err := discovery.DiscoverFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}

	// Include patterns may be broader than what the parsers handle.
	files := make([]string, 0, len(all))
	for _, f := range all {
		if idx.parser.Supports(f) {
			files = append(files, f)
		}
	}

	idx.progress.OnDiscoveryComplete(len(files))
	return files, nil
}

func (idx *indexer) Index(ctx context.Context) (*Result, error) {
	files, err := idx.Discover(ctx)
	if err != nil {
		return nil, err
	}
	return idx.Extract(ctx, files)
}

func (idx *indexer) Extract(ctx context.Context, files []string) (*Result, error) {
	start := time.Now()
	idx.progress.OnFileProcessingStart(len(files))

	parsed := make([]*metadata.FileMetadata, len(files))
	failures := make([]error, len(files))

	// Progress callbacks are serialized so reporters need no locking.
	var mu sync.Mutex
	report := func(i int) {
		mu.Lock()
		defer mu.Unlock()
		if failures[i] != nil {
			idx.progress.OnFileSkipped(files[i], failures[i])
		}
		idx.progress.OnFileProcessed(files[i])
	}

	workers := idx.config.Workers
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fm, err := idx.parseOne(gctx, files[i])
			if err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
			parsed[i], failures[i] = fm, err
			report(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		Files:   make([]*metadata.FileMetadata, 0, len(files)),
		Skipped: []SkippedFile{},
	}
	for i, f := range files {
		if failures[i] != nil {
			result.Skipped = append(result.Skipped, SkippedFile{Path: f, Err: failures[i]})
			continue
		}
		fm := parsed[i]
		result.Files = append(result.Files, fm)
		result.Stats.TotalClasses += len(fm.Classes)
		result.Stats.TotalFunctions += len(fm.Functions)
		if fm.Empty() {
			result.Stats.FilesDegraded++
		}
	}

	result.Stats.FilesDiscovered = len(files)
	result.Stats.FilesParsed = len(result.Files)
	result.Stats.FilesSkipped = len(result.Skipped)
	result.Stats.ProcessingTimeSeconds = time.Since(start).Seconds()

	idx.progress.OnComplete(&result.Stats)
	return result, nil
}

// parseOne checks the size limit and parses a single file.
func (idx *indexer) parseOne(ctx context.Context, filePath string) (*metadata.FileMetadata, error) {
	if _, err := idx.parser.ForFile(filePath); err != nil {
		return nil, err
	}

	if limit := idx.config.MaxFileSizeMB; limit > 0 {
		info, err := os.Stat(filePath)
		if err != nil {
			return nil, &parsers.IOError{Path: filePath, Err: err}
		}
		if info.Size() > int64(limit)*1024*1024 {
			return nil, fmt.Errorf("%w: %s is %d bytes", ErrFileTooLarge, filePath, info.Size())
		}
	}

	return idx.parser.ParseFile(ctx, filePath)
}
