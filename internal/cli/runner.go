package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/docuai/internal/agent"
	"github.com/mvp-joe/docuai/internal/config"
	"github.com/mvp-joe/docuai/internal/git"
	"github.com/mvp-joe/docuai/internal/indexer"
	"github.com/spf13/cobra"
)

// runner carries the collaborators of the generate and analyze commands.
type runner struct {
	cfg      *config.Config
	llm      agent.LLM
	git      git.Operations
	out      io.Writer
	progress indexer.ProgressReporter
}

// newRunner loads configuration and builds the configured LLM backend.
func newRunner(cmd *cobra.Command) (*runner, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	llm, err := agent.NewLLM(cmd.Context(), cfg.LLM)
	if err != nil {
		return nil, err
	}

	return &runner{
		cfg:      cfg,
		llm:      llm,
		git:      git.NewOperations(),
		out:      cmd.OutOrStdout(),
		progress: NewCLIProgressReporter(cmd.ErrOrStderr()),
	}, nil
}

func (r *runner) success(format string, args ...interface{}) {
	printStyled(r.out, successStyle, format, args...)
}

func (r *runner) info(format string, args ...interface{}) {
	printStyled(r.out, infoStyle, format, args...)
}

func (r *runner) warn(format string, args ...interface{}) {
	printStyled(r.out, warningStyle, format, args...)
}

func (r *runner) fail(format string, args ...interface{}) {
	printStyled(r.out, errorStyle, format, args...)
}

// workspace is a local directory to process, either given by the user or
// cloned from a remote repository.
type workspace struct {
	dir     string
	name    string
	cleanup func()
}

// isSingleFile reports whether target is an existing regular file rather
// than a directory or repository URL.
func isSingleFile(target string) (bool, error) {
	if git.IsRemoteURL(target) {
		return false, nil
	}
	info, err := os.Stat(target)
	if err != nil {
		return false, fmt.Errorf("failed to access %s: %w", target, err)
	}
	return !info.IsDir(), nil
}

func (r *runner) openWorkspace(ctx context.Context, target string) (*workspace, error) {
	if git.IsRemoteURL(target) {
		r.warn("Cloning repository from %s...", target)
		dir, err := r.git.Clone(ctx, target)
		if err != nil {
			return nil, err
		}
		r.success("Repository cloned to %s", dir)

		return &workspace{
			dir:  dir,
			name: repoName(target),
			cleanup: func() {
				if err := r.git.Cleanup(dir); err != nil {
					r.fail("Failed to clean up %s: %v", dir, err)
					return
				}
				r.warn("Repository cleaned up.")
			},
		}, nil
	}

	dir, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", target, err)
	}
	r.warn("Processing directory %s...", target)
	return &workspace{dir: dir, name: filepath.Base(dir), cleanup: func() {}}, nil
}

// repoName derives a directory-style name from a repository URL.
func repoName(url string) string {
	name := strings.TrimRight(url, "/")
	if i := strings.LastIndexAny(name, "/:"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".git")
	if name == "" {
		return "repository"
	}
	return name
}

func (r *runner) newIndexer(dir string) indexer.Indexer {
	return indexer.New(r.cfg.ToIndexerConfig(dir), r.progress)
}

func (r *runner) newParser() indexer.Parser {
	return indexer.NewParser()
}

// outputPath places an auto-generated file name under output.dir.
func (r *runner) outputPath(name string) string {
	if r.cfg.Output.Dir == "" {
		return name
	}
	return filepath.Join(r.cfg.Output.Dir, name)
}

// writeOutput writes content to path, creating parent directories.
func writeOutput(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
