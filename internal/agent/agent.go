// Package agent turns extracted metadata and raw source into documentation
// and code-quality reports using a language model.
package agent

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/maypok86/otter"
	"github.com/mvp-joe/docuai/internal/metadata"
	"github.com/tmc/langchaingo/prompts"
)

// fileCacheBytes bounds the total size of cached file contents.
const fileCacheBytes = 64 * 1024 * 1024

// Agent generates reports for single files and whole repositories.
type Agent struct {
	llm   LLM
	files otter.Cache[string, string]
}

// New creates an agent backed by llm.
func New(llm LLM) (*Agent, error) {
	files, err := otter.MustBuilder[string, string](fileCacheBytes).
		Cost(func(key string, value string) uint32 {
			return uint32(len(key) + len(value))
		}).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create file cache: %w", err)
	}

	return &Agent{llm: llm, files: files}, nil
}

// Close releases the file cache.
func (a *Agent) Close() {
	a.files.Close()
}

// GenerateDocs writes documentation for one parsed file. The full file is
// re-read so the model sees more than the extracted snippets.
func (a *Agent) GenerateDocs(ctx context.Context, fm *metadata.FileMetadata) (string, error) {
	code, err := a.readFile(fm.FilePath)
	if err != nil {
		return "", err
	}

	return a.run(ctx, docsPrompt, map[string]any{
		"file_path": fm.FilePath,
		"structure": fm.Summary(),
		"code":      code,
	})
}

// AnalyzeCode reviews one file from its raw content; no metadata is needed.
func (a *Agent) AnalyzeCode(ctx context.Context, filePath string) (string, error) {
	code, err := a.readFile(filePath)
	if err != nil {
		return "", err
	}

	return a.run(ctx, analysisPrompt, map[string]any{
		"file_path": filePath,
		"code":      code,
	})
}

// GenerateRepoDocs writes project documentation from every parsed file.
func (a *Agent) GenerateRepoDocs(ctx context.Context, files []*metadata.FileMetadata) (string, error) {
	paths := make([]string, 0, len(files))
	for _, fm := range files {
		paths = append(paths, fm.FilePath)
	}

	return a.run(ctx, repoDocsPrompt, map[string]any{
		"repo_content": a.repoContent(paths),
	})
}

// AnalyzeRepo reviews the given files as one project.
func (a *Agent) AnalyzeRepo(ctx context.Context, filePaths []string) (string, error) {
	return a.run(ctx, repoAnalysisPrompt, map[string]any{
		"repo_content": a.repoContent(filePaths),
	})
}

func (a *Agent) run(ctx context.Context, tmpl prompts.PromptTemplate, values map[string]any) (string, error) {
	prompt, err := tmpl.Format(values)
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return a.llm.Generate(ctx, prompt)
}

// repoContent concatenates files under "--- File: <path> ---" headers. A
// file that cannot be read is reported inline instead of failing the report.
func (a *Agent) repoContent(paths []string) string {
	var sb strings.Builder
	for _, path := range paths {
		sb.WriteString("\n\n--- File: ")
		sb.WriteString(path)
		sb.WriteString(" ---\n")

		code, err := a.readFile(path)
		if err != nil {
			fmt.Fprintf(&sb, "(Error reading file: %v)", err)
			continue
		}
		sb.WriteString(code)
	}
	return sb.String()
}

func (a *Agent) readFile(path string) (string, error) {
	if code, ok := a.files.Get(path); ok {
		return code, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	code := string(data)
	a.files.Set(path, code)
	return code, nil
}
