package mcp

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/docuai/internal/indexer"
	"github.com/mvp-joe/docuai/internal/metadata"
)

// FileSummary is the per-file entry of an index response.
type FileSummary struct {
	Path      string            `json:"path"`
	Language  metadata.Language `json:"language"`
	Classes   []string          `json:"classes"`
	Functions []string          `json:"functions"`
}

// SkippedSummary names a file the indexer could not parse.
type SkippedSummary struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// IndexResponse is returned by the docuai_index tool.
type IndexResponse struct {
	Files   []FileSummary           `json:"files"`
	Skipped []SkippedSummary        `json:"skipped"`
	Stats   indexer.ProcessingStats `json:"stats"`
}

// AddDocuaiIndexTool registers the docuai_index tool with an MCP server.
// The tool runs discovery and extraction over the whole project and returns
// a compact outline instead of full source text.
func AddDocuaiIndexTool(s *server.MCPServer, cfg *indexer.Config) {
	tool := mcp.NewTool(
		"docuai_index",
		mcp.WithDescription("Outline every supported source file in the project: class and function names per file, plus files that failed to parse."),
		mcp.WithArray("include",
			mcp.Description("Optional glob filters replacing the configured include patterns (e.g., ['src/**/*.py'])")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createDocuaiIndexHandler(cfg, indexer.NewParser()))
}

// createDocuaiIndexHandler creates the handler function for the docuai_index tool.
func createDocuaiIndexHandler(cfg *indexer.Config, parser indexer.Parser) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		runCfg := *cfg
		if include := parseArrayArg(argsMap, "include"); len(include) > 0 {
			runCfg.IncludePatterns = include
		}

		result, err := indexer.NewWithParser(&runCfg, parser, nil).Index(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			return mcp.NewToolResultError(fmt.Sprintf("indexing failed: %v", err)), nil
		}

		return marshalToolResponse(buildIndexResponse(runCfg.RootDir, result))
	}
}

func buildIndexResponse(root string, result *indexer.Result) *IndexResponse {
	resp := &IndexResponse{
		Files:   make([]FileSummary, 0, len(result.Files)),
		Skipped: make([]SkippedSummary, 0, len(result.Skipped)),
		Stats:   result.Stats,
	}

	for _, fm := range result.Files {
		summary := FileSummary{
			Path:      relativePath(root, fm.FilePath),
			Language:  fm.Language,
			Classes:   make([]string, 0, len(fm.Classes)),
			Functions: make([]string, 0, len(fm.Functions)),
		}
		for _, c := range fm.Classes {
			summary.Classes = append(summary.Classes, c.Name)
		}
		for _, fn := range fm.Functions {
			summary.Functions = append(summary.Functions, fn.Name)
		}
		resp.Files = append(resp.Files, summary)
	}

	for _, s := range result.Skipped {
		resp.Skipped = append(resp.Skipped, SkippedSummary{
			Path:   relativePath(root, s.Path),
			Reason: s.Reason(),
		})
	}
	return resp
}

func relativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
