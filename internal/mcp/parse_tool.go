package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/docuai/internal/indexer"
)

// AddDocuaiParseTool registers the docuai_parse tool with an MCP server.
//
// The tool returns the structural metadata of one Python or JavaScript/TypeScript
// file: its classes with their methods, top-level functions and imports.
func AddDocuaiParseTool(s *server.MCPServer, parser indexer.Parser, projectRoot string) {
	tool := mcp.NewTool(
		"docuai_parse",
		mcp.WithDescription("Extract the classes, methods, functions and imports of a Python, JavaScript or TypeScript source file. Paths are relative to the project root."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Source file path (e.g., 'src/app.py' or 'web/index.ts')")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createDocuaiParseHandler(parser, projectRoot))
}

// createDocuaiParseHandler creates the handler function for the docuai_parse tool.
func createDocuaiParseHandler(parser indexer.Parser, projectRoot string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		path, err := parseStringArg(argsMap, "path", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		target, err := resolvePath(projectRoot, path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		fm, err := parser.ParseFile(ctx, target)
		if err != nil {
			if isUserError(err) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return nil, err
		}

		return marshalToolResponse(fm)
	}
}
