package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mvp-joe/docuai/internal/indexer/parsers"
)

// errOutsideRoot is returned for paths that escape the project root.
var errOutsideRoot = errors.New("path is outside project root")

// parseToolArguments validates and extracts the arguments map from an MCP tool request.
// Returns the arguments map or an error result if validation fails.
func parseToolArguments(request mcp.CallToolRequest) (map[string]interface{}, *mcp.CallToolResult) {
	argsMap, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, mcp.NewToolResultError("invalid arguments format")
	}
	return argsMap, nil
}

// marshalToolResponse marshals a response object to JSON and returns it as an MCP tool result.
func marshalToolResponse(response interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// resolvePath joins a tool-supplied path onto projectRoot and rejects
// anything that lands outside it.
func resolvePath(projectRoot, path string) (string, error) {
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project root: %w", err)
	}

	target := path
	if !filepath.IsAbs(target) {
		target = filepath.Join(root, target)
	}
	target = filepath.Clean(target)

	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", errOutsideRoot, path)
	}
	return target, nil
}

// isUserError determines if an error should be shown to the model as a tool
// error rather than failing the request.
func isUserError(err error) bool {
	return errors.Is(err, parsers.ErrIO) ||
		errors.Is(err, parsers.ErrSyntax) ||
		errors.Is(err, parsers.ErrUnsupportedFileType) ||
		errors.Is(err, errOutsideRoot)
}
