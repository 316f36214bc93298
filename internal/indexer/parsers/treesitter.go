package parsers

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// readSource reads filePath and checks that it is UTF-8 text.
func readSource(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &IOError{Path: filePath, Err: err}
	}
	if !utf8.Valid(source) {
		return nil, &IOError{Path: filePath, Err: ErrInvalidEncoding}
	}
	return source, nil
}

// parseTree parses source with the given grammar. The caller owns the
// returned tree and must Close it.
func parseTree(language *sitter.Language, source []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned nil tree")
	}
	return tree, nil
}

// findSyntaxError returns the first ERROR or MISSING node in document order,
// or nil if the tree is clean.
func findSyntaxError(root *sitter.Node) *sitter.Node {
	if root == nil || !root.HasError() {
		return nil
	}

	cursor := root.Walk()
	defer cursor.Close()

	for {
		node := cursor.Node()
		if node.IsError() || node.IsMissing() {
			return node
		}
		// HasError also covers MISSING descendants, so clean subtrees are skipped.
		if node.HasError() && cursor.GotoFirstChild() {
			continue
		}
		for !cursor.GotoNextSibling() {
			if !cursor.GotoParent() {
				return nil
			}
		}
	}
}

// extractNodeText extracts the text content of a tree-sitter node.
func extractNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// nodeLines returns the 1-based inclusive line span of node. A node that
// ends at column 0 ends on the previous line.
func nodeLines(node *sitter.Node) (int, int) {
	start := int(node.StartPosition().Row) + 1
	endPos := node.EndPosition()
	end := int(endPos.Row) + 1
	if endPos.Column == 0 && end > start {
		end--
	}
	return start, end
}

// findChildrenByType finds all named child nodes with the given type.
func findChildrenByType(node *sitter.Node, nodeType string) []*sitter.Node {
	var results []*sitter.Node
	if node == nil {
		return results
	}

	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child != nil && child.Kind() == nodeType {
			results = append(results, child)
		}
	}
	return results
}

// collapseWhitespace replaces every run of whitespace with a single space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func stringPtr(s string) *string {
	return &s
}
