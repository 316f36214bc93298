package parsers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/mvp-joe/docuai/internal/metadata"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	"golang.org/x/text/unicode/runenames"
)

// pythonParser parses Python files with the tree-sitter Python grammar.
// Python's grammar is authoritative, so any error node in the tree fails the
// parse with a SyntaxError instead of degrading.
type pythonParser struct {
	language *sitter.Language
}

// NewPythonParser creates a new Python parser.
func NewPythonParser() Parser {
	return &pythonParser{
		language: sitter.NewLanguage(python.Language()),
	}
}

func (p *pythonParser) Language() metadata.Language {
	return metadata.LanguagePython
}

// ParseFile parses a Python source file.
func (p *pythonParser) ParseFile(ctx context.Context, filePath string) (*metadata.FileMetadata, error) {
	source, err := readSource(ctx, filePath)
	if err != nil {
		return nil, err
	}

	tree, err := parseTree(p.language, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, newPythonSyntaxError(filePath, findSyntaxError(root))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fm := metadata.NewFileMetadata(filePath, metadata.LanguagePython)
	lines := metadata.SplitLines(source)

	// Only the module's own statements are considered; anything nested in
	// if/try blocks or other definitions is not top-level.
	for i := uint(0); i < root.NamedChildCount(); i++ {
		node := root.NamedChild(i)
		if node == nil {
			continue
		}
		if node.Kind() == "decorated_definition" {
			if def := node.ChildByFieldName("definition"); def != nil {
				node = def
			}
		}

		switch node.Kind() {
		case "import_statement", "import_from_statement", "future_import_statement":
			fm.Imports = append(fm.Imports, p.formatImport(node, source))
		case "class_definition":
			fm.Classes = append(fm.Classes, p.extractClass(node, source, lines))
		case "function_definition":
			fm.Functions = append(fm.Functions, p.extractFunction(node, source, lines))
		}
	}

	return fm, nil
}

func newPythonSyntaxError(filePath string, node *sitter.Node) *SyntaxError {
	if node == nil {
		return &SyntaxError{Path: filePath, Line: 1, Column: 1, Msg: "invalid syntax"}
	}
	pos := node.StartPosition()
	msg := "invalid syntax"
	if node.IsMissing() {
		msg = fmt.Sprintf("missing %q", node.Kind())
	}
	return &SyntaxError{
		Path:   filePath,
		Line:   int(pos.Row) + 1,
		Column: int(pos.Column) + 1,
		Msg:    msg,
	}
}

// extractClass extracts a class definition and its directly contained methods.
func (p *pythonParser) extractClass(node *sitter.Node, source []byte, lines []string) metadata.ClassMetadata {
	startLine, endLine := pythonNodeLines(node)
	body := node.ChildByFieldName("body")

	class := metadata.ClassMetadata{
		Name:       extractNodeText(node.ChildByFieldName("name"), source),
		Docstring:  p.extractDocstring(body, source),
		Methods:    []metadata.FunctionMetadata{},
		SourceText: metadata.SliceLines(lines, startLine, endLine),
		StartLine:  startLine,
		EndLine:    endLine,
	}

	if body == nil {
		return class
	}
	for i := uint(0); i < body.NamedChildCount(); i++ {
		child := body.NamedChild(i)
		if child == nil {
			continue
		}
		if child.Kind() == "decorated_definition" {
			if def := child.ChildByFieldName("definition"); def != nil {
				child = def
			}
		}
		if child.Kind() == "function_definition" {
			class.Methods = append(class.Methods, p.extractFunction(child, source, lines))
		}
	}
	return class
}

// extractFunction extracts a function or method definition.
func (p *pythonParser) extractFunction(node *sitter.Node, source []byte, lines []string) metadata.FunctionMetadata {
	startLine, endLine := pythonNodeLines(node)

	fn := metadata.FunctionMetadata{
		Name:       extractNodeText(node.ChildByFieldName("name"), source),
		Parameters: p.extractParameters(node.ChildByFieldName("parameters"), source),
		Docstring:  p.extractDocstring(node.ChildByFieldName("body"), source),
		SourceText: metadata.SliceLines(lines, startLine, endLine),
		StartLine:  startLine,
		EndLine:    endLine,
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		fn.ReturnType = stringPtr(collapseWhitespace(extractNodeText(ret, source)))
	}
	return fn
}

// pythonNodeLines is nodeLines for a definition, except the span ends at the
// last code token. The grammar folds indented trailing comments into the
// block, but they are not part of the definition.
func pythonNodeLines(node *sitter.Node) (int, int) {
	start, end := nodeLines(node)
	if last := lastCodeToken(node); last != nil {
		if row := int(last.EndPosition().Row) + 1; row >= start && row < end {
			end = row
		}
	}
	return start, end
}

// lastCodeToken returns the last non-empty leaf under node that is not inside
// a comment.
func lastCodeToken(node *sitter.Node) *sitter.Node {
	for i := int(node.ChildCount()) - 1; i >= 0; i-- {
		child := node.Child(uint(i))
		if child == nil || child.Kind() == "comment" || child.StartByte() == child.EndByte() {
			continue
		}
		if child.ChildCount() == 0 {
			return child
		}
		if last := lastCodeToken(child); last != nil {
			return last
		}
	}
	return nil
}

// extractParameters returns parameter names in declaration order. Defaults
// and annotations are dropped; variadics keep their * or ** marker.
func (p *pythonParser) extractParameters(params *sitter.Node, source []byte) []string {
	names := []string{}
	if params == nil {
		return names
	}

	for i := uint(0); i < params.NamedChildCount(); i++ {
		if name := p.parameterName(params.NamedChild(i), source); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func (p *pythonParser) parameterName(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}

	switch node.Kind() {
	case "identifier":
		return extractNodeText(node, source)
	case "default_parameter", "typed_default_parameter":
		return p.parameterName(node.ChildByFieldName("name"), source)
	case "typed_parameter":
		// The annotated name is the first named child; it may itself be a
		// splat pattern (`*args: int`).
		return p.parameterName(node.NamedChild(0), source)
	case "list_splat_pattern":
		return "*" + p.parameterName(node.NamedChild(0), source)
	case "dictionary_splat_pattern":
		return "**" + p.parameterName(node.NamedChild(0), source)
	case "keyword_separator", "positional_separator", "comment":
		return ""
	default:
		return collapseWhitespace(extractNodeText(node, source))
	}
}

// extractDocstring returns the cleaned docstring of a block: its first
// statement when that statement is a plain string literal.
func (p *pythonParser) extractDocstring(block *sitter.Node, source []byte) *string {
	if block == nil {
		return nil
	}

	var first *sitter.Node
	for i := uint(0); i < block.NamedChildCount(); i++ {
		child := block.NamedChild(i)
		if child != nil && child.Kind() != "comment" {
			first = child
			break
		}
	}
	if first == nil || first.Kind() != "expression_statement" || first.NamedChildCount() != 1 {
		return nil
	}

	expr := first.NamedChild(0)
	var parts []*sitter.Node
	switch expr.Kind() {
	case "string":
		parts = []*sitter.Node{expr}
	case "concatenated_string":
		parts = findChildrenByType(expr, "string")
	default:
		return nil
	}

	var sb strings.Builder
	for _, part := range parts {
		value, ok := pythonStringValue(part, source)
		if !ok {
			return nil
		}
		sb.WriteString(value)
	}

	doc := cleanDocstring(sb.String())
	return &doc
}

// pythonStringValue decodes a str literal. Bytes literals and f-strings are
// not str constants and report ok=false.
func pythonStringValue(node *sitter.Node, source []byte) (string, bool) {
	raw := extractNodeText(node, source)

	quoteAt := strings.IndexAny(raw, `"'`)
	if quoteAt < 0 {
		return "", false
	}
	prefix := strings.ToLower(raw[:quoteAt])
	if strings.ContainsAny(prefix, "bf") {
		return "", false
	}

	body := raw[quoteAt:]
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if len(body) >= 2*len(q) && strings.HasPrefix(body, q) && strings.HasSuffix(body, q) {
			body = body[len(q) : len(body)-len(q)]
			break
		}
	}

	// Source is read with universal newlines.
	body = normalizeNewlines(body)

	if strings.Contains(prefix, "r") {
		return body, true
	}
	return unescapePython(body), true
}

func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

var simpleEscapes = map[byte]byte{
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
}

// unescapePython decodes backslash escapes in a str literal. Unknown or
// malformed escapes are kept verbatim.
func unescapePython(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			sb.WriteByte(c)
			continue
		}

		next := s[i+1]
		if next == '\n' {
			// line continuation
			i++
			continue
		}
		if b, ok := simpleEscapes[next]; ok {
			sb.WriteByte(b)
			i++
			continue
		}

		r, width, ok := decodeCodeEscape(s[i+1:])
		if !ok {
			sb.WriteByte('\\')
			continue
		}
		sb.WriteRune(r)
		i += width
	}
	return sb.String()
}

// decodeCodeEscape decodes octal, \x, \u, \U and \N{...} escapes. s starts
// right after the backslash; width is the number of bytes consumed.
func decodeCodeEscape(s string) (r rune, width int, ok bool) {
	switch {
	case isOctal(s[0]):
		n := 1
		for n < 3 && n < len(s) && isOctal(s[n]) {
			n++
		}
		v, err := strconv.ParseUint(s[:n], 8, 32)
		if err != nil {
			return 0, 0, false
		}
		return rune(v), n, true
	case s[0] == 'x':
		return decodeHexEscape(s, 2)
	case s[0] == 'u':
		return decodeHexEscape(s, 4)
	case s[0] == 'U':
		return decodeHexEscape(s, 8)
	case s[0] == 'N':
		if len(s) < 3 || s[1] != '{' {
			return 0, 0, false
		}
		closeAt := strings.IndexByte(s, '}')
		if closeAt < 0 {
			return 0, 0, false
		}
		r, found := lookupRuneName(s[2:closeAt])
		if !found {
			return 0, 0, false
		}
		return r, closeAt + 1, true
	}
	return 0, 0, false
}

func decodeHexEscape(s string, digits int) (rune, int, bool) {
	if len(s) < 1+digits {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(s[1:1+digits], 16, 32)
	if err != nil || v > unicode.MaxRune {
		return 0, 0, false
	}
	return rune(v), 1 + digits, true
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}

const cjkIdeographPrefix = "CJK UNIFIED IDEOGRAPH-"

var (
	runeNamesOnce sync.Once
	runesByName   map[string]rune
)

// lookupRuneName resolves a \N{...} character name, case insensitively.
// The reverse table is built on first use.
func lookupRuneName(name string) (rune, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if hex, ok := strings.CutPrefix(name, cjkIdeographPrefix); ok {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || v > unicode.MaxRune || !unicode.Is(unicode.Han, rune(v)) {
			return 0, false
		}
		return rune(v), true
	}

	runeNamesOnce.Do(func() {
		runesByName = make(map[string]rune, 40000)
		for r := rune(0); r <= unicode.MaxRune; r++ {
			if n := runenames.Name(r); n != "" && !strings.HasPrefix(n, "<") {
				runesByName[n] = r
			}
		}
	})
	r, ok := runesByName[name]
	return r, ok
}

// cleanDocstring normalizes indentation the way inspect.cleandoc does: the
// first line is left-trimmed, the common indentation of the remaining lines
// is removed, and leading and trailing blank lines are dropped.
func cleanDocstring(doc string) string {
	lines := strings.Split(expandTabs(doc), "\n")

	margin := -1
	for _, line := range lines[1:] {
		content := strings.TrimLeft(line, " ")
		if content == "" {
			continue
		}
		indent := len(line) - len(content)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}

	lines[0] = strings.TrimLeft(lines[0], " ")
	if margin > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= margin {
				lines[i] = lines[i][margin:]
			} else {
				lines[i] = strings.TrimLeft(lines[i], " ")
			}
		}
	}

	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// expandTabs replaces tabs with spaces using 8-column tab stops.
func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}

	var sb strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := 8 - col%8
			sb.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n':
			sb.WriteRune(r)
			col = 0
		default:
			sb.WriteRune(r)
			col++
		}
	}
	return sb.String()
}

// formatImport renders an import statement in canonical form, independent of
// the original line breaks, parentheses and spacing.
func (p *pythonParser) formatImport(node *sitter.Node, source []byte) string {
	var names []string
	module := node.ChildByFieldName("module_name")

	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || (module != nil && child.StartByte() == module.StartByte()) {
			continue
		}
		switch child.Kind() {
		case "dotted_name":
			names = append(names, compactName(extractNodeText(child, source)))
		case "aliased_import":
			name := compactName(extractNodeText(child.ChildByFieldName("name"), source))
			alias := extractNodeText(child.ChildByFieldName("alias"), source)
			names = append(names, name+" as "+alias)
		case "wildcard_import":
			names = append(names, "*")
		}
	}

	imported := strings.Join(names, ", ")
	switch node.Kind() {
	case "future_import_statement":
		return "from __future__ import " + imported
	case "import_from_statement":
		return "from " + compactName(extractNodeText(module, source)) + " import " + imported
	default:
		return "import " + imported
	}
}

// compactName strips whitespace from dotted or relative module names.
func compactName(s string) string {
	return strings.Join(strings.Fields(s), "")
}
