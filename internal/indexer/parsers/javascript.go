package parsers

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/docuai/internal/metadata"

	sitter "github.com/tree-sitter/go-tree-sitter"
	javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// dialect is one grammar the JavaScript parser can try.
type dialect struct {
	name     string
	language *sitter.Language
}

// javaScriptParser parses JavaScript, JSX, TypeScript and TSX files. Each
// file is tried against an ordered list of dialects; the first grammar that
// produces an error-free tree wins. When none does, the file degrades to an
// empty FileMetadata instead of failing.
type javaScriptParser struct {
	javascript dialect
	typescript dialect
	tsx        dialect
}

// NewJavaScriptParser creates a parser for the JavaScript family.
func NewJavaScriptParser() Parser {
	return &javaScriptParser{
		javascript: dialect{name: "javascript", language: sitter.NewLanguage(javascript.Language())},
		typescript: dialect{name: "typescript", language: sitter.NewLanguage(typescript.LanguageTypescript())},
		tsx:        dialect{name: "tsx", language: sitter.NewLanguage(typescript.LanguageTSX())},
	}
}

func (p *javaScriptParser) Language() metadata.Language {
	return metadata.LanguageJavaScript
}

// dialects returns the grammars to try for filePath, most specific first.
func (p *javaScriptParser) dialects(filePath string) []dialect {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".ts":
		return []dialect{p.typescript, p.tsx}
	case ".tsx":
		return []dialect{p.tsx, p.typescript}
	default:
		return []dialect{p.javascript, p.tsx}
	}
}

// ParseFile parses a JavaScript-family source file. Only I/O failures and
// context cancellation are returned as errors.
func (p *javaScriptParser) ParseFile(ctx context.Context, filePath string) (*metadata.FileMetadata, error) {
	source, err := readSource(ctx, filePath)
	if err != nil {
		return nil, err
	}

	fm := metadata.NewFileMetadata(filePath, metadata.LanguageJavaScript)

	for _, d := range p.dialects(filePath) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tree, err := parseTree(d.language, source)
		if err != nil {
			continue
		}
		root := tree.RootNode()
		if root.HasError() {
			tree.Close()
			continue
		}

		w := &jsWalker{source: source, lines: metadata.SplitLines(source), fm: fm}
		w.collectImports(root)
		w.visit(root)
		tree.Close()
		return fm, nil
	}

	log.Printf("Warning: could not parse %s with any JavaScript dialect, returning empty metadata", filePath)
	return fm, nil
}

// jsWalker collects declarations from one syntax tree into fm.
type jsWalker struct {
	source []byte
	lines  []string
	fm     *metadata.FileMetadata
}

// collectImports records top-level import statements verbatim.
func (w *jsWalker) collectImports(root *sitter.Node) {
	for _, imp := range findChildrenByType(root, "import_statement") {
		w.fm.Imports = append(w.fm.Imports, extractNodeText(imp, w.source))
	}
}

// visit walks node looking for function and class declarations. Captured
// declarations are not descended into, so functions nested inside them stay
// out of the top-level lists.
func (w *jsWalker) visit(node *sitter.Node) {
	if node == nil {
		return
	}

	switch node.Kind() {
	case "function_declaration", "generator_function_declaration":
		w.fm.Functions = append(w.fm.Functions, w.extractFunction(node, w.declName(node)))
		return

	case "class_declaration", "abstract_class_declaration":
		w.fm.Classes = append(w.fm.Classes, w.extractClass(node, w.declName(node)))
		return

	case "export_statement":
		if decl := node.ChildByFieldName("declaration"); decl != nil {
			w.visit(decl)
			return
		}
		// export default function () {} / export default class {}
		if value := node.ChildByFieldName("value"); value != nil {
			switch value.Kind() {
			case "function_expression", "function", "generator_function":
				w.fm.Functions = append(w.fm.Functions, w.extractFunction(value, w.declName(value)))
				return
			case "class":
				w.fm.Classes = append(w.fm.Classes, w.extractClass(value, w.declName(value)))
				return
			}
			w.visit(value)
		}
		return

	case "comment", "string", "template_string", "regex", "identifier",
		"property_identifier", "number", "hash_bang_line":
		return
	}

	for i := uint(0); i < node.NamedChildCount(); i++ {
		w.visit(node.NamedChild(i))
	}
}

// declName returns the declared name, or AnonymousName when there is none.
func (w *jsWalker) declName(node *sitter.Node) string {
	if name := node.ChildByFieldName("name"); name != nil {
		return extractNodeText(name, w.source)
	}
	return metadata.AnonymousName
}

func (w *jsWalker) extractFunction(node *sitter.Node, name string) metadata.FunctionMetadata {
	startLine, endLine := nodeLines(node)
	return metadata.FunctionMetadata{
		Name:       name,
		Parameters: w.extractParameters(node.ChildByFieldName("parameters")),
		SourceText: metadata.SliceLines(w.lines, startLine, endLine),
		StartLine:  startLine,
		EndLine:    endLine,
	}
}

func (w *jsWalker) extractClass(node *sitter.Node, name string) metadata.ClassMetadata {
	startLine, endLine := nodeLines(node)
	class := metadata.ClassMetadata{
		Name:       name,
		Methods:    []metadata.FunctionMetadata{},
		SourceText: metadata.SliceLines(w.lines, startLine, endLine),
		StartLine:  startLine,
		EndLine:    endLine,
	}

	for _, method := range findChildrenByType(node.ChildByFieldName("body"), "method_definition") {
		class.Methods = append(class.Methods, w.extractFunction(method, w.methodName(method)))
	}
	return class
}

// methodName resolves the display key of a class member: identifiers as
// written, string keys unquoted, computed keys with their brackets.
func (w *jsWalker) methodName(method *sitter.Node) string {
	key := method.ChildByFieldName("name")
	if key == nil {
		return metadata.AnonymousName
	}

	text := extractNodeText(key, w.source)
	switch key.Kind() {
	case "string":
		return strings.Trim(text, `"'`)
	case "computed_property_name":
		return collapseWhitespace(text)
	default:
		return text
	}
}

// extractParameters returns parameter names in order. Default values and
// type annotations are dropped; rest parameters are prefixed with "...".
func (w *jsWalker) extractParameters(params *sitter.Node) []string {
	names := []string{}
	if params == nil {
		return names
	}

	// Arrow functions with a bare identifier have no parameter list.
	if params.Kind() == "identifier" {
		return append(names, extractNodeText(params, w.source))
	}

	for i := uint(0); i < params.NamedChildCount(); i++ {
		if name := w.parameterName(params.NamedChild(i)); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func (w *jsWalker) parameterName(node *sitter.Node) string {
	if node == nil {
		return ""
	}

	switch node.Kind() {
	case "identifier", "this":
		return extractNodeText(node, w.source)
	case "assignment_pattern":
		return w.parameterName(node.ChildByFieldName("left"))
	case "rest_pattern":
		return "..." + w.parameterName(node.NamedChild(0))
	case "required_parameter", "optional_parameter":
		return w.parameterName(node.ChildByFieldName("pattern"))
	case "comment":
		return ""
	default:
		// Destructuring patterns have no single name.
		return collapseWhitespace(extractNodeText(node, w.source))
	}
}
