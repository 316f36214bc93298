package indexer

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mvp-joe/docuai/internal/indexer/parsers"
	"github.com/mvp-joe/docuai/internal/metadata"
)

// multiLanguageParser dispatches files to a language parser by extension.
type multiLanguageParser struct {
	pyParser parsers.Parser
	jsParser parsers.Parser
}

// NewParser creates a new parser instance that supports all languages.
func NewParser() Parser {
	return &multiLanguageParser{
		pyParser: parsers.NewPythonParser(),
		jsParser: parsers.NewJavaScriptParser(),
	}
}

// ParseFile extracts code structure from a source file. Files with an
// unrecognized extension fail with parsers.ErrUnsupportedFileType before
// the file is opened.
func (p *multiLanguageParser) ParseFile(ctx context.Context, filePath string) (*metadata.FileMetadata, error) {
	parser, err := p.ForFile(filePath)
	if err != nil {
		return nil, err
	}
	return parser.ParseFile(ctx, filePath)
}

// ForFile returns the parser responsible for filePath.
func (p *multiLanguageParser) ForFile(filePath string) (parsers.Parser, error) {
	switch detectLanguage(filePath) {
	case metadata.LanguagePython:
		return p.pyParser, nil
	case metadata.LanguageJavaScript:
		return p.jsParser, nil
	default:
		return nil, fmt.Errorf("%w: %s", parsers.ErrUnsupportedFileType, filePath)
	}
}

// Supports reports whether filePath has an extension some parser handles.
func (p *multiLanguageParser) Supports(filePath string) bool {
	return detectLanguage(filePath) != ""
}

var extensionLanguages = map[string]metadata.Language{
	".py":  metadata.LanguagePython,
	".js":  metadata.LanguageJavaScript,
	".jsx": metadata.LanguageJavaScript,
	".ts":  metadata.LanguageJavaScript,
	".tsx": metadata.LanguageJavaScript,
}

// SupportedExtensions returns the dispatch table's extensions, sorted.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensionLanguages))
	for ext := range extensionLanguages {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// detectLanguage detects the programming language based on file extension.
// It returns "" for unsupported files.
func detectLanguage(filePath string) metadata.Language {
	return extensionLanguages[strings.ToLower(filepath.Ext(filePath))]
}
