package indexer

import (
	"context"
	"errors"
	"testing"

	"github.com/mvp-joe/docuai/internal/indexer/parsers"
	"github.com/mvp-joe/docuai/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Parser:
// - Dispatches .py files to the Python parser
// - Dispatches .js/.jsx/.ts/.tsx files to the JavaScript parser
// - Extension matching is case-insensitive
// - Unsupported extensions fail with ErrUnsupportedFileType before the file is read
// - Missing files surface ErrIO

func TestParser_ParsePythonFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	parser := NewParser()

	fm, err := parser.ParseFile(ctx, "../../testdata/code/python/sample.py")
	require.NoError(t, err)
	require.NotNil(t, fm)

	assert.Equal(t, metadata.LanguagePython, fm.Language)
	assert.Contains(t, fm.FilePath, "sample.py")
	assert.Len(t, fm.Functions, 2)
	assert.Len(t, fm.Classes, 1)
}

func TestParser_ParseJavaScriptFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	parser := NewParser()

	for _, path := range []string{
		"../../testdata/code/javascript/sample.js",
		"../../testdata/code/javascript/sample.ts",
		"../../testdata/code/javascript/component.jsx",
	} {
		fm, err := parser.ParseFile(ctx, path)
		require.NoError(t, err, path)
		assert.Equal(t, metadata.LanguageJavaScript, fm.Language, path)
		assert.False(t, fm.Empty(), path)
	}
}

func TestParser_DetectLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filePath string
		language metadata.Language
	}{
		{"test.py", metadata.LanguagePython},
		{"test.js", metadata.LanguageJavaScript},
		{"test.jsx", metadata.LanguageJavaScript},
		{"test.ts", metadata.LanguageJavaScript},
		{"test.tsx", metadata.LanguageJavaScript},
		{"dir.v2/TEST.PY", metadata.LanguagePython},
		{"test.go", ""},
		{"test.txt", ""},
		{"Makefile", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.language, detectLanguage(tt.filePath), "file: %s", tt.filePath)
	}
}

func TestParser_ForFile(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	py, err := parser.ForFile("a/b.py")
	require.NoError(t, err)
	assert.Equal(t, metadata.LanguagePython, py.Language())

	js, err := parser.ForFile("a/b.tsx")
	require.NoError(t, err)
	assert.Equal(t, metadata.LanguageJavaScript, js.Language())

	assert.True(t, parser.Supports("x.JSX"))
	assert.False(t, parser.Supports("x.rb"))
}

func TestParser_UnsupportedFileType(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	parser := NewParser()

	// The file does not exist; the extension check must fail first.
	fm, err := parser.ParseFile(ctx, "../../testdata/code/missing.rb")
	require.Error(t, err)
	assert.Nil(t, fm)
	assert.True(t, errors.Is(err, parsers.ErrUnsupportedFileType))
	assert.False(t, errors.Is(err, parsers.ErrIO))
}

func TestParser_MissingFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	parser := NewParser()

	_, err := parser.ParseFile(ctx, "../../testdata/code/python/nonexistent.py")
	require.Error(t, err)
	assert.True(t, errors.Is(err, parsers.ErrIO))
}

func TestSupportedExtensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{".js", ".jsx", ".py", ".ts", ".tsx"}, SupportedExtensions())
}
