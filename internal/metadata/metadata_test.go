package metadata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func strPtr(s string) *string { return &s }

func TestSliceLines(t *testing.T) {
	t.Parallel()

	lines := SplitLines([]byte("one\ntwo\nthree\n"))

	tests := []struct {
		name       string
		start, end int
		want       string
	}{
		{"single line", 2, 2, "two"},
		{"range", 1, 3, "one\ntwo\nthree"},
		{"end clamped", 3, 10, "three\n"},
		{"start past end of file", 9, 10, ""},
		{"zero start", 0, 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SliceLines(lines, tt.start, tt.end))
		})
	}
}

func TestNewFileMetadata(t *testing.T) {
	t.Parallel()

	fm := NewFileMetadata("a.js", LanguageJavaScript)

	assert.Equal(t, "a.js", fm.FilePath)
	assert.Equal(t, LanguageJavaScript, fm.Language)
	assert.NotNil(t, fm.Classes)
	assert.NotNil(t, fm.Functions)
	assert.NotNil(t, fm.Imports)
	assert.True(t, fm.Empty())

	// Empty slices must serialize as [] rather than null.
	data, err := json.Marshal(fm)
	require.NoError(t, err)
	assert.JSONEq(t, `{"file_path":"a.js","language":"javascript","classes":[],"functions":[],"imports":[]}`, string(data))
}

func TestFileMetadata_Summary(t *testing.T) {
	t.Parallel()

	fm := NewFileMetadata("m.py", LanguagePython)
	fm.Classes = append(fm.Classes, ClassMetadata{Name: "Foo"}, ClassMetadata{Name: "Bar"})
	fm.Functions = append(fm.Functions, FunctionMetadata{Name: "main"})

	assert.Equal(t, "Classes: [Foo Bar], Functions: [main]", fm.Summary())
	assert.Equal(t, "Classes: [], Functions: []", NewFileMetadata("x.py", LanguagePython).Summary())
}

func TestFileMetadata_Validate(t *testing.T) {
	t.Parallel()

	valid := FunctionMetadata{
		Name:       "add",
		Parameters: []string{"a", "b"},
		SourceText: "def add(a, b):\n    return a + b",
		StartLine:  3,
		EndLine:    4,
	}

	t.Run("valid", func(t *testing.T) {
		fm := NewFileMetadata("m.py", LanguagePython)
		fm.Functions = append(fm.Functions, valid)
		fm.Classes = append(fm.Classes, ClassMetadata{
			Name:       "Foo",
			SourceText: "class Foo:\n    pass",
			StartLine:  6,
			EndLine:    7,
		})
		assert.NoError(t, fm.Validate())
	})

	t.Run("line count mismatch", func(t *testing.T) {
		fn := valid
		fn.EndLine = 5
		err := fn.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "source text has 2 lines")
	})

	t.Run("start after end", func(t *testing.T) {
		fn := valid
		fn.StartLine, fn.EndLine = 4, 3
		assert.Error(t, fn.Validate())
	})

	t.Run("zero line", func(t *testing.T) {
		fn := valid
		fn.StartLine = 0
		assert.Error(t, fn.Validate())
	})

	t.Run("method error is attributed to class", func(t *testing.T) {
		bad := valid
		bad.Name = ""
		c := ClassMetadata{
			Name:       "Foo",
			Methods:    []FunctionMetadata{bad},
			SourceText: "class Foo:\n    def x(): pass",
			StartLine:  1,
			EndLine:    2,
		}
		err := c.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "class Foo")
	})
}

func TestFileMetadata_YAMLOmitsAbsentOptionals(t *testing.T) {
	t.Parallel()

	fm := NewFileMetadata("m.py", LanguagePython)
	fm.Functions = append(fm.Functions, FunctionMetadata{
		Name:       "f",
		Parameters: []string{},
		ReturnType: strPtr("int"),
		SourceText: "def f() -> int: ...",
		StartLine:  1,
		EndLine:    1,
	})

	data, err := yaml.Marshal(fm)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "return_type: int")
	assert.NotContains(t, out, "docstring")
}
