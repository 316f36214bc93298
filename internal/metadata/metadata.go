package metadata

import (
	"fmt"
	"strings"
)

// AnonymousName is the name recorded for functions and classes declared
// without an identifier (e.g. `export default function () {}`).
const AnonymousName = "<anonymous>"

// Language identifies which parser produced a FileMetadata record.
type Language string

const (
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
)

// FunctionMetadata describes one callable unit: a top-level function or a
// method of a class.
type FunctionMetadata struct {
	Name       string   `json:"name" yaml:"name"`
	Parameters []string `json:"parameters" yaml:"parameters"`
	ReturnType *string  `json:"return_type,omitempty" yaml:"return_type,omitempty"`
	Docstring  *string  `json:"docstring,omitempty" yaml:"docstring,omitempty"`
	SourceText string   `json:"source_text" yaml:"source_text"`
	StartLine  int      `json:"start_line" yaml:"start_line"`
	EndLine    int      `json:"end_line" yaml:"end_line"`
}

// ClassMetadata describes one class declaration and its methods.
type ClassMetadata struct {
	Name       string             `json:"name" yaml:"name"`
	Docstring  *string            `json:"docstring,omitempty" yaml:"docstring,omitempty"`
	Methods    []FunctionMetadata `json:"methods" yaml:"methods"`
	SourceText string             `json:"source_text" yaml:"source_text"`
	StartLine  int                `json:"start_line" yaml:"start_line"`
	EndLine    int                `json:"end_line" yaml:"end_line"`
}

// FileMetadata is the normalized structural description of one source file.
// Classes and Functions hold top-level declarations only; methods live under
// their owning class.
type FileMetadata struct {
	FilePath  string             `json:"file_path" yaml:"file_path"`
	Language  Language           `json:"language" yaml:"language"`
	Classes   []ClassMetadata    `json:"classes" yaml:"classes"`
	Functions []FunctionMetadata `json:"functions" yaml:"functions"`
	Imports   []string           `json:"imports" yaml:"imports"`
}

// NewFileMetadata returns an empty record for filePath with non-nil slices,
// which is also the degraded result for files whose structure could not be
// extracted.
func NewFileMetadata(filePath string, lang Language) *FileMetadata {
	return &FileMetadata{
		FilePath:  filePath,
		Language:  lang,
		Classes:   []ClassMetadata{},
		Functions: []FunctionMetadata{},
		Imports:   []string{},
	}
}

// Empty reports whether no classes or functions were extracted.
func (f *FileMetadata) Empty() bool {
	return len(f.Classes) == 0 && len(f.Functions) == 0
}

// Summary renders the class and function names for prompt context.
func (f *FileMetadata) Summary() string {
	classes := make([]string, 0, len(f.Classes))
	for _, c := range f.Classes {
		classes = append(classes, c.Name)
	}
	functions := make([]string, 0, len(f.Functions))
	for _, fn := range f.Functions {
		functions = append(functions, fn.Name)
	}
	return fmt.Sprintf("Classes: [%s], Functions: [%s]",
		strings.Join(classes, " "), strings.Join(functions, " "))
}

// Validate checks the span invariants of every record in the file.
func (f *FileMetadata) Validate() error {
	for i := range f.Classes {
		if err := f.Classes[i].Validate(); err != nil {
			return fmt.Errorf("%s: %w", f.FilePath, err)
		}
	}
	for i := range f.Functions {
		if err := f.Functions[i].Validate(); err != nil {
			return fmt.Errorf("%s: %w", f.FilePath, err)
		}
	}
	return nil
}

// Validate checks the span invariants of the class and its methods.
func (c *ClassMetadata) Validate() error {
	if err := validateSpan(c.StartLine, c.EndLine, c.SourceText); err != nil {
		return fmt.Errorf("class %s: %w", c.Name, err)
	}
	for i := range c.Methods {
		if err := c.Methods[i].Validate(); err != nil {
			return fmt.Errorf("class %s: %w", c.Name, err)
		}
	}
	return nil
}

// Validate checks the span invariants of the function.
func (fn *FunctionMetadata) Validate() error {
	if fn.Name == "" {
		return fmt.Errorf("function at line %d has no name", fn.StartLine)
	}
	if err := validateSpan(fn.StartLine, fn.EndLine, fn.SourceText); err != nil {
		return fmt.Errorf("function %s: %w", fn.Name, err)
	}
	return nil
}

func validateSpan(start, end int, text string) error {
	if start < 1 || end < 1 {
		return fmt.Errorf("invalid span %d-%d: lines are 1-based", start, end)
	}
	if start > end {
		return fmt.Errorf("invalid span %d-%d: start after end", start, end)
	}
	if got, want := strings.Count(text, "\n")+1, end-start+1; got != want {
		return fmt.Errorf("source text has %d lines, span %d-%d expects %d", got, start, end, want)
	}
	return nil
}

// SplitLines splits source into lines the way SliceLines expects. A trailing
// carriage return is kept on each line so slices reproduce the file bytes.
func SplitLines(source []byte) []string {
	return strings.Split(string(source), "\n")
}

// SliceLines returns lines startLine..endLine (1-based, inclusive) joined by
// newlines. Out-of-range bounds are clamped.
func SliceLines(lines []string, startLine, endLine int) string {
	if startLine < 1 || endLine < 1 || startLine > len(lines) {
		return ""
	}

	start := startLine - 1
	end := endLine
	if end > len(lines) {
		end = len(lines)
	}

	return strings.Join(lines[start:end], "\n")
}
