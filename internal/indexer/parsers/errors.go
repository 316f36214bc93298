package parsers

import (
	"errors"
	"fmt"
)

var (
	// ErrIO is matched by every error caused by reading a source file.
	ErrIO = errors.New("i/o error")

	// ErrInvalidEncoding is returned (wrapped in an IOError) for files that
	// are not valid UTF-8.
	ErrInvalidEncoding = errors.New("content is not valid UTF-8")

	// ErrSyntax is matched by SyntaxError.
	ErrSyntax = errors.New("syntax error")

	// ErrUnsupportedFileType is returned when no parser handles a file's
	// extension.
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// IOError reports a file that could not be opened, read or decoded.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrIO) true for any IOError.
func (e *IOError) Is(target error) bool { return target == ErrIO }

// SyntaxError reports source rejected by the language grammar. Line and
// Column are 1-based and point at the first offending node.
type SyntaxError struct {
	Path   string
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Msg)
}

// Is makes errors.Is(err, ErrSyntax) true for any SyntaxError.
func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }
