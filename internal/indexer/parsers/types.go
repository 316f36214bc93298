package parsers

import (
	"context"

	"github.com/mvp-joe/docuai/internal/metadata"
)

// Parser extracts structural metadata from a single source file.
//
// Implementations read the file themselves and return a fully populated
// FileMetadata on success. I/O failures are always returned as errors (see
// ErrIO); how syntax errors are handled is parser specific.
type Parser interface {
	// ParseFile reads and parses the file at filePath.
	ParseFile(ctx context.Context, filePath string) (*metadata.FileMetadata, error)

	// Language reports the tag this parser writes into FileMetadata.Language.
	Language() metadata.Language
}
