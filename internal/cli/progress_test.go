package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/mvp-joe/docuai/internal/indexer"
	"github.com/stretchr/testify/assert"
)

func TestCLIProgressReporter(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	reporter := NewCLIProgressReporter(&out)

	reporter.OnDiscoveryStart()
	reporter.OnDiscoveryComplete(2)
	reporter.OnFileProcessingStart(2)
	reporter.OnFileProcessed("a.py")
	reporter.OnFileSkipped("b.py", errors.New("syntax error"))
	reporter.OnFileProcessed("b.py")
	reporter.OnComplete(&indexer.ProcessingStats{
		FilesDiscovered: 2,
		FilesParsed:     1,
		FilesSkipped:    1,
		TotalFunctions:  3,
	})

	assert.Contains(t, out.String(), "Parsed 1 of 2 files")
	assert.Contains(t, out.String(), "3 functions")
}

func TestCLIProgressReporter_NoFiles(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	reporter := NewCLIProgressReporter(&out)

	reporter.OnFileProcessingStart(0)
	reporter.OnComplete(&indexer.ProcessingStats{})

	assert.NotContains(t, out.String(), "Parsing files")
	assert.Contains(t, out.String(), "Parsed 0 of 0 files")
}
