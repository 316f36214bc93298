package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/mvp-joe/docuai/internal/config"
	"github.com/mvp-joe/docuai/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Test Plan for parse and version:
// - A single file prints its FileMetadata as JSON or YAML
// - A directory prints files, skipped files with reasons and stats
// - --validate accepts records produced by the parsers
// - Unknown formats and parse failures are errors
// - version prints the build information

func TestParse_SingleFileJSON(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := executeParse(context.Background(), config.Default(), &out,
		"../../testdata/code/javascript/sample.js", "json", true)
	require.NoError(t, err)

	var fm metadata.FileMetadata
	require.NoError(t, json.Unmarshal(out.Bytes(), &fm))
	assert.Equal(t, metadata.LanguageJavaScript, fm.Language)
	assert.Contains(t, out.String(), `"name": "<anonymous>"`)
	require.NotEmpty(t, fm.Classes)
	assert.Equal(t, "Foo", fm.Classes[0].Name)
}

func TestParse_SingleFileYAML(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := executeParse(context.Background(), config.Default(), &out,
		"../../testdata/code/python/sample.py", "yaml", true)
	require.NoError(t, err)

	var fm metadata.FileMetadata
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &fm))
	assert.Equal(t, metadata.LanguagePython, fm.Language)
	assert.Len(t, fm.Functions, 2)
	require.Len(t, fm.Classes, 1)
	assert.Equal(t, "Foo", fm.Classes[0].Name)
	assert.Contains(t, out.String(), "file_path: ")
}

func TestParse_Directory(t *testing.T) {
	t.Parallel()

	root := setupProjectDir(t)

	var out bytes.Buffer
	require.NoError(t, executeParse(context.Background(), config.Default(), &out, root, "json", false))

	var report parseReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))

	require.Len(t, report.Files, 2)
	assert.Equal(t, filepath.Join(root, "good.py"), report.Files[0].FilePath)
	assert.Equal(t, filepath.Join(root, "web", "app.js"), report.Files[1].FilePath)

	require.Len(t, report.Skipped, 1)
	assert.Equal(t, filepath.Join(root, "bad.py"), report.Skipped[0].Path)
	assert.Contains(t, report.Skipped[0].Reason, "bad.py:1")

	assert.Equal(t, 3, report.Stats.FilesDiscovered)
	assert.Equal(t, 2, report.Stats.FilesParsed)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	root := setupProjectDir(t)
	var out bytes.Buffer

	err := executeParse(context.Background(), config.Default(), &out, filepath.Join(root, "good.py"), "xml", false)
	assert.ErrorContains(t, err, "unsupported format")

	err = executeParse(context.Background(), config.Default(), &out, filepath.Join(root, "bad.py"), "json", false)
	assert.Error(t, err)

	err = executeParse(context.Background(), config.Default(), &out, filepath.Join(root, "README.md"), "json", false)
	assert.Error(t, err)

	assert.Empty(t, out.String())
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	assert.Contains(t, out.String(), "DocuAI "+Version)
	assert.Contains(t, out.String(), "Git commit: "+GitCommit)
	assert.Contains(t, out.String(), "Build date: "+BuildDate)
}
