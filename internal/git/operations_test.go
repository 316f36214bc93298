package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for git operations:
// - IsRemoteURL distinguishes URLs from local paths
// - Clone copies a local repository into a temp dir that Cleanup removes
// - A failed clone leaves no temp dir behind and reports git's message
// - Cleanup of an empty path is a no-op

func TestIsRemoteURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target string
		want   bool
	}{
		{"https://github.com/user/repo.git", true},
		{"http://example.com/repo", true},
		{"git@github.com:user/repo.git", true},
		{"ssh://git@host/repo", true},
		{"./repo", false},
		{"/abs/path/file.py", false},
		{"https.py", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsRemoteURL(tt.target), tt.target)
	}
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func runGitCmd(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
}

func TestGitOps_CloneAndCleanup(t *testing.T) {
	requireGit(t)

	src := t.TempDir()
	runGitCmd(t, src, "init", "-q")
	runGitCmd(t, src, "config", "user.email", "test@example.com")
	runGitCmd(t, src, "config", "user.name", "Test")
	require.NoError(t, os.WriteFile(filepath.Join(src, "main.py"), []byte("def main():\n    pass\n"), 0o644))
	runGitCmd(t, src, "add", ".")
	runGitCmd(t, src, "commit", "-q", "-m", "init")

	ops := NewOperations()
	// --depth is ignored for local paths unless given a file:// URL.
	dir, err := ops.Clone(context.Background(), "file://"+src)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "main.py"))

	require.NoError(t, ops.Cleanup(dir))
	assert.NoDirExists(t, dir)
}

func TestGitOps_CloneFailure(t *testing.T) {
	requireGit(t)

	ops := NewOperations()
	dir, err := ops.Clone(context.Background(), filepath.Join(t.TempDir(), "not-a-repo"))
	require.Error(t, err)
	assert.Empty(t, dir)
	assert.Contains(t, err.Error(), "failed to clone repository")
}

func TestGitOps_CleanupEmpty(t *testing.T) {
	t.Parallel()

	assert.NoError(t, NewOperations().Cleanup(""))
}
