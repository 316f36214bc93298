package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Operations defines the interface for git operations.
// This allows mocking git commands in tests.
type Operations interface {
	// Clone clones repoURL into a fresh temporary directory and returns its
	// path. The directory is removed again if the clone fails.
	Clone(ctx context.Context, repoURL string) (string, error)

	// Cleanup removes a directory returned by Clone.
	Cleanup(dir string) error
}

// gitOps is the real implementation using exec.Command.
type gitOps struct{}

// NewOperations returns the default git operations implementation.
func NewOperations() Operations {
	return &gitOps{}
}

func (g *gitOps) Clone(ctx context.Context, repoURL string) (string, error) {
	dir, err := os.MkdirTemp("", "docuai-clone-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", "--quiet", repoURL, dir)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		os.RemoveAll(dir)
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("failed to clone repository %s: %s", repoURL, msg)
	}
	return dir, nil
}

func (g *gitOps) Cleanup(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", dir, err)
	}
	return nil
}

// IsRemoteURL reports whether target names a remote repository rather than
// a local path.
func IsRemoteURL(target string) bool {
	return strings.HasPrefix(target, "http://") ||
		strings.HasPrefix(target, "https://") ||
		strings.HasPrefix(target, "git@") ||
		strings.HasPrefix(target, "ssh://")
}
