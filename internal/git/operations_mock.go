package git

import (
	"context"
	"os"
)

// MockGitOps is a mock implementation of Operations for testing. Clone
// returns Dir (or a fresh temp dir when Dir is empty) instead of cloning.
type MockGitOps struct {
	Dir        string
	CloneError error

	ClonedURLs  []string
	CleanedDirs []string
}

// NewMockGitOps creates a mock that "clones" into dir.
func NewMockGitOps(dir string) *MockGitOps {
	return &MockGitOps{Dir: dir}
}

func (m *MockGitOps) Clone(ctx context.Context, repoURL string) (string, error) {
	m.ClonedURLs = append(m.ClonedURLs, repoURL)
	if m.CloneError != nil {
		return "", m.CloneError
	}
	if m.Dir != "" {
		return m.Dir, nil
	}
	return os.MkdirTemp("", "docuai-mock-*")
}

func (m *MockGitOps) Cleanup(dir string) error {
	m.CleanedDirs = append(m.CleanedDirs, dir)
	return nil
}
