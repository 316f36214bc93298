package config

import (
	"github.com/mvp-joe/docuai/internal/indexer"
)

// ToIndexerConfig converts a Config to an indexer.Config.
// The rootDir parameter specifies the root directory of the codebase to scan.
func (c *Config) ToIndexerConfig(rootDir string) *indexer.Config {
	return &indexer.Config{
		RootDir:         rootDir,
		IncludePatterns: c.Paths.Include,
		IgnorePatterns:  c.Paths.Ignore,
		Workers:         c.Extract.Workers,
		MaxFileSizeMB:   c.Extract.MaxFileSizeMB,
	}
}
