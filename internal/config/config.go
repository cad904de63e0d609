// Package config loads Drift's project configuration: walker limits,
// gate timeouts, and the default ignore/include globs. Configuration is
// YAML-first (goccy/go-yaml), following the teacher's config-struct shape
// (internal/config/config.go) but trimmed to Drift's scan/gate domain and
// stripped of the teacher's KDL format and search-ranking fields.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/goccy/go-yaml"
)

// Project identifies the codebase being scanned.
type Project struct {
	Root string `yaml:"root"`
	Name string `yaml:"name"`
}

// Walker configures file discovery (spec §4.1).
type Walker struct {
	MaxFileSize        int64    `yaml:"maxFileSize"`
	MaxDepth           int      `yaml:"maxDepth"` // 0 = unbounded
	FollowSymlinks     bool     `yaml:"followSymlinks"`
	RespectGitignore   bool     `yaml:"respectGitignore"`
	RespectDriftignore bool     `yaml:"respectDriftignore"`
	ComputeHashes      bool     `yaml:"computeHashes"`
	IncludeGlobs       []string `yaml:"include"`
	IgnorePatterns     []string `yaml:"exclude"`
	WatchMode          bool     `yaml:"watchMode"`
	WatchDebounceMs    int      `yaml:"watchDebounceMs"`
}

// Performance bounds concurrency across the scan/detect/gate pipeline
// (spec §5 "bounded worker pool sized to available cores").
type Performance struct {
	MaxGoroutines  int `yaml:"maxGoroutines"` // 0 = auto-detect (NumCPU)
	GateTimeoutSec int `yaml:"gateTimeoutSec"`
}

// Config is Drift's top-level project configuration.
type Config struct {
	Version     int         `yaml:"version"`
	Project     Project     `yaml:"project"`
	Walker      Walker      `yaml:"walker"`
	Performance Performance `yaml:"performance"`
	DefaultPolicy string    `yaml:"defaultPolicy"`
}

// DriftDir returns the project's state directory, `<root>/.drift`.
func (c *Config) DriftDir() string {
	return filepath.Join(c.Project.Root, ".drift")
}

// Load reads a YAML config file at path, falling back to defaults for any
// file that doesn't exist.
func Load(path, root string) (*Config, error) {
	cfg := Default(root)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Project.Root == "" {
		cfg.Project.Root = root
	}
	return cfg, nil
}

// Default returns Drift's baseline configuration rooted at root.
func Default(root string) *Config {
	return &Config{
		Version: 1,
		Project: Project{Root: root},
		Walker: Walker{
			MaxFileSize:        10 * 1024 * 1024,
			MaxDepth:           0,
			FollowSymlinks:     false,
			RespectGitignore:   true,
			RespectDriftignore: true,
			ComputeHashes:      true,
			IncludeGlobs:       []string{},
			IgnorePatterns:     DefaultIgnorePatterns(),
		},
		Performance: Performance{
			MaxGoroutines:  runtime.NumCPU(),
			GateTimeoutSec: 60,
		},
		DefaultPolicy: "default",
	}
}

// DefaultIgnorePatterns is the built-in ignore list applied ahead of
// .gitignore/.driftignore and the caller's own patterns (spec §4.1).
func DefaultIgnorePatterns() []string {
	return []string{
		"**/.git/**",
		"**/.drift/**",
		"**/node_modules/**",
		"**/vendor/**",
		"**/dist/**",
		"**/build/**",
		"**/out/**",
		"**/target/**",
		"**/bin/**",
		"**/obj/**",
		"**/coverage/**",
		"**/__pycache__/**",
		"**/*.min.js",
		"**/*.min.css",
	}
}
