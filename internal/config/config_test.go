package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	root := t.TempDir()
	cfg, err := Load(filepath.Join(root, "drift.yaml"), root)
	require.NoError(t, err)
	require.Equal(t, root, cfg.Project.Root)
	require.True(t, cfg.Walker.RespectGitignore)
}

func TestLoadOverridesDefaults(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "drift.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
project:
  name: demo
walker:
  maxFileSize: 1024
  followSymlinks: true
`), 0o644))

	cfg, err := Load(path, root)
	require.NoError(t, err)
	require.Equal(t, "demo", cfg.Project.Name)
	require.Equal(t, int64(1024), cfg.Walker.MaxFileSize)
	require.True(t, cfg.Walker.FollowSymlinks)
}

func TestLoadIgnoreFilesLayered(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("*.log\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".driftignore"), []byte("fixtures/\n"), 0o644))

	m, err := LoadIgnoreFiles(root, Walker{RespectGitignore: true, RespectDriftignore: true})
	require.NoError(t, err)
	require.NotNil(t, m)
	require.True(t, m.MatchesPath("debug.log"))
	require.True(t, m.MatchesPath("fixtures/a.json"))
	require.False(t, m.MatchesPath("main.go"))
}
