package walker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ruizrica/drift-sub012/internal/config"
	"github.com/ruizrica/drift-sub012/internal/core"
	"github.com/ruizrica/drift-sub012/internal/debug"
	"github.com/stretchr/testify/require"
)

func setupProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules", "dep"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "node_modules", "dep", "x.js"), []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pkg", "lib.go"), []byte("package pkg\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "bin.dat"), append([]byte{0x00, 0x01}, []byte("data")...), 0o644))
	return root
}

func newServices(t *testing.T, root string) *core.Services {
	t.Helper()
	cfg := config.Default(root)
	return core.New(debug.NewNop(), cfg, root)
}

func TestScanDiscoversAndFiltersFiles(t *testing.T) {
	root := setupProject(t)
	svc := newServices(t, root)

	w, err := New(svc)
	require.NoError(t, err)

	result, err := w.Scan(context.Background(), nil)
	require.NoError(t, err)

	var paths []string
	for _, f := range result.Files {
		paths = append(paths, f.RelativePath)
	}
	require.Contains(t, paths, "main.go")
	require.Contains(t, paths, filepath.Join("pkg", "lib.go"))
	require.NotContains(t, paths, filepath.Join("node_modules", "dep", "x.js"))
	require.NotContains(t, paths, "bin.dat")
	require.Equal(t, 1, result.Stats.FilesSkippedBinary)
}

func TestScanDiffAgainstSnapshot(t *testing.T) {
	root := setupProject(t)
	svc := newServices(t, root)
	w, err := New(svc)
	require.NoError(t, err)

	first, err := w.Scan(context.Background(), nil)
	require.NoError(t, err)

	snapshot := make(Snapshot, len(first.Files))
	for _, f := range first.Files {
		snapshot[f.RelativePath] = f.Hash
	}

	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n\nfunc main() {}\n"), 0o644))
	require.NoError(t, os.Remove(filepath.Join(root, "pkg", "lib.go")))
	require.NoError(t, os.WriteFile(filepath.Join(root, "new.go"), []byte("package main\n"), 0o644))

	second, err := w.Scan(context.Background(), snapshot)
	require.NoError(t, err)

	require.Contains(t, second.Diff.Modified, "main.go")
	require.Contains(t, second.Diff.Added, "new.go")
	require.Contains(t, second.Diff.Removed, filepath.Join("pkg", "lib.go"))
}

func TestScanMissingRootIsFatal(t *testing.T) {
	root := filepath.Join(t.TempDir(), "does-not-exist")
	cfg := config.Default(root)
	svc := core.New(debug.NewNop(), cfg, root)

	w, err := New(svc)
	require.NoError(t, err)

	_, err = w.Scan(context.Background(), nil)
	require.Error(t, err)
}
