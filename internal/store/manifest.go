package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	drifterrors "github.com/ruizrica/drift-sub012/internal/errors"
	"github.com/ruizrica/drift-sub012/internal/types"
)

// ManifestStore persists the forward/reverse pattern index at
// `.drift/manifest.json` (spec §3 "Manifest", §5 "atomic rename-based
// persistence" — unlike the bbolt-backed stores, the manifest is a single
// plain JSON document meant to be diffed/read by humans and CI tooling).
type ManifestStore struct {
	path string
}

// NewManifestStore returns a store rooted at path.
func NewManifestStore(path string) *ManifestStore {
	return &ManifestStore{path: path}
}

// Load reads the manifest, returning a fresh empty one if the file does
// not yet exist (first scan of a repo).
func (s *ManifestStore) Load() (*types.Manifest, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return types.NewManifest(), nil
	}
	if err != nil {
		return nil, drifterrors.NewStoreError(s.path, "read manifest", err)
	}
	var m types.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, drifterrors.NewStoreError(s.path, "parse manifest", err)
	}
	return &m, nil
}

// Save writes m to disk via a temp-file-then-rename so a reader never
// observes a partially written manifest (spec §5 "writes ... atomic").
func (s *ManifestStore) Save(m *types.Manifest) error {
	m.GeneratedAt = time.Now()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return drifterrors.NewStoreError(s.path, "marshal manifest", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return drifterrors.NewStoreError(s.path, "create manifest dir", err)
	}

	tmp, err := os.CreateTemp(dir, ".manifest-*.tmp")
	if err != nil {
		return drifterrors.NewStoreError(s.path, "create temp manifest", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return drifterrors.NewStoreError(s.path, "write temp manifest", err)
	}
	if err := tmp.Close(); err != nil {
		return drifterrors.NewStoreError(s.path, "close temp manifest", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return drifterrors.NewStoreError(s.path, "rename manifest into place", err)
	}
	return nil
}

// Rebuild recomputes both directions of the index from the current
// pattern set and per-file scan results, then saves it.
func (s *ManifestStore) Rebuild(patterns []*types.Pattern, fileHashes map[string]string, scannedAt time.Time) (*types.Manifest, error) {
	m := types.NewManifest()
	m.GeneratedAt = scannedAt

	filePatterns := make(map[string][]string)
	for _, p := range patterns {
		m.Patterns[p.ID] = p
		seen := make(map[string]bool)
		for _, loc := range p.Locations {
			if seen[loc.File] {
				continue
			}
			seen[loc.File] = true
			filePatterns[loc.File] = append(filePatterns[loc.File], p.ID)
		}
	}

	for file, hash := range fileHashes {
		m.Files[file] = types.ManifestFileEntry{
			FileHash:      hash,
			PatternIDs:    filePatterns[file],
			LastScannedAt: scannedAt,
		}
	}

	if err := s.Save(m); err != nil {
		return nil, err
	}
	return m, nil
}
