package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ruizrica/drift-sub012/internal/types"
)

func openTestPatternStore(t *testing.T) *PatternStore {
	t.Helper()
	ps, err := OpenPatternStore(filepath.Join(t.TempDir(), "patterns.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ps.Close() })
	return ps
}

func samplePattern(id string) *types.Pattern {
	return &types.Pattern{
		ID:         id,
		Name:       "structured logging via zap",
		Category:   types.CategoryLogging,
		Status:     types.StatusDiscovered,
		Confidence: types.BucketConfidence(0.9),
		Locations:  []types.SemanticLocation{{File: "main.go", StartLine: 1, EndLine: 2}},
		FirstSeen:  time.Now(),
		LastSeen:   time.Now(),
	}
}

func TestPatternStoreAddGetRoundtrip(t *testing.T) {
	ps := openTestPatternStore(t)
	p := samplePattern("pattern.logging.zap")
	require.NoError(t, ps.Add(p))

	got, ok, err := ps.Get(p.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, p.Name, got.Name)
	require.Equal(t, types.StatusDiscovered, got.Status)
}

func TestPatternStoreGetMissingReturnsFalse(t *testing.T) {
	ps := openTestPatternStore(t)
	_, ok, err := ps.Get("does.not.exist")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPatternStoreApproveIgnoreUnignore(t *testing.T) {
	ps := openTestPatternStore(t)
	p := samplePattern("pattern.logging.zap")
	require.NoError(t, ps.Add(p))

	require.NoError(t, ps.Approve(p.ID))
	got, _, err := ps.Get(p.ID)
	require.NoError(t, err)
	require.Equal(t, types.StatusApproved, got.Status)

	require.NoError(t, ps.Ignore(p.ID))
	got, _, err = ps.Get(p.ID)
	require.NoError(t, err)
	require.Equal(t, types.StatusIgnored, got.Status)

	require.NoError(t, ps.Unignore(p.ID))
	got, _, err = ps.Get(p.ID)
	require.NoError(t, err)
	require.Equal(t, types.StatusDiscovered, got.Status)
}

func TestPatternStoreUnignoreNoopWhenNotIgnored(t *testing.T) {
	ps := openTestPatternStore(t)
	p := samplePattern("pattern.logging.zap")
	require.NoError(t, ps.Add(p))
	require.NoError(t, ps.Approve(p.ID))

	require.NoError(t, ps.Unignore(p.ID))
	got, _, err := ps.Get(p.ID)
	require.NoError(t, err)
	require.Equal(t, types.StatusApproved, got.Status, "unignore must not touch a non-ignored pattern")
}

func TestPatternStoreGetByCategoryAndStatus(t *testing.T) {
	ps := openTestPatternStore(t)
	logging := samplePattern("pattern.logging.zap")
	auth := samplePattern("pattern.auth.middleware")
	auth.Category = types.CategoryAuth
	require.NoError(t, ps.Add(logging))
	require.NoError(t, ps.Add(auth))
	require.NoError(t, ps.Approve(auth.ID))

	byCat, err := ps.GetByCategory(types.CategoryAuth)
	require.NoError(t, err)
	require.Len(t, byCat, 1)
	require.Equal(t, auth.ID, byCat[0].ID)

	byStatus, err := ps.GetByStatus(types.StatusApproved)
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	require.Equal(t, auth.ID, byStatus[0].ID)
}

func TestPatternStoreGetAllSortedByID(t *testing.T) {
	ps := openTestPatternStore(t)
	require.NoError(t, ps.Add(samplePattern("pattern.zzz")))
	require.NoError(t, ps.Add(samplePattern("pattern.aaa")))
	require.NoError(t, ps.Add(samplePattern("pattern.mmm")))

	all, err := ps.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "pattern.aaa", all[0].ID)
	require.Equal(t, "pattern.mmm", all[1].ID)
	require.Equal(t, "pattern.zzz", all[2].ID)
}

func TestPatternStoreRemove(t *testing.T) {
	ps := openTestPatternStore(t)
	p := samplePattern("pattern.logging.zap")
	require.NoError(t, ps.Add(p))
	require.NoError(t, ps.Remove(p.ID))

	_, ok, err := ps.Get(p.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPatternStoreGetStats(t *testing.T) {
	ps := openTestPatternStore(t)
	p1 := samplePattern("pattern.logging.zap")
	p1.Outliers = []types.Outlier{{SemanticLocation: types.SemanticLocation{File: "x.go"}, Reason: "uses fmt.Println"}}
	p2 := samplePattern("pattern.auth.middleware")
	p2.Category = types.CategoryAuth
	require.NoError(t, ps.Add(p1))
	require.NoError(t, ps.Add(p2))
	require.NoError(t, ps.Approve(p2.ID))

	stats, err := ps.GetStats()
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalPatterns)
	require.Equal(t, 1, stats.ByStatus[types.StatusApproved])
	require.Equal(t, 1, stats.ByStatus[types.StatusDiscovered])
	require.Equal(t, 1, stats.TotalOutliers)
	require.Equal(t, 2, stats.TotalLocations)
}

func TestPatternStoreSaveAllReplacesSet(t *testing.T) {
	ps := openTestPatternStore(t)
	require.NoError(t, ps.Add(samplePattern("pattern.old")))

	require.NoError(t, ps.SaveAll([]*types.Pattern{samplePattern("pattern.new")}))

	all, err := ps.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 2, "SaveAll upserts, it does not delete patterns absent from the batch")
}
