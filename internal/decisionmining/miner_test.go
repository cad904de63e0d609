package decisionmining

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

func initTestRepo(t *testing.T) (*git.Repository, string) {
	t.Helper()
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)
	return repo, root
}

func commitFiles(t *testing.T, repo *git.Repository, root string, files map[string]string, when time.Time) *object.Commit {
	t.Helper()
	wt, err := repo.Worktree()
	require.NoError(t, err)

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
		_, err := wt.Add(name)
		require.NoError(t, err)
	}

	sig := &object.Signature{Name: "tester", Email: "tester@example.com", When: when}
	hash, err := wt.Commit("touch co-changed files", &git.CommitOptions{Author: sig})
	require.NoError(t, err)

	commit, err := repo.CommitObject(hash)
	require.NoError(t, err)
	return commit
}

func TestMineEmitsDecisionForRecurringCoChangeGroup(t *testing.T) {
	repo, root := initTestRepo(t)
	now := time.Now()

	var commits []*object.Commit
	for i := 0; i < churnThreshold; i++ {
		c := commitFiles(t, repo, root, map[string]string{
			"a.go": "package a\n// v" + string(rune('0'+i)) + "\n",
			"b.go": "package b\n// v" + string(rune('0'+i)) + "\n",
		}, now.Add(time.Duration(i)*time.Hour))
		commits = append([]*object.Commit{c}, commits...)
	}

	records, err := Mine(commits, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.ElementsMatch(t, []string{"a.go", "b.go"}, records[0].FilesInvolved)
}

func TestMineSkipsGroupsBelowChurnThreshold(t *testing.T) {
	repo, root := initTestRepo(t)
	now := time.Now()

	c1 := commitFiles(t, repo, root, map[string]string{"a.go": "package a\n"}, now)
	c2 := commitFiles(t, repo, root, map[string]string{"a.go": "package a\nv2\n"}, now.Add(time.Hour))

	records, err := Mine([]*object.Commit{c2, c1}, 10)
	require.NoError(t, err)
	require.Empty(t, records, "two occurrences is below the churn threshold of three")
}

func TestMineSkipsGroupsAboveMaxFilesPerGroup(t *testing.T) {
	repo, root := initTestRepo(t)
	now := time.Now()

	var commits []*object.Commit
	for i := 0; i < churnThreshold; i++ {
		c := commitFiles(t, repo, root, map[string]string{
			"a.go": "package a\n// v" + string(rune('0'+i)) + "\n",
			"b.go": "package b\n// v" + string(rune('0'+i)) + "\n",
		}, now.Add(time.Duration(i)*time.Hour))
		commits = append([]*object.Commit{c}, commits...)
	}

	records, err := Mine(commits, 1)
	require.NoError(t, err)
	require.Empty(t, records, "a group touching more files than maxFilesPerGroup is excluded")
}
