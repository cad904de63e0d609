package decisionmining

import (
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/ruizrica/drift-sub012/internal/types"
)

// churnThreshold is the minimum number of commits touching the same file
// set together before it's treated as a co-change signal worth recording
// as a decision (SPEC_FULL §13).
const churnThreshold = 3

// Mine walks commits and groups them by their touched-file set, emitting
// one DecisionRecord per file-set that recurs at least churnThreshold
// times — a lightweight proxy for "this group of files changes together
// because of a shared architectural decision."
func Mine(commits []*object.Commit, maxFilesPerGroup int) ([]types.DecisionRecord, error) {
	type group struct {
		files   []string
		commits []*object.Commit
	}
	byFileSet := make(map[string]*group)

	for _, c := range commits {
		files, err := filesTouchedBy(c)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 || len(files) > maxFilesPerGroup {
			continue
		}
		key := setKey(files)
		g, ok := byFileSet[key]
		if !ok {
			g = &group{files: files}
			byFileSet[key] = g
		}
		g.commits = append(g.commits, c)
	}

	keys := make([]string, 0, len(byFileSet))
	for k := range byFileSet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var records []types.DecisionRecord
	for _, k := range keys {
		g := byFileSet[k]
		if len(g.commits) < churnThreshold {
			continue
		}
		first := g.commits[len(g.commits)-1]
		records = append(records, types.DecisionRecord{
			ID:            "decision." + first.Hash.String()[:12],
			Title:         fmt.Sprintf("%d files changed together %d times", len(g.files), len(g.commits)),
			Rationale:     fmt.Sprintf("Recurring co-change group first observed in %q.", firstLine(first.Message)),
			FilesInvolved: g.files,
			FirstCommit:   first.Hash.String(),
			CreatedAt:     first.Author.When,
		})
	}
	return records, nil
}

func filesTouchedBy(c *object.Commit) ([]string, error) {
	stats, err := c.Stats()
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(stats))
	for _, s := range stats {
		files = append(files, s.Name)
	}
	sort.Strings(files)
	return files, nil
}

func setKey(files []string) string {
	key := ""
	for _, f := range files {
		key += f + "\x00"
	}
	return key
}

func firstLine(msg string) string {
	for i, r := range msg {
		if r == '\n' {
			return msg[:i]
		}
	}
	return msg
}
