package walker

import "github.com/ruizrica/drift-sub012/internal/types"

// Snapshot is the previous scan's path->contentHash index, the baseline
// the walker diffs the current scan against (spec §4.1 "diff against the
// previous snapshot").
type Snapshot map[string]string

// Diff classifies every path seen across the previous and current scan
// (spec §4.1 "Diff semantics"). Rename detection is out of scope: a
// renamed file surfaces as one added path and one removed path.
type Diff struct {
	Added     []string `json:"added"`
	Modified  []string `json:"modified"`
	Removed   []string `json:"removed"`
	Unchanged []string `json:"unchanged"`
}

// computeDiff classifies files against prev by (path, hash) per spec
// §4.1: unchanged iff both match, modified iff path matches but hash
// differs, added iff only present now, removed iff only present then.
func computeDiff(prev Snapshot, files []types.File) Diff {
	var diff Diff
	seen := make(map[string]bool, len(files))

	for _, f := range files {
		seen[f.RelativePath] = true
		prevHash, ok := prev[f.RelativePath]
		switch {
		case !ok:
			diff.Added = append(diff.Added, f.RelativePath)
		case prevHash != f.Hash:
			diff.Modified = append(diff.Modified, f.RelativePath)
		default:
			diff.Unchanged = append(diff.Unchanged, f.RelativePath)
		}
	}

	for path := range prev {
		if !seen[path] {
			diff.Removed = append(diff.Removed, path)
		}
	}

	return diff
}
