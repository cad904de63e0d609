// Package walker discovers source files under a project root and
// produces the content-addressed File records the rest of the pipeline
// operates on (spec §4.1 "File Walker"). Directory traversal is
// sequential and breadth-first; hashing fans out across a bounded
// worker pool sized to the host's cores.
package walker

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ruizrica/drift-sub012/internal/config"
	"github.com/ruizrica/drift-sub012/internal/core"
	"github.com/ruizrica/drift-sub012/internal/langutil"
	"github.com/ruizrica/drift-sub012/internal/types"
	drifterrors "github.com/ruizrica/drift-sub012/internal/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Stats reports the timing and skip counters for one scan (spec §4.1).
type Stats struct {
	DiscoveryMs         int64   `json:"discoveryMs"`
	HashingMs           int64   `json:"hashingMs"`
	DiffMs              int64   `json:"diffMs"`
	CacheHitRate        float64 `json:"cacheHitRate"`
	FilesSkippedLarge   int     `json:"filesSkippedLarge"`
	FilesSkippedIgnored int     `json:"filesSkippedIgnored"`
	FilesSkippedBinary  int     `json:"filesSkippedBinary"`
}

// Result is a completed scan: the discovered files, its stats, and the
// diff against the snapshot passed to Scan.
type Result struct {
	Files []types.File
	Stats Stats
	Diff  Diff
}

// Walker discovers files under a project root per the config.Walker
// options carried in svc.Config.
type Walker struct {
	svc     *core.Services
	ignore  config.IgnoreMatcher
	include []string
}

// New builds a Walker, compiling the project's layered ignore files once.
func New(svc *core.Services) (*Walker, error) {
	w := svc.Config.Walker
	ignore, err := config.LoadIgnoreFiles(svc.Root, w)
	if err != nil {
		return nil, drifterrors.NewIOError("load-ignore-files", svc.Root, err)
	}
	return &Walker{svc: svc, ignore: ignore, include: w.IncludeGlobs}, nil
}

type discovered struct {
	path    string
	relPath string
	size    int64
	modTime time.Time
}

// Scan walks svc.Root, hashes every non-ignored file within the
// configured limits, and diffs the result against prev.
func (w *Walker) Scan(ctx context.Context, prev Snapshot) (*Result, error) {
	w.svc.Config.Walker.IgnorePatterns = mergeBuiltins(w.svc.Config.Walker.IgnorePatterns)

	discoveryStart := time.Now()
	found, skippedIgnored, err := w.discover(ctx)
	if err != nil {
		return nil, err
	}
	discoveryMs := time.Since(discoveryStart).Milliseconds()

	hashStart := time.Now()
	files, skippedLarge, skippedBinary, err := w.hashAll(ctx, found)
	if err != nil {
		return nil, err
	}
	hashingMs := time.Since(hashStart).Milliseconds()

	diffStart := time.Now()
	diff := computeDiff(prev, files)
	diffMs := time.Since(diffStart).Milliseconds()

	var cacheHitRate float64
	if len(files) > 0 {
		cacheHitRate = float64(len(diff.Unchanged)) / float64(len(files))
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelativePath < files[j].RelativePath })

	return &Result{
		Files: files,
		Stats: Stats{
			DiscoveryMs:         discoveryMs,
			HashingMs:           hashingMs,
			DiffMs:              diffMs,
			CacheHitRate:        cacheHitRate,
			FilesSkippedLarge:   skippedLarge,
			FilesSkippedIgnored: skippedIgnored,
			FilesSkippedBinary:  skippedBinary,
		},
		Diff: diff,
	}, nil
}

// discover performs the sequential BFS traversal and composite filter
// evaluation (spec §4.1 "Algorithm"), returning every file that survives
// the ignore/include filters along with the ignored-file count.
func (w *Walker) discover(ctx context.Context) ([]discovered, int, error) {
	root := w.svc.Root
	if _, err := os.Stat(root); err != nil {
		return nil, 0, drifterrors.NewIOError("stat-root", root, err).WithHint("check that the project root exists")
	}

	walkerCfg := w.svc.Config.Walker
	visited := make(map[string]bool)
	type queueItem struct {
		path  string
		depth int
	}
	queue := []queueItem{{path: root, depth: 0}}

	var out []discovered
	skippedIgnored := 0

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, 0, drifterrors.NewCancellationError("walker-discover")
		}

		item := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(item.path)
		if err != nil {
			w.svc.Logger.Warn("unreadable directory", zap.String("path", item.path), zap.Error(err))
			continue
		}

		for _, entry := range entries {
			full := filepath.Join(item.path, entry.Name())
			rel, relErr := filepath.Rel(root, full)
			if relErr != nil {
				continue
			}

			info, err := entry.Info()
			if err != nil {
				continue
			}

			if info.Mode()&os.ModeSymlink != 0 {
				if !walkerCfg.FollowSymlinks {
					continue
				}
				resolved, err := filepath.EvalSymlinks(full)
				if err != nil || visited[resolved] {
					continue
				}
				visited[resolved] = true
				info, err = os.Stat(resolved)
				if err != nil {
					continue
				}
				full = resolved
			}

			if info.IsDir() {
				if w.isIgnoredDir(rel) {
					skippedIgnored++
					continue
				}
				if walkerCfg.MaxDepth > 0 && item.depth+1 > walkerCfg.MaxDepth {
					continue
				}
				queue = append(queue, queueItem{path: full, depth: item.depth + 1})
				continue
			}

			if !w.isIncluded(rel) || w.isIgnoredFile(rel) {
				skippedIgnored++
				continue
			}

			out = append(out, discovered{path: full, relPath: rel, size: info.Size(), modTime: info.ModTime()})
		}
	}

	return out, skippedIgnored, nil
}

func (w *Walker) isIgnoredDir(rel string) bool {
	return w.isIgnoredFile(rel + "/")
}

func (w *Walker) isIgnoredFile(rel string) bool {
	for _, pat := range w.svc.Config.Walker.IgnorePatterns {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	if w.ignore != nil && w.ignore.MatchesPath(rel) {
		return true
	}
	return false
}

func (w *Walker) isIncluded(rel string) bool {
	if len(w.include) == 0 {
		return true
	}
	for _, pat := range w.include {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}

// hashAll hashes the discovered files across a worker pool sized to the
// host's cores (spec §4.1 "Concurrency"). A single file's hash failure
// surfaces as a logged per-file error, not a fatal one.
func (w *Walker) hashAll(ctx context.Context, found []discovered) ([]types.File, int, int, error) {
	limit := w.svc.Config.Performance.MaxGoroutines
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	maxSize := w.svc.Config.Walker.MaxFileSize
	results := make([]*types.File, len(found))
	skippedLarge := make([]bool, len(found))
	skippedBinary := make([]bool, len(found))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, d := range found {
		i, d := i, d
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if maxSize > 0 && d.size > maxSize {
				skippedLarge[i] = true
				return nil
			}

			sample, err := readSample(d.path, 8*1024)
			if err != nil {
				w.svc.Logger.Warn("unreadable file", zap.String("path", d.path), zap.Error(err))
				return nil
			}
			if IsBinary(sample) {
				skippedBinary[i] = true
				return nil
			}

			if !w.svc.Config.Walker.ComputeHashes {
				results[i] = &types.File{
					AbsolutePath: d.path,
					RelativePath: d.relPath,
					Language:     langutil.ByExtension(d.relPath),
					Size:         d.size,
					ModTime:      d.modTime,
				}
				return nil
			}

			h, err := hashFile(d.path)
			if err != nil {
				w.svc.Logger.Warn("hash failed", zap.String("path", d.path), zap.Error(err))
				return nil
			}

			results[i] = &types.File{
				AbsolutePath: d.path,
				RelativePath: d.relPath,
				Language:     langutil.ByExtension(d.relPath),
				Size:         d.size,
				Hash:         h.Canonical,
				ShortID:      h.ShortID,
				ModTime:      d.modTime,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if err == context.Canceled {
			return nil, 0, 0, drifterrors.NewCancellationError("walker-hash")
		}
		return nil, 0, 0, err
	}

	files := make([]types.File, 0, len(found))
	large, binary := 0, 0
	for i, f := range results {
		if skippedLarge[i] {
			large++
			continue
		}
		if skippedBinary[i] {
			binary++
			continue
		}
		if f != nil {
			files = append(files, *f)
		}
	}

	return files, large, binary, nil
}

func readSample(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, n)
	r := bufio.NewReader(f)
	read, err := r.Read(buf)
	if err != nil && read == 0 {
		return nil, nil
	}
	return buf[:read], nil
}

func mergeBuiltins(patterns []string) []string {
	builtin := config.DefaultIgnorePatterns()
	seen := make(map[string]bool, len(patterns)+len(builtin))
	merged := make([]string, 0, len(patterns)+len(builtin))
	for _, p := range append(builtin, patterns...) {
		if !seen[p] {
			seen[p] = true
			merged = append(merged, p)
		}
	}
	return merged
}
