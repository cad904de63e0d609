// Command drift is the thin CLI shell over the scan/detect/gate pipeline
// (SPEC_FULL §10 "CLI shape"): it wires urfave/cli/v2 subcommands onto
// core.Services and the library packages, with no flag-parsing logic
// beyond what's needed to construct Services and call into the library.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ruizrica/drift-sub012/internal/config"
	"github.com/ruizrica/drift-sub012/internal/core"
	"github.com/ruizrica/drift-sub012/internal/debug"
	"github.com/ruizrica/drift-sub012/internal/decisionmining"
	"github.com/ruizrica/drift-sub012/internal/detector"
	"github.com/ruizrica/drift-sub012/internal/gate"
	"github.com/ruizrica/drift-sub012/internal/parser"
	"github.com/ruizrica/drift-sub012/internal/report"
	"github.com/ruizrica/drift-sub012/internal/store"
	"github.com/ruizrica/drift-sub012/internal/types"
	"github.com/ruizrica/drift-sub012/internal/version"
	"github.com/ruizrica/drift-sub012/internal/walker"
)

func main() {
	app := &cli.App{
		Name:    "drift",
		Usage:   "architectural pattern discovery and quality gating",
		Version: version.Version,
		Commands: []*cli.Command{
			scanCommand(),
			gateCommand(),
			approveCommand(),
			ignoreCommand(),
			statsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "drift:", err)
		os.Exit(1)
	}
}

func rootFlag() *cli.StringFlag {
	return &cli.StringFlag{Name: "root", Aliases: []string{"r"}, Value: ".", Usage: "project root to operate on"}
}

func verboseFlag() *cli.BoolFlag {
	return &cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}}
}

func newServices(c *cli.Context) (*core.Services, error) {
	root, err := filepath.Abs(c.String("root"))
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(c.Bool("verbose"))
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(filepath.Join(root, ".drift", "config.yaml"), root)
	if err != nil {
		return nil, err
	}
	return core.New(logger, cfg, root), nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	return debug.NewLogger(verbose)
}

func scanCommand() *cli.Command {
	return &cli.Command{
		Name:  "scan",
		Usage: "walk the project, parse every file, and classify patterns",
		Flags: []cli.Flag{rootFlag(), verboseFlag()},
		Action: func(c *cli.Context) error {
			svc, err := newServices(c)
			if err != nil {
				return err
			}
			result, err := runScan(c.Context, svc)
			if err != nil {
				return err
			}
			fmt.Printf("scanned %d files, found %d patterns, %d violations\n",
				len(result.files), len(result.patterns), len(result.violations))
			return nil
		},
	}
}

type scanResult struct {
	files      []types.File
	patterns   []*types.Pattern
	violations []types.Violation
}

// runScan executes the File Walker, Parser Layer, and Detector Framework
// in sequence, then merges the freshly classified patterns into the
// pattern store via the rescan state machine (spec §4.1-§4.6).
func runScan(ctx context.Context, svc *core.Services) (*scanResult, error) {
	w, err := walker.New(svc)
	if err != nil {
		return nil, err
	}
	wr, err := w.Scan(ctx, nil)
	if err != nil {
		return nil, err
	}

	registry := parser.NewRegistry()
	inputs := make([]detector.FileInput, 0, len(wr.Files))
	for _, f := range wr.Files {
		content, err := os.ReadFile(f.AbsolutePath)
		if err != nil {
			svc.Logger.Warn("unreadable file", zap.String("path", f.AbsolutePath), zap.Error(err))
			continue
		}
		pr := registry.Parse(f.AbsolutePath, content)
		inputs = append(inputs, detector.FileInput{
			Path:        f.RelativePath,
			Content:     content,
			Language:    f.Language,
			ParseResult: pr,
			IsTestFile:  detector.IsTestPath(f.RelativePath),
		})
	}

	engine := detector.NewEngine(svc.Logger)
	patterns, violations := engine.Run(inputs)

	patternStore, err := store.OpenPatternStore(filepath.Join(svc.Config.DriftDir(), "patterns.db"))
	if err != nil {
		return nil, err
	}
	defer patternStore.Close()

	merged, err := mergePatterns(patternStore, patterns)
	if err != nil {
		return nil, err
	}
	if err := patternStore.SaveAll(merged); err != nil {
		return nil, err
	}

	fileHashes := make(map[string]string, len(wr.Files))
	for _, f := range wr.Files {
		fileHashes[f.RelativePath] = f.Hash
	}
	manifest := store.NewManifestStore(filepath.Join(svc.Config.DriftDir(), "manifest.json"))
	if _, err := manifest.Rebuild(merged, fileHashes, time.Now()); err != nil {
		return nil, err
	}

	return &scanResult{files: wr.Files, patterns: merged, violations: violations}, nil
}

// mergePatterns applies spec §4.5's rescan state machine: every freshly
// observed pattern merges with its stored record (if any); every stored
// pattern not reobserved this scan is carried forward unmodified/stale-
// flagged via ApplyRescan(existing, nil, ...).
func mergePatterns(ps *store.PatternStore, observed []*types.Pattern) ([]*types.Pattern, error) {
	existing, err := ps.GetAll()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*types.Pattern, len(existing))
	for _, p := range existing {
		byID[p.ID] = p
	}

	now := time.Now()
	seen := make(map[string]bool, len(observed))
	var merged []*types.Pattern
	for _, o := range observed {
		seen[o.ID] = true
		merged = append(merged, store.ApplyRescan(byID[o.ID], o, 0.5, 0, now))
	}
	for id, p := range byID {
		if seen[id] {
			continue
		}
		merged = append(merged, store.ApplyRescan(p, nil, 0.5, 0, now))
	}
	return merged, nil
}

func gateCommand() *cli.Command {
	return &cli.Command{
		Name:  "gate",
		Usage: "run the quality-gate orchestrator against the last scan",
		Flags: []cli.Flag{
			rootFlag(),
			verboseFlag(),
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "text", Usage: "text|json|github|gitlab|sarif"},
			&cli.StringFlag{Name: "base-branch", Usage: "branch to resolve a branch-base regression baseline against"},
			&cli.StringSliceFlag{Name: "changed", Usage: "changed file paths to scope pattern-compliance/security-boundary checks to"},
		},
		Action: func(c *cli.Context) error {
			svc, err := newServices(c)
			if err != nil {
				return err
			}

			patternStore, err := store.OpenPatternStore(filepath.Join(svc.Config.DriftDir(), "patterns.db"))
			if err != nil {
				return err
			}
			defer patternStore.Close()
			patterns, err := patternStore.GetAll()
			if err != nil {
				return err
			}

			constraintStore, err := store.OpenConstraintStore(filepath.Join(svc.Config.DriftDir(), "constraints.db"))
			if err != nil {
				return err
			}
			defer constraintStore.Close()
			constraints, err := constraintStore.GetAll()
			if err != nil {
				return err
			}

			contractStore, err := store.OpenContractStore(filepath.Join(svc.Config.DriftDir(), "contracts.db"))
			if err != nil {
				return err
			}
			defer contractStore.Close()
			contracts, err := contractStore.GetAll()
			if err != nil {
				return err
			}

			baseline := decisionmining.ResolveBaseline(svc.Root, c.String("base-branch"), nil, nil)

			gctx := &gate.GateContext{
				Patterns:     patterns,
				Constraints:  constraints,
				Contracts:    contracts,
				ChangedFiles: c.StringSlice("changed"),
				Baseline:     baseline,
			}

			orchestrator := gate.NewOrchestrator(svc.Logger, gate.DefaultPolicy())
			result := orchestrator.Run(c.Context, gctx, types.PolicyRef{ID: "default", Name: "Default Drift policy"})

			reporter := report.ByFormat(c.String("format"))
			out, err := reporter.Render(result)
			if err != nil {
				return err
			}
			fmt.Println(string(out))

			if !result.Passed {
				os.Exit(result.ExitCode)
			}
			return nil
		},
	}
}

func approveCommand() *cli.Command {
	return &cli.Command{
		Name:      "approve",
		Usage:     "approve a discovered pattern, promoting it to an enforced convention",
		ArgsUsage: "<pattern-id>",
		Flags:     []cli.Flag{rootFlag(), verboseFlag()},
		Action: func(c *cli.Context) error {
			return withPatternStore(c, func(ps *store.PatternStore) error {
				return ps.Approve(c.Args().First())
			})
		},
	}
}

func ignoreCommand() *cli.Command {
	return &cli.Command{
		Name:      "ignore",
		Usage:     "mark a pattern ignored so it's excluded from constraint synthesis",
		ArgsUsage: "<pattern-id>",
		Flags:     []cli.Flag{rootFlag(), verboseFlag()},
		Action: func(c *cli.Context) error {
			return withPatternStore(c, func(ps *store.PatternStore) error {
				return ps.Ignore(c.Args().First())
			})
		},
	}
}

func withPatternStore(c *cli.Context, fn func(*store.PatternStore) error) error {
	id := c.Args().First()
	if id == "" {
		return cli.Exit("a pattern id is required", 2)
	}
	svc, err := newServices(c)
	if err != nil {
		return err
	}
	ps, err := store.OpenPatternStore(filepath.Join(svc.Config.DriftDir(), "patterns.db"))
	if err != nil {
		return err
	}
	defer ps.Close()
	return fn(ps)
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "print pattern-store summary statistics",
		Flags: []cli.Flag{rootFlag(), verboseFlag()},
		Action: func(c *cli.Context) error {
			svc, err := newServices(c)
			if err != nil {
				return err
			}
			ps, err := store.OpenPatternStore(filepath.Join(svc.Config.DriftDir(), "patterns.db"))
			if err != nil {
				return err
			}
			defer ps.Close()

			stats, err := ps.GetStats()
			if err != nil {
				return err
			}
			fmt.Printf("patterns: %d (locations=%d, outliers=%d)\n", stats.TotalPatterns, stats.TotalLocations, stats.TotalOutliers)
			for status, n := range stats.ByStatus {
				fmt.Printf("  %-12s %d\n", status, n)
			}
			return nil
		},
	}
}
