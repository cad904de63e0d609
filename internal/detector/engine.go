package detector

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ruizrica/drift-sub012/internal/callgraph"
	drifterrors "github.com/ruizrica/drift-sub012/internal/errors"
	"github.com/ruizrica/drift-sub012/internal/matcher"
	"github.com/ruizrica/drift-sub012/internal/types"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// outlierFloor is the minimum observation count before a pattern's
// divergent matches are meaningfully classified as outliers rather than
// just sparse data (spec §9 open question, resolved SPEC_FULL §14: N=3).
const outlierFloor = 3

// unhealthyThreshold is how many per-file failures, counted over the
// engine's lifetime and never reset, mark a detector unhealthy (spec §4.5 "Failure semantics").
const unhealthyThreshold = 5

// FileInput is one file handed to the engine for detection, carrying
// everything a Detector's Context needs.
type FileInput struct {
	Path             string
	Content          []byte
	Language         types.Language
	ParseResult      types.ParseResult
	IsTestFile       bool
	IsTypeDefinition bool
}

// Engine dispatches the detector catalog across files, normalizes call
// chains and runs framework matchers ahead of matcher-driven detectors,
// and performs the cross-file majority/outlier classification (spec
// §4.5 "Execution", "Outlier classification").
type Engine struct {
	logger    *zap.Logger
	detectors []Detector
	byLang    map[types.Language][]Detector
	matchers  *matcher.Engine

	mu         sync.Mutex
	failures   map[string]int
	Goroutines int
}

// NewEngine builds an Engine with the full built-in catalog registered:
// the regex-driven catalog (catalog.go), plus the structural and
// matcher-driven detectors (structural.go, api.go, dataaccess.go).
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		logger:     logger,
		byLang:     make(map[types.Language][]Detector),
		matchers:   matcher.NewEngine(),
		failures:   make(map[string]int),
		Goroutines: runtime.NumCPU(),
	}
	e.Register(BuildCatalog()...)
	e.Register(
		NewRouteEnvelopeDetector(),
		NewDataAccessDetector(),
		NewTestFunctionNamingDetector(),
		NewDecoratorAuthPlacementDetector(),
	)
	return e
}

// Register adds detectors to the catalog and indexes them by language.
func (e *Engine) Register(ds ...Detector) {
	e.detectors = append(e.detectors, ds...)
	for _, d := range ds {
		for _, lang := range d.SupportedLanguages() {
			e.byLang[lang] = append(e.byLang[lang], d)
		}
	}
}

// rawMatch carries one detector's PatternMatch plus enough context to
// classify it (the detector it came from, for Signature extraction, and
// the originating file for coverage counting).
type rawMatch struct {
	match    types.PatternMatch
	detector Detector
	ctx      Context
	file     string
}

// Run executes the full pipeline across every input file: build the
// per-file Context (normalized chains, matcher hits), dispatch every
// detector whose SupportedLanguages includes the file's language, collect
// every violation directly, and merge PatternMatches per pattern id across
// files into the final classified Pattern set (spec §4.5, §5 "deterministic
// reduction ... so repeated scans ... produce byte-identical stored state").
func (e *Engine) Run(inputs []FileInput) ([]*types.Pattern, []types.Violation) {
	var mu sync.Mutex
	var allMatches []rawMatch
	var allViolations []types.Violation

	p := pool.New().WithMaxGoroutines(e.Goroutines)
	for _, in := range inputs {
		in := in
		p.Go(func() {
			ctx := e.buildContext(in)
			matches, violations := e.runFile(ctx)
			mu.Lock()
			allMatches = append(allMatches, matches...)
			allViolations = append(allViolations, violations...)
			mu.Unlock()
		})
	}
	p.Wait()

	patterns := e.classify(allMatches)

	sort.Slice(allViolations, func(i, j int) bool {
		if allViolations[i].File != allViolations[j].File {
			return allViolations[i].File < allViolations[j].File
		}
		return allViolations[i].StartLine < allViolations[j].StartLine
	})

	return patterns, allViolations
}

func (e *Engine) buildContext(in FileInput) Context {
	chains := callgraph.BuildChains(in.Path, in.Language, in.ParseResult)
	var obs []DataAccessObservation
	for _, c := range chains {
		if r := e.matchers.Match(c); r != nil {
			obs = append(obs, DataAccessObservation{Chain: c, Match: *r})
		}
	}
	return Context{
		File:             in.Path,
		Content:          in.Content,
		Language:         in.Language,
		ParseResult:      in.ParseResult,
		IsTestFile:       in.IsTestFile,
		IsTypeDefinition: in.IsTypeDefinition,
		Chains:           chains,
		DataAccess:       obs,
	}
}

// runFile invokes every applicable detector on one file. A detector that
// panics is caught, logged as a DetectorError, and skipped for that file
// only — other detectors and files proceed (spec §4.5, §7 DetectorError).
func (e *Engine) runFile(ctx Context) ([]rawMatch, []types.Violation) {
	var matches []rawMatch
	var violations []types.Violation

	for _, d := range e.byLang[ctx.Language] {
		result := e.safeDetect(d, ctx)
		for _, m := range result.Patterns {
			matches = append(matches, rawMatch{match: m, detector: d, ctx: ctx, file: ctx.File})
		}
		violations = append(violations, result.Violations...)
	}
	return matches, violations
}

func (e *Engine) safeDetect(d Detector, ctx Context) (result types.DetectionResult) {
	defer func() {
		if r := recover(); r != nil {
			err := drifterrors.NewDetectorError(d.ID(), ctx.File, fmt.Errorf("%v", r))
			e.logger.Warn("detector failed", zap.String("detector", d.ID()), zap.String("file", ctx.File), zap.Error(err))
			e.recordFailure(d.ID())
			result = types.DetectionResult{}
		}
	}()
	return d.Detect(ctx)
}

func (e *Engine) recordFailure(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failures[id]++
	if e.failures[id] == unhealthyThreshold {
		e.logger.Warn("detector marked unhealthy", zap.String("detector", id), zap.Int("failures", e.failures[id]))
	}
}

// classify groups raw matches by pattern id and applies the majority-vs-
// outlier split, then assembles each id's matches into a Pattern (spec
// §4.5 "Outlier classification"). Locations and outliers are stable-sorted
// by (file, start-line); SemanticLocation carries no column.
func (e *Engine) classify(raw []rawMatch) []*types.Pattern {
	byPattern := make(map[string][]rawMatch)
	for _, m := range raw {
		byPattern[m.match.PatternID] = append(byPattern[m.match.PatternID], m)
	}

	ids := make([]string, 0, len(byPattern))
	for id := range byPattern {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	now := time.Now()
	var patterns []*types.Pattern
	for _, id := range ids {
		matches := byPattern[id]
		d := matches[0].detector

		locations, outliers := splitOutliers(matches)

		sort.SliceStable(locations, func(i, j int) bool {
			if locations[i].File != locations[j].File {
				return locations[i].File < locations[j].File
			}
			return locations[i].StartLine < locations[j].StartLine
		})
		sort.SliceStable(outliers, func(i, j int) bool {
			if outliers[i].File != outliers[j].File {
				return outliers[i].File < outliers[j].File
			}
			return outliers[i].StartLine < outliers[j].StartLine
		})

		patterns = append(patterns, &types.Pattern{
			ID:          id,
			Name:        d.Name(),
			Category:    d.Category(),
			Subcategory: d.Subcategory(),
			Status:      types.StatusDiscovered,
			Confidence:  types.BucketConfidence(aggregateConfidence(matches)),
			Locations:   locations,
			Outliers:    outliers,
			Severity:    types.SeverityForStatus(types.StatusDiscovered),
			FirstSeen:   now,
			LastSeen:    now,
			Description: d.Description(),
		})
	}
	return patterns
}

// splitOutliers implements spec §4.5's majority-signature rule: a match
// whose Signature differs from the pattern's majority AND whose pattern
// has at least outlierFloor observations is reclassified as an outlier.
// The majority is the signature with the most matches; ties favor the signature with the widest file
// coverage, then lexicographically (spec §4.5 "Majority tie-breaks").
func splitOutliers(matches []rawMatch) ([]types.SemanticLocation, []types.Outlier) {
	var locations []types.SemanticLocation
	var outliers []types.Outlier

	if len(matches) < outlierFloor {
		for _, m := range matches {
			locations = append(locations, m.match.Location)
		}
		return locations, outliers
	}

	type tally struct {
		count int
		files map[string]bool
	}
	bySignature := make(map[string]*tally)
	for _, m := range matches {
		sig := signatureOf(m)
		if sig == "" {
			continue
		}
		t, ok := bySignature[sig]
		if !ok {
			t = &tally{files: make(map[string]bool)}
			bySignature[sig] = t
		}
		t.count++
		t.files[m.file] = true
	}

	majority := ""
	if len(bySignature) > 0 {
		sigs := make([]string, 0, len(bySignature))
		for s := range bySignature {
			sigs = append(sigs, s)
		}
		sort.Slice(sigs, func(i, j int) bool {
			ti, tj := bySignature[sigs[i]], bySignature[sigs[j]]
			if ti.count != tj.count {
				return ti.count > tj.count
			}
			ci, cj := len(ti.files), len(tj.files)
			if ci != cj {
				return ci > cj
			}
			return sigs[i] < sigs[j]
		})
		majority = sigs[0]
	}

	for _, m := range matches {
		sig := signatureOf(m)
		if sig == "" || majority == "" || sig == majority {
			locations = append(locations, m.match.Location)
			continue
		}
		outliers = append(outliers, types.Outlier{
			SemanticLocation: m.match.Location,
			Reason:           fmt.Sprintf("diverges from the codebase's predominant %q form (found %q)", majority, sig),
		})
	}
	return locations, outliers
}

func signatureOf(m rawMatch) string {
	if sd, ok := m.detector.(SignatureDetector); ok {
		return sd.Signature(m.match, m.ctx)
	}
	return ""
}

// aggregateConfidence implements spec §4.5: "min(1, weighted-mean-of-
// matches + small bonus when occurrences >= k)".
func aggregateConfidence(matches []rawMatch) float64 {
	if len(matches) == 0 {
		return 0
	}
	var sum float64
	for _, m := range matches {
		sum += m.match.Confidence
	}
	mean := sum / float64(len(matches))
	bonus := 0.0
	if len(matches) >= 5 {
		bonus = 0.05
	}
	return math.Min(1, mean+bonus)
}

// IsTestPath is a shared heuristic for tagging IsTestFile on a FileInput,
// reused by anything constructing one outside the walker/parser pipeline.
func IsTestPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.Contains(lower, ".test.") || strings.Contains(lower, ".spec.") ||
		strings.Contains(lower, "_test.go") || strings.HasPrefix(lower, "test_") ||
		strings.Contains(lower, "__tests__/") || strings.Contains(lower, "/tests/") ||
		strings.HasPrefix(lower, "tests/")
}
