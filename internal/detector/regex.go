package detector

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/ruizrica/drift-sub012/internal/types"
)

// RegexGroup is one typed pattern inside a RegexDetector's catalog: a
// compiled-once regex, the tag it contributes to the pattern id, and the
// intrinsic confidence a hit carries (spec §4.5 "regex detector").
type RegexGroup struct {
	Tag        string
	Pattern    *regexp.Regexp
	Confidence float64
}

// RegexDetectorConfig declares one regex-catalog detector entry. Compiling
// ~57 of these from a literal table is the catalog's data-driven backbone
// (spec §2 "catalog of pattern detectors"); each entry still satisfies the
// full Detector contract through RegexDetector.
type RegexDetectorConfig struct {
	ID          string
	Name        string
	Description string
	Category    types.Category
	Subcategory string
	Languages   []types.Language
	Groups      []RegexGroup
}

// RegexDetector is the common base every catalog entry shares: scan lines,
// skip comments and excluded files, emit one PatternMatch per hit. Regexes
// are compiled once at construction (RegexDetectorConfig.Groups), never at
// call time (spec §9 "Dynamic regex composition at call time").
type RegexDetector struct {
	Base
	groups []RegexGroup
}

// NewRegexDetector builds a RegexDetector from a config.
func NewRegexDetector(cfg RegexDetectorConfig) *RegexDetector {
	return &RegexDetector{
		Base: Base{
			IDValue:          cfg.ID,
			NameValue:        cfg.Name,
			DescriptionValue: cfg.Description,
			CategoryValue:    cfg.Category,
			SubcategoryValue: cfg.Subcategory,
			Languages:        cfg.Languages,
		},
		groups: cfg.Groups,
	}
}

// Detect scans ctx.Content line by line against every compiled group,
// skipping excluded files and comment lines.
func (d *RegexDetector) Detect(ctx Context) types.DetectionResult {
	if ShouldExcludeFile(ctx.File) {
		return types.DetectionResult{}
	}

	var matches []types.PatternMatch
	var total float64
	lines := bytes.Split(ctx.Content, []byte("\n"))

	for i, lineBytes := range lines {
		line := string(lineBytes)
		if IsCommentLine(line) {
			continue
		}
		for _, g := range d.groups {
			if !g.Pattern.MatchString(line) {
				continue
			}
			lineNo := i + 1
			matches = append(matches, types.PatternMatch{
				PatternID:  d.IDValue,
				Confidence: g.Confidence,
				Signature:  g.Tag,
				Location: types.SemanticLocation{
					File:       ctx.File,
					StartLine:  lineNo,
					EndLine:    lineNo,
					Type:       types.LocationBlock,
					Name:       g.Tag,
					Language:   ctx.Language,
					Confidence: g.Confidence,
					Snippet:    strings.TrimSpace(line),
				},
			})
			total += g.Confidence
		}
	}

	conf := 0.0
	if len(matches) > 0 {
		conf = total / float64(len(matches))
	}
	return types.DetectionResult{Patterns: matches, Confidence: conf}
}

// Signature lets a RegexDetector's tag double as the majority signature
// when the engine classifies outliers (most catalog entries have uniform
// tags and so never diverge; detectors that legitimately vary, like the
// logging-library tag, use this to surface outliers).
func (d *RegexDetector) Signature(match types.PatternMatch, _ Context) string {
	return match.Signature
}

// ShouldExcludeFile filters generated/vendored/test-fixture/minified paths
// out of detection (spec §4.5 "shouldExcludeFile").
func ShouldExcludeFile(path string) bool {
	lower := "/" + strings.ToLower(path)
	for _, marker := range []string{
		".test.", ".spec.", "__tests__/", "__mocks__/", "node_modules/",
		"/dist/", "/build/", "/vendor/", ".min.js", ".min.css", ".generated.",
		"_pb2.py", ".pb.go",
	} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// IsCommentLine is a cheap heuristic comment filter shared across the
// regex catalog; it is not language-exact (no block-comment state
// machine) by design — a missed comment just costs one extra low-value
// match, which the confidence floor downstream tolerates.
func IsCommentLine(line string) bool {
	t := strings.TrimSpace(line)
	for _, prefix := range []string{"//", "#", "*", "'''", `"""`, "--"} {
		if strings.HasPrefix(t, prefix) {
			return true
		}
	}
	return false
}

// LineColumn converts a byte offset within content into a 1-based
// (line, column) pair.
func LineColumn(content []byte, offset int) (line, column int) {
	if offset > len(content) {
		offset = len(content)
	}
	line = 1 + bytes.Count(content[:offset], []byte("\n"))
	if idx := bytes.LastIndexByte(content[:offset], '\n'); idx >= 0 {
		column = offset - idx
	} else {
		column = offset + 1
	}
	return line, column
}
