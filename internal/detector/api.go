package detector

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ruizrica/drift-sub012/internal/types"
)

// RouteEnvelopeDetector recognizes the shape of a route handler's JSON
// response envelope — the set of top-level keys returned alongside the
// payload (e.g. {data,error} vs {result} vs {success,payload}). This is
// the detector spec §8's end-to-end scenarios describe directly: one
// pattern per envelope shape, with a differently-shaped handler
// reclassified as an outlier once three or more locations establish a
// majority (spec §4.5 "Outlier classification").
type RouteEnvelopeDetector struct{ Base }

// NewRouteEnvelopeDetector builds the envelope-shape detector.
func NewRouteEnvelopeDetector() *RouteEnvelopeDetector {
	return &RouteEnvelopeDetector{Base: Base{
		IDValue:          "api.response-envelope",
		NameValue:        "Response envelope shape",
		DescriptionValue: "Groups route handlers by the top-level key set of their JSON response envelope.",
		CategoryValue:    types.CategoryAPI,
		SubcategoryValue: "envelope",
		Languages:        webLangs(),
	}}
}

var envelopeCallRe = regexp.MustCompile(`(?:res\.json|response\.json|jsonify|c\.JSON\([^,]+,\s*gin\.H)\s*\(?\s*\{([^{}]*)\}`)

// Detect implements Detector.
func (d *RouteEnvelopeDetector) Detect(ctx Context) types.DetectionResult {
	if ShouldExcludeFile(ctx.File) {
		return types.DetectionResult{}
	}

	var matches []types.PatternMatch
	for i, line := range strings.Split(string(ctx.Content), "\n") {
		m := envelopeCallRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		keys := extractTopLevelKeys(m[1])
		if len(keys) == 0 {
			continue
		}
		sig := strings.Join(keys, ",")
		lineNo := i + 1
		matches = append(matches, types.PatternMatch{
			PatternID:  d.IDValue,
			Confidence: 0.75,
			Signature:  sig,
			Location: types.SemanticLocation{
				File:       ctx.File,
				StartLine:  lineNo,
				EndLine:    lineNo,
				Type:       types.LocationBlock,
				Name:       sig,
				Language:   ctx.Language,
				Confidence: 0.75,
				Snippet:    strings.TrimSpace(line),
			},
		})
	}

	conf := 0.0
	if len(matches) > 0 {
		conf = 0.75
	}
	return types.DetectionResult{Patterns: matches, Confidence: conf}
}

// Signature implements SignatureDetector: the envelope's sorted key list.
func (d *RouteEnvelopeDetector) Signature(match types.PatternMatch, _ Context) string {
	return match.Signature
}

func extractTopLevelKeys(body string) []string {
	var keys []string
	for _, part := range splitTopLevel(body) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if i := strings.Index(part, ":"); i >= 0 {
			keys = append(keys, strings.Trim(strings.TrimSpace(part[:i]), `"'`+"`"))
		} else {
			keys = append(keys, part)
		}
	}
	sort.Strings(keys)
	return keys
}

// splitTopLevel splits a braces/brackets-free-at-top-level comma list
// without breaking apart nested object/array values.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	last := 0
	for i, r := range s {
		switch r {
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}
