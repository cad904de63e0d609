package detector

import (
	"github.com/ruizrica/drift-sub012/internal/types"
)

// DataAccessDetector is the matcher-driven detector (spec §4.5 "matcher-
// driven detector"): it consumes the framework matcher's recognized
// operations and groups them by which ORM/query-builder the codebase
// predominantly uses, so a stray raw-SQL query in an otherwise
// Prisma-only codebase (or vice versa) surfaces as an outlier.
type DataAccessDetector struct{ Base }

// NewDataAccessDetector builds the data-access consistency detector.
func NewDataAccessDetector() *DataAccessDetector {
	return &DataAccessDetector{Base: Base{
		IDValue:          "data-access.provider-consistency",
		NameValue:        "Data-access provider consistency",
		DescriptionValue: "Groups data-access call sites by which ORM/query-builder matched, flagging stragglers once a majority provider is established.",
		CategoryValue:    types.CategoryDataAccess,
		SubcategoryValue: "provider",
		Languages:        allLangs(),
	}}
}

// Detect implements Detector.
func (d *DataAccessDetector) Detect(ctx Context) types.DetectionResult {
	if len(ctx.DataAccess) == 0 {
		return types.DetectionResult{}
	}

	var matches []types.PatternMatch
	var total float64
	for _, obs := range ctx.DataAccess {
		matches = append(matches, types.PatternMatch{
			PatternID:  d.IDValue,
			Confidence: obs.Match.Confidence,
			Signature:  obs.Match.MatcherID,
			Location: types.SemanticLocation{
				File:       obs.Chain.File,
				StartLine:  obs.Chain.Line,
				EndLine:    obs.Chain.Line,
				Type:       types.LocationBlock,
				Name:       obs.Match.Table,
				Language:   obs.Chain.Language,
				Confidence: obs.Match.Confidence,
			},
		})
		total += obs.Match.Confidence
	}

	return types.DetectionResult{Patterns: matches, Confidence: total / float64(len(matches))}
}

// Signature implements SignatureDetector: the matcher id (e.g. "prisma",
// "raw-sql") is the majority signature (spec §4.5's example of a majority
// "auth-middleware invocation form" generalizes directly to "ORM in use").
func (d *DataAccessDetector) Signature(match types.PatternMatch, _ Context) string {
	return match.Signature
}
