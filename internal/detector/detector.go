// Package detector implements Drift's detector framework (spec §4.5): a
// uniform Detector contract, a catalog of pattern detectors spanning API,
// auth, data-access, logging, performance, documentation, accessibility,
// security, testing, structural, and observability concerns, the engine
// that dispatches them across files, and the outlier-vs-majority
// classification that turns raw detections into Pattern locations and
// outliers.
package detector

import (
	"github.com/ruizrica/drift-sub012/internal/types"
)

// DataAccessObservation pairs a framework matcher's result with the
// normalized call chain it matched, so matcher-driven detectors can still
// report a file/line location (spec §4.4's PatternMatchResult carries
// neither).
type DataAccessObservation struct {
	Chain types.UnifiedCallChain
	Match types.PatternMatchResult
}

// Context is the read-only view of one file a Detector inspects. It never
// carries mutable state — detectors are pure functions of their inputs
// (spec §4.5 "Execution").
type Context struct {
	File             string
	Content          []byte
	Language         types.Language
	ParseResult      types.ParseResult
	IsTestFile       bool
	IsTypeDefinition bool
	Chains           []types.UnifiedCallChain
	DataAccess       []DataAccessObservation
}

// Detector is the uniform contract every pattern detector implements
// (spec §4.5 "Detector contract").
type Detector interface {
	ID() string
	Name() string
	Description() string
	Category() types.Category
	Subcategory() string
	SupportedLanguages() []types.Language
	Detect(ctx Context) types.DetectionResult
}

// SignatureDetector is implemented by detectors whose matches carry a
// majority-vs-outlier signature (spec §4.5 "Detectors may override
// signature extraction"). Detectors that don't implement it never produce
// outliers — their matches are pure presence/discovery signals.
type SignatureDetector interface {
	Detector
	Signature(match types.PatternMatch, ctx Context) string
}

// Base supplies the identity fields every concrete detector embeds,
// leaving only Detect (and, for signature-bearing detectors, Signature)
// to implement.
type Base struct {
	IDValue          string
	NameValue        string
	DescriptionValue string
	CategoryValue    types.Category
	SubcategoryValue string
	Languages        []types.Language
}

func (b Base) ID() string                           { return b.IDValue }
func (b Base) Name() string                         { return b.NameValue }
func (b Base) Description() string                  { return b.DescriptionValue }
func (b Base) Category() types.Category             { return b.CategoryValue }
func (b Base) Subcategory() string                  { return b.SubcategoryValue }
func (b Base) SupportedLanguages() []types.Language  { return b.Languages }

// Supports reports whether a detector applies to lang.
func Supports(d Detector, lang types.Language) bool {
	for _, l := range d.SupportedLanguages() {
		if l == lang {
			return true
		}
	}
	return false
}
