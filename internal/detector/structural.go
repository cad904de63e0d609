package detector

import (
	"regexp"

	"github.com/ruizrica/drift-sub012/internal/types"
)

// TestFunctionNamingDetector is a structural detector (spec §4.5
// "structural detector — operates on the parse tree"): it classifies each
// test file's function declarations by naming convention instead of
// scanning raw text, so renaming a helper that merely contains "test" in
// a comment can't produce a false positive.
type TestFunctionNamingDetector struct{ Base }

// NewTestFunctionNamingDetector builds the detector.
func NewTestFunctionNamingDetector() *TestFunctionNamingDetector {
	return &TestFunctionNamingDetector{Base: Base{
		IDValue:          "testing.function-naming-scheme",
		NameValue:        "Test function naming scheme",
		DescriptionValue: "Classifies test function declarations by naming convention (Test-prefixed, test_-prefixed, should-prefixed, camelCase test-prefixed); BDD it/describe blocks are not classified.",
		CategoryValue:    types.CategoryTesting,
		SubcategoryValue: "naming",
		Languages:        allLangs(),
	}}
}

var (
	goTestNameRe      = regexp.MustCompile(`^Test[A-Z]\w*$`)
	pySnakeTestNameRe = regexp.MustCompile(`^test_[a-z0-9_]+$`)
	shouldNameRe      = regexp.MustCompile(`(?i)^should[_A-Z]`)
	camelTestNameRe   = regexp.MustCompile(`^test[A-Z]\w*$`)
)

func classifyTestName(name string) string {
	switch {
	case goTestNameRe.MatchString(name):
		return "go-test-prefix"
	case pySnakeTestNameRe.MatchString(name):
		return "snake-test-prefix"
	case shouldNameRe.MatchString(name):
		return "should-prefix"
	case camelTestNameRe.MatchString(name):
		return "camel-test-prefix"
	default:
		return ""
	}
}

// Detect implements Detector.
func (d *TestFunctionNamingDetector) Detect(ctx Context) types.DetectionResult {
	if !ctx.IsTestFile {
		return types.DetectionResult{}
	}

	var matches []types.PatternMatch
	var total float64
	for _, fn := range ctx.ParseResult.FunctionsFull {
		sig := classifyTestName(fn.Name)
		if sig == "" {
			continue
		}
		matches = append(matches, types.PatternMatch{
			PatternID:  d.IDValue,
			Confidence: 0.8,
			Signature:  sig,
			Location: types.SemanticLocation{
				File:       ctx.File,
				StartLine:  fn.StartLine,
				EndLine:    fn.EndLine,
				Type:       types.LocationFunction,
				Name:       fn.Name,
				Language:   ctx.Language,
				Confidence: 0.8,
			},
		})
		total += 0.8
	}

	conf := 0.0
	if len(matches) > 0 {
		conf = total / float64(len(matches))
	}
	return types.DetectionResult{Patterns: matches, Confidence: conf}
}

// Signature implements SignatureDetector.
func (d *TestFunctionNamingDetector) Signature(match types.PatternMatch, _ Context) string {
	return match.Signature
}

// DecoratorAuthPlacementDetector is a structural detector over
// FunctionFull.Decorators: it groups functions by which auth-guard
// decorator/attribute form they carry, so a function using a differently
// shaped guard stands out against the codebase's majority. Functions with
// no auth decorator produce no match.
type DecoratorAuthPlacementDetector struct{ Base }

// NewDecoratorAuthPlacementDetector builds the detector.
func NewDecoratorAuthPlacementDetector() *DecoratorAuthPlacementDetector {
	return &DecoratorAuthPlacementDetector{Base: Base{
		IDValue:          "auth.decorator-placement",
		NameValue:        "Auth decorator placement",
		DescriptionValue: "Groups decorated handler functions by which auth-guard decorator form is applied.",
		CategoryValue:    types.CategoryAuth,
		SubcategoryValue: "decorator",
		Languages:        []types.Language{types.LanguagePython, types.LanguageJava, types.LanguageCSharp, types.LanguageTypeScript},
	}}
}

var authDecoratorRe = regexp.MustCompile(`(?i)^(login_required|permission_required|authorize|preauthorize|useguards|roles)`)

// Detect implements Detector.
func (d *DecoratorAuthPlacementDetector) Detect(ctx Context) types.DetectionResult {
	var matches []types.PatternMatch
	var total float64
	for _, fn := range ctx.ParseResult.FunctionsFull {
		for _, dec := range fn.Decorators {
			if !authDecoratorRe.MatchString(dec) {
				continue
			}
			matches = append(matches, types.PatternMatch{
				PatternID:  d.IDValue,
				Confidence: 0.8,
				Signature:  dec,
				Location: types.SemanticLocation{
					File:       ctx.File,
					StartLine:  fn.StartLine,
					EndLine:    fn.EndLine,
					Type:       types.LocationFunction,
					Name:       fn.Name,
					Language:   ctx.Language,
					Confidence: 0.8,
				},
			})
			total += 0.8
		}
	}

	conf := 0.0
	if len(matches) > 0 {
		conf = total / float64(len(matches))
	}
	return types.DetectionResult{Patterns: matches, Confidence: conf}
}

// Signature implements SignatureDetector.
func (d *DecoratorAuthPlacementDetector) Signature(match types.PatternMatch, _ Context) string {
	return match.Signature
}
