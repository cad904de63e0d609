package detector

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ruizrica/drift-sub012/internal/types"
)

// fakeSignatureDetector reports one fixed pattern match per file whose
// signature is looked up from a per-file table, letting tests control the
// majority/outlier split precisely.
type fakeSignatureDetector struct {
	Base
	bySignature map[string]string
}

func (f *fakeSignatureDetector) Detect(ctx Context) types.DetectionResult {
	sig, ok := f.bySignature[ctx.File]
	if !ok {
		return types.DetectionResult{}
	}
	return types.DetectionResult{
		Patterns: []types.PatternMatch{{
			PatternID:  "pattern.fake",
			Location:   types.SemanticLocation{File: ctx.File, StartLine: 1},
			Confidence: 0.9,
			Signature:  sig,
		}},
	}
}

func (f *fakeSignatureDetector) Signature(match types.PatternMatch, _ Context) string {
	return match.Signature
}

func newFakeDetector(bySignature map[string]string) *fakeSignatureDetector {
	return &fakeSignatureDetector{
		Base: Base{
			IDValue:       "fake",
			NameValue:     "fake pattern",
			CategoryValue: types.CategoryLogging,
			Languages:     []types.Language{types.LanguageGo},
		},
		bySignature: bySignature,
	}
}

func TestEngineRunBelowOutlierFloorProducesNoOutliers(t *testing.T) {
	e := &Engine{logger: zap.NewNop(), byLang: make(map[types.Language][]Detector), failures: make(map[string]int), Goroutines: 1}
	e.Register(newFakeDetector(map[string]string{"a.go": "zap", "b.go": "winston"}))

	inputs := []FileInput{
		{Path: "a.go", Language: types.LanguageGo},
		{Path: "b.go", Language: types.LanguageGo},
	}
	patterns, _ := e.Run(inputs)
	require.Len(t, patterns, 1)
	require.Empty(t, patterns[0].Outliers, "with only 2 observations, below outlierFloor=3, nothing is classified as an outlier")
	require.Len(t, patterns[0].Locations, 2)
}

func TestEngineRunAboveFloorSplitsMajorityAndOutlier(t *testing.T) {
	e := &Engine{logger: zap.NewNop(), byLang: make(map[types.Language][]Detector), failures: make(map[string]int), Goroutines: 1}
	e.Register(newFakeDetector(map[string]string{
		"a.go": "zap", "b.go": "zap", "c.go": "zap", "d.go": "winston",
	}))

	inputs := []FileInput{
		{Path: "a.go", Language: types.LanguageGo},
		{Path: "b.go", Language: types.LanguageGo},
		{Path: "c.go", Language: types.LanguageGo},
		{Path: "d.go", Language: types.LanguageGo},
	}
	patterns, _ := e.Run(inputs)
	require.Len(t, patterns, 1)
	require.Len(t, patterns[0].Outliers, 1)
	require.Equal(t, "d.go", patterns[0].Outliers[0].File)
	require.Len(t, patterns[0].Locations, 3)
}

func TestEngineRunMajorityIsMostCommonSignature(t *testing.T) {
	e := &Engine{logger: zap.NewNop(), byLang: make(map[types.Language][]Detector), failures: make(map[string]int), Goroutines: 1}
	e.Register(newFakeDetector(map[string]string{
		"a.go": "aaa", "b.go": "aaa", "c.go": "bbb",
	}))

	inputs := []FileInput{
		{Path: "a.go", Language: types.LanguageGo},
		{Path: "b.go", Language: types.LanguageGo},
		{Path: "c.go", Language: types.LanguageGo},
	}
	patterns, _ := e.Run(inputs)
	require.Len(t, patterns, 1)
	require.Len(t, patterns[0].Outliers, 1)
	require.Equal(t, "c.go", patterns[0].Outliers[0].File, "the most common signature (\"aaa\", 2 matches) wins majority")
}

func TestEngineRunRecoversFromPanickingDetector(t *testing.T) {
	e := &Engine{logger: zap.NewNop(), byLang: make(map[types.Language][]Detector), failures: make(map[string]int), Goroutines: 1}
	e.Register(&panickingDetector{Base: Base{IDValue: "bad", Languages: []types.Language{types.LanguageGo}}})

	patterns, violations := e.Run([]FileInput{{Path: "a.go", Language: types.LanguageGo}})
	require.Empty(t, patterns)
	require.Empty(t, violations)
}

type panickingDetector struct {
	Base
}

func (panickingDetector) Detect(Context) types.DetectionResult {
	panic("boom")
}

func TestIsTestPathRecognizesCommonConventions(t *testing.T) {
	require.True(t, IsTestPath("internal/foo/bar_test.go"))
	require.True(t, IsTestPath("src/components/Button.test.tsx"))
	require.True(t, IsTestPath("src/components/Button.spec.ts"))
	require.True(t, IsTestPath("src/__tests__/button.ts"))
	require.True(t, IsTestPath("tests/unit/button.py"))
	require.False(t, IsTestPath("internal/foo/bar.go"))
}
