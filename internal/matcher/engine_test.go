package matcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruizrica/drift-sub012/internal/types"
)

type fakeMatcher struct {
	id       string
	priority int
	langs    []types.Language
	result   *types.PatternMatchResult
}

func (f *fakeMatcher) ID() string                             { return f.id }
func (f *fakeMatcher) SupportedLanguages() []types.Language    { return f.langs }
func (f *fakeMatcher) Priority() int                           { return f.priority }
func (f *fakeMatcher) Match(types.UnifiedCallChain) *types.PatternMatchResult { return f.result }

func TestEngineMatchRunsHigherPriorityFirst(t *testing.T) {
	e := &Engine{}
	e.Register(
		&fakeMatcher{id: "low", priority: 1, langs: []types.Language{types.LanguageGo}, result: &types.PatternMatchResult{Table: "low"}},
		&fakeMatcher{id: "high", priority: 10, langs: []types.Language{types.LanguageGo}, result: &types.PatternMatchResult{Table: "high"}},
	)

	r := e.Match(types.UnifiedCallChain{Language: types.LanguageGo})
	require.NotNil(t, r)
	require.Equal(t, "high", r.Table)
	require.Equal(t, "high", r.MatcherID)
}

func TestEngineMatchSkipsUnsupportedLanguage(t *testing.T) {
	e := &Engine{}
	e.Register(&fakeMatcher{id: "ts-only", priority: 5, langs: []types.Language{types.LanguageTypeScript}, result: &types.PatternMatchResult{Table: "x"}})

	r := e.Match(types.UnifiedCallChain{Language: types.LanguageGo})
	require.Nil(t, r)
}

func TestEngineMatchFallsThroughToNextOnNilResult(t *testing.T) {
	e := &Engine{}
	e.Register(
		&fakeMatcher{id: "a", priority: 10, langs: []types.Language{types.LanguageGo}, result: nil},
		&fakeMatcher{id: "b", priority: 5, langs: []types.Language{types.LanguageGo}, result: &types.PatternMatchResult{Table: "b"}},
	)

	r := e.Match(types.UnifiedCallChain{Language: types.LanguageGo})
	require.NotNil(t, r)
	require.Equal(t, "b", r.Table)
}

func TestEngineMatchAllSkipsNonMatchingChains(t *testing.T) {
	e := &Engine{}
	e.Register(&fakeMatcher{id: "a", priority: 1, langs: []types.Language{types.LanguageGo}, result: &types.PatternMatchResult{Table: "x"}})

	chains := []types.UnifiedCallChain{
		{Language: types.LanguageGo},
		{Language: types.LanguagePython},
	}
	results := e.MatchAll(chains)
	require.Len(t, results, 1)
}

func TestNewEngineRegistersRawSQLFallback(t *testing.T) {
	e := NewEngine()
	chain := types.UnifiedCallChain{
		Language: types.LanguageGo,
		Segments: []types.ChainSegment{
			{Name: "Query", Args: []types.NormalizedArg{{Type: types.ArgString, StringValue: "SELECT id FROM users"}}},
		},
	}
	r := e.Match(chain)
	require.NotNil(t, r)
	require.Equal(t, "raw-sql", r.MatcherID)
}
