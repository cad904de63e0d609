// Package matcher recognizes data-access operations on normalized call
// chains (spec §4.4 "Framework Matchers"): which table, which fields, and
// whether the operation reads, writes, or deletes. Each matcher is scoped
// to the ORMs/query-builders of one or more languages; the Engine runs
// registered matchers in priority order and returns the first hit.
package matcher

import (
	"sort"

	"github.com/ruizrica/drift-sub012/internal/types"
)

// Matcher recognizes one framework's call-chain shape.
type Matcher interface {
	ID() string
	SupportedLanguages() []types.Language
	Priority() int
	Match(chain types.UnifiedCallChain) *types.PatternMatchResult
}

// Engine runs candidate matchers in priority order, returning the first
// non-nil result per chain (spec §4.4 "A matcher engine runs candidates in
// priority order").
type Engine struct {
	matchers []Matcher
}

// NewEngine builds the default Engine with the spec's full catalog: Prisma,
// Drizzle, Knex, TypeORM, Sequelize, Mongoose, SQLAlchemy, Django ORM,
// Supabase, SQLx, SeaORM, Diesel, and the raw-SQL fallback.
func NewEngine() *Engine {
	e := &Engine{}
	e.Register(
		&PrismaMatcher{}, &DrizzleMatcher{}, &KnexMatcher{}, &TypeORMMatcher{},
		&SequelizeMatcher{}, &MongooseMatcher{}, &SupabaseMatcher{},
		&SQLAlchemyMatcher{}, &DjangoORMMatcher{},
		&SQLxMatcher{}, &SeaORMMatcher{}, &DieselMatcher{},
		&RawSQLMatcher{},
	)
	return e
}

// Register adds matchers and re-sorts the candidate list by descending
// priority, then lexicographic id as a deterministic tiebreak.
func (e *Engine) Register(ms ...Matcher) {
	e.matchers = append(e.matchers, ms...)
	sort.SliceStable(e.matchers, func(i, j int) bool {
		if e.matchers[i].Priority() != e.matchers[j].Priority() {
			return e.matchers[i].Priority() > e.matchers[j].Priority()
		}
		return e.matchers[i].ID() < e.matchers[j].ID()
	})
}

// Match runs every matcher supporting chain.Language in priority order and
// returns the first hit, with MatcherID stamped onto the result.
func (e *Engine) Match(chain types.UnifiedCallChain) *types.PatternMatchResult {
	for _, m := range e.matchers {
		if !supports(m, chain.Language) {
			continue
		}
		if r := m.Match(chain); r != nil {
			r.MatcherID = m.ID()
			return r
		}
	}
	return nil
}

// MatchAll runs Match across every chain, skipping chains with no hit.
func (e *Engine) MatchAll(chains []types.UnifiedCallChain) []types.PatternMatchResult {
	var out []types.PatternMatchResult
	for _, c := range chains {
		if r := e.Match(c); r != nil {
			out = append(out, *r)
		}
	}
	return out
}

func supports(m Matcher, lang types.Language) bool {
	for _, l := range m.SupportedLanguages() {
		if l == lang {
			return true
		}
	}
	return false
}

// segmentNames returns the chain's segment names, for cheap "does this
// chain call any of X" checks.
func segmentNames(chain types.UnifiedCallChain) []string {
	names := make([]string, len(chain.Segments))
	for i, s := range chain.Segments {
		names[i] = s.Name
	}
	return names
}

func hasSegment(chain types.UnifiedCallChain, names ...string) (types.ChainSegment, bool) {
	for _, seg := range chain.Segments {
		for _, n := range names {
			if seg.Name == n {
				return seg, true
			}
		}
	}
	return types.ChainSegment{}, false
}

func firstStringArg(seg types.ChainSegment) (string, bool) {
	for _, a := range seg.Args {
		if a.Type == types.ArgString {
			return a.StringValue, true
		}
	}
	return "", false
}

func firstIdentifierArg(seg types.ChainSegment) (string, bool) {
	for _, a := range seg.Args {
		if a.Type == types.ArgIdentifier {
			return a.Value, true
		}
	}
	return "", false
}
