package matcher

import (
	"strings"

	"github.com/ruizrica/drift-sub012/internal/types"
)

// SQLxMatcher recognizes `sqlx::query("...").fetch_one(&pool).await` (spec
// §4.4 example 5). The table/fields/operation are recovered from the
// literal SQL string via ParseRawSQL, so this matcher mostly contributes an
// explicit SQLx provenance over the generic raw-SQL fallback; both report
// confidence 0.9.
type SQLxMatcher struct{}

func (m *SQLxMatcher) ID() string { return "sqlx" }
func (m *SQLxMatcher) SupportedLanguages() []types.Language {
	return []types.Language{types.LanguageRust}
}
func (m *SQLxMatcher) Priority() int { return 95 }

func (m *SQLxMatcher) Match(chain types.UnifiedCallChain) *types.PatternMatchResult {
	if !strings.Contains(chain.Receiver, "sqlx") {
		return nil
	}
	seg, ok := hasSegment(chain, "query", "query_as", "query_scalar")
	if !ok {
		return nil
	}
	sql, ok := firstStringArg(seg)
	if !ok {
		return nil
	}
	table, fields, op, ok := ParseRawSQL(sql)
	if !ok {
		return nil
	}
	return &types.PatternMatchResult{Table: table, Fields: fields, Operation: op, Confidence: 0.9, IsRawSQL: true}
}

// SeaORMMatcher recognizes `Entity::find().filter(...).all(&db).await` /
// `Entity::insert(model).exec(&db).await`.
type SeaORMMatcher struct{}

func (m *SeaORMMatcher) ID() string { return "seaorm" }
func (m *SeaORMMatcher) SupportedLanguages() []types.Language {
	return []types.Language{types.LanguageRust}
}
func (m *SeaORMMatcher) Priority() int { return 85 }

var seaormOps = []string{"find", "find_by_id", "insert", "update", "delete", "find_also_related"}

func (m *SeaORMMatcher) Match(chain types.UnifiedCallChain) *types.PatternMatchResult {
	seg, ok := hasSegment(chain, seaormOps...)
	if !ok {
		return nil
	}
	entity := chain.Receiver
	if i := strings.Index(entity, "::"); i >= 0 {
		entity = entity[:i]
	}
	if entity == "" {
		return nil
	}
	return &types.PatternMatchResult{Table: entity, Operation: opFor(seg.Name), Confidence: 0.8}
}

// DieselMatcher recognizes `users::table.filter(...).select(...).load(&conn)`.
type DieselMatcher struct{}

func (m *DieselMatcher) ID() string { return "diesel" }
func (m *DieselMatcher) SupportedLanguages() []types.Language {
	return []types.Language{types.LanguageRust}
}
func (m *DieselMatcher) Priority() int { return 75 }

func (m *DieselMatcher) Match(chain types.UnifiedCallChain) *types.PatternMatchResult {
	if !strings.Contains(chain.Receiver, "::table") && !strings.HasSuffix(chain.Receiver, "::dsl") {
		return nil
	}
	table := strings.TrimSuffix(strings.TrimSuffix(chain.Receiver, "::table"), "::dsl")
	op := types.OperationRead
	switch {
	case hasAny(chain, "insert_into"):
		op = types.OperationWrite
	case hasAny(chain, "update"):
		op = types.OperationWrite
	case hasAny(chain, "delete"):
		op = types.OperationDelete
	}
	return &types.PatternMatchResult{Table: table, Operation: op, Confidence: 0.8}
}
