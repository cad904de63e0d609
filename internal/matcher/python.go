package matcher

import (
	"strings"

	"github.com/ruizrica/drift-sub012/internal/types"
)

// SQLAlchemyMatcher recognizes `session.query(Model).filter(...).all()` and
// `session.add(obj)` / `session.delete(obj)` (spec §4.4 catalog).
type SQLAlchemyMatcher struct{}

func (m *SQLAlchemyMatcher) ID() string { return "sqlalchemy" }
func (m *SQLAlchemyMatcher) SupportedLanguages() []types.Language {
	return []types.Language{types.LanguagePython}
}
func (m *SQLAlchemyMatcher) Priority() int { return 85 }

func (m *SQLAlchemyMatcher) Match(chain types.UnifiedCallChain) *types.PatternMatchResult {
	if !strings.Contains(chain.Receiver, "session") && !strings.Contains(chain.Receiver, "db.session") {
		return nil
	}
	if seg, ok := hasSegment(chain, "query"); ok {
		table, _ := firstIdentifierArg(seg)
		return &types.PatternMatchResult{Table: table, Operation: types.OperationRead, Confidence: 0.85}
	}
	if seg, ok := hasSegment(chain, "add", "add_all", "merge"); ok {
		table, _ := firstIdentifierArg(seg)
		return &types.PatternMatchResult{Table: table, Operation: types.OperationWrite, Confidence: 0.7}
	}
	if seg, ok := hasSegment(chain, "delete"); ok {
		table, _ := firstIdentifierArg(seg)
		return &types.PatternMatchResult{Table: table, Operation: types.OperationDelete, Confidence: 0.7}
	}
	return nil
}

// DjangoORMMatcher recognizes `Model.objects.filter/get/create/update/delete(...)`.
type DjangoORMMatcher struct{}

func (m *DjangoORMMatcher) ID() string { return "django-orm" }
func (m *DjangoORMMatcher) SupportedLanguages() []types.Language {
	return []types.Language{types.LanguagePython}
}
func (m *DjangoORMMatcher) Priority() int { return 80 }

var djangoOps = []string{"filter", "get", "all", "create", "update", "delete", "get_or_create", "bulk_create", "exclude", "annotate"}

func (m *DjangoORMMatcher) Match(chain types.UnifiedCallChain) *types.PatternMatchResult {
	if !strings.Contains(chain.Receiver, ".objects") {
		return nil
	}
	seg, ok := hasSegment(chain, djangoOps...)
	if !ok {
		return nil
	}
	table := strings.TrimSuffix(chain.Receiver, ".objects")
	return &types.PatternMatchResult{Table: table, Operation: opFor(seg.Name), Confidence: 0.85}
}
