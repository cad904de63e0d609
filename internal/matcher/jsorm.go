package matcher

import (
	"strings"

	"github.com/ruizrica/drift-sub012/internal/types"
)

func jsLanguages() []types.Language {
	return []types.Language{types.LanguageTypeScript, types.LanguageJavaScript}
}

func opFor(name string) types.DataOperation {
	switch {
	case strings.HasPrefix(name, "delete") || strings.HasPrefix(name, "destroy") || name == "remove" || name == "del":
		return types.OperationDelete
	case strings.HasPrefix(name, "create") || strings.HasPrefix(name, "insert") ||
		strings.HasPrefix(name, "update") || strings.HasPrefix(name, "upsert") ||
		strings.HasPrefix(name, "save") || strings.HasPrefix(name, "set"):
		return types.OperationWrite
	default:
		return types.OperationRead
	}
}

// PrismaMatcher recognizes `prisma.<model>.<op>(...)` (spec §4.4 catalog).
type PrismaMatcher struct{}

func (m *PrismaMatcher) ID() string                          { return "prisma" }
func (m *PrismaMatcher) SupportedLanguages() []types.Language { return jsLanguages() }
func (m *PrismaMatcher) Priority() int                        { return 90 }

var prismaOps = []string{
	"findUnique", "findFirst", "findMany", "create", "createMany",
	"update", "updateMany", "upsert", "delete", "deleteMany", "count", "aggregate",
}

func (m *PrismaMatcher) Match(chain types.UnifiedCallChain) *types.PatternMatchResult {
	if !strings.Contains(chain.Receiver, "prisma.") && !strings.HasPrefix(chain.Receiver, "prisma") {
		return nil
	}
	seg, ok := hasSegment(chain, prismaOps...)
	if !ok {
		return nil
	}
	table := chain.Receiver
	if i := strings.LastIndex(table, "."); i >= 0 {
		table = table[i+1:]
	}
	return &types.PatternMatchResult{Table: table, Operation: opFor(seg.Name), Confidence: 0.95}
}

// DrizzleMatcher recognizes `db.select().from(table)` / `db.insert(table).values(...)`.
type DrizzleMatcher struct{}

func (m *DrizzleMatcher) ID() string                          { return "drizzle" }
func (m *DrizzleMatcher) SupportedLanguages() []types.Language { return jsLanguages() }
func (m *DrizzleMatcher) Priority() int                        { return 80 }

func (m *DrizzleMatcher) Match(chain types.UnifiedCallChain) *types.PatternMatchResult {
	readSeg, isRead := hasSegment(chain, "select")
	fromSeg, hasFrom := hasSegment(chain, "from")
	insertSeg, isInsert := hasSegment(chain, "insert")
	updateSeg, isUpdate := hasSegment(chain, "update")
	_, isDelete := hasSegment(chain, "delete")

	switch {
	case isRead && hasFrom:
		table, _ := firstIdentifierArg(fromSeg)
		return &types.PatternMatchResult{Table: table, Operation: types.OperationRead, Confidence: 0.85, MatcherID: "", Metadata: map[string]interface{}{"segment": readSeg.Name}}
	case isInsert:
		table, _ := firstIdentifierArg(insertSeg)
		return &types.PatternMatchResult{Table: table, Operation: types.OperationWrite, Confidence: 0.85}
	case isUpdate:
		table, _ := firstIdentifierArg(updateSeg)
		return &types.PatternMatchResult{Table: table, Operation: types.OperationWrite, Confidence: 0.85}
	case isDelete && hasFrom:
		table, _ := firstIdentifierArg(fromSeg)
		return &types.PatternMatchResult{Table: table, Operation: types.OperationDelete, Confidence: 0.85}
	}
	return nil
}

// KnexMatcher recognizes `knex('table').where(...).select(...)`.
type KnexMatcher struct{}

func (m *KnexMatcher) ID() string                          { return "knex" }
func (m *KnexMatcher) SupportedLanguages() []types.Language { return jsLanguages() }
func (m *KnexMatcher) Priority() int                        { return 70 }

func (m *KnexMatcher) Match(chain types.UnifiedCallChain) *types.PatternMatchResult {
	seg, ok := hasSegment(chain, "knex", "table")
	if !ok {
		if !strings.HasPrefix(chain.Receiver, "knex") {
			return nil
		}
	}
	table, tableOK := firstStringArg(seg)
	if !tableOK {
		table, tableOK = firstIdentifierArg(seg)
	}
	if !tableOK {
		return nil
	}
	op := types.OperationRead
	if _, ok := hasSegment(chain, "insert"); ok {
		op = types.OperationWrite
	} else if _, ok := hasSegment(chain, "update"); ok {
		op = types.OperationWrite
	} else if _, ok := hasSegment(chain, "del", "delete"); ok {
		op = types.OperationDelete
	}
	return &types.PatternMatchResult{Table: table, Operation: op, Confidence: 0.8}
}

// TypeORMMatcher recognizes repository-pattern calls:
// `getRepository(Entity).find(...)`, `repo.save(...)`, `createQueryBuilder(...)`.
type TypeORMMatcher struct{}

func (m *TypeORMMatcher) ID() string                          { return "typeorm" }
func (m *TypeORMMatcher) SupportedLanguages() []types.Language { return jsLanguages() }
func (m *TypeORMMatcher) Priority() int                        { return 75 }

var typeormOps = []string{"find", "findOne", "findOneBy", "save", "remove", "softRemove", "createQueryBuilder", "update", "delete"}

func (m *TypeORMMatcher) Match(chain types.UnifiedCallChain) *types.PatternMatchResult {
	seg, ok := hasSegment(chain, typeormOps...)
	if !ok {
		return nil
	}
	repoSeg, hasRepo := hasSegment(chain, "getRepository")
	table := chain.Receiver
	if hasRepo {
		if id, ok := firstIdentifierArg(repoSeg); ok {
			table = id
		}
	}
	return &types.PatternMatchResult{Table: table, Operation: opFor(seg.Name), Confidence: 0.8}
}

// SequelizeMatcher recognizes `Model.findAll/create/update/destroy(...)`.
type SequelizeMatcher struct{}

func (m *SequelizeMatcher) ID() string                          { return "sequelize" }
func (m *SequelizeMatcher) SupportedLanguages() []types.Language { return jsLanguages() }
func (m *SequelizeMatcher) Priority() int                        { return 65 }

var sequelizeOps = []string{"findAll", "findOne", "findByPk", "findOrCreate", "create", "update", "destroy", "bulkCreate", "count"}

func (m *SequelizeMatcher) Match(chain types.UnifiedCallChain) *types.PatternMatchResult {
	seg, ok := hasSegment(chain, sequelizeOps...)
	if !ok {
		return nil
	}
	if chain.Receiver == "" || strings.ToLower(chain.Receiver) == chain.Receiver {
		return nil // sequelize model receivers are PascalCase by convention
	}
	return &types.PatternMatchResult{Table: chain.Receiver, Operation: opFor(seg.Name), Confidence: 0.75}
}

// MongooseMatcher recognizes `Model.find/findById/create/updateOne/deleteOne(...)`.
type MongooseMatcher struct{}

func (m *MongooseMatcher) ID() string                          { return "mongoose" }
func (m *MongooseMatcher) SupportedLanguages() []types.Language { return jsLanguages() }
func (m *MongooseMatcher) Priority() int                        { return 60 }

var mongooseOps = []string{"find", "findById", "findOne", "create", "insertMany", "updateOne", "updateMany", "deleteOne", "deleteMany", "findByIdAndUpdate", "findByIdAndDelete"}

func (m *MongooseMatcher) Match(chain types.UnifiedCallChain) *types.PatternMatchResult {
	seg, ok := hasSegment(chain, mongooseOps...)
	if !ok {
		return nil
	}
	if chain.Receiver == "" || strings.ToLower(chain.Receiver) == chain.Receiver {
		return nil
	}
	return &types.PatternMatchResult{Table: chain.Receiver, Operation: opFor(seg.Name), Confidence: 0.75}
}

// SupabaseMatcher recognizes `supabase.from('table').select/insert/update/delete(...)`.
type SupabaseMatcher struct{}

func (m *SupabaseMatcher) ID() string                          { return "supabase" }
func (m *SupabaseMatcher) SupportedLanguages() []types.Language { return jsLanguages() }
func (m *SupabaseMatcher) Priority() int                        { return 85 }

func (m *SupabaseMatcher) Match(chain types.UnifiedCallChain) *types.PatternMatchResult {
	fromSeg, ok := hasSegment(chain, "from")
	if !ok || !strings.Contains(chain.Receiver, "supabase") {
		return nil
	}
	table, ok := firstStringArg(fromSeg)
	if !ok {
		return nil
	}
	op := types.OperationRead
	switch {
	case hasAny(chain, "insert"):
		op = types.OperationWrite
	case hasAny(chain, "update", "upsert"):
		op = types.OperationWrite
	case hasAny(chain, "delete"):
		op = types.OperationDelete
	}
	return &types.PatternMatchResult{Table: table, Operation: op, Confidence: 0.85}
}

func hasAny(chain types.UnifiedCallChain, names ...string) bool {
	_, ok := hasSegment(chain, names...)
	return ok
}
