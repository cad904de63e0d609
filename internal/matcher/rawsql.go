package matcher

import (
	"regexp"
	"strings"

	"github.com/ruizrica/drift-sub012/internal/types"
)

// ParseRawSQL recovers table, fields, and operation from a literal SQL
// string (spec §4.4 "The raw-SQL matcher parses a SQL string ... from
// SELECT/INSERT/UPDATE/DELETE/SET/WHERE/FROM/INTO"). ok is false when sql
// doesn't look like a recognizable statement.
func ParseRawSQL(sql string) (table string, fields []string, op types.DataOperation, ok bool) {
	s := strings.TrimSpace(sql)
	upper := strings.ToUpper(s)

	switch {
	case strings.HasPrefix(upper, "SELECT"):
		op = types.OperationRead
		if m := selectFieldsRe.FindStringSubmatch(s); m != nil {
			fields = splitFields(m[1])
		}
		if m := fromTableRe.FindStringSubmatch(s); m != nil {
			table = m[1]
		}
	case strings.HasPrefix(upper, "INSERT"):
		op = types.OperationWrite
		if m := intoTableRe.FindStringSubmatch(s); m != nil {
			table = m[1]
		}
		if m := insertColsRe.FindStringSubmatch(s); m != nil {
			fields = splitFields(m[1])
		}
	case strings.HasPrefix(upper, "UPDATE"):
		op = types.OperationWrite
		if m := updateTableRe.FindStringSubmatch(s); m != nil {
			table = m[1]
		}
		if m := setFieldsRe.FindStringSubmatch(s); m != nil {
			fields = setFieldNames(m[1])
		}
	case strings.HasPrefix(upper, "DELETE"):
		op = types.OperationDelete
		if m := fromTableRe.FindStringSubmatch(s); m != nil {
			table = m[1]
		}
	default:
		return "", nil, "", false
	}

	if table == "" {
		return "", nil, "", false
	}
	return table, fields, op, true
}

var (
	selectFieldsRe = regexp.MustCompile(`(?is)SELECT\s+(.*?)\s+FROM`)
	fromTableRe    = regexp.MustCompile(`(?is)FROM\s+"?'?` + "`?" + `([a-zA-Z_][a-zA-Z0-9_.]*)`)
	intoTableRe    = regexp.MustCompile(`(?is)INSERT\s+INTO\s+"?'?` + "`?" + `([a-zA-Z_][a-zA-Z0-9_.]*)`)
	insertColsRe   = regexp.MustCompile(`(?is)\(([^()]*)\)\s*VALUES`)
	updateTableRe  = regexp.MustCompile(`(?is)UPDATE\s+"?'?` + "`?" + `([a-zA-Z_][a-zA-Z0-9_.]*)`)
	setFieldsRe    = regexp.MustCompile(`(?is)SET\s+(.*?)\s*(WHERE|$)`)
)

func splitFields(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "*" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.Trim(p, `"'`+"`")
		if i := strings.LastIndex(p, "."); i >= 0 {
			p = p[i+1:]
		}
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func setFieldNames(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if i := strings.Index(p, "="); i >= 0 {
			out = append(out, strings.TrimSpace(p[:i]))
		}
	}
	return out
}

// RawSQLMatcher is the last-resort matcher: it looks for a literal SQL
// string argument anywhere in the chain's segments. Lowest priority so
// every framework-specific matcher gets first refusal (spec §4.4 catalog).
type RawSQLMatcher struct{}

func (m *RawSQLMatcher) ID() string { return "raw-sql" }
func (m *RawSQLMatcher) SupportedLanguages() []types.Language {
	return []types.Language{
		types.LanguageGo, types.LanguageTypeScript, types.LanguageJavaScript,
		types.LanguagePython, types.LanguageJava, types.LanguageCSharp,
		types.LanguagePHP, types.LanguageRust,
	}
}
func (m *RawSQLMatcher) Priority() int { return 0 }

func (m *RawSQLMatcher) Match(chain types.UnifiedCallChain) *types.PatternMatchResult {
	for _, seg := range chain.Segments {
		for _, a := range seg.Args {
			if a.Type != types.ArgString {
				continue
			}
			if table, fields, op, ok := ParseRawSQL(a.StringValue); ok {
				return &types.PatternMatchResult{
					Table:      table,
					Fields:     fields,
					Operation:  op,
					Confidence: 0.9,
					IsRawSQL:   true,
				}
			}
		}
	}
	return nil
}
