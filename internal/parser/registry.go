package parser

import (
	"github.com/ruizrica/drift-sub012/internal/langutil"
	"github.com/ruizrica/drift-sub012/internal/types"
)

// Parser is the per-language contract (spec §4.2).
type Parser interface {
	Parse(path string, content []byte) types.ParseResult
}

// Registry dispatches a file to its language's Parser.
type Registry struct {
	parsers map[types.Language]Parser
}

// NewRegistry builds the registry with one entry per spec.md §4.2 language.
func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[types.Language]Parser)}
	r.parsers[types.LanguageGo] = NewTreeSitterParser(goSpec())
	r.parsers[types.LanguageJavaScript] = NewTreeSitterParser(javascriptSpec())
	r.parsers[types.LanguageTypeScript] = NewTreeSitterParser(typescriptSpec())
	r.parsers[types.LanguagePython] = NewTreeSitterParser(pythonSpec())
	r.parsers[types.LanguageJava] = NewTreeSitterParser(javaSpec())
	r.parsers[types.LanguageCSharp] = NewTreeSitterParser(csharpSpec())
	r.parsers[types.LanguagePHP] = NewTreeSitterParser(phpSpec())
	r.parsers[types.LanguageRust] = NewTreeSitterParser(rustSpec())
	r.parsers[types.LanguageMarkdown] = &MarkdownParser{}
	r.parsers[types.LanguageCSS] = &CSSParser{}
	r.parsers[types.LanguageJSON] = &JSONParser{}
	return r
}

// Parse classifies path/content's language and dispatches to its parser. A
// file whose language can't be determined is skipped with a diagnostic
// (spec §4.2 "Language classification").
func (r *Registry) Parse(path string, content []byte) types.ParseResult {
	lang := langutil.Classify(path, content)
	p, ok := r.parsers[lang]
	if !ok {
		return types.ParseResult{
			Success: false,
			Diagnostics: []types.Diagnostic{{
				Severity: types.DiagnosticWarning,
				Message:  "unrecognized language, file skipped",
			}},
		}
	}
	return p.Parse(path, content)
}
