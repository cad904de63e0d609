package parser

import (
	"bufio"
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/ruizrica/drift-sub012/internal/types"
)

// MarkdownParser extracts heading structure as semantic locations. Markdown
// has no functions/classes, so the parser contract's declarations stay
// empty; headings carry the structural signal detectors need (spec §4.2
// "heuristic fallbacks ... are acceptable" for exotic/non-code languages).
type MarkdownParser struct{}

var mdHeadingRe = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)

func (p *MarkdownParser) Parse(path string, content []byte) types.ParseResult {
	result := types.ParseResult{Success: true}
	scanner := bufio.NewScanner(bytes.NewReader(content))
	line := 0
	for scanner.Scan() {
		line++
		if m := mdHeadingRe.FindStringSubmatch(scanner.Text()); m != nil {
			result.SemanticLocations = append(result.SemanticLocations, types.SemanticLocation{
				StartLine:  line,
				EndLine:    line,
				Type:       types.LocationBlock,
				Name:       strings.TrimSpace(m[2]),
				Language:   types.LanguageMarkdown,
				Confidence: 1.0,
			})
		}
	}
	return result
}

// CSSParser extracts selector blocks as semantic locations, treating each
// selector that opens a block (including rules nested inside @-blocks; the
// @-rules themselves are skipped) as a "class" declaration in the generic
// contract.
type CSSParser struct{}

var cssSelectorRe = regexp.MustCompile(`([^{}]+)\{`)

func (p *CSSParser) Parse(path string, content []byte) types.ParseResult {
	result := types.ParseResult{Success: true}
	text := string(content)
	line := 1
	pos := 0
	for _, m := range cssSelectorRe.FindAllStringSubmatchIndex(text, -1) {
		line += strings.Count(text[pos:m[0]], "\n")
		pos = m[0]
		selector := strings.TrimSpace(text[m[2]:m[3]])
		if selector == "" || strings.HasPrefix(selector, "@") {
			continue
		}
		result.Declarations.Classes = append(result.Declarations.Classes, selector)
		result.SemanticLocations = append(result.SemanticLocations, types.SemanticLocation{
			StartLine:  line,
			EndLine:    line,
			Type:       types.LocationBlock,
			Name:       selector,
			Language:   types.LanguageCSS,
			Confidence: 0.9,
		})
	}
	return result
}

// JSONParser extracts top-level keys as variable-like semantic locations.
// Syntax errors downgrade to a diagnostic rather than aborting (spec §4.2).
type JSONParser struct{}

func (p *JSONParser) Parse(path string, content []byte) types.ParseResult {
	result := types.ParseResult{Success: true}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(content, &doc); err != nil {
		result.Success = false
		result.Diagnostics = append(result.Diagnostics, types.Diagnostic{
			Severity: types.DiagnosticError,
			Message:  "invalid JSON: " + err.Error(),
		})
		return result
	}

	for key := range doc {
		result.SemanticLocations = append(result.SemanticLocations, types.SemanticLocation{
			Type:       types.LocationVariable,
			Name:       key,
			Language:   types.LanguageJSON,
			Confidence: 1.0,
		})
	}
	return result
}
