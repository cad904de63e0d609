// Package parser extracts the structural facts detectors consume — class/
// function/interface declarations, imports, call sites, and semantic
// locations — from source text (spec §4.2 "Parser Layer"). One adapter per
// supported language; adapters share a single tree-sitter-backed walker
// parametrized by a per-language LanguageSpec rather than hand-written
// per-language traversal code.
package parser

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	"github.com/ruizrica/drift-sub012/internal/types"
)

// LanguageSpec maps one grammar's node-kind vocabulary onto the roles the
// parser contract cares about. Kind sets are matched by exact string, so
// adding a language is adding a table, not a traversal.
type LanguageSpec struct {
	Language        types.Language
	Grammar         *tree_sitter.Language
	FunctionKinds   map[string]bool
	ClassKinds      map[string]bool
	InterfaceKinds  map[string]bool
	TypeAliasKinds  map[string]bool
	EnumKinds       map[string]bool
	ImportKinds     map[string]bool
	CallKinds       map[string]bool
	AsyncKeyword    string // substring searched in the declaration's own text, e.g. "async"
	MethodCallKinds map[string]bool
}

func kindSet(kinds ...string) map[string]bool {
	m := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		m[k] = true
	}
	return m
}

// TreeSitterParser parses one language using its LanguageSpec.
type TreeSitterParser struct {
	spec LanguageSpec
}

// NewTreeSitterParser builds a parser for the given language spec.
func NewTreeSitterParser(spec LanguageSpec) *TreeSitterParser {
	return &TreeSitterParser{spec: spec}
}

// Parse implements the Parser contract (spec §4.2). Syntax errors inside a
// region surface as a Diagnostic; correctly parsed regions are still
// emitted, per "resilient" parsing.
func (p *TreeSitterParser) Parse(path string, content []byte) types.ParseResult {
	result := types.ParseResult{Success: true}

	ts := tree_sitter.NewParser()
	defer ts.Close()
	if err := ts.SetLanguage(p.spec.Grammar); err != nil {
		result.Success = false
		result.Diagnostics = append(result.Diagnostics, types.Diagnostic{
			Severity: types.DiagnosticError,
			Message:  "failed to load grammar: " + err.Error(),
		})
		return result
	}

	tree := ts.Parse(content, nil)
	if tree == nil {
		result.Success = false
		result.Diagnostics = append(result.Diagnostics, types.Diagnostic{
			Severity: types.DiagnosticError,
			Message:  "parser produced no tree",
		})
		return result
	}
	defer tree.Close()

	root := tree.RootNode()
	walkNode(root, content, &p.spec, &result)
	collectErrorNodes(root, content, &result)

	return result
}

// walkNode recurses the whole tree once, classifying every node whose kind
// matches one of the spec's role sets.
func walkNode(node *tree_sitter.Node, src []byte, spec *LanguageSpec, result *types.ParseResult) {
	if node == nil {
		return
	}
	kind := node.Kind()

	switch {
	case spec.FunctionKinds[kind]:
		handleFunction(node, src, spec, result)
	case spec.ClassKinds[kind]:
		if name := childIdentifier(node, src); name != "" {
			result.Declarations.Classes = append(result.Declarations.Classes, name)
		}
	case spec.InterfaceKinds[kind]:
		if name := childIdentifier(node, src); name != "" {
			result.Declarations.Interfaces = append(result.Declarations.Interfaces, name)
		}
	case spec.TypeAliasKinds[kind]:
		if name := childIdentifier(node, src); name != "" {
			result.Declarations.TypeAliases = append(result.Declarations.TypeAliases, name)
		}
	case spec.EnumKinds[kind]:
		if name := childIdentifier(node, src); name != "" {
			result.Declarations.Enums = append(result.Declarations.Enums, name)
		}
	case spec.ImportKinds[kind]:
		handleImport(node, src, result)
	case spec.CallKinds[kind]:
		handleCall(node, src, spec, result)
	}

	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		walkNode(node.Child(uint(i)), src, spec, result)
	}
}

func handleFunction(node *tree_sitter.Node, src []byte, spec *LanguageSpec, result *types.ParseResult) {
	name := childIdentifier(node, src)
	if name == "" {
		name = "anonymous"
	}
	result.Declarations.Functions = append(result.Declarations.Functions, name)

	text := node.Utf8Text(src)
	isAsync := spec.AsyncKeyword != "" && strings.Contains(firstLine(text), spec.AsyncKeyword)

	var params []types.Parameter
	for _, child := range namedChildren(node) {
		if strings.Contains(child.Kind(), "parameter") {
			for _, p := range namedChildren(child) {
				if pname := childIdentifier(p, src); pname != "" {
					params = append(params, types.Parameter{Name: pname})
				}
			}
		}
	}

	start := node.StartPosition()
	end := node.EndPosition()
	result.FunctionsFull = append(result.FunctionsFull, types.FunctionFull{
		Name:          name,
		QualifiedName: name,
		StartLine:     int(start.Row) + 1,
		EndLine:       int(end.Row) + 1,
		IsAsync:       isAsync,
		Parameters:    params,
	})

	result.SemanticLocations = append(result.SemanticLocations, types.SemanticLocation{
		StartLine: int(start.Row) + 1,
		EndLine:   int(end.Row) + 1,
		Type:      types.LocationFunction,
		Name:      name,
		Confidence: 1.0,
	})
}

func handleImport(node *tree_sitter.Node, src []byte, result *types.ParseResult) {
	source := ""
	for _, child := range namedChildren(node) {
		if child.Kind() == "string" || child.Kind() == "interpreted_string_literal" || strings.Contains(child.Kind(), "string") {
			source = strings.Trim(child.Utf8Text(src), `"'`+"`")
			break
		}
	}
	if source == "" {
		source = strings.TrimSpace(firstLine(node.Utf8Text(src)))
	}
	result.Imports = append(result.Imports, types.Import{
		Source: source,
		Line:   int(node.StartPosition().Row) + 1,
	})
}

func handleCall(node *tree_sitter.Node, src []byte, spec *LanguageSpec, result *types.ParseResult) {
	children := namedChildren(node)
	if len(children) == 0 {
		return
	}

	callee := children[0]
	calleeName := ""
	receiver := ""
	isMethod := false

	if strings.Contains(callee.Kind(), "member") || strings.Contains(callee.Kind(), "selector") || strings.Contains(callee.Kind(), "field") || strings.Contains(callee.Kind(), "attribute") {
		isMethod = true
		memberChildren := namedChildren(callee)
		if len(memberChildren) >= 2 {
			receiver = memberChildren[0].Utf8Text(src)
			calleeName = memberChildren[len(memberChildren)-1].Utf8Text(src)
		} else {
			calleeName = callee.Utf8Text(src)
		}
	} else {
		calleeName = callee.Utf8Text(src)
	}

	var args []types.CallArg
	if len(children) > 1 {
		argNode := children[len(children)-1]
		if strings.Contains(argNode.Kind(), "argument") {
			for _, a := range namedChildren(argNode) {
				args = append(args, types.CallArg{Text: a.Utf8Text(src)})
			}
		}
	}

	result.Calls = append(result.Calls, types.CallSite{
		CalleeName:   calleeName,
		Receiver:     receiver,
		Line:         int(node.StartPosition().Row) + 1,
		IsMethodCall: isMethod,
		Args:         args,
	})
}

func collectErrorNodes(node *tree_sitter.Node, src []byte, result *types.ParseResult) {
	if node == nil {
		return
	}
	if node.IsError() {
		pos := node.StartPosition()
		result.Diagnostics = append(result.Diagnostics, types.Diagnostic{
			Severity: types.DiagnosticWarning,
			Message:  "unparsable region",
			Line:     int(pos.Row) + 1,
			Column:   int(pos.Column) + 1,
		})
	}
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		collectErrorNodes(node.Child(uint(i)), src, result)
	}
}

func namedChildren(node *tree_sitter.Node) []*tree_sitter.Node {
	count := int(node.NamedChildCount())
	out := make([]*tree_sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, node.NamedChild(uint(i)))
	}
	return out
}

// childIdentifier returns the text of the first identifier-like named
// child, the generic stand-in for "the declaration's name" across grammars.
func childIdentifier(node *tree_sitter.Node, src []byte) string {
	for _, child := range namedChildren(node) {
		kind := child.Kind()
		if kind == "identifier" || strings.HasSuffix(kind, "identifier") {
			return child.Utf8Text(src)
		}
	}
	return ""
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
