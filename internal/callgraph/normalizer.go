// Package callgraph reduces the language-specific method-chain call sites
// the parser layer extracts into a single uniform shape, UnifiedCallChain
// (spec §4.3 "Call-Chain Normalizer"). Framework matchers consume only this
// normalized form, so adding a language means adding nothing here — the
// parser's CallSite extraction already did the language-specific work.
package callgraph

import (
	"strconv"
	"strings"

	"github.com/ruizrica/drift-sub012/internal/types"
)

// BuildChains groups a file's call sites by source line and reassembles
// each line's method chain from the nesting implied by CallSite.Receiver
// (the tree-sitter walker emits one CallSite per call_expression node, so a
// chain like `sqlx::query("...").fetch_one(&pool)` appears as two sites
// whose receiver/callee text embed one another). Normalization is lossy by
// design (spec §4.3): a chain split across lines, or whose nesting can't be
// recovered from the raw text, degrades to single-segment chains.
func BuildChains(file string, lang types.Language, pr types.ParseResult) []types.UnifiedCallChain {
	byLine := make(map[int][]types.CallSite)
	var lines []int
	for _, cs := range pr.Calls {
		if _, ok := byLine[cs.Line]; !ok {
			lines = append(lines, cs.Line)
		}
		byLine[cs.Line] = append(byLine[cs.Line], cs)
	}
	sortInts(lines)

	var chains []types.UnifiedCallChain
	for _, line := range lines {
		chains = append(chains, chainsForLine(file, lang, line, byLine[line])...)
	}
	return chains
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

// chainsForLine reassembles every independent chain on one line. Calls are
// linked inner-to-outer: if outer.Receiver contains "innerCallee(", inner
// was evaluated first and outer continues its chain.
func chainsForLine(file string, lang types.Language, line int, calls []types.CallSite) []types.UnifiedCallChain {
	used := make([]bool, len(calls))
	var out []types.UnifiedCallChain

	for {
		start := -1
		for i := range calls {
			if used[i] {
				continue
			}
			if !embedsUnused(calls[i], calls, used, i) {
				start = i
				break
			}
		}
		if start == -1 {
			break
		}

		order := []int{start}
		used[start] = true
		cur := start
		for {
			next := -1
			for j := range calls {
				if used[j] {
					continue
				}
				if calls[j].Receiver != "" && strings.Contains(calls[j].Receiver, calls[cur].CalleeName+"(") {
					next = j
					break
				}
			}
			if next == -1 {
				break
			}
			order = append(order, next)
			used[next] = true
			cur = next
		}

		out = append(out, buildChain(file, lang, line, calls, order))
	}
	return out
}

// embedsUnused reports whether c's receiver text contains the callee of
// some other not-yet-assigned call, meaning c is not the start of its chain.
func embedsUnused(c types.CallSite, calls []types.CallSite, used []bool, self int) bool {
	if c.Receiver == "" {
		return false
	}
	for j, other := range calls {
		if j == self || used[j] {
			continue
		}
		if strings.Contains(c.Receiver, other.CalleeName+"(") {
			return true
		}
	}
	return false
}

func buildChain(file string, lang types.Language, line int, calls []types.CallSite, order []int) types.UnifiedCallChain {
	first := calls[order[0]]
	receiver := first.Receiver
	if receiver == "" {
		receiver = first.CalleeName
	}

	segs := make([]types.ChainSegment, 0, len(order))
	for _, idx := range order {
		segs = append(segs, callToSegment(calls[idx]))
	}
	// A path-qualified first call such as `sqlx::query(...)` splits into
	// receiver `sqlx` and segment `query`.
	if first.Receiver == "" {
		if i := strings.LastIndex(first.CalleeName, "::"); i > 0 {
			receiver = first.CalleeName[:i]
			segs[0].Name = first.CalleeName[i+2:]
		}
	}

	return types.UnifiedCallChain{
		Language: lang,
		File:     file,
		Line:     line,
		Receiver: receiver,
		Segments: segs,
	}
}

func callToSegment(c types.CallSite) types.ChainSegment {
	args := make([]types.NormalizedArg, 0, len(c.Args))
	for _, a := range c.Args {
		args = append(args, NormalizeArg(a.Text))
	}
	return types.ChainSegment{Name: c.CalleeName, IsCall: true, Args: args}
}

// NormalizeArg reduces one raw argument's source text to a NormalizedArg
// (spec §4.3). The classification is a syntactic guess, not a type-checked
// one — detectors must tolerate a misclassified or empty value.
func NormalizeArg(raw string) types.NormalizedArg {
	t := strings.TrimSpace(raw)
	switch {
	case len(t) >= 2 && isQuote(t[0]) && t[len(t)-1] == t[0]:
		return types.NormalizedArg{Type: types.ArgString, Value: t, StringValue: t[1 : len(t)-1]}
	case isNumberLiteral(t):
		return types.NormalizedArg{Type: types.ArgNumber, Value: t}
	case strings.HasPrefix(t, "{"):
		return types.NormalizedArg{Type: types.ArgObject, Value: t}
	case strings.HasPrefix(t, "["):
		return types.NormalizedArg{Type: types.ArgArray, Value: t}
	case strings.Contains(t, "=>") || strings.HasPrefix(t, "function") || strings.HasPrefix(t, "fn ") || strings.HasPrefix(t, "|") || strings.HasPrefix(t, "lambda"):
		return types.NormalizedArg{Type: types.ArgClosure, Value: t}
	case isIdentifier(t):
		return types.NormalizedArg{Type: types.ArgIdentifier, Value: t}
	default:
		return types.NormalizedArg{Type: types.ArgOther, Value: t}
	}
}

func isQuote(b byte) bool { return b == '"' || b == '\'' || b == '`' }

func isNumberLiteral(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == '$'
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isAlpha {
			return false
		}
		if !isAlpha && !isDigit && r != '.' && r != ':' {
			return false
		}
	}
	return true
}
