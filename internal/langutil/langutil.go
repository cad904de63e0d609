// Package langutil classifies source files by language: by extension
// first, then shebang, then content heuristics (spec §4.2 "Language
// classification"). The walker uses the cheap extension tier to tag
// files during discovery; the parser layer calls Classify for the full
// three-tier resolution immediately before parsing.
package langutil

import (
	"path/filepath"
	"strings"

	"github.com/ruizrica/drift-sub012/internal/types"
)

var extensionTable = map[string]types.Language{
	".go":    types.LanguageGo,
	".ts":    types.LanguageTypeScript,
	".tsx":   types.LanguageTypeScript,
	".mts":   types.LanguageTypeScript,
	".cts":   types.LanguageTypeScript,
	".js":    types.LanguageJavaScript,
	".jsx":   types.LanguageJavaScript,
	".mjs":   types.LanguageJavaScript,
	".cjs":   types.LanguageJavaScript,
	".py":    types.LanguagePython,
	".pyi":   types.LanguagePython,
	".java":  types.LanguageJava,
	".cs":    types.LanguageCSharp,
	".php":   types.LanguagePHP,
	".rs":    types.LanguageRust,
	".md":    types.LanguageMarkdown,
	".mdx":   types.LanguageMarkdown,
	".css":   types.LanguageCSS,
	".scss":  types.LanguageCSS,
	".less":  types.LanguageCSS,
	".json":  types.LanguageJSON,
	".jsonc": types.LanguageJSON,
}

// ByExtension classifies purely on the file's extension, the cheap tier
// the walker applies while tagging discovered files.
func ByExtension(path string) types.Language {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := extensionTable[ext]; ok {
		return lang
	}
	return types.LanguageUnknown
}

// Classify runs the full three-tier classification: extension, then
// shebang, then content heuristics. content may be nil, in which case
// only the extension tier runs.
func Classify(path string, content []byte) types.Language {
	if lang := ByExtension(path); lang != types.LanguageUnknown {
		return lang
	}
	if len(content) == 0 {
		return types.LanguageUnknown
	}

	first := firstLine(content)
	if strings.HasPrefix(first, "#!") {
		switch {
		case strings.Contains(first, "python"):
			return types.LanguagePython
		case strings.Contains(first, "node"):
			return types.LanguageJavaScript
		case strings.Contains(first, "php"):
			return types.LanguagePHP
		}
	}

	snippet := string(content)
	if len(snippet) > 4096 {
		snippet = snippet[:4096]
	}
	switch {
	case strings.HasPrefix(strings.TrimSpace(snippet), "<?php"):
		return types.LanguagePHP
	case strings.Contains(snippet, "package main") || strings.Contains(snippet, "package "):
		return types.LanguageGo
	case strings.Contains(snippet, "fn main()"):
		return types.LanguageRust
	}
	return types.LanguageUnknown
}

func firstLine(content []byte) string {
	if idx := strings.IndexByte(string(content), '\n'); idx >= 0 {
		return string(content[:idx])
	}
	return string(content)
}
