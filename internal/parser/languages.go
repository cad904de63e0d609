package parser

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/ruizrica/drift-sub012/internal/types"
)

func goSpec() LanguageSpec {
	return LanguageSpec{
		Language:       types.LanguageGo,
		Grammar:        tree_sitter.NewLanguage(tree_sitter_go.Language()),
		FunctionKinds:  kindSet("function_declaration", "method_declaration", "func_literal"),
		ClassKinds:     kindSet("type_declaration"),
		InterfaceKinds: kindSet("interface_type"),
		ImportKinds:    kindSet("import_spec"),
		CallKinds:      kindSet("call_expression"),
	}
}

func javascriptSpec() LanguageSpec {
	return LanguageSpec{
		Language:       types.LanguageJavaScript,
		Grammar:        tree_sitter.NewLanguage(tree_sitter_javascript.Language()),
		FunctionKinds:  kindSet("function_declaration", "function_expression", "arrow_function", "method_definition", "generator_function_declaration"),
		ClassKinds:     kindSet("class_declaration"),
		ImportKinds:    kindSet("import_statement"),
		CallKinds:      kindSet("call_expression"),
		AsyncKeyword:   "async",
	}
}

func typescriptSpec() LanguageSpec {
	return LanguageSpec{
		Language:       types.LanguageTypeScript,
		Grammar:        tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
		FunctionKinds:  kindSet("function_declaration", "function_expression", "arrow_function", "method_definition", "method_signature"),
		ClassKinds:     kindSet("class_declaration"),
		InterfaceKinds: kindSet("interface_declaration"),
		TypeAliasKinds: kindSet("type_alias_declaration"),
		EnumKinds:      kindSet("enum_declaration"),
		ImportKinds:    kindSet("import_statement"),
		CallKinds:      kindSet("call_expression"),
		AsyncKeyword:   "async",
	}
}

func pythonSpec() LanguageSpec {
	return LanguageSpec{
		Language:      types.LanguagePython,
		Grammar:       tree_sitter.NewLanguage(tree_sitter_python.Language()),
		FunctionKinds: kindSet("function_definition"),
		ClassKinds:    kindSet("class_definition"),
		ImportKinds:   kindSet("import_statement", "import_from_statement"),
		CallKinds:     kindSet("call"),
		AsyncKeyword:  "async",
	}
}

func javaSpec() LanguageSpec {
	return LanguageSpec{
		Language:       types.LanguageJava,
		Grammar:        tree_sitter.NewLanguage(tree_sitter_java.Language()),
		FunctionKinds:  kindSet("method_declaration", "constructor_declaration"),
		ClassKinds:     kindSet("class_declaration"),
		InterfaceKinds: kindSet("interface_declaration"),
		EnumKinds:      kindSet("enum_declaration"),
		ImportKinds:    kindSet("import_declaration"),
		CallKinds:      kindSet("method_invocation"),
	}
}

func csharpSpec() LanguageSpec {
	return LanguageSpec{
		Language:       types.LanguageCSharp,
		Grammar:        tree_sitter.NewLanguage(tree_sitter_csharp.Language()),
		FunctionKinds:  kindSet("method_declaration", "constructor_declaration", "local_function_statement"),
		ClassKinds:     kindSet("class_declaration"),
		InterfaceKinds: kindSet("interface_declaration"),
		EnumKinds:      kindSet("enum_declaration"),
		ImportKinds:    kindSet("using_directive"),
		CallKinds:      kindSet("invocation_expression"),
		AsyncKeyword:   "async",
	}
}

func phpSpec() LanguageSpec {
	return LanguageSpec{
		Language:      types.LanguagePHP,
		Grammar:       tree_sitter.NewLanguage(tree_sitter_php.LanguagePHP()),
		FunctionKinds: kindSet("function_definition", "method_declaration"),
		ClassKinds:    kindSet("class_declaration"),
		ImportKinds:   kindSet("namespace_use_declaration"),
		CallKinds:     kindSet("function_call_expression", "member_call_expression"),
	}
}

func rustSpec() LanguageSpec {
	return LanguageSpec{
		Language:      types.LanguageRust,
		Grammar:       tree_sitter.NewLanguage(tree_sitter_rust.Language()),
		FunctionKinds: kindSet("function_item"),
		ClassKinds:    kindSet("struct_item"),
		EnumKinds:     kindSet("enum_item"),
		ImportKinds:   kindSet("use_declaration"),
		CallKinds:     kindSet("call_expression"),
		AsyncKeyword:  "async",
	}
}
