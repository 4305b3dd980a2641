// Package extractor walks a parsed tree to produce a file's symbol table
// (§4.2). It only looks at top-level declarations; method bodies are never
// introspected here (the Resolver's local-scope lookup handles that
// separately, §4.6 step 1).
package extractor

import (
	"unicode/utf8"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/phppp-lsp/phppp/internal/symbol"
)

// Extract walks the named children of tree's root node in document order and
// returns the file's FileSymbols, per the §4.2 algorithm.
//
// Duplicate fully-qualified names within the file: the last declaration
// written wins (documented, test-visible behavior, §4.2 step 5).
func Extract(content []byte, tree *sitter.Tree, uri symbol.URI) symbol.FileSymbols {
	out := make(symbol.FileSymbols)
	if tree == nil {
		return out
	}
	root := tree.RootNode()
	if root.IsNull() {
		return out
	}

	namespace := ""
	for i := uint32(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case "namespace_definition":
			if nameNode := child.ChildByFieldName("name"); !nameNode.IsNull() {
				namespace = nameText(nameNode, content)
			}
		case "function_definition", "class_declaration":
			emitDeclaration(out, child, content, uri, namespace)
		case "const_declaration":
			emitConsts(out, child, content, uri, namespace)
		case "expression_statement":
			emitAssignment(out, child, content, uri, namespace)
		}
	}

	return out
}

func emitDeclaration(out symbol.FileSymbols, node sitter.Node, content []byte, uri symbol.URI, namespace string) {
	nameNode := node.ChildByFieldName("name")
	if nameNode.IsNull() {
		return
	}
	name := nameText(nameNode, content)
	if name == "" {
		return
	}

	kind := symbol.KindFunction
	container := ""
	if node.Type() == "class_declaration" {
		kind = symbol.KindClass
		container = baseClassName(node, content)
	}

	out[fqn(namespace, name)] = symbol.Symbol{
		Name: fqn(namespace, name),
		Kind: kind,
		Location: symbol.Location{
			URI:   uri,
			Range: nodeRange(node),
		},
		Container: container,
	}
}

// baseClassName returns the name following `extends` in a class_declaration's
// base_clause, or "" for a class with no explicit parent. Grounded on the
// teacher's classExtendsFromNode; this is additive metadata only (§3
// Symbol.container) and never feeds FQN computation or resolution.
func baseClassName(node sitter.Node, content []byte) string {
	for i := uint32(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Type() != "base_clause" {
			continue
		}
		if child.NamedChildCount() == 0 {
			return ""
		}
		return nameText(child.NamedChild(0), content)
	}
	return ""
}

func emitConsts(out symbol.FileSymbols, declNode sitter.Node, content []byte, uri symbol.URI, namespace string) {
	for i := uint32(0); i < declNode.NamedChildCount(); i++ {
		elem := declNode.NamedChild(i)
		if elem.Type() != "const_element" {
			continue
		}
		nameNode := elem.ChildByFieldName("name")
		if nameNode.IsNull() {
			nameNode = elem.NamedChild(0)
		}
		if nameNode.IsNull() {
			continue
		}
		name := nameText(nameNode, content)
		if name == "" {
			continue
		}
		out[fqn(namespace, name)] = symbol.Symbol{
			Name: fqn(namespace, name),
			Kind: symbol.KindConstant,
			Location: symbol.Location{
				URI:   uri,
				Range: nodeRange(nameNode),
			},
		}
	}
}

func emitAssignment(out symbol.FileSymbols, stmt sitter.Node, content []byte, uri symbol.URI, namespace string) {
	if stmt.NamedChildCount() == 0 {
		return
	}
	expr := stmt.NamedChild(0)
	if expr.Type() != "assignment_expression" {
		return
	}
	left := expr.ChildByFieldName("left")
	if left.IsNull() || left.Type() != "variable_name" {
		return
	}
	name := variableName(left, content)
	if name == "" {
		return
	}
	out[fqn(namespace, name)] = symbol.Symbol{
		Name: name,
		Kind: symbol.KindVariable,
		Location: symbol.Location{
			URI:   uri,
			Range: nodeRange(left),
		},
	}
}

// variableName returns a variable_name node's text with its leading "$",
// e.g. "$foo". Grounded on the teacher's VariableNameFromNode, simplified
// to the single case the extractor needs.
func variableName(node sitter.Node, content []byte) string {
	if node.IsNull() {
		return ""
	}
	raw := nodeText(node, content)
	if raw == "" {
		return ""
	}
	if raw[0] == '$' {
		return raw
	}
	return "$" + raw
}

func fqn(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + `\` + name
}

func nodeRange(node sitter.Node) symbol.Range {
	start := node.StartPoint()
	end := node.EndPoint()
	return symbol.Range{
		Start: symbol.Position{Line: uint32(start.Row), Character: uint32(start.Column)},
		End:   symbol.Position{Line: uint32(end.Row), Character: uint32(end.Column)},
	}
}

// nameText returns a node's UTF-8 text, or "" if the bytes it spans are not
// valid UTF-8 (§4.2 edge case: such a symbol is skipped without error).
func nameText(node sitter.Node, content []byte) string {
	return nodeText(node, content)
}

func nodeText(node sitter.Node, content []byte) string {
	if node.IsNull() {
		return ""
	}
	start, end := uint32(node.StartByte()), uint32(node.EndByte())
	if end > uint32(len(content)) || start > end {
		return ""
	}
	raw := content[start:end]
	if !utf8.Valid(raw) {
		return ""
	}
	return string(raw)
}
