package resolver

import (
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/phppp-lsp/phppp/internal/store"
	"github.com/phppp-lsp/phppp/internal/symbol"
)

// scopeNodeKinds are the enclosing nodes a local-scope lookup ascends to.
var scopeNodeKinds = map[string]bool{
	"function_definition": true,
	"method_declaration":  true,
}

// Resolve implements the §4.6 three-tier resolution algorithm: local scope,
// then namespace/alias-qualified lookup in the current file, then the
// global index. It returns the first hit; (symbol.Symbol{}, false) means
// unresolved.
func Resolve(
	query string,
	uri symbol.URI,
	pos symbol.Position,
	source []byte,
	tree *sitter.Tree,
	fileSymbols symbol.FileSymbols,
	global *store.GlobalIndex,
) (symbol.Symbol, bool) {
	if strings.HasPrefix(query, "$") {
		if sym, ok := resolveLocalScope(query, uri, pos, source, tree); ok {
			return sym, true
		}
	}

	namespace := ExtractNamespace(source)
	aliases := ExtractAliases(source)
	fqn := CanonicalFQN(query, namespace, aliases)

	if sym, ok := fileSymbols[fqn]; ok {
		return sym, true
	}

	if global != nil {
		var found symbol.Symbol
		var ok bool
		global.Range(func(_ symbol.URI, fs symbol.FileSymbols) bool {
			if sym, hit := fs[fqn]; hit {
				found, ok = sym, true
				return false
			}
			return true
		})
		if ok {
			return found, true
		}
	}

	return symbol.Symbol{}, false
}

// resolveLocalScope implements §4.6 step 1: from the smallest node
// containing pos, ascend to the nearest enclosing function_definition or
// method_declaration and look for a matching parameter.
func resolveLocalScope(query string, uri symbol.URI, pos symbol.Position, source []byte, tree *sitter.Tree) (symbol.Symbol, bool) {
	node, ok := smallestNodeAt(tree, source, pos)
	if !ok {
		return symbol.Symbol{}, false
	}

	var scope sitter.Node
	for cur := node; !cur.IsNull(); cur = cur.Parent() {
		if scopeNodeKinds[cur.Type()] {
			scope = cur
			break
		}
	}
	if scope.IsNull() {
		return symbol.Symbol{}, false
	}

	params := scope.ChildByFieldName("parameters")
	if params.IsNull() {
		return symbol.Symbol{}, false
	}

	target := strings.TrimPrefix(query, "$")
	for i := uint32(0); i < params.NamedChildCount(); i++ {
		param := params.NamedChild(i)
		nameNode := param.ChildByFieldName("name")
		if nameNode.IsNull() {
			continue
		}
		paramName := strings.TrimPrefix(nameNode.Content(source), "$")
		if paramName != target {
			continue
		}

		start := nameNode.StartPoint()
		end := nameNode.EndPoint()
		return symbol.Symbol{
			Name: "$" + paramName,
			Kind: symbol.KindVariable,
			Location: symbol.Location{
				URI: uri,
				Range: symbol.Range{
					Start: symbol.Position{Line: uint32(start.Row), Character: uint32(start.Column)},
					End:   symbol.Position{Line: uint32(end.Row), Character: uint32(end.Column)},
				},
			},
		}, true
	}

	return symbol.Symbol{}, false
}
