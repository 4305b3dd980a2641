// Package query implements the five positional LSP operations (§4.8) atop
// the DocumentStore, GlobalIndex, PositionMapper and Resolver. Grounded on
// the teacher's internal/server/definitions.go and completions.go for the
// handler shape (resolve against the open document's analyzer, return nil
// when nothing is found rather than erroring).
package query

import (
	"fmt"

	"github.com/phppp-lsp/phppp/internal/resolver"
	"github.com/phppp-lsp/phppp/internal/store"
	"github.com/phppp-lsp/phppp/internal/symbol"
)

// Handlers bundles the stores every query operation reads from.
type Handlers struct {
	Documents *store.DocumentStore
	Index     *store.GlobalIndex
}

// New constructs a Handlers bound to the given stores.
func New(documents *store.DocumentStore, index *store.GlobalIndex) *Handlers {
	return &Handlers{Documents: documents, Index: index}
}

// resolveAt runs the full PositionMapper -> Resolver pipeline for uri/pos.
func (h *Handlers) resolveAt(uri symbol.URI, pos symbol.Position) (symbol.Symbol, bool) {
	doc, ok := h.Documents.Snapshot(uri)
	if !ok {
		return symbol.Symbol{}, false
	}

	name, ok := resolver.PositionMapper(doc.Tree, doc.Text, pos)
	if !ok {
		return symbol.Symbol{}, false
	}

	return resolver.Resolve(name, uri, pos, doc.Text, doc.Tree, doc.Symbols, h.Index)
}

// Definition implements go-to-definition (§4.8).
func (h *Handlers) Definition(uri symbol.URI, pos symbol.Position) (symbol.Location, bool) {
	sym, ok := h.resolveAt(uri, pos)
	if !ok {
		return symbol.Location{}, false
	}
	return sym.Location, true
}

// Hover implements hover (§4.8): a single string "<FQN> <kind>".
func (h *Handlers) Hover(uri symbol.URI, pos symbol.Position) (string, bool) {
	sym, ok := h.resolveAt(uri, pos)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s %s", sym.Name, sym.Kind), true
}
