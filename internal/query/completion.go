package query

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/phppp-lsp/phppp/internal/symbol"
)

// Completion implements completion (§4.8): no prefix filtering, every
// Symbol from the current document plus every Symbol from every other
// GlobalIndex entry, each mapped to a label/kind pair. Duplicates across
// files are emitted once per occurrence, by design.
func (h *Handlers) Completion(uri symbol.URI) []protocol.CompletionItem {
	var items []protocol.CompletionItem

	doc, ok := h.Documents.Snapshot(uri)
	if ok {
		items = append(items, itemsFromSymbols(doc.Symbols)...)
	}

	h.Index.Range(func(entryURI symbol.URI, fs symbol.FileSymbols) bool {
		if ok && entryURI == symbol.Canonical(uri) {
			return true
		}
		items = append(items, itemsFromSymbols(fs)...)
		return true
	})

	return items
}

func itemsFromSymbols(fs symbol.FileSymbols) []protocol.CompletionItem {
	items := make([]protocol.CompletionItem, 0, len(fs))
	for _, sym := range fs {
		kind := sym.Kind.CompletionKind()
		items = append(items, protocol.CompletionItem{
			Label: sym.Name,
			Kind:  &kind,
		})
	}
	return items
}
