package query

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/phppp-lsp/phppp/internal/resolver"
	"github.com/phppp-lsp/phppp/internal/symbol"
)

// Rename implements rename (§4.8): the same textual search References uses,
// turned into a WorkspaceEdit that replaces every occurrence with newName.
// Textual, not semantic, by design (§1 Non-goals, §9).
func (h *Handlers) Rename(name, newName string) (protocol.WorkspaceEdit, bool) {
	changes := make(map[protocol.DocumentUri][]protocol.TextEdit)

	for _, uri := range h.Documents.URIs() {
		doc, ok := h.Documents.Snapshot(uri)
		if !ok {
			continue
		}
		offsets := matchOffsets(doc.Text, name)
		if len(offsets) == 0 {
			continue
		}
		edits := make([]protocol.TextEdit, 0, len(offsets))
		for _, offset := range offsets {
			start := resolver.OffsetToPosition(doc.Text, offset)
			end := resolver.OffsetToPosition(doc.Text, offset+len(name))
			edits = append(edits, protocol.TextEdit{
				Range:   symbol.Range{Start: start, End: end},
				NewText: newName,
			})
		}
		changes[uri] = edits
	}

	if len(changes) == 0 {
		return protocol.WorkspaceEdit{}, false
	}
	return protocol.WorkspaceEdit{Changes: changes}, true
}
