package query

import (
	"bytes"

	"github.com/phppp-lsp/phppp/internal/resolver"
	"github.com/phppp-lsp/phppp/internal/symbol"
)

// References implements find-references (§4.8): a textual search of name
// across every open document's text. Not tree-aware by design (§9
// "Textual references and rename") — comments and string literals are not
// distinguished from code.
func (h *Handlers) References(name string) []symbol.Location {
	var locations []symbol.Location

	for _, uri := range h.Documents.URIs() {
		doc, ok := h.Documents.Snapshot(uri)
		if !ok {
			continue
		}
		for _, offset := range matchOffsets(doc.Text, name) {
			start := resolver.OffsetToPosition(doc.Text, offset)
			end := resolver.OffsetToPosition(doc.Text, offset+len(name))
			locations = append(locations, symbol.Location{
				URI:   uri,
				Range: symbol.Range{Start: start, End: end},
			})
		}
	}

	return locations
}

// matchOffsets returns every non-overlapping byte offset at which needle
// occurs in haystack, mirroring a `match_indices` scan.
func matchOffsets(haystack []byte, needle string) []int {
	if needle == "" {
		return nil
	}
	var offsets []int
	pos := 0
	for {
		idx := bytes.Index(haystack[pos:], []byte(needle))
		if idx < 0 {
			break
		}
		offsets = append(offsets, pos+idx)
		pos += idx + len(needle)
	}
	return offsets
}
