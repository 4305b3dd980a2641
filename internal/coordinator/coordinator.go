// Package coordinator dispatches decoded protocol requests/notifications
// onto the indexing pipeline and enforces the per-URI ordering contract of
// §4.9: a didChange is fully applied (store + index updated) before any
// subsequent query for that URI can observe the pre-change state. Grounded
// on the teacher's internal/server/server.go (didOpen/didChange/didClose)
// and internal/php/analyzer.go's mutex-guarded "compute off-lock, swap in"
// discipline, generalized into the explicit per-URI sequencer in
// sequencer.go so cross-URI indexing stays unordered and concurrent (§5).
package coordinator

import (
	"context"

	"github.com/tliron/commonlog"

	"github.com/phppp-lsp/phppp/internal/extractor"
	"github.com/phppp-lsp/phppp/internal/store"
	"github.com/phppp-lsp/phppp/internal/symbol"
	"github.com/phppp-lsp/phppp/internal/syntax"
)

var logger = commonlog.GetLoggerf("phppp.coordinator")

// Coordinator sequences document lifecycle events per URI and keeps the
// DocumentStore and GlobalIndex current.
type Coordinator struct {
	documents *store.DocumentStore
	index     *store.GlobalIndex
	seq       *sequencers
}

// New constructs a Coordinator writing into documents and index.
func New(documents *store.DocumentStore, index *store.GlobalIndex) *Coordinator {
	return &Coordinator{
		documents: documents,
		index:     index,
		seq:       newSequencers(),
	}
}

// DidOpen indexes a newly opened document (§4.9 state machine: (no entry)
// --didOpen--> Indexed).
func (c *Coordinator) DidOpen(uri symbol.URI, text string) {
	c.apply(uri, []byte(text))
}

// DidChange re-indexes a changed document, serialized against any other
// in-flight change for the same URI (§4.9, §5).
func (c *Coordinator) DidChange(uri symbol.URI, text string) {
	c.apply(uri, []byte(text))
}

// DidClose removes uri's entry from the DocumentStore. The GlobalIndex
// entry is left untouched: closing a buffer does not evict symbols for a
// file that still exists on disk (§3 "Lifecycles").
func (c *Coordinator) DidClose(uri symbol.URI) {
	c.documents.Remove(uri)
	c.seq.drop(symbol.Canonical(uri))
}

// apply runs the parse/extract/store pipeline for uri under that URI's
// sequencer, so it returns only once the effects of this call (or a
// logically later one) are visible in both stores.
func (c *Coordinator) apply(uri symbol.URI, text []byte) {
	st := c.seq.get(symbol.Canonical(uri))
	st.run(text, func(latest []byte) {
		c.reindex(uri, latest)
	})
}

// reindex performs the actual CPU-bound work: parse, extract, then swap both
// stores. No lock is held across this call; only the per-URI sequencer
// serializes it against other edits to the same URI.
func (c *Coordinator) reindex(uri symbol.URI, text []byte) {
	parser := syntax.New()
	defer parser.Close()

	tree, err := parser.Parse(context.Background(), nil, text)
	if err != nil {
		logger.Warningf("parse failed for %s: %v", uri, err)
		return
	}

	fs := extractor.Extract(text, tree, uri)

	c.documents.Upsert(uri, store.DocumentState{
		Text:    text,
		Tree:    tree,
		Symbols: fs,
	})
	c.index.Insert(uri, fs)
}
