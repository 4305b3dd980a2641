// Package store holds the two shared, concurrently-accessed maps the
// pipeline is built around: the per-buffer DocumentStore (§4.3) and the
// cross-file GlobalIndex (§4.4). Grounded on the teacher's
// internal/php/document_store.go (single-mutex map, value-copy snapshots)
// and internal/state/state.go (open-document bookkeeping), simplified to
// the plain replace/snapshot/remove contract the spec requires — the
// teacher's LRU eviction machinery has no counterpart in §4.3 and is
// dropped rather than bent to fit.
package store

import (
	"sync"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/phppp-lsp/phppp/internal/symbol"
)

// DocumentState is the value a DocumentStore holds per open URI (§3).
type DocumentState struct {
	Text    []byte
	Tree    *sitter.Tree
	Symbols symbol.FileSymbols
}

// Snapshot returns a value-copy of the state: the byte slice and symbol map
// are copied so a reader can never observe a concurrent mutation (the tree
// pointer is shared and read-only from the caller's perspective — tree-sitter
// trees are immutable once produced, per §4.1).
func (d DocumentState) Snapshot() DocumentState {
	textCopy := append([]byte(nil), d.Text...)
	return DocumentState{
		Text:    textCopy,
		Tree:    d.Tree,
		Symbols: d.Symbols.Clone(),
	}
}

// DocumentStore is a mapping URI -> DocumentState guarded by a single mutex
// (§4.3). Concurrent reads may observe stale snapshots but never torn ones:
// every mutation replaces the whole entry under the lock.
type DocumentStore struct {
	mu      sync.Mutex
	entries map[symbol.URI]DocumentState
}

// NewDocumentStore constructs an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{entries: make(map[symbol.URI]DocumentState)}
}

// Upsert atomically replaces the entry for uri. It never closes the tree it
// replaces, for the same reason Remove doesn't: a concurrent Snapshot reader
// may still be holding the old tree pointer. See Remove's comment.
func (s *DocumentStore) Upsert(uri symbol.URI, state DocumentState) {
	uri = symbol.Canonical(uri)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[uri] = state
}

// Snapshot returns a value-copy of the state stored for uri, or false if no
// document is open at that URI.
func (s *DocumentStore) Snapshot(uri symbol.URI) (DocumentState, bool) {
	uri = symbol.Canonical(uri)
	s.mu.Lock()
	state, ok := s.entries[uri]
	s.mu.Unlock()
	if !ok {
		return DocumentState{}, false
	}
	return state.Snapshot(), true
}

// Remove deletes the entry for uri, e.g. on a didClose notification.
//
// It deliberately never calls Tree.Close(): a Snapshot taken just before this
// runs shares the same *sitter.Tree pointer without holding the store's lock
// while it reads from it, so closing here could free memory a concurrent
// query handler is still dereferencing. The tree is leaked until the
// process's tree-sitter finalizer (if any) or process exit reclaims it — the
// same trade-off Upsert already makes when it replaces an entry outright.
func (s *DocumentStore) Remove(uri symbol.URI) {
	uri = symbol.Canonical(uri)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, uri)
}

// URIs returns every URI currently open, for handlers (completion,
// references, rename) that must fan out over all open documents.
func (s *DocumentStore) URIs() []symbol.URI {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]symbol.URI, 0, len(s.entries))
	for uri := range s.entries {
		out = append(out, uri)
	}
	return out
}
