package store

import (
	"hash/fnv"
	"sync"

	"github.com/phppp-lsp/phppp/internal/symbol"
)

// globalIndexShards bounds lock contention: per-URI writes only ever take
// one shard's mutex, so iteration over one shard never blocks a writer
// touching another (§4.4).
const globalIndexShards = 16

type indexShard struct {
	mu      sync.RWMutex
	entries map[symbol.URI]symbol.FileSymbols
}

// GlobalIndex is a concurrent mapping URI -> FileSymbols (§4.4). Per-URI
// updates are whole-entry replacements: callers build the new FileSymbols
// off-lock and hand it to Insert, which only ever swaps a map reference.
type GlobalIndex struct {
	shards [globalIndexShards]*indexShard
}

// NewGlobalIndex constructs an empty, ready-to-use index.
func NewGlobalIndex() *GlobalIndex {
	idx := &GlobalIndex{}
	for i := range idx.shards {
		idx.shards[i] = &indexShard{entries: make(map[symbol.URI]symbol.FileSymbols)}
	}
	return idx
}

func (g *GlobalIndex) shardFor(uri symbol.URI) *indexShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(uri))
	return g.shards[h.Sum32()%globalIndexShards]
}

// Insert replaces the FileSymbols for uri. fs must be built by the caller
// before calling Insert (off-lock); Insert never mutates fs.
func (g *GlobalIndex) Insert(uri symbol.URI, fs symbol.FileSymbols) {
	uri = symbol.Canonical(uri)
	shard := g.shardFor(uri)
	shard.mu.Lock()
	shard.entries[uri] = fs
	shard.mu.Unlock()
}

// Remove deletes the entry for uri, e.g. when WorkspaceScanner observes the
// file no longer exists on disk.
func (g *GlobalIndex) Remove(uri symbol.URI) {
	uri = symbol.Canonical(uri)
	shard := g.shardFor(uri)
	shard.mu.Lock()
	delete(shard.entries, uri)
	shard.mu.Unlock()
}

// Get returns the FileSymbols stored for uri.
func (g *GlobalIndex) Get(uri symbol.URI) (symbol.FileSymbols, bool) {
	uri = symbol.Canonical(uri)
	shard := g.shardFor(uri)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	fs, ok := shard.entries[uri]
	return fs, ok
}

// Range calls fn for every (URI, FileSymbols) entry currently in the index.
// Each shard is locked only for the duration of its own snapshot, so
// concurrent writers on other shards are never blocked; fn therefore may
// observe an insert interleaved with earlier entries from other shards
// (§4.4) but never a torn FileSymbols map, since entries are whole-entry
// replacements.
//
// Range stops early if fn returns false.
func (g *GlobalIndex) Range(fn func(uri symbol.URI, fs symbol.FileSymbols) bool) {
	for _, shard := range g.shards {
		shard.mu.RLock()
		snapshot := make(map[symbol.URI]symbol.FileSymbols, len(shard.entries))
		for k, v := range shard.entries {
			snapshot[k] = v
		}
		shard.mu.RUnlock()

		for uri, fs := range snapshot {
			if !fn(uri, fs) {
				return
			}
		}
	}
}

// Len returns the total number of indexed URIs.
func (g *GlobalIndex) Len() int {
	total := 0
	for _, shard := range g.shards {
		shard.mu.RLock()
		total += len(shard.entries)
		shard.mu.RUnlock()
	}
	return total
}
