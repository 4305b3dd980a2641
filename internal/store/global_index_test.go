package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phppp-lsp/phppp/internal/symbol"
)

func TestGlobalIndex_InsertGetRemove(t *testing.T) {
	idx := NewGlobalIndex()
	fs := symbol.FileSymbols{"foo": {Name: "foo", Kind: symbol.KindFunction}}

	idx.Insert("file:///a.php", fs)
	got, ok := idx.Get("file:///a.php")
	require.True(t, ok)
	require.Equal(t, fs, got)

	idx.Remove("file:///a.php")
	_, ok = idx.Get("file:///a.php")
	require.False(t, ok)
}

// §4.4 P2: URI canonicalization means scheme case doesn't create duplicate
// entries.
func TestGlobalIndex_CanonicalURI(t *testing.T) {
	idx := NewGlobalIndex()
	fs := symbol.FileSymbols{"foo": {Name: "foo", Kind: symbol.KindFunction}}

	idx.Insert("FILE:///a.php", fs)
	_, ok := idx.Get("file:///a.php")
	require.True(t, ok)
}

func TestGlobalIndex_Len(t *testing.T) {
	idx := NewGlobalIndex()
	require.Equal(t, 0, idx.Len())

	idx.Insert("file:///a.php", symbol.FileSymbols{})
	idx.Insert("file:///b.php", symbol.FileSymbols{})
	require.Equal(t, 2, idx.Len())

	idx.Insert("file:///a.php", symbol.FileSymbols{})
	require.Equal(t, 2, idx.Len())
}

func TestGlobalIndex_Range(t *testing.T) {
	idx := NewGlobalIndex()
	idx.Insert("file:///a.php", symbol.FileSymbols{"a": {Name: "a"}})
	idx.Insert("file:///b.php", symbol.FileSymbols{"b": {Name: "b"}})

	seen := map[symbol.URI]bool{}
	idx.Range(func(uri symbol.URI, fs symbol.FileSymbols) bool {
		seen[uri] = true
		return true
	})
	require.Len(t, seen, 2)
}

func TestGlobalIndex_RangeStopsEarly(t *testing.T) {
	idx := NewGlobalIndex()
	for i := 0; i < 20; i++ {
		idx.Insert(symbol.URI(string(rune('a'+i))+".php"), symbol.FileSymbols{})
	}

	count := 0
	idx.Range(func(uri symbol.URI, fs symbol.FileSymbols) bool {
		count++
		return false
	})
	require.Equal(t, 1, count)
}

// §4.4 P1: concurrent writers to different shards never race.
func TestGlobalIndex_ConcurrentInserts(t *testing.T) {
	idx := NewGlobalIndex()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			uri := symbol.URI("file:///" + string(rune('a'+i%26)) + "/x.php")
			idx.Insert(uri, symbol.FileSymbols{"s": {Name: "s"}})
		}(i)
	}
	wg.Wait()
	require.True(t, idx.Len() > 0)
}
