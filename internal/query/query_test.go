package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phppp-lsp/phppp/internal/extractor"
	"github.com/phppp-lsp/phppp/internal/store"
	"github.com/phppp-lsp/phppp/internal/symbol"
	"github.com/phppp-lsp/phppp/internal/syntax"
)

func openDocument(t *testing.T, docs *store.DocumentStore, uri symbol.URI, content string) {
	t.Helper()
	p := syntax.New()
	t.Cleanup(p.Close)
	tree, err := p.Parse(context.Background(), nil, []byte(content))
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	fs := extractor.Extract([]byte(content), tree, uri)
	docs.Upsert(uri, store.DocumentState{Text: []byte(content), Tree: tree, Symbols: fs})
}

// §8 scenario 5: go-to-definition on a top-level function call.
func TestHandlers_Definition(t *testing.T) {
	docs := store.NewDocumentStore()
	idx := store.NewGlobalIndex()
	content := "<?php\nfunction greet() {}\nfunction caller() { greet(); }\n"
	openDocument(t, docs, "file:///a.php", content)

	h := New(docs, idx)

	loc, ok := h.Definition("file:///a.php", symbol.Position{Line: 2, Character: 21})
	require.True(t, ok)
	require.Equal(t, uint32(1), loc.Range.Start.Line)
}

func TestHandlers_Definition_Unresolved(t *testing.T) {
	docs := store.NewDocumentStore()
	idx := store.NewGlobalIndex()
	content := "<?php\nfunction caller() { missing(); }\n"
	openDocument(t, docs, "file:///a.php", content)

	h := New(docs, idx)
	_, ok := h.Definition("file:///a.php", symbol.Position{Line: 1, Character: 22})
	require.False(t, ok)
}

func TestHandlers_Hover(t *testing.T) {
	docs := store.NewDocumentStore()
	idx := store.NewGlobalIndex()
	content := "<?php\nfunction greet() {}\nfunction caller() { greet(); }\n"
	openDocument(t, docs, "file:///a.php", content)

	h := New(docs, idx)
	text, ok := h.Hover("file:///a.php", symbol.Position{Line: 2, Character: 21})
	require.True(t, ok)
	require.Equal(t, "greet Function", text)
}

func TestHandlers_Completion(t *testing.T) {
	docs := store.NewDocumentStore()
	idx := store.NewGlobalIndex()
	openDocument(t, docs, "file:///a.php", "<?php\nfunction localFn() {}\n")
	idx.Insert("file:///b.php", symbol.FileSymbols{"otherFn": {Name: "otherFn", Kind: symbol.KindFunction}})

	h := New(docs, idx)
	items := h.Completion("file:///a.php")

	labels := map[string]bool{}
	for _, item := range items {
		labels[item.Label] = true
	}
	require.True(t, labels["localFn"])
	require.True(t, labels["otherFn"])
}

func TestHandlers_References(t *testing.T) {
	docs := store.NewDocumentStore()
	idx := store.NewGlobalIndex()
	openDocument(t, docs, "file:///a.php", "<?php\nfunction greet() {}\ngreet();\n")
	openDocument(t, docs, "file:///b.php", "<?php\ngreet();\n")

	h := New(docs, idx)
	locations := h.References("greet")

	require.Len(t, locations, 3)
}

func TestHandlers_Rename(t *testing.T) {
	docs := store.NewDocumentStore()
	idx := store.NewGlobalIndex()
	openDocument(t, docs, "file:///a.php", "<?php\nfunction greet() {}\ngreet();\n")

	h := New(docs, idx)
	edit, ok := h.Rename("greet", "hello")
	require.True(t, ok)
	require.Len(t, edit.Changes["file:///a.php"], 2)
	for _, e := range edit.Changes["file:///a.php"] {
		require.Equal(t, "hello", e.NewText)
	}
}

func TestHandlers_Rename_NoMatches(t *testing.T) {
	docs := store.NewDocumentStore()
	idx := store.NewGlobalIndex()
	openDocument(t, docs, "file:///a.php", "<?php\nfunction greet() {}\n")

	h := New(docs, idx)
	_, ok := h.Rename("missingName", "hello")
	require.False(t, ok)
}

func TestExecuteCommand(t *testing.T) {
	h := New(store.NewDocumentStore(), store.NewGlobalIndex())
	require.True(t, h.ExecuteCommand(RestartCommand))
	require.False(t, h.ExecuteCommand("unknown.command"))
}
