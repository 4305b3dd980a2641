// Package syntax wraps the tree-sitter PHP grammar behind the narrow
// interface the rest of the pipeline needs (§4.1, §6 "Grammar interface").
// It is the only package that imports the grammar binding directly.
package syntax

import (
	"context"

	phpforest "github.com/alexaandru/go-sitter-forest/php"
	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// Tree is an immutable concrete syntax tree produced by Parse. It may
// contain error nodes if the source was not syntactically valid PHP; it is
// never nil on a successful Parse call. Callers must call Close when done.
type Tree = sitter.Tree

// Node is a tree-sitter node, carrying byte-range and (row, column) data.
type Node = sitter.Node

// Point is a (row, column) pair as reported by the grammar.
type Point = sitter.Point

// Parser produces concrete syntax trees from PHP source bytes. A Parser
// value is not safe for concurrent use; callers obtain one per parse via
// New, mirroring the teacher's per-Document parser lifecycle.
type Parser struct {
	inner *sitter.Parser
}

// New constructs a Parser configured with the PHP grammar.
func New() *Parser {
	p := sitter.NewParser()
	lang := sitter.NewLanguage(phpforest.GetLanguage())
	_ = p.SetLanguage(lang)
	return &Parser{inner: p}
}

// Parse produces a tree from source bytes. old, when non-nil, is the
// previous tree for this same logical document and enables tree-sitter's
// incremental reuse after an Edit call; pass nil for a fresh parse.
//
// Parse has no side effects and tolerates syntax errors: a malformed input
// yields a tree containing error nodes rather than an error return, per the
// grammar's black-box contract (§4.1, §6).
func (p *Parser) Parse(ctx context.Context, old *Tree, content []byte) (*Tree, error) {
	return p.inner.ParseString(ctx, old, content)
}

// Close releases the parser's internal arena. Safe to call once per Parser.
func (p *Parser) Close() {
	p.inner.Close()
}
