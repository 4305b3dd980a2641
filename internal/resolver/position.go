// Package resolver implements the three-tier name resolution algorithm
// (§4.6) and the position-to-name mapping (§4.7) that query handlers sit on
// top of. Grounded on the teacher's internal/php/document.go
// (positionToPoint, GetNodeAt) for the byte-offset/point conversion, and
// internal/php/php.go + internal/php/class_analysis.go for the
// namespace/alias resolution shape.
package resolver

import (
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/phppp-lsp/phppp/internal/symbol"
)

// nameBearingKinds are the node kinds PositionMapper will ascend to.
var nameBearingKinds = map[string]bool{
	"name":           true,
	"qualified_name": true,
	"variable_name":  true,
}

// PositionMapper finds the smallest descendant node containing pos, then
// ascends until the node's kind is name-bearing or the root is reached
// (§4.7). It returns the node's UTF-8 text, or false if no such node
// exists (e.g. the position falls outside the tree, or only the root
// matched).
func PositionMapper(tree *sitter.Tree, content []byte, pos symbol.Position) (string, bool) {
	node, ok := smallestNodeAt(tree, content, pos)
	if !ok {
		return "", false
	}

	for cur := node; !cur.IsNull(); cur = cur.Parent() {
		if nameBearingKinds[cur.Type()] {
			return cur.Content(content), true
		}
	}
	return "", false
}

// smallestNodeAt returns the smallest named descendant containing pos.
func smallestNodeAt(tree *sitter.Tree, content []byte, pos symbol.Position) (sitter.Node, bool) {
	if tree == nil {
		return sitter.Node{}, false
	}
	root := tree.RootNode()
	if root.IsNull() {
		return sitter.Node{}, false
	}

	point, ok := positionToPoint(pos, content)
	if !ok {
		return sitter.Node{}, false
	}

	node := root.NamedDescendantForPointRange(point, point)
	if node.IsNull() {
		return sitter.Node{}, false
	}
	return node, true
}

// positionToPoint converts a wire Position (line, UTF-16 character) into a
// grammar Point (row, byte column). As documented in §9 "Position encoding",
// this assumes the UTF-16 character offset and the byte offset coincide
// within the line, which holds for ASCII source — the tests in §8 are all
// ASCII for exactly this reason. A future non-ASCII-aware conversion would
// need to walk UTF-16 code units rather than bytes here.
func positionToPoint(pos symbol.Position, content []byte) (sitter.Point, bool) {
	line := int(pos.Line)
	column := int(pos.Character)
	if line < 0 || column < 0 {
		return sitter.Point{}, false
	}

	currentLine := 0
	offset := 0
	for offset < len(content) && currentLine < line {
		if content[offset] == '\n' {
			currentLine++
		}
		offset++
	}
	if currentLine != line {
		return sitter.Point{}, false
	}

	byteColumn := 0
	for offset < len(content) && content[offset] != '\n' && byteColumn < column {
		offset++
		byteColumn++
	}
	if byteColumn < column {
		return sitter.Point{}, false
	}

	return sitter.Point{Row: uint(line), Column: uint(column)}, true
}

// OffsetToPosition converts a byte offset into content back into a wire
// Position, the inverse of positionToPoint, used by the textual
// references/rename handlers (§4.8) to turn `match_indices` byte offsets
// into protocol Positions. Carries the same ASCII assumption as
// positionToPoint (§9 "Position encoding").
func OffsetToPosition(content []byte, offset int) symbol.Position {
	line := uint32(0)
	lineStart := 0
	for i := 0; i < offset && i < len(content); i++ {
		if content[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	character := uint32(0)
	if offset > lineStart {
		character = uint32(offset - lineStart)
	}
	return symbol.Position{Line: line, Character: character}
}
