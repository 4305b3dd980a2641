package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phppp-lsp/phppp/internal/symbol"
	"github.com/phppp-lsp/phppp/internal/syntax"
)

func mustParse(t *testing.T, content string) (*syntax.Tree, []byte) {
	t.Helper()
	p := syntax.New()
	t.Cleanup(p.Close)
	tree, err := p.Parse(context.Background(), nil, []byte(content))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree, []byte(content)
}

// §4.7: PositionMapper resolves the token under the cursor.
func TestPositionMapper_FunctionName(t *testing.T) {
	content := "<?php\nfunction greet() { echo 1; }\n"
	tree, bytes := mustParse(t, content)

	// "greet" starts at line 1, column 9.
	name, ok := PositionMapper(tree, bytes, symbol.Position{Line: 1, Character: 10})
	require.True(t, ok)
	require.Equal(t, "greet", name)
}

func TestPositionMapper_OutOfRange(t *testing.T) {
	content := "<?php\nfunction greet() {}\n"
	tree, bytes := mustParse(t, content)

	_, ok := PositionMapper(tree, bytes, symbol.Position{Line: 99, Character: 0})
	require.False(t, ok)
}

func TestOffsetToPosition(t *testing.T) {
	content := []byte("line0\nline1\nline2")

	require.Equal(t, symbol.Position{Line: 0, Character: 2}, OffsetToPosition(content, 2))
	require.Equal(t, symbol.Position{Line: 1, Character: 0}, OffsetToPosition(content, 6))
	require.Equal(t, symbol.Position{Line: 2, Character: 3}, OffsetToPosition(content, 15))
}
