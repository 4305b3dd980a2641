package extractor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phppp-lsp/phppp/internal/symbol"
	"github.com/phppp-lsp/phppp/internal/syntax"
)

func parse(t *testing.T, content string) (*syntax.Tree, []byte) {
	t.Helper()
	p := syntax.New()
	t.Cleanup(p.Close)
	tree, err := p.Parse(context.Background(), nil, []byte(content))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree, []byte(content)
}

// Scenario 1 (§8): "Hello".
func TestExtract_Hello(t *testing.T) {
	content := `<?php function greet() { echo "Hello, World!"; }`
	tree, bytes := parse(t, content)

	fs := Extract(bytes, tree, "file:///hello.php")

	sym, ok := fs["greet"]
	require.True(t, ok)
	require.Equal(t, symbol.KindFunction, sym.Kind)
}

// Scenario 2 (§8): "Namespaced top-level".
func TestExtract_NamespacedTopLevel(t *testing.T) {
	content := "<?php\nnamespace Foo;\nfunction bar() {}\nclass Baz {}\nconst MYCONST = 1;\n$var = 2;\n"
	tree, bytes := parse(t, content)

	fs := Extract(bytes, tree, "file:///ns.php")

	require.Len(t, fs, 4)
	require.Contains(t, fs, `Foo\bar`)
	require.Contains(t, fs, `Foo\Baz`)
	require.Contains(t, fs, `Foo\MYCONST`)
	require.Contains(t, fs, `Foo\$var`)

	require.Equal(t, symbol.KindFunction, fs[`Foo\bar`].Kind)
	require.Equal(t, symbol.KindClass, fs[`Foo\Baz`].Kind)
	require.Equal(t, symbol.KindConstant, fs[`Foo\MYCONST`].Kind)
	require.Equal(t, symbol.KindVariable, fs[`Foo\$var`].Kind)
}

// §4.2 step 5: duplicate FQNs within a file, last writer wins.
func TestExtract_DuplicateFQN_LastWriterWins(t *testing.T) {
	content := "<?php\nfunction foo() {}\nfunction foo() {}\n"
	tree, bytes := parse(t, content)

	fs := Extract(bytes, tree, "file:///dup.php")

	require.Len(t, fs, 1)
	sym := fs["foo"]
	// The second declaration starts on line 2 (0-based).
	require.Equal(t, uint32(2), sym.Location.Range.Start.Line)
}

// §3 invariant P1: every symbol's location.uri equals the file's URI.
func TestExtract_LocationURIMatchesFile(t *testing.T) {
	content := "<?php\nfunction foo() {}\n"
	tree, bytes := parse(t, content)

	fs := Extract(bytes, tree, "file:///p1.php")
	for _, sym := range fs {
		require.Equal(t, symbol.URI("file:///p1.php"), sym.Location.URI)
		require.True(t, sym.Valid())
	}
}

// Supplemented feature: a class's `extends` target is recorded as metadata
// on its Symbol.Container, never folded into the FQN.
func TestExtract_ClassExtendsRecordedAsContainer(t *testing.T) {
	content := "<?php\nclass Dog extends Animal {}\n"
	tree, bytes := parse(t, content)

	fs := Extract(bytes, tree, "file:///dog.php")

	sym, ok := fs["Dog"]
	require.True(t, ok)
	require.Equal(t, symbol.KindClass, sym.Kind)
	require.Equal(t, "Animal", sym.Container)
}

func TestExtract_ClassNoExtends_ContainerEmpty(t *testing.T) {
	content := "<?php\nclass Standalone {}\n"
	tree, bytes := parse(t, content)

	fs := Extract(bytes, tree, "file:///standalone.php")

	sym, ok := fs["Standalone"]
	require.True(t, ok)
	require.Equal(t, "", sym.Container)
}

// §8 P4: idempotence — indexing the same text twice yields equal FileSymbols.
func TestExtract_Idempotent(t *testing.T) {
	content := "<?php\nnamespace Foo;\nfunction bar() {}\n"
	tree1, bytes1 := parse(t, content)
	tree2, bytes2 := parse(t, content)

	fs1 := Extract(bytes1, tree1, "file:///idem.php")
	fs2 := Extract(bytes2, tree2, "file:///idem.php")

	require.Equal(t, fs1, fs2)
}
