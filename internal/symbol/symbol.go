// Package symbol defines the value types shared by every stage of the
// indexing pipeline: parser output feeds the extractor, the extractor
// feeds the stores, the stores feed the resolver and query handlers.
package symbol

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// URI is the opaque, comparable identifier of a document. Callers must use
// Canonical before using a URI as a map key.
type URI = protocol.DocumentUri

// Canonical normalizes a URI for use as a map key: lowercase scheme,
// percent-encoding left as reported by the client (editors already send
// normalized URIs; we only guard against scheme case drift here).
func Canonical(uri URI) URI {
	s := string(uri)
	idx := strings.Index(s, "://")
	if idx < 0 {
		return uri
	}
	return URI(strings.ToLower(s[:idx]) + s[idx:])
}

// Position is a zero-based (line, character) pair. Character counts UTF-16
// code units on the wire; internal node ranges are byte offsets. Conversion
// between the two happens only at the Parser/PositionMapper boundary.
type Position = protocol.Position

// Range is a half-open pair of Positions (end exclusive).
type Range = protocol.Range

// Location pairs a URI with a Range inside it.
type Location = protocol.Location

// Kind enumerates the symbol kinds this language server understands.
type Kind int

const (
	KindFunction Kind = iota
	KindClass
	KindConstant
	KindVariable
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "Function"
	case KindClass:
		return "Class"
	case KindConstant:
		return "Constant"
	case KindVariable:
		return "Variable"
	default:
		return "Unknown"
	}
}

// CompletionKind maps a Kind onto the wire completion-item kind (§4.8).
func (k Kind) CompletionKind() protocol.CompletionItemKind {
	switch k {
	case KindFunction:
		return protocol.CompletionItemKindFunction
	case KindClass:
		return protocol.CompletionItemKindClass
	case KindConstant:
		return protocol.CompletionItemKindConstant
	case KindVariable:
		return protocol.CompletionItemKindVariable
	default:
		return protocol.CompletionItemKindText
	}
}

// Symbol is a single declaration extracted from a file.
//
// Invariants (§3): Name is non-empty; Variable-kind names begin with "$";
// Location.URI equals the file the symbol was extracted from.
type Symbol struct {
	Name      string
	Kind      Kind
	Location  Location
	Container string // optional owning class/function name; metadata only
}

// Valid reports whether s satisfies the §3 name invariants (non-empty;
// Variable-kind names begin with "$"). The Location.URI invariant is not
// checked here.
func (s Symbol) Valid() bool {
	if s.Name == "" {
		return false
	}
	if s.Kind == KindVariable && !strings.HasPrefix(s.Name, "$") {
		return false
	}
	return true
}

// FileSymbols maps a fully-qualified name to its Symbol, unique per file.
type FileSymbols map[string]Symbol

// Clone returns a value-copy of the map suitable for handing to a reader
// that must not observe subsequent mutation (DocumentStore.snapshot, §4.3).
func (fs FileSymbols) Clone() FileSymbols {
	out := make(FileSymbols, len(fs))
	for k, v := range fs {
		out[k] = v
	}
	return out
}

// Aliases maps a file's `use`-clause short names to their fully-qualified
// target path (§3, §4.6).
type Aliases map[string]string
