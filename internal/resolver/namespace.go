package resolver

import (
	"regexp"
	"strings"

	"github.com/phppp-lsp/phppp/internal/symbol"
)

// namespaceRe matches the first `namespace <path>;` declaration, scanning
// raw source text rather than the tree so namespace extraction keeps
// working against a partially-parsed file (§4.6 "Namespace extraction").
var namespaceRe = regexp.MustCompile(`(?m)^\s*namespace\s+([^;{]+)\s*;`)

// useRe matches a `use <clause>;` line (§4.6 "Alias extraction").
var useRe = regexp.MustCompile(`(?m)^\s*use\s+([^;]+)\s*;`)

// ExtractNamespace returns the file's declared namespace, or "" for the
// global namespace.
func ExtractNamespace(source []byte) string {
	m := namespaceRe.FindSubmatch(source)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(string(m[1]))
}

// ExtractAliases returns the short-name -> fully-qualified-path map derived
// from every `use` clause in the file. Duplicate short names: last wins.
func ExtractAliases(source []byte) symbol.Aliases {
	aliases := make(symbol.Aliases)
	for _, m := range useRe.FindAllSubmatch(source, -1) {
		clause := strings.TrimSpace(string(m[1]))
		fields := strings.Fields(clause)
		if len(fields) == 0 {
			continue
		}
		path := strings.TrimPrefix(fields[0], `\`)
		path = strings.TrimSuffix(path, ",")

		short := ""
		if len(fields) >= 3 && strings.EqualFold(fields[1], "as") {
			short = fields[2]
		} else {
			segments := strings.Split(path, `\`)
			short = segments[len(segments)-1]
		}
		if short == "" {
			continue
		}
		aliases[short] = path
	}
	return aliases
}

// CanonicalFQN computes the fully-qualified name for query, following the
// §4.6 step-2 rules: an absolute name (leading "\\") is used verbatim after
// stripping the backslash; otherwise the first "\\"-segment is replaced by
// its alias target if one matches; otherwise the query is namespace-
// qualified when a namespace is declared.
func CanonicalFQN(query, namespace string, aliases symbol.Aliases) string {
	if strings.HasPrefix(query, `\`) {
		return strings.TrimPrefix(query, `\`)
	}

	segments := strings.Split(query, `\`)
	if target, ok := aliases[segments[0]]; ok {
		segments[0] = target
		return strings.Join(segments, `\`)
	}

	if namespace != "" {
		return namespace + `\` + query
	}
	return query
}
