// Package config provides the two maps the core treats as externally
// supplied, read once at startup (§1, §6 "Workspace metadata"): the
// Composer PSR-4 autoload mapping and the `.phppprc` configuration object.
// Grounded on the teacher's internal/config/autoload.go and config.go,
// adapted to parse composer.json directly via encoding/json rather than
// shelling out to a php binary — the spec treats this provider as an
// external collaborator, so it only needs to be correct and read-once, not
// bit-for-bit compatible with Composer's own generated autoload_psr4.php.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tliron/commonlog"
)

// Psr4Map maps a namespace prefix to the directories Composer maps it onto.
type Psr4Map map[string][]string

// ClassmapMap maps a fully-qualified class name directly to a file path.
type ClassmapMap map[string]string

// AutoloadMap is the autoload information consumed, not produced, by the
// core (§6). It is read once at startup and kept on config.Config; the
// WorkspaceScanner does not receive it and walks the whole root, and the
// Resolver never touches it (§4.6 resolves purely against in-memory symbol
// tables).
type AutoloadMap struct {
	PSR4     Psr4Map
	Classmap ClassmapMap
}

// composerJSON is the subset of composer.json this server understands.
type composerJSON struct {
	Autoload struct {
		PSR4     map[string]json.RawMessage `json:"psr-4"`
		Classmap []string                   `json:"classmap"`
	} `json:"autoload"`
}

// LoadComposerAutoload parses composer.json at workspaceRoot. A missing file
// yields an empty map without logging; an unreadable or invalid file is
// logged and an empty map is returned (§7 "Configuration parse failure");
// the server still starts. Only the psr-4 block is loaded: the classmap
// array is not read, so Classmap is always empty in the result.
func LoadComposerAutoload(workspaceRoot string) AutoloadMap {
	logger := commonlog.GetLoggerf("phppp.config")
	result := AutoloadMap{PSR4: make(Psr4Map), Classmap: make(ClassmapMap)}

	path := filepath.Join(workspaceRoot, "composer.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warningf("could not read %s: %v", path, err)
		}
		return result
	}

	var doc composerJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Errorf("could not parse %s: %v", path, err)
		return result
	}

	for namespace, raw := range doc.Autoload.PSR4 {
		paths, err := decodePsr4Paths(raw)
		if err != nil {
			logger.Warningf("could not decode psr-4 entry %q in %s: %v", namespace, path, err)
			continue
		}
		result.PSR4[namespace] = paths
	}

	logger.Infof("loaded %d psr-4 prefixes from %s", len(result.PSR4), path)
	return result
}

// decodePsr4Paths handles Composer's two accepted shapes for a PSR-4 entry:
// a single path string, or an array of path strings.
func decodePsr4Paths(raw json.RawMessage) ([]string, error) {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}, nil
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err != nil {
		return nil, fmt.Errorf("expected string or array of strings: %w", err)
	}
	return many, nil
}

// Resolve translates an FQN prefix match in autoload into a candidate file
// path under workspaceRoot, mirroring Composer's own PSR-4 lookup rule.
// Neither the WorkspaceScanner nor the Resolver calls it.
func (m AutoloadMap) Resolve(fqn, workspaceRoot string) (string, bool) {
	if path, ok := m.Classmap[fqn]; ok {
		return resolveRelative(path, workspaceRoot)
	}
	for namespace, dirs := range m.PSR4 {
		if len(fqn) < len(namespace) || fqn[:len(namespace)] != namespace {
			continue
		}
		rel := fqn[len(namespace):]
		relPath := pathFromFQN(rel) + ".php"
		for _, dir := range dirs {
			base := dir
			if !filepath.IsAbs(base) {
				base = filepath.Join(workspaceRoot, dir)
			}
			candidate := filepath.Join(base, relPath)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
	}
	return "", false
}

func resolveRelative(path, workspaceRoot string) (string, bool) {
	candidate := path
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(workspaceRoot, path)
	}
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate, true
	}
	return "", false
}

func pathFromFQN(fqn string) string {
	out := make([]byte, len(fqn))
	for i := 0; i < len(fqn); i++ {
		if fqn[i] == '\\' {
			out[i] = filepath.Separator
		} else {
			out[i] = fqn[i]
		}
	}
	return string(out)
}
