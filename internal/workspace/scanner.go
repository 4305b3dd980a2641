// Package workspace implements the initial recursive scan and the
// FS-watch-driven re-indexing described in §4.5. Grounded on the teacher's
// internal/config/container.go (which walks the workspace once at
// initialize time to discover bundle roots) for the walk-and-log-errors
// shape, enriched with golang.org/x/sync/errgroup for bounded parallel
// indexing (present in the pack's dependency graph via
// GoogleContainerTools-skaffold) and github.com/fsnotify/fsnotify for the
// recursive FS watcher the spec requires and the teacher never needed
// (vimfony relies on the editor's own didChange stream only).
package workspace

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/phppp-lsp/phppp/internal/extractor"
	"github.com/phppp-lsp/phppp/internal/store"
	"github.com/phppp-lsp/phppp/internal/symbol"
	"github.com/phppp-lsp/phppp/internal/syntax"
	"github.com/phppp-lsp/phppp/internal/utils"
)

var logger = commonlog.GetLoggerf("phppp.workspace")

// Scanner performs the initial recursive scan of a workspace root and, once
// started, keeps the GlobalIndex current as files change on disk (§4.5).
type Scanner struct {
	root  string
	index *store.GlobalIndex
}

// NewScanner constructs a Scanner rooted at root, indexing into index.
func NewScanner(root string, index *store.GlobalIndex) *Scanner {
	return &Scanner{root: root, index: index}
}

// InitialScan walks root recursively and indexes every .php file found.
// Per-file IO or parse errors are logged and non-fatal (§4.5, §7); only a
// failure to walk the root directory itself is returned.
func (s *Scanner) InitialScan(ctx context.Context) error {
	var paths []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.root {
				return err
			}
			logger.Warningf("walk error at %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".php") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(runtime.GOMAXPROCS(0), 1))

	for _, path := range paths {
		path := path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			s.indexFile(path)
			return nil
		})
	}

	// Per-file errors never abort the scan (§4.5); Wait only ever reports
	// an error here if the context itself was cancelled.
	return g.Wait()
}

// indexFile reads, parses and extracts path, inserting the result into the
// GlobalIndex. Failures are logged and otherwise ignored.
func (s *Scanner) indexFile(path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warningf("could not read %s: %v", path, err)
		return
	}

	parser := syntax.New()
	defer parser.Close()

	tree, err := parser.Parse(context.Background(), nil, content)
	if err != nil {
		logger.Warningf("could not parse %s: %v", path, err)
		return
	}
	defer tree.Close()

	uri := symbol.URI(utils.PathToURI(path))
	fs := extractor.Extract(content, tree, uri)
	s.index.Insert(uri, fs)
}

// removeFile evicts path's GlobalIndex entry, e.g. when the watcher
// observes a deletion.
func (s *Scanner) removeFile(path string) {
	uri := symbol.URI(utils.PathToURI(path))
	s.index.Remove(uri)
}
