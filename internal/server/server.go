// Package server wires the core pipeline onto the standardized
// JSON-over-stdio language server protocol via tliron/glsp (§6). Grounded
// on the teacher's internal/server/server.go: same Handler-struct wiring,
// same initialize/shutdown lifecycle, same `protocol.Handler` field names.
package server

import (
	"context"
	"os"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"github.com/phppp-lsp/phppp/internal/config"
	"github.com/phppp-lsp/phppp/internal/coordinator"
	"github.com/phppp-lsp/phppp/internal/query"
	"github.com/phppp-lsp/phppp/internal/store"
	"github.com/phppp-lsp/phppp/internal/utils"
	"github.com/phppp-lsp/phppp/internal/workspace"
)

const lsName = "phppp"

var version = "0.1.0"

var logger = commonlog.GetLoggerf("phppp.server")

// Server owns one independent instance of the whole pipeline: its own
// DocumentStore, GlobalIndex, Coordinator and query Handlers. Multiple
// Servers can coexist in the same process (§9 "Global mutable state") —
// nothing here is a package-level singleton.
type Server struct {
	documents   *store.DocumentStore
	index       *store.GlobalIndex
	coordinator *coordinator.Coordinator
	queries     *query.Handlers
	scanner     *workspace.Scanner
	cancelWatch context.CancelFunc

	h protocol.Handler
}

// NewServer constructs a Server with fresh, independent state.
func NewServer() *Server {
	documents := store.NewDocumentStore()
	index := store.NewGlobalIndex()

	s := &Server{
		documents:   documents,
		index:       index,
		coordinator: coordinator.New(documents, index),
		queries:     query.New(documents, index),
	}

	s.h = protocol.Handler{
		Initialize:              s.initialize,
		Initialized:             s.initialized,
		Shutdown:                s.shutdown,
		SetTrace:                s.setTrace,
		TextDocumentDidOpen:     s.didOpen,
		TextDocumentDidChange:   s.didChange,
		TextDocumentDidClose:    s.didClose,
		TextDocumentDefinition:  s.onDefinition,
		TextDocumentHover:       s.onHover,
		TextDocumentCompletion:  s.onCompletion,
		TextDocumentReferences:  s.onReferences,
		TextDocumentRename:      s.onRename,
		WorkspaceExecuteCommand: s.onExecuteCommand,
	}
	return s
}

// Run blocks serving the protocol over stdio until exit.
func (s *Server) Run() {
	srv := glspserver.NewServer(&s.h, lsName, false)
	srv.RunStdio()
}

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	caps := s.h.CreateServerCapabilities()

	openClose := true
	syncKind := protocol.TextDocumentSyncKindFull
	caps.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &openClose,
		Change:    &syncKind,
	}
	defProvider := true
	caps.DefinitionProvider = defProvider
	hoverProvider := true
	caps.HoverProvider = hoverProvider
	caps.CompletionProvider = &protocol.CompletionOptions{}
	referencesProvider := true
	caps.ReferencesProvider = referencesProvider
	renameProvider := true
	caps.RenameProvider = renameProvider
	caps.ExecuteCommandProvider = &protocol.ExecuteCommandOptions{
		Commands: []string{query.RestartCommand},
	}

	root := workspaceRoot(params)
	cfg := config.Load(root)

	s.scanner = workspace.NewScanner(root, s.index)
	if err := s.scanner.InitialScan(context.Background()); err != nil {
		logger.Warningf("initial workspace scan failed: %v", err)
	} else {
		logger.Infof("initial scan indexed %d files", s.index.Len())
	}

	watchCtx, cancel := context.WithCancel(context.Background())
	s.cancelWatch = cancel
	go func() {
		if err := s.scanner.Watch(watchCtx); err != nil {
			logger.Warningf("workspace watcher stopped: %v", err)
		}
	}()

	// Plugins register once, after the initial scan and watcher are in
	// place (§9) — matching the original's scan -> watch -> register_all
	// ordering, so a plugin's Register sees a fully populated index.
	for _, plugin := range cfg.Plugins {
		plugin.Register(s.index)
		logger.Infof("registered plugin %q", plugin.Name())
	}

	return protocol.InitializeResult{
		Capabilities: caps,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func workspaceRoot(params *protocol.InitializeParams) string {
	if params.RootURI != nil {
		return utils.UriToPath(*params.RootURI)
	}
	if len(params.WorkspaceFolders) > 0 {
		return utils.UriToPath(params.WorkspaceFolders[0].URI)
	}
	return "."
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error { return nil }

func (s *Server) shutdown(_ *glsp.Context) error {
	if s.cancelWatch != nil {
		s.cancelWatch()
	}
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, p *protocol.SetTraceParams) error {
	protocol.SetTraceValue(p.Value)
	return nil
}

// Exit causes the process to terminate with status 0 (§6 "Exit status").
// It is called by the `phppp.restart` command (§4.8, §6); no `exit`
// notification handler is registered in the protocol.Handler above.
func Exit() {
	os.Exit(0)
}
