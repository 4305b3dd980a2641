package server

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/phppp-lsp/phppp/internal/resolver"
	"github.com/phppp-lsp/phppp/internal/symbol"
)

func (s *Server) didOpen(_ *glsp.Context, p *protocol.DidOpenTextDocumentParams) error {
	s.coordinator.DidOpen(p.TextDocument.URI, p.TextDocument.Text)
	return nil
}

// didChange only supports full-document sync (§6): a didChange always
// carries the new document text as a single TextDocumentContentChangeEventWhole.
func (s *Server) didChange(_ *glsp.Context, p *protocol.DidChangeTextDocumentParams) error {
	for _, c := range p.ContentChanges {
		if whole, ok := c.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.coordinator.DidChange(p.TextDocument.URI, whole.Text)
		}
	}
	return nil
}

func (s *Server) didClose(_ *glsp.Context, p *protocol.DidCloseTextDocumentParams) error {
	s.coordinator.DidClose(p.TextDocument.URI)
	return nil
}

func (s *Server) onDefinition(_ *glsp.Context, p *protocol.DefinitionParams) (any, error) {
	loc, ok := s.queries.Definition(p.TextDocument.URI, p.Position)
	if !ok {
		return nil, nil
	}
	return loc, nil
}

func (s *Server) onHover(_ *glsp.Context, p *protocol.HoverParams) (*protocol.Hover, error) {
	text, ok := s.queries.Hover(p.TextDocument.URI, p.Position)
	if !ok {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindPlainText,
			Value: text,
		},
	}, nil
}

func (s *Server) onCompletion(_ *glsp.Context, p *protocol.CompletionParams) (any, error) {
	items := s.queries.Completion(p.TextDocument.URI)
	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}

func (s *Server) onReferences(_ *glsp.Context, p *protocol.ReferenceParams) (any, error) {
	name, ok := s.nameAt(p.TextDocument.URI, p.Position)
	if !ok {
		return nil, nil
	}
	locations := s.queries.References(name)
	if len(locations) == 0 {
		return nil, nil
	}
	return locations, nil
}

func (s *Server) onRename(_ *glsp.Context, p *protocol.RenameParams) (*protocol.WorkspaceEdit, error) {
	name, ok := s.nameAt(p.TextDocument.URI, p.Position)
	if !ok {
		return nil, nil
	}
	edit, ok := s.queries.Rename(name, p.NewName)
	if !ok {
		return nil, nil
	}
	return &edit, nil
}

// nameAt resolves the textual token under a position without going through
// the full Resolver: references and rename operate on the token's literal
// text, not its resolved FQN (§4.8, §9).
func (s *Server) nameAt(uri symbol.URI, pos symbol.Position) (string, bool) {
	doc, ok := s.documents.Snapshot(uri)
	if !ok {
		return "", false
	}
	return resolver.PositionMapper(doc.Tree, doc.Text, pos)
}

func (s *Server) onExecuteCommand(_ *glsp.Context, p *protocol.ExecuteCommandParams) (any, error) {
	if !s.queries.ExecuteCommand(p.Command) {
		return nil, nil
	}
	go Exit()
	return nil, nil
}
