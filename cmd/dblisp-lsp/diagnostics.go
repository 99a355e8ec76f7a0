package main

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode/utf16"

	"go.lsp.dev/protocol"

	"github.com/signadot/dblisp/debug"
	"github.com/signadot/dblisp/parse"
	"github.com/signadot/dblisp/token"
	"github.com/signadot/dblisp/tree"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

func newDocumentStore() *documentStore {
	return &documentStore{docs: make(map[string]*document)}
}

type document struct {
	uri     string
	content string
	version int32
	lines   []string

	// root is nil when content does not parse; err then holds the reason.
	root      *tree.Node
	positions map[*tree.Node]token.Pos
	err       error

	// lastGood is the most recent root that parsed, kept for completion
	// while the user is in the middle of an edit.
	lastGood *tree.Node
}

func newDocument(uri, content string, version int32, prev *document) *document {
	doc := &document{
		uri:       uri,
		content:   content,
		version:   version,
		lines:     token.Lines([]byte(content)),
		positions: make(map[*tree.Node]token.Pos),
	}
	root, err := parse.ParseLines(doc.lines, parse.ParseSource(uri), parse.ParsePositions(doc.positions))
	if err != nil {
		doc.err = err
		if prev != nil {
			doc.lastGood = prev.lastGood
		}
		return doc
	}
	doc.root = root
	doc.lastGood = root
	return doc
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) *document {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	doc := newDocument(uri, content, version, ds.docs[uri])
	ds.docs[uri] = doc
	return doc
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func (s *Server) publishDiagnostics(ctx context.Context, uri string, diagnostics []protocol.Diagnostic) {
	if s.conn == nil {
		return
	}
	err := s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(uri),
		Diagnostics: diagnostics,
	})
	if err != nil && debug.LSP() {
		debug.Logf("%s: publish diagnostics %s: %v\n", lsName, uri, err)
	}
}

func validateDocument(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if doc.err == nil {
		return diagnostics
	}
	diagnostic := protocol.Diagnostic{
		Severity: protocol.DiagnosticSeverityError,
		Message:  doc.err.Error(),
		Source:   "dblisp",
	}
	var pe *parse.ParseErr
	if errors.As(doc.err, &pe) {
		diagnostic.Message = pe.Err.Error()
		start := doc.lspPosition(pe.Pos)
		end := start
		end.Character++
		diagnostic.Range = protocol.Range{Start: start, End: end}
	}
	return append(diagnostics, diagnostic)
}

// lspPosition converts a 1-based line and byte column into a 0-based line
// and UTF-16 character offset.
func (doc *document) lspPosition(p token.Pos) protocol.Position {
	line := p.Line - 1
	if line < 0 {
		line = 0
	}
	col := p.Col - 1
	if col < 0 {
		col = 0
	}
	char := col
	if line < len(doc.lines) {
		ln := doc.lines[line]
		if col > len(ln) {
			col = len(ln)
		}
		char = utf16Len(ln[:col])
	}
	return protocol.Position{Line: uint32(line), Character: uint32(char)}
}

// byteCol converts a 0-based UTF-16 character offset on line into a 1-based
// byte column.
func (doc *document) byteCol(line, char int) int {
	if line < 0 || line >= len(doc.lines) {
		return char + 1
	}
	ln := doc.lines[line]
	units := 0
	for i, r := range ln {
		if units >= char {
			return i + 1
		}
		units += runeUnits(r)
	}
	return len(ln) + 1
}

// utf16Len returns the length of s in UTF-16 code units.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += runeUnits(r)
	}
	return n
}

func runeUnits(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	doc := s.docs.put(uri, params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, uri, validateDocument(doc))
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	doc := s.docs.get(uri)
	if doc == nil {
		return nil
	}
	content := doc.content
	for _, change := range params.ContentChanges {
		content = applyChange(content, change)
	}
	doc = s.docs.put(uri, content, params.TextDocument.Version)
	if debug.LSP() {
		debug.Logf("%s: change %s v%d err=%v\n", lsName, uri, doc.version, doc.err)
	}
	s.publishDiagnostics(ctx, uri, validateDocument(doc))
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.docs.remove(uri)
	s.publishDiagnostics(ctx, uri, []protocol.Diagnostic{})
	return nil
}

// applyChange applies one content change.  A zero range replaces the whole
// document.
func applyChange(content string, change protocol.TextDocumentContentChangeEvent) string {
	r := change.Range
	if r.Start.Line == 0 && r.Start.Character == 0 && r.End.Line == 0 && r.End.Character == 0 {
		return change.Text
	}
	start := lineColToOffset(content, int(r.Start.Line), int(r.Start.Character))
	end := lineColToOffset(content, int(r.End.Line), int(r.End.Character))
	if start > end {
		return content
	}
	return content[:start] + change.Text + content[end:]
}

// lineColToOffset returns the byte offset of a 0-based line and UTF-16
// character.  Positions past the end of a line stop at its end.
func lineColToOffset(content string, line, col int) int {
	i := 0
	for l := 0; l < line; l++ {
		j := strings.IndexByte(content[i:], '\n')
		if j < 0 {
			return len(content)
		}
		i += j + 1
	}
	units := 0
	for k, r := range content[i:] {
		if r == '\n' || units >= col {
			return i + k
		}
		units += runeUnits(r)
	}
	return len(content)
}
