package main

import (
	"context"
	"fmt"

	"go.lsp.dev/protocol"

	"github.com/signadot/dblisp/encode"
	"github.com/signadot/dblisp/tree"
)

func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	line := int(params.Position.Line)
	col := doc.byteCol(line, int(params.Position.Character)) - 1
	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        completions(doc, line, col),
	}, nil
}

// completions suggests variable references right after '(': every top level
// key of the last document that parsed.
func completions(doc *document, line, col int) []protocol.CompletionItem {
	items := []protocol.CompletionItem{}
	if doc.lastGood == nil || line < 0 || line >= len(doc.lines) {
		return items
	}
	ln := doc.lines[line]
	if col > len(ln) {
		col = len(ln)
	}
	if col == 0 || ln[col-1] != '(' {
		return items
	}
	for key, n := range doc.lastGood.All() {
		if !isAtom(key) {
			continue
		}
		items = append(items, protocol.CompletionItem{
			Label:      key,
			Kind:       protocol.CompletionItemKindVariable,
			Detail:     fmt.Sprintf("%s reference", n.Kind()),
			InsertText: key + ")",
			Documentation: protocol.MarkupContent{
				Kind:  protocol.Markdown,
				Value: "```\n" + preview(n) + "\n```",
			},
		})
	}
	return items
}

// isAtom reports whether key can be written as a bare variable reference.
func isAtom(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '(', ')', '"', ';', ' ', '\t', '\r', '\v', '\f', '\n':
			return false
		}
	}
	return true
}

func preview(n *tree.Node) string {
	s := encode.MustString(n)
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
