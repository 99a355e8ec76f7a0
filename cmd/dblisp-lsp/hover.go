package main

import (
	"context"
	"fmt"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/signadot/dblisp/token"
	"github.com/signadot/dblisp/tree"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.root == nil {
		return nil, nil
	}
	line := int(params.Position.Line)
	at := token.Pos{Line: line + 1, Col: doc.byteCol(line, int(params.Position.Character))}
	path, n := findNodeAt(doc.root, doc.positions, at)
	if n == nil {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: buildHoverText(path, n),
		},
	}, nil
}

// findNodeAt returns the node whose opening parenthesis is the last one at
// or before p on the same line, along with its path from root.
func findNodeAt(root *tree.Node, positions map[*tree.Node]token.Pos, p token.Pos) ([]string, *tree.Node) {
	var (
		bestPath []string
		best     *tree.Node
		bestPos  token.Pos
	)
	root.Walk(func(path []string, n *tree.Node) (bool, error) {
		np, ok := positions[n]
		if !ok || np.Line != p.Line || p.Before(np) {
			return true, nil
		}
		if best == nil || bestPos.Before(np) {
			best = n
			bestPos = np
			bestPath = append([]string(nil), path...)
		}
		return true, nil
	})
	return bestPath, best
}

func buildHoverText(path []string, n *tree.Node) string {
	parts := []string{
		fmt.Sprintf("**Path:** `%s`", tree.FormatPath(path)),
		fmt.Sprintf("**Kind:** %s", n.Kind()),
	}
	switch {
	case n.IsScalar():
		parts = append(parts, fmt.Sprintf("**Value:** `%s`", clip(n.Values()[0])))
	case n.IsList():
		vs := n.Values()
		quoted := make([]string, len(vs))
		for i, v := range vs {
			quoted[i] = "`" + clip(v) + "`"
		}
		parts = append(parts, fmt.Sprintf("**Values (%d):** %s", len(vs), strings.Join(quoted, ", ")))
	case n.IsSubtree():
		parts = append(parts, fmt.Sprintf("**Children (%d):** %s", n.Len(), strings.Join(n.Keys(), ", ")))
	}
	return strings.Join(parts, "\n\n")
}

func clip(v string) string {
	if len(v) > 50 {
		v = v[:50] + "..."
	}
	return strings.ReplaceAll(v, "\n", `\n`)
}
