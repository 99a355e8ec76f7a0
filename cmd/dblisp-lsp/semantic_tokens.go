package main

import (
	"context"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/signadot/dblisp/token"
)

var (
	tokenTypes = []protocol.SemanticTokenTypes{
		protocol.SemanticTokenComment,
		protocol.SemanticTokenString,
		protocol.SemanticTokenOperator,
		protocol.SemanticTokenProperty,
		protocol.SemanticTokenVariable,
	}
	tokenModifiers = []protocol.SemanticTokenModifiers{
		protocol.SemanticTokenModifierDefinition,
	}
)

func typeIndex(t protocol.SemanticTokenTypes) uint32 {
	for i, x := range tokenTypes {
		if x == t {
			return uint32(i)
		}
	}
	return 0
}

type semToken struct {
	line, char, length uint32
	typ                protocol.SemanticTokenTypes
	definition         bool
}

// collectSemanticTokens classifies the text of doc.  Keys are properties,
// references are variables and parentheses are operators.  Strings spanning
// several lines give one token per line.
func collectSemanticTokens(doc *document) []semToken {
	var res []semToken
	tz := token.NewTokenizer()
	var prev *token.Token
	for i, ln := range doc.lines {
		startsInString := tz.InString()
		toks := tz.Line(nil, ln)
		lineEnd := 0
		if startsInString && len(toks) == 0 && tz.InString() {
			// emitted once the string closes
			continue
		}
		for j := range toks {
			t := &toks[j]
			switch t.Type {
			case token.TLParen, token.TRParen:
				res = append(res, doc.span(t.Pos.Line-1, t.Pos.Col-1, 1, protocol.SemanticTokenOperator, false))
				lineEnd = t.Pos.Col
			case token.TAtom:
				res = append(res, doc.span(t.Pos.Line-1, t.Pos.Col-1, len(t.Text), protocol.SemanticTokenVariable, false))
				lineEnd = t.Pos.Col - 1 + len(t.Text)
			case token.TString:
				isKey := prev != nil && prev.Type == token.TLParen
				typ := protocol.SemanticTokenString
				if isKey {
					typ = protocol.SemanticTokenProperty
				}
				pieces := strings.Split(t.Text, "\n")
				if len(pieces) == 1 {
					res = append(res, doc.span(i, t.Pos.Col-1, len(t.Text)+2, typ, isKey))
					lineEnd = t.Pos.Col + len(t.Text) + 1
					break
				}
				first := t.Pos.Line - 1
				res = append(res, doc.span(first, t.Pos.Col-1, len(pieces[0])+1, typ, isKey))
				for k := 1; k < len(pieces)-1; k++ {
					res = append(res, doc.span(first+k, 0, len(pieces[k]), typ, isKey))
				}
				last := pieces[len(pieces)-1]
				res = append(res, doc.span(i, 0, len(last)+1, typ, isKey))
				lineEnd = len(last) + 1
			}
			prev = t
		}
		if tz.InString() {
			continue
		}
		if c := strings.IndexByte(ln[lineEnd:], ';'); c >= 0 {
			text := strings.TrimSuffix(ln[lineEnd+c:], "\r")
			res = append(res, doc.span(i, lineEnd+c, len(text), protocol.SemanticTokenComment, false))
		}
	}
	return res
}

// span builds a token for the byte range [col, col+n) of line.
func (doc *document) span(line, col, n int, typ protocol.SemanticTokenTypes, definition bool) semToken {
	ln := ""
	if line >= 0 && line < len(doc.lines) {
		ln = doc.lines[line]
	}
	if col > len(ln) {
		col = len(ln)
	}
	end := col + n
	if end > len(ln) {
		end = len(ln)
	}
	return semToken{
		line:       uint32(line),
		char:       uint32(utf16Len(ln[:col])),
		length:     uint32(utf16Len(ln[col:end])),
		typ:        typ,
		definition: definition,
	}
}

// encodeSemanticTokens produces the relative encoding of toks, which must be
// in document order, keeping those on lines [from, to].
func encodeSemanticTokens(toks []semToken, from, to uint32) []uint32 {
	data := []uint32{}
	var lastLine, lastChar uint32
	for _, t := range toks {
		if t.line < from || t.line > to || t.length == 0 {
			continue
		}
		deltaLine := t.line - lastLine
		deltaChar := t.char
		if deltaLine == 0 {
			deltaChar = t.char - lastChar
		}
		var mods uint32
		if t.definition {
			mods = 1
		}
		data = append(data, deltaLine, deltaChar, t.length, typeIndex(t.typ), mods)
		lastLine, lastChar = t.line, t.char
	}
	return data
}

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	data := encodeSemanticTokens(collectSemanticTokens(doc), 0, ^uint32(0))
	return &protocol.SemanticTokens{Data: data}, nil
}

func (s *Server) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	r := params.Range
	data := encodeSemanticTokens(collectSemanticTokens(doc), r.Start.Line, r.End.Line)
	return &protocol.SemanticTokens{Data: data}, nil
}
