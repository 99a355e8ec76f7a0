package token

import "strings"

// Tokenizer turns a sequence of lines into tokens.  Feed it lines in order
// with Line and call Close once the input is exhausted.
type Tokenizer struct {
	line int

	// set while a quoted string is open across lines
	inString bool
	strOpen  Pos
	strBuf   strings.Builder
}

func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// InString reports whether the lines fed so far end inside a quoted string.
func (t *Tokenizer) InString() bool {
	return t.inString
}

// Close reports ErrUnterminatedString, at the position of the opening
// quote, if the input ended inside a quoted string.
func (t *Tokenizer) Close() error {
	if t.inString {
		return NewTokenizeErr(ErrUnterminatedString, t.strOpen)
	}
	return nil
}

func (t *Tokenizer) pos(i int) Pos {
	return Pos{Line: t.line, Col: i + 1}
}

// Line tokenizes the next line of input, which must not contain '\n', and
// appends the resulting tokens to dst.
func (t *Tokenizer) Line(dst []Token, ln string) []Token {
	t.line++
	i := 0
	if t.inString {
		end := closingQuote(ln, 0)
		t.strBuf.WriteByte('\n')
		if end < 0 {
			t.strBuf.WriteString(ln)
			return dst
		}
		t.strBuf.WriteString(ln[:end])
		dst = append(dst, Token{Type: TString, Pos: t.strOpen, Text: t.strBuf.String()})
		t.strBuf.Reset()
		t.inString = false
		i = end + 1
	}
	for i < len(ln) {
		c := ln[i]
		switch {
		case c == '(':
			dst = append(dst, Token{Type: TLParen, Pos: t.pos(i), Text: "("})
			i++
		case c == ')':
			dst = append(dst, Token{Type: TRParen, Pos: t.pos(i), Text: ")"})
			i++
		case c == ';':
			return dst
		case c == '"':
			end := closingQuote(ln, i+1)
			if end < 0 {
				t.inString = true
				t.strOpen = t.pos(i)
				t.strBuf.WriteString(ln[i+1:])
				return dst
			}
			dst = append(dst, Token{Type: TString, Pos: t.pos(i), Text: ln[i+1 : end]})
			i = end + 1
		case isSpace(c):
			i++
		default:
			j := i + 1
			for j < len(ln) && ln[j] != ')' && !isSpace(ln[j]) {
				j++
			}
			dst = append(dst, Token{Type: TAtom, Pos: t.pos(i), Text: ln[i:j]})
			i = j
		}
	}
	return dst
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	}
	return false
}
