package token

import (
	"errors"
	"fmt"
)

type TokenType int

const (
	TLParen TokenType = iota
	TRParen
	TString
	TAtom
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TLParen: "TLParen",
		TRParen: "TRParen",
		TString: "TString",
		TAtom:   "TAtom",
	}[t]
}

type Token struct {
	Type TokenType
	Pos  Pos
	Text string
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos)
}

// String returns the value of the token, decoding escapes in strings.
func (t *Token) String() string {
	if t.Type == TString {
		return Unquote(t.Text)
	}
	return t.Text
}

var ErrUnterminatedString = errors.New("unterminated string")

type TokenizeErr struct {
	Err error
	Pos Pos
}

func NewTokenizeErr(e error, p Pos) *TokenizeErr {
	return &TokenizeErr{Err: e, Pos: p}
}

func (e *TokenizeErr) Unwrap() error {
	return e.Err
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos)
}
