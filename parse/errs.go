package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/dblisp/token"
	"github.com/signadot/dblisp/tree"
)

var (
	ErrFileUnreadable       = errors.New("file unreadable")
	ErrUnterminatedString   = token.ErrUnterminatedString
	ErrUnmatchedOpen        = errors.New("unmatched '('")
	ErrUnmatchedClose       = errors.New("unmatched ')'")
	ErrEmptyParenList       = errors.New("empty parenthesis list")
	ErrMissingKeyAfterOpen  = errors.New("missing key after '('")
	ErrUndefinedVariable    = errors.New("undefined variable")
	ErrAmbiguousDefinition  = errors.New("ambiguous definition")
	ErrDuplicateKey         = tree.ErrDuplicateKey
	ErrInvalidTopLevelValue = errors.New("invalid top level value")
	ErrInvalidAtomPosition  = errors.New("invalid atom position")
	ErrUnsupported          = errors.New("unsupported value")
)

const defaultSource = "<input>"

// ParseErr is an error tied to a position in the source text.
type ParseErr struct {
	Source string
	Pos    token.Pos
	Err    error
}

func (e *ParseErr) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Pos.Line, e.Pos.Col, e.Err)
}

func (e *ParseErr) Unwrap() error {
	return e.Err
}

// IsIncomplete reports whether err means the input ended too early, that is
// more lines could still make it valid.
func IsIncomplete(err error) bool {
	return errors.Is(err, ErrUnmatchedOpen) || errors.Is(err, ErrUnterminatedString)
}
