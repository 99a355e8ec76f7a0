package parse

import (
	"github.com/signadot/dblisp/format"
	"github.com/signadot/dblisp/token"
	"github.com/signadot/dblisp/tree"
)

type parseOpts struct {
	format    format.Format
	source    string
	diag      func(string)
	trace     func(string, ...any)
	positions map[*tree.Node]token.Pos
}

type ParseOption func(*parseOpts)

func ParseDbLisp() ParseOption {
	return ParseFormat(format.DbLispFormat)
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// ParseSource names the input in error messages.
func ParseSource(name string) ParseOption {
	return func(o *parseOpts) { o.source = name }
}

// ParseDiagnostics sets a sink receiving the formatted message of the first
// error encountered.
func ParseDiagnostics(f func(string)) ParseOption {
	return func(o *parseOpts) { o.diag = f }
}

// ParseTrace sets a sink receiving a line for every tree construction step.
func ParseTrace(f func(string, ...any)) ParseOption {
	return func(o *parseOpts) { o.trace = f }
}

// ParsePositions records the position of the opening parenthesis of every
// node built from DbLisp text.  Nothing is recorded when parsing fails.
func ParsePositions(m map[*tree.Node]token.Pos) ParseOption {
	return func(o *parseOpts) { o.positions = m }
}

func newParseOpts(opts []ParseOption) *parseOpts {
	pOpts := &parseOpts{format: format.DbLispFormat, source: defaultSource}
	for _, f := range opts {
		f(pOpts)
	}
	return pOpts
}

func (o *parseOpts) tracef(msg string, args ...any) {
	if o.trace != nil {
		o.trace(msg, args...)
	}
}

func (o *parseOpts) report(err error) error {
	if err != nil && o.diag != nil {
		o.diag(err.Error())
	}
	return err
}
