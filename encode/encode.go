package encode

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/signadot/dblisp/format"
	"github.com/signadot/dblisp/token"
	"github.com/signadot/dblisp/tree"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	indent int
	format format.Format

	Color func(ColorAttr, string) string
}

func newEncState(opts []EncodeOption) *EncState {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// Encode writes node followed by a newline.
func Encode(node *tree.Node, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	switch es.format {
	case format.JSONFormat, format.YAMLFormat:
		return encodeAny(w, es, map[string]any{node.Key(): ToAny(node)}, func() any {
			return yamlDoc([]*tree.Node{node})
		})
	case format.DbLispFormat:
	default:
		return fmt.Errorf("%w: unknown format %s", ErrEncoding, es.format)
	}
	enc := &encoder{w: w, es: es}
	enc.node(node, 0)
	enc.raw("\n")
	return enc.err
}

// EncodeDoc writes every child of root as a top level form, one after the
// other, each starting in the first column.
func EncodeDoc(root *tree.Node, w io.Writer, opts ...EncodeOption) error {
	if root.IsValue() {
		return fmt.Errorf("%w: document root %q holds values", ErrEncoding, root.Key())
	}
	es := newEncState(opts)
	switch es.format {
	case format.JSONFormat, format.YAMLFormat:
		doc := ToAny(root)
		if doc == nil {
			doc = map[string]any{}
		}
		return encodeAny(w, es, doc, func() any {
			return yamlDoc(root.Children())
		})
	case format.DbLispFormat:
	default:
		return fmt.Errorf("%w: unknown format %s", ErrEncoding, es.format)
	}
	enc := &encoder{w: w, es: es}
	for _, c := range root.Children() {
		enc.node(c, 0)
		enc.raw("\n")
	}
	return enc.err
}

type encoder struct {
	w   io.Writer
	es  *EncState
	err error
}

func (e *encoder) raw(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

func (e *encoder) put(a ColorAttr, s string) {
	if e.es.Color != nil {
		s = e.es.Color(a, s)
	}
	e.raw(s)
}

// node writes n starting at column col and reports whether the output
// spans more than one line.  Children are indented to col plus the width of
// "(" and the quoted key and a space.
func (e *encoder) node(n *tree.Node, col int) bool {
	qk := token.Quote(n.Key())
	e.put(ParenColor, "(")
	e.put(KeyColor, qk)
	multi := false
	switch n.Kind() {
	case tree.ScalarKind, tree.ListKind:
		for _, v := range n.Values() {
			e.raw(" ")
			if strings.Contains(v, "\n") {
				e.put(MultiLineValueColor, token.Quote(v))
			} else {
				e.put(ValueColor, token.Quote(v))
			}
		}
	case tree.SubtreeKind:
		e.raw(" ")
		cs := n.Children()
		indent := col + runewidth.StringWidth(qk) + 2
		switch len(cs) {
		case 0:
		case 1:
			if e.node(cs[0], indent) {
				e.raw("\n" + strings.Repeat(" ", col))
				multi = true
			}
		default:
			e.node(cs[0], indent)
			for _, c := range cs[1:] {
				e.raw("\n" + strings.Repeat(" ", indent))
				e.node(c, indent)
			}
			e.raw("\n" + strings.Repeat(" ", col))
			multi = true
		}
	}
	e.put(ParenColor, ")")
	return multi
}
