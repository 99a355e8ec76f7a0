// Package parse provides DbLisp parsing support.
package parse

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/signadot/dblisp/format"
	"github.com/signadot/dblisp/token"
	"github.com/signadot/dblisp/tree"
)

// Parse parses d into a new root node.  The root has the empty key and one
// child per top level form.
func Parse(d []byte, opts ...ParseOption) (*tree.Node, error) {
	root := tree.New("")
	if err := ParseInto(root, d, opts...); err != nil {
		return nil, err
	}
	return root, nil
}

func ParseString(s string, opts ...ParseOption) (*tree.Node, error) {
	return Parse([]byte(s), opts...)
}

// ParseLines parses DbLisp text already split into lines.
func ParseLines(lines []string, opts ...ParseOption) (*tree.Node, error) {
	root := tree.New("")
	if err := ParseLinesInto(root, lines, opts...); err != nil {
		return nil, err
	}
	return root, nil
}

func ParseReader(r io.Reader, opts ...ParseOption) (*tree.Node, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		pOpts := newParseOpts(opts)
		return nil, pOpts.report(fmt.Errorf("%s: %w: %w", pOpts.source, ErrFileUnreadable, err))
	}
	return Parse(d, opts...)
}

// ParseFile reads and parses path.  Errors are reported against path unless
// ParseSource says otherwise.
func ParseFile(path string, opts ...ParseOption) (*tree.Node, error) {
	opts = append([]ParseOption{ParseSource(path)}, opts...)
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, newParseOpts(opts).report(fmt.Errorf("%w: %w", ErrFileUnreadable, err))
	}
	return Parse(d, opts...)
}

// ParseInto parses d and adds the resulting top level nodes to root.  The
// new forms may reference top level nodes already in root.  Nothing in root
// changes unless the whole of d is parsed successfully.
func ParseInto(root *tree.Node, d []byte, opts ...ParseOption) error {
	pOpts := newParseOpts(opts)
	switch pOpts.format {
	case format.JSONFormat, format.YAMLFormat:
		return pOpts.report(mergeInto(root, func() (*tree.Node, error) {
			return fromDoc(d, pOpts.format)
		}))
	}
	return parseLinesInto(root, token.Lines(d), pOpts)
}

// ParseLinesInto is ParseInto for text already split into lines.
func ParseLinesInto(root *tree.Node, lines []string, opts ...ParseOption) error {
	return parseLinesInto(root, lines, newParseOpts(opts))
}

func parseLinesInto(root *tree.Node, lines []string, pOpts *parseOpts) error {
	if root.IsValue() {
		return pOpts.report(fmt.Errorf("%w: cannot parse into %s node %q", tree.ErrTypeConflict, root.Kind(), root.Key()))
	}
	toks, err := token.Tokenize(nil, lines)
	if err != nil {
		return pOpts.report(fromTokenizeErr(err, pOpts.source))
	}
	pOpts.tracef("%s: %d tokens\n", pOpts.source, len(toks))
	work := root.Clone()
	if err := newBuilder(work, pOpts).build(toks); err != nil {
		pOpts.tracef("%s: build aborted: %v\n", pOpts.source, err)
		return pOpts.report(err)
	}
	root.Swap(work)
	return nil
}

func mergeInto(root *tree.Node, mk func() (*tree.Node, error)) error {
	doc, err := mk()
	if err != nil {
		return err
	}
	return root.InsertCopies(doc.Children()...)
}

func fromTokenizeErr(err error, source string) error {
	var te *token.TokenizeErr
	if errors.As(err, &te) {
		return &ParseErr{Source: source, Pos: te.Pos, Err: te.Err}
	}
	return err
}
