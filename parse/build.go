package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/dblisp/token"
	"github.com/signadot/dblisp/tree"
)

type buildState int

const (
	stateFresh buildState = iota
	stateHasChildren
	stateHasValues
)

func (s buildState) String() string {
	switch s {
	case stateFresh:
		return "fresh"
	case stateHasChildren:
		return "has-children"
	default:
		return "has-values"
	}
}

type frame struct {
	node  *tree.Node
	state buildState
	open  token.Pos
}

// builder turns a token sequence into a tree using an explicit stack of
// frames.  The bottom frame is the root, which only receives children.
type builder struct {
	root      *tree.Node
	stack     []frame
	positions map[*tree.Node]token.Pos
	opts      *parseOpts
}

func newBuilder(root *tree.Node, opts *parseOpts) *builder {
	b := &builder{
		root:  root,
		stack: []frame{{node: root, state: stateHasChildren}},
		opts:  opts,
	}
	if opts.positions != nil {
		b.positions = map[*tree.Node]token.Pos{}
	}
	return b
}

func (b *builder) errAt(p token.Pos, err error) error {
	return &ParseErr{Source: b.opts.source, Pos: p, Err: err}
}

func (b *builder) top() *frame {
	return &b.stack[len(b.stack)-1]
}

func (b *builder) build(toks []token.Token) error {
	for i := 0; i < len(toks); i++ {
		t := &toks[i]
		switch t.Type {
		case token.TLParen:
			n, err := b.open(toks, i)
			if err != nil {
				return err
			}
			i += n
		case token.TRParen:
			if err := b.close(t); err != nil {
				return err
			}
		case token.TString:
			if err := b.value(t); err != nil {
				return err
			}
		case token.TAtom:
			return b.errAt(t.Pos, fmt.Errorf("%w: %q is only allowed as a variable reference (%s)", ErrInvalidAtomPosition, t.Text, t.Text))
		}
	}
	if len(b.stack) > 1 {
		f := b.top()
		return b.errAt(f.open, fmt.Errorf("%w: %q is never closed", ErrUnmatchedOpen, f.node.Key()))
	}
	for n, p := range b.positions {
		b.opts.positions[n] = p
	}
	return nil
}

// open handles the '(' at toks[i] and returns how many tokens after it were
// consumed.
func (b *builder) open(toks []token.Token, i int) (int, error) {
	lp := &toks[i]
	if i+1 >= len(toks) {
		return 0, b.errAt(lp.Pos, ErrMissingKeyAfterOpen)
	}
	next := &toks[i+1]
	switch next.Type {
	case token.TString:
		n := tree.New(next.String())
		b.stack = append(b.stack, frame{node: n, state: stateFresh, open: lp.Pos})
		b.opts.tracef("open %q at %s depth %d\n", n.Key(), lp.Pos, len(b.stack)-1)
		return 1, nil
	case token.TRParen:
		return 0, b.errAt(lp.Pos, ErrEmptyParenList)
	case token.TAtom:
		if i+2 >= len(toks) || toks[i+2].Type != token.TRParen {
			return 0, b.errAt(next.Pos, fmt.Errorf("%w: variable reference %q must be written (%s)", ErrInvalidAtomPosition, next.Text, next.Text))
		}
		if err := b.ref(lp.Pos, next.Text); err != nil {
			return 0, err
		}
		return 2, nil
	default:
		return 0, b.errAt(lp.Pos, ErrMissingKeyAfterOpen)
	}
}

// ref inserts a copy of the top level node name into the top frame.
func (b *builder) ref(p token.Pos, name string) error {
	f := b.top()
	if f.state == stateHasValues {
		return b.errAt(p, fmt.Errorf("%w: %q holds values, cannot reference %q", ErrAmbiguousDefinition, f.node.Key(), name))
	}
	src, ok := b.root.Find(name)
	if !ok {
		return b.errAt(p, fmt.Errorf("%w: %q", ErrUndefinedVariable, name))
	}
	cp := src.Clone()
	if err := f.node.Insert(cp); err != nil {
		return b.errAt(p, err)
	}
	f.state = stateHasChildren
	b.track(cp, p)
	b.opts.tracef("ref %q into %q at %s\n", name, f.node.Key(), p)
	return nil
}

func (b *builder) close(t *token.Token) error {
	if len(b.stack) == 1 {
		return b.errAt(t.Pos, ErrUnmatchedClose)
	}
	child := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	parent := b.top()
	if parent.state == stateHasValues {
		return b.errAt(child.open, fmt.Errorf("%w: %q holds values, cannot add child %q", ErrAmbiguousDefinition, parent.node.Key(), child.node.Key()))
	}
	if err := parent.node.Insert(child.node); err != nil {
		if errors.Is(err, tree.ErrDuplicateKey) {
			err = fmt.Errorf("%w: %q under %q", ErrDuplicateKey, child.node.Key(), parent.node.Key())
		}
		return b.errAt(child.open, err)
	}
	parent.state = stateHasChildren
	b.track(child.node, child.open)
	b.opts.tracef("close %q (%s) into %q\n", child.node.Key(), child.node.Kind(), parent.node.Key())
	return nil
}

func (b *builder) value(t *token.Token) error {
	if len(b.stack) == 1 {
		return b.errAt(t.Pos, fmt.Errorf("%w: %q", ErrInvalidTopLevelValue, t.String()))
	}
	f := b.top()
	if f.state == stateHasChildren {
		return b.errAt(t.Pos, fmt.Errorf("%w: %q has children, cannot add value %q", ErrAmbiguousDefinition, f.node.Key(), t.String()))
	}
	if err := f.node.PushValue(t.String()); err != nil {
		return b.errAt(t.Pos, err)
	}
	f.state = stateHasValues
	b.opts.tracef("value %q for %q\n", t.String(), f.node.Key())
	return nil
}

func (b *builder) track(n *tree.Node, p token.Pos) {
	if b.positions != nil {
		b.positions[n] = p
	}
}
