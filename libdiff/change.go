package libdiff

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/dblisp/encode"
	"github.com/signadot/dblisp/tree"
)

var ErrBadChange = errors.New("bad change")

type Op int

const (
	OpKeep Op = iota
	OpAdd
	OpRemove
	OpReplace
)

func (o Op) String() string {
	switch o {
	case OpKeep:
		return "keep"
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	case OpReplace:
		return "replace"
	default:
		return fmt.Sprintf("<op %d>", int(o))
	}
}

func (o Op) sign() string {
	switch o {
	case OpAdd:
		return "+"
	case OpRemove:
		return "-"
	case OpReplace:
		return "~"
	}
	return ""
}

// Change is one difference at Path.  From is nil for OpAdd and To is nil
// for OpRemove.
type Change struct {
	Path []string
	Op   Op
	From *tree.Node
	To   *tree.Node

	// Values aligns the values of From and To when both are lists.
	Values []ValueEdit
}

type ValueEdit struct {
	Op    Op
	Value string
}

func (c Change) String() string {
	p := "/" + tree.FormatPath(c.Path)
	switch c.Op {
	case OpAdd:
		return fmt.Sprintf("+ %s %s", p, oneLine(c.To))
	case OpRemove:
		return fmt.Sprintf("- %s %s", p, oneLine(c.From))
	}
	if len(c.Values) != 0 {
		parts := make([]string, len(c.Values))
		for i, e := range c.Values {
			parts[i] = e.Op.sign() + e.Value
		}
		return fmt.Sprintf("~ %s [%s]", p, strings.Join(parts, " "))
	}
	return fmt.Sprintf("~ %s %s -> %s", p, oneLine(c.From), oneLine(c.To))
}

func oneLine(n *tree.Node) string {
	return strings.Join(strings.Fields(encode.MustString(n)), " ")
}

// Apply returns a copy of from with changes applied in order.
func Apply(from *tree.Node, changes []Change) (*tree.Node, error) {
	res := from.Clone()
	for i := range changes {
		if err := apply(res, &changes[i]); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func apply(root *tree.Node, c *Change) error {
	if len(c.Path) == 0 {
		if c.Op != OpReplace || c.To == nil {
			return fmt.Errorf("%w: %s at document root", ErrBadChange, c.Op)
		}
		root.Swap(c.To.Clone())
		return nil
	}
	dir, key := c.Path[:len(c.Path)-1], c.Path[len(c.Path)-1]
	parent, ok := root.Lookup(dir...)
	if !ok {
		return fmt.Errorf("%w: %w: /%s", ErrBadChange, tree.ErrKeyNotFound, tree.FormatPath(dir))
	}
	switch c.Op {
	case OpAdd:
		if c.To == nil || c.To.Key() != key {
			return fmt.Errorf("%w: add at /%s without matching node", ErrBadChange, tree.FormatPath(c.Path))
		}
		return parent.Insert(c.To.Clone())
	case OpRemove:
		if parent.Erase(key) == 0 {
			return fmt.Errorf("%w: %w: /%s", ErrBadChange, tree.ErrKeyNotFound, tree.FormatPath(c.Path))
		}
		return nil
	case OpReplace:
		if c.To == nil {
			return fmt.Errorf("%w: replace at /%s without node", ErrBadChange, tree.FormatPath(c.Path))
		}
		n, err := parent.At(key)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBadChange, err)
		}
		n.Swap(c.To.Clone())
		return nil
	}
	return fmt.Errorf("%w: %s", ErrBadChange, c.Op)
}
