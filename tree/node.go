package tree

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Node is a keyed node in a variant tree.  The zero value is an empty node
// with the empty key, which is what parsers use as a document root.
type Node struct {
	key string
	val value
}

// value is the state held by a non-empty node.  A nil value is EmptyKind.
type value interface {
	kind() Kind
	clone() value
}

type scalarValue struct{ v string }

type listValue struct{ vs []string }

// subtreeValue keeps children sorted by key.
type subtreeValue struct{ children []*Node }

func (*scalarValue) kind() Kind  { return ScalarKind }
func (*listValue) kind() Kind    { return ListKind }
func (*subtreeValue) kind() Kind { return SubtreeKind }

func (s *scalarValue) clone() value { return &scalarValue{v: s.v} }
func (l *listValue) clone() value   { return &listValue{vs: slices.Clone(l.vs)} }
func (s *subtreeValue) clone() value {
	res := &subtreeValue{children: make([]*Node, len(s.children))}
	for i, c := range s.children {
		res.children[i] = c.Clone()
	}
	return res
}

func (s *subtreeValue) search(key string) (int, bool) {
	return slices.BinarySearchFunc(s.children, key, func(c *Node, k string) int {
		return strings.Compare(c.key, k)
	})
}

func (s *subtreeValue) insert(c *Node) bool {
	i, found := s.search(c.key)
	if found {
		return false
	}
	s.children = slices.Insert(s.children, i, c)
	return true
}

// New creates an empty node with the given key.
func New(key string) *Node {
	return &Node{key: key}
}

// FromValues creates a node holding values: empty for none, a scalar for one
// and a list otherwise.
func FromValues(key string, values ...string) *Node {
	n := New(key)
	for _, v := range values {
		// cannot fail, n is never a subtree
		_ = n.PushValue(v)
	}
	return n
}

// FromChildren creates a subtree node owning children.
func FromChildren(key string, children ...*Node) (*Node, error) {
	n := New(key)
	st := &subtreeValue{}
	for i, c := range children {
		for _, o := range children[:i] {
			if o.contains(c) || c.contains(o) {
				return nil, fmt.Errorf("%w: %q is already owned under %q", ErrTypeConflict, c.key, key)
			}
		}
		if !st.insert(c) {
			return nil, fmt.Errorf("%w: %q under %q", ErrDuplicateKey, c.key, key)
		}
	}
	n.val = st
	return n, nil
}

func (n *Node) Key() string { return n.key }

func (n *Node) Kind() Kind {
	if n.val == nil {
		return EmptyKind
	}
	return n.val.kind()
}

func (n *Node) IsEmpty() bool   { return n.val == nil }
func (n *Node) IsScalar() bool  { return n.Kind() == ScalarKind }
func (n *Node) IsList() bool    { return n.Kind() == ListKind }
func (n *Node) IsSubtree() bool { return n.Kind() == SubtreeKind }

// IsValue reports whether n holds a scalar or a list.
func (n *Node) IsValue() bool {
	k := n.Kind()
	return k == ScalarKind || k == ListKind
}

// subtree returns the children container, promoting an empty node.
func (n *Node) subtree() (*subtreeValue, error) {
	switch v := n.val.(type) {
	case nil:
		st := &subtreeValue{}
		n.val = st
		return st, nil
	case *subtreeValue:
		return v, nil
	}
	return nil, fmt.Errorf("%w: cannot add children to %s node %q", ErrTypeConflict, n.Kind(), n.key)
}

func (n *Node) children() []*Node {
	st, ok := n.val.(*subtreeValue)
	if !ok {
		return nil
	}
	return st.children
}

// CreateChild inserts a new empty child under key and returns it.
func (n *Node) CreateChild(key string) (*Node, error) {
	if n.IsSubtree() {
		if _, ok := n.Find(key); ok {
			return nil, fmt.Errorf("%w: %q under %q", ErrDuplicateKey, key, n.key)
		}
	}
	st, err := n.subtree()
	if err != nil {
		return nil, err
	}
	c := New(key)
	st.insert(c)
	return c, nil
}

// Insert moves child into n under its own key.  n takes ownership of child.
func (n *Node) Insert(child *Node) error {
	if child == nil {
		return fmt.Errorf("%w: nil child", ErrTypeConflict)
	}
	if child.contains(n) {
		return fmt.Errorf("%w: %q cannot be inserted under itself", ErrTypeConflict, child.key)
	}
	if n.IsSubtree() {
		if _, ok := n.Find(child.key); ok {
			return fmt.Errorf("%w: %q under %q", ErrDuplicateKey, child.key, n.key)
		}
	}
	st, err := n.subtree()
	if err != nil {
		return err
	}
	st.insert(child)
	return nil
}

// contains reports whether x is n or one of its descendants.
func (n *Node) contains(x *Node) bool {
	if n == x {
		return true
	}
	for _, c := range n.children() {
		if c.contains(x) {
			return true
		}
	}
	return false
}

// InsertCopies inserts deep copies of trees.  Either all of them are
// inserted or, on error, none are.
func (n *Node) InsertCopies(trees ...*Node) error {
	if n.IsValue() {
		return fmt.Errorf("%w: cannot add children to %s node %q", ErrTypeConflict, n.Kind(), n.key)
	}
	seen := make(map[string]bool, len(trees))
	for _, t := range trees {
		_, found := n.Find(t.key)
		if found || seen[t.key] {
			return fmt.Errorf("%w: %q under %q", ErrDuplicateKey, t.key, n.key)
		}
		seen[t.key] = true
	}
	st, err := n.subtree()
	if err != nil {
		return err
	}
	for _, t := range trees {
		st.insert(t.Clone())
	}
	return nil
}

// Ensure walks keys from n, creating missing children on the way, and
// returns the last node.
func (n *Node) Ensure(keys ...string) (*Node, error) {
	cur := n
	for _, k := range keys {
		if c, ok := cur.Find(k); ok {
			cur = c
			continue
		}
		c, err := cur.CreateChild(k)
		if err != nil {
			return nil, err
		}
		cur = c
	}
	return cur, nil
}

// PushValue appends text to the values of n.  An empty node becomes a
// scalar, a scalar becomes a list with its old value first.
func (n *Node) PushValue(text string) error {
	switch v := n.val.(type) {
	case nil:
		n.val = &scalarValue{v: text}
	case *scalarValue:
		n.val = &listValue{vs: []string{v.v, text}}
	case *listValue:
		v.vs = append(v.vs, text)
	default:
		return fmt.Errorf("%w: cannot push value onto %s node %q", ErrTypeConflict, n.Kind(), n.key)
	}
	return nil
}

// Assign replaces whatever n holds with a list of values.
func (n *Node) Assign(values ...string) {
	n.val = &listValue{vs: slices.Clone(values)}
}

// Clear drops the value or children of n, leaving it empty.
func (n *Node) Clear() {
	n.val = nil
}

func (n *Node) Find(key string) (*Node, bool) {
	st, ok := n.val.(*subtreeValue)
	if !ok {
		return nil, false
	}
	i, found := st.search(key)
	if !found {
		return nil, false
	}
	return st.children[i], true
}

func (n *Node) At(key string) (*Node, error) {
	c, ok := n.Find(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q under %q", ErrKeyNotFound, key, n.key)
	}
	return c, nil
}

// Lookup follows path from n.
func (n *Node) Lookup(path ...string) (*Node, bool) {
	cur := n
	for _, k := range path {
		c, ok := cur.Find(k)
		if !ok {
			return nil, false
		}
		cur = c
	}
	return cur, true
}

// Erase removes the child under key and returns the number of removed
// children, 0 or 1.
func (n *Node) Erase(key string) int {
	st, ok := n.val.(*subtreeValue)
	if !ok {
		return 0
	}
	i, found := st.search(key)
	if !found {
		return 0
	}
	st.children = slices.Delete(st.children, i, i+1)
	return 1
}

// EraseRange removes all children with first <= key < last.
func (n *Node) EraseRange(first, last string) int {
	st, ok := n.val.(*subtreeValue)
	if !ok || first >= last {
		return 0
	}
	i, _ := st.search(first)
	j, _ := st.search(last)
	st.children = slices.Delete(st.children, i, j)
	return j - i
}

// Len returns the number of direct children of n.
func (n *Node) Len() int {
	return len(n.children())
}

// Count returns the number of nodes in the tree rooted at n, including n.
func (n *Node) Count() int {
	res := 1
	for _, c := range n.children() {
		res += c.Count()
	}
	return res
}

// Children returns the children of n in key order.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children())
}

func (n *Node) Keys() []string {
	cs := n.children()
	res := make([]string, len(cs))
	for i, c := range cs {
		res[i] = c.key
	}
	return res
}

// All iterates over the children of n in key order.
func (n *Node) All() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		for _, c := range n.children() {
			if !yield(c.key, c) {
				return
			}
		}
	}
}

// Values returns the values of a scalar or list node as a fresh slice.
func (n *Node) Values() []string {
	switch v := n.val.(type) {
	case *scalarValue:
		return []string{v.v}
	case *listValue:
		return slices.Clone(v.vs)
	}
	return nil
}

// MutableValues returns the backing list of n, promoting a scalar to a
// list first.  Element writes through the result are visible in n.
func (n *Node) MutableValues() ([]string, error) {
	switch v := n.val.(type) {
	case *scalarValue:
		l := &listValue{vs: []string{v.v}}
		n.val = l
		return l.vs, nil
	case *listValue:
		return v.vs, nil
	}
	return nil, fmt.Errorf("%w: %s node %q has no values", ErrTypeConflict, n.Kind(), n.key)
}

// Value returns the first value of n.
func (n *Node) Value() (Value, error) {
	return n.ValueAt(0)
}

func (n *Node) ValueAt(i int) (Value, error) {
	switch v := n.val.(type) {
	case *scalarValue:
		if i == 0 {
			return Value(v.v), nil
		}
	case *listValue:
		if i >= 0 && i < len(v.vs) {
			return Value(v.vs[i]), nil
		}
	default:
		return "", fmt.Errorf("%w: %s node %q", ErrNoValue, n.Kind(), n.key)
	}
	return "", fmt.Errorf("%w: index %d of %q", ErrNoValue, i, n.key)
}

// Clone returns a deep copy of n sharing nothing with it.
func (n *Node) Clone() *Node {
	res := &Node{key: n.key}
	if n.val != nil {
		res.val = n.val.clone()
	}
	return res
}

// Swap exchanges the contents, keys included, of n and o.
func (n *Node) Swap(o *Node) {
	*n, *o = *o, *n
}

// Walk visits n and its descendants in pre-order.  f returns whether to
// descend into the children of the node it was given.
func (n *Node) Walk(f func(path []string, n *Node) (bool, error)) error {
	return n.walk(nil, f)
}

func (n *Node) walk(path []string, f func([]string, *Node) (bool, error)) error {
	dive, err := f(path, n)
	if err != nil {
		return err
	}
	if !dive {
		return nil
	}
	for _, c := range n.children() {
		if err := c.walk(append(path[:len(path):len(path)], c.key), f); err != nil {
			return err
		}
	}
	return nil
}
