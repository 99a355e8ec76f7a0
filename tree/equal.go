package tree

import "slices"

// Equal reports whether a and b have the same keys, kinds, values and
// children, recursively.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.key != b.key || a.Kind() != b.Kind() {
		return false
	}
	switch av := a.val.(type) {
	case *scalarValue:
		return av.v == b.val.(*scalarValue).v
	case *listValue:
		return slices.Equal(av.vs, b.val.(*listValue).vs)
	case *subtreeValue:
		return slices.EqualFunc(av.children, b.children(), Equal)
	}
	return true
}
