package tree

type Kind int

const (
	EmptyKind Kind = iota
	ScalarKind
	ListKind
	SubtreeKind
)

func (k Kind) String() string {
	switch k {
	case EmptyKind:
		return "empty"
	case ScalarKind:
		return "scalar"
	case ListKind:
		return "list"
	case SubtreeKind:
		return "subtree"
	default:
		return "<invalid kind>"
	}
}
