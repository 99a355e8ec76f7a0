package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/dblisp/tree"
)

func MustString(node *tree.Node, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}

// MustDocString renders every top level node of root.
func MustDocString(root *tree.Node, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := EncodeDoc(root, buf, opts...); err != nil {
		panic(err)
	}
	return buf.String()
}
