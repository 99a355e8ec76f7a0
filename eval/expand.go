package eval

import (
	"fmt"
	"strings"

	"github.com/signadot/dblisp/tree"
)

// Expand replaces every $[expr] in v by the result of evaluating expr
// against root.  Inside the brackets a backslash escapes the next
// character, so \] is a literal ].
func Expand(root *tree.Node, v string) (string, error) {
	if !strings.Contains(v, "$[") {
		return v, nil
	}
	var (
		out     strings.Builder
		exprBuf strings.Builder
		inExpr  bool
	)
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case !inExpr && c == '$' && i+1 < len(v) && v[i+1] == '[':
			inExpr = true
			exprBuf.Reset()
			i++
		case !inExpr:
			out.WriteByte(c)
		case c == '\\' && i+1 < len(v):
			exprBuf.WriteByte(v[i+1])
			i++
		case c == ']':
			src := strings.TrimSpace(exprBuf.String())
			res, err := Eval(root, src)
			if err != nil {
				return "", fmt.Errorf("error evaluating %q: %w", src, err)
			}
			fmt.Fprint(&out, res)
			inExpr = false
		default:
			exprBuf.WriteByte(c)
		}
	}
	if inExpr {
		return "", fmt.Errorf("%w: unterminated $[ in %q", ErrEval, v)
	}
	return out.String(), nil
}

// ExpandTree returns a copy of n with Expand applied to every value.
// Expressions see root, not the copy.
func ExpandTree(root, n *tree.Node) (*tree.Node, error) {
	res := n.Clone()
	err := res.Walk(func(path []string, c *tree.Node) (bool, error) {
		if !c.IsValue() {
			return true, nil
		}
		vs := c.Values()
		for i := range vs {
			x, err := Expand(root, vs[i])
			if err != nil {
				return false, fmt.Errorf("/%s: %w", tree.FormatPath(path), err)
			}
			vs[i] = x
		}
		if c.IsScalar() {
			c.Clear()
			return false, c.PushValue(vs[0])
		}
		c.Assign(vs...)
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
