package eval

import (
	"fmt"
	"os"

	"github.com/expr-lang/expr"

	"github.com/signadot/dblisp/encode"
	"github.com/signadot/dblisp/tree"
)

func exprOpts(root *tree.Node) []expr.Option {
	lookup := func(p string) (*tree.Node, error) {
		path := tree.ParsePath(p)
		n, ok := root.Lookup(path...)
		if !ok {
			return nil, fmt.Errorf("%w: /%s", tree.ErrKeyNotFound, tree.FormatPath(path))
		}
		return n, nil
	}
	return []expr.Option{
		expr.Function("get", func(params ...any) (any, error) {
			n, err := lookup(params[0].(string))
			if err != nil {
				return nil, err
			}
			return encode.ToAny(n), nil
		},
			new(func(string) any)),
		expr.Function("has", func(params ...any) (any, error) {
			_, ok := root.Lookup(tree.ParsePath(params[0].(string))...)
			return ok, nil
		},
			new(func(string) bool)),
		expr.Function("values", func(params ...any) (any, error) {
			n, err := lookup(params[0].(string))
			if err != nil {
				return nil, err
			}
			vs := n.Values()
			res := make([]any, len(vs))
			for i, v := range vs {
				res[i] = v
			}
			return res, nil
		},
			new(func(string) []any)),
		expr.Function("count", func(params ...any) (any, error) {
			n, err := lookup(params[0].(string))
			if err != nil {
				return nil, err
			}
			return n.Count(), nil
		},
			new(func(string) int)),
		expr.Function("keys", func(params ...any) (any, error) {
			n, err := lookup(params[0].(string))
			if err != nil {
				return nil, err
			}
			ks := n.Keys()
			res := make([]any, len(ks))
			for i, k := range ks {
				res[i] = k
			}
			return res, nil
		},
			new(func(string) []any)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}
