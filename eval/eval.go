package eval

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/signadot/dblisp/debug"
	"github.com/signadot/dblisp/encode"
	"github.com/signadot/dblisp/tree"
)

var (
	ErrEval    = errors.New("eval error")
	ErrNotBool = errors.New("expression is not boolean")
)

type Env map[string]any

// EnvOf returns the variables expressions over root see.
func EnvOf(root *tree.Node) Env {
	res := Env{}
	for k, c := range root.All() {
		res[k] = encode.ToAny(c)
	}
	return res
}

// Eval compiles src and runs it with root as environment.
func Eval(root *tree.Node, src string) (any, error) {
	prg, err := expr.Compile(src, exprOpts(root)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEval, err)
	}
	res, err := expr.Run(prg, EnvOf(root))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEval, err)
	}
	if debug.Eval() {
		debug.Logf("eval %q -> %v\n", src, res)
	}
	return res, nil
}

// Check evaluates the boolean expression src against root.
func Check(root *tree.Node, src string) (bool, error) {
	opts := append(exprOpts(root), expr.AsBool())
	prg, err := expr.Compile(src, opts...)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrEval, err)
	}
	res, err := expr.Run(prg, EnvOf(root))
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrEval, err)
	}
	b, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q gave %T", ErrNotBool, src, res)
	}
	return b, nil
}
