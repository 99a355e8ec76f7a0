package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/dblisp/debug"
	"github.com/signadot/dblisp/parse"
	"github.com/signadot/dblisp/token"
	"github.com/signadot/dblisp/tree"

	"github.com/scott-cotton/cli"
)

func readObjFile(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", parse.ErrFileUnreadable, err)
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

func getObjFile(cc *cli.Context, path string, opts ...parse.ParseOption) (*tree.Node, error) {
	d, err := readObjFile(cc, path)
	if err != nil {
		return nil, err
	}
	if debug.Tokens() {
		if toks, err := token.TokenizeBytes(nil, d); err == nil {
			debug.Logf("%s: %v\n", path, toks)
		}
	}
	return parse.Parse(d, opts...)
}

// inputs returns args, or "-" for stdin when there are none.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
