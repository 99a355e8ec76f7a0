package main

import (
	"fmt"
	"io"

	"github.com/signadot/dblisp/encode"
	"github.com/signadot/dblisp/tree"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a key path", cli.ErrUsage)
	}
	path := tree.ParsePath(args[0])
	for _, file := range inputs(args[1:]) {
		root, err := getObjFile(cc, file, cfg.parseOpts(file)...)
		if err != nil {
			return err
		}
		n, ok := root.Lookup(path...)
		if !ok {
			return fmt.Errorf("%s: %w: /%s", file, tree.ErrKeyNotFound, tree.FormatPath(path))
		}
		if err := getOut(cfg.MainConfig, cc.Out, root, n, len(path) == 0); err != nil {
			return err
		}
	}
	return nil
}

// getOut prints values one per line when n holds values and dblisp output
// is wanted, and the encoded node otherwise.
func getOut(cfg *MainConfig, w io.Writer, root, n *tree.Node, isRoot bool) error {
	if isRoot {
		return encode.EncodeDoc(root, w, cfg.encOpts(w)...)
	}
	if n.IsValue() && cfg.outFormat().IsDbLisp() {
		for _, v := range n.Values() {
			fmt.Fprintln(w, v)
		}
		return nil
	}
	return encode.Encode(n, w, cfg.encOpts(w)...)
}
