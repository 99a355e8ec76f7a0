package main

import (
	"fmt"

	"github.com/signadot/dblisp/encode"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	files := inputs(args)
	opts := cfg.encOpts(cc.Out)
	for i, file := range files {
		root, err := getObjFile(cc, file, cfg.parseOpts(file)...)
		if err != nil {
			return err
		}
		if len(files) > 1 && cfg.outFormat().IsDbLisp() {
			if i > 0 {
				fmt.Fprintln(cc.Out)
			}
			fmt.Fprintf(cc.Out, "; %s\n", file)
		}
		if err := encode.EncodeDoc(root, cc.Out, opts...); err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
	}
	return nil
}
