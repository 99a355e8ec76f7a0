package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

// count prints the number of nodes defined in each file, not counting the
// document root.
func count(cfg *CountConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Count.Parse(cc, args)
	if err != nil {
		return err
	}
	files := inputs(args)
	for _, file := range files {
		root, err := getObjFile(cc, file, cfg.parseOpts(file)...)
		if err != nil {
			return err
		}
		if len(files) == 1 {
			fmt.Fprintln(cc.Out, root.Count()-1)
			continue
		}
		fmt.Fprintf(cc.Out, "%s: %d\n", file, root.Count()-1)
	}
	return nil
}
