package main

import (
	"fmt"

	"github.com/signadot/dblisp/eval"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	failed := 0
	for _, file := range inputs(args) {
		msg := checkFile(cfg, cc, file)
		if msg != "" {
			failed++
			fmt.Fprintln(cc.Out, msg)
			continue
		}
		if !cfg.Quiet {
			fmt.Fprintf(cc.Out, "%s: ok\n", file)
		}
	}
	if failed != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// checkFile returns a diagnostic for file, or "" when it passes.
func checkFile(cfg *CheckConfig, cc *cli.Context, file string) string {
	root, err := getObjFile(cc, file, cfg.parseOpts(file)...)
	if err != nil {
		return err.Error()
	}
	if cfg.Expr == "" {
		return ""
	}
	ok, err := eval.Check(root, cfg.Expr)
	if err != nil {
		return fmt.Sprintf("%s: %v", file, err)
	}
	if !ok {
		return fmt.Sprintf("%s: check failed: %s", file, cfg.Expr)
	}
	return ""
}
