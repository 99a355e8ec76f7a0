package main

import (
	"bytes"
	"fmt"

	"github.com/signadot/dblisp/encode"
	"github.com/signadot/dblisp/libdiff"
	dbpatch "github.com/signadot/dblisp/patch"
	"github.com/signadot/dblisp/tree"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := getObjFile(cc, args[0], cfg.parseOpts(args[0])...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := getObjFile(cc, args[1], cfg.parseOpts(args[1])...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	differs, err := diffInputs(cfg, cc, args, a, b)
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffInputs(cfg *DiffConfig, cc *cli.Context, names []string, a, b *tree.Node) (bool, error) {
	if tree.Equal(a, b) {
		return false, nil
	}
	w := cc.Out
	switch {
	case cfg.Merge:
		d, err := dbpatch.CreateMergePatch(a, b)
		if err != nil {
			return true, err
		}
		_, err = fmt.Fprintf(w, "%s\n", d)
		return true, err
	case cfg.Text:
		ta, tb := &bytes.Buffer{}, &bytes.Buffer{}
		if err := encode.EncodeDoc(a, ta); err != nil {
			return true, err
		}
		if err := encode.EncodeDoc(b, tb); err != nil {
			return true, err
		}
		_, err := fmt.Fprintf(w, "--- %s\n+++ %s\n%s", names[0], names[1], libdiff.TextDiff(ta.String(), tb.String()))
		return true, err
	}
	colored := cfg.colored(w)
	for _, c := range libdiff.Diff(a, b) {
		ln := c.String()
		if colored {
			switch c.Op {
			case libdiff.OpAdd:
				ln = color.GreenString("%s", ln)
			case libdiff.OpRemove:
				ln = color.RedString("%s", ln)
			default:
				ln = color.YellowString("%s", ln)
			}
		}
		if _, err := fmt.Fprintln(w, ln); err != nil {
			return true, err
		}
	}
	return true, nil
}
