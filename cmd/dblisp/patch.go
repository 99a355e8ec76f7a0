package main

import (
	"fmt"
	"path/filepath"

	"github.com/signadot/dblisp/encode"
	"github.com/signadot/dblisp/format"
	dbpatch "github.com/signadot/dblisp/patch"
	"github.com/signadot/dblisp/tree"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 && len(args) != 2 {
		return fmt.Errorf("%w: patch requires a patch file and optionally a file to which to apply it", cli.ErrUsage)
	}
	pd, err := readObjFile(cc, args[0])
	if err != nil {
		return err
	}
	pf := format.FromSuffix(filepath.Ext(args[0]))
	if pf.IsDbLisp() {
		pf = format.JSONFormat
	}
	target := "-"
	if len(args) == 2 {
		target = args[1]
	}
	if target == "-" && args[0] == "-" {
		return fmt.Errorf("%w: patch and target cannot both be stdin", cli.ErrUsage)
	}
	doc, err := getObjFile(cc, target, cfg.parseOpts(target)...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", target, err)
	}
	var res *tree.Node
	if cfg.Merge {
		res, err = dbpatch.MergePatch(doc, pd, pf)
	} else {
		var p *dbpatch.Patch
		p, err = dbpatch.Decode(pd, pf)
		if err == nil {
			res, err = p.Apply(doc)
		}
	}
	if err != nil {
		return fmt.Errorf("error patching %s: %w", target, err)
	}
	if err := encode.EncodeDoc(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}
