package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/signadot/dblisp/encode"
	"github.com/signadot/dblisp/eval"
	"github.com/signadot/dblisp/parse"

	"github.com/scott-cotton/cli"
)

func evalCmd(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Expand {
		return expandFiles(cfg, cc, inputs(args))
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: eval requires an expression", cli.ErrUsage)
	}
	src := args[0]
	for _, file := range inputs(args[1:]) {
		root, err := getObjFile(cc, file, cfg.parseOpts(file)...)
		if err != nil {
			return err
		}
		res, err := eval.Eval(root, src)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		if err := writeResult(cfg.MainConfig, cc.Out, res); err != nil {
			return err
		}
	}
	return nil
}

func expandFiles(cfg *EvalConfig, cc *cli.Context, files []string) error {
	for _, file := range files {
		root, err := getObjFile(cc, file, cfg.parseOpts(file)...)
		if err != nil {
			return err
		}
		res, err := eval.ExpandTree(root, root)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		if err := encode.EncodeDoc(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
	}
	return nil
}

// writeResult prints objects as documents and other results as they are,
// lists as json.
func writeResult(cfg *MainConfig, w io.Writer, res any) error {
	switch x := res.(type) {
	case map[string]any:
		n, err := parse.FromAny("", x)
		if err != nil {
			return err
		}
		return encode.EncodeDoc(n, w, cfg.encOpts(w)...)
	case []any:
		d, err := json.Marshal(x)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", d)
		return err
	case nil:
		_, err := fmt.Fprintln(w, "null")
		return err
	}
	_, err := fmt.Fprintln(w, res)
	return err
}
