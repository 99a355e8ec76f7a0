package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/signadot/dblisp/encode"
	"github.com/signadot/dblisp/libdiff"
	"github.com/signadot/dblisp/parse"

	"github.com/scott-cotton/cli"
)

func fmtFiles(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	files := inputs(args)
	if cfg.Write && len(args) == 0 {
		return fmt.Errorf("%w: -w requires files", cli.ErrUsage)
	}
	for _, file := range files {
		if err := fmtFile(cfg, cc, file); err != nil {
			return err
		}
	}
	return nil
}

func fmtFile(cfg *FmtConfig, cc *cli.Context, file string) error {
	in, err := readObjFile(cc, file)
	if err != nil {
		return err
	}
	opts := append(cfg.parseOpts(file), parse.ParseDbLisp())
	root, err := parse.Parse(in, opts...)
	if err != nil {
		return err
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.EncodeDoc(root, buf); err != nil {
		return err
	}
	out := buf.Bytes()
	changed := !bytes.Equal(in, out)
	if cfg.List && changed {
		fmt.Fprintln(cc.Out, file)
	}
	if cfg.Diff && changed {
		fmt.Fprintf(cc.Out, "--- %s\n+++ %s (formatted)\n", file, file)
		fmt.Fprint(cc.Out, libdiff.TextDiff(string(in), string(out)))
	}
	if cfg.Write {
		if !changed {
			return nil
		}
		fi, err := os.Stat(file)
		if err != nil {
			return err
		}
		return os.WriteFile(file, out, fi.Mode().Perm())
	}
	if !cfg.List && !cfg.Diff {
		_, err := cc.Out.Write(out)
		return err
	}
	return nil
}
