package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/signadot/dblisp/debug"
	"github.com/signadot/dblisp/encode"
	"github.com/signadot/dblisp/format"
	"github.com/signadot/dblisp/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode with color'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	Indent int `cli:"name=indent desc='indentation of json and yaml output (default 2)'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) flagFormat() (format.Format, bool) {
	switch {
	case cfg.Y:
		return format.YAMLFormat, true
	case cfg.J:
		return format.JSONFormat, true
	}
	return format.DbLispFormat, false
}

// parseOpts returns the options for reading path.  Without -I, -j or -y the
// format follows the file suffix.
func (cfg *MainConfig) parseOpts(path string) []parse.ParseOption {
	fmat, set := cfg.flagFormat()
	if cfg.InFormat != nil {
		fmat, set = *cfg.InFormat, true
	}
	if !set && path != "-" {
		fmat = format.FromSuffix(filepath.Ext(path))
	}
	source := path
	if path == "-" {
		source = "<stdin>"
	}
	res := []parse.ParseOption{
		parse.ParseFormat(fmat),
		parse.ParseSource(source),
	}
	if debug.Build() {
		res = append(res, parse.ParseTrace(debug.Logf))
	}
	return res
}

func (cfg *MainConfig) outFormat() format.Format {
	fmat, _ := cfg.flagFormat()
	if cfg.OutFormat != nil {
		fmat = *cfg.OutFormat
	}
	return fmat
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	fmat := cfg.outFormat()
	res := []encode.EncodeOption{
		encode.EncodeFormat(fmat),
	}
	if cfg.Indent > 0 {
		res = append(res, encode.EncodeIndent(cfg.Indent))
	}
	if fmat.IsDbLisp() && cfg.colored(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// colored reports whether output to w should be colored: when -color is
// given, or else when w is a terminal and -color was not set to false.
func (cfg *MainConfig) colored(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type FmtConfig struct {
	*MainConfig

	Write bool `cli:"name=w desc='write result to the source file instead of stdout'"`
	List  bool `cli:"name=l desc='list files whose formatting differs'"`
	Diff  bool `cli:"name=d desc='display diffs instead of rewriting files'"`

	Fmt *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type CountConfig struct {
	*MainConfig

	Count *cli.Command
}

type CheckConfig struct {
	*MainConfig

	Expr  string `cli:"name=e desc='boolean expression each file must satisfy'"`
	Quiet bool   `cli:"name=q desc='only report failures'"`

	Check *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Text  bool `cli:"name=t desc='show a line diff of the formatted documents'"`
	Merge bool `cli:"name=m desc='output a json merge patch from a to b'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig

	Merge bool `cli:"name=m desc='patch is a json merge patch'"`

	Patch *cli.Command
}

type EvalConfig struct {
	*MainConfig

	Expand bool `cli:"name=x desc='expand $[expr] in the values of files instead'"`

	Eval *cli.Command
}

type ReplConfig struct {
	*MainConfig

	History string `cli:"name=history desc='history file'"`

	Repl *cli.Command
}
