package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/signadot/dblisp/eval"
	"github.com/signadot/dblisp/parse"
	"github.com/signadot/dblisp/token"
	"github.com/signadot/dblisp/tree"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/scott-cotton/cli"
)

const (
	historyFile = ".dblisp_history"
	promptMain  = "dblisp> "
	promptCont  = "   ...> "
)

func repl(cfg *ReplConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Repl.Parse(cc, args)
	if err != nil {
		return err
	}
	session := tree.New("")
	for _, file := range args {
		d, err := readObjFile(cc, file)
		if err != nil {
			return err
		}
		if err := parse.ParseInto(session, d, cfg.parseOpts(file)...); err != nil {
			return err
		}
	}

	histPath := cfg.History
	if histPath == "" {
		home, _ := os.UserHomeDir()
		histPath = filepath.Join(home, historyFile)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	rs := &replState{cfg: cfg, w: cc.Out, session: session}
	for entry := 1; ; entry++ {
		src, ok := readUntilBalanced(ln, promptMain, promptCont)
		if !ok {
			fmt.Fprintln(cc.Out)
			return nil
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if strings.HasPrefix(trimmed, ":") {
			if rs.command(trimmed) {
				return nil
			}
			continue
		}
		opts := append(cfg.parseOpts("-"), parse.ParseSource(fmt.Sprintf("<entry %d>", entry)))
		if err := parse.ParseInto(rs.session, []byte(src), opts...); err != nil {
			rs.errorf("%v", err)
		}
	}
}

// readUntilBalanced reads lines until the input closes every parenthesis
// and string it opens.  It returns false at end of input.
func readUntilBalanced(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() != 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}
		if b.Len() != 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !incomplete(src) {
			return src, true
		}
	}
}

// incomplete reports whether src leaves a string or a parenthesis open.
func incomplete(src string) bool {
	toks, err := token.TokenizeBytes(nil, []byte(src))
	if err != nil {
		return errors.Is(err, token.ErrUnterminatedString)
	}
	depth := 0
	for i := range toks {
		switch toks[i].Type {
		case token.TLParen:
			depth++
		case token.TRParen:
			depth--
		}
	}
	return depth > 0
}

type replState struct {
	cfg     *ReplConfig
	w       io.Writer
	session *tree.Node
}

func (rs *replState) errorf(msg string, args ...any) {
	fmt.Fprintln(os.Stderr, color.RedString(msg, args...))
}

// command runs a :command and reports whether the session should end.
func (rs *replState) command(line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case ":quit", ":q":
		return true
	case ":show", ":get":
		path := tree.ParsePath(arg)
		n, ok := rs.session.Lookup(path...)
		if !ok {
			rs.errorf("%v: /%s", tree.ErrKeyNotFound, tree.FormatPath(path))
			return false
		}
		if err := getOut(rs.cfg.MainConfig, rs.w, rs.session, n, len(path) == 0); err != nil {
			rs.errorf("%v", err)
		}
	case ":count":
		fmt.Fprintln(rs.w, rs.session.Count()-1)
	case ":eval":
		res, err := eval.Eval(rs.session, arg)
		if err != nil {
			rs.errorf("%v", err)
			return false
		}
		if err := writeResult(rs.cfg.MainConfig, rs.w, res); err != nil {
			rs.errorf("%v", err)
		}
	case ":reset":
		rs.session = tree.New("")
	case ":help":
		fmt.Fprintln(rs.w, ":show [path] :get path :count :eval expr :reset :quit")
	default:
		rs.errorf("unknown command %s, try :help", name)
	}
	return false
}
