package debug

import (
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-json"
)

type debug struct {
	Tokens bool
	Build  bool
	Diff   bool
	Patch  bool
	Eval   bool
	LSP    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Tokens = boolEnv("DBLISP_DEBUG_TOKENS")
	d.Build = boolEnv("DBLISP_DEBUG_BUILD")
	d.Diff = boolEnv("DBLISP_DEBUG_DIFF")
	d.Patch = boolEnv("DBLISP_DEBUG_PATCH")
	d.Eval = boolEnv("DBLISP_DEBUG_EVAL")
	d.LSP = boolEnv("DBLISP_DEBUG_LSP")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Tokens() bool {
	return d.Tokens
}
func Build() bool {
	return d.Build
}
func Diff() bool {
	return d.Diff
}
func Patch() bool {
	return d.Patch
}
func Eval() bool {
	return d.Eval
}
func LSP() bool {
	return d.LSP
}

// LogAny writes v to stderr as a line of JSON.
func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(append(d, '\n'))
}
