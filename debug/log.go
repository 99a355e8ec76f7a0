package debug

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/signadot/dblisp/encode"
	"github.com/signadot/dblisp/token"
	"github.com/signadot/dblisp/tree"
)

// Node renders n for a log line.
func Node(n *tree.Node) string {
	if n == nil {
		return "<nil>"
	}
	buf := &strings.Builder{}
	if err := encode.Encode(n, buf); err != nil {
		return fmt.Sprintf("[raw *tree.Node] %v", n)
	}
	return buf.String()
}

// Logf writes to stderr.  Trees, tokens and decoded JSON values among args
// are rendered in a readable form first.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *tree.Node:
			args[i] = strings.TrimSuffix(Node(x), "\n")
		case []token.Token:
			parts := make([]string, len(x))
			for j := range x {
				parts[j] = x[j].Info()
			}
			args[i] = strings.Join(parts, " ")
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
