package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// TextDiff returns a line diff of a and b, each line prefixed with "-", "+"
// or a space.  It returns "" when a and b are equal.
func TextDiff(a, b string) string {
	if a == b {
		return ""
	}
	dmp := diffpatch.New()
	ar, br, lines := dmp.DiffLinesToRunes(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(ar, br, false), lines)
	buf := &strings.Builder{}
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "-"
		case diffpatch.DiffInsert:
			prefix = "+"
		}
		for _, ln := range strings.SplitAfter(d.Text, "\n") {
			if ln == "" {
				continue
			}
			buf.WriteString(prefix)
			buf.WriteString(strings.TrimSuffix(ln, "\n"))
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}
