package parse

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/dblisp/token"
	"github.com/signadot/dblisp/tree"
)

func mustParse(t *testing.T, src string, opts ...ParseOption) *tree.Node {
	t.Helper()
	root, err := ParseString(src, opts...)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return root
}

func TestParseShapes(t *testing.T) {
	root := mustParse(t, `
; editor settings
("editor"
  ("fontSize" "16")
  ("rulers" "80" "120")
  ("theme"))
("empty")
`)
	if diff := cmp.Diff([]string{"editor", "empty"}, root.Keys()); diff != "" {
		t.Errorf("top keys (-want +got):\n%s", diff)
	}
	cases := []struct {
		path []string
		kind tree.Kind
		vals []string
	}{
		{[]string{"editor"}, tree.SubtreeKind, nil},
		{[]string{"editor", "fontSize"}, tree.ScalarKind, []string{"16"}},
		{[]string{"editor", "rulers"}, tree.ListKind, []string{"80", "120"}},
		{[]string{"editor", "theme"}, tree.EmptyKind, nil},
		{[]string{"empty"}, tree.EmptyKind, nil},
	}
	for _, c := range cases {
		n, ok := root.Lookup(c.path...)
		if !ok {
			t.Errorf("%v: missing", c.path)
			continue
		}
		if n.Kind() != c.kind {
			t.Errorf("%v: kind %s want %s", c.path, n.Kind(), c.kind)
		}
		if diff := cmp.Diff(c.vals, n.Values()); diff != "" {
			t.Errorf("%v: values (-want +got):\n%s", c.path, diff)
		}
	}
	if root.Count() != 6 {
		t.Errorf("count %d", root.Count())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
		pos  token.Pos
	}{
		{"ambiguous child after value", `("n" "v" ("c"))`, ErrAmbiguousDefinition, token.Pos{Line: 1, Col: 10}},
		{"ambiguous value after child", `("n" ("c") "v")`, ErrAmbiguousDefinition, token.Pos{Line: 1, Col: 12}},
		{"ambiguous ref after value", `("a" "1") ("n" "v" (a))`, ErrAmbiguousDefinition, token.Pos{Line: 1, Col: 20}},
		{"duplicate key", `("n" ("c") ("c"))`, ErrDuplicateKey, token.Pos{Line: 1, Col: 12}},
		{"duplicate top level", "(\"a\")\n(\"a\" \"1\")", ErrDuplicateKey, token.Pos{Line: 2, Col: 1}},
		{"duplicate ref", `("a" "1") ("b" ("a") (a))`, ErrDuplicateKey, token.Pos{Line: 1, Col: 22}},
		{"unmatched open", `("a" "1"`, ErrUnmatchedOpen, token.Pos{Line: 1, Col: 1}},
		{"unmatched open innermost", "(\"a\"\n  (\"b\" \"1\"", ErrUnmatchedOpen, token.Pos{Line: 2, Col: 3}},
		{"unmatched close", `("a" "1"))`, ErrUnmatchedClose, token.Pos{Line: 1, Col: 10}},
		{"empty parens", `("a" ())`, ErrEmptyParenList, token.Pos{Line: 1, Col: 6}},
		{"missing key", `(("a"))`, ErrMissingKeyAfterOpen, token.Pos{Line: 1, Col: 1}},
		{"missing key at end", `(`, ErrMissingKeyAfterOpen, token.Pos{Line: 1, Col: 1}},
		{"undefined variable", `("b" (a))`, ErrUndefinedVariable, token.Pos{Line: 1, Col: 6}},
		{"top level value", `"v"`, ErrInvalidTopLevelValue, token.Pos{Line: 1, Col: 1}},
		{"bare atom", `("a" v)`, ErrInvalidAtomPosition, token.Pos{Line: 1, Col: 6}},
		{"atom with values", `("b" (a "1"))`, ErrInvalidAtomPosition, token.Pos{Line: 1, Col: 7}},
		{"unterminated string", "(\"a\" \"x\n", ErrUnterminatedString, token.Pos{Line: 1, Col: 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.src)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v want %v", err, tt.want)
			}
			var pe *ParseErr
			if !errors.As(err, &pe) {
				t.Fatalf("not a ParseErr: %T", err)
			}
			if pe.Pos != tt.pos {
				t.Errorf("pos %s want %s", pe.Pos, tt.pos)
			}
			if pe.Source != defaultSource {
				t.Errorf("source %q", pe.Source)
			}
		})
	}
}

func TestParseErrFormat(t *testing.T) {
	_, err := ParseString("(\"a\"\n  \"1\" (\"b\"))", ParseSource("conf.dbl"))
	if err == nil {
		t.Fatal("expected error")
	}
	want := `conf.dbl:2:7: ambiguous definition: "a" holds values, cannot add child "b"`
	if err.Error() != want {
		t.Errorf("got %q\nwant %q", err.Error(), want)
	}
}

func TestVariableCopyIndependence(t *testing.T) {
	root := mustParse(t, `("a" "1") ("b" (a))`)
	ba, ok := root.Lookup("b", "a")
	if !ok {
		t.Fatal("b/a missing")
	}
	v, err := ba.Value()
	if err != nil || v != "1" {
		t.Fatalf("b/a = %q %v", v, err)
	}
	root.Erase("a")
	ba, ok = root.Lookup("b", "a")
	if !ok {
		t.Fatal("b/a lost after erasing a")
	}
	if diff := cmp.Diff([]string{"1"}, ba.Values()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestVariableDeepCopy(t *testing.T) {
	root := mustParse(t, `
("base" ("x" "1") ("y" "2" "3"))
("derived" (base) ("z"))
`)
	base, _ := root.Find("base")
	copied, _ := root.Lookup("derived", "base")
	if !tree.Equal(base, copied) {
		t.Fatal("reference not equal to its source")
	}
	vs, err := copied.Children()[1].MutableValues()
	if err != nil {
		t.Fatal(err)
	}
	vs[0] = "changed"
	y, _ := base.Find("y")
	if diff := cmp.Diff([]string{"2", "3"}, y.Values()); diff != "" {
		t.Errorf("source changed through copy (-want +got):\n%s", diff)
	}
}

func TestMultilineString(t *testing.T) {
	root := mustParse(t, "(\"msg\" \"first\nsecond\nthird\")")
	n, _ := root.Find("msg")
	v, err := n.Value()
	if err != nil {
		t.Fatal(err)
	}
	if v != "first\nsecond\nthird" {
		t.Errorf("got %q", v)
	}
}

func TestEscapes(t *testing.T) {
	root := mustParse(t, `("q" "say \"hi\"" "a\\")`)
	n, _ := root.Find("q")
	if diff := cmp.Diff([]string{`say "hi"`, `a\`}, n.Values()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestParseIntoAtomic(t *testing.T) {
	root := mustParse(t, `("a" "1")`)
	before := root.Clone()
	err := ParseInto(root, []byte(`("b" (a)) ("c" "x" ("d"))`))
	if !errors.Is(err, ErrAmbiguousDefinition) {
		t.Fatalf("got %v", err)
	}
	if !tree.Equal(before, root) {
		t.Errorf("root modified by failed parse")
	}
	if err := ParseInto(root, []byte(`("b" (a))`)); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, root.Keys()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if err := ParseInto(tree.FromValues("s", "v"), []byte(`("a")`)); !errors.Is(err, tree.ErrTypeConflict) {
		t.Errorf("parse into scalar: got %v", err)
	}
}

func TestParseIntoKeepsRootKey(t *testing.T) {
	root := tree.New("session")
	if err := ParseInto(root, []byte(`("a")`)); err != nil {
		t.Fatal(err)
	}
	if root.Key() != "session" {
		t.Errorf("key %q", root.Key())
	}
}

func TestDiagnostics(t *testing.T) {
	var got []string
	diag := func(s string) { got = append(got, s) }
	_, err := ParseString(`("a") ("a")`, ParseDiagnostics(diag), ParseSource("x.dbl"))
	if err == nil {
		t.Fatal("expected error")
	}
	if len(got) != 1 || got[0] != err.Error() {
		t.Errorf("diagnostics %q", got)
	}
	got = nil
	mustParse(t, `("a")`, ParseDiagnostics(diag))
	if len(got) != 0 {
		t.Errorf("diagnostics on success: %q", got)
	}
}

func TestTrace(t *testing.T) {
	var lines []string
	trace := func(f string, args ...any) {
		lines = append(lines, f)
	}
	mustParse(t, `("a" "1") ("b" (a))`, ParseTrace(trace))
	if len(lines) == 0 {
		t.Fatal("no trace output")
	}
	var opens int
	for _, l := range lines {
		if strings.HasPrefix(l, "open ") {
			opens++
		}
	}
	if opens != 2 {
		t.Errorf("%d opens traced", opens)
	}
}

func TestPositions(t *testing.T) {
	pos := map[*tree.Node]token.Pos{}
	root := mustParse(t, "(\"a\"\n  (\"b\" \"1\"))\n(\"c\" (a))", ParsePositions(pos))
	a, _ := root.Find("a")
	b, _ := a.Find("b")
	ca, _ := root.Lookup("c", "a")
	want := map[*tree.Node]token.Pos{
		a:  {Line: 1, Col: 1},
		b:  {Line: 2, Col: 3},
		ca: {Line: 3, Col: 6},
	}
	for n, p := range want {
		if pos[n] != p {
			t.Errorf("%q: pos %s want %s", n.Key(), pos[n], p)
		}
	}
	failed := map[*tree.Node]token.Pos{}
	if _, err := ParseString(`("a") ("b"`, ParsePositions(failed)); err == nil {
		t.Fatal("expected error")
	}
	if len(failed) != 0 {
		t.Errorf("positions recorded on failure: %d", len(failed))
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "conf.dbl")
	if err := os.WriteFile(p, []byte("(\"a\" \"1\")\n(\"a\")\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ParseFile(p)
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("got %v", err)
	}
	if !strings.HasPrefix(err.Error(), p+":2:1: ") {
		t.Errorf("message %q", err.Error())
	}
	_, err = ParseFile(filepath.Join(dir, "missing.dbl"))
	if !errors.Is(err, ErrFileUnreadable) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: got %v", err)
	}
}

func TestParseReader(t *testing.T) {
	root, err := ParseReader(strings.NewReader(`("a" "1")`))
	if err != nil {
		t.Fatal(err)
	}
	if root.Count() != 2 {
		t.Errorf("count %d", root.Count())
	}
}

func TestIsIncomplete(t *testing.T) {
	for src, want := range map[string]bool{
		`("a"`:       true,
		`("a" "x`:    true,
		`("a"))`:     false,
		`("a" ("b")`: true,
		`"x"`:        false,
	} {
		_, err := ParseString(src)
		if got := IsIncomplete(err); got != want {
			t.Errorf("%q: incomplete %v want %v (%v)", src, got, want, err)
		}
	}
}
