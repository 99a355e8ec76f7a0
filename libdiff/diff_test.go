package libdiff

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/dblisp/parse"
	"github.com/signadot/dblisp/tree"
)

func mustParse(t *testing.T, src string) *tree.Node {
	t.Helper()
	root, err := parse.ParseString(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return root
}

func TestDiff(t *testing.T) {
	from := mustParse(t, `
("a" "1")
("b" ("x" "1") ("y" "2"))
("c" "p" "q" "r")
("d")
`)
	to := mustParse(t, `
("a" "1")
("b" ("x" "9") ("z"))
("c" "p" "r" "s")
("e" "new")
`)
	changes := Diff(from, to)
	var got []string
	for _, c := range changes {
		got = append(got, c.String())
	}
	want := []string{
		`~ /b/x ("x" "1") -> ("x" "9")`,
		`- /b/y ("y" "2")`,
		`+ /b/z ("z")`,
		`~ /c [p -q r +s]`,
		`- /d ("d")`,
		`+ /e ("e" "new")`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDiffEqual(t *testing.T) {
	a := mustParse(t, `("a" ("b" "1" "2")) ("c")`)
	if changes := Diff(a, a.Clone()); len(changes) != 0 {
		t.Errorf("changes between equal trees: %v", changes)
	}
}

func TestDiffKindChange(t *testing.T) {
	from := mustParse(t, `("a" "1")`)
	to := mustParse(t, `("a" ("b"))`)
	changes := Diff(from, to)
	if len(changes) != 1 || changes[0].Op != OpReplace || changes[0].Values != nil {
		t.Fatalf("got %v", changes)
	}
	if diff := cmp.Diff([]string{"a"}, changes[0].Path); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestApply(t *testing.T) {
	from := mustParse(t, `("a" "1") ("b" ("x" "1") ("y" "2")) ("c" "p")`)
	to := mustParse(t, `("a" ("n")) ("b" ("x" "2") ("w")) ("d" "q")`)
	got, err := Apply(from, Diff(from, to))
	if err != nil {
		t.Fatal(err)
	}
	if !tree.Equal(to, got) {
		t.Errorf("apply did not reproduce target")
	}
	if y, ok := from.Lookup("b", "y"); !ok || y.Kind() != tree.ScalarKind {
		t.Errorf("apply modified its input")
	}
}

func TestApplyBadChange(t *testing.T) {
	from := mustParse(t, `("a" "1")`)
	_, err := Apply(from, []Change{{Path: []string{"missing"}, Op: OpRemove}})
	if !errors.Is(err, ErrBadChange) || !errors.Is(err, tree.ErrKeyNotFound) {
		t.Errorf("got %v", err)
	}
	_, err = Apply(from, []Change{{Op: OpAdd, To: tree.New("x")}})
	if !errors.Is(err, ErrBadChange) {
		t.Errorf("got %v", err)
	}
}

func TestTextDiff(t *testing.T) {
	if got := TextDiff("a\nb\n", "a\nb\n"); got != "" {
		t.Errorf("equal texts: %q", got)
	}
	got := TextDiff("a\nb\nc\n", "a\nB\nc\nd\n")
	want := " a\n-b\n+B\n c\n+d\n"
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}
