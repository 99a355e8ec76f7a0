package patch

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/dblisp/format"
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

func TestApply(t *testing.T) {
	root := mustParse(t, `("server" ("host" "a") ("ports" "80" "443")) ("old" "x")`)
	before := root.Clone()
	got, err := Apply(root, []byte(`[
  {"op": "replace", "path": "/server/host", "value": "b"},
  {"op": "add", "path": "/server/ports/-", "value": 8080},
  {"op": "remove", "path": "/old"},
  {"op": "add", "path": "/new", "value": {"on": true, "off": null}}
]`))
	if err != nil {
		t.Fatal(err)
	}
	want := mustParse(t, `
("server" ("host" "b") ("ports" "80" "443" "8080"))
("new" ("on" "true") ("off"))
`)
	if !tree.Equal(want, got) {
		t.Errorf("got keys %v", got.Keys())
	}
	if !tree.Equal(before, root) {
		t.Errorf("input modified")
	}
}

func TestApplyFailureLeavesInput(t *testing.T) {
	root := mustParse(t, `("a" "1")`)
	before := root.Clone()
	_, err := Apply(root, []byte(`[{"op": "test", "path": "/a", "value": "2"}]`))
	if !errors.Is(err, ErrPatch) {
		t.Fatalf("got %v", err)
	}
	if !tree.Equal(before, root) {
		t.Errorf("input modified")
	}
	if _, err := unmarshal("", []byte(`[1]`)); !errors.Is(err, parse.ErrUnsupported) {
		t.Errorf("array document: got %v", err)
	}
}

func TestDecodeYAML(t *testing.T) {
	p, err := Decode([]byte(`
- op: add
  path: /b
  value: two
`), format.YAMLFormat)
	if err != nil {
		t.Fatal(err)
	}
	if p.Len() != 1 {
		t.Fatalf("len %d", p.Len())
	}
	got, err := p.Apply(mustParse(t, `("a" "1")`))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, got.Keys()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMergePatch(t *testing.T) {
	root := mustParse(t, `("a" "1") ("b" ("c" "2") ("d" "3"))`)
	got, err := MergePatch(root, []byte(`{"a": null, "b": {"c": "9"}}`), format.JSONFormat)
	if err != nil {
		t.Fatal(err)
	}
	want := mustParse(t, `("b" ("c" "9") ("d" "3"))`)
	if !tree.Equal(want, got) {
		t.Errorf("got keys %v", got.Keys())
	}
}

func TestCreateMergePatch(t *testing.T) {
	from := mustParse(t, `("a" "1") ("b" ("c" "2"))`)
	to := mustParse(t, `("b" ("c" "3"))`)
	d, err := CreateMergePatch(from, to)
	if err != nil {
		t.Fatal(err)
	}
	got, err := MergePatch(from, d, format.JSONFormat)
	if err != nil {
		t.Fatal(err)
	}
	if !tree.Equal(to, got) {
		t.Errorf("merge patch %s did not reproduce target", d)
	}
}
