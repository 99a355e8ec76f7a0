package main

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.lsp.dev/protocol"

	"github.com/signadot/dblisp/token"
)

func TestValidateDocument(t *testing.T) {
	doc := newDocument("file:///a.dbl", "(\"a\" \"1\")\n(\"b\"\n  \"v\" (\"c\"))\n", 1, nil)
	diags := validateDocument(doc)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics", len(diags))
	}
	want := protocol.Range{
		Start: protocol.Position{Line: 2, Character: 6},
		End:   protocol.Position{Line: 2, Character: 7},
	}
	if diff := cmp.Diff(want, diags[0].Range); diff != "" {
		t.Errorf("range (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(diags[0].Message, "ambiguous definition") {
		t.Errorf("message %q", diags[0].Message)
	}
	if doc.root != nil {
		t.Error("root set on failed parse")
	}

	ok := newDocument("file:///a.dbl", `("a" "1")`, 2, doc)
	if diags := validateDocument(ok); len(diags) != 0 {
		t.Errorf("unexpected diagnostics %v", diags)
	}
}

func TestLastGoodSurvivesEdits(t *testing.T) {
	good := newDocument("u", `("base" "1")`, 1, nil)
	broken := newDocument("u", "(\"base\" \"1\")\n(\"x\" (", 2, good)
	if broken.root != nil {
		t.Fatal("broken document parsed")
	}
	if broken.lastGood != good.root {
		t.Error("last good root not carried over")
	}
}

func TestFormatEdits(t *testing.T) {
	doc := newDocument("u", "(\"b\"   \"2\")\n(\"a\" (\"x\" \"1\") (\"y\"))", 1, nil)
	edits := formatEdits(doc)
	if len(edits) != 1 {
		t.Fatalf("got %d edits", len(edits))
	}
	want := "(\"a\" (\"x\" \"1\")\n     (\"y\")\n)\n(\"b\" \"2\")\n"
	if edits[0].NewText != want {
		t.Errorf("got %q\nwant %q", edits[0].NewText, want)
	}
	if edits[0].Range.End.Line != 2 {
		t.Errorf("end line %d", edits[0].Range.End.Line)
	}
	canon := newDocument("u", want, 2, nil)
	if edits := formatEdits(canon); edits == nil || len(edits) != 0 {
		t.Errorf("canonical document: %v", edits)
	}
	if edits := formatEdits(newDocument("u", `("a"`, 3, nil)); edits != nil {
		t.Errorf("broken document: %v", edits)
	}
}

func TestHover(t *testing.T) {
	doc := newDocument("u", "(\"a\"\n  (\"b\" \"1\" \"2\") (\"c\" \"x\"))", 1, nil)
	path, n := findNodeAt(doc.root, doc.positions, token.Pos{Line: 2, Col: 10})
	if n == nil {
		t.Fatal("no node")
	}
	if diff := cmp.Diff([]string{"a", "b"}, path); diff != "" {
		t.Errorf("path (-want +got):\n%s", diff)
	}
	got := buildHoverText(path, n)
	want := "**Path:** `a/b`\n\n**Kind:** list\n\n**Values (2):** `1`, `2`"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
	_, n = findNodeAt(doc.root, doc.positions, token.Pos{Line: 2, Col: 20})
	if n == nil || n.Key() != "c" {
		t.Errorf("got %v", n)
	}
	if _, n := findNodeAt(doc.root, doc.positions, token.Pos{Line: 2, Col: 1}); n != nil {
		t.Errorf("node before any paren: %q", n.Key())
	}
}

func TestCompletions(t *testing.T) {
	prev := newDocument("u", "(\"base\" \"1\")\n(\"two words\")", 1, nil)
	doc := newDocument("u", "(\"base\" \"1\")\n(\"two words\")\n(\"d\" (", 2, prev)
	items := completions(doc, 2, 6)
	var labels []string
	for _, it := range items {
		labels = append(labels, it.Label)
	}
	if diff := cmp.Diff([]string{"base"}, labels); diff != "" {
		t.Errorf("labels (-want +got):\n%s", diff)
	}
	if items[0].InsertText != "base)" {
		t.Errorf("insert %q", items[0].InsertText)
	}
	if got := completions(doc, 2, 4); len(got) != 0 {
		t.Errorf("completions outside '(': %v", got)
	}
}

func TestSemanticTokens(t *testing.T) {
	doc := newDocument("u", "; conf\n(\"a\" \"x\ny\" (b))", 1, nil)
	type tok struct {
		line, char, length uint32
		typ                protocol.SemanticTokenTypes
	}
	var got []tok
	for _, st := range collectSemanticTokens(doc) {
		got = append(got, tok{st.line, st.char, st.length, st.typ})
	}
	want := []tok{
		{0, 0, 6, protocol.SemanticTokenComment},
		{1, 0, 1, protocol.SemanticTokenOperator},
		{1, 1, 3, protocol.SemanticTokenProperty},
		{1, 5, 2, protocol.SemanticTokenString},
		{2, 0, 2, protocol.SemanticTokenString},
		{2, 3, 1, protocol.SemanticTokenOperator},
		{2, 4, 1, protocol.SemanticTokenVariable},
		{2, 5, 1, protocol.SemanticTokenOperator},
		{2, 6, 1, protocol.SemanticTokenOperator},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(tok{})); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	data := encodeSemanticTokens(collectSemanticTokens(doc), 2, 2)
	if diff := cmp.Diff([]uint32{2, 0, 2, 1, 0}, data[:5]); diff != "" {
		t.Errorf("range encoding (-want +got):\n%s", diff)
	}
}

func TestApplyChange(t *testing.T) {
	full := applyChange("old", protocol.TextDocumentContentChangeEvent{Text: "new"})
	if full != "new" {
		t.Errorf("full replace %q", full)
	}
	got := applyChange("(\"a\")\n(\"b\")", protocol.TextDocumentContentChangeEvent{
		Range: protocol.Range{
			Start: protocol.Position{Line: 1, Character: 2},
			End:   protocol.Position{Line: 1, Character: 3},
		},
		Text: "c",
	})
	if got != "(\"a\")\n(\"c\")" {
		t.Errorf("got %q", got)
	}
}

func TestUTF16Positions(t *testing.T) {
	doc := newDocument("u", "(\"😀\" \"1\")", 1, nil)
	if doc.err != nil {
		t.Fatal(doc.err)
	}
	pos := doc.lspPosition(token.Pos{Line: 1, Col: 9})
	if pos.Character != 6 {
		t.Errorf("character %d, want 6", pos.Character)
	}
	if got := doc.byteCol(0, 6); got != 9 {
		t.Errorf("byte column %d, want 9", got)
	}
	if got := doc.byteCol(0, 2); got != 3 {
		t.Errorf("byte column %d, want 3", got)
	}

	type tok struct {
		char, length uint32
		typ          protocol.SemanticTokenTypes
	}
	var got []tok
	for _, st := range collectSemanticTokens(doc) {
		got = append(got, tok{st.char, st.length, st.typ})
	}
	want := []tok{
		{0, 1, protocol.SemanticTokenOperator},
		{1, 4, protocol.SemanticTokenProperty},
		{6, 3, protocol.SemanticTokenString},
		{9, 1, protocol.SemanticTokenOperator},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(tok{})); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	edited := applyChange(doc.content, protocol.TextDocumentContentChangeEvent{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 7},
			End:   protocol.Position{Line: 0, Character: 8},
		},
		Text: "2",
	})
	if edited != "(\"😀\" \"2\")" {
		t.Errorf("got %q", edited)
	}
}
