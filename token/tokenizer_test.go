package token

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type tokTest struct {
	name string
	in   []string
	want []Token
}

func TestTokenize(t *testing.T) {
	tests := []tokTest{
		{
			name: "key value",
			in:   []string{`("a" "1")`},
			want: []Token{
				{Type: TLParen, Pos: Pos{1, 1}, Text: "("},
				{Type: TString, Pos: Pos{1, 2}, Text: "a"},
				{Type: TString, Pos: Pos{1, 6}, Text: "1"},
				{Type: TRParen, Pos: Pos{1, 9}, Text: ")"},
			},
		},
		{
			name: "comment",
			in:   []string{`; all of this ("x")`, `  ("b") ; trailing "`},
			want: []Token{
				{Type: TLParen, Pos: Pos{2, 3}, Text: "("},
				{Type: TString, Pos: Pos{2, 4}, Text: "b"},
				{Type: TRParen, Pos: Pos{2, 7}, Text: ")"},
			},
		},
		{
			name: "atom then close",
			in:   []string{"(abc)"},
			want: []Token{
				{Type: TLParen, Pos: Pos{1, 1}, Text: "("},
				{Type: TAtom, Pos: Pos{1, 2}, Text: "abc"},
				{Type: TRParen, Pos: Pos{1, 5}, Text: ")"},
			},
		},
		{
			name: "atom ends at whitespace",
			in:   []string{"\tx-y.z\tw"},
			want: []Token{
				{Type: TAtom, Pos: Pos{1, 2}, Text: "x-y.z"},
				{Type: TAtom, Pos: Pos{1, 8}, Text: "w"},
			},
		},
		{
			name: "escaped quote",
			in:   []string{`"a\"b" "c\\"`},
			want: []Token{
				{Type: TString, Pos: Pos{1, 1}, Text: `a\"b`},
				{Type: TString, Pos: Pos{1, 8}, Text: `c\\`},
			},
		},
		{
			name: "multiline string",
			in:   []string{`("k" "one`, `two`, `three")`},
			want: []Token{
				{Type: TLParen, Pos: Pos{1, 1}, Text: "("},
				{Type: TString, Pos: Pos{1, 2}, Text: "k"},
				{Type: TString, Pos: Pos{1, 6}, Text: "one\ntwo\nthree"},
				{Type: TRParen, Pos: Pos{3, 7}, Text: ")"},
			},
		},
		{
			name: "multiline string keeps blank lines",
			in:   []string{`"a`, ``, `"`},
			want: []Token{
				{Type: TString, Pos: Pos{1, 1}, Text: "a\n\n"},
			},
		},
		{
			name: "empty string",
			in:   []string{`""`},
			want: []Token{
				{Type: TString, Pos: Pos{1, 1}, Text: ""},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(nil, tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tokens (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnterminatedString(t *testing.T) {
	_, err := Tokenize(nil, []string{`("a"`, `  "never`, `closed`})
	if !errors.Is(err, ErrUnterminatedString) {
		t.Fatalf("got %v", err)
	}
	var te *TokenizeErr
	if !errors.As(err, &te) {
		t.Fatalf("not a TokenizeErr: %T", err)
	}
	if te.Pos != (Pos{Line: 2, Col: 3}) {
		t.Errorf("pos %s", te.Pos)
	}
}

func TestInString(t *testing.T) {
	tk := NewTokenizer()
	toks := tk.Line(nil, `("a" "b`)
	if !tk.InString() {
		t.Fatalf("expected open string")
	}
	toks = tk.Line(toks, `c")`)
	if tk.InString() || tk.Close() != nil {
		t.Fatalf("expected closed string")
	}
	if len(toks) != 4 || toks[2].String() != "b\nc" {
		t.Errorf("got %v", toks)
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	for _, v := range []string{"", "plain", `say "hi"`, `back\slash`, `trailing\`, "multi\nline", `\"`} {
		q := Quote(v)
		end := closingQuote(q, 1)
		if end != len(q)-1 {
			t.Errorf("%q: closing quote at %d of %d", q, end, len(q))
			continue
		}
		if got := Unquote(q[1:end]); got != v {
			t.Errorf("got %q want %q", got, v)
		}
	}
}

func TestLines(t *testing.T) {
	got := Lines([]byte("a\r\nb\n\nc\n"))
	if diff := cmp.Diff([]string{"a\r", "b", "", "c"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestCRLF(t *testing.T) {
	toks, err := TokenizeBytes(nil, []byte("(\"a\" \"x\r\ny\")\r\n(\"b\")\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for i := range toks {
		got = append(got, toks[i].String())
	}
	want := []string{"(", "a", "x\r\ny", ")", "(", "b", ")"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
