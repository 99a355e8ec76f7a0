package token

import "strings"

// Tokenize tokenizes lines, appending to dst.
func Tokenize(dst []Token, lines []string) ([]Token, error) {
	t := NewTokenizer()
	for _, ln := range lines {
		dst = t.Line(dst, ln)
	}
	if err := t.Close(); err != nil {
		return nil, err
	}
	return dst, nil
}

// TokenizeBytes splits d into lines and tokenizes them.
func TokenizeBytes(dst []Token, d []byte) ([]Token, error) {
	return Tokenize(dst, Lines(d))
}

// Lines splits d at '\n', dropping the empty line after a final newline.
// A "\r" ending a line is kept: the tokenizer treats it as space outside a
// string and as part of the value inside one.
func Lines(d []byte) []string {
	if len(d) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(d), "\n"), "\n")
}
