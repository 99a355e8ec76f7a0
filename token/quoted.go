package token

import "strings"

// Quote renders v as a DbLisp string literal, escaping '\' and '"'.
func Quote(v string) string {
	var sb strings.Builder
	sb.Grow(len(v) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(v); i++ {
		switch c := v[i]; c {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// Unquote decodes the raw text of a string token.  "\\" and "\"" are
// decoded, any other backslash is kept as is.
func Unquote(raw string) string {
	if strings.IndexByte(raw, '\\') == -1 {
		return raw
	}
	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == '\\' && i+1 < len(raw) && (raw[i+1] == '"' || raw[i+1] == '\\') {
			i++
			c = raw[i]
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// closingQuote returns the index of the first '"' in s at or after from
// that is not escaped, or -1.
func closingQuote(s string, from int) int {
	for k := from; k < len(s); k++ {
		if s[k] != '"' {
			continue
		}
		n := 0
		for j := k - 1; j >= from && s[j] == '\\'; j-- {
			n++
		}
		if n%2 == 0 {
			return k
		}
	}
	return -1
}
