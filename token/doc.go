// Package token splits DbLisp text into tokens.
//
// The tokenizer is a line fed state machine.  Outside of a quoted string it
// recognizes
//
//	(         TLParen
//	)         TRParen
//	"..."     TString, which may span lines
//	; ...     a comment running to the end of the line
//	word      TAtom, running to the next ')', whitespace or end of line
//
// Inside a quoted string every line break is kept as '\n' in the value.  A
// '"' closes the string unless it is preceded by an odd number of
// backslashes.  Token.Text holds the raw text between the quotes; use
// Token.String or Unquote for the decoded value.
//
// The tokenizer does not check that parentheses balance, that is left to
// package parse.
package token
