// Package parse builds trees from DbLisp text.
//
// # Usage
//
//	root, err := parse.Parse([]byte(`("editor" ("fontSize" "16"))`))
//	if err != nil {
//	    return err
//	}
//
//	// Parse a file, reporting errors as "config.dbl:3:7: duplicate key ..."
//	root, err := parse.ParseFile("config.dbl")
//
//	// Merge more definitions into an existing tree.  On error root is
//	// left untouched.
//	err = parse.ParseInto(root, more, parse.ParseSource("more.dbl"))
//
// # Grammar
//
//	file    := form*
//	form    := '(' STRING (value | form | varref)* ')'
//	value   := STRING
//	varref  := '(' ATOM ')'
//
// A node either holds values or children, never both.  A variable reference
// (name) inserts a deep copy of the top level node called name.
//
// JSON and YAML documents whose top level is an object can be read with
// ParseFormat.
//
// # Related Packages
//
//   - github.com/signadot/dblisp/tree - tree representation
//   - github.com/signadot/dblisp/token - tokenization
//   - github.com/signadot/dblisp/encode - encode trees to text
package parse
