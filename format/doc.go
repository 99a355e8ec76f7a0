// Package format names the document formats understood by parse and encode.
//
// # Usage
//
//	f, err := format.ParseFormat("json")
//	node, err := parse.Parse(data, parse.ParseFormat(f))
//
// # Related Packages
//
//   - github.com/signadot/dblisp/parse - Parse text to trees
//   - github.com/signadot/dblisp/encode - Encode trees to text
package format
