// Package eval evaluates expr-lang expressions against a tree.
//
// Top level nodes are visible as variables, converted as by
// encode.ToAny, so ("port" "80") is the string "80" and a subtree is a
// map.  Keys which are not identifiers are reached with get:
//
//	get("server/tls-mode") == "strict" && int(port) > 1024
//
// Functions available to expressions:
//
//	get(path) any        the node at path, as a value; error if missing
//	has(path) bool       whether path exists
//	values(path) []any   the values of the node at path
//	count(path) int      number of nodes under path, itself included
//	keys(path) []any     child keys of the node at path
//	getenv(name) string  an environment variable
//
// Strings may embed expressions as $[expr], see [Expand].
package eval
