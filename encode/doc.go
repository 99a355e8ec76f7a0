// Package encode renders trees as DbLisp text, JSON or YAML.
//
// DbLisp output follows a fixed layout.  A node holding values is always on
// one line.  A subtree with one child stays on the key's line unless the
// child spans several lines, and a subtree with two or more children puts
// each child on its own line, aligned under the first one:
//
//	("editor" ("fontSize" "16")
//	          ("theme" ("name" "dark"))
//	)
//
// Output produced by [Encode] or [EncodeDoc] parses back into an equal tree.
package encode
