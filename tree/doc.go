// Package tree provides the recursive variant tree used to represent DbLisp
// documents.
//
// # Overview
//
// A document is a tree of keyed nodes. Every node holds exactly one of
//
//   - nothing (EmptyKind), the state of a freshly created node
//   - a single string (ScalarKind)
//   - an ordered list of strings (ListKind)
//   - a set of uniquely keyed child nodes (SubtreeKind)
//
// Moving a node into one state releases whatever the previous state held.
// Children are kept ordered by key so traversal and encoding are
// deterministic.
//
// # Ownership
//
// A node exclusively owns its children. Insert takes ownership of the tree it
// is given; InsertCopies and Clone duplicate structure so that no node is ever
// reachable from two parents.
//
// # Building Trees
//
//	root := tree.New("")
//	rulers, _ := root.Ensure("editor", "rulers")
//	rulers.PushValue("80")
//	rulers.PushValue("120") // rulers is now a list ["80", "120"]
//
//	size, _ := root.Ensure("editor", "fontSize")
//	size.PushValue("16")
//	v, _ := size.Value()
//	n, _ := v.Int() // 16
//
// # Errors
//
// Misuse of the mutation API is reported with ErrTypeConflict,
// ErrDuplicateKey, ErrKeyNotFound or ErrNoValue, always before the tree is
// modified.
//
// # Concurrency
//
// Nodes carry no locks. Concurrent readers are safe; any writer requires
// external synchronization.
package tree
