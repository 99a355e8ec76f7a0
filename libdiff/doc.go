// Package libdiff computes differences between trees and between texts.
//
// # Usage
//
//	// Compute the changes turning from into to
//	changes := libdiff.Diff(from, to)
//	for _, c := range changes {
//	    fmt.Println(c)
//	}
//
//	// Apply them to a copy of from
//	patched, err := libdiff.Apply(from, changes)
//
//	// Line diff of two texts, as shown by "dblisp fmt -d"
//	fmt.Print(libdiff.TextDiff(before, after))
//
// Sibling keys and list values are aligned with a longest common
// subsequence so an insertion does not show up as a run of replacements.
//
// # Related Packages
//
//   - github.com/signadot/dblisp/tree - tree representation
//   - github.com/signadot/dblisp/patch - JSON patch applied to trees
package libdiff
