package libdiff

import (
	"slices"

	"github.com/signadot/dblisp/debug"
	"github.com/signadot/dblisp/tree"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns the changes turning from into to, in pre-order by path.
func Diff(from, to *tree.Node) []Change {
	var res []Change
	diffNode(nil, from, to, &res)
	if debug.Diff() {
		for _, c := range res {
			debug.Logf("diff %s\n", c.String())
		}
	}
	return res
}

func diffNode(path []string, from, to *tree.Node, res *[]Change) {
	if from.IsSubtree() && to.IsSubtree() {
		diffChildren(path, from, to, res)
		return
	}
	fvs, tvs := from.Values(), to.Values()
	if from.Kind() == to.Kind() && slices.Equal(fvs, tvs) {
		return
	}
	c := Change{Path: slices.Clone(path), Op: OpReplace, From: from, To: to}
	if from.IsList() && to.IsList() {
		c.Values = diffValues(fvs, tvs)
	}
	*res = append(*res, c)
}

// 1 diff child keys
// for every removed or added key add a change
// for every key on both sides, recurse on the children
func diffChildren(path []string, from, to *tree.Node, res *[]Change) {
	fromKeys, toKeys := from.Keys(), to.Keys()
	fromRunes, toRunes := alignRunes(fromKeys, toKeys)
	fcs, tcs := from.Children(), to.Children()
	fi, ti := 0, 0
	sub := func(k string) []string {
		return append(path[:len(path):len(path)], k)
	}
	for _, d := range diffpatch.New().DiffMainRunes(fromRunes, toRunes, false) {
		n := len([]rune(d.Text))
		for range n {
			switch d.Type {
			case diffpatch.DiffDelete:
				*res = append(*res, Change{Path: sub(fromKeys[fi]), Op: OpRemove, From: fcs[fi]})
				fi++
			case diffpatch.DiffInsert:
				*res = append(*res, Change{Path: sub(toKeys[ti]), Op: OpAdd, To: tcs[ti]})
				ti++
			case diffpatch.DiffEqual:
				diffNode(sub(fromKeys[fi]), fcs[fi], tcs[ti], res)
				fi++
				ti++
			}
		}
	}
}

func diffValues(from, to []string) []ValueEdit {
	fromRunes, toRunes := alignRunes(from, to)
	var res []ValueEdit
	fi, ti := 0, 0
	for _, d := range diffpatch.New().DiffMainRunes(fromRunes, toRunes, false) {
		for range len([]rune(d.Text)) {
			switch d.Type {
			case diffpatch.DiffDelete:
				res = append(res, ValueEdit{Op: OpRemove, Value: from[fi]})
				fi++
			case diffpatch.DiffInsert:
				res = append(res, ValueEdit{Op: OpAdd, Value: to[ti]})
				ti++
			case diffpatch.DiffEqual:
				res = append(res, ValueEdit{Op: OpKeep, Value: from[fi]})
				fi++
				ti++
			}
		}
	}
	return res
}

// alignRunes maps each distinct string of a and b to a rune so the two
// sequences can be aligned with DiffMainRunes.
func alignRunes(a, b []string) ([]rune, []rune) {
	m := map[string]rune{}
	conv := func(ss []string) []rune {
		rs := make([]rune, len(ss))
		for i, s := range ss {
			r, ok := m[s]
			if !ok {
				r = rune(len(m) + 1)
				if r >= 0xD800 {
					// skip the surrogate range, it does not survive string conversion
					r += 0x800
				}
				m[s] = r
			}
			rs[i] = r
		}
		return rs
	}
	return conv(a), conv(b)
}
