// Package patch applies RFC 6902 JSON patches and RFC 7386 merge patches to
// trees.
//
// Trees are patched through their JSON form: subtrees are objects, lists are
// arrays of strings, scalars are strings and empty nodes are null.  Numbers
// and booleans introduced by a patch become their text.
package patch

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/signadot/dblisp/debug"
	"github.com/signadot/dblisp/encode"
	"github.com/signadot/dblisp/format"
	"github.com/signadot/dblisp/parse"
	"github.com/signadot/dblisp/tree"

	jsonpatch "github.com/evanphx/json-patch"
)

var ErrPatch = errors.New("patch error")

// Patch is a decoded RFC 6902 patch.
type Patch struct {
	ops jsonpatch.Patch
}

// Decode decodes a patch document, a JSON or YAML array of operations.
func Decode(d []byte, f format.Format) (*Patch, error) {
	d, err := toJSON(d, f)
	if err != nil {
		return nil, err
	}
	ops, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	if debug.Patch() {
		debug.LogAny(ops)
	}
	return &Patch{ops: ops}, nil
}

func (p *Patch) Len() int {
	return len(p.ops)
}

// Apply returns a patched copy of root.  root itself is never modified.
func (p *Patch) Apply(root *tree.Node) (*tree.Node, error) {
	d, err := marshal(root)
	if err != nil {
		return nil, err
	}
	out, err := p.ops.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	if debug.Patch() {
		debug.Logf("patch %d ops on %q:\n%s\n", len(p.ops), root.Key(), string(out))
	}
	return unmarshal(root.Key(), out)
}

// Apply decodes the JSON patch d and applies it to a copy of root.
func Apply(root *tree.Node, d []byte) (*tree.Node, error) {
	p, err := Decode(d, format.JSONFormat)
	if err != nil {
		return nil, err
	}
	return p.Apply(root)
}

// MergePatch applies the JSON merge patch d to a copy of root.
func MergePatch(root *tree.Node, d []byte, f format.Format) (*tree.Node, error) {
	d, err := toJSON(d, f)
	if err != nil {
		return nil, err
	}
	doc, err := marshal(root)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(doc, d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return unmarshal(root.Key(), out)
}

// CreateMergePatch returns a JSON merge patch turning from into to.
func CreateMergePatch(from, to *tree.Node) ([]byte, error) {
	a, err := marshal(from)
	if err != nil {
		return nil, err
	}
	b, err := marshal(to)
	if err != nil {
		return nil, err
	}
	res, err := jsonpatch.CreateMergePatch(a, b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return res, nil
}

func toJSON(d []byte, f format.Format) ([]byte, error) {
	switch f {
	case format.JSONFormat:
		return d, nil
	case format.YAMLFormat:
		j, err := yaml.YAMLToJSON(d)
		if err != nil {
			return nil, fmt.Errorf("%w: yaml: %w", ErrPatch, err)
		}
		return j, nil
	}
	return nil, fmt.Errorf("%w: patches are json or yaml, not %s", format.ErrBadFormat, f)
}

func marshal(root *tree.Node) ([]byte, error) {
	if root.IsValue() {
		return nil, fmt.Errorf("%w: cannot patch %s node %q", ErrPatch, root.Kind(), root.Key())
	}
	doc := encode.ToAny(root)
	if doc == nil {
		doc = map[string]any{}
	}
	d, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return d, nil
}

func unmarshal(key string, d []byte) (*tree.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	if _, ok := v.(map[string]any); !ok {
		return nil, fmt.Errorf("%w: %w: patched document is %T, not an object", ErrPatch, parse.ErrUnsupported, v)
	}
	return parse.FromAny(key, v)
}
