package encode

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/signadot/dblisp/format"
	"github.com/signadot/dblisp/tree"
)

// ToAny converts n to the values encoding/json style decoders produce:
// nil for an empty node, a string for a scalar, []any of strings for a list
// and map[string]any for a subtree.  The key of n is not included.
func ToAny(n *tree.Node) any {
	switch n.Kind() {
	case tree.ScalarKind:
		v, _ := n.Value()
		return v.String()
	case tree.ListKind:
		vs := n.Values()
		res := make([]any, len(vs))
		for i, v := range vs {
			res[i] = v
		}
		return res
	case tree.SubtreeKind:
		res := make(map[string]any, n.Len())
		for k, c := range n.All() {
			res[k] = ToAny(c)
		}
		return res
	}
	return nil
}

// yamlDoc is ToAny for a sequence of siblings with key order kept.
func yamlDoc(nodes []*tree.Node) yaml.MapSlice {
	res := make(yaml.MapSlice, 0, len(nodes))
	for _, c := range nodes {
		var v any
		if c.IsSubtree() {
			v = yamlDoc(c.Children())
		} else {
			v = ToAny(c)
		}
		res = append(res, yaml.MapItem{Key: c.Key(), Value: v})
	}
	return res
}

func encodeAny(w io.Writer, es *EncState, jsonDoc any, yamlDoc func() any) error {
	var (
		d   []byte
		err error
	)
	switch es.format {
	case format.JSONFormat:
		d, err = json.MarshalIndent(jsonDoc, "", strings.Repeat(" ", es.indent))
		if err == nil {
			d = append(d, '\n')
		}
	case format.YAMLFormat:
		d, err = yaml.MarshalWithOptions(yamlDoc(), yaml.Indent(es.indent))
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncoding, es.format, err)
	}
	_, err = w.Write(d)
	return err
}
