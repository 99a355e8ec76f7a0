package parse

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/signadot/dblisp/format"
	"github.com/signadot/dblisp/tree"
)

// FromAny converts a decoded JSON or YAML value into a node named key.
// Objects become subtrees, arrays of scalars become lists, null becomes an
// empty node and any other scalar becomes a single value.
func FromAny(key string, v any) (*tree.Node, error) {
	switch x := v.(type) {
	case nil:
		return tree.New(key), nil
	case map[string]any:
		n, _ := tree.FromChildren(key)
		for k, cv := range x {
			c, err := FromAny(k, cv)
			if err != nil {
				return nil, err
			}
			if err := n.Insert(c); err != nil {
				return nil, err
			}
		}
		return n, nil
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, cv := range x {
			ks, err := scalarText(k)
			if err != nil {
				return nil, fmt.Errorf("%w: key %v of %q", ErrUnsupported, k, key)
			}
			m[ks] = cv
		}
		return FromAny(key, m)
	case []any:
		n := tree.New(key)
		for i, ev := range x {
			s, err := scalarText(ev)
			if err != nil {
				return nil, fmt.Errorf("%w: element %d of %q: %w", ErrUnsupported, i, key, err)
			}
			if err := n.PushValue(s); err != nil {
				return nil, err
			}
		}
		if len(x) == 1 {
			// keep a one element array a list
			if _, err := n.MutableValues(); err != nil {
				return nil, err
			}
		}
		return n, nil
	}
	s, err := scalarText(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrUnsupported, key, err)
	}
	return tree.FromValues(key, s), nil
}

var errNotScalar = errors.New("not a scalar")

func scalarText(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return "", fmt.Errorf("%w: %v", errNotScalar, x)
		}
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	}
	return "", fmt.Errorf("%w: %T", errNotScalar, v)
}

// FromJSON decodes a JSON object into a document root.
func FromJSON(d []byte) (*tree.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return tree.New(""), nil
		}
		return nil, fmt.Errorf("json: %w", err)
	}
	return fromDocValue(v)
}

// FromYAML decodes a YAML mapping into a document root.
func FromYAML(d []byte) (*tree.Node, error) {
	var v any
	if err := yaml.Unmarshal(d, &v); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return fromDocValue(v)
}

func fromDoc(d []byte, f format.Format) (*tree.Node, error) {
	switch f {
	case format.JSONFormat:
		return FromJSON(d)
	case format.YAMLFormat:
		return FromYAML(d)
	}
	return nil, fmt.Errorf("%w: %s", format.ErrBadFormat, f)
}

func fromDocValue(v any) (*tree.Node, error) {
	switch v.(type) {
	case nil:
		return tree.New(""), nil
	case map[string]any, map[any]any:
		return FromAny("", v)
	}
	return nil, fmt.Errorf("%w: top level must be an object, got %T", ErrUnsupported, v)
}
