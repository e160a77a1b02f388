// Package yaml reads YAML documents into the generic JSON value consumed by
// wirebind, so YAML fixtures and configuration bind like JSON input.
package yaml

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	yamlv3 "gopkg.in/yaml.v3"

	wirebind "github.com/reoring/wirebind"
)

// ErrNotJSON is returned for YAML content with no JSON equivalent
// (non-string keys, NaN or infinite numbers).
var ErrNotJSON = errors.New("yaml: value has no JSON representation")

// Decode reads the first YAML document of data into a generic value.
// Numbers become json.Number; timestamps and other tagged scalars stay strings.
func Decode(data []byte) (any, error) {
	dec := yamlv3.NewDecoder(bytes.NewReader(data))
	var doc yamlv3.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("yaml: decode: %w", err)
	}
	return toValue(&doc)
}

// DecodeAll reads every document of a multi-document stream.
func DecodeAll(r io.Reader) ([]any, error) {
	dec := yamlv3.NewDecoder(r)
	var out []any
	for {
		var doc yamlv3.Node
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, fmt.Errorf("yaml: decode document %d: %w", len(out), err)
		}
		v, err := toValue(&doc)
		if err != nil {
			return out, fmt.Errorf("yaml: document %d: %w", len(out), err)
		}
		out = append(out, v)
	}
}

// Parse decodes data and binds the first document onto b. Decode failures
// are reported as a parse_error issue at the root.
func Parse(ctx context.Context, data []byte, b wirebind.Binding) error {
	v, err := Decode(data)
	if err != nil {
		return wirebind.Issues{{Path: "/", Code: wirebind.CodeParseError, Message: err.Error(), Cause: err}}
	}
	return wirebind.Parse(ctx, v, b)
}

func toValue(n *yamlv3.Node) (any, error) {
	switch n.Kind {
	case yamlv3.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return toValue(n.Content[0])
	case yamlv3.AliasNode:
		return toValue(n.Alias)
	case yamlv3.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yamlv3.ScalarNode || k.ShortTag() != "!!str" {
				return nil, fmt.Errorf("%w: key %q at line %d is not a string", ErrNotJSON, k.Value, k.Line)
			}
			val, err := toValue(v)
			if err != nil {
				return nil, err
			}
			out[k.Value] = val
		}
		return out, nil
	case yamlv3.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := toValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil
	case yamlv3.ScalarNode:
		return scalar(n)
	default:
		return nil, fmt.Errorf("%w: node kind %d at line %d", ErrNotJSON, n.Kind, n.Line)
	}
}

func scalar(n *yamlv3.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return json.Number(strconv.FormatInt(i, 10)), nil
		}
		var u uint64
		if err := n.Decode(&u); err != nil {
			return nil, err
		}
		return json.Number(strconv.FormatUint(u, 10)), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %q at line %d", ErrNotJSON, n.Value, n.Line)
		}
		// keep the literal when it is already JSON
		if json.Valid([]byte(n.Value)) {
			return json.Number(n.Value), nil
		}
		return json.Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
	default:
		return n.Value, nil
	}
}
