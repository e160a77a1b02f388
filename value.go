package wirebind

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"sort"
)

// Kind names the JSON shape of a generic value.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindNull    Kind = "null"
	KindObject  Kind = "object"
	KindArray   Kind = "array"

	// KindUnsupported is reported for Go values that are not part of the
	// generic JSON tree.
	KindUnsupported Kind = "unsupported"
)

// KindOf classifies a generic value as produced by DecodeValue or built by
// hand from Go primitives. Numbers with an integral value report KindInteger.
func KindOf(v any) Kind {
	switch t := v.(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case bool:
		return KindBoolean
	case json.Number:
		if _, err := parseIntegerText(string(t)); err == nil || errors.Is(err, errOverflow) {
			return KindInteger
		}
		return KindNumber
	case float64:
		if isIntegralFloat(t) {
			return KindInteger
		}
		return KindNumber
	case float32:
		if isIntegralFloat(float64(t)) {
			return KindInteger
		}
		return KindNumber
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInteger
	case map[string]any:
		return KindObject
	case []any:
		return KindArray
	case Any:
		return t.Kind()
	case json.RawMessage:
		return rawKind(t)
	default:
		return KindUnsupported
	}
}

// rawKind classifies encoded JSON by its first significant byte.
func rawKind(b json.RawMessage) Kind {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return KindUnsupported
	}
	switch b[0] {
	case '{':
		return KindObject
	case '[':
		return KindArray
	case '"':
		return KindString
	case 't', 'f':
		return KindBoolean
	case 'n':
		return KindNull
	}
	return KindOf(json.Number(b))
}

// Null is the semantic value of a JSON null.
type Null struct{}

// Optional holds a field that may be entirely absent from its object.
// The zero value is absent.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] { return Optional[T]{value: v, set: true} }

// None returns an absent Optional.
func None[T any]() Optional[T] { return Optional[T]{} }

// Get returns the held value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.set }

// IsSet reports whether the value is present.
func (o Optional[T]) IsSet() bool { return o.set }

// OrElse returns the held value or def when absent.
func (o Optional[T]) OrElse(def T) T {
	if o.set {
		return o.value
	}
	return def
}

// Set marks the value present.
func (o *Optional[T]) Set(v T) { o.value, o.set = v, true }

// Clear marks the value absent.
func (o *Optional[T]) Clear() {
	var zero T
	o.value, o.set = zero, false
}

// Any is an opaque payload: it is stored uninterpreted and re-emitted as
// parsed. Accessors expose the known semantic kinds; objects and arrays stay a
// raw generic tree. Numbers keep their text and array order is kept; object
// members are re-emitted in sorted key order, since the tree does not record
// the order they arrived in.
type Any struct {
	raw any
}

// NewAny wraps a generic value.
func NewAny(v any) Any {
	if a, ok := v.(Any); ok {
		return a
	}
	return Any{raw: v}
}

// Raw returns the stored generic value.
func (a Any) Raw() any { return a.raw }

// Kind reports the JSON shape held.
func (a Any) Kind() Kind { return KindOf(a.raw) }

// IsNull reports whether a JSON null is held.
func (a Any) IsNull() bool { return a.raw == nil }

// AsString returns the held string.
func (a Any) AsString() (string, bool) {
	s, ok := a.raw.(string)
	return s, ok
}

// AsBool returns the held boolean.
func (a Any) AsBool() (bool, bool) {
	b, ok := a.raw.(bool)
	return b, ok
}

// AsInteger returns the held integer when it fits int64.
func (a Any) AsInteger() (int64, bool) {
	i, err := toInt64(a.raw)
	return i, err == nil
}

// AsNumber returns the held number as float64.
func (a Any) AsNumber() (float64, bool) {
	return toFloat64(a.raw)
}

// AsObject returns the held object tree.
func (a Any) AsObject() (map[string]any, bool) {
	m, ok := a.raw.(map[string]any)
	return m, ok
}

// AsArray returns the held array tree.
func (a Any) AsArray() ([]any, bool) {
	s, ok := a.raw.([]any)
	return s, ok
}

// ---- numeric helpers ----

func isIntegralFloat(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
}

func toFloat64(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	default:
		return 0, false
	}
}

func toInt64(v any) (int64, error) {
	n, err := parseInteger(v)
	if err != nil {
		return 0, err
	}
	if n.neg || n.mag <= math.MaxInt64 {
		return n.int64(), nil
	}
	return 0, errOverflow
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
