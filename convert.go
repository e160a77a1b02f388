package wirebind

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/reoring/wirebind/i18n"
	js "github.com/reoring/wirebind/jsonschema"
)

// Converter turns a generic JSON value into T and writes T back.
// Convert reports failures as Issues with paths relative to the value ("/").
type Converter[T any] interface {
	// Kind names the accepted shape, e.g. "integer" or "integer|string".
	Kind() string
	Convert(ctx context.Context, v any) (T, error)
	Write(w *Writer, v T) error
	JSONSchema() *js.Schema
}

func typeMismatch(expected string, v any) Issues {
	actual := string(KindOf(v))
	return Issues{Issue{
		Path:    "/",
		Code:    CodeInvalidType,
		Message: i18n.T(CodeInvalidType, map[string]string{"expected": expected, "actual": actual}),
		Hint:    "expected " + expected,
		Params:  map[string]any{"expected": expected, "actual": actual},
	}}
}

// ---- String ----

type stringConv[T ~string] struct{}

// String converts JSON strings.
func String() Converter[string] { return stringConv[string]{} }

// StringOf converts JSON strings into a named string type.
func StringOf[T ~string]() Converter[T] { return stringConv[T]{} }

func (stringConv[T]) Kind() string { return string(KindString) }

func (stringConv[T]) Convert(_ context.Context, v any) (T, error) {
	s, ok := v.(string)
	if !ok {
		return "", typeMismatch(string(KindString), v)
	}
	return T(s), nil
}

func (stringConv[T]) Write(w *Writer, v T) error { return w.String(string(v)) }

func (stringConv[T]) JSONSchema() *js.Schema { return &js.Schema{Type: "string"} }

// ---- Integer ----

type integerConv[T Integer] struct{}

// IntegerValue converts JSON integers into int64. Fractional numbers are
// rejected, never truncated.
func IntegerValue() Converter[int64] { return integerConv[int64]{} }

// IntegerOf converts JSON integers into any Go integer type, reporting
// overflow when the value does not fit.
func IntegerOf[T Integer]() Converter[T] { return integerConv[T]{} }

func (integerConv[T]) Kind() string { return string(KindInteger) }

func (integerConv[T]) Convert(_ context.Context, v any) (T, error) {
	n, err := parseInteger(v)
	if errors.Is(err, errOverflow) {
		return 0, overflowIssue[T]()
	}
	if err != nil {
		return 0, typeMismatch(string(KindInteger), v)
	}
	t, ok := fitInteger[T](n)
	if !ok {
		return 0, overflowIssue[T]()
	}
	return t, nil
}

func overflowIssue[T Integer]() Issues {
	var zero T
	target := fmt.Sprintf("%T", zero)
	return Issues{Issue{
		Path:    "/",
		Code:    CodeOverflow,
		Message: i18n.T(CodeOverflow, map[string]string{"expected": target}),
		Params:  map[string]any{"expected": target},
	}}
}

func (integerConv[T]) Write(w *Writer, v T) error {
	return w.Number(json.Number(formatInteger(v)))
}

func (integerConv[T]) JSONSchema() *js.Schema { return &js.Schema{Type: "integer"} }

// ---- Number ----

type numberConv struct{}

// Number converts any JSON number into float64.
func Number() Converter[float64] { return numberConv{} }

func (numberConv) Kind() string { return string(KindNumber) }

func (numberConv) Convert(_ context.Context, v any) (float64, error) {
	if _, isBool := v.(bool); !isBool {
		if f, ok := toFloat64(v); ok {
			return f, nil
		}
	}
	return 0, typeMismatch(string(KindNumber), v)
}

func (numberConv) Write(w *Writer, v float64) error { return w.Float(v) }

func (numberConv) JSONSchema() *js.Schema { return &js.Schema{Type: "number"} }

// ---- Boolean ----

type booleanConv struct{}

// Boolean converts JSON booleans.
func Boolean() Converter[bool] { return booleanConv{} }

func (booleanConv) Kind() string { return string(KindBoolean) }

func (booleanConv) Convert(_ context.Context, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, typeMismatch(string(KindBoolean), v)
	}
	return b, nil
}

func (booleanConv) Write(w *Writer, v bool) error { return w.Bool(v) }

func (booleanConv) JSONSchema() *js.Schema { return &js.Schema{Type: "boolean"} }

// ---- Null ----

type nullConv struct{}

// NullValue accepts only JSON null.
func NullValue() Converter[Null] { return nullConv{} }

func (nullConv) Kind() string { return string(KindNull) }

func (nullConv) Convert(_ context.Context, v any) (Null, error) {
	if v != nil {
		return Null{}, typeMismatch(string(KindNull), v)
	}
	return Null{}, nil
}

func (nullConv) Write(w *Writer, _ Null) error { return w.Null() }

func (nullConv) JSONSchema() *js.Schema { return &js.Schema{Type: "null"} }

// ---- Any ----

type anyConv struct{}

// AnyValue accepts every value and keeps it uninterpreted.
func AnyValue() Converter[Any] { return anyConv{} }

func (anyConv) Kind() string { return "any" }

func (anyConv) Convert(_ context.Context, v any) (Any, error) { return NewAny(v), nil }

func (anyConv) Write(w *Writer, v Any) error { return w.Raw(v.raw) }

func (anyConv) JSONSchema() *js.Schema { return &js.Schema{} }

// ---- Array ----

type arrayConv[T any] struct{ elem Converter[T] }

// ArrayOf converts JSON arrays element by element, reporting every failing
// element under its index.
func ArrayOf[T any](elem Converter[T]) Converter[[]T] { return arrayConv[T]{elem: elem} }

func (c arrayConv[T]) Kind() string { return string(KindArray) }

func (c arrayConv[T]) Convert(ctx context.Context, v any) ([]T, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, typeMismatch(string(KindArray), v)
	}
	out := make([]T, 0, len(arr))
	var iss Issues
	for i, ev := range arr {
		t, err := c.elem.Convert(ctx, ev)
		if err != nil {
			iss = AppendIssues(iss, rebase("/"+strconv.Itoa(i), err)...)
			if IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		out = append(out, t)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (c arrayConv[T]) Write(w *Writer, v []T) error {
	return w.Array(func() error {
		for _, ev := range v {
			if err := c.elem.Write(w, ev); err != nil {
				return err
			}
		}
		return nil
	})
}

func (c arrayConv[T]) JSONSchema() *js.Schema { return SchemaOf[[]T](c) }

func (c arrayConv[T]) ProjectSchema(p *Projection) *js.Schema {
	return &js.Schema{Type: "array", Items: ProjectSchema(c.elem, p)}
}

// ---- Map ----

type mapConv[T any] struct{ elem Converter[T] }

// MapOf converts a JSON object with arbitrary keys and uniform values.
func MapOf[T any](elem Converter[T]) Converter[map[string]T] { return mapConv[T]{elem: elem} }

func (c mapConv[T]) Kind() string { return string(KindObject) }

func (c mapConv[T]) Convert(ctx context.Context, v any) (map[string]T, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, typeMismatch(string(KindObject), v)
	}
	out := make(map[string]T, len(obj))
	var iss Issues
	for _, k := range sortedKeys(obj) {
		t, err := c.elem.Convert(ctx, obj[k])
		if err != nil {
			iss = AppendIssues(iss, rebase(pointerToken(k), err)...)
			if IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		out[k] = t
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (c mapConv[T]) Write(w *Writer, v map[string]T) error {
	return w.Object(func() error {
		for _, k := range sortedKeys(v) {
			if err := w.Key(k); err != nil {
				return err
			}
			if err := c.elem.Write(w, v[k]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (c mapConv[T]) JSONSchema() *js.Schema { return SchemaOf[map[string]T](c) }

func (c mapConv[T]) ProjectSchema(p *Projection) *js.Schema {
	return &js.Schema{Type: "object", AdditionalProperties: ProjectSchema(c.elem, p)}
}

// ---- nested binding ----

// bindingPtr constrains *T to implement Binding so nested structures can be
// created by value.
type bindingPtr[T any] interface {
	*T
	Binding
}

type objectConv[T any, PT bindingPtr[T]] struct{}

// Object converts a nested JSON object into the structure T, whose pointer
// implements Binding.
func Object[T any, PT bindingPtr[T]]() Converter[T] { return objectConv[T, PT]{} }

func (objectConv[T, PT]) Kind() string { return string(KindObject) }

func (objectConv[T, PT]) Convert(ctx context.Context, v any) (T, error) {
	var t T
	if err := Parse(ctx, v, PT(&t)); err != nil {
		var zero T
		return zero, err
	}
	return t, nil
}

func (objectConv[T, PT]) Write(w *Writer, v T) error { return Write(w, PT(&v)) }

func (c objectConv[T, PT]) JSONSchema() *js.Schema { return projectRoot(c.typ(), c.fill) }

func (c objectConv[T, PT]) ProjectSchema(p *Projection) *js.Schema {
	if p == nil {
		return c.JSONSchema()
	}
	return p.object(c.typ(), c.fill)
}

func (objectConv[T, PT]) typ() reflect.Type { return reflect.TypeOf(PT(nil)) }

func (objectConv[T, PT]) fill(in *Initializer) { PT(new(T)).FillInitializer(in) }
