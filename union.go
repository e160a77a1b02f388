package wirebind

import (
	"context"
	"strings"

	"github.com/reoring/wirebind/i18n"
	js "github.com/reoring/wirebind/jsonschema"
)

// OneOf2 holds exactly one of two alternatives. Index reports which one
// (1 or 2); the zero value holds nothing and reports 0.
type OneOf2[A, B any] struct {
	idx int
	a   A
	b   B
}

// First2 returns a OneOf2 holding the first alternative.
func First2[A, B any](v A) OneOf2[A, B] { return OneOf2[A, B]{idx: 1, a: v} }

// Second2 returns a OneOf2 holding the second alternative.
func Second2[A, B any](v B) OneOf2[A, B] { return OneOf2[A, B]{idx: 2, b: v} }

func (u OneOf2[A, B]) Index() int { return u.idx }

// First returns the first alternative and whether it is held.
func (u OneOf2[A, B]) First() (A, bool) { return u.a, u.idx == 1 }

// Second returns the second alternative and whether it is held.
func (u OneOf2[A, B]) Second() (B, bool) { return u.b, u.idx == 2 }

// Value returns the held alternative as an interface value (nil when unset).
func (u OneOf2[A, B]) Value() any {
	switch u.idx {
	case 1:
		return u.a
	case 2:
		return u.b
	}
	return nil
}

// OneOf3 holds exactly one of three alternatives.
type OneOf3[A, B, C any] struct {
	idx int
	a   A
	b   B
	c   C
}

func First3[A, B, C any](v A) OneOf3[A, B, C]  { return OneOf3[A, B, C]{idx: 1, a: v} }
func Second3[A, B, C any](v B) OneOf3[A, B, C] { return OneOf3[A, B, C]{idx: 2, b: v} }
func Third3[A, B, C any](v C) OneOf3[A, B, C]  { return OneOf3[A, B, C]{idx: 3, c: v} }

func (u OneOf3[A, B, C]) Index() int        { return u.idx }
func (u OneOf3[A, B, C]) First() (A, bool)  { return u.a, u.idx == 1 }
func (u OneOf3[A, B, C]) Second() (B, bool) { return u.b, u.idx == 2 }
func (u OneOf3[A, B, C]) Third() (C, bool)  { return u.c, u.idx == 3 }

func (u OneOf3[A, B, C]) Value() any {
	switch u.idx {
	case 1:
		return u.a
	case 2:
		return u.b
	case 3:
		return u.c
	}
	return nil
}

// ---- union converters ----

// attempt is one alternative of a union: it reports its kind and tries to
// store a converted value.
type attempt struct {
	kind string
	try  func(ctx context.Context, v any) error
}

// tryInOrder runs alternatives in declaration order and stops at the first
// success. When every alternative fails the issues of all attempts are kept
// as the cause of a single no_alternative issue.
func tryInOrder(ctx context.Context, v any, alts []attempt) (int, error) {
	kinds := make([]string, 0, len(alts))
	var causes Issues
	for i, alt := range alts {
		err := alt.try(ctx, v)
		if err == nil {
			return i + 1, nil
		}
		kinds = append(kinds, alt.kind)
		causes = AppendIssues(causes, toIssues("/", err)...)
	}
	attempted := strings.Join(kinds, ", ")
	return 0, Issues{Issue{
		Path:    "/",
		Code:    CodeNoAlternative,
		Message: i18n.T(CodeNoAlternative, map[string]string{"attempted": attempted, "actual": string(KindOf(v))}),
		Hint:    "expected one of " + attempted,
		Cause:   causes,
		Params:  map[string]any{"attempted": kinds, "actual": string(KindOf(v))},
	}}
}

type either2[A, B any] struct {
	ca Converter[A]
	cb Converter[B]
}

// Either converts a value that may take either of two shapes. Alternatives
// are tried in argument order; the first to convert wins.
func Either[A, B any](ca Converter[A], cb Converter[B]) Converter[OneOf2[A, B]] {
	return either2[A, B]{ca: ca, cb: cb}
}

func (c either2[A, B]) Kind() string { return c.ca.Kind() + "|" + c.cb.Kind() }

func (c either2[A, B]) Convert(ctx context.Context, v any) (OneOf2[A, B], error) {
	var out OneOf2[A, B]
	idx, err := tryInOrder(ctx, v, []attempt{
		{kind: c.ca.Kind(), try: func(ctx context.Context, v any) (err error) { out.a, err = c.ca.Convert(ctx, v); return }},
		{kind: c.cb.Kind(), try: func(ctx context.Context, v any) (err error) { out.b, err = c.cb.Convert(ctx, v); return }},
	})
	if err != nil {
		return OneOf2[A, B]{}, err
	}
	switch idx {
	case 1:
		return First2[A, B](out.a), nil
	default:
		return Second2[A, B](out.b), nil
	}
}

func (c either2[A, B]) Write(w *Writer, v OneOf2[A, B]) error {
	switch v.idx {
	case 1:
		return c.ca.Write(w, v.a)
	case 2:
		return c.cb.Write(w, v.b)
	}
	return ErrUnsetUnion
}

func (c either2[A, B]) JSONSchema() *js.Schema { return SchemaOf[OneOf2[A, B]](c) }

func (c either2[A, B]) ProjectSchema(p *Projection) *js.Schema {
	return &js.Schema{AnyOf: []*js.Schema{ProjectSchema(c.ca, p), ProjectSchema(c.cb, p)}}
}

type either3[A, B, C any] struct {
	ca Converter[A]
	cb Converter[B]
	cc Converter[C]
}

// Either3 is Either over three alternatives.
func Either3[A, B, C any](ca Converter[A], cb Converter[B], cc Converter[C]) Converter[OneOf3[A, B, C]] {
	return either3[A, B, C]{ca: ca, cb: cb, cc: cc}
}

func (c either3[A, B, C]) Kind() string {
	return c.ca.Kind() + "|" + c.cb.Kind() + "|" + c.cc.Kind()
}

func (c either3[A, B, C]) Convert(ctx context.Context, v any) (OneOf3[A, B, C], error) {
	var out OneOf3[A, B, C]
	idx, err := tryInOrder(ctx, v, []attempt{
		{kind: c.ca.Kind(), try: func(ctx context.Context, v any) (err error) { out.a, err = c.ca.Convert(ctx, v); return }},
		{kind: c.cb.Kind(), try: func(ctx context.Context, v any) (err error) { out.b, err = c.cb.Convert(ctx, v); return }},
		{kind: c.cc.Kind(), try: func(ctx context.Context, v any) (err error) { out.c, err = c.cc.Convert(ctx, v); return }},
	})
	if err != nil {
		return OneOf3[A, B, C]{}, err
	}
	switch idx {
	case 1:
		return First3[A, B, C](out.a), nil
	case 2:
		return Second3[A, B, C](out.b), nil
	default:
		return Third3[A, B, C](out.c), nil
	}
}

func (c either3[A, B, C]) Write(w *Writer, v OneOf3[A, B, C]) error {
	switch v.idx {
	case 1:
		return c.ca.Write(w, v.a)
	case 2:
		return c.cb.Write(w, v.b)
	case 3:
		return c.cc.Write(w, v.c)
	}
	return ErrUnsetUnion
}

func (c either3[A, B, C]) JSONSchema() *js.Schema { return SchemaOf[OneOf3[A, B, C]](c) }

func (c either3[A, B, C]) ProjectSchema(p *Projection) *js.Schema {
	return &js.Schema{AnyOf: []*js.Schema{ProjectSchema(c.ca, p), ProjectSchema(c.cb, p), ProjectSchema(c.cc, p)}}
}
