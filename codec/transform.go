// Package codec provides converters for domain values carried as JSON
// strings on the wire.
package codec

import (
	"context"

	wirebind "github.com/reoring/wirebind"
	"github.com/reoring/wirebind/i18n"
	js "github.com/reoring/wirebind/jsonschema"
)

// Transform layers a domain type B over the wire converter base. decode
// failures are reported as invalid_format naming format; encode failures are
// returned from Write unchanged.
func Transform[A, B any](base wirebind.Converter[A], format string, decode func(A) (B, error), encode func(B) (A, error)) wirebind.Converter[B] {
	return &transform[A, B]{base: base, format: format, decode: decode, encode: encode}
}

type transform[A, B any] struct {
	base   wirebind.Converter[A]
	format string
	decode func(A) (B, error)
	encode func(B) (A, error)
}

func (c *transform[A, B]) Kind() string { return c.base.Kind() }

func (c *transform[A, B]) Convert(ctx context.Context, v any) (B, error) {
	var zero B
	// wire value first, so shape errors stay invalid_type
	a, err := c.base.Convert(ctx, v)
	if err != nil {
		return zero, err
	}
	b, err := c.decode(a)
	if err != nil {
		if iss, ok := wirebind.AsIssues(err); ok {
			return zero, iss
		}
		return zero, wirebind.Issues{{
			Path:    "/",
			Code:    wirebind.CodeInvalidFormat,
			Message: i18n.T(wirebind.CodeInvalidFormat, map[string]string{"expected": c.format}),
			Cause:   err,
			Params:  map[string]any{"expected": c.format},
		}}
	}
	return b, nil
}

func (c *transform[A, B]) Write(w *wirebind.Writer, v B) error {
	a, err := c.encode(v)
	if err != nil {
		return err
	}
	return c.base.Write(w, a)
}

func (c *transform[A, B]) JSONSchema() *js.Schema { return wirebind.SchemaOf[B](c) }

func (c *transform[A, B]) ProjectSchema(p *wirebind.Projection) *js.Schema {
	s := *wirebind.ProjectSchema(c.base, p)
	s.Format = c.format
	return &s
}
