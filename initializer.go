package wirebind

import (
	"context"

	"github.com/reoring/wirebind/i18n"
	js "github.com/reoring/wirebind/jsonschema"
)

// field is the descriptor of one declared key. The closures capture the
// owning structure's member, so a descriptor lives only as long as the
// parse or write call that built it.
type field struct {
	key      string
	required bool
	kind     string
	assign   func(ctx context.Context, v any) error
	absent   func()
	present  func() bool
	write    func(w *Writer) error
	schema   func(p *Projection) *js.Schema
}

// group records the fields [start, end) one composed group declared.
type group struct {
	binding    Binding
	start, end int
}

// Initializer is the ordered set of fields a structure declares. A fresh
// Initializer is built for every Parse, Write and JSONSchema call.
type Initializer struct {
	fields []field
	index  map[string]int
	groups []group // top-level groups only, in declaration order
	depth  int
}

// NewInitializer returns an empty Initializer.
func NewInitializer() *Initializer {
	return &Initializer{index: map[string]int{}}
}

func (in *Initializer) add(f field) {
	if _, dup := in.index[f.key]; dup {
		panic(&SchemaDefinitionError{Key: f.key})
	}
	in.index[f.key] = len(in.fields)
	in.fields = append(in.fields, f)
}

// RequiredField declares key as required and binds it to *slot through c.
// Declaring a key twice panics with *SchemaDefinitionError.
func RequiredField[T any](in *Initializer, key string, slot *T, c Converter[T]) {
	in.add(field{
		key:      key,
		required: true,
		kind:     c.Kind(),
		assign: func(ctx context.Context, v any) error {
			t, err := c.Convert(ctx, v)
			if err != nil {
				return err
			}
			*slot = t
			return nil
		},
		absent:  func() {},
		present: func() bool { return true },
		write:   func(w *Writer) error { return c.Write(w, *slot) },
		schema:  func(p *Projection) *js.Schema { return ProjectSchema(c, p) },
	})
}

// OptionalField declares key as optional. An absent key leaves *slot absent;
// a present key, including one holding null, must convert through c.
func OptionalField[T any](in *Initializer, key string, slot *Optional[T], c Converter[T]) {
	in.add(field{
		key:  key,
		kind: c.Kind(),
		assign: func(ctx context.Context, v any) error {
			t, err := c.Convert(ctx, v)
			if err != nil {
				return err
			}
			slot.Set(t)
			return nil
		},
		absent:  slot.Clear,
		present: slot.IsSet,
		write: func(w *Writer) error {
			v, _ := slot.Get()
			return c.Write(w, v)
		},
		schema: func(p *Projection) *js.Schema { return ProjectSchema(c, p) },
	})
}

// Keys returns the declared keys in declaration order.
func (in *Initializer) Keys() []string {
	out := make([]string, 0, len(in.fields))
	for _, f := range in.fields {
		out = append(out, f.key)
	}
	return out
}

// Required returns the required keys in declaration order.
func (in *Initializer) Required() []string {
	var out []string
	for _, f := range in.fields {
		if f.required {
			out = append(out, f.key)
		}
	}
	return out
}

// Len returns the number of declared fields.
func (in *Initializer) Len() int { return len(in.fields) }

// Run binds obj onto the declared slots. Every field is visited and all
// missing or malformed fields are reported together, unless the context
// requests fail-fast. Keys in obj that nothing declared are ignored.
func (in *Initializer) Run(ctx context.Context, obj map[string]any) error {
	failFast := IsFailFast(ctx)
	var iss Issues
	for _, f := range in.fields {
		v, ok := obj[f.key]
		switch {
		case !ok && f.required:
			iss = AppendIssues(iss, Issue{
				Path:    pointerToken(f.key),
				Code:    CodeRequired,
				Message: i18n.T(CodeRequired, map[string]string{"key": f.key}),
				Hint:    "expected " + f.kind,
				Params:  map[string]any{"key": f.key, "expected": f.kind},
			})
		case !ok:
			f.absent()
			continue
		default:
			err := f.assign(ctx, v)
			if err == nil {
				continue
			}
			iss = AppendIssues(iss, rebase(pointerToken(f.key), err)...)
		}
		if failFast {
			break
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// writeFields emits every present field as a key/value pair into the open
// object scope of w. The fields of a composed group are written through
// PartialWrite on that group, at the position the group was composed.
func (in *Initializer) writeFields(w *Writer) error {
	next := 0
	for _, g := range in.groups {
		if err := in.writeRange(w, next, g.start); err != nil {
			return err
		}
		if err := PartialWrite(w, g.binding); err != nil {
			return err
		}
		next = g.end
	}
	return in.writeRange(w, next, len(in.fields))
}

func (in *Initializer) writeRange(w *Writer, from, to int) error {
	for _, f := range in.fields[from:to] {
		if !f.present() {
			continue
		}
		if err := w.Key(f.key); err != nil {
			return err
		}
		if err := f.write(w); err != nil {
			return err
		}
	}
	return nil
}

// schema projects the declared fields onto an object schema.
func (in *Initializer) schema(p *Projection) *js.Schema {
	s := &js.Schema{Type: "object", Properties: make(map[string]*js.Schema, len(in.fields))}
	for _, f := range in.fields {
		s.Properties[f.key] = f.schema(p)
		if f.required {
			s.Required = append(s.Required, f.key)
		}
	}
	return s
}
