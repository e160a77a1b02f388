package wirebind

import (
	"context"
	"fmt"
	"reflect"

	"github.com/rs/zerolog"

	"github.com/reoring/wirebind/i18n"
	js "github.com/reoring/wirebind/jsonschema"
)

// Binding is implemented by every structure that maps onto a JSON object.
// FillInitializer declares the structure's fields (and those of the groups it
// composes) and must not touch anything but in.
type Binding interface {
	FillInitializer(in *Initializer)
}

// Validator adds cross-field checks run after every field bound successfully.
// A nil error means valid.
type Validator interface {
	IsValid() error
}

// PartialWriter replaces the default field emission of Write. It writes
// key/value pairs into an object scope that is already open.
type PartialWriter interface {
	PartialWrite(w *Writer) error
}

// ---- Parse-time context options ----

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
)

// WithFailFast returns a child context that marks fail-fast parsing behavior.
// ParseFrom sets it from ParseOpt; converters and Initializer.Run consume it.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current parse should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}

// ---- template algorithms ----

// Parse binds the generic JSON value v onto b: it requires an object, runs
// the declared fields and then b's Validator, if any. Field issues are
// reported all together; validation runs only when every field bound.
func Parse(ctx context.Context, v any, b Binding) error {
	log := zerolog.Ctx(ctx)
	obj, ok := v.(map[string]any)
	if !ok {
		iss := typeMismatch(string(KindObject), v)
		log.Debug().Str("actual", string(KindOf(v))).Msg("wirebind: input is not an object")
		return iss
	}
	in := NewInitializer()
	b.FillInitializer(in)
	if err := in.Run(ctx, obj); err != nil {
		iss, _ := AsIssues(err)
		log.Debug().Int("fields", in.Len()).Int("issues", len(iss)).Strs("codes", iss.Codes()).Msg("wirebind: bind failed")
		return err
	}
	if err := validateComposed(b, in); err != nil {
		log.Debug().Int("fields", in.Len()).Err(err).Msg("wirebind: validation failed")
		return err
	}
	log.Debug().Int("fields", in.Len()).Int("present", countPresent(in, obj)).Msg("wirebind: bound")
	return nil
}

// validateComposed runs the Validator of every composed group, innermost
// first, then b's own. Issues from all of them are reported together.
func validateComposed(b Binding, in *Initializer) error {
	var iss Issues
	for _, g := range in.groups {
		sub := NewInitializer()
		g.binding.FillInitializer(sub)
		if err := validateComposed(g.binding, sub); err != nil {
			gi, _ := AsIssues(err)
			iss = AppendIssues(iss, gi...)
		}
	}
	if err := validate(b); err != nil {
		bi, _ := AsIssues(err)
		iss = AppendIssues(iss, bi...)
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func validate(b Binding) error {
	vb, ok := b.(Validator)
	if !ok {
		return nil
	}
	err := vb.IsValid()
	if err == nil {
		return nil
	}
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	return Issues{Issue{
		Path:    "/",
		Code:    CodeSemanticInvalid,
		Message: i18n.T(CodeSemanticInvalid, map[string]string{"reason": err.Error()}),
		Cause:   err,
		Params:  map[string]any{"reason": err.Error()},
	}}
}

func countPresent(in *Initializer, obj map[string]any) int {
	n := 0
	for _, f := range in.fields {
		if _, ok := obj[f.key]; ok {
			n++
		}
	}
	return n
}

// Write emits b as one JSON object. The object scope is closed on every
// path, including when a field fails to write.
func Write(w *Writer, b Binding) error {
	return w.Object(func() error { return PartialWrite(w, b) })
}

// PartialWrite emits b's key/value pairs into the object scope that is
// already open on w, using b's PartialWriter when it has one.
func PartialWrite(w *Writer, b Binding) error {
	if pw, ok := b.(PartialWriter); ok {
		return pw.PartialWrite(w)
	}
	return WriteFields(w, b)
}

// WriteFields is the default PartialWrite: every declared field that is
// present is written in declaration order; absent optionals are skipped.
func WriteFields(w *Writer, b Binding) error {
	in := NewInitializer()
	b.FillInitializer(in)
	return in.writeFields(w)
}

// ---- composition ----

// Compose forwards FillInitializer to every group in order, so a structure
// holding capability groups as fields declares their keys alongside its own.
// The groups are remembered: Parse runs their Validator and the default
// write goes through their PartialWriter.
func Compose(in *Initializer, groups ...Binding) {
	for _, g := range groups {
		start := len(in.fields)
		in.depth++
		g.FillInitializer(in)
		in.depth--
		if in.depth == 0 {
			in.groups = append(in.groups, group{binding: g, start: start, end: len(in.fields)})
		}
	}
}

// WriteGroups forwards PartialWrite to every group in order. Use it from a
// PartialWrite override that also writes fields of its own.
func WriteGroups(w *Writer, groups ...Binding) error {
	for _, g := range groups {
		if err := PartialWrite(w, g); err != nil {
			return err
		}
	}
	return nil
}

// CheckSchema builds b's field set once and reports a key declared more than
// once as *SchemaDefinitionError.
func CheckSchema(b Binding) (err error) {
	defer func() {
		if r := recover(); r != nil {
			sde, ok := r.(*SchemaDefinitionError)
			if !ok {
				panic(r)
			}
			err = sde
		}
	}()
	b.FillInitializer(NewInitializer())
	return nil
}

// MustSchema panics when b's field set is malformed. Call it from a package
// var or init so colliding groups fail at program start.
func MustSchema(b Binding) {
	if err := CheckSchema(b); err != nil {
		panic(err)
	}
}

// JSONSchema projects b's declared fields onto a JSON Schema object. A
// structure reached again while it is still being expanded is written as a
// $ref ("#" for b itself, a $defs entry otherwise).
func JSONSchema(b Binding) *js.Schema {
	return projectRoot(reflect.TypeOf(b), b.FillInitializer)
}

// ---- byte-level conveniences ----

// Marshal writes b as compact JSON.
func Marshal(b Binding) ([]byte, error) {
	w := NewWriter()
	if err := Write(w, b); err != nil {
		return nil, fmt.Errorf("wirebind: marshal: %w", err)
	}
	return w.Bytes(), nil
}

// Unmarshal parses data with the current JSON driver and binds it onto b.
func Unmarshal(data []byte, b Binding, opts ...ParseOpt) error {
	return ParseFrom(context.Background(), b, JSONBytes(data), opts...)
}
