package wirebind

import (
	"reflect"
	"strconv"

	js "github.com/reoring/wirebind/jsonschema"
)

// SchemaProjector is implemented by converters that hold other converters.
// Projecting through the shared Projection lets a structure that refers to
// itself, directly or through other structures, end in a $ref instead of
// expanding forever.
type SchemaProjector interface {
	ProjectSchema(p *Projection) *js.Schema
}

// ProjectSchema returns c's schema within p, falling back to c.JSONSchema
// for converters that hold no nested structure.
func ProjectSchema[T any](c Converter[T], p *Projection) *js.Schema {
	if sp, ok := c.(SchemaProjector); ok && p != nil {
		return sp.ProjectSchema(p)
	}
	return c.JSONSchema()
}

type pendingDef struct {
	name string
	typ  reflect.Type
	fill func(*Initializer)
}

// Projection tracks the structures being expanded during one schema
// projection. Structures are inlined; re-entering one that is still being
// expanded yields a $ref to the root or to a $defs entry.
type Projection struct {
	root    reflect.Type
	active  map[reflect.Type]bool
	names   map[reflect.Type]string
	taken   map[string]bool
	defs    map[string]*js.Schema
	pending []pendingDef
}

func newProjection(root reflect.Type) *Projection {
	return &Projection{
		root:   root,
		active: map[reflect.Type]bool{},
		names:  map[reflect.Type]string{},
		taken:  map[string]bool{},
		defs:   map[string]*js.Schema{},
	}
}

// SchemaOf projects c as a standalone document. Structures that recur
// inside themselves are collected under $defs of the returned schema.
func SchemaOf[T any](c Converter[T]) *js.Schema {
	return project(nil, func(p *Projection) *js.Schema { return ProjectSchema(c, p) })
}

// projectRoot projects the structure typ as a whole document.
func projectRoot(typ reflect.Type, fill func(*Initializer)) *js.Schema {
	return project(typ, func(p *Projection) *js.Schema { return p.object(typ, fill) })
}

func project(root reflect.Type, build func(p *Projection) *js.Schema) *js.Schema {
	p := newProjection(root)
	s := build(p)
	for len(p.pending) > 0 {
		d := p.pending[0]
		p.pending = p.pending[1:]
		p.active = map[reflect.Type]bool{d.typ: true}
		if root != nil {
			p.active[root] = true
		}
		in := NewInitializer()
		d.fill(in)
		p.defs[d.name] = in.schema(p)
	}
	if len(p.defs) > 0 {
		s.Defs = p.defs
	}
	return s
}

func (p *Projection) object(typ reflect.Type, fill func(*Initializer)) *js.Schema {
	if p.active[typ] {
		return p.ref(typ, fill)
	}
	p.active[typ] = true
	defer delete(p.active, typ)
	in := NewInitializer()
	fill(in)
	return in.schema(p)
}

func (p *Projection) ref(typ reflect.Type, fill func(*Initializer)) *js.Schema {
	if p.root != nil && typ == p.root {
		return &js.Schema{Ref: "#"}
	}
	name, ok := p.names[typ]
	if !ok {
		name = p.nameFor(typ)
		p.names[typ] = name
		p.pending = append(p.pending, pendingDef{name: name, typ: typ, fill: fill})
	}
	return &js.Schema{Ref: "#/$defs/" + name}
}

func (p *Projection) nameFor(typ reflect.Type) string {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	base := typ.Name()
	if base == "" {
		base = "object"
	}
	name := base
	for i := 2; p.taken[name]; i++ {
		name = base + "_" + strconv.Itoa(i)
	}
	p.taken[name] = true
	return name
}
