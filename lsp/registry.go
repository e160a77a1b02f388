package lsp

import (
	"fmt"
	"sort"

	wirebind "github.com/reoring/wirebind"
)

// Factory returns a new zero structure ready to be parsed into.
type Factory func() wirebind.Binding

// Registry maps message type names to factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry { return &Registry{factories: map[string]Factory{}} }

// Register adds f under name. The structure's field set is checked once here,
// so colliding capability groups fail at registration rather than on the
// first message that happens to exercise them.
func (r *Registry) Register(name string, f Factory) error {
	if _, dup := r.factories[name]; dup {
		return fmt.Errorf("lsp: type %q already registered", name)
	}
	if err := wirebind.CheckSchema(f()); err != nil {
		return fmt.Errorf("lsp: type %q: %w", name, err)
	}
	r.factories[name] = f
	return nil
}

// New returns a fresh structure of the named type.
func (r *Registry) New(name string) (wirebind.Binding, bool) {
	f, ok := r.factories[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// Names lists the registered type names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Catalog holds every structure of this package.
var Catalog = mustCatalog()

func mustCatalog() *Registry {
	r := NewRegistry()
	for name, f := range map[string]Factory{
		"Position":                        func() wirebind.Binding { return &Position{} },
		"Range":                           func() wirebind.Binding { return &Range{} },
		"TextDocumentIdentifier":          func() wirebind.Binding { return &TextDocumentIdentifier{} },
		"WorkDoneProgressParams":          func() wirebind.Binding { return &WorkDoneProgressParams{} },
		"PartialResultParams":             func() wirebind.Binding { return &PartialResultParams{} },
		"WorkDoneProgressOptions":         func() wirebind.Binding { return &WorkDoneProgressOptions{} },
		"DocumentFilter":                  func() wirebind.Binding { return &DocumentFilter{} },
		"TextDocumentRegistrationOptions": func() wirebind.Binding { return &TextDocumentRegistrationOptions{} },
		"DocumentLinkClientCapabilities":  func() wirebind.Binding { return &DocumentLinkClientCapabilities{} },
		"DocumentLinkOptions":             func() wirebind.Binding { return &DocumentLinkOptions{} },
		"DocumentLinkRegistrationOptions": func() wirebind.Binding { return &DocumentLinkRegistrationOptions{} },
		"DocumentLinkParams":              func() wirebind.Binding { return &DocumentLinkParams{} },
		"DocumentLink":                    func() wirebind.Binding { return &DocumentLink{} },
		"ResponseError":                   func() wirebind.Binding { return &ResponseError{} },
		"ResponseMessage":                 func() wirebind.Binding { return &ResponseMessage{} },
	} {
		if err := r.Register(name, f); err != nil {
			panic(err)
		}
	}
	return r
}
