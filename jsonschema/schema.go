package jsonschema

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	// Ref points at the root ("#") or at an entry of Defs.
	Ref  string             `json:"$ref,omitempty"`
	Defs map[string]*Schema `json:"$defs,omitempty"`

	// Core
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Description string `json:"description,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Union alternatives in try order; the first match wins.
	AnyOf []*Schema `json:"anyOf,omitempty"`
}
