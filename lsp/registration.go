package lsp

import (
	wirebind "github.com/reoring/wirebind"
)

// DocumentFilter selects documents by language, scheme or glob pattern.
type DocumentFilter struct {
	Language wirebind.Optional[string]
	Scheme   wirebind.Optional[string]
	Pattern  wirebind.Optional[string]
}

func (f *DocumentFilter) FillInitializer(in *wirebind.Initializer) {
	wirebind.OptionalField(in, "language", &f.Language, wirebind.String())
	wirebind.OptionalField(in, "scheme", &f.Scheme, wirebind.String())
	wirebind.OptionalField(in, "pattern", &f.Pattern, wirebind.String())
}

// IsValid requires at least one criterion.
func (f *DocumentFilter) IsValid() error {
	if !f.Language.IsSet() && !f.Scheme.IsSet() && !f.Pattern.IsSet() {
		return errEmptyFilter
	}
	return nil
}

// DocumentSelector is a list of filters; a document matches any of them.
type DocumentSelector = []DocumentFilter

// SelectorOrNull is a document selector, or null to use the client's
// document selector.
type SelectorOrNull = wirebind.OneOf2[DocumentSelector, wirebind.Null]

// TextDocumentRegistrationOptions is the capability group of registrations
// scoped to a set of documents.
type TextDocumentRegistrationOptions struct {
	DocumentSelector SelectorOrNull
}

func (o *TextDocumentRegistrationOptions) FillInitializer(in *wirebind.Initializer) {
	wirebind.RequiredField(in, "documentSelector", &o.DocumentSelector,
		wirebind.Either(wirebind.ArrayOf(wirebind.Object[DocumentFilter]()), wirebind.NullValue()))
}
