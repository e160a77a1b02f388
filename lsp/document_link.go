package lsp

import (
	wirebind "github.com/reoring/wirebind"
)

// DocumentLinkClientCapabilities are the client capabilities of the
// textDocument/documentLink request.
type DocumentLinkClientCapabilities struct {
	// Whether document link supports dynamic registration.
	DynamicRegistration wirebind.Optional[bool]
	// Whether the client supports the tooltip property on DocumentLink.
	TooltipSupport wirebind.Optional[bool]
}

func (c *DocumentLinkClientCapabilities) FillInitializer(in *wirebind.Initializer) {
	wirebind.OptionalField(in, "dynamicRegistration", &c.DynamicRegistration, wirebind.Boolean())
	wirebind.OptionalField(in, "tooltipSupport", &c.TooltipSupport, wirebind.Boolean())
}

// DocumentLinkOptions is the document link server capability.
type DocumentLinkOptions struct {
	Progress WorkDoneProgressOptions
	// Whether the server resolves links lazily.
	ResolveProvider wirebind.Optional[bool]
}

func (o *DocumentLinkOptions) FillInitializer(in *wirebind.Initializer) {
	wirebind.Compose(in, &o.Progress)
	wirebind.OptionalField(in, "resolveProvider", &o.ResolveProvider, wirebind.Boolean())
}

// DocumentLinkRegistrationOptions combines the text document registration
// group with the document link options in one object.
type DocumentLinkRegistrationOptions struct {
	Registration TextDocumentRegistrationOptions
	Link         DocumentLinkOptions
}

func (o *DocumentLinkRegistrationOptions) FillInitializer(in *wirebind.Initializer) {
	wirebind.Compose(in, &o.Registration, &o.Link)
}

// PartialWrite writes the link options ahead of the selector.
func (o *DocumentLinkRegistrationOptions) PartialWrite(w *wirebind.Writer) error {
	return wirebind.WriteGroups(w, &o.Link, &o.Registration)
}

// DocumentLinkParams are the parameters of the textDocument/documentLink
// request.
type DocumentLinkParams struct {
	WorkDone      WorkDoneProgressParams
	PartialResult PartialResultParams
	// The document to provide document links for.
	TextDocument TextDocumentIdentifier
}

func (p *DocumentLinkParams) FillInitializer(in *wirebind.Initializer) {
	wirebind.Compose(in, &p.WorkDone, &p.PartialResult)
	wirebind.RequiredField(in, "textDocument", &p.TextDocument, wirebind.Object[TextDocumentIdentifier]())
}

// DocumentLink is a range in a text document that links to an internal or
// external resource.
type DocumentLink struct {
	Range Range
	// If missing a resolve request is sent later.
	Target  wirebind.Optional[DocumentURI]
	Tooltip wirebind.Optional[string]
	// Preserved between a documentLink and a documentLink/resolve request.
	Data wirebind.Optional[wirebind.Any]
}

func (l *DocumentLink) FillInitializer(in *wirebind.Initializer) {
	wirebind.RequiredField(in, "range", &l.Range, wirebind.Object[Range]())
	wirebind.OptionalField(in, "target", &l.Target, wirebind.StringOf[DocumentURI]())
	wirebind.OptionalField(in, "tooltip", &l.Tooltip, wirebind.String())
	wirebind.OptionalField(in, "data", &l.Data, wirebind.AnyValue())
}
