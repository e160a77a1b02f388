// Package lsp is a slice of the Language Server Protocol message catalog
// declared with wirebind: document links, progress parameters and the
// JSON-RPC response message.
package lsp

import (
	wirebind "github.com/reoring/wirebind"
)

// DocumentURI is a URI string naming a text document.
type DocumentURI string

// Position is a zero-based line and UTF-16 character offset.
type Position struct {
	Line      int64
	Character int64
}

func (p *Position) FillInitializer(in *wirebind.Initializer) {
	wirebind.RequiredField(in, "line", &p.Line, wirebind.IntegerValue())
	wirebind.RequiredField(in, "character", &p.Character, wirebind.IntegerValue())
}

// Range is a half-open span between two positions.
type Range struct {
	Start Position
	End   Position
}

func (r *Range) FillInitializer(in *wirebind.Initializer) {
	wirebind.RequiredField(in, "start", &r.Start, wirebind.Object[Position]())
	wirebind.RequiredField(in, "end", &r.End, wirebind.Object[Position]())
}

// IsValid rejects ranges whose end precedes their start.
func (r *Range) IsValid() error {
	if r.End.Line < r.Start.Line || (r.End.Line == r.Start.Line && r.End.Character < r.Start.Character) {
		return errRangeOrder
	}
	return nil
}

// TextDocumentIdentifier names a text document by URI.
type TextDocumentIdentifier struct {
	URI DocumentURI
}

func (t *TextDocumentIdentifier) FillInitializer(in *wirebind.Initializer) {
	wirebind.RequiredField(in, "uri", &t.URI, wirebind.StringOf[DocumentURI]())
}
