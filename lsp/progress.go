package lsp

import (
	wirebind "github.com/reoring/wirebind"
)

// ProgressToken is an integer or a string; integers are tried first.
type ProgressToken = wirebind.OneOf2[int64, string]

// IntegerToken returns an integer progress token.
func IntegerToken(i int64) ProgressToken { return wirebind.First2[int64, string](i) }

// StringToken returns a string progress token.
func StringToken(s string) ProgressToken { return wirebind.Second2[int64](s) }

func progressToken() wirebind.Converter[ProgressToken] {
	return wirebind.Either(wirebind.IntegerValue(), wirebind.String())
}

// WorkDoneProgressParams is the capability group of requests that accept a
// work done progress token.
type WorkDoneProgressParams struct {
	WorkDoneToken wirebind.Optional[ProgressToken]
}

func (p *WorkDoneProgressParams) FillInitializer(in *wirebind.Initializer) {
	wirebind.OptionalField(in, "workDoneToken", &p.WorkDoneToken, progressToken())
}

// PartialResultParams is the capability group of requests that stream
// partial results.
type PartialResultParams struct {
	PartialResultToken wirebind.Optional[ProgressToken]
}

func (p *PartialResultParams) FillInitializer(in *wirebind.Initializer) {
	wirebind.OptionalField(in, "partialResultToken", &p.PartialResultToken, progressToken())
}

// WorkDoneProgressOptions is the server capability group announcing work
// done progress support.
type WorkDoneProgressOptions struct {
	WorkDoneProgress wirebind.Optional[bool]
}

func (o *WorkDoneProgressOptions) FillInitializer(in *wirebind.Initializer) {
	wirebind.OptionalField(in, "workDoneProgress", &o.WorkDoneProgress, wirebind.Boolean())
}
