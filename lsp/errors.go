package lsp

import "errors"

var (
	errRangeOrder         = errors.New("range end precedes start")
	errResultAndError     = errors.New("response carries both result and error")
	errNoResultOrError    = errors.New("response carries neither result nor error")
	errUnsupportedVersion = errors.New(`jsonrpc must be "2.0"`)
	errEmptyFilter        = errors.New("document filter has no criteria")
)
