package lsp

import (
	wirebind "github.com/reoring/wirebind"
)

// JSONRPCVersion is the only protocol version accepted.
const JSONRPCVersion = "2.0"

// Predefined JSON-RPC error codes.
const (
	ParseError     int64 = -32700
	InvalidRequest int64 = -32600
	MethodNotFound int64 = -32601
	InvalidParams  int64 = -32602
	InternalError  int64 = -32603
)

// ID identifies a request: an integer, a string, or null when the request
// id could not be determined.
type ID = wirebind.OneOf3[int64, string, wirebind.Null]

// IntegerID returns an integer request id.
func IntegerID(i int64) ID { return wirebind.First3[int64, string, wirebind.Null](i) }

// StringID returns a string request id.
func StringID(s string) ID { return wirebind.Second3[int64, string, wirebind.Null](s) }

// NullID returns the null request id.
func NullID() ID { return wirebind.Third3[int64, string](wirebind.Null{}) }

// ResponseError is the error object of a failed request.
type ResponseError struct {
	Code    int64
	Message string
	Data    wirebind.Optional[wirebind.Any]
}

func (e *ResponseError) FillInitializer(in *wirebind.Initializer) {
	wirebind.RequiredField(in, "code", &e.Code, wirebind.IntegerValue())
	wirebind.RequiredField(in, "message", &e.Message, wirebind.String())
	wirebind.OptionalField(in, "data", &e.Data, wirebind.AnyValue())
}

// ResponseMessage answers a request with either a result or an error.
type ResponseMessage struct {
	JSONRPC string
	ID      ID
	// Result may hold null; that is still a result.
	Result wirebind.Optional[wirebind.Any]
	Error  wirebind.Optional[ResponseError]
}

// NewResult builds a successful response.
func NewResult(id ID, result wirebind.Any) *ResponseMessage {
	return &ResponseMessage{JSONRPC: JSONRPCVersion, ID: id, Result: wirebind.Some(result)}
}

// NewError builds a failed response.
func NewError(id ID, code int64, message string) *ResponseMessage {
	return &ResponseMessage{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Error:   wirebind.Some(ResponseError{Code: code, Message: message}),
	}
}

func (m *ResponseMessage) FillInitializer(in *wirebind.Initializer) {
	wirebind.RequiredField(in, "jsonrpc", &m.JSONRPC, wirebind.String())
	wirebind.RequiredField(in, "id", &m.ID,
		wirebind.Either3(wirebind.IntegerValue(), wirebind.String(), wirebind.NullValue()))
	wirebind.OptionalField(in, "result", &m.Result, wirebind.AnyValue())
	wirebind.OptionalField(in, "error", &m.Error, wirebind.Object[ResponseError]())
}

// IsValid requires the 2.0 protocol version and exactly one of result and
// error.
func (m *ResponseMessage) IsValid() error {
	if m.JSONRPC != JSONRPCVersion {
		return errUnsupportedVersion
	}
	switch {
	case m.Result.IsSet() && m.Error.IsSet():
		return errResultAndError
	case !m.Result.IsSet() && !m.Error.IsSet():
		return errNoResultOrError
	}
	return nil
}
