package wirebind

import (
	"bytes"
	"io"
	"sync"

	eng "github.com/reoring/wirebind/internal/engine"
	gojsonsrc "github.com/reoring/wirebind/source/gojson"
	jsonsrc "github.com/reoring/wirebind/source/json"
)

// TokenKind enumerates JSON token kinds.
type TokenKind int

const (
	TokenBeginObject TokenKind = iota
	TokenEndObject
	TokenBeginArray
	TokenEndArray
	TokenKey
	TokenString
	TokenNumber
	TokenBool
	TokenNull
)

// Token describes a token in the input stream. Offset records the byte position
// when known (-1 otherwise).
type Token struct {
	Kind   TokenKind
	String string // Stored for key/string tokens.
	Number string // Stored as text; NumberMode controls downstream interpretation.
	Bool   bool
	Offset int64
}

// Source abstracts over raw JSON input. The binding core never sees a Source:
// ParseFrom drains it into a generic value first.
type Source interface {
	NextToken() (Token, error)
	NumberMode() NumberMode
	Location() int64 // byte offset; -1 if unknown
}

// JSONDriver converts JSON input into a Source.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = GoJSONDriver()
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the go-json backed driver.
func UseDefaultJSONDriver() { SetJSONDriver(GoJSONDriver()) }

// CurrentJSONDriver returns the driver used by JSONBytes and JSONReader.
func CurrentJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// JSONDriverByName resolves "go-json" or "encoding/json".
func JSONDriverByName(name string) (JSONDriver, bool) {
	switch name {
	case gojsonsrc.Name, "":
		return GoJSONDriver(), true
	case jsonsrc.Name:
		return StdJSONDriver(), true
	default:
		return nil, false
	}
}

type engineDriver struct {
	name      string
	newReader func(io.Reader) eng.TokenSource
}

func (d engineDriver) NewReader(r io.Reader) Source {
	return SourceFromEngine(d.newReader(r), NumberJSONNumber)
}

func (d engineDriver) NewBytes(b []byte) Source {
	return SourceFromEngine(d.newReader(bytes.NewReader(b)), NumberJSONNumber)
}

func (d engineDriver) Name() string { return d.name }

// GoJSONDriver tokenizes with github.com/goccy/go-json.
func GoJSONDriver() JSONDriver {
	return engineDriver{name: gojsonsrc.Name, newReader: gojsonsrc.NewReader}
}

// StdJSONDriver tokenizes with encoding/json and reports byte offsets.
func StdJSONDriver() JSONDriver {
	return engineDriver{name: jsonsrc.Name, newReader: jsonsrc.NewReader}
}

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return CurrentJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return CurrentJSONDriver().NewBytes(b) }

// WithNumberMode wraps a Source and overrides its NumberMode.
func WithNumberMode(s Source, m NumberMode) Source { return &overrideNumberMode{inner: s, mode: m} }

type overrideNumberMode struct {
	inner Source
	mode  NumberMode
}

func (o *overrideNumberMode) NextToken() (Token, error) { return o.inner.NextToken() }
func (o *overrideNumberMode) NumberMode() NumberMode    { return o.mode }
func (o *overrideNumberMode) Location() int64           { return o.inner.Location() }

// SourceFromEngine wraps an engine.TokenSource as a Source.
func SourceFromEngine(inner eng.TokenSource, mode NumberMode) Source {
	return &engineSourceAdapter{inner: inner, numMode: mode}
}

type engineSourceAdapter struct {
	inner   eng.TokenSource
	numMode NumberMode
}

func (s *engineSourceAdapter) NextToken() (Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: TokenKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}
func (s *engineSourceAdapter) NumberMode() NumberMode { return s.numMode }
func (s *engineSourceAdapter) Location() int64        { return s.inner.Location() }

// tokenSourceAdapter exposes a public Source as an engine.TokenSource.
type tokenSourceAdapter struct{ inner Source }

func (a *tokenSourceAdapter) NextToken() (eng.Token, error) {
	t, err := a.inner.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	return eng.Token{Kind: eng.Kind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}

func (a *tokenSourceAdapter) Location() int64 { return a.inner.Location() }

func engineTokenSource(s Source) eng.TokenSource {
	if ea, ok := s.(*engineSourceAdapter); ok {
		return ea.inner
	}
	return &tokenSourceAdapter{inner: s}
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func enforceOptions(opt ParseOpt, sink func(eng.SimpleIssue)) eng.EnforceOptions {
	return eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink:   sink,
		FailFast:    opt.FailFast,
	}
}
