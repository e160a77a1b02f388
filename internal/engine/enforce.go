package engine

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// Issue codes produced by the enforcement layer. They mirror the public codes
// of the root package.
const (
	CodeDuplicateKey = "duplicate_key"
	CodeParseError   = "parse_error"
	CodeTruncated    = "truncated"
)

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	MaxBytes    int64
	// IssueSink optionally receives non-fatal issues (duplicate keys in warn mode).
	IssueSink func(SimpleIssue)
	// FailFast turns every issue into an error.
	FailFast bool
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
	pendingKey   string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

// WrapWithEnforcement returns a TokenSource that enforces duplicate key policy,
// maximum nesting depth, and maximum consumed bytes.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcingTokenSource{inner: inner, opt: opt}
}

// NeedsEnforcement reports whether opt enables any check at all.
func NeedsEnforcement(opt EnforceOptions) bool {
	return opt.OnDuplicate != DupIgnore || opt.MaxDepth > 0 || opt.MaxBytes > 0
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []frame
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) && len(e.stack) > 0 {
			return Token{}, io.ErrUnexpectedEOF
		}
		return Token{}, err
	}

	path := normalizeIssuePath(e.pathForToken(tok))

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		f := frame{kind: kindArray, path: e.containerPath(tok)}
		if tok.Kind == KindBeginObject {
			f.kind = kindObject
			f.keys = make(map[string]struct{})
			f.expectingKey = true
		}
		e.stack = append(e.stack, f)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, e.fatal(SimpleIssue{Code: CodeParseError, Path: path, Message: "max depth exceeded"})
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		e.valueDone()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				if _, dup := top.keys[tok.String]; dup && e.opt.OnDuplicate != DupIgnore {
					si := SimpleIssue{Code: CodeDuplicateKey, Path: path, Message: "key '" + tok.String + "' duplicated"}
					if e.opt.OnDuplicate == DupError || e.opt.FailFast {
						return Token{}, e.fatal(si)
					}
					if e.opt.IssueSink != nil {
						e.opt.IssueSink(si)
					}
				}
				top.keys[tok.String] = struct{}{}
				top.expectingKey = false
				top.pendingKey = tok.String
			}
		}
	default:
		e.valueDone()
	}

	if e.opt.MaxBytes > 0 {
		if off := e.Location(); off >= 0 && off > e.opt.MaxBytes {
			return Token{}, e.fatal(SimpleIssue{Code: CodeTruncated, Path: path, Message: "max bytes exceeded"})
		}
	}
	return tok, nil
}

func (e *enforcingTokenSource) fatal(si SimpleIssue) error {
	if e.opt.IssueSink != nil {
		e.opt.IssueSink(si)
	}
	return IssueError{si}
}

// valueDone marks the pending member of the enclosing object as consumed.
func (e *enforcingTokenSource) valueDone() {
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
			top.pendingKey = ""
		}
	}
}

// containerPath is the pointer of a container that is being opened.
func (e *enforcingTokenSource) containerPath(tok Token) string {
	if len(e.stack) == 0 {
		return ""
	}
	top := &e.stack[len(e.stack)-1]
	if top.kind == kindArray {
		return joinJSONPointer(top.path, strconv.Itoa(top.nextIndex-1))
	}
	return joinJSONPointer(top.path, top.pendingKey)
}

func (e *enforcingTokenSource) pathForToken(tok Token) string {
	if len(e.stack) == 0 {
		return ""
	}
	top := &e.stack[len(e.stack)-1]
	switch tok.Kind {
	case KindKey:
		return joinJSONPointer(top.path, tok.String)
	case KindEndObject, KindEndArray:
		return top.path
	default:
		if top.kind == kindArray {
			p := joinJSONPointer(top.path, strconv.Itoa(top.nextIndex))
			top.nextIndex++
			return p
		}
		if !top.expectingKey {
			return joinJSONPointer(top.path, top.pendingKey)
		}
		return top.path
	}
}

func normalizeIssuePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinJSONPointer(base, token string) string {
	return base + "/" + jsonPointerEscaper.Replace(token)
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }
