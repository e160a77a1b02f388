package wirebind

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes
const (
	CodeRequired        = "required"
	CodeInvalidType     = "invalid_type"
	CodeNoAlternative   = "no_alternative"
	CodeSemanticInvalid = "semantic_invalid"
	CodeOverflow        = "overflow"
	CodeInvalidFormat   = "invalid_format"
	CodeDuplicateKey    = "duplicate_key"
	CodeParseError      = "parse_error"
	CodeTruncated       = "truncated"
)

// Issue represents a single binding failure.
type Issue struct {
	Path    string // JSON Pointer (for example: /textDocument/uri).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: expected kind, remediation, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"expected":"integer","actual":"string"})
	// for i18n and diagnostics.
	Params map[string]any
}

// Issues is a collection of binding failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. required at /id
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Codes returns the code of every issue in order.
func (iss Issues) Codes() []string {
	out := make([]string, 0, len(iss))
	for _, it := range iss {
		out = append(out, it.Code)
	}
	return out
}

// Paths returns the JSON Pointer of every issue in order.
func (iss Issues) Paths() []string {
	out := make([]string, 0, len(iss))
	for _, it := range iss {
		out = append(out, it.Path)
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// SchemaDefinitionError reports a structure whose declared fields collide.
// It is raised as a panic value by Initializer: a collision is a defect in the
// schema, never in the input.
type SchemaDefinitionError struct {
	Key string
}

func (e *SchemaDefinitionError) Error() string {
	return fmt.Sprintf("wirebind: key %q declared more than once", e.Key)
}

// toIssues converts an error into Issues, wrapping non-Issues with CodeParseError.
func toIssues(path string, err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	return Issues{Issue{Path: normalizePath(path), Code: CodeParseError, Message: err.Error(), Cause: err}}
}

// rebase prefixes every issue path in err with base.
func rebase(base string, err error) Issues {
	child := toIssues("/", err)
	out := make(Issues, 0, len(child))
	for _, it := range child {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		it.Path = p
		out = append(out, it)
	}
	return out
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// pointerToken escapes a key for use as a JSON Pointer segment (RFC 6901).
func pointerToken(key string) string { return "/" + jsonPointerEscaper.Replace(key) }
