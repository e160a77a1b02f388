package wirebind

// NumberMode dictates how numbers are represented in the generic value tree.
type NumberMode int

const (
	NumberJSONNumber NumberMode = iota // Preserve json.Number (original text).
	NumberFloat64                      // Decode as float64 (with potential precision loss).
)

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Warn or Error (duplicate JSON keys).
}

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ParseOpt bundles parsing options.
type ParseOpt struct {
	Strictness Strictness
	MaxDepth   int
	MaxBytes   int64
	// FailFast stops at the first field issue instead of reporting all of them.
	FailFast bool
}
