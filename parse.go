package wirebind

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"

	eng "github.com/reoring/wirebind/internal/engine"
)

// ParseFrom is the primary entry point for raw input. It drains the Source
// into a generic value under the enforcement options and binds the result
// onto b.
func ParseFrom(ctx context.Context, b Binding, src Source, opts ...ParseOpt) error {
	if b == nil {
		return singleIssue(CodeParseError, "nil binding")
	}
	opt := lastOpt(opts)
	// propagate fail-fast intent via context for converters
	if opt.FailFast {
		ctx = WithFailFast(ctx, true)
	}
	v, err := DecodeValue(ctx, src, opt)
	if err != nil {
		return err
	}
	return Parse(ctx, v, b)
}

// StreamParse binds input read from r. When MaxBytes is set it enforces the
// size cap up front, otherwise it delegates directly to ParseFrom via the
// current JSON driver.
func StreamParse(ctx context.Context, b Binding, r io.Reader, opts ...ParseOpt) error {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 {
		lr := io.LimitReader(r, opt.MaxBytes+1)
		data, err := io.ReadAll(lr)
		if err != nil {
			return singleIssue(CodeParseError, err.Error())
		}
		if int64(len(data)) > opt.MaxBytes {
			return singleIssue(CodeTruncated, "max bytes exceeded")
		}
		return ParseFrom(ctx, b, JSONBytes(data), opts...)
	}
	return ParseFrom(ctx, b, JSONReader(r), opts...)
}

// DecodeValue reads exactly one JSON document from src into a generic value
// (map[string]any, []any, string, json.Number or float64, bool, nil).
// Duplicate keys found in Warn mode are logged on the context logger.
func DecodeValue(ctx context.Context, src Source, opts ...ParseOpt) (any, error) {
	opt := lastOpt(opts)
	log := zerolog.Ctx(ctx)
	sink := func(si eng.SimpleIssue) {
		if si.Code == eng.CodeDuplicateKey && opt.Strictness.OnDuplicateKey == Warn {
			log.Warn().Str("path", si.Path).Str("code", si.Code).Msg(si.Message)
		}
	}
	ts := engineTokenSource(src)
	eo := enforceOptions(opt, sink)
	if eng.NeedsEnforcement(eo) {
		ts = eng.WrapWithEnforcement(ts, eo)
	}
	conv := eng.JSONNumber
	if src.NumberMode() == NumberFloat64 {
		conv = eng.Float64
	}
	v, err := eng.DecodeTree(ts, conv)
	if err != nil {
		return nil, sourceIssues(err)
	}
	return v, nil
}

func lastOpt(opts []ParseOpt) ParseOpt {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	return opt
}

// sourceIssues maps tokenizer and enforcement failures onto Issues.
func sourceIssues(err error) Issues {
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: normalizePath(ie.Path), Message: ie.Message, Cause: err})
	}
	return AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err})
}

func singleIssue(code, msg string) Issues {
	return AppendIssues(nil, Issue{Path: "/", Code: code, Message: msg})
}
