package engine

import (
	"errors"
	"io"
)

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// DetectDuplicateKeys drains src and reports duplicated object keys with their
// JSON Pointer. With DupError it stops at the first duplicate.
// maxIssues < 0 means unlimited; 0 disables reporting; >0 caps the result and
// appends a truncated marker.
func DetectDuplicateKeys(src TokenSource, onDup DuplicateStrictness, maxIssues int) ([]SimpleIssue, error) {
	if onDup == DupIgnore {
		return nil, nil
	}
	var issues []SimpleIssue
	full := false
	sink := func(si SimpleIssue) {
		if maxIssues == 0 || full {
			return
		}
		issues = append(issues, si)
		if maxIssues > 0 && len(issues) >= maxIssues {
			issues = append(issues, SimpleIssue{Code: CodeTruncated, Path: "/", Message: "max issues reached"})
			full = true
		}
	}
	// Warn mode keeps reading after a duplicate; error mode stops on it.
	enforced := WrapWithEnforcement(src, EnforceOptions{OnDuplicate: DupWarn, IssueSink: sink})
	for {
		_, err := enforced.NextToken()
		if errors.Is(err, io.EOF) {
			return issues, nil
		}
		if err != nil {
			return issues, err
		}
		if onDup == DupError && len(issues) > 0 {
			return issues, nil
		}
	}
}
