package wirebind

import (
	"bytes"
	"io"

	eng "github.com/reoring/wirebind/internal/engine"
)

// DetectJSONDuplicateKeysBytes reports duplicated object keys in data using
// the current JSON driver. maxIssues < 0 means unlimited.
func DetectJSONDuplicateKeysBytes(data []byte, strict Strictness, maxIssues int) (Issues, error) {
	return DetectJSONDuplicateKeysReader(bytes.NewReader(data), strict, maxIssues)
}

// DetectJSONDuplicateKeysReader is DetectJSONDuplicateKeysBytes over a reader.
func DetectJSONDuplicateKeysReader(r io.Reader, strict Strictness, maxIssues int) (Issues, error) {
	mode := toEngineDup(strict.OnDuplicateKey)
	si, err := eng.DetectDuplicateKeys(engineTokenSource(JSONReader(r)), mode, maxIssues)
	if err != nil {
		return fromEngineIssues(si), sourceIssues(err)
	}
	return fromEngineIssues(si), nil
}

func fromEngineIssues(si []eng.SimpleIssue) Issues {
	var iss Issues
	for _, s := range si {
		iss = AppendIssues(iss, Issue{Code: s.Code, Path: normalizePath(s.Path), Message: s.Message})
	}
	return iss
}
