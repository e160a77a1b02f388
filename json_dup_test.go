package wirebind

import "testing"

func TestDetectJSONDuplicateKeysBytes_NoDup(t *testing.T) {
	js := []byte(`{"a":1,"b":2}`)
	iss, err := DetectJSONDuplicateKeysBytes(js, Strictness{OnDuplicateKey: Warn}, -1)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(iss) != 0 {
		t.Fatalf("expected 0 issues, got %d: %v", len(iss), iss)
	}
}

func TestDetectJSONDuplicateKeysBytes_WithDup(t *testing.T) {
	js := []byte(`{"a":1,"a":2,"b":{"c":1,"c":2}}`)
	iss, err := DetectJSONDuplicateKeysBytes(js, Strictness{OnDuplicateKey: Warn}, -1)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(iss) != 2 {
		t.Fatalf("expected 2 duplicate_key issues, got %v", iss)
	}
	if iss[0].Code != CodeDuplicateKey || iss[0].Path != "/a" || iss[1].Path != "/b/c" {
		t.Fatalf("unexpected issues: %v", iss)
	}
}

func TestDetectJSONDuplicateKeysBytes_ErrorStopsAtFirst(t *testing.T) {
	js := []byte(`{"a":1,"a":2,"b":{"c":1,"c":2}}`)
	iss, err := DetectJSONDuplicateKeysBytes(js, Strictness{OnDuplicateKey: Error}, -1)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(iss) != 1 {
		t.Fatalf("expected 1 issue, got %v", iss)
	}
}

func TestDetectJSONDuplicateKeysBytes_MaxIssues(t *testing.T) {
	js := []byte(`{"a":1,"a":2,"a":3,"a":4}`)
	iss, err := DetectJSONDuplicateKeysBytes(js, Strictness{OnDuplicateKey: Warn}, 1)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(iss) != 2 || iss[1].Code != CodeTruncated {
		t.Fatalf("expected one issue plus truncated marker, got %v", iss)
	}
}

func TestDetectJSONDuplicateKeysBytes_Malformed(t *testing.T) {
	if _, err := DetectJSONDuplicateKeysBytes([]byte(`{"a":`), Strictness{OnDuplicateKey: Warn}, -1); err == nil {
		t.Fatalf("expected parse error")
	}
}
