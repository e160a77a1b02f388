package codec

import (
	"context"
	"testing"
	"time"

	wirebind "github.com/reoring/wirebind"
)

func TestTimeRFC3339_Basic(t *testing.T) {
	c := TimeRFC3339()
	ctx := context.Background()

	in := "2025-01-01T00:00:00Z"
	got, err := c.Convert(ctx, in)
	if err != nil {
		t.Fatalf("convert err: %v", err)
	}
	if !got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time: %v", got)
	}

	w := wirebind.NewWriter()
	if err := c.Write(w, got); err != nil {
		t.Fatalf("write err: %v", err)
	}
	if string(w.Bytes()) != `"`+in+`"` {
		t.Fatalf("roundtrip mismatch: %s != %q", w.Bytes(), in)
	}
}

func TestTimeRFC3339_NormalizesToUTC(t *testing.T) {
	c := TimeRFC3339()
	got, err := c.Convert(context.Background(), "2025-01-01T09:00:00.500+09:00")
	if err != nil {
		t.Fatalf("convert err: %v", err)
	}
	w := wirebind.NewWriter()
	if err := c.Write(w, got); err != nil {
		t.Fatalf("write err: %v", err)
	}
	if string(w.Bytes()) != `"2025-01-01T00:00:00.5Z"` {
		t.Fatalf("unexpected output: %s", w.Bytes())
	}
}

func TestTimeRFC3339_InvalidFormat(t *testing.T) {
	_, err := TimeRFC3339().Convert(context.Background(), "yesterday")
	iss, ok := wirebind.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", err)
	}
	if iss[0].Code != wirebind.CodeInvalidFormat || iss[0].Path != "/" {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
	if iss[0].Cause == nil {
		t.Fatalf("expected the time.Parse error as cause")
	}
}

func TestTimeRFC3339_WrongKindIsTypeMismatch(t *testing.T) {
	_, err := TimeRFC3339().Convert(context.Background(), true)
	iss, ok := wirebind.AsIssues(err)
	if !ok || iss[0].Code != wirebind.CodeInvalidType {
		t.Fatalf("expected invalid_type, got %v", err)
	}
}

func TestTimeRFC3339_Schema(t *testing.T) {
	s := TimeRFC3339().JSONSchema()
	if s.Type != "string" || s.Format != "date-time" {
		t.Fatalf("unexpected schema: %+v", s)
	}
}
