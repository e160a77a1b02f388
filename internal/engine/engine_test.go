package engine

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"testing"
)

// sliceSource replays a fixed token list.
type sliceSource struct {
	toks []Token
	i    int
}

func (s *sliceSource) NextToken() (Token, error) {
	if s.i >= len(s.toks) {
		return Token{}, io.EOF
	}
	t := s.toks[s.i]
	s.i++
	return t, nil
}

func (s *sliceSource) Location() int64 { return int64(s.i) }

func obj(toks ...Token) []Token {
	out := append([]Token{{Kind: KindBeginObject}}, toks...)
	return append(out, Token{Kind: KindEndObject})
}

func key(k string) Token { return Token{Kind: KindKey, String: k} }
func num(n string) Token { return Token{Kind: KindNumber, Number: n} }
func str(s string) Token { return Token{Kind: KindString, String: s} }

func tokens(ts ...Token) []Token { return ts }

func TestDecodeTree_Object(t *testing.T) {
	src := &sliceSource{toks: obj(key("a"), num("1.0"), key("b"), Token{Kind: KindBeginArray}, str("x"), Token{Kind: KindNull}, Token{Kind: KindEndArray})}
	v, err := DecodeTree(src, nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want := map[string]any{"a": json.Number("1.0"), "b": []any{"x", nil}}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("got %#v", v)
	}
}

func TestDecodeTree_Float64(t *testing.T) {
	v, err := DecodeTree(&sliceSource{toks: tokens(num("2.5"))}, Float64)
	if err != nil || v != 2.5 {
		t.Fatalf("got %v, %v", v, err)
	}
}

func TestDecodeTree_Truncated(t *testing.T) {
	_, err := DecodeTree(&sliceSource{toks: tokens(Token{Kind: KindBeginObject}, key("a"))}, nil)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected unexpected EOF, got %v", err)
	}
	_, err = DecodeTree(&sliceSource{}, nil)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected unexpected EOF for empty input, got %v", err)
	}
}

func TestDecodeTree_TrailingData(t *testing.T) {
	_, err := DecodeTree(&sliceSource{toks: tokens(num("1"), num("2"))}, nil)
	if !errors.Is(err, ErrTrailingData) {
		t.Fatalf("expected ErrTrailingData, got %v", err)
	}
}

func TestEnforcement_DuplicateWarnUsesSink(t *testing.T) {
	var got []SimpleIssue
	src := WrapWithEnforcement(&sliceSource{toks: obj(key("a"), num("1"), key("a"), num("2"))}, EnforceOptions{
		OnDuplicate: DupWarn,
		IssueSink:   func(si SimpleIssue) { got = append(got, si) },
	})
	if _, err := DecodeTree(src, nil); err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(got) != 1 || got[0].Code != CodeDuplicateKey || got[0].Path != "/a" {
		t.Fatalf("unexpected issues: %v", got)
	}
}

func TestEnforcement_MaxBytesUsesLocation(t *testing.T) {
	src := WrapWithEnforcement(&sliceSource{toks: obj(key("a"), num("1"))}, EnforceOptions{MaxBytes: 2})
	_, err := DecodeTree(src, nil)
	var ie IssueError
	if !errors.As(err, &ie) || ie.Code != CodeTruncated {
		t.Fatalf("expected truncated, got %v", err)
	}
}

func TestNeedsEnforcement(t *testing.T) {
	if NeedsEnforcement(EnforceOptions{}) {
		t.Fatalf("zero options need no enforcement")
	}
	if !NeedsEnforcement(EnforceOptions{MaxDepth: 1}) {
		t.Fatalf("depth limit needs enforcement")
	}
}
