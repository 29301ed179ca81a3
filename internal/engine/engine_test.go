package engine

import (
	"errors"
	"io"
	"testing"

	"github.com/reoring/zodgen/source"
)

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
	return append(append([]Token{{Kind: KindBeginObject}}, toks...), Token{Kind: KindEndObject})
}

func key(k string) Token { return Token{Kind: KindKey, String: k} }

func TestDecodeOrdered(t *testing.T) {
	toks := obj(
		key("b"), Token{Kind: KindNumber, Number: "1.50"},
		key("a"), Token{Kind: KindBeginArray}, Token{Kind: KindBool, Bool: true}, Token{Kind: KindNull}, Token{Kind: KindEndArray},
	)
	v, err := DecodeOrdered(&sliceSource{toks: toks})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	o := v.(*source.Object)
	if k := o.Keys(); len(k) != 2 || k[0] != "b" || k[1] != "a" {
		t.Fatalf("unexpected keys %v", k)
	}
	if b, _ := o.Get("b"); b != source.Number("1.50") {
		t.Fatalf("unexpected number %#v", b)
	}
}

func TestEnforcement_DuplicateKeyPointer(t *testing.T) {
	toks := obj(
		key("a/b"), Token{Kind: KindBeginObject},
		key("x"), Token{Kind: KindString, String: "1"},
		key("x"), Token{Kind: KindString, String: "2"},
		Token{Kind: KindEndObject},
	)
	_, err := DecodeOrdered(WrapWithEnforcement(&sliceSource{toks: toks}, EnforceOptions{}))
	var ie IssueError
	if !errors.As(err, &ie) {
		t.Fatalf("expected IssueError, got %T %v", err, err)
	}
	if ie.Code != "duplicate_key" || ie.Path != "/a~1b/x" {
		t.Fatalf("unexpected issue %+v", ie.SimpleIssue)
	}
}

func TestEnforcement_AllowDuplicatesStillRejectedByDecoder(t *testing.T) {
	toks := obj(key("x"), Token{Kind: KindNull}, key("x"), Token{Kind: KindNull})
	_, err := DecodeOrdered(WrapWithEnforcement(&sliceSource{toks: toks}, EnforceOptions{AllowDuplicates: true}))
	if err == nil {
		t.Fatalf("expected duplicate error from decoder")
	}
	var ie IssueError
	if errors.As(err, &ie) {
		t.Fatalf("enforcement should have let the duplicate through, got %v", ie)
	}
}

func TestEnforcement_MaxDepth(t *testing.T) {
	toks := []Token{{Kind: KindBeginArray}, {Kind: KindBeginArray}, {Kind: KindBeginArray}}
	_, err := DecodeOrdered(WrapWithEnforcement(&sliceSource{toks: toks}, EnforceOptions{MaxDepth: 2}))
	var ie IssueError
	if !errors.As(err, &ie) || ie.Path != "/0/0" {
		t.Fatalf("expected max depth issue at /0/0, got %v", err)
	}
}

func TestDecodeOrdered_TrailingData(t *testing.T) {
	toks := append(obj(), Token{Kind: KindNull})
	if _, err := DecodeOrdered(&sliceSource{toks: toks}); err == nil {
		t.Fatalf("expected trailing data error")
	}
}
