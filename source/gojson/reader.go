// Package gojson reads description trees from JSON using goccy/go-json.
package gojson

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/zodgen/internal/engine"
)

// DefaultMaxDepth bounds JSON nesting while reading.
const DefaultMaxDepth = 512

// ReadBytes decodes data into a raw tree (*source.Object for objects,
// source.Number for numbers). Duplicate keys and nesting beyond
// DefaultMaxDepth are errors.
func ReadBytes(b []byte) (any, error) { return Read(bytes.NewReader(b)) }

// Read is ReadBytes over an io.Reader.
func Read(r io.Reader) (any, error) {
	src := eng.WrapWithEnforcement(NewReader(r), eng.EnforceOptions{MaxDepth: DefaultMaxDepth})
	v, err := eng.DecodeOrdered(src)
	if errors.Is(err, io.EOF) {
		return nil, io.ErrUnexpectedEOF
	}
	return v, err
}

// ---- engine.TokenSource implementation using go-json Decoder ----

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type tokenSource struct {
	dec   *j.Decoder
	stack []frame
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &tokenSource{dec: dec}
}

func (s *tokenSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return eng.Token{Kind: eng.KindBeginObject, Offset: -1}, nil
		case '}':
			s.pop()
			return eng.Token{Kind: eng.KindEndObject, Offset: -1}, nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return eng.Token{Kind: eng.KindBeginArray, Offset: -1}, nil
		case ']':
			s.pop()
			return eng.Token{Kind: eng.KindEndArray, Offset: -1}, nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return eng.Token{Kind: eng.KindKey, String: v, Offset: -1}, nil
			}
		}
		s.valueDone()
		return eng.Token{Kind: eng.KindString, String: v, Offset: -1}, nil
	case bool:
		s.valueDone()
		return eng.Token{Kind: eng.KindBool, Bool: v, Offset: -1}, nil
	case j.Number:
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: -1}, nil
	case float64:
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: -1}, nil
	}
	s.valueDone()
	return eng.Token{Kind: eng.KindNull, Offset: -1}, nil
}

func (s *tokenSource) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.valueDone()
}

func (s *tokenSource) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (s *tokenSource) Location() int64 { return -1 }
