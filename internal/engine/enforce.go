package engine

import (
	"strconv"
	"strings"
)

// Enforcement wrapper for TokenSource to apply duplicate key handling and
// max depth checks in a streaming fashion.

// EnforceOptions controls enforcement behavior.
type EnforceOptions struct {
	// AllowDuplicates keeps the first occurrence silently instead of failing.
	// DecodeOrdered still rejects duplicates, so this only matters for
	// callers consuming tokens directly.
	AllowDuplicates bool
	MaxDepth        int
}

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string // JSON Pointer of the offending token.
	Message string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message + " at " + e.SimpleIssue.Path }

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type dupFrame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
	pendingKey   string
}

// WrapWithEnforcement returns a TokenSource that enforces the duplicate key
// policy and maximum nesting depth.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []dupFrame
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	path := e.currentPathForToken(tok)

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		f := dupFrame{kind: kindArray, path: path}
		if tok.Kind == KindBeginObject {
			f = dupFrame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: path}
		}
		e.stack = append(e.stack, f)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, IssueError{SimpleIssue{Code: "parse_error", Path: normalizeIssuePath(path), Message: "max depth exceeded"}}
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		e.valueDone()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				if _, ok := top.keys[tok.String]; ok && !e.opt.AllowDuplicates {
					msg := "key '" + tok.String + "' duplicated"
					return Token{}, IssueError{SimpleIssue{Code: "duplicate_key", Path: normalizeIssuePath(path), Message: msg}}
				}
				top.keys[tok.String] = struct{}{}
				top.expectingKey = false
				top.pendingKey = tok.String
			}
		}
	case KindString, KindNumber, KindBool, KindNull:
		e.valueDone()
	}
	return tok, nil
}

// valueDone flips the enclosing object back to expecting a key.
func (e *enforcingTokenSource) valueDone() {
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
			top.pendingKey = ""
		}
	}
}

func (e *enforcingTokenSource) currentPathForToken(tok Token) string {
	if len(e.stack) == 0 {
		return ""
	}
	top := &e.stack[len(e.stack)-1]
	switch tok.Kind {
	case KindKey:
		return joinJSONPointer(top.path, tok.String)
	case KindBeginObject, KindBeginArray, KindString, KindNumber, KindBool, KindNull:
		if top.kind == kindArray {
			p := joinJSONPointer(top.path, strconv.Itoa(top.nextIndex))
			top.nextIndex++
			return p
		}
		if !top.expectingKey {
			return joinJSONPointer(top.path, top.pendingKey)
		}
	}
	return top.path
}

func normalizeIssuePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinJSONPointer(base, token string) string {
	return base + "/" + jsonPointerEscaper.Replace(token)
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }
