package gojson

import (
	"errors"
	"io"
	"strings"
	"testing"

	eng "github.com/reoring/zodgen/internal/engine"
	"github.com/reoring/zodgen/source"
)

func TestReadBytes_OrderAndNumbers(t *testing.T) {
	v, err := ReadBytes([]byte(`{"z":1e21,"a":[0.10,-3,true,null,"s"],"m":{}}`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	obj, ok := v.(*source.Object)
	if !ok {
		t.Fatalf("expected *source.Object, got %T", v)
	}
	if keys := strings.Join(obj.Keys(), ","); keys != "z,a,m" {
		t.Fatalf("key order not kept: %s", keys)
	}
	if z, _ := obj.Get("z"); z != source.Number("1e21") {
		t.Fatalf("number text not kept: %#v", z)
	}
	a, _ := obj.Get("a")
	list, _ := a.([]any)
	if len(list) != 5 || list[0] != source.Number("0.10") || list[1] != source.Number("-3") || list[2] != true || list[3] != nil || list[4] != "s" {
		t.Fatalf("unexpected array: %#v", a)
	}
	if m, _ := obj.Get("m"); m.(*source.Object).Len() != 0 {
		t.Fatalf("expected empty object")
	}
}

func TestReadBytes_DuplicateKey(t *testing.T) {
	_, err := ReadBytes([]byte(`{"keys":{"a":{"type":"string"},"a":{"type":"number"}}}`))
	var ie eng.IssueError
	if !errors.As(err, &ie) {
		t.Fatalf("expected IssueError, got %T %v", err, err)
	}
	if ie.Code != "duplicate_key" || ie.Path != "/keys/a" {
		t.Fatalf("unexpected issue: %+v", ie.SimpleIssue)
	}
}

func TestReadBytes_Depth(t *testing.T) {
	deep := strings.Repeat("[", DefaultMaxDepth+1) + strings.Repeat("]", DefaultMaxDepth+1)
	if _, err := ReadBytes([]byte(deep)); err == nil {
		t.Fatalf("expected max depth error")
	}
}

func TestReadBytes_Truncated(t *testing.T) {
	if _, err := ReadBytes([]byte(`{"type":`)); err == nil {
		t.Fatalf("expected error for truncated input")
	}
	if _, err := ReadBytes(nil); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestReadBytes_TrailingData(t *testing.T) {
	if _, err := ReadBytes([]byte(`{"type":"string"} {}`)); err == nil {
		t.Fatalf("expected trailing data error")
	}
}
