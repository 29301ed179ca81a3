// Package yaml reads description trees from YAML documents.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/reoring/zodgen/source"
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// StrictReader decodes a multi-document YAML stream using yaml.Node so that
// mapping order is kept and duplicate keys are detected with positions.
type StrictReader struct {
	dec *yamlv3.Decoder
}

// NewStrictReader constructs a StrictReader.
func NewStrictReader(r io.Reader) *StrictReader {
	return &StrictReader{dec: yamlv3.NewDecoder(r)}
}

// ReadBytes returns the first document of data as a raw tree.
func ReadBytes(data []byte) (any, error) {
	v, err := NewStrictReader(bytes.NewReader(data)).Next()
	if errors.Is(err, io.EOF) {
		return nil, io.ErrUnexpectedEOF
	}
	return v, err
}

// Next returns the next document converted into a raw tree. It returns
// (nil, io.EOF) when the stream is exhausted.
func (s *StrictReader) Next() (any, error) {
	var root yamlv3.Node
	if err := s.dec.Decode(&root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	return nodeToValue(root.Content[0])
}

// ReadAll reads all documents from the YAML stream.
func (s *StrictReader) ReadAll() ([]any, error) {
	var out []any
	for {
		v, err := s.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		out = append(out, v)
	}
}

func nodeToValue(n *yamlv3.Node) (any, error) {
	switch n.Kind {
	case yamlv3.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeToValue(n.Content[0])
	case yamlv3.AliasNode:
		return nodeToValue(n.Alias)
	case yamlv3.MappingNode:
		obj := source.NewObject()
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			key := k.Value
			if pos, dup := first[key]; dup {
				return nil, &DuplicateKeyError{Key: key, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
			}
			first[key] = [2]int{k.Line, k.Column}
			val, err := nodeToValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(key, val)
		}
		return obj, nil
	case yamlv3.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeToValue(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yamlv3.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return nil, nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, err
			}
			return b, nil
		case "!!int", "!!float":
			// keep the literal text; the emitter reproduces it verbatim
			return source.Number(n.Value), nil
		default:
			return n.Value, nil
		}
	default:
		return nil, nil
	}
}
