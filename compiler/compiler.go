// Package compiler is the entry point of zodgen: it turns a Joi describe()
// tree into TypeScript source building the equivalent Zod schema.
//
//	out, err := compiler.Compile([]byte(`{"type":"number","valids":[3,4]}`), compiler.DefaultOptions())
//	// out == `z.union([z.literal(3), z.literal(4)])`
//
// Every call is independent: named declarations are deduplicated within one
// call and never shared across calls.
package compiler

import (
	"bytes"
	"errors"
	"fmt"

	zodgen "github.com/reoring/zodgen"
	"github.com/reoring/zodgen/describe"
	"github.com/reoring/zodgen/internal/emit"
	"github.com/reoring/zodgen/internal/gen"
	"github.com/reoring/zodgen/source"
	"github.com/reoring/zodgen/source/gojson"
	srcyaml "github.com/reoring/zodgen/source/yaml"
)

// Compile generates code for input. input is JSON ([]byte or string), a
// normalized *describe.Node, or a raw tree (*source.Object or
// map[string]any).
func Compile(input any, opts Options) (string, error) {
	out, _, err := CompileWithDiag(input, opts)
	return out, err
}

// CompileWithDiag is Compile that also returns the non-fatal diagnostics.
func CompileWithDiag(input any, opts Options) (string, zodgen.Diag, error) {
	d := &zodgen.Diagnostics{}
	if input == nil {
		return "", d, errors.New("compiler: nil input")
	}
	var raw any
	switch t := input.(type) {
	case *describe.Node:
		return compileNode(t, opts, d)
	case describe.Node:
		return compileNode(&t, opts, d)
	case []byte:
		v, err := gojson.ReadBytes(t)
		if err != nil {
			return "", d, fmt.Errorf("compiler: read description: %w", err)
		}
		raw = v
	case string:
		v, err := gojson.ReadBytes([]byte(t))
		if err != nil {
			return "", d, fmt.Errorf("compiler: read description: %w", err)
		}
		raw = v
	case *source.Object, map[string]any:
		raw = t
	default:
		return "", d, fmt.Errorf("compiler: unsupported input type %T", input)
	}
	n, err := describe.NormalizeDepth(raw, opts.MaxDepth)
	if err != nil {
		return "", d, err
	}
	return compileNode(n, opts, d)
}

// CompileNode generates code for an already normalized tree.
func CompileNode(n *describe.Node, opts Options) (string, zodgen.Diag, error) {
	return compileNode(n, opts, &zodgen.Diagnostics{})
}

// CompileYAML compiles every document of a YAML stream independently and
// returns one output per non-empty document.
func CompileYAML(data []byte, opts Options) ([]string, zodgen.Diag, error) {
	all := &zodgen.Diagnostics{}
	docs, err := srcyaml.NewStrictReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, all, fmt.Errorf("compiler: read description: %w", err)
	}
	var outs []string
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		n, err := describe.NormalizeDepth(doc, opts.MaxDepth)
		if err != nil {
			return nil, all, err
		}
		out, d, err := CompileNode(n, opts)
		all.Add(d.Warnings()...)
		if err != nil {
			return nil, all, err
		}
		outs = append(outs, out)
	}
	return outs, all, nil
}

func compileNode(n *describe.Node, opts Options, d *zodgen.Diagnostics) (string, zodgen.Diag, error) {
	if n == nil {
		return "", d, zodgen.Malformed(zodgen.Root(), "nil description")
	}
	ident := opts.Target.Ident
	if ident == "" {
		ident = "z"
	}
	if !zodgen.IsIdentifier(ident) {
		return "", d, fmt.Errorf("compiler: target ident %q is not an identifier", ident)
	}
	reg := gen.NewRegistry()
	e := emit.New(emit.Options{
		Ident:             ident,
		Refine:            opts.Target.Refine,
		Strip:             opts.Target.Strip,
		SingleMemberUnion: opts.Target.SingleMemberUnion,
		Rules:             opts.Rules,
		MaxDepth:          opts.MaxDepth,
		Naming:            opts.Naming,
	}, reg, d)
	top, err := e.Emit(n)
	if err != nil {
		return "", d, err
	}
	text := top.Text
	if e.DeclName(n) != "" {
		// the root declaration already carries the schema
		text = ""
	}
	return gen.Render(reg, text, gen.Layout{
		Header: opts.Header,
		Import: opts.Import,
		Ident:  ident,
		Export: opts.Export,
	}), d, nil
}
