package compiler

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/reoring/zodgen/describe"
	"github.com/reoring/zodgen/rules"
)

// Target describes what the generated code may rely on.
type Target struct {
	Ident             string // builder identifier; "z" when empty
	Refine            bool   // superRefine is available (required for conditionals)
	Strip             bool   // values can be dropped after validation
	SingleMemberUnion bool   // keep one-member unions instead of collapsing them
}

// Options controls a compilation. The zero value is usable and describes the
// most conservative target: no refinements, no strip, unexported
// declarations. DefaultOptions returns the usual Zod setup.
type Options struct {
	Target   Target
	MaxDepth int // nesting limit; describe.DefaultMaxDepth when <= 0
	// Naming maps a className to its declaration identifier. Identity when nil.
	Naming func(className string) string
	Export bool   // "export const" instead of "const"
	Import bool   // prepend the zod import line
	Header string // leading comment
	Rules  *rules.Table
}

// DefaultOptions returns options for current Zod releases.
func DefaultOptions() Options {
	return Options{
		Target:   Target{Ident: "z", Refine: true, Strip: true},
		MaxDepth: describe.DefaultMaxDepth,
		Export:   true,
		Rules:    rules.Zod(),
	}
}

// fileOptions is the YAML form of Options. Absent fields keep their
// defaults.
type fileOptions struct {
	Target *struct {
		Ident             *string `yaml:"ident"`
		Refine            *bool   `yaml:"refine"`
		Strip             *bool   `yaml:"strip"`
		SingleMemberUnion *bool   `yaml:"singleMemberUnion"`
	} `yaml:"target"`
	MaxDepth *int    `yaml:"maxDepth"`
	Export   *bool   `yaml:"export"`
	Import   *bool   `yaml:"import"`
	Header   *string `yaml:"header"`
	Naming   *struct {
		Prefix string `yaml:"prefix"`
		Suffix string `yaml:"suffix"`
	} `yaml:"naming"`
}

// LoadOptions reads a YAML configuration on top of DefaultOptions. Unknown
// fields are rejected. An empty document yields the defaults.
//
//	target:
//	  ident: z
//	  refine: true
//	  strip: true
//	  singleMemberUnion: false
//	maxDepth: 64
//	export: true
//	import: true
//	header: generated by zodgen
//	naming:
//	  suffix: Schema
func LoadOptions(r io.Reader) (Options, error) {
	opts := DefaultOptions()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f fileOptions
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return opts, nil
		}
		return Options{}, fmt.Errorf("compiler: invalid options: %w", err)
	}
	if t := f.Target; t != nil {
		if t.Ident != nil {
			opts.Target.Ident = *t.Ident
		}
		if t.Refine != nil {
			opts.Target.Refine = *t.Refine
		}
		if t.Strip != nil {
			opts.Target.Strip = *t.Strip
		}
		if t.SingleMemberUnion != nil {
			opts.Target.SingleMemberUnion = *t.SingleMemberUnion
		}
	}
	if f.MaxDepth != nil {
		if *f.MaxDepth <= 0 {
			return Options{}, fmt.Errorf("compiler: maxDepth must be positive, got %d", *f.MaxDepth)
		}
		opts.MaxDepth = *f.MaxDepth
	}
	if f.Export != nil {
		opts.Export = *f.Export
	}
	if f.Import != nil {
		opts.Import = *f.Import
	}
	if f.Header != nil {
		opts.Header = *f.Header
	}
	if nm := f.Naming; nm != nil && (nm.Prefix != "" || nm.Suffix != "") {
		prefix, suffix := nm.Prefix, nm.Suffix
		opts.Naming = func(name string) string { return prefix + name + suffix }
	}
	return opts, nil
}
