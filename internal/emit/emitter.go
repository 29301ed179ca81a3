// Package emit turns description nodes into Zod builder fragments.
//
// Emission is bottom-up: children are emitted first and named children are
// declared in the registry before their parent completes, so the registry
// ends up in dependency order.
package emit

import (
	"errors"

	zodgen "github.com/reoring/zodgen"
	"github.com/reoring/zodgen/describe"
	"github.com/reoring/zodgen/internal/gen"
	"github.com/reoring/zodgen/rules"
)

// Options configures one emission.
type Options struct {
	Ident             string // builder identifier, "z" when empty
	Refine            bool   // target has superRefine/refine
	Strip             bool   // target can drop values after validation
	SingleMemberUnion bool   // keep one-member unions instead of collapsing
	Rules             *rules.Table
	MaxDepth          int
	Naming            func(string) string
}

// position is where a node is emitted. Unset presence means optional only
// for object properties.
type position int

const (
	atRoot position = iota
	atProperty
	atItem
	atBranch
)

type linkUse struct {
	name string
	path zodgen.Path
}

// Emitter holds the state of a single compilation.
type Emitter struct {
	opt   Options
	reg   *gen.Registry
	diag  *zodgen.Diagnostics
	links []linkUse
}

// New returns an Emitter declaring into reg and reporting warnings to diag.
func New(opt Options, reg *gen.Registry, diag *zodgen.Diagnostics) *Emitter {
	if opt.Ident == "" {
		opt.Ident = "z"
	}
	if opt.Rules == nil {
		opt.Rules = rules.Zod()
	}
	if opt.MaxDepth <= 0 {
		opt.MaxDepth = describe.DefaultMaxDepth
	}
	if diag == nil {
		diag = &zodgen.Diagnostics{}
	}
	return &Emitter{opt: opt, reg: reg, diag: diag}
}

// Emit emits the root node. When the root is named the returned fragment is
// the declaration's identifier.
func (e *Emitter) Emit(root *describe.Node) (Fragment, error) {
	if root == nil {
		return Fragment{}, zodgen.Malformed(zodgen.Root(), "nil description")
	}
	f, err := e.node(root, zodgen.Root(), 0, atRoot)
	if err != nil {
		return Fragment{}, err
	}
	if err := e.checkLinks(); err != nil {
		return Fragment{}, err
	}
	return f, nil
}

// DeclName returns the declaration name of n, or "" for anonymous nodes.
func (e *Emitter) DeclName(n *describe.Node) string {
	name := n.Meta.ClassName
	if name == "" {
		name = n.Meta.ID
	}
	if name == "" {
		return ""
	}
	if e.opt.Naming != nil {
		name = e.opt.Naming(name)
	}
	return name
}

func (e *Emitter) z(method string) Fragment { return call(e.opt.Ident + "." + method) }

func (e *Emitter) node(n *describe.Node, p zodgen.Path, depth int, pos position) (Fragment, error) {
	if n == nil {
		return Fragment{}, zodgen.Malformed(p, "missing node")
	}
	if depth > e.opt.MaxDepth {
		return Fragment{}, &zodgen.RecursionLimitExceeded{Path: p.String(), Limit: e.opt.MaxDepth}
	}
	if _, field, ok, err := conditionalView(n, p); err != nil {
		return Fragment{}, err
	} else if ok {
		// properties with conditions are handled by the enclosing object
		return Fragment{}, &zodgen.UnsupportedFeatureError{Feature: "conditional", Path: p.Field(field).Index(0).String()}
	}

	name := e.DeclName(n)
	if name == "" {
		return e.chain(n, p, depth, pos)
	}
	if !zodgen.IsIdentifier(name) {
		return Fragment{}, zodgen.Malformed(p, "declaration name %q is not an identifier", name)
	}
	// the root declaration stands in for the top expression and keeps its
	// usage flags; elsewhere they are chained onto the reference
	decl := n
	if pos != atRoot {
		decl = declaration(n)
	}
	body, err := e.chain(decl, p, depth, atRoot)
	if err != nil {
		return Fragment{}, err
	}
	if err := e.reg.Declare(name, body.Text); err != nil {
		if errors.Is(err, gen.ErrConflict) {
			return Fragment{}, zodgen.Malformed(p, "name %q already declared with a different schema", name)
		}
		return Fragment{}, err
	}
	if pos == atRoot {
		return ident(name), nil
	}
	if n.Kind == describe.KindForbidden || n.Flags.Presence == describe.PresenceForbidden {
		return e.z("undefined()"), nil
	}
	return e.usage(ident(name), n, p, pos)
}

// declaration returns n without its usage flags.
func declaration(n *describe.Node) *describe.Node {
	d := *n
	d.Flags.Presence = describe.PresenceUnset
	d.Flags.Default = nil
	d.Flags.Description = ""
	d.Flags.Label = ""
	d.Flags.Strip = false
	return &d
}

func (e *Emitter) checkLinks() error {
	for _, l := range e.links {
		if !e.reg.Has(l.name) {
			return zodgen.Malformed(l.path, "link to undeclared schema %q", l.name)
		}
	}
	return nil
}
