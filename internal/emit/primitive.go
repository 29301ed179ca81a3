package emit

import (
	"errors"
	"strings"

	zodgen "github.com/reoring/zodgen"
	"github.com/reoring/zodgen/describe"
	"github.com/reoring/zodgen/rules"
)

var bases = map[describe.Kind]string{
	describe.KindAny:      "any()",
	describe.KindString:   "string()",
	describe.KindNumber:   "number()",
	describe.KindBoolean:  "boolean()",
	describe.KindDate:     "date()",
	describe.KindBinary:   "instanceof(Uint8Array)",
	describe.KindSymbol:   "symbol()",
	describe.KindFunction: "function()",
}

// chain builds the full builder chain of n: base, rules, deny-list,
// additive allow-list, presence, default, description and strip.
func (e *Emitter) chain(n *describe.Node, p zodgen.Path, depth int, pos position) (Fragment, error) {
	if n.Kind == describe.KindForbidden || n.Flags.Presence == describe.PresenceForbidden {
		return e.z("undefined()"), nil
	}

	suffixes, err := e.rules(n, p)
	if err != nil {
		return Fragment{}, err
	}

	var f Fragment
	if n.Flags.Only {
		f, err = e.literalUnion(n, append(append([]describe.Literal(nil), n.Valids...), n.Allow...), p)
	} else {
		f, err = e.base(n, p, depth)
		for _, s := range suffixes {
			f = f.Chain(s)
		}
	}
	if err != nil {
		return Fragment{}, err
	}

	if len(n.Invalids) > 0 {
		f = f.Chain(denyList(n.Kind, n.Invalids))
	}
	if !n.Flags.Only && len(n.Allow) > 0 {
		f = e.allow(f, n.Allow)
	}
	return e.usage(f, n, p, pos)
}

// usage chains the flags that describe how a schema is used rather than
// what it accepts: presence, default, description, label and strip.
func (e *Emitter) usage(f Fragment, n *describe.Node, p zodgen.Path, pos position) (Fragment, error) {
	switch n.Flags.Presence {
	case describe.PresenceRequired:
		// z.any() accepts undefined, so a missing key would pass
		if n.Kind == describe.KindAny && !n.Flags.Only {
			f = f.Chain(rules.Refinement("value !== undefined", "is required"))
		}
	case describe.PresenceOptional:
		f = f.Chain(".optional()")
	case describe.PresenceUnset:
		if pos == atProperty {
			f = f.Chain(".optional()")
		}
	}
	if d := n.Flags.Default; d != nil {
		f = f.Chain(".default(" + rules.Literal(*d) + ")")
	}
	if n.Flags.Description != "" {
		f = f.Chain(".describe(" + rules.Quote(n.Flags.Description) + ")")
	}
	if n.Flags.Label != "" {
		e.diag.Warnf(p.Field("flags").Field("label"), zodgen.CodeDropped, "label %q has no builder equivalent", n.Flags.Label)
	}
	if n.Flags.Strip {
		if !e.opt.Strip {
			return Fragment{}, &zodgen.UnsupportedFeatureError{Feature: "strip", Path: p.Field("flags").Field("strip").String()}
		}
		f = f.Chain(".transform(() => undefined)")
	}
	return f, nil
}

func (e *Emitter) base(n *describe.Node, p zodgen.Path, depth int) (Fragment, error) {
	switch n.Kind {
	case describe.KindObject:
		return e.object(n, p, depth)
	case describe.KindArray:
		return e.array(n, p, depth)
	case describe.KindAlternatives:
		return e.alternatives(n, p, depth)
	case describe.KindLink:
		return e.link(n, p), nil
	}
	b, ok := bases[n.Kind]
	if !ok {
		return Fragment{}, zodgen.Malformed(p.Field("type"), "unknown type %q", n.Kind)
	}
	return e.z(b), nil
}

// rules resolves every rule of n against the table, in order. Rules are
// resolved even when they end up unused so that nothing unsupported passes
// silently.
func (e *Emitter) rules(n *describe.Node, p zodgen.Path) ([]string, error) {
	out := make([]string, 0, len(n.Rules))
	for i, r := range n.Rules {
		rp := p.Field("rules").Index(i)
		if r.Name == "custom" || r.Name == "external" {
			return nil, &zodgen.UnsupportedFeatureError{Feature: "custom", Path: rp.String()}
		}
		emit, ok := e.opt.Rules.Lookup(n.Kind, r.Name)
		if !ok {
			return nil, &zodgen.UnsupportedRuleError{Type: string(n.Kind), Rule: r.Name, Path: rp.String()}
		}
		s, err := emit(r.Args, r.Options)
		if errors.Is(err, rules.ErrUnsupportedArgs) {
			return nil, &zodgen.UnsupportedRuleError{Type: string(n.Kind), Rule: r.Name, Path: rp.Field("args").String()}
		}
		if err != nil {
			return nil, zodgen.Malformed(rp.Field("args"), "%s.%s: %v", n.Kind, r.Name, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// denyList rejects membership in invalids. Dates compare by instant.
func denyList(kind describe.Kind, invalids []describe.Literal) string {
	items := make([]string, len(invalids))
	shown := make([]string, len(invalids))
	dates := kind == describe.KindDate
	for i, l := range invalids {
		items[i] = rules.Literal(l)
		shown[i] = l.String()
		if l.Kind != describe.LitDate {
			dates = false
		}
	}
	list := "[" + strings.Join(items, ", ") + "]"
	pred := "!" + list + ".includes(value)"
	if dates {
		pred = "!" + list + ".some((d) => d.getTime() === value.getTime())"
	}
	return rules.Refinement(pred, "must not be one of: "+strings.Join(shown, ", "))
}
