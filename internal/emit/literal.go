package emit

import (
	"strings"

	zodgen "github.com/reoring/zodgen"
	"github.com/reoring/zodgen/describe"
	"github.com/reoring/zodgen/rules"
)

// literal renders a single-value schema for l.
func (e *Emitter) literal(l describe.Literal) Fragment {
	switch l.Kind {
	case describe.LitNull:
		return e.z("null()")
	case describe.LitDate:
		d := rules.Literal(l)
		return e.z("date()").Chain(rules.Refinement("value.getTime() === "+d+".getTime()", "must be "+l.Text))
	default:
		return e.z("literal(" + rules.Literal(l) + ")")
	}
}

// literalUnion replaces the node's base with a union of its allowed values,
// in order. Duplicates are dropped.
func (e *Emitter) literalUnion(n *describe.Node, values []describe.Literal, p zodgen.Path) (Fragment, error) {
	var members []Fragment
	var seen []describe.Literal
next:
	for _, v := range values {
		for _, s := range seen {
			if s.Equal(v) {
				continue next
			}
		}
		seen = append(seen, v)
		members = append(members, e.literal(v))
	}
	if len(members) == 0 {
		return Fragment{}, zodgen.Malformed(p.Field("valids"), "no allowed values")
	}
	return e.union(members), nil
}

// allow widens f with additive values: null becomes nullable, the rest join
// f in a union.
func (e *Emitter) allow(f Fragment, values []describe.Literal) Fragment {
	nullable := false
	var extra []Fragment
	for _, v := range values {
		if v.Kind == describe.LitNull {
			nullable = true
			continue
		}
		extra = append(extra, e.literal(v))
	}
	if len(extra) > 0 {
		f = e.union(append([]Fragment{f}, extra...))
	}
	if nullable {
		f = f.Chain(".nullable()")
	}
	return f
}

// union renders members as a union. A single member collapses to itself
// unless one-member unions are requested.
func (e *Emitter) union(members []Fragment) Fragment {
	if len(members) == 1 && !e.opt.SingleMemberUnion {
		return members[0]
	}
	texts := make([]string, len(members))
	for i, m := range members {
		texts[i] = m.Text
	}
	return e.z("union([" + strings.Join(texts, ", ") + "])")
}
