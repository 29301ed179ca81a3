package emit

import (
	"strings"

	zodgen "github.com/reoring/zodgen"
	"github.com/reoring/zodgen/describe"
	"github.com/reoring/zodgen/rules"
)

// conditionalView reports whether n is conditional and returns the node
// whose Whens hold the guards, plus the field the guards were read from.
// Alternatives made only of guarded matches become an any-typed node with
// those guards, so a missing otherwise falls back to any.
func conditionalView(n *describe.Node, p zodgen.Path) (*describe.Node, string, bool, error) {
	if len(n.Whens) > 0 {
		return n, "whens", true, nil
	}
	if n.Kind != describe.KindAlternatives {
		return nil, "", false, nil
	}
	guards := 0
	for _, m := range n.Matches {
		if m.Guard != nil {
			guards++
		}
	}
	if guards == 0 {
		return nil, "", false, nil
	}
	if guards != len(n.Matches) {
		return nil, "", false, zodgen.Malformed(p.Field("matches"), "alternatives mix conditional and plain branches")
	}
	base := n.Clone()
	base.Kind = describe.KindAny
	base.Matches = nil
	base.Whens = make([]describe.Guard, 0, len(n.Matches))
	for _, m := range n.Matches {
		base.Whens = append(base.Whens, *m.Guard)
	}
	return base, "matches", true, nil
}

// conditional emits one superRefine per guard of the property. Each picks
// the then or otherwise schema by the guard and validates the property
// with it, forwarding issues under the property's path.
func (e *Emitter) conditional(name string, n *describe.Node, p zodgen.Path, field string, depth int) ([]string, error) {
	if !e.opt.Refine {
		return nil, &zodgen.UnsupportedFeatureError{Feature: "conditional", Path: p.Field(field).Index(0).String()}
	}
	if depth > e.opt.MaxDepth {
		return nil, &zodgen.RecursionLimitExceeded{Path: p.String(), Limit: e.opt.MaxDepth}
	}
	base := n.Clone()
	base.Whens = nil

	out := make([]string, 0, len(n.Whens))
	for i, g := range n.Whens {
		gp := p.Field(field).Index(i)
		pred, err := e.guard(g, gp, depth)
		if err != nil {
			return nil, err
		}
		then, err := e.branch(base, g.Then, gp.Field("then"), depth)
		if err != nil {
			return nil, err
		}
		otherwise, err := e.branch(base, g.Otherwise, gp.Field("otherwise"), depth)
		if err != nil {
			return nil, err
		}
		e.diag.Warnf(gp, zodgen.CodeApproximation, "condition on %q is checked with superRefine after the object is parsed", g.Ref)

		b := &strings.Builder{}
		b.WriteString(".superRefine((value, ctx) => { const schema = ")
		b.WriteString(pred)
		b.WriteString(" ? ")
		b.WriteString(then.Text)
		b.WriteString(" : ")
		b.WriteString(otherwise.Text)
		b.WriteString("; const result = schema.safeParse(")
		b.WriteString(access("value", []string{name}))
		b.WriteString("); if (!result.success) { result.error.issues.forEach((issue) => ctx.addIssue({ ...issue, path: [")
		b.WriteString(rules.Quote(name))
		b.WriteString(", ...issue.path] })); } })")
		out = append(out, b.String())
	}
	return out, nil
}

// branch merges br into base the way the source library concatenates
// conditional branches; a missing branch leaves base unchanged.
func (e *Emitter) branch(base, br *describe.Node, p zodgen.Path, depth int) (Fragment, error) {
	n := base
	if br != nil {
		n = describe.Concat(base, br)
	}
	return e.node(n, p, depth+1, atProperty)
}

// guard renders the predicate over the referenced sibling.
func (e *Emitter) guard(g describe.Guard, p zodgen.Path, depth int) (string, error) {
	ref := access("value", strings.Split(g.Ref, "."))
	switch {
	case g.Is != nil:
		return e.test(g.Is, ref, p.Field("is"), depth)
	case g.Not != nil:
		t, err := e.test(g.Not, ref, p.Field("not"), depth)
		if err != nil {
			return "", err
		}
		return "!(" + t + ")", nil
	default:
		// no operand means the reference must be truthy
		return "Boolean(" + ref + ")", nil
	}
}

func (e *Emitter) test(op *describe.Node, ref string, p zodgen.Path, depth int) (string, error) {
	if vals, ok := literalOperand(op); ok {
		if len(vals) == 1 {
			return ref + " === " + rules.Literal(vals[0]), nil
		}
		items := make([]string, len(vals))
		for i, v := range vals {
			items[i] = rules.Literal(v)
		}
		return "[" + strings.Join(items, ", ") + "].includes(" + ref + ")", nil
	}
	f, err := e.node(op, p, depth+1, atBranch)
	if err != nil {
		return "", err
	}
	return f.Chain(".safeParse(" + ref + ").success").Text, nil
}

// literalOperand recognizes an operand that only lists plain values.
func literalOperand(n *describe.Node) ([]describe.Literal, bool) {
	if n.Kind != describe.KindAny || !n.Flags.Only || len(n.Valids) == 0 {
		return nil, false
	}
	if len(n.Rules) > 0 || len(n.Allow) > 0 || len(n.Invalids) > 0 || len(n.Whens) > 0 {
		return nil, false
	}
	if n.Flags.Presence == describe.PresenceOptional || n.Flags.Presence == describe.PresenceForbidden {
		return nil, false
	}
	for _, v := range n.Valids {
		if v.Kind == describe.LitDate {
			return nil, false
		}
	}
	return n.Valids, true
}

// access renders root.a?.b with bracket access for non-identifiers.
func access(root string, segs []string) string {
	b := &strings.Builder{}
	b.WriteString(root)
	for i, s := range segs {
		if i > 0 {
			b.WriteString("?.")
		}
		if zodgen.IsIdentifier(s) {
			if i == 0 {
				b.WriteByte('.')
			}
			b.WriteString(s)
			continue
		}
		b.WriteString("[" + rules.Quote(s) + "]")
	}
	return b.String()
}
