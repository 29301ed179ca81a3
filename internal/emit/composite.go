package emit

import (
	"strings"

	zodgen "github.com/reoring/zodgen"
	"github.com/reoring/zodgen/describe"
	"github.com/reoring/zodgen/rules"
)

// propertyKey renders an object key, quoting it unless it is an identifier.
func propertyKey(name string) string {
	if zodgen.IsIdentifier(name) {
		return name
	}
	return rules.Quote(name)
}

func (e *Emitter) object(n *describe.Node, p zodgen.Path, depth int) (Fragment, error) {
	entries := make([]string, 0, len(n.Keys))
	var refinements []string
	for _, prop := range n.Keys {
		pp := p.Field(prop.Name)
		cond, field, ok, err := conditionalView(prop.Node, pp)
		if err != nil {
			return Fragment{}, err
		}
		var text string
		if ok {
			r, err := e.conditional(prop.Name, cond, pp, field, depth+1)
			if err != nil {
				return Fragment{}, err
			}
			refinements = append(refinements, r...)
			text = e.z("any()").Text
		} else {
			f, err := e.node(prop.Node, pp, depth+1, atProperty)
			if err != nil {
				return Fragment{}, err
			}
			text = f.Text
		}
		entries = append(entries, propertyKey(prop.Name)+": "+text)
	}

	var f Fragment
	if len(entries) == 0 {
		f = e.z("object({})")
	} else {
		f = e.z("object({ " + strings.Join(entries, ", ") + " })")
	}
	if n.Keys == nil || n.Flags.Unknown {
		f = f.Chain(".passthrough()")
	} else {
		f = f.Chain(".strict()")
	}
	for _, r := range refinements {
		f = f.Chain(r)
	}
	return f, nil
}

func (e *Emitter) array(n *describe.Node, p zodgen.Path, depth int) (Fragment, error) {
	if len(n.Items) == 0 {
		return e.z("array(" + e.z("any()").Text + ")"), nil
	}
	items := make([]Fragment, 0, len(n.Items))
	for i, it := range n.Items {
		f, err := e.node(it, p.Field("items").Index(i), depth+1, atItem)
		if err != nil {
			return Fragment{}, err
		}
		items = append(items, f)
	}
	var item Fragment
	if len(items) == 1 {
		item = items[0]
	} else {
		// several item types form a union, never a tuple
		texts := make([]string, len(items))
		for i, it := range items {
			texts[i] = it.Text
		}
		item = e.z("union([" + strings.Join(texts, ", ") + "])")
	}
	return e.z("array(" + item.Text + ")"), nil
}

func (e *Emitter) alternatives(n *describe.Node, p zodgen.Path, depth int) (Fragment, error) {
	if len(n.Matches) == 0 {
		return Fragment{}, zodgen.Malformed(p.Field("matches"), "alternatives without branches")
	}
	branches := make([]Fragment, 0, len(n.Matches))
	for i, m := range n.Matches {
		mp := p.Field("matches").Index(i)
		if m.Schema == nil {
			// guarded matches are turned into conditions by conditionalView
			return Fragment{}, &zodgen.UnsupportedFeatureError{Feature: "conditional", Path: mp.String()}
		}
		f, err := e.node(m.Schema, mp, depth+1, atBranch)
		if err != nil {
			return Fragment{}, err
		}
		branches = append(branches, f)
	}
	return e.union(branches), nil
}

func (e *Emitter) link(n *describe.Node, p zodgen.Path) Fragment {
	name := n.Link
	if e.opt.Naming != nil {
		name = e.opt.Naming(name)
	}
	e.links = append(e.links, linkUse{name: name, path: p.Field("link")})
	return e.z("lazy(() => " + name + ")")
}
