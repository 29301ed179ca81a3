package describe

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	zodgen "github.com/reoring/zodgen"
	"github.com/reoring/zodgen/codec"
	"github.com/reoring/zodgen/source"
)

// DefaultMaxDepth bounds node nesting during normalization.
const DefaultMaxDepth = 64

// Normalize converts a raw describe() tree into a Node tree using
// DefaultMaxDepth. The raw tree is what the source readers produce
// (*source.Object, []any, string, source.Number, bool, nil); plain Go values
// (map[string]any, float64, int, json.Number) are accepted too, with map keys
// visited in sorted order.
//
// Both the Joi vocabulary (allow + flags.only, invalid, metas, whens[].ref,
// matches[].schema, flags.result) and the normalized one (valids, invalids,
// metadata, referenceKey, flags.strip) are understood.
func Normalize(raw any) (*Node, error) { return NormalizeDepth(raw, DefaultMaxDepth) }

// NormalizeDepth is Normalize with an explicit nesting limit.
func NormalizeDepth(raw any, maxDepth int) (*Node, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	n := &normalizer{maxDepth: maxDepth}
	return n.node(raw, zodgen.Root(), 0)
}

type normalizer struct {
	maxDepth int
}

// nodeKeys are the description keys the normalizer models.
var nodeKeys = keySet("type", "flags", "rules", "valids", "allow", "invalids", "invalid",
	"metas", "metadata", "keys", "items", "matches", "link", "whens")

// informationalKeys carry documentation or validation preferences only and
// do not constrain accepted values. Every other unmodelled key is rejected
// (dependencies, patterns, ordered, renames, ...).
var informationalKeys = keySet("examples", "notes", "tags", "preferences")

// informationalFlags change error reporting or caching only.
var informationalFlags = keySet("error", "cache", "artifact", "unit")

func keySet(keys ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		m[k] = struct{}{}
	}
	return m
}

// rawObject is the read-only view shared by ordered and plain maps.
type rawObject interface {
	Keys() []string
	Get(key string) (any, bool)
}

type plainObject map[string]any

func (m plainObject) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m plainObject) Get(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

func asObject(v any) (rawObject, bool) {
	switch t := v.(type) {
	case *source.Object:
		return t, t != nil
	case map[string]any:
		return plainObject(t), true
	default:
		return nil, false
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case *source.Object, map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		if _, ok := numberText(v); ok {
			return "number"
		}
		return fmt.Sprintf("%T", v)
	}
}

func (n *normalizer) node(v any, p zodgen.Path, depth int) (*Node, error) {
	if depth > n.maxDepth {
		return nil, &zodgen.RecursionLimitExceeded{Path: p.String(), Limit: n.maxDepth}
	}
	obj, ok := asObject(v)
	if !ok {
		return nil, zodgen.Malformed(p, "expected a description object, got %s", typeName(v))
	}
	tv, ok := obj.Get("type")
	if !ok {
		return nil, zodgen.Malformed(p.Field("type"), "missing type")
	}
	ts, ok := tv.(string)
	if !ok {
		return nil, zodgen.Malformed(p.Field("type"), "type must be a string, got %s", typeName(tv))
	}
	out := &Node{Kind: Kind(ts)}
	if !out.Kind.Valid() {
		return nil, zodgen.Malformed(p.Field("type"), "unknown type %q", ts)
	}
	if out.Kind == KindForbidden {
		out.Flags.Presence = PresenceForbidden
	}
	for _, k := range obj.Keys() {
		if _, ok := nodeKeys[k]; ok {
			continue
		}
		if _, ok := informationalKeys[k]; ok {
			continue
		}
		return nil, &zodgen.UnsupportedFeatureError{Feature: k, Path: p.Field(k).String()}
	}

	integer, err := n.flags(obj, out, p)
	if err != nil {
		return nil, err
	}
	if err := n.rules(obj, out, integer, p); err != nil {
		return nil, err
	}
	if err := n.values(obj, out, p); err != nil {
		return nil, err
	}
	if err := n.meta(obj, out, p); err != nil {
		return nil, err
	}
	if err := n.children(obj, out, p, depth); err != nil {
		return nil, err
	}
	if v, ok := obj.Get("whens"); ok {
		list, ok := v.([]any)
		if !ok {
			return nil, zodgen.Malformed(p.Field("whens"), "whens must be a list, got %s", typeName(v))
		}
		for i, it := range list {
			g, err := n.guard(it, p.Field("whens").Index(i), depth)
			if err != nil {
				return nil, err
			}
			out.Whens = append(out.Whens, *g)
		}
	}
	return out, nil
}

// flags fills out.Flags and reports whether the integer shorthand flag was set.
func (n *normalizer) flags(obj rawObject, out *Node, p zodgen.Path) (bool, error) {
	v, ok := obj.Get("flags")
	if !ok || v == nil {
		return false, nil
	}
	fp := p.Field("flags")
	fo, ok := asObject(v)
	if !ok {
		return false, zodgen.Malformed(fp, "flags must be an object, got %s", typeName(v))
	}
	integer := false
	for _, k := range fo.Keys() {
		fv, _ := fo.Get(k)
		kp := fp.Field(k)
		switch k {
		case "presence":
			s, ok := fv.(string)
			if !ok {
				return false, zodgen.Malformed(kp, "presence must be a string, got %s", typeName(fv))
			}
			switch s {
			case "required":
				out.Flags.Presence = PresenceRequired
			case "optional":
				out.Flags.Presence = PresenceOptional
			case "forbidden":
				out.Flags.Presence = PresenceForbidden
			default:
				return false, zodgen.Malformed(kp, "unknown presence %q", s)
			}
		case "default":
			lit, err := n.literal(fv, kp, out.Kind)
			if err != nil {
				return false, err
			}
			out.Flags.Default = &lit
		case "label", "description":
			s, ok := fv.(string)
			if !ok {
				return false, zodgen.Malformed(kp, "%s must be a string, got %s", k, typeName(fv))
			}
			if k == "label" {
				out.Flags.Label = s
			} else {
				out.Flags.Description = s
			}
		case "result":
			if s, _ := fv.(string); s == "strip" {
				out.Flags.Strip = true
			}
		case "strip", "only", "unknown", "integer":
			b, ok := fv.(bool)
			if !ok {
				return false, zodgen.Malformed(kp, "%s must be a boolean, got %s", k, typeName(fv))
			}
			switch k {
			case "strip":
				out.Flags.Strip = b
			case "only":
				out.Flags.Only = b
			case "unknown":
				out.Flags.Unknown = b
			default:
				integer = b
			}
		case "id":
			s, ok := fv.(string)
			if !ok {
				return false, zodgen.Malformed(kp, "id must be a string, got %s", typeName(fv))
			}
			out.Meta.ID = s
		default:
			if _, ok := informationalFlags[k]; ok {
				continue
			}
			// a cleared flag is Joi's default state
			if b, ok := fv.(bool); (ok && !b) || fv == nil {
				continue
			}
			return false, &zodgen.UnsupportedFeatureError{Feature: k, Path: kp.String()}
		}
	}
	return integer, nil
}

func (n *normalizer) rules(obj rawObject, out *Node, integer bool, p zodgen.Path) error {
	if integer {
		out.Rules = append(out.Rules, Rule{Name: "integer"})
	}
	v, ok := obj.Get("rules")
	if !ok || v == nil {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return zodgen.Malformed(p.Field("rules"), "rules must be a list, got %s", typeName(v))
	}
	for i, it := range list {
		rp := p.Field("rules").Index(i)
		ro, ok := asObject(it)
		if !ok {
			return zodgen.Malformed(rp, "rule must be an object, got %s", typeName(it))
		}
		nv, _ := ro.Get("name")
		name, ok := nv.(string)
		if !ok || name == "" {
			return zodgen.Malformed(rp.Field("name"), "rule name must be a non-empty string")
		}
		if name == "integer" && integer {
			continue
		}
		r := Rule{Name: name}
		// custom validators carry functions, not literals; the emitter rejects them
		if av, ok := ro.Get("args"); ok && av != nil && name != "custom" && name != "external" {
			args, opts, err := n.ruleArgs(av, rp.Field("args"))
			if err != nil {
				return err
			}
			r.Args, r.Options = args, opts
		}
		out.Rules = append(out.Rules, r)
	}
	return nil
}

// ruleArgs accepts positional lists ([10]) and Joi's named form
// ({"limit": 10}); named values are taken in key order. The "options" bag
// is returned separately so the rule table can honour or reject each entry.
func (n *normalizer) ruleArgs(v any, p zodgen.Path) ([]Literal, []Option, error) {
	var (
		vals  []any
		paths []zodgen.Path
		opts  []Option
	)
	if list, ok := v.([]any); ok {
		for i, it := range list {
			vals = append(vals, it)
			paths = append(paths, p.Index(i))
		}
	} else if ao, ok := asObject(v); ok {
		for _, k := range ao.Keys() {
			it, _ := ao.Get(k)
			if k == "options" {
				var err error
				if opts, err = n.ruleOptions(it, p.Field(k)); err != nil {
					return nil, nil, err
				}
				continue
			}
			vals = append(vals, it)
			paths = append(paths, p.Field(k))
		}
	} else {
		vals = append(vals, v)
		paths = append(paths, p)
	}
	out := make([]Literal, 0, len(vals))
	for i, it := range vals {
		if isRef(it) {
			return nil, nil, &zodgen.UnsupportedFeatureError{Feature: "reference", Path: paths[i].String()}
		}
		// rule arguments on dates stay strings so the rule table decides
		// whether a relative value such as "now" is acceptable
		lit, err := n.literal(it, paths[i], "")
		if err != nil {
			return nil, nil, err
		}
		out = append(out, lit)
	}
	return out, opts, nil
}

func (n *normalizer) ruleOptions(v any, p zodgen.Path) ([]Option, error) {
	if v == nil {
		return nil, nil
	}
	oo, ok := asObject(v)
	if !ok {
		return nil, zodgen.Malformed(p, "options must be an object, got %s", typeName(v))
	}
	var out []Option
	for _, k := range oo.Keys() {
		it, _ := oo.Get(k)
		kp := p.Field(k)
		if isRef(it) {
			return nil, &zodgen.UnsupportedFeatureError{Feature: "reference", Path: kp.String()}
		}
		opt := Option{Name: k}
		list, isList := it.([]any)
		if !isList {
			list = []any{it}
		}
		for i, e := range list {
			if _, nested := asObject(e); nested {
				opt.Nested, opt.Values = true, nil
				break
			}
			if _, nested := e.([]any); nested {
				opt.Nested, opt.Values = true, nil
				break
			}
			ep := kp
			if isList {
				ep = kp.Index(i)
			}
			lit, err := n.literal(e, ep, "")
			if err != nil {
				return nil, err
			}
			opt.Values = append(opt.Values, lit)
		}
		out = append(out, opt)
	}
	return out, nil
}

func isRef(v any) bool {
	o, ok := asObject(v)
	if !ok {
		return false
	}
	_, ref := o.Get("ref")
	return ref
}

func (n *normalizer) values(obj rawObject, out *Node, p zodgen.Path) error {
	only := out.Flags.Only
	for _, key := range []string{"valids", "allow", "invalids", "invalid"} {
		v, ok := obj.Get(key)
		if !ok || v == nil {
			continue
		}
		lits, err := n.literalList(v, p.Field(key), out.Kind)
		if err != nil {
			return err
		}
		switch {
		case key == "valids":
			out.Flags.Only = true
			out.Valids = append(out.Valids, lits...)
		case key == "allow" && only:
			out.Valids = append(out.Valids, lits...)
		case key == "allow":
			out.Allow = append(out.Allow, lits...)
		default:
			out.Invalids = append(out.Invalids, lits...)
		}
	}
	if out.Flags.Only && len(out.Valids) == 0 {
		return zodgen.Malformed(p.Field("flags").Field("only"), "only flag without allowed values")
	}
	return nil
}

func (n *normalizer) literalList(v any, p zodgen.Path, kind Kind) ([]Literal, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, zodgen.Malformed(p, "expected a list of literals, got %s", typeName(v))
	}
	out := make([]Literal, 0, len(list))
	for i, it := range list {
		if ro, ok := asObject(it); ok {
			if _, isRef := ro.Get("ref"); isRef {
				return nil, &zodgen.UnsupportedFeatureError{Feature: "reference", Path: p.Index(i).String()}
			}
			if _, isOverride := ro.Get("override"); isOverride {
				continue
			}
		}
		lit, err := n.literal(it, p.Index(i), kind)
		if err != nil {
			return nil, err
		}
		out = append(out, lit)
	}
	return out, nil
}

// literal converts a raw scalar. For date nodes strings and integral
// numbers become canonical date literals.
func (n *normalizer) literal(v any, p zodgen.Path, kind Kind) (Literal, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		if kind == KindDate {
			iso, err := codec.Canonical(t)
			if err != nil {
				return Literal{}, zodgen.Malformed(p, "date literal %q: %v", t, err)
			}
			return Date(iso), nil
		}
		return String(t), nil
	}
	if text, ok := numberText(v); ok {
		if !isJSONNumber(text) {
			return Literal{}, zodgen.Malformed(p, "number %q has no literal form", text)
		}
		if kind == KindDate {
			iso, err := codec.Canonical(text)
			if err != nil {
				return Literal{}, zodgen.Malformed(p, "date literal %s: %v", text, err)
			}
			return Date(iso), nil
		}
		return Number(text), nil
	}
	return Literal{}, zodgen.Malformed(p, "value is not representable as a literal: %s", typeName(v))
}

func numberText(v any) (string, bool) {
	switch t := v.(type) {
	case source.Number:
		return string(t), true
	case json.Number:
		return string(t), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return "", false
		}
		return strconv.FormatFloat(t, 'g', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case int32:
		return strconv.FormatInt(int64(t), 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case uint:
		return strconv.FormatUint(uint64(t), 10), true
	}
	return "", false
}

// isJSONNumber reports whether s follows the JSON number grammar, which is
// also a valid JavaScript numeric literal.
func isJSONNumber(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	digits := func() int {
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		return i - start
	}
	if i < len(s) && s[i] == '0' {
		i++
	} else if digits() == 0 {
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		if digits() == 0 {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if digits() == 0 {
			return false
		}
	}
	return i == len(s)
}

func (n *normalizer) meta(obj rawObject, out *Node, p zodgen.Path) error {
	if v, ok := obj.Get("metas"); ok && v != nil {
		list, ok := v.([]any)
		if !ok {
			return zodgen.Malformed(p.Field("metas"), "metas must be a list, got %s", typeName(v))
		}
		for i, it := range list {
			mo, ok := asObject(it)
			if !ok {
				continue
			}
			if err := n.className(mo, out, p.Field("metas").Index(i)); err != nil {
				return err
			}
		}
	}
	if v, ok := obj.Get("metadata"); ok && v != nil {
		mo, ok := asObject(v)
		if !ok {
			return zodgen.Malformed(p.Field("metadata"), "metadata must be an object, got %s", typeName(v))
		}
		if err := n.className(mo, out, p.Field("metadata")); err != nil {
			return err
		}
	}
	return nil
}

func (n *normalizer) className(mo rawObject, out *Node, p zodgen.Path) error {
	v, ok := mo.Get("className")
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok || !zodgen.IsIdentifier(s) {
		return zodgen.Malformed(p.Field("className"), "className must be an identifier")
	}
	if out.Meta.ClassName == "" {
		out.Meta.ClassName = s
	}
	return nil
}

func (n *normalizer) children(obj rawObject, out *Node, p zodgen.Path, depth int) error {
	for _, key := range []string{"keys", "items", "matches", "link"} {
		v, ok := obj.Get(key)
		if !ok || v == nil {
			continue
		}
		kp := p.Field(key)
		want := map[string]Kind{"keys": KindObject, "items": KindArray, "matches": KindAlternatives, "link": KindLink}[key]
		if out.Kind != want {
			return zodgen.Malformed(kp, "%s present on a %s node", key, out.Kind)
		}
		switch key {
		case "keys":
			ko, ok := asObject(v)
			if !ok {
				return zodgen.Malformed(kp, "keys must be an object, got %s", typeName(v))
			}
			out.Keys = []Property{}
			seen := map[string]struct{}{}
			for _, name := range ko.Keys() {
				if _, dup := seen[name]; dup {
					return zodgen.Malformed(p.Field(name), "duplicate key %q", name)
				}
				seen[name] = struct{}{}
				cv, _ := ko.Get(name)
				child, err := n.node(cv, p.Field(name), depth+1)
				if err != nil {
					return err
				}
				out.Keys = append(out.Keys, Property{Name: name, Node: child})
			}
		case "items":
			list, ok := v.([]any)
			if !ok {
				return zodgen.Malformed(kp, "items must be a list, got %s", typeName(v))
			}
			for i, it := range list {
				child, err := n.node(it, kp.Index(i), depth+1)
				if err != nil {
					return err
				}
				out.Items = append(out.Items, child)
			}
		case "matches":
			list, ok := v.([]any)
			if !ok {
				return zodgen.Malformed(kp, "matches must be a list, got %s", typeName(v))
			}
			for i, it := range list {
				m, err := n.match(it, kp.Index(i), depth)
				if err != nil {
					return err
				}
				out.Matches = append(out.Matches, m)
			}
		case "link":
			name, err := linkTarget(v)
			if err != nil {
				return zodgen.Malformed(kp, "%v", err)
			}
			out.Link = name
		}
	}
	if out.Kind == KindLink && out.Link == "" {
		return zodgen.Malformed(p.Field("link"), "link node without target")
	}
	return nil
}

func (n *normalizer) match(v any, p zodgen.Path, depth int) (Match, error) {
	mo, ok := asObject(v)
	if !ok {
		return Match{}, zodgen.Malformed(p, "match must be an object, got %s", typeName(v))
	}
	if _, ok := mo.Get("switch"); ok {
		return Match{}, &zodgen.UnsupportedFeatureError{Feature: "switch", Path: p.Field("switch").String()}
	}
	if _, ok := mo.Get("type"); ok {
		child, err := n.node(v, p, depth+1)
		if err != nil {
			return Match{}, err
		}
		return Match{Schema: child}, nil
	}
	if sv, ok := mo.Get("schema"); ok {
		child, err := n.node(sv, p.Field("schema"), depth+1)
		if err != nil {
			return Match{}, err
		}
		return Match{Schema: child}, nil
	}
	g, err := n.guard(v, p, depth)
	if err != nil {
		return Match{}, err
	}
	return Match{Guard: g}, nil
}

func (n *normalizer) guard(v any, p zodgen.Path, depth int) (*Guard, error) {
	gobj, ok := asObject(v)
	if !ok {
		return nil, zodgen.Malformed(p, "condition must be an object, got %s", typeName(v))
	}
	if _, ok := gobj.Get("switch"); ok {
		return nil, &zodgen.UnsupportedFeatureError{Feature: "switch", Path: p.Field("switch").String()}
	}
	g := &Guard{}
	if rv, ok := gobj.Get("referenceKey"); ok {
		s, ok := rv.(string)
		if !ok || s == "" {
			return nil, zodgen.Malformed(p.Field("referenceKey"), "referenceKey must be a non-empty string")
		}
		g.Ref = s
	} else if rv, ok := gobj.Get("ref"); ok {
		ref, err := refPath(rv)
		if err != nil {
			if _, unsupported := err.(errUnsupportedRef); unsupported {
				return nil, &zodgen.UnsupportedFeatureError{Feature: "reference", Path: p.Field("ref").String()}
			}
			return nil, zodgen.Malformed(p.Field("ref"), "%v", err)
		}
		g.Ref = ref
	} else {
		return nil, zodgen.Malformed(p, "condition without reference")
	}
	var err error
	if g.Is, err = n.operand(gobj, "is", p, depth); err != nil {
		return nil, err
	}
	if g.Not, err = n.operand(gobj, "not", p, depth); err != nil {
		return nil, err
	}
	if g.Is != nil && g.Not != nil {
		return nil, zodgen.Malformed(p, "condition has both is and not")
	}
	for _, key := range []string{"then", "otherwise"} {
		bv, ok := gobj.Get(key)
		if !ok || bv == nil {
			continue
		}
		b, err := n.node(bv, p.Field(key), depth+1)
		if err != nil {
			return nil, err
		}
		if key == "then" {
			g.Then = b
		} else {
			g.Otherwise = b
		}
	}
	if g.Then == nil && g.Otherwise == nil {
		return nil, zodgen.Malformed(p, "condition without then or otherwise")
	}
	return g, nil
}

// operand reads is/not. A literal is lifted to a required exclusive
// allow-list of that single value.
func (n *normalizer) operand(gobj rawObject, key string, p zodgen.Path, depth int) (*Node, error) {
	v, ok := gobj.Get(key)
	if !ok {
		return nil, nil
	}
	if _, isObj := asObject(v); isObj {
		return n.node(v, p.Field(key), depth+1)
	}
	lit, err := n.literal(v, p.Field(key), "")
	if err != nil {
		return nil, err
	}
	return &Node{
		Kind:   KindAny,
		Flags:  Flags{Presence: PresenceRequired, Only: true},
		Valids: []Literal{lit},
	}, nil
}

type errUnsupportedRef string

func (e errUnsupportedRef) Error() string { return string(e) }

// refPath reads a sibling reference: a plain "a.b" string or a Joi ref
// description {path: [...], ancestor?: 1}.
func refPath(v any) (string, error) {
	if s, ok := v.(string); ok {
		if s == "" {
			return "", fmt.Errorf("empty reference")
		}
		if strings.HasPrefix(s, "$") || strings.HasPrefix(s, "/") {
			return "", errUnsupportedRef("context or root reference")
		}
		return s, nil
	}
	ro, ok := asObject(v)
	if !ok {
		return "", fmt.Errorf("reference must be a string or object, got %s", typeName(v))
	}
	if t, ok := ro.Get("type"); ok {
		if s, _ := t.(string); s != "" && s != "value" {
			return "", errUnsupportedRef("reference of type " + s)
		}
	}
	if a, ok := ro.Get("ancestor"); ok {
		if text, isNum := numberText(a); !isNum || text != "1" {
			return "", errUnsupportedRef("ancestor reference")
		}
	}
	pv, ok := ro.Get("path")
	if !ok {
		return "", fmt.Errorf("reference without path")
	}
	list, ok := pv.([]any)
	if !ok || len(list) == 0 {
		return "", fmt.Errorf("reference path must be a non-empty list")
	}
	parts := make([]string, 0, len(list))
	for _, it := range list {
		s, ok := it.(string)
		if !ok {
			return "", fmt.Errorf("reference path segments must be strings")
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "."), nil
}

// linkTarget reads "#Name", "Name" or {ref: {path: [..., "Name"]}}.
func linkTarget(v any) (string, error) {
	if s, ok := v.(string); ok {
		s = strings.TrimPrefix(s, "#")
		if !zodgen.IsIdentifier(s) {
			return "", fmt.Errorf("link target %q is not an identifier", s)
		}
		return s, nil
	}
	lo, ok := asObject(v)
	if !ok {
		return "", fmt.Errorf("link must be a string or object, got %s", typeName(v))
	}
	rv, ok := lo.Get("ref")
	if !ok {
		return "", fmt.Errorf("link without ref")
	}
	if s, ok := rv.(string); ok {
		return linkTarget(s)
	}
	ro, ok := asObject(rv)
	if !ok {
		return "", fmt.Errorf("link ref must be a string or object")
	}
	pv, _ := ro.Get("path")
	list, _ := pv.([]any)
	if len(list) == 0 {
		return "", fmt.Errorf("link ref without path")
	}
	last, ok := list[len(list)-1].(string)
	if !ok {
		return "", fmt.Errorf("link ref path segments must be strings")
	}
	return linkTarget(last)
}
