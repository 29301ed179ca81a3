// Package describe defines the normalized description tree consumed by the
// compiler and the normalizer that builds it from raw Joi describe() output.
//
// A Node is a closed variant on Kind. Only the fields belonging to a kind are
// ever populated by Normalize: Keys for objects, Items for arrays, Matches for
// alternatives and Link for links. Whens may appear on any kind.
package describe

// Kind identifies the schema type of a node.
type Kind string

const (
	KindAny          Kind = "any"
	KindString       Kind = "string"
	KindNumber       Kind = "number"
	KindBoolean      Kind = "boolean"
	KindDate         Kind = "date"
	KindBinary       Kind = "binary"
	KindSymbol       Kind = "symbol"
	KindFunction     Kind = "function"
	KindObject       Kind = "object"
	KindArray        Kind = "array"
	KindAlternatives Kind = "alternatives"
	KindLink         Kind = "link"
	KindForbidden    Kind = "forbidden"
)

var kinds = map[Kind]struct{}{
	KindAny: {}, KindString: {}, KindNumber: {}, KindBoolean: {}, KindDate: {},
	KindBinary: {}, KindSymbol: {}, KindFunction: {}, KindObject: {}, KindArray: {},
	KindAlternatives: {}, KindLink: {}, KindForbidden: {},
}

// Valid reports whether k belongs to the closed set of kinds.
func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// Presence is the presence flag of a node.
type Presence int

const (
	PresenceUnset Presence = iota // No explicit flag; context decides.
	PresenceRequired
	PresenceOptional
	PresenceForbidden
)

func (p Presence) String() string {
	switch p {
	case PresenceRequired:
		return "required"
	case PresenceOptional:
		return "optional"
	case PresenceForbidden:
		return "forbidden"
	default:
		return "unset"
	}
}

// Flags holds the per-node flags.
type Flags struct {
	Presence    Presence
	Default     *Literal
	Label       string
	Description string
	Strip       bool // value is dropped after validation
	Only        bool // Valids is an exclusive allow-list
	Unknown     bool // object accepts undeclared keys
}

// Meta is the fixed metadata carried by a node.
type Meta struct {
	ClassName string // names a standalone declaration
	ID        string // Joi schema id, target of links
}

// Rule is one constraint in application order. Options holds the rule's
// option bag in key order; it is nil when the bag is absent or empty.
type Rule struct {
	Name    string
	Args    []Literal
	Options []Option
}

// Option is one entry of a rule option bag. A scalar yields one value and a
// list of scalars yields one value per element. Nested is set for values
// with no literal form (objects, lists of objects); Values is then empty.
type Option struct {
	Name   string
	Values []Literal
	Nested bool
}

// Property is one object key in declaration order.
type Property struct {
	Name string
	Node *Node
}

// Guard is a branch predicate over a sibling field.
type Guard struct {
	Ref       string // dotted path of the sibling field
	Is        *Node
	Not       *Node
	Then      *Node
	Otherwise *Node
}

// Match is one alternatives branch: either a plain schema or a guard.
type Match struct {
	Schema *Node
	Guard  *Guard
}

// Node is one description tree node.
type Node struct {
	Kind  Kind
	Flags Flags
	Rules []Rule

	Valids   []Literal // exclusive when Flags.Only
	Allow    []Literal // additive allow-list
	Invalids []Literal

	// Keys is nil when the object declares no keys at all (any key accepted)
	// and non-nil, possibly empty, when keys were declared.
	Keys    []Property
	Items   []*Node
	Matches []Match
	Whens   []Guard

	Meta Meta
	Link string
}

// Clone returns a shallow copy of n with its slices copied, so the copy can
// be extended without touching n.
func (n *Node) Clone() *Node {
	c := *n
	c.Rules = append([]Rule(nil), n.Rules...)
	c.Valids = append([]Literal(nil), n.Valids...)
	c.Allow = append([]Literal(nil), n.Allow...)
	c.Invalids = append([]Literal(nil), n.Invalids...)
	if n.Keys != nil {
		c.Keys = append([]Property{}, n.Keys...)
	}
	c.Items = append([]*Node(nil), n.Items...)
	c.Matches = append([]Match(nil), n.Matches...)
	c.Whens = append([]Guard(nil), n.Whens...)
	return &c
}

// Concat merges an any-typed branch into a copy of base the way Joi
// concatenates when() branches: explicit flags of branch win, rules and
// value lists are appended. A branch of any other kind replaces base. The
// merged node is anonymous: it keeps neither the base's conditions nor its
// metadata.
func Concat(base, branch *Node) *Node {
	if branch == nil {
		return base
	}
	if branch.Kind != KindAny {
		return branch
	}
	c := base.Clone()
	c.Whens = nil
	c.Meta = Meta{}
	bf := branch.Flags
	if bf.Presence != PresenceUnset {
		c.Flags.Presence = bf.Presence
	}
	if bf.Default != nil {
		c.Flags.Default = bf.Default
	}
	if bf.Label != "" {
		c.Flags.Label = bf.Label
	}
	if bf.Description != "" {
		c.Flags.Description = bf.Description
	}
	c.Flags.Strip = c.Flags.Strip || bf.Strip
	if bf.Only {
		c.Flags.Only = true
		c.Valids = append(c.Valids, branch.Valids...)
	}
	c.Rules = append(c.Rules, branch.Rules...)
	c.Allow = append(c.Allow, branch.Allow...)
	c.Invalids = append(c.Invalids, branch.Invalids...)
	return c
}
