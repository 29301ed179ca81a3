package emit

// Prec is the binding strength of a fragment when it is composed into a
// larger expression.
type Prec int

const (
	PrecPrimary Prec = iota // identifiers and literals
	PrecMember              // call and member chains
	PrecOther               // anything that needs parentheses before chaining
)

// Fragment is the generated text of one schema node. Fragments are values;
// two equal subtrees always produce equal fragments.
type Fragment struct {
	Text string
	Prec Prec
}

func ident(name string) Fragment { return Fragment{Text: name, Prec: PrecPrimary} }

func call(text string) Fragment { return Fragment{Text: text, Prec: PrecMember} }

// Chain appends a method-call suffix such as ".min(1)".
func (f Fragment) Chain(suffix string) Fragment {
	if suffix == "" {
		return f
	}
	t := f.Text
	if f.Prec == PrecOther {
		t = "(" + t + ")"
	}
	return Fragment{Text: t + suffix, Prec: PrecMember}
}

func (f Fragment) String() string { return f.Text }
