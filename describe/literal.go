package describe

import "strconv"

// LiteralKind distinguishes literal value kinds at emission time.
type LiteralKind int

const (
	LitString LiteralKind = iota
	LitNumber
	LitBool
	LitNull
	LitDate
)

// Literal is a scalar value carried by a description (defaults, valids,
// rule arguments). Numbers keep their source text; dates are canonical
// ISO-8601 UTC strings.
type Literal struct {
	Kind LiteralKind
	Text string
	Bool bool
}

// String returns a string literal.
func String(s string) Literal { return Literal{Kind: LitString, Text: s} }

// Number returns a number literal from its source text.
func Number(text string) Literal { return Literal{Kind: LitNumber, Text: text} }

// Bool returns a boolean literal.
func Bool(b bool) Literal { return Literal{Kind: LitBool, Bool: b} }

// Null returns the null literal.
func Null() Literal { return Literal{Kind: LitNull} }

// Date returns a date literal from a canonical ISO-8601 string.
func Date(iso string) Literal { return Literal{Kind: LitDate, Text: iso} }

// Int reports the literal as an int when it is an integral number.
func (l Literal) Int() (int, bool) {
	if l.Kind != LitNumber {
		return 0, false
	}
	i, err := strconv.Atoi(l.Text)
	return i, err == nil
}

// Equal reports whether two literals are the same value.
func (l Literal) Equal(o Literal) bool { return l == o }

func (l Literal) String() string {
	switch l.Kind {
	case LitString:
		return strconv.Quote(l.Text)
	case LitBool:
		return strconv.FormatBool(l.Bool)
	case LitNull:
		return "null"
	default:
		return l.Text
	}
}
