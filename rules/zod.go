package rules

import (
	"errors"
	"fmt"

	"github.com/reoring/zodgen/codec"
	"github.com/reoring/zodgen/describe"
)

// Zod returns a fresh copy of the Zod rule table.
func Zod() *Table { return zod.Clone() }

var zod = buildZod()

func buildZod() *Table {
	t := New()

	// string
	for _, m := range []string{"min", "max", "length"} {
		t.Register(describe.KindString, m, numeric(m))
	}
	t.Register(describe.KindString, "email", noArgs(".email()")).
		Register(describe.KindString, "uri", noArgs(".url()")).
		Register(describe.KindString, "guid", guid).
		Alias(describe.KindString, "uuid", "guid").
		Register(describe.KindString, "pattern", pattern).
		Alias(describe.KindString, "regex", "pattern").
		Register(describe.KindString, "alphanum", noArgs(".regex(/^[a-zA-Z0-9]+$/)")).
		Register(describe.KindString, "token", noArgs(".regex(/^\\w+$/)")).
		Register(describe.KindString, "hex", hex).
		Register(describe.KindString, "lowercase", noArgs(".toLowerCase()")).
		Register(describe.KindString, "uppercase", noArgs(".toUpperCase()")).
		Register(describe.KindString, "case", Plain(stringCase)).
		Register(describe.KindString, "trim", Plain(trim)).
		Register(describe.KindString, "isoDate", noArgs(".datetime()")).
		Register(describe.KindString, "ip", ip).
		Register(describe.KindString, "base64", base64)

	// number
	t.Register(describe.KindNumber, "min", numeric("min")).
		Register(describe.KindNumber, "max", numeric("max")).
		Register(describe.KindNumber, "greater", numeric("gt")).
		Register(describe.KindNumber, "less", numeric("lt")).
		Register(describe.KindNumber, "integer", noArgs(".int()")).
		Register(describe.KindNumber, "multiple", numeric("multipleOf")).
		Register(describe.KindNumber, "positive", noArgs(".positive()")).
		Register(describe.KindNumber, "negative", noArgs(".negative()")).
		Register(describe.KindNumber, "sign", Plain(sign)).
		Register(describe.KindNumber, "port", noArgs(".int().min(0).max(65535)"))

	// date
	t.Register(describe.KindDate, "min", dateBound("min", "")).
		Register(describe.KindDate, "max", dateBound("max", "")).
		Register(describe.KindDate, "greater", dateBound("", ">")).
		Register(describe.KindDate, "less", dateBound("", "<"))

	// array
	for _, m := range []string{"min", "max", "length"} {
		t.Register(describe.KindArray, m, numeric(m))
	}
	t.Register(describe.KindArray, "unique", Plain(unique))

	// binary and object sizes have no native method
	for kind, measure := range map[describe.Kind]string{
		describe.KindBinary: "value.length",
		describe.KindObject: "Object.keys(value).length",
	} {
		unit := "bytes"
		if kind == describe.KindObject {
			unit = "keys"
		}
		t.Register(kind, "min", refine(
			func(n string) string { return measure + " >= " + n },
			func(n string) string { return fmt.Sprintf("must contain at least %s %s", n, unit) }))
		t.Register(kind, "max", refine(
			func(n string) string { return measure + " <= " + n },
			func(n string) string { return fmt.Sprintf("must contain at most %s %s", n, unit) }))
		t.Register(kind, "length", refine(
			func(n string) string { return measure + " === " + n },
			func(n string) string { return fmt.Sprintf("must contain exactly %s %s", n, unit) }))
	}
	return t
}

// pattern honours Joi's invert option with a negated refinement. The name
// option only labels the pattern and ends up in the message.
func pattern(args []describe.Literal, opts []describe.Option) (string, error) {
	src, err := str(args, 0)
	if err != nil {
		return "", err
	}
	var (
		invert bool
		label  = src
		named  bool
	)
	for _, o := range opts {
		switch {
		case o.Name == "invert" && scalar(o, describe.LitBool):
			invert = o.Values[0].Bool
		case o.Name == "name" && scalar(o, describe.LitString):
			label, named = o.Values[0].Text, true
		default:
			return "", fmt.Errorf("%w: pattern option %q", ErrUnsupportedArgs, o.Name)
		}
	}
	re := Regex(src)
	if invert {
		return Refinement("!"+re+".test(value)", "must not match "+label), nil
	}
	if named {
		return ".regex(" + re + ", { message: " + Quote("must match "+label) + " })", nil
	}
	return ".regex(" + re + ")", nil
}

func scalar(o describe.Option, kind describe.LiteralKind) bool {
	return !o.Nested && len(o.Values) == 1 && o.Values[0].Kind == kind
}

func stringValues(o describe.Option) ([]string, bool) {
	if o.Nested || len(o.Values) == 0 {
		return nil, false
	}
	out := make([]string, 0, len(o.Values))
	for _, v := range o.Values {
		if v.Kind != describe.LitString {
			return nil, false
		}
		out = append(out, v.Text)
	}
	return out, true
}

// uuidVersion maps Joi guid versions to the RFC 4122 version digit.
var uuidVersion = map[string]byte{
	"uuidv1": '1', "uuidv2": '2', "uuidv3": '3', "uuidv4": '4',
	"uuidv5": '5', "uuidv6": '6', "uuidv7": '7', "uuidv8": '8',
}

// guid restricts versions with a pattern on the version nibble. Only the
// dash separator exists in the target.
func guid(args []describe.Literal, opts []describe.Option) (string, error) {
	if len(args) > 0 {
		return "", fmt.Errorf("%w: guid arguments", ErrUnsupportedArgs)
	}
	out := ".uuid()"
	for _, o := range opts {
		switch o.Name {
		case "version":
			vs, ok := stringValues(o)
			if !ok {
				return "", fmt.Errorf("%w: guid version", ErrUnsupportedArgs)
			}
			digits := make([]byte, 0, len(vs))
			for _, v := range vs {
				d, ok := uuidVersion[v]
				if !ok {
					return "", fmt.Errorf("%w: guid version %q", ErrUnsupportedArgs, v)
				}
				digits = append(digits, d)
			}
			out += ".regex(/^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[" + string(digits) + "]/)"
		case "separator":
			if !scalar(o, describe.LitString) || o.Values[0].Text != "-" {
				return "", fmt.Errorf("%w: guid separator", ErrUnsupportedArgs)
			}
		default:
			return "", fmt.Errorf("%w: guid option %q", ErrUnsupportedArgs, o.Name)
		}
	}
	return out, nil
}

// ip maps a single IP version onto the target's version option and a
// required CIDR onto .cidr(). Optional CIDR and IPvFuture have no
// equivalent.
func ip(args []describe.Literal, opts []describe.Option) (string, error) {
	if len(args) > 0 {
		return "", fmt.Errorf("%w: ip arguments", ErrUnsupportedArgs)
	}
	method, version := "ip", ""
	for _, o := range opts {
		switch o.Name {
		case "version":
			vs, ok := stringValues(o)
			if !ok {
				return "", fmt.Errorf("%w: ip version", ErrUnsupportedArgs)
			}
			v4, v6 := false, false
			for _, v := range vs {
				switch v {
				case "ipv4":
					v4 = true
				case "ipv6":
					v6 = true
				default:
					return "", fmt.Errorf("%w: ip version %q", ErrUnsupportedArgs, v)
				}
			}
			switch {
			case v4 && !v6:
				version = "v4"
			case v6 && !v4:
				version = "v6"
			}
		case "cidr":
			if !scalar(o, describe.LitString) {
				return "", fmt.Errorf("%w: ip cidr", ErrUnsupportedArgs)
			}
			switch o.Values[0].Text {
			case "forbidden":
			case "required":
				method = "cidr"
			default:
				return "", fmt.Errorf("%w: ip cidr %q", ErrUnsupportedArgs, o.Values[0].Text)
			}
		default:
			return "", fmt.Errorf("%w: ip option %q", ErrUnsupportedArgs, o.Name)
		}
	}
	if version != "" {
		return "." + method + "({ version: " + Quote(version) + " })", nil
	}
	return "." + method + "()", nil
}

func hex(args []describe.Literal, opts []describe.Option) (string, error) {
	if err := noOptions(opts, defaultOption("byteAligned", describe.Bool(false))); err != nil {
		return "", err
	}
	if len(args) > 0 {
		return "", fmt.Errorf("%w: hex arguments", ErrUnsupportedArgs)
	}
	return ".regex(/^[a-fA-F0-9]+$/)", nil
}

func base64(args []describe.Literal, opts []describe.Option) (string, error) {
	if err := noOptions(opts,
		defaultOption("paddingRequired", describe.Bool(true)),
		defaultOption("urlSafe", describe.Bool(false))); err != nil {
		return "", err
	}
	if len(args) > 0 {
		return "", fmt.Errorf("%w: base64 arguments", ErrUnsupportedArgs)
	}
	return ".base64()", nil
}

// trim takes Joi's optional enabled argument; trim(false) adds nothing.
func trim(args []describe.Literal) (string, error) {
	if len(args) == 0 {
		return ".trim()", nil
	}
	if args[0].Kind != describe.LitBool {
		return "", fmt.Errorf("argument 0 must be a boolean")
	}
	if !args[0].Bool {
		return "", nil
	}
	return ".trim()", nil
}

func stringCase(args []describe.Literal) (string, error) {
	dir, err := str(args, 0)
	if err != nil {
		return "", err
	}
	switch dir {
	case "lower":
		return ".toLowerCase()", nil
	case "upper":
		return ".toUpperCase()", nil
	}
	return "", fmt.Errorf("unknown case direction %q", dir)
}

func sign(args []describe.Literal) (string, error) {
	s, err := str(args, 0)
	if err != nil {
		return "", err
	}
	switch s {
	case "positive", "negative":
		return "." + s + "()", nil
	}
	return "", fmt.Errorf("unknown sign %q", s)
}

// dateBound renders an inclusive bound as a native method, or an exclusive
// one as a refinement comparing against the instant.
func dateBound(method, op string) Emitter {
	return Plain(func(args []describe.Literal) (string, error) {
		if len(args) == 0 {
			return "", fmt.Errorf("argument 0 must be a date")
		}
		a := args[0]
		switch a.Kind {
		case describe.LitString, describe.LitNumber, describe.LitDate:
		default:
			return "", fmt.Errorf("argument 0 must be a date")
		}
		iso, err := codec.Canonical(a.Text)
		if errors.Is(err, codec.ErrRelativeDate) {
			return "", fmt.Errorf("%w: %v", ErrUnsupportedArgs, err)
		}
		if err != nil {
			return "", err
		}
		d := Literal(describe.Date(iso))
		if method != "" {
			return "." + method + "(" + d + ")", nil
		}
		word := "after"
		if op == "<" {
			word = "before"
		}
		return Refinement("value "+op+" "+d, "must be "+word+" "+iso), nil
	})
}

func unique(args []describe.Literal) (string, error) {
	if len(args) > 0 {
		// comparators and key paths cannot be frozen into a Set check
		return "", fmt.Errorf("%w: unique with comparator", ErrUnsupportedArgs)
	}
	return Refinement("new Set(value).size === value.length", "array items must be unique"), nil
}
