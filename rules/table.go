// Package rules maps description rules to target builder calls.
//
// A Table is keyed by (kind, rule name). Each entry is an Emitter returning
// the method-call suffix chained onto the node's fragment, for example
// ".min(10)". Lookups that miss are reported by the caller as unsupported
// rules; nothing is ever dropped silently.
package rules

import (
	"errors"
	"fmt"
	"sort"

	"github.com/reoring/zodgen/describe"
)

// Emitter renders one rule invocation as a chained call suffix. An emitter
// that does not model an option must fail with ErrUnsupportedArgs rather
// than ignore it.
type Emitter func(args []describe.Literal, opts []describe.Option) (string, error)

// ErrUnsupportedArgs marks rule arguments or options that are well formed
// but have no equivalent in the target (for example a relative date).
var ErrUnsupportedArgs = errors.New("rules: arguments not supported by target")

// Table is a (kind, rule) -> Emitter mapping. The zero value is empty and
// read-only; use New or Zod to obtain a writable table.
type Table struct {
	m map[describe.Kind]map[string]Emitter
}

// New returns an empty table.
func New() *Table { return &Table{m: map[describe.Kind]map[string]Emitter{}} }

// Register adds or replaces the emitter for (kind, name) and returns t.
func (t *Table) Register(kind describe.Kind, name string, e Emitter) *Table {
	if t.m == nil {
		t.m = map[describe.Kind]map[string]Emitter{}
	}
	byName := t.m[kind]
	if byName == nil {
		byName = map[string]Emitter{}
		t.m[kind] = byName
	}
	byName[name] = e
	return t
}

// Alias registers name as another spelling of an existing rule.
func (t *Table) Alias(kind describe.Kind, name, target string) *Table {
	e, ok := t.Lookup(kind, target)
	if !ok {
		panic(fmt.Sprintf("rules: alias %s.%s targets unknown rule %s", kind, name, target))
	}
	return t.Register(kind, name, e)
}

// Lookup returns the emitter for (kind, name).
func (t *Table) Lookup(kind describe.Kind, name string) (Emitter, bool) {
	if t == nil {
		return nil, false
	}
	e, ok := t.m[kind][name]
	return e, ok && e != nil
}

// Names lists the rules registered for kind in sorted order.
func (t *Table) Names(kind describe.Kind) []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.m[kind]))
	for name := range t.m[kind] {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy of t.
func (t *Table) Clone() *Table {
	c := New()
	if t == nil {
		return c
	}
	for kind, byName := range t.m {
		for name, e := range byName {
			c.Register(kind, name, e)
		}
	}
	return c
}

// argument helpers

// Plain adapts an emitter that takes positional arguments only. Any option
// is reported as unsupported.
func Plain(f func(args []describe.Literal) (string, error)) Emitter {
	return func(args []describe.Literal, opts []describe.Option) (string, error) {
		if err := noOptions(opts); err != nil {
			return "", err
		}
		return f(args)
	}
}

func noOptions(opts []describe.Option, allowed ...func(describe.Option) bool) error {
next:
	for _, o := range opts {
		for _, ok := range allowed {
			if ok(o) {
				continue next
			}
		}
		return fmt.Errorf("%w: option %q", ErrUnsupportedArgs, o.Name)
	}
	return nil
}

// defaultOption accepts an option set to the value the target already
// assumes, for example hex byteAligned=false.
func defaultOption(name string, want describe.Literal) func(describe.Option) bool {
	return func(o describe.Option) bool {
		return o.Name == name && !o.Nested && len(o.Values) == 1 && o.Values[0] == want
	}
}

func noArgs(call string) Emitter {
	return Plain(func([]describe.Literal) (string, error) { return call, nil })
}

func number(args []describe.Literal, i int) (string, error) {
	if i >= len(args) || args[i].Kind != describe.LitNumber {
		return "", fmt.Errorf("argument %d must be a number", i)
	}
	return args[i].Text, nil
}

func str(args []describe.Literal, i int) (string, error) {
	if i >= len(args) || args[i].Kind != describe.LitString {
		return "", fmt.Errorf("argument %d must be a string", i)
	}
	return args[i].Text, nil
}

// single reads the only numeric argument. Extra arguments such as a string
// length encoding have no target equivalent.
func single(args []describe.Literal) (string, error) {
	n, err := number(args, 0)
	if err != nil {
		return "", err
	}
	if len(args) > 1 {
		return "", fmt.Errorf("%w: %d arguments", ErrUnsupportedArgs, len(args))
	}
	return n, nil
}

// numeric renders ".<method>(<n>)" from the only argument.
func numeric(method string) Emitter {
	return Plain(func(args []describe.Literal) (string, error) {
		n, err := single(args)
		if err != nil {
			return "", err
		}
		return "." + method + "(" + n + ")", nil
	})
}

// refine renders a refinement whose predicate is built from the only
// numeric argument.
func refine(pred func(n string) string, msg func(n string) string) Emitter {
	return Plain(func(args []describe.Literal) (string, error) {
		n, err := single(args)
		if err != nil {
			return "", err
		}
		return Refinement(pred(n), msg(n)), nil
	})
}

// Refinement renders ".refine((value) => <pred>, { message: <msg> })".
func Refinement(pred, msg string) string {
	return ".refine((value) => " + pred + ", { message: " + Quote(msg) + " })"
}
