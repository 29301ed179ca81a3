// Package gen assembles generated TypeScript text from named declarations
// and a top-level expression.
package gen

import (
	"errors"
	"strings"
)

// ErrConflict is returned when a name is declared twice with different
// expressions.
var ErrConflict = errors.New("gen: conflicting declaration")

// Decl is one named declaration.
type Decl struct {
	Name string
	Expr string
}

// Registry collects declarations in completion order. It is scoped to a
// single compilation and is not safe for concurrent use.
type Registry struct {
	decls []Decl
	index map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{index: map[string]int{}} }

// Declare records name = expr. Declaring the same pair again is a no-op;
// declaring name with a different expr returns ErrConflict.
func (r *Registry) Declare(name, expr string) error {
	if i, ok := r.index[name]; ok {
		if r.decls[i].Expr != expr {
			return ErrConflict
		}
		return nil
	}
	r.index[name] = len(r.decls)
	r.decls = append(r.decls, Decl{Name: name, Expr: expr})
	return nil
}

// Has reports whether name has been declared.
func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Lookup returns the expression declared under name.
func (r *Registry) Lookup(name string) (string, bool) {
	i, ok := r.index[name]
	if !ok {
		return "", false
	}
	return r.decls[i].Expr, true
}

// Decls returns the declarations in completion order.
func (r *Registry) Decls() []Decl { return append([]Decl(nil), r.decls...) }

// Len reports the number of declarations.
func (r *Registry) Len() int { return len(r.decls) }

// Layout controls the surroundings of the generated code.
type Layout struct {
	Header string // comment placed first, one "// " line per input line
	Import bool   // emit the import line for the builder identifier
	Ident  string // builder identifier, "z" when empty
	Export bool   // prefix declarations with "export"
}

// Render joins the parts with blank lines: header and import, declarations
// in registry order, then top. Registry order is completion order, so a
// declaration follows every declaration it references by name; const
// bindings would otherwise be read before initialization. Only z.lazy links
// may point forward. An empty top is omitted, which is how a
// declared root is rendered. Output without header, import and declarations
// is exactly top.
func Render(r *Registry, top string, l Layout) string {
	var parts []string
	var preamble []string
	if l.Header != "" {
		for _, line := range strings.Split(strings.TrimRight(l.Header, "\n"), "\n") {
			preamble = append(preamble, strings.TrimRight("// "+line, " "))
		}
	}
	if l.Import {
		preamble = append(preamble, importLine(l.Ident))
	}
	if len(preamble) > 0 {
		parts = append(parts, strings.Join(preamble, "\n"))
	}
	if r != nil {
		for _, d := range r.decls {
			parts = append(parts, declaration(d, l.Export))
		}
	}
	if top != "" {
		parts = append(parts, top)
	}
	return strings.Join(parts, "\n\n")
}

func declaration(d Decl, export bool) string {
	b := &strings.Builder{}
	if export {
		b.WriteString("export ")
	}
	b.WriteString("const ")
	b.WriteString(d.Name)
	b.WriteString(" = ")
	b.WriteString(d.Expr)
	b.WriteString(";")
	return b.String()
}

func importLine(ident string) string {
	if ident == "" || ident == "z" {
		return `import { z } from "zod";`
	}
	return `import { z as ` + ident + ` } from "zod";`
}
