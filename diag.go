package zodgen

import "fmt"

// Diag carries non-fatal warnings produced during compilation.
type Diag interface {
	HasWarnings() bool
	Warnings() []Issue
}

// Diagnostics is the default Diag implementation. The zero value is ready
// to use and is scoped to a single compilation.
type Diagnostics struct{ ws []Issue }

func (d *Diagnostics) HasWarnings() bool { return len(d.ws) > 0 }
func (d *Diagnostics) Warnings() []Issue { return append([]Issue(nil), d.ws...) }

// Warnf records a warning at the given path.
func (d *Diagnostics) Warnf(p Path, code string, f string, a ...any) {
	d.ws = append(d.ws, Issue{Path: p.String(), Code: code, Message: fmt.Sprintf(f, a...)})
}

// Add appends already-built issues, for example the warnings of another
// compilation.
func (d *Diagnostics) Add(is ...Issue) { d.ws = append(d.ws, is...) }
