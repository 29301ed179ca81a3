package zodgen

import (
	"strconv"
	"strings"
)

// Path is a dot/bracket path from the root description node, rendered as
// $, $.username, $.tags.items[0] or $["first name"]. Paths are values; every
// builder call returns a new Path and never aliases the receiver's parts.
type Path struct {
	parts []string
}

// Root returns the path of the root description node.
func Root() Path { return Path{} }

// Field appends a property or structural segment.
func (p Path) Field(name string) Path {
	seg := "." + name
	if !IsIdentifier(name) {
		seg = "[" + strconv.Quote(name) + "]"
	}
	return p.with(seg)
}

// Index appends a list index segment.
func (p Path) Index(i int) Path {
	return p.with("[" + strconv.Itoa(i) + "]")
}

// Depth reports the number of segments.
func (p Path) Depth() int { return len(p.parts) }

func (p Path) String() string {
	if len(p.parts) == 0 {
		return "$"
	}
	return "$" + strings.Join(p.parts, "")
}

func (p Path) with(seg string) Path {
	parts := make([]string, len(p.parts), len(p.parts)+1)
	copy(parts, p.parts)
	return Path{parts: append(parts, seg)}
}

// IsIdentifier reports whether s can be written as a bare JavaScript
// identifier (ASCII subset).
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_' || c == '$':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
