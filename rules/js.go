package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/reoring/zodgen/describe"
)

// Quote renders s as a double-quoted JavaScript string literal. Non-ASCII
// text is kept as is; line terminators and control characters are escaped.
func Quote(s string) string {
	b := &strings.Builder{}
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028', '\u2029', utf8.RuneError:
			fmt.Fprintf(b, `\u%04x`, r)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Literal renders l as a JavaScript expression. Numbers keep their source
// text; dates become Date constructor calls.
func Literal(l describe.Literal) string {
	switch l.Kind {
	case describe.LitString:
		return Quote(l.Text)
	case describe.LitDate:
		return "new Date(" + Quote(l.Text) + ")"
	default:
		return l.String()
	}
}

// Regex renders a pattern argument. Joi describes patterns as "/src/flags";
// anything else is compiled through the RegExp constructor.
func Regex(src string) string {
	if len(src) >= 2 && src[0] == '/' {
		if end := strings.LastIndexByte(src, '/'); end > 0 && validFlags(src[end+1:]) {
			return src
		}
	}
	return "new RegExp(" + Quote(src) + ")"
}

func validFlags(f string) bool {
	for i := 0; i < len(f); i++ {
		if !strings.ContainsRune("dgimsuvy", rune(f[i])) {
			return false
		}
	}
	return true
}
