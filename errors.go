package zodgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/zodgen/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeMalformedDescription = "malformed_description"
	CodeUnsupportedRule      = "unsupported_rule"
	CodeUnsupportedFeature   = "unsupported_feature"
	CodeRecursionLimit       = "recursion_limit"
	// Non-fatal diagnostics.
	CodeApproximation = "approximation"
	CodeDropped       = "dropped"
)

// Issue is the flat projection of a compile error or diagnostic.
type Issue struct {
	Path    string // Dot/bracket path from the root description node (for example: $.tags.items[0]).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: the rule or feature name involved.
}

func (it Issue) String() string {
	if it.Hint != "" {
		return fmt.Sprintf("%s at %s: %s (%s)", it.Code, it.Path, it.Message, it.Hint)
	}
	return fmt.Sprintf("%s at %s: %s", it.Code, it.Path, it.Message)
}

// Issues is a collection of issues that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// MalformedDescriptionError reports a structurally invalid description tree.
type MalformedDescriptionError struct {
	Path   string
	Reason string
}

func (e *MalformedDescriptionError) Error() string {
	return fmt.Sprintf("zodgen: %s at %s: %s", i18n.T(CodeMalformedDescription, nil), e.Path, e.Reason)
}

func (e *MalformedDescriptionError) Code() string { return CodeMalformedDescription }

func (e *MalformedDescriptionError) Issue() Issue {
	return Issue{Path: e.Path, Code: CodeMalformedDescription, Message: e.Reason}
}

// UnsupportedRuleError reports a rule the rule table has no emitter for.
type UnsupportedRuleError struct {
	Type string
	Rule string
	Path string
}

func (e *UnsupportedRuleError) Error() string {
	return fmt.Sprintf("zodgen: %s at %s: %s.%s", i18n.T(CodeUnsupportedRule, nil), e.Path, e.Type, e.Rule)
}

func (e *UnsupportedRuleError) Code() string { return CodeUnsupportedRule }

func (e *UnsupportedRuleError) Issue() Issue {
	return Issue{Path: e.Path, Code: CodeUnsupportedRule, Message: i18n.T(CodeUnsupportedRule, map[string]string{"type": e.Type, "rule": e.Rule}), Hint: e.Type + "." + e.Rule}
}

// UnsupportedFeatureError reports a structural feature without a target equivalent.
type UnsupportedFeatureError struct {
	Feature string // "strip", "conditional", "custom", ...
	Path    string
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("zodgen: %s at %s: %s", i18n.T(CodeUnsupportedFeature, nil), e.Path, e.Feature)
}

func (e *UnsupportedFeatureError) Code() string { return CodeUnsupportedFeature }

func (e *UnsupportedFeatureError) Issue() Issue {
	return Issue{Path: e.Path, Code: CodeUnsupportedFeature, Message: i18n.T(CodeUnsupportedFeature, map[string]string{"feature": e.Feature}), Hint: e.Feature}
}

// RecursionLimitExceeded reports a description tree nested deeper than the
// configured limit. Cyclic trees end up here too.
type RecursionLimitExceeded struct {
	Path  string
	Limit int
}

func (e *RecursionLimitExceeded) Error() string {
	return fmt.Sprintf("zodgen: %s at %s: limit %d", i18n.T(CodeRecursionLimit, nil), e.Path, e.Limit)
}

func (e *RecursionLimitExceeded) Code() string { return CodeRecursionLimit }

func (e *RecursionLimitExceeded) Issue() Issue {
	return Issue{Path: e.Path, Code: CodeRecursionLimit, Message: i18n.T(CodeRecursionLimit, nil), Hint: fmt.Sprintf("limit=%d", e.Limit)}
}

// Malformed is a shorthand for building a MalformedDescriptionError.
func Malformed(p Path, format string, a ...any) error {
	return &MalformedDescriptionError{Path: p.String(), Reason: fmt.Sprintf(format, a...)}
}

type issuer interface {
	Issue() Issue
}

// AsIssue extracts the Issue of a compile error using errors.As internally.
func AsIssue(err error) (Issue, bool) {
	if err == nil {
		return Issue{}, false
	}
	var is issuer
	if errors.As(err, &is) {
		return is.Issue(), true
	}
	return Issue{}, false
}
