package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("malformed_description", nil); msg != "malformed description" {
		t.Fatalf("expected a human message, got %q", msg)
	}
	if msg := T("unsupported_rule", map[string]string{"type": "number", "rule": "precision"}); msg != "unsupported rule number.precision" {
		t.Fatalf("unexpected message %q", msg)
	}

	SetLanguage("ja")
	if msg := T("unsupported_feature", map[string]string{"feature": "strip"}); msg != "未対応の機能です: strip" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
	if msg := T("something_else", nil); msg != "something_else" {
		t.Fatalf("unknown codes fall back to the code, got %q", msg)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	defer SetTranslator(nil)
	if msg := T("recursion_limit", nil); msg != "X:recursion_limit" {
		t.Fatalf("custom translator not used, got %q", msg)
	}
}
