package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "rule" or "feature"). Placeholders are written as {name}.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg := code
	switch t.lang {
	case "ja":
		switch code {
		case "malformed_description":
			msg = "記述ツリーが不正です"
		case "unsupported_rule":
			msg = "未対応のルールです"
		case "unsupported_feature":
			msg = "未対応の機能です"
		case "recursion_limit":
			msg = "ネストが深すぎます"
		case "approximation":
			msg = "近似的に変換されました"
		case "dropped":
			msg = "出力から除外されました"
		}
		if _, ok := data["rule"]; ok && code == "unsupported_rule" {
			msg = "未対応のルールです: {type}.{rule}"
		}
		if _, ok := data["feature"]; ok && code == "unsupported_feature" {
			msg = "未対応の機能です: {feature}"
		}
	default: // "en"
		switch code {
		case "malformed_description":
			msg = "malformed description"
		case "unsupported_rule":
			msg = "unsupported rule"
			if _, ok := data["rule"]; ok {
				msg = "unsupported rule {type}.{rule}"
			}
		case "unsupported_feature":
			msg = "unsupported feature"
			if _, ok := data["feature"]; ok {
				msg = "unsupported feature {feature}"
			}
		case "recursion_limit":
			msg = "recursion limit exceeded"
		case "approximation":
			msg = "approximated translation"
		case "dropped":
			msg = "dropped from output"
		}
	}
	return fill(msg, data)
}

func fill(msg string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
