package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected", "actual" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Templates use
// {name} placeholders filled from data; unknown placeholders are left as is.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"invalid_type":     "expected {expected}, got {actual}",
		"required":         "missing required field {key}",
		"no_alternative":   "no alternative matched (tried {attempted})",
		"semantic_invalid": "invalid value: {reason}",
		"overflow":         "integer out of range for {expected}",
		"invalid_format":   "invalid {expected} format",
		"duplicate_key":    "duplicate key",
		"parse_error":      "parse error",
		"truncated":        "truncated",
	},
	"ja": {
		"invalid_type":     "型が不正です（期待: {expected}、実際: {actual}）",
		"required":         "必須フィールド {key} がありません",
		"no_alternative":   "いずれの候補にも一致しません（{attempted}）",
		"semantic_invalid": "値が不正です: {reason}",
		"overflow":         "整数が範囲外です（{expected}）",
		"invalid_format":   "{expected} の形式が不正です",
		"duplicate_key":    "キーが重複しています",
		"parse_error":      "解析エラー",
		"truncated":        "打ち切られました",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores English.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
