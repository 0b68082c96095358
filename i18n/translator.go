package i18n

// Translator retrieves localized messages for violation codes.
// data provides optional metadata to embed in the message (for example,
// "column" or "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "missing_column":
			return "列がありません: " + data["column"]
		case "type_mismatch":
			return "列 " + data["column"] + " の型が不正です (期待: " + data["expected"] + ", 実際: " + data["observed"] + ")"
		case "null_value":
			return "列 " + data["column"] + " に欠損値があります (" + data["count"] + "件)"
		case "out_of_range":
			return "列 " + data["column"] + " の値が範囲 [" + data["min"] + ", " + data["max"] + "] を超えています"
		case "distribution_mismatch":
			return "列 " + data["column"] + " は " + data["family"] + " 分布に適合しません"
		case "custom_rule":
			return "カスタムルールに違反しています"
		}
	default: // "en"
		switch code {
		case "missing_column":
			return "column " + data["column"] + " is missing"
		case "type_mismatch":
			return "column " + data["column"] + " has type " + data["observed"] + ", expected " + data["expected"]
		case "null_value":
			return "column " + data["column"] + " contains " + data["count"] + " null value(s)"
		case "out_of_range":
			return "column " + data["column"] + " has values outside [" + data["min"] + ", " + data["max"] + "]"
		case "distribution_mismatch":
			return "column " + data["column"] + " does not fit the " + data["family"] + " distribution"
		case "custom_rule":
			return "custom rule violated"
		}
	}
	return code
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
