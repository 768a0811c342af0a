package records

import (
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// Tokens that mark a string value as boolean regardless of key.
var boolTokens = map[string]bool{
	"true": true, "false": true,
	"1": true, "0": true,
	"yes": true, "no": true,
	"on": true, "off": true,
}

// Keys whose 0/1 numeric values mean boolean rather than number.
var boolKeyExact = map[string]bool{
	"pinned":   true,
	"verified": true,
	"blocked":  true,
	"active":   true,
}

var boolKeySuffixes = []string{"_flag", "_enabled", "_disabled", "_allowed"}

var addressKeyParts = []string{"address", "street", "postal", "zip"}

// Per-key date hints that win over the suffix rules.
var dateKeyHints = map[string]InputType{
	"date_of_birth": InputDate,
	"last_seen_at":  InputDateTime,
}

// Classify infers the editor type for a raw key/value pair.
//
// The backend exposes no schema, so this cascade recovers enough typing to
// render a usable editor. Rule order matters: downstream behavior depends on
// which rule wins, so do not reorder even where rules overlap. The early
// overrides (external_id, address-like keys) exist to stop phone numbers,
// postal codes and free-form addresses from being read as numbers or JSON.
func Classify(key string, value gjson.Result) InputType {
	lk := strings.ToLower(key)

	if _, ok := ChoicesFor(lk); ok {
		return InputChoice
	}
	if lk == "external_id" {
		return InputText
	}
	if isAddressKey(lk) {
		return textual(value.String())
	}
	if looksBoolean(lk, value) {
		return InputBoolean
	}
	if value.Type == gjson.Number {
		return InputNumber
	}
	if t, ok := classifyDate(lk, value); ok {
		return t
	}
	if looksJSON(value) {
		return InputJSON
	}
	return textual(value.String())
}

func isAddressKey(lk string) bool {
	for _, part := range addressKeyParts {
		if strings.Contains(lk, part) {
			return true
		}
	}
	return false
}

func isBoolKey(lk string) bool {
	if boolKeyExact[lk] {
		return true
	}
	if strings.HasPrefix(lk, "is_") || strings.HasPrefix(lk, "has_") {
		return true
	}
	for _, suffix := range boolKeySuffixes {
		if strings.HasSuffix(lk, suffix) {
			return true
		}
	}
	return false
}

func looksBoolean(lk string, v gjson.Result) bool {
	switch v.Type {
	case gjson.True, gjson.False:
		return true
	case gjson.String:
		return boolTokens[strings.ToLower(strings.TrimSpace(v.Str))]
	case gjson.Number:
		// 0/1 is only boolean when the key says so; counters and amounts
		// hit these values all the time.
		return (v.Num == 0 || v.Num == 1) && isBoolKey(lk)
	}
	return false
}

func classifyDate(lk string, v gjson.Result) (InputType, bool) {
	if t, ok := dateKeyHints[lk]; ok {
		return t, true
	}
	if strings.HasSuffix(lk, "_date") || strings.HasSuffix(lk, "dob") || strings.Contains(lk, "date_of") {
		return InputDate, true
	}
	if strings.HasSuffix(lk, "_at") || strings.HasSuffix(lk, "_timestamp") || strings.HasSuffix(lk, "_time") ||
		strings.Contains(lk, "last_seen") || strings.Contains(lk, "occurred") {
		return InputDateTime, true
	}
	if v.Type == gjson.String {
		s := strings.TrimSpace(v.Str)
		if _, ok := parseTime(s); ok {
			if len(s) == len(dateLayout) {
				return InputDate, true
			}
			return InputDateTime, true
		}
	}
	return "", false
}

func looksJSON(v gjson.Result) bool {
	if v.IsObject() || v.IsArray() {
		return true
	}
	if v.Type != gjson.String {
		return false
	}
	s := strings.TrimSpace(v.Str)
	if len(s) < 2 {
		return false
	}
	switch {
	case strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}"):
		return true
	case strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"):
		return true
	case strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`):
		return true
	}
	return false
}

func textual(s string) InputType {
	if strings.Contains(s, "\n") || utf8.RuneCountInString(s) > 80 {
		return InputMultiline
	}
	return InputText
}
