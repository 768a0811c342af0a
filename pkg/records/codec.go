package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04"
)

// Layouts accepted when coercing free text into a point in time. Ordered
// from most to least specific so RFC3339 offsets win over bare dates.
var timeParseLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dateTimeLayout,
	dateLayout,
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeParseLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ToEditable converts a raw value into the representation the editor works
// on: bool for boolean fields, string for everything else. Unparsable
// booleans default to false; unparsable dates become empty strings.
func ToEditable(t InputType, v gjson.Result) any {
	switch t {
	case InputBoolean:
		b, _ := coerceBool(v)
		return b
	case InputNumber:
		if v.Type == gjson.Number {
			return v.Raw
		}
		return strings.TrimSpace(v.String())
	case InputDate:
		if ts, ok := parseTime(v.String()); ok {
			return ts.In(time.Local).Format(dateLayout)
		}
		return ""
	case InputDateTime:
		if ts, ok := parseTime(v.String()); ok {
			return ts.In(time.Local).Format(dateTimeLayout)
		}
		return ""
	case InputJSON:
		src := jsonSource(v)
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(src), "", "  "); err != nil {
			return src
		}
		return buf.String()
	default:
		return v.String()
	}
}

// ToComparable normalizes an original or edited value into a canonical
// string so the two sides of a diff can be compared per type. JSON is
// compacted to cancel whitespace, numbers compare numerically, dates
// through their formatted form.
func ToComparable(t InputType, v any) string {
	switch t {
	case InputBoolean:
		b := comparableBool(v)
		return strconv.FormatBool(b)
	case InputNumber:
		s := strings.TrimSpace(stringify(v))
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
		return s
	case InputDate:
		if ts, ok := parseTime(stringify(v)); ok {
			return ts.In(time.Local).Format(dateLayout)
		}
		return ""
	case InputDateTime:
		if ts, ok := parseTime(stringify(v)); ok {
			return ts.In(time.Local).Format(dateTimeLayout)
		}
		return ""
	case InputJSON:
		src := stringify(v)
		var buf bytes.Buffer
		if err := json.Compact(&buf, []byte(src)); err != nil {
			return strings.TrimSpace(src)
		}
		return buf.String()
	default:
		return strings.TrimSpace(stringify(v))
	}
}

// ToWire converts an edited value back into what the backend expects.
// A JSON field that no longer parses falls back to the original raw value
// so a fumbled edit never silently drops data. Empty strings pass through
// unchanged; deciding to omit a field is the differ's job, not the codec's.
func ToWire(t InputType, edited any, original gjson.Result) any {
	switch t {
	case InputBoolean:
		return comparableBool(edited)
	case InputNumber:
		s := strings.TrimSpace(stringify(edited))
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return s
	case InputDate:
		s := stringify(edited)
		if ts, ok := parseTime(s); ok {
			return ts.In(time.Local).Format(dateLayout)
		}
		return strings.TrimSpace(s)
	case InputDateTime:
		s := stringify(edited)
		if ts, ok := parseTime(s); ok {
			return ts.UTC().Format(time.RFC3339)
		}
		return strings.TrimSpace(s)
	case InputJSON:
		s := strings.TrimSpace(stringify(edited))
		if json.Valid([]byte(s)) {
			var buf bytes.Buffer
			if err := json.Compact(&buf, []byte(s)); err == nil {
				return json.RawMessage(buf.Bytes())
			}
		}
		return json.RawMessage(original.Raw)
	default:
		return strings.TrimSpace(stringify(edited))
	}
}

// ValidationError reports a locally rejected edit; it never reaches the
// network.
type ValidationError struct {
	Key    string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Key, e.Reason)
}

// ValidateEdit checks an edited value against its descriptor before any
// diffing happens. Only the failure modes the codec cannot absorb are
// rejected here; everything else coerces on the way to the wire.
func ValidateEdit(d FieldDescriptor, v any) error {
	switch d.Input {
	case InputJSON:
		s := strings.TrimSpace(stringify(v))
		if s != "" && !json.Valid([]byte(s)) {
			return &ValidationError{Key: d.Key, Reason: "not valid JSON"}
		}
	case InputDate, InputDateTime:
		s := strings.TrimSpace(stringify(v))
		if s != "" {
			if _, ok := parseTime(s); !ok {
				return &ValidationError{Key: d.Key, Reason: "not a recognized date"}
			}
		}
	case InputChoice:
		s := strings.TrimSpace(stringify(v))
		if s == "" {
			return nil
		}
		for _, c := range d.Choices {
			if c.Value == s {
				return nil
			}
		}
		return &ValidationError{Key: d.Key, Reason: "not one of the allowed choices"}
	}
	return nil
}

func coerceBool(v gjson.Result) (value, ok bool) {
	switch v.Type {
	case gjson.True:
		return true, true
	case gjson.False:
		return false, true
	case gjson.Number:
		return v.Num != 0, true
	case gjson.String:
		switch strings.ToLower(strings.TrimSpace(v.Str)) {
		case "true", "1", "yes", "on":
			return true, true
		case "false", "0", "no", "off":
			return false, true
		}
	}
	return false, false
}

func comparableBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case gjson.Result:
		parsed, _ := coerceBool(b)
		return parsed
	default:
		switch strings.ToLower(strings.TrimSpace(stringify(v))) {
		case "true", "1", "yes", "on":
			return true
		}
		return false
	}
}

// stringify flattens any editable or raw value into a string. Raw JSON
// objects and arrays keep their document text.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case int:
		return strconv.Itoa(t)
	case json.RawMessage:
		return string(t)
	case gjson.Result:
		if t.IsObject() || t.IsArray() {
			return t.Raw
		}
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

// jsonSource extracts the JSON text of a value classified as JSON, whether
// the backend stored it as a nested structure or a string holding JSON.
func jsonSource(v gjson.Result) string {
	if v.IsObject() || v.IsArray() {
		return v.Raw
	}
	if v.Type == gjson.String {
		return strings.TrimSpace(v.Str)
	}
	return v.Raw
}
