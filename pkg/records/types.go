package records

import (
	"errors"

	"github.com/tidwall/gjson"
)

// InputType identifies which editor a field gets.
type InputType string

const (
	InputText      InputType = "text"
	InputMultiline InputType = "multiline"
	InputNumber    InputType = "number"
	InputBoolean   InputType = "boolean"
	InputDate      InputType = "date"
	InputDateTime  InputType = "datetime"
	InputJSON      InputType = "json"
	InputChoice    InputType = "choice"
)

// Choice is one selectable option of an enumerated-choice field.
type Choice struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FieldDescriptor describes one editable field derived from a raw record.
type FieldDescriptor struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Input    InputType `json:"inputType"`
	ReadOnly bool      `json:"readOnly"`
	Choices  []Choice  `json:"choices,omitempty"` // only for InputChoice
}

// VisibilityKey is the record property that controls whether a record shows
// up in listings. It never appears in the generic form; edits go through a
// dedicated code path.
const VisibilityKey = "visibility"

// Record is a raw backend record. The backend exposes no schema, so values
// stay untyped until classified. Key order matches the JSON document.
type Record struct {
	raw  gjson.Result
	keys []string
	vals map[string]gjson.Result
}

// Parse decodes a record payload. The payload must be a JSON object.
func Parse(body []byte) (*Record, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("malformed record payload")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, errors.New("record payload is not an object")
	}
	rec := &Record{raw: root, vals: make(map[string]gjson.Result)}
	root.ForEach(func(k, v gjson.Result) bool {
		key := k.String()
		if _, dup := rec.vals[key]; !dup {
			rec.keys = append(rec.keys, key)
		}
		rec.vals[key] = v
		return true
	})
	return rec, nil
}

// Keys returns the record's property names in document order.
func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Get returns the value for key, or a zero Result when absent.
func (r *Record) Get(key string) gjson.Result {
	return r.vals[key]
}

// Has reports whether the record carries the key, even with a null value.
func (r *Record) Has(key string) bool {
	_, ok := r.vals[key]
	return ok
}

// ID returns the record identifier, trying "id" then "_id".
func (r *Record) ID() string {
	if v, ok := r.vals["id"]; ok && v.Type != gjson.Null {
		return v.String()
	}
	return r.vals["_id"].String()
}

// Raw returns the original JSON document.
func (r *Record) Raw() string {
	return r.raw.Raw
}
