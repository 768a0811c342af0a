package records

import (
	"strings"
	"unicode"
)

// System keys that never get an editable field. The visibility key is
// excluded here too; it has its own edit path.
var hiddenKeys = map[string]bool{
	"id":          true,
	"_id":         true,
	"metadata":    true,
	"tags":        true,
	"created_at":  true,
	"updated_at":  true,
	VisibilityKey: true,
}

// Form is the editable view of a record: one descriptor per visible key
// plus the initial editable values derived from the raw record.
type Form struct {
	Descriptors []FieldDescriptor `json:"fields"`
	Initial     map[string]any    `json:"initialValues"`
}

// Build derives the editable field set from a raw record. Pure function of
// the record and the static lookup tables; descriptor order is the record's
// key order, not re-sorted.
func Build(rec *Record) *Form {
	form := &Form{Initial: make(map[string]any)}
	for _, key := range rec.Keys() {
		if hiddenKeys[strings.ToLower(key)] {
			continue
		}
		value := rec.Get(key)
		input := Classify(key, value)
		desc := FieldDescriptor{
			Key:      key,
			Label:    Humanize(key),
			Input:    input,
			ReadOnly: IsReadOnly(key),
		}
		if input == InputChoice {
			desc.Choices, _ = ChoicesFor(key)
		}
		form.Descriptors = append(form.Descriptors, desc)
		form.Initial[key] = ToEditable(input, value)
	}
	return form
}

// Descriptor returns the form's descriptor for a key.
func (f *Form) Descriptor(key string) (FieldDescriptor, bool) {
	for _, d := range f.Descriptors {
		if d.Key == key {
			return d, true
		}
	}
	return FieldDescriptor{}, false
}

// IsReadOnly reports whether a key may never be edited: identifiers and
// anything ending in "id", with metadata as the lone exception.
func IsReadOnly(key string) bool {
	lk := strings.ToLower(key)
	if lk == "metadata" {
		return false
	}
	return lk == "id" || strings.HasSuffix(lk, "id")
}

// Humanize turns a record key into a display label: underscores become
// spaces, camelCase splits, words are title-cased.
func Humanize(key string) string {
	key = strings.ReplaceAll(key, "_", " ")

	var b strings.Builder
	var prev rune
	for i, r := range key {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(prev) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
		prev = r
	}

	words := strings.Fields(b.String())
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		for j := 1; j < len(runes); j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
