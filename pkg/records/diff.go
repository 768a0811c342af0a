package records

// Diff compares the edited values against the originally loaded record and
// returns the minimal partial-update payload: only keys whose normalized
// value actually changed, converted to their wire form. Read-only fields
// never appear, and neither do edited keys without a descriptor. An empty
// result means there is nothing to submit.
//
// Running Diff on a freshly built form with no edits yields an empty map;
// callers rely on that to suppress pointless writes.
func Diff(rec *Record, edited map[string]any, descriptors []FieldDescriptor) map[string]any {
	changes := make(map[string]any)
	for _, d := range descriptors {
		if d.ReadOnly {
			continue
		}
		ev, ok := edited[d.Key]
		if !ok {
			continue
		}
		original := rec.Get(d.Key)
		if ToComparable(d.Input, ev) == ToComparable(d.Input, original) {
			continue
		}
		changes[d.Key] = ToWire(d.Input, ev, original)
	}
	return changes
}
