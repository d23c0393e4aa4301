package steam

// Field is the outcome of a single enrichment lookup: either a value or the
// reason it is unavailable. Unavailable fields carry a sentinel string that
// only becomes visible when the report is serialized.
type Field struct {
	value  string
	reason string
	ok     bool
}

// Ok returns a Field carrying a value.
func Ok(value string) Field {
	return Field{value: value, ok: true}
}

// Unavailable returns a Field carrying the sentinel shown in its place.
func Unavailable(reason string) Field {
	return Field{reason: reason}
}

// OK reports whether the field holds a real value.
func (f Field) OK() bool {
	return f.ok
}

// Display returns the value, or the sentinel when the value is unavailable.
func (f Field) Display() string {
	if f.ok {
		return f.value
	}
	return f.reason
}
