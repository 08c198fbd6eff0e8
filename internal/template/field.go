package template

import "strings"

// Field is a single extraction target derived from a template. Name is the
// JSON key and output column the field maps to; Description is optional
// guidance for the model; Section is an optional grouping label.
//
// The parser does not enforce name uniqueness: the same name may legitimately
// recur across sections, and downstream consumers resolve collisions
// last-write-wins when shaping a row.
type Field struct {
	Name        string
	Description string
	Section     string
}

// NewField builds a Field with all parts trimmed of surrounding whitespace.
// No validation beyond trimming: a field with an empty name is representable
// but must be filtered out by parsers before it reaches a field set.
func NewField(name, description, section string) Field {
	return Field{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Section:     strings.TrimSpace(section),
	}
}

// Names returns the field names in field-set order.
func Names(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
