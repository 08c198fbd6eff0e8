package llm

// BuildRecordSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map describing one extraction record: an object whose known
// properties are scalar-or-null. Extra keys are permitted here because the
// reconciler drops them when shaping the row; the schema only rejects
// responses that are not flat records at all.
func BuildRecordSchema(fieldNames []string) map[string]any {
	props := make(map[string]any, len(fieldNames))
	for _, name := range fieldNames {
		props[name] = scalarProp()
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": true,
	}
}

func scalarProp() map[string]any {
	return map[string]any{
		"type": []string{"string", "number", "integer", "boolean", "null"},
	}
}
