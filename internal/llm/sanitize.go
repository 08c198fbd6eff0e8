package llm

import (
	"encoding/json"
	"log/slog"
)

// SanitizeRecord coerces nested values (objects/arrays the model produced
// for a known field) into compact JSON strings so the record can still
// validate and land in a single cell. Only keys in fieldNames are touched;
// returns the keys that were coerced.
func SanitizeRecord(record map[string]any, fieldNames []string, logger *slog.Logger) []string {
	if logger == nil {
		logger = slog.Default()
	}

	var changed []string
	for _, name := range fieldNames {
		v, ok := record[name]
		if !ok {
			continue
		}
		switch v.(type) {
		case map[string]any, []any:
			b, err := json.Marshal(v)
			if err != nil {
				delete(record, name)
			} else {
				record[name] = string(b)
			}
			changed = append(changed, name)
		}
	}
	if len(changed) > 0 {
		logger.Warn("llm.sanitize.coerced_nested_values", "fields", changed)
	}
	return changed
}
