package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CleanResponse strips whitespace and a surrounding markdown code fence from
// raw model output. Models are told not to fence their JSON; some do anyway.
func CleanResponse(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		if i := strings.Index(text, "\n"); i != -1 {
			text = text[i+1:]
		}
		if strings.HasSuffix(text, "```") {
			text = text[:len(text)-3]
		}
	}
	return strings.TrimSpace(text)
}

// DecodeRecord cleans raw model output and decodes it as a JSON object.
// Failure is an ErrInvalidResponse for this one record, never a fault.
func DecodeRecord(text string) (map[string]any, error) {
	cleaned := CleanResponse(text)
	var record map[string]any
	if err := json.Unmarshal([]byte(cleaned), &record); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidResponse, err)
	}
	// A bare `null` unmarshals into a nil map with no error.
	if record == nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrInvalidResponse)
	}
	return record, nil
}
