// Package llm defines the document-understanding service boundary: the
// extractor contract, response cleaning, and record schema validation.
package llm

import (
	"context"
	"errors"
)

var (
	// ErrQuotaExceeded signals the service rate/quota limit (HTTP 429).
	// Callers wait longer before retrying.
	ErrQuotaExceeded = errors.New("service quota exceeded")

	// ErrInvalidResponse means the model's text could not be cleaned,
	// parsed, or validated as an extraction record. A fresh call may
	// succeed; the same response is never re-parsed.
	ErrInvalidResponse = errors.New("invalid model response")
)

// Extractor is the interface the pipeline depends on: submit one article
// with the extraction prompt, get back the decoded key/value record.
// Any error other than the sentinels above is treated as transient.
type Extractor interface {
	Extract(ctx context.Context, pdfPath, promptText string) (map[string]any, error)
}
