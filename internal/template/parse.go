// Package template parses user-authored extraction templates, in document
// (.docx) or tabular (.xlsx/.xls) form, into an ordered field set.
package template

import (
	"errors"
	"fmt"
	"os"

	"github.com/tmorel/studyextract/constants"
)

var (
	// ErrTemplateNotFound means the template path does not exist.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrUnsupportedFormat means the extension maps to no known parser.
	ErrUnsupportedFormat = errors.New("unsupported template format")
	// ErrEmptyTemplate means parsing succeeded but yielded zero fields:
	// the heuristics found nothing usable. Distinct from an unreadable file.
	ErrEmptyTemplate = errors.New("no fields found in template")
)

// Parse detects the template format, dispatches to the matching parser, and
// rejects an empty result. Callers must treat any error as fatal to the run:
// an empty schema can never proceed.
func Parse(path string) ([]Field, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return nil, fmt.Errorf("stat template: %w", err)
	}

	var (
		fields []Field
		err    error
	)
	switch constants.DetectTemplateFormat(path) {
	case constants.FormatDocument:
		var content *documentContent
		content, err = readDocument(path)
		if err == nil {
			fields = parseDocument(content)
		}
	case constants.FormatTabular:
		fields, err = parseTabular(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", path, err)
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyTemplate, path)
	}
	return fields, nil
}
