// Package prompt renders a parsed field set into the extraction instruction
// sent alongside each article.
package prompt

import (
	"strings"

	"github.com/tmorel/studyextract/internal/template"
)

// defaultSection buckets fields that appeared before any section header.
const defaultSection = "General"

// Build renders the extraction prompt: a fixed preamble stating the JSON
// contract, one banner per distinct section in first-occurrence order with a
// bullet per field, and a closing raw-JSON-only reminder. Pure and
// deterministic: the same field set always yields byte-identical output.
func Build(fields []template.Field) string {
	var sectionOrder []string
	grouped := make(map[string][]template.Field)
	for _, f := range fields {
		section := f.Section
		if section == "" {
			section = defaultSection
		}
		if _, seen := grouped[section]; !seen {
			sectionOrder = append(sectionOrder, section)
		}
		grouped[section] = append(grouped[section], f)
	}

	var b strings.Builder
	b.WriteString("You are an expert scientific researcher. Extract the following information from the attached PDF study.\n")
	b.WriteString("Return the result as a valid JSON object where keys are the 'Field Name' and values are the extracted text/numbers. If information is strictly missing, use null.\n")
	b.WriteString("Do not hallucinate data. If you are unsure, extraction is better left as null.\n\n")

	for _, section := range sectionOrder {
		b.WriteString("--- ")
		b.WriteString(section)
		b.WriteString(" ---\n")
		for _, f := range grouped[section] {
			b.WriteString("- ")
			b.WriteString(f.Name)
			if f.Description != "" {
				b.WriteString(": ")
				b.WriteString(f.Description)
			}
			b.WriteByte('\n')
		}
	}

	b.WriteString("\nReturn ONLY the JSON object. No markdown formatting (like ```json), no preamble.")
	return b.String()
}
