package template

import (
	"regexp"
	"strings"
)

// reFieldLine matches "<name>: <optional description>" splitting on the
// first colon. Applied only to lines that were not classified as headers.
var reFieldLine = regexp.MustCompile(`^(.+?):\s*(.*)$`)

// titleDenylist marks candidate field names that are document-title
// artifacts rather than real fields.
var titleDenylist = []string{"template", "data extraction", "meta-analysis"}

func isLikelyTitle(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range titleDenylist {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// parseDocument converts a document's paragraph stream and embedded tables
// into a field set. A field inherits whichever section header was most
// recently seen above it; before any header the section is "".
//
// Tables are parsed after the paragraph pass completes, and every
// table-derived field is tagged with the last section observed in the
// paragraph stream rather than a table-local header. That matches templates
// whose tables sit under their governing header, and is preserved as-is.
func parseDocument(content *documentContent) []Field {
	var fields []Field
	section := ""

	for _, para := range content.paragraphs {
		text := strings.TrimSpace(para)
		if text == "" {
			continue
		}

		if isSectionHeader(text) {
			section = text
			continue
		}

		m := reFieldLine.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if name == "" || isLikelyTitle(name) {
			continue
		}
		fields = append(fields, NewField(name, m[2], section))
	}

	for _, table := range content.tables {
		fields = append(fields, parseTableRows(table, section)...)
	}
	return fields
}

// parseTableRows extracts name/description pairs from a table's first two
// columns. The first row is skipped when it looks like a header row; rows
// with fewer than two cells or an empty name are skipped silently.
func parseTableRows(rows [][]string, section string) []Field {
	var fields []Field
	for i, row := range rows {
		if i == 0 && len(row) > 0 {
			first := strings.ToLower(strings.TrimSpace(row[0]))
			if strings.Contains(first, "field") || strings.Contains(first, "column") {
				continue
			}
		}
		if len(row) < 2 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" || isLikelyTitle(name) {
			continue
		}
		fields = append(fields, NewField(name, row[1], section))
	}
	return fields
}
