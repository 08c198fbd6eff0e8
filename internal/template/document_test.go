package template

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentSectionsAndFields(t *testing.T) {
	content := &documentContent{
		paragraphs: []string{
			"GLP1 Meta-Analysis Data Extraction Template", // title, filtered
			"Study Identification",
			"Author: First author surname",
			"Year: Publication year",
			"Primary Outcomes",
			"HbA1c Change: Mean change from baseline",
			"Weight Change:",
		},
	}

	fields := parseDocument(content)
	require.Len(t, fields, 4)

	assert.Equal(t, Field{Name: "Author", Description: "First author surname", Section: "Study Identification"}, fields[0])
	assert.Equal(t, "Year", fields[1].Name)
	assert.Equal(t, "Study Identification", fields[1].Section)
	assert.Equal(t, "Primary Outcomes", fields[2].Section)
	assert.Equal(t, Field{Name: "Weight Change", Description: "", Section: "Primary Outcomes"}, fields[3])
}

// A field line before any section header gets the empty section, not an error.
func TestParseDocumentSectionInheritance(t *testing.T) {
	content := &documentContent{
		paragraphs: []string{
			"Country: Where the study ran",
			"METHODS",
			"Design: RCT or observational",
		},
	}
	fields := parseDocument(content)
	require.Len(t, fields, 2)
	assert.Equal(t, "", fields[0].Section)
	assert.Equal(t, "METHODS", fields[1].Section)
}

func TestParseDocumentTitleDenylist(t *testing.T) {
	content := &documentContent{
		paragraphs: []string{
			"Data Extraction Form: v2",
			"Meta-Analysis Fields: everything below",
			"My Template Notes: ignored",
			"Author: kept",
		},
	}
	fields := parseDocument(content)
	require.Len(t, fields, 1)
	assert.Equal(t, "Author", fields[0].Name)
}

// Table-derived fields all inherit the LAST section seen in the paragraph
// stream, regardless of where the table sits. Preserved behavior, not a bug
// to fix.
func TestParseDocumentTablesUseLastSection(t *testing.T) {
	content := &documentContent{
		paragraphs: []string{
			"Study Identification",
			"Author: surname",
			"Adverse Event Details",
		},
		tables: [][][]string{
			{
				{"Field Name", "Description"}, // header row, skipped
				{"Nausea n", "Count of nausea events"},
				{"Vomiting n", "Count of vomiting events"},
			},
			{
				{"Dropout n", "Total dropouts"},
				{"", "empty name, skipped"},
				{"Lonely cell"}, // < 2 columns, skipped
			},
		},
	}
	fields := parseDocument(content)
	require.Len(t, fields, 4)
	for _, f := range fields[1:] {
		assert.Equal(t, "Adverse Event Details", f.Section, f.Name)
	}
	assert.Equal(t, "Nausea n", fields[1].Name)
	assert.Equal(t, "Dropout n", fields[3].Name)
}

func TestParseTableRowsHeaderDetection(t *testing.T) {
	// First row is data when it doesn't mention field/column.
	rows := [][]string{
		{"Sample Size", "Total randomized"},
		{"Duration", "Weeks of follow-up"},
	}
	fields := parseTableRows(rows, "Methods")
	require.Len(t, fields, 2)
	assert.Equal(t, "Sample Size", fields[0].Name)

	// "Column" in the first cell marks a header row.
	rows[0] = []string{"Column", "Meaning"}
	fields = parseTableRows(rows, "Methods")
	require.Len(t, fields, 1)
	assert.Equal(t, "Duration", fields[0].Name)
}

func TestParseDocumentEmptyContent(t *testing.T) {
	assert.Empty(t, parseDocument(&documentContent{}))
	assert.Empty(t, parseDocument(&documentContent{paragraphs: []string{"", "   "}}))
}

const sampleDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Study Identification</w:t></w:r></w:p>
<w:p><w:r><w:t>Author: </w:t></w:r><w:r><w:t>First author</w:t></w:r></w:p>
<w:p/>
<w:tbl>
<w:tr><w:tc><w:p><w:r><w:t>Field</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>Description</w:t></w:r></w:p></w:tc></w:tr>
<w:tr><w:tc><w:p><w:r><w:t>Dose mg</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>Daily dose</w:t></w:r></w:p></w:tc></w:tr>
</w:tbl>
</w:body>
</w:document>`

func TestDecodeDocumentXML(t *testing.T) {
	content, err := decodeDocumentXML(strings.NewReader(sampleDocumentXML))
	require.NoError(t, err)

	// Runs inside one paragraph concatenate; cell paragraphs stay out of
	// the body stream.
	assert.Equal(t, []string{"Study Identification", "Author: First author"}, content.paragraphs)

	require.Len(t, content.tables, 1)
	require.Len(t, content.tables[0], 2)
	assert.Equal(t, []string{"Field", "Description"}, content.tables[0][0])
	assert.Equal(t, []string{"Dose mg", "Daily dose"}, content.tables[0][1])
}
