package template

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeDocx creates a minimal .docx (a zip with word/document.xml) whose body
// holds the given paragraphs.
func writeDocx(t *testing.T, path string, paragraphs ...string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)

	doc := `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`
	for _, p := range paragraphs {
		doc += `<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`
	}
	doc += `</w:body></w:document>`
	_, err = w.Write([]byte(doc))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

func writeWorkbook(t *testing.T, path string, sheets map[string][]string, order []string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", order[0]))
	for _, name := range order[1:] {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
	}
	for name, headers := range sheets {
		for i, h := range headers {
			cell, err := excelize.CoordinatesToCellName(i+1, 1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(name, cell, h))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func TestParseNotFound(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.docx"))
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestParseUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.txt")
	require.NoError(t, os.WriteFile(path, []byte("Author: name"), 0o644))

	_, err := Parse(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

// A well-formed document with nothing usable must fail loudly, never return
// an empty field set.
func TestParseEmptyTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.docx")
	writeDocx(t, path,
		"Meta-Analysis Data Extraction Template",
		"",
		"Some introductory prose without any structure at all",
	)

	_, err := Parse(path)
	assert.ErrorIs(t, err, ErrEmptyTemplate)
}

func TestParseDocumentTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.docx")
	writeDocx(t, path,
		"Study Identification",
		"Author: First author surname",
		"Year: Publication year",
	)

	fields, err := Parse(path)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "Author", fields[0].Name)
	assert.Equal(t, "Study Identification", fields[0].Section)
}

// Sheets S1(A, B) and S2(C) parse to exactly three fields with sections
// S1, S1, S2 in traversal order.
func TestParseTabularRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.xlsx")
	writeWorkbook(t, path,
		map[string][]string{"S1": {"A", "B"}, "S2": {"C"}},
		[]string{"S1", "S2"},
	)

	fields, err := Parse(path)
	require.NoError(t, err)
	require.Len(t, fields, 3)
	assert.Equal(t, Field{Name: "A", Section: "S1"}, fields[0])
	assert.Equal(t, Field{Name: "B", Section: "S1"}, fields[1])
	assert.Equal(t, Field{Name: "C", Section: "S2"}, fields[2])
}

func TestParseTabularSkipsPlaceholders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.xlsx")
	writeWorkbook(t, path,
		map[string][]string{"Data": {"A", "", "Unnamed: 2", "B"}},
		[]string{"Data"},
	)

	fields, err := Parse(path)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "A", fields[0].Name)
	assert.Equal(t, "B", fields[1].Name)
}

// Duplicate names across sheets are retained, never deduplicated.
func TestParseTabularKeepsDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.xlsx")
	writeWorkbook(t, path,
		map[string][]string{"S1": {"N"}, "S2": {"N"}},
		[]string{"S1", "S2"},
	)

	fields, err := Parse(path)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, fields[0].Name, fields[1].Name)
	assert.NotEqual(t, fields[0].Section, fields[1].Section)
}
