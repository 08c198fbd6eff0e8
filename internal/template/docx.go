package template

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// documentContent is the linear view of a .docx body: paragraph text in body
// order, plus each embedded table as rows of cell text. Paragraphs inside
// table cells belong to the cell, not the paragraph stream.
type documentContent struct {
	paragraphs []string
	tables     [][][]string
}

// readDocument parses a .docx file by walking word/document.xml from the ZIP
// archive with a streaming XML decoder. It never fails on odd content, only
// on an unreadable archive.
func readDocument(path string) (*documentContent, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	defer r.Close()

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, fmt.Errorf("word/document.xml not found in archive")
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	return decodeDocumentXML(rc)
}

func decodeDocumentXML(r io.Reader) (*documentContent, error) {
	decoder := xml.NewDecoder(r)
	content := &documentContent{}

	var (
		text     strings.Builder // current body paragraph or table cell
		inText   bool            // inside a w:t run
		tblDepth int             // nested tables collapse into the outer cell
		curTable [][]string
		curRow   []string
	)

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tblDepth++
				if tblDepth == 1 {
					curTable = nil
				}
			case "tr":
				if tblDepth == 1 {
					curRow = nil
				}
			case "tc":
				if tblDepth == 1 {
					text.Reset()
				}
			case "p":
				if tblDepth == 0 {
					text.Reset()
				}
			case "t":
				inText = true
			}

		case xml.CharData:
			if inText {
				text.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if tblDepth == 0 {
					if s := strings.TrimSpace(text.String()); s != "" {
						content.paragraphs = append(content.paragraphs, s)
					}
					text.Reset()
				} else if tblDepth == 1 {
					// separate multi-paragraph cells
					text.WriteByte('\n')
				}
			case "tc":
				if tblDepth == 1 {
					curRow = append(curRow, strings.TrimSpace(text.String()))
					text.Reset()
				}
			case "tr":
				if tblDepth == 1 && curRow != nil {
					curTable = append(curTable, curRow)
					curRow = nil
				}
			case "tbl":
				tblDepth--
				if tblDepth == 0 && curTable != nil {
					content.tables = append(content.tables, curTable)
					curTable = nil
				}
			}
		}
	}

	return content, nil
}
