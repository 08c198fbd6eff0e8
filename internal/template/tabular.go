package template

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// parseTabular maps every sheet's column headers to fields: the header cell
// is the field name, the sheet name is the section, descriptions are empty.
// Blank headers and "Unnamed" placeholders (synthetic names some tools give
// blank columns) are skipped. Cell values below the header row are ignored.
func parseTabular(path string) ([]Field, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var fields []Field
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}
		for _, header := range rows[0] {
			name := strings.TrimSpace(header)
			if name == "" || strings.HasPrefix(name, "Unnamed") {
				continue
			}
			fields = append(fields, NewField(name, "", sheet))
		}
	}
	return fields, nil
}
