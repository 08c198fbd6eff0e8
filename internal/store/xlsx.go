// Package store persists extraction rows in a single XLSX workbook: the
// reserved source column first, then every template field in field-set
// order. Rows only ever accumulate; the whole table is re-read and rewritten
// on each append so existing rows are never mutated in place.
package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/tmorel/studyextract/constants"
)

const sheetName = "Extractions"

// Table is an XLSX-backed append-only table.
type Table struct {
	path    string
	columns []string // full header: Source File + field names
	logger  *slog.Logger
}

func NewTable(path string, fieldNames []string, logger *slog.Logger) *Table {
	if logger == nil {
		logger = slog.Default()
	}
	columns := make([]string, 0, len(fieldNames)+1)
	columns = append(columns, constants.SourceColumn)
	columns = append(columns, fieldNames...)
	return &Table{path: path, columns: columns, logger: logger}
}

// Path returns the workbook location.
func (t *Table) Path() string { return t.path }

// Header returns the canonical column order.
func (t *Table) Header() []string { return t.columns }

// ReadAll returns the existing data rows (header excluded) in stored order.
// A missing workbook reads as empty, not as an error.
func (t *Table) ReadAll() ([][]string, error) {
	f, err := excelize.OpenFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	// Use the first sheet rather than our own name so workbooks written by
	// other tools still read back.
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

// ProcessedSources returns the set of values already present in the reserved
// source column. Used by resumed runs to skip processed articles.
func (t *Table) ProcessedSources() (map[string]struct{}, error) {
	rows, err := t.ReadAll()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if len(row) > 0 && row[0] != "" {
			seen[row[0]] = struct{}{}
		}
	}
	return seen, nil
}

// AppendRows re-reads the whole table, appends the new rows beneath the
// existing ones, and rewrites the workbook atomically: the new content lands
// in a temp file first and replaces the old one by rename, so a failed write
// never leaves the table half-overwritten.
//
// Existing rows come back as displayed strings, so typed cells (numbers,
// booleans) persist as text from the second rewrite onward. The table is
// read by string comparison only, never arithmetic, so nothing downstream
// depends on cell types.
func (t *Table) AppendRows(rows ...[]any) error {
	existing, err := t.ReadAll()
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	for i, h := range t.columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	rowIdx := 2
	for _, row := range existing {
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
		rowIdx++
	}
	for _, row := range rows {
		for col, v := range row {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
		rowIdx++
	}

	_ = f.SetColWidth(sheetName, "A", "A", 32)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(t.path), ".extractions-*.xlsx")
	if err != nil {
		return fmt.Errorf("create temp table: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp table: %w", err)
	}
	if err := os.Rename(tmpPath, t.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace table: %w", err)
	}

	t.logger.Debug("store.append.ok", "path", t.path, "existing", len(existing), "appended", len(rows))
	return nil
}
