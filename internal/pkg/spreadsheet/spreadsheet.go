// Package spreadsheet wraps excelize for the .xlsx exports and imports.
package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of an .xlsx workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var ErrEmptyWorkbook = errors.New("worksheet is empty")

// Table writes one sheet with a styled header row.
type Table struct {
	file  *excelize.File
	sheet string
	row   int
}

func NewTable(sheet string, headers []string) (*Table, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	t := &Table{file: f, sheet: sheet, row: 1}
	if err := t.AddRow(toAny(headers)...); err != nil {
		f.Close()
		return nil, err
	}
	last, _ := excelize.ColumnNumberToName(len(headers))
	if err := f.SetCellStyle(sheet, "A1", last+"1", headerStyle); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", last, 18); err != nil {
		f.Close()
		return nil, err
	}
	return t, nil
}

// AddRow writes values into the next row starting at column A.
func (t *Table) AddRow(values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, t.row)
	if err != nil {
		return err
	}
	if err := t.file.SetSheetRow(t.sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", t.row, err)
	}
	t.row++
	return nil
}

// Bytes serializes the workbook and releases it.
func (t *Table) Bytes() ([]byte, error) {
	defer t.file.Close()

	var buf bytes.Buffer
	if err := t.file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadFirstSheet returns the rows of the workbook's first sheet.
func ReadFirstSheet(r io.Reader) ([][]string, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no worksheet found")
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyWorkbook
	}
	return rows, nil
}

// HeaderIndex maps normalized header names to column positions.
func HeaderIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[NormalizeHeader(h)] = i
	}
	return idx
}

// NormalizeHeader lowercases and drops spaces, dashes and underscores.
func NormalizeHeader(header string) string {
	r := strings.NewReplacer(" ", "", "_", "", "-", "")
	return r.Replace(strings.ToLower(strings.TrimSpace(header)))
}

// Cell returns the trimmed value at idx, or "" when the row is short.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
