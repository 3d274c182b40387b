package db

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// Table is a full in-memory copy of one xlsx registry. Rows hold cell text
// in column order. Cols always starts with the expected columns; extra
// columns found in the file (e.g. a pending-flag column) are kept at the
// end so a rewrite never destroys them.
type Table struct {
	Cols []string
	Rows [][]string
}

func (t *Table) Len() int { return len(t.Rows) }

// Col returns the index of a column, or -1 if absent.
func (t *Table) Col(name string) int {
	for i, c := range t.Cols {
		if c == name {
			return i
		}
	}
	return -1
}

// Get returns the cell at row i in the named column, "" if the column is
// absent.
func (t *Table) Get(i int, name string) string {
	c := t.Col(name)
	if c < 0 || c >= len(t.Rows[i]) {
		return ""
	}
	return t.Rows[i][c]
}

// Set writes the cell at row i in the named column; unknown columns are
// ignored (the adapter never invents columns on behalf of callers).
func (t *Table) Set(i int, name, value string) {
	c := t.Col(name)
	if c < 0 {
		return
	}
	t.Rows[i][c] = value
}

// Append adds a row from a column→value map; columns not present in the
// map are left empty.
func (t *Table) Append(vals map[string]string) {
	row := make([]string, len(t.Cols))
	for i, c := range t.Cols {
		row[i] = vals[c]
	}
	t.Rows = append(t.Rows, row)
}

// Delete removes row i.
func (t *Table) Delete(i int) {
	t.Rows = append(t.Rows[:i], t.Rows[i+1:]...)
}

// LoadTable reads an xlsx registry. A missing file yields an empty table
// with the expected columns; a malformed file is a fatal read error for
// the current operation. Expected columns come first in their contract
// order, any other columns of the file follow in file order.
func LoadTable(path string, expected []string) (*Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Table{Cols: append([]string(nil), expected...)}, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return &Table{Cols: append([]string(nil), expected...)}, nil
	}

	header := rows[0]
	cols := append([]string(nil), expected...)
	for _, c := range header {
		if c != "" && indexOf(cols, c) < 0 {
			cols = append(cols, c)
		}
	}

	t := &Table{Cols: cols}
	for _, r := range rows[1:] {
		row := make([]string, len(cols))
		for j, c := range cols {
			if k := indexOf(header, c); k >= 0 && k < len(r) {
				row[j] = r[k]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// SaveTable writes the full table back, header first, columns exactly in
// t.Cols order. The write goes to a temp file that replaces the registry
// only on success, so a failed save leaves the previous file intact.
func SaveTable(path string, t *Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(t.Cols))
	for i, c := range t.Cols {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	for i, r := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		row := make([]interface{}, len(r))
		for j, v := range r {
			row[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	// excelize validates the extension on save, so the temp file must
	// keep the .xlsx suffix
	tmp := path + ".tmp.xlsx"
	if err := f.SaveAs(tmp); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func indexOf(ss []string, s string) int {
	for i, v := range ss {
		if v == s {
			return i
		}
	}
	return -1
}
