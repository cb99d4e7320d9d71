// Package table implements the in-memory tabular model the pipeline shapes and
// aggregates: a header-described grid of string cells with typed column access.
package table

import (
	"fmt"
	"strconv"

	"acsward/internal/errors"
)

// Schema declares the leading columns a raw response header must carry, in
// order. The API echoes requested variable codes as the first header fields;
// any trailing columns are geography identifiers and pass through unchecked.
type Schema struct {
	Leading []string
}

// Validate checks a header row against the declared schema.
func (s Schema) Validate(header []string) error {
	if len(header) < len(s.Leading)+1 {
		return errors.SchemaMismatch(fmt.Sprintf(
			"header has %d columns, expected at least %d (%d requested variables plus geography)",
			len(header), len(s.Leading)+1, len(s.Leading)))
	}
	for i, want := range s.Leading {
		if header[i] != want {
			return errors.SchemaMismatch(fmt.Sprintf(
				"header column %d is %q, expected variable code %q", i, header[i], want))
		}
	}
	return nil
}

// Table is an ordered set of named columns over string-valued rows.
type Table struct {
	columns []string
	rows    [][]string
}

// FromRows builds a Table from a raw response grid: exactly one header row
// followed by data rows of matching width. The header is validated against the
// schema before any row is accepted.
func FromRows(raw [][]string, schema Schema) (*Table, error) {
	if len(raw) == 0 {
		return nil, errors.SchemaMismatch("response contains no rows, expected a header row")
	}

	header := raw[0]
	if err := schema.Validate(header); err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(raw)-1)
	for i, row := range raw[1:] {
		if len(row) != len(header) {
			return nil, errors.SchemaMismatch(fmt.Sprintf(
				"data row %d has %d columns, header has %d", i+1, len(row), len(header)))
		}
		rows = append(rows, append([]string(nil), row...))
	}

	return &Table{
		columns: append([]string(nil), header...),
		rows:    rows,
	}, nil
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// RowCount returns the number of data rows (header excluded).
func (t *Table) RowCount() int {
	return len(t.rows)
}

// Rows returns the data rows in order. The returned slices are copies.
func (t *Table) Rows() [][]string {
	rows := make([][]string, len(t.rows))
	for i, row := range t.rows {
		rows[i] = append([]string(nil), row...)
	}
	return rows
}

// Rename replaces column names per the given old -> new mapping. Names absent
// from the mapping are left untouched.
func (t *Table) Rename(renames map[string]string) {
	for i, name := range t.columns {
		if newName, ok := renames[name]; ok {
			t.columns[i] = newName
		}
	}
}

// NumericColumn parses the named column as integers, one value per row.
func (t *Table) NumericColumn(name string) ([]int64, error) {
	idx, ok := t.columnIndex(name)
	if !ok {
		return nil, errors.ParseError(fmt.Sprintf("no column named %q", name), nil)
	}

	values := make([]int64, len(t.rows))
	for i, row := range t.rows {
		v, err := strconv.ParseInt(row[idx], 10, 64)
		if err != nil {
			return nil, errors.ParseError(fmt.Sprintf(
				"column %q row %d: %q is not an integer", name, i+1, row[idx]), err)
		}
		values[i] = v
	}
	return values, nil
}

// AppendIntColumn adds a new rightmost column holding the given integer values.
func (t *Table) AppendIntColumn(name string, values []int64) error {
	if len(values) != len(t.rows) {
		return errors.New(errors.CodeInternalError, fmt.Sprintf(
			"column %q has %d values for %d rows", name, len(values), len(t.rows)))
	}
	t.columns = append(t.columns, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], strconv.FormatInt(values[i], 10))
	}
	return nil
}

// DropColumns removes the named columns. Naming a column the table does not
// have is an error, mirroring the strictness of the schema check.
func (t *Table) DropColumns(names ...string) error {
	drop := make(map[int]bool, len(names))
	for _, name := range names {
		idx, ok := t.columnIndex(name)
		if !ok {
			return errors.SchemaMismatch(fmt.Sprintf("cannot drop unknown column %q", name))
		}
		drop[idx] = true
	}

	keptColumns := make([]string, 0, len(t.columns)-len(drop))
	for i, name := range t.columns {
		if !drop[i] {
			keptColumns = append(keptColumns, name)
		}
	}

	for r, row := range t.rows {
		kept := make([]string, 0, len(keptColumns))
		for i, cell := range row {
			if !drop[i] {
				kept = append(kept, cell)
			}
		}
		t.rows[r] = kept
	}
	t.columns = keptColumns
	return nil
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columnIndex(name)
	return ok
}

func (t *Table) columnIndex(name string) (int, bool) {
	for i, col := range t.columns {
		if col == name {
			return i, true
		}
	}
	return 0, false
}
