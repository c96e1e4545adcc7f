package ygggo_dbkit

import (
	"database/sql"
	"time"
)

// Table is an in-memory tabular result: an ordered list of named columns and
// row-major values. It carries no identity beyond its contents; once returned
// from a query it belongs entirely to the caller.
type Table struct {
	Columns []string
	Rows    [][]any
}

// scanTable drains rows into a Table. Byte slices are copied to strings so
// the values stay valid after the rows are closed.
func scanTable(rows *sql.Rows) (*Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	t := &Table{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		scan := make([]any, len(cols))
		for i := range values {
			scan[i] = &values[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		t.Rows = append(t.Rows, values)
	}
	return t, rows.Err()
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// NumCols returns the column count.
func (t *Table) NumCols() int {
	if t == nil {
		return 0
	}
	return len(t.Columns)
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	if t == nil {
		return -1
	}
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// NullCounts returns the number of nil values per column, in column order.
func (t *Table) NullCounts() []int {
	if t == nil {
		return nil
	}
	counts := make([]int, len(t.Columns))
	for _, row := range t.Rows {
		for i := range counts {
			if i < len(row) && row[i] == nil {
				counts[i]++
			}
		}
	}
	return counts
}

// SizeBytes returns an approximate in-memory footprint of the table data.
func (t *Table) SizeBytes() int64 {
	if t == nil {
		return 0
	}
	var size int64
	for _, c := range t.Columns {
		size += int64(len(c)) + 16
	}
	for _, row := range t.Rows {
		size += 24 // slice header
		for _, v := range row {
			size += 16 // interface header
			switch x := v.(type) {
			case nil:
			case string:
				size += int64(len(x))
			case []byte:
				size += int64(len(x))
			case bool:
				size++
			case time.Time:
				size += 24
			default:
				size += 8
			}
		}
	}
	return size
}

// Mapping is a key-value result, the non-tabular payload kind accepted by
// SaveMapping.
type Mapping map[string]any
