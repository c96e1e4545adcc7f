package ygggo_dbkit

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/apache/arrow/go/v13/arrow"
	"github.com/apache/arrow/go/v13/arrow/array"
	"github.com/apache/arrow/go/v13/arrow/memory"
	"github.com/apache/arrow/go/v13/parquet"
	"github.com/apache/arrow/go/v13/parquet/pqarrow"
)

// Format is a serialization format for result payloads.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
	FormatJSON    Format = "json"
)

// SaveTable writes a tabular result to path as delimited text (FormatCSV) or
// columnar binary (FormatParquet), without an index column. Intermediate
// directories are created as needed. Any other format is rejected with
// ErrUnsupportedFormat before anything is written.
func SaveTable(t *Table, path string, format Format) error {
	var write func(*Table, io.Writer) error
	switch format {
	case FormatCSV:
		write = writeCSV
	case FormatParquet:
		write = writeParquet
	default:
		return fmt.Errorf("%w for table: %q", ErrUnsupportedFormat, format)
	}

	f, err := createWithDirs(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := write(t, f); err != nil {
		return err
	}
	logSaved(path, format)
	return nil
}

// SaveMapping writes a key-value result to path as formatted structured text
// (FormatJSON, 2-space indent). Any other format is rejected with
// ErrUnsupportedFormat before anything is written.
func SaveMapping(m Mapping, path string, format Format) error {
	if format != FormatJSON {
		return fmt.Errorf("%w for mapping: %q", ErrUnsupportedFormat, format)
	}

	f, err := createWithDirs(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return err
	}
	logSaved(path, format)
	return nil
}

// createWithDirs creates the destination file, making parent directories
// first. Repeat calls with the same parent are no-ops on the directory side.
func createWithDirs(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

func logSaved(path string, format Format) {
	defaultLogger.LogAttrs(context.Background(), slog.LevelInfo, "results saved",
		slog.String("path", path),
		slog.String("format", string(format)),
	)
}

// writeCSV writes the header row followed by the data rows. Nil values
// become empty fields.
func writeCSV(t *Table, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		record := make([]string, len(t.Columns))
		for i := range t.Columns {
			if i < len(row) && row[i] != nil {
				record[i] = formatValue(row[i])
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// Column kinds inferred for parquet serialization.
type columnKind int

const (
	kindString columnKind = iota
	kindInt
	kindFloat
	kindBool
)

// inferKind picks the narrowest kind covering every non-nil value in the
// column. Mixed int/float columns widen to float; anything else falls back
// to string.
func inferKind(t *Table, col int) columnKind {
	kind := columnKind(-1)
	for _, row := range t.Rows {
		if col >= len(row) || row[col] == nil {
			continue
		}
		var k columnKind
		switch row[col].(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			k = kindInt
		case float32, float64:
			k = kindFloat
		case bool:
			k = kindBool
		default:
			return kindString
		}
		switch {
		case kind == columnKind(-1):
			kind = k
		case kind == k:
		case kind == kindInt && k == kindFloat, kind == kindFloat && k == kindInt:
			kind = kindFloat
		default:
			return kindString
		}
	}
	if kind == columnKind(-1) {
		return kindString
	}
	return kind
}

// writeParquet converts the table to an Arrow record and writes it with the
// Arrow parquet writer.
func writeParquet(t *Table, w io.Writer) error {
	mem := memory.NewGoAllocator()

	kinds := make([]columnKind, len(t.Columns))
	fields := make([]arrow.Field, len(t.Columns))
	for i, name := range t.Columns {
		kinds[i] = inferKind(t, i)
		var dt arrow.DataType
		switch kinds[i] {
		case kindInt:
			dt = arrow.PrimitiveTypes.Int64
		case kindFloat:
			dt = arrow.PrimitiveTypes.Float64
		case kindBool:
			dt = arrow.FixedWidthTypes.Boolean
		default:
			dt = arrow.BinaryTypes.String
		}
		fields[i] = arrow.Field{Name: name, Type: dt, Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	cols := make([]arrow.Array, len(t.Columns))
	for i := range t.Columns {
		arr, err := buildColumn(mem, t, i, kinds[i])
		if err != nil {
			return err
		}
		defer arr.Release()
		cols[i] = arr
	}

	rec := array.NewRecord(schema, cols, int64(t.NumRows()))
	defer rec.Release()
	tbl := array.NewTableFromRecords(schema, []arrow.Record{rec})
	defer tbl.Release()

	chunk := int64(t.NumRows())
	if chunk < 1 {
		chunk = 1
	}
	return pqarrow.WriteTable(tbl, w, chunk,
		parquet.NewWriterProperties(parquet.WithAllocator(mem)),
		pqarrow.DefaultWriterProps())
}

func buildColumn(mem memory.Allocator, t *Table, col int, kind columnKind) (arrow.Array, error) {
	switch kind {
	case kindInt:
		b := array.NewInt64Builder(mem)
		defer b.Release()
		for _, row := range t.Rows {
			v, ok := cell(row, col)
			if !ok {
				b.AppendNull()
				continue
			}
			b.Append(toInt64(v))
		}
		return b.NewArray(), nil
	case kindFloat:
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		for _, row := range t.Rows {
			v, ok := cell(row, col)
			if !ok {
				b.AppendNull()
				continue
			}
			b.Append(toFloat64(v))
		}
		return b.NewArray(), nil
	case kindBool:
		b := array.NewBooleanBuilder(mem)
		defer b.Release()
		for _, row := range t.Rows {
			v, ok := cell(row, col)
			if !ok {
				b.AppendNull()
				continue
			}
			b.Append(v.(bool))
		}
		return b.NewArray(), nil
	default:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		for _, row := range t.Rows {
			v, ok := cell(row, col)
			if !ok {
				b.AppendNull()
				continue
			}
			b.Append(formatValue(v))
		}
		return b.NewArray(), nil
	}
}

func cell(row []any, col int) (any, bool) {
	if col >= len(row) || row[col] == nil {
		return nil, false
	}
	return row[col], true
}

func toInt64(v any) int64 {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	default:
		return 0
	}
}

func toFloat64(v any) float64 {
	switch x := v.(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	default:
		return float64(toInt64(v))
	}
}
