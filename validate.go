package ygggo_dbkit

import (
	"context"
	"log/slog"
)

// ValidateTable checks the structure of a tabular result and logs a summary:
// shape, column names and approximate memory footprint.
//
// When expectedCols is non-empty, every listed column must be present;
// missing ones are returned as a *SchemaError. Null values never fail
// validation — columns containing them are only reported in a warning log.
// The table is never mutated.
func ValidateTable(t *Table, name string, expectedCols []string) error {
	ctx := context.Background()
	log := defaultLogger

	log.LogAttrs(ctx, slog.LevelInfo, "validating table",
		slog.String("name", name),
		slog.Int("rows", t.NumRows()),
		slog.Int("columns", t.NumCols()),
		slog.Any("column_names", t.Columns),
		slog.Int64("size_bytes", t.SizeBytes()),
	)

	if len(expectedCols) > 0 {
		var missing []string
		for _, col := range expectedCols {
			if !t.HasColumn(col) {
				missing = append(missing, col)
			}
		}
		if len(missing) > 0 {
			err := &SchemaError{Name: name, Missing: missing}
			log.LogAttrs(ctx, slog.LevelError, "table validation failed",
				slog.String("name", name),
				slog.Any("missing_columns", missing),
			)
			return err
		}
		log.LogAttrs(ctx, slog.LevelInfo, "all expected columns present",
			slog.String("name", name))
	}

	nulls := t.NullCounts()
	var withNulls []slog.Attr
	for i, n := range nulls {
		if n > 0 {
			withNulls = append(withNulls, slog.Int(t.Columns[i], n))
		}
	}
	if len(withNulls) > 0 {
		attrs := append([]slog.Attr{slog.String("name", name)}, withNulls...)
		log.LogAttrs(ctx, slog.LevelWarn, "null values found", attrs...)
	} else {
		log.LogAttrs(ctx, slog.LevelInfo, "no null values",
			slog.String("name", name))
	}

	return nil
}
