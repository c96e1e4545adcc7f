package ygggo_dbkit

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveTable_CSVRoundTrip(t *testing.T) {
	tb := sampleTable()
	path := filepath.Join(t.TempDir(), "nested", "deeper", "out.csv")

	require.NoError(t, SaveTable(tb, path, FormatCSV))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	want := [][]string{
		{"id", "name", "score"},
		{"1", "alice", "9.5"},
		{"2", "", "7"},
		{"3", "carol", ""},
	}
	assert.Equal(t, want, records)

	// Repeat call: directory creation is idempotent.
	require.NoError(t, SaveTable(tb, path, FormatCSV))
}

func TestSaveTable_UnsupportedFormatWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	err := SaveTable(sampleTable(), path, Format("xlsx"))
	require.True(t, errors.Is(err, ErrUnsupportedFormat), "err=%v", err)
	assert.Equal(t, ErrClassFormat, Classify(err))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should be written")
}

func TestSaveTable_ParquetMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.parquet")
	require.NoError(t, SaveTable(sampleTable(), path, FormatParquet))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(raw), 8)
	assert.True(t, bytes.HasPrefix(raw, []byte("PAR1")), "missing parquet header magic")
	assert.True(t, bytes.HasSuffix(raw, []byte("PAR1")), "missing parquet footer magic")
}

func TestSaveTable_ParquetEmptyTable(t *testing.T) {
	tb := &Table{Columns: []string{"a", "b"}}
	path := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, SaveTable(tb, path, FormatParquet))
}

func TestSaveMapping_JSONIndented(t *testing.T) {
	m := Mapping{"model": "funnel_v2", "auc": 0.91}
	path := filepath.Join(t.TempDir(), "metrics", "summary.json")

	require.NoError(t, SaveMapping(m, path, FormatJSON))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"auc\"", "expected 2-space indent")

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "funnel_v2", got["model"])
	assert.Equal(t, 0.91, got["auc"])
}

func TestSaveMapping_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.csv")
	err := SaveMapping(Mapping{"k": "v"}, path, FormatCSV)
	require.True(t, errors.Is(err, ErrUnsupportedFormat), "err=%v", err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should be written")
}

func TestInferKind(t *testing.T) {
	tb := &Table{
		Columns: []string{"i", "f", "mixed_num", "b", "s", "all_null"},
		Rows: [][]any{
			{int64(1), 1.5, int64(1), true, "x", nil},
			{int64(2), 2.5, 2.5, false, "y", nil},
		},
	}
	assert.Equal(t, kindInt, inferKind(tb, 0))
	assert.Equal(t, kindFloat, inferKind(tb, 1))
	assert.Equal(t, kindFloat, inferKind(tb, 2))
	assert.Equal(t, kindBool, inferKind(tb, 3))
	assert.Equal(t, kindString, inferKind(tb, 4))
	assert.Equal(t, kindString, inferKind(tb, 5))
}
