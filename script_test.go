package ygggo_dbkit

import (
	"reflect"
	"testing"
)

func TestSplitScript_CommentsAndBoundaries(t *testing.T) {
	script := "SELECT 1; -- comment\nSELECT 2;\n-- full comment line\nSELECT 3;"

	got := SplitScript(script)
	// Inline comments are stripped for boundary detection only; the stored
	// statement keeps the original line text.
	want := []string{"SELECT 1; -- comment", "SELECT 2;", "SELECT 3;"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("statements=%q, want %q", got, want)
	}
}

func TestSplitScript_OnlyCommentsAndBlanks(t *testing.T) {
	script := "-- drop legacy tables\n\n   \n-- nothing to do here\n"
	if got := SplitScript(script); len(got) != 0 {
		t.Fatalf("statements=%q, want none", got)
	}
}

func TestSplitScript_MultiLineStatement(t *testing.T) {
	script := "CREATE TABLE events (\n  id INT, -- surrogate key\n  name TEXT\n);\nINSERT INTO events VALUES (1, 'a');"

	got := SplitScript(script)
	want := []string{
		"CREATE TABLE events (\n  id INT, -- surrogate key\n  name TEXT\n);",
		"INSERT INTO events VALUES (1, 'a');",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("statements=%q, want %q", got, want)
	}
}

func TestSplitScript_UnterminatedTrailingStatementDropped(t *testing.T) {
	got := SplitScript("SELECT 1;\nSELECT 2")
	want := []string{"SELECT 1;"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("statements=%q, want %q", got, want)
	}
}

func TestSplitScript_Empty(t *testing.T) {
	if got := SplitScript(""); len(got) != 0 {
		t.Fatalf("statements=%q, want none", got)
	}
}
