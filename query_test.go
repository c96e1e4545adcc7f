package ygggo_dbkit

import (
	"context"
	"errors"
	"reflect"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPool_Query_ReturnsTable(t *testing.T) {
	p, mock := newMockPool(t, "dbkit_query_table")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM users WHERE age > ?")).
		WithArgs(25).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "alice").
			AddRow(int64(2), nil))
	mock.ExpectClose()
	defer p.Close()

	table, err := p.Query(context.Background(), "SELECT id, name FROM users WHERE age > ?", 25)
	if err != nil {
		t.Fatalf("Query err: %v", err)
	}
	if !reflect.DeepEqual(table.Columns, []string{"id", "name"}) {
		t.Fatalf("columns=%v", table.Columns)
	}
	if table.NumRows() != 2 {
		t.Fatalf("rows=%d", table.NumRows())
	}
	if table.Rows[0][1] != "alice" {
		t.Fatalf("row0=%v", table.Rows[0])
	}
	if table.Rows[1][1] != nil {
		t.Fatalf("row1=%v, want nil name", table.Rows[1])
	}
	_ = p.Close()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPool_Query_WrapsDriverError(t *testing.T) {
	p, mock := newMockPool(t, "dbkit_query_err")
	driverErr := errors.New("Unknown column 'nope'")
	mock.ExpectQuery("SELECT nope FROM users").WillReturnError(driverErr)
	mock.ExpectClose()
	defer p.Close()

	_, err := p.Query(context.Background(), "SELECT nope FROM users")
	var qerr *QueryError
	if !errors.As(err, &qerr) {
		t.Fatalf("err=%v, want *QueryError", err)
	}
	if qerr.Op != "query" {
		t.Fatalf("op=%q", qerr.Op)
	}
	if !errors.Is(err, driverErr) {
		t.Fatalf("underlying driver error not wrapped: %v", err)
	}
	if Classify(err) != ErrClassQuery {
		t.Fatalf("class=%v", Classify(err))
	}
}

func TestPool_Exec_CommitsAndReportsAffected(t *testing.T) {
	p, mock := newMockPool(t, "dbkit_exec_ok")
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET active = ? WHERE age < ?")).
		WithArgs(false, 18).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()
	mock.ExpectClose()
	defer p.Close()

	affected, err := p.Exec(context.Background(), "UPDATE users SET active = ? WHERE age < ?", false, 18)
	if err != nil {
		t.Fatalf("Exec err: %v", err)
	}
	if affected != 3 {
		t.Fatalf("affected=%d", affected)
	}
	_ = p.Close()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPool_Exec_RollsBackOnFailure(t *testing.T) {
	p, mock := newMockPool(t, "dbkit_exec_fail")
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM users").WillReturnError(errors.New("table locked"))
	mock.ExpectRollback()
	mock.ExpectClose()
	defer p.Close()

	_, err := p.Exec(context.Background(), "DELETE FROM users")
	var qerr *QueryError
	if !errors.As(err, &qerr) {
		t.Fatalf("err=%v, want *QueryError", err)
	}
	if qerr.Op != "exec" {
		t.Fatalf("op=%q", qerr.Op)
	}
	_ = p.Close()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPool_GetTable_WithLimit(t *testing.T) {
	p, mock := newMockPool(t, "dbkit_gettable")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM sessions LIMIT 5")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM sessions")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectClose()
	defer p.Close()

	table, err := p.GetTable(context.Background(), "sessions", 5)
	if err != nil {
		t.Fatalf("GetTable err: %v", err)
	}
	if table.NumRows() != 1 {
		t.Fatalf("rows=%d", table.NumRows())
	}

	if _, err := p.GetTable(context.Background(), "sessions", 0); err != nil {
		t.Fatalf("GetTable no limit err: %v", err)
	}
	_ = p.Close()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
