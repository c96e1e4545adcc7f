package ygggo_dbkit

import (
	"context"
	"fmt"
	"time"
)

// Query runs a read statement with bound parameters and returns the full
// result set as a Table. Ownership of the table passes to the caller.
//
// Driver failures are wrapped in a *QueryError, logged at error level and
// returned. Row counts are logged on success.
func (p *Pool) Query(ctx context.Context, query string, args ...any) (*Table, error) {
	start := time.Now()
	var t *Table
	err := p.WithConn(ctx, func(c *Conn) error {
		rows, err := c.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		t, err = scanTable(rows)
		return err
	})
	if err != nil {
		qerr := &QueryError{Op: "query", Query: query, Err: err}
		p.logQuery(ctx, "query", query, args, 0, time.Since(start), qerr)
		return nil, qerr
	}
	p.logQuery(ctx, "query", query, args, int64(t.NumRows()), time.Since(start), nil)
	return t, nil
}

// Exec runs a write/DDL statement inside a transaction that is committed
// immediately after execution and returns the number of affected rows.
func (p *Pool) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	start := time.Now()
	var affected int64
	err := p.WithConn(ctx, func(c *Conn) error {
		tx, err := c.BeginTx(ctx)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		affected, _ = res.RowsAffected()
		return tx.Commit()
	})
	if err != nil {
		qerr := &QueryError{Op: "exec", Query: query, Err: err}
		p.logQuery(ctx, "exec", query, args, 0, time.Since(start), qerr)
		return 0, qerr
	}
	p.logQuery(ctx, "exec", query, args, affected, time.Since(start), nil)
	return affected, nil
}

// GetTable loads a whole table, optionally capped by limit (limit <= 0 means
// no cap). The table name is interpolated verbatim: this is a convenience for
// caller-trusted identifiers only, not safe for untrusted input.
func (p *Pool) GetTable(ctx context.Context, name string, limit int) (*Table, error) {
	query := fmt.Sprintf("SELECT * FROM %s", name)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return p.Query(ctx, query)
}
