package ygggo_dbkit

import (
	"context"
	"database/sql"
)

// Conn wraps a single connection obtained from *sql.DB.
// It must be closed to return the connection back to the pool.
type Conn struct {
	inner *sql.Conn
}

// WithConn acquires a connection, calls fn, and always returns the connection.
// Every query and script operation runs through here so no per-call handle
// can leak, even on error.
func (p *Pool) WithConn(ctx context.Context, fn func(*Conn) error) error {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(conn)
}

// Acquire gets a connection from the underlying *sql.DB honoring context.
func (p *Pool) Acquire(ctx context.Context) (*Conn, error) {
	if p == nil || p.db == nil {
		return nil, ErrPoolClosed
	}
	c, err := p.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &Conn{inner: c}, nil
}

// Exec executes a statement using the underlying connection.
func (c *Conn) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if c == nil || c.inner == nil {
		return nil, sql.ErrConnDone
	}
	return c.inner.ExecContext(ctx, query, args...)
}

// Query runs a query and returns rows.
func (c *Conn) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if c == nil || c.inner == nil {
		return nil, sql.ErrConnDone
	}
	return c.inner.QueryContext(ctx, query, args...)
}

// BeginTx starts a transaction on this connection.
func (c *Conn) BeginTx(ctx context.Context) (*sql.Tx, error) {
	if c == nil || c.inner == nil {
		return nil, sql.ErrConnDone
	}
	return c.inner.BeginTx(ctx, nil)
}

// Close returns the connection to the pool.
func (c *Conn) Close() error {
	if c == nil || c.inner == nil {
		return nil
	}
	return c.inner.Close()
}
