package ygggo_dbkit

import "context"

// DatabasePool defines the interface the connection manager satisfies.
// It exists so callers can swap in a test double for the real pool.
type DatabasePool interface {
	Query(ctx context.Context, query string, args ...any) (*Table, error)
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	ExecScript(ctx context.Context, path string, opts ...ScriptOption) (int, error)
	GetTable(ctx context.Context, name string, limit int) (*Table, error)
	Ping(ctx context.Context) error
	Close() error
}
