package ygggo_dbkit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Pool owns exactly one database handle and offers query/execute primitives.
// Construction connects eagerly; Close releases the handle. Methods are valid
// only between the two.
type Pool struct {
	db       *sql.DB
	database string

	logger         *slog.Logger
	loggingEnabled bool
}

// NewPool builds a DSN from cfg, opens the underlying *sql.DB and verifies
// connectivity with one ping.
//
// A missing password is a configuration error surfaced before any network
// activity, unless a raw DSN is supplied. Ping failure is returned as a
// *ConnectionError.
func NewPool(ctx context.Context, cfg Config) (*Pool, error) {
	applyDefaults(&cfg)
	if strings.TrimSpace(cfg.DSN) == "" && cfg.Password == "" {
		return nil, ErrMissingPassword
	}

	dsn, err := dsnFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, &ConnectionError{Addr: addr, Err: err}
	}
	db.SetMaxOpenConns(cfg.Pool.MaxOpen)
	db.SetMaxIdleConns(cfg.Pool.MaxIdle)
	db.SetConnMaxLifetime(cfg.Pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Pool.ConnMaxIdleTime)

	p := &Pool{
		db:             db,
		database:       cfg.Database,
		logger:         defaultLogger,
		loggingEnabled: true,
	}

	start := time.Now()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		cerr := &ConnectionError{Addr: addr, Err: err}
		p.logConnection(ctx, "connect", time.Since(start), cerr)
		return nil, cerr
	}
	p.logConnection(ctx, "connect", time.Since(start), nil)
	return p, nil
}

// NewPoolEnv builds a Pool from DB_* environment variables.
// Call LoadEnv first to source them from a .env file.
func NewPoolEnv(ctx context.Context) (*Pool, error) {
	cfg := Config{}
	applyEnv(&cfg)
	return NewPool(ctx, cfg)
}

// Database returns the configured database name.
func (p *Pool) Database() string {
	if p == nil {
		return ""
	}
	return p.database
}

// Ping verifies the connection is alive.
func (p *Pool) Ping(ctx context.Context) error {
	if p == nil || p.db == nil {
		return ErrPoolClosed
	}
	return p.db.PingContext(ctx)
}

// Close releases the connection handle. Safe to call more than once.
func (p *Pool) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	p.logConnection(context.Background(), "close", 0, err)
	return err
}
