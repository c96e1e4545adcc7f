package ygggo_dbkit

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"
)

// ScriptOptions controls how ExecScript reacts to per-statement failures.
type ScriptOptions struct {
	// StrictMode aborts on the first failing statement. The default is the
	// lenient policy: log a truncated warning and continue, which tolerates
	// statements that are expected to fail (manual DROP TABLE IF EXISTS
	// emulation and the like).
	StrictMode bool
}

// ScriptOption mutates ScriptOptions.
type ScriptOption func(*ScriptOptions)

// Strict makes ExecScript abort on the first failing statement.
func Strict() ScriptOption {
	return func(o *ScriptOptions) { o.StrictMode = true }
}

// SplitScript splits a SQL script into semicolon-terminated statements.
//
// Comment-only lines (-- after leading whitespace) are dropped. Inline
// -- comments are stripped only to detect statement boundaries and empty
// lines; the stored statement keeps the original line text. A statement is
// kept only if it is non-empty after comment removal.
func SplitScript(script string) []string {
	var statements []string
	var current []string

	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}

		withoutComment := strings.TrimSpace(strings.SplitN(line, "--", 2)[0])
		if withoutComment == "" {
			continue
		}

		current = append(current, line)
		if strings.HasSuffix(withoutComment, ";") {
			stmt := strings.Join(current, "\n")
			if strings.TrimSpace(stmt) != "" {
				statements = append(statements, stmt)
			}
			current = nil
		}
	}

	return statements
}

// ExecScript reads a .sql file, splits it into statements and executes each
// one in its own transaction/commit over a single scoped connection.
//
// By default a failing statement is logged as a warning (message truncated to
// 100 characters) and the script continues; the caller learns about skipped
// statements from the logs only. With Strict() the first failure aborts and
// is returned as a *QueryError. The returned count is the number of
// statements that executed successfully.
func (p *Pool) ExecScript(ctx context.Context, path string, opts ...ScriptOption) (int, error) {
	var options ScriptOptions
	for _, opt := range opts {
		opt(&options)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		p.log(ctx, slog.LevelError, "script execution failed",
			slog.String("path", path), slog.String("error", err.Error()))
		return 0, err
	}
	statements := SplitScript(string(raw))

	executed := 0
	err = p.WithConn(ctx, func(c *Conn) error {
		for i, stmt := range statements {
			start := time.Now()
			if stmtErr := execCommitted(ctx, c, stmt); stmtErr != nil {
				qerr := &QueryError{Op: "script", Query: stmt, Err: stmtErr}
				if options.StrictMode {
					p.logQuery(ctx, "script", stmt, nil, 0, time.Since(start), qerr)
					return qerr
				}
				p.log(ctx, slog.LevelWarn, "script statement failed (may be expected)",
					slog.Int("statement", i+1),
					slog.String("error", truncateError(stmtErr, 100)))
				continue
			}
			executed++
		}
		return nil
	})
	if err != nil {
		return executed, err
	}

	p.log(ctx, slog.LevelInfo, "script executed",
		slog.String("path", path),
		slog.Int("statements", len(statements)),
		slog.Int("succeeded", executed))
	return executed, nil
}

// execCommitted runs one statement in its own transaction.
func execCommitted(ctx context.Context, c *Conn, stmt string) error {
	tx, err := c.BeginTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
