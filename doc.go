// Package ygggo_dbkit provides a thin convenience layer over a MySQL database
// for query-driven data work.
//
// # Overview
//
// ygggo_dbkit wraps Go's standard database/sql package with the small set of
// operations a data pipeline actually needs:
//   - Environment-driven configuration with sane defaults
//   - A pooled connection manager with query, non-query and script execution
//   - In-memory tabular results scanned straight from *sql.Rows
//   - Result validation (expected columns, null counts)
//   - Serialization of results to CSV, Parquet and JSON files
//
// # Quick Start
//
//	import ggd "github.com/yggai/ygggo_dbkit"
//
//	ctx := context.Background()
//	ggd.LoadEnv()
//
//	pool, err := ggd.NewPoolEnv(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
//	table, err := pool.Query(ctx, "SELECT id, name FROM users WHERE age > ?", 25)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := ggd.SaveTable(table, "out/users.csv", ggd.FormatCSV); err != nil {
//		log.Fatal(err)
//	}
//
// # Script Execution
//
// ExecScript runs a .sql file statement by statement. Line comments (--) are
// stripped and each statement is committed on its own. By default a failing
// statement is logged and skipped; pass Strict() to abort on first failure.
//
// # Configuration
//
// Configuration is read from DB_HOST, DB_PORT, DB_USER, DB_PASSWORD and
// DB_NAME. DB_PASSWORD has no default and must be set. LoadEnv loads a
// .env file from an explicit path, the working directory or its parent.
package ygggo_dbkit

// Version returns the current library version.
//
// This version follows semantic versioning (semver) principles.
// During development, it returns "v0.0.0-dev".
func Version() string { return "v0.0.0-dev" }
