package ygggo_dbkit

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingPassword is returned when construction finds no password in
	// the configuration. There is no default for it on purpose.
	ErrMissingPassword = errors.New("DB_PASSWORD not found in configuration")

	// ErrUnsupportedFormat is returned by the save helpers for a format the
	// payload kind cannot be written as.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrPoolClosed is returned when an operation is attempted on a closed pool.
	ErrPoolClosed = errors.New("pool is closed")
)

// ConnectionError wraps a driver error raised while establishing the engine.
type ConnectionError struct {
	Addr string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.Addr, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError wraps a driver error raised by statement execution.
// Op is "query" for the read path, "exec" for the write path and "script"
// for script statements.
type QueryError struct {
	Op    string
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// SchemaError reports expected columns absent from a tabular result.
type SchemaError struct {
	Name    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %s missing required columns: {%s}", e.Name, strings.Join(e.Missing, ", "))
}

// ErrorClass is a coarse classification of library errors, used as a
// structured logging attribute.
type ErrorClass int

const (
	ErrClassUnknown ErrorClass = iota
	ErrClassConfig
	ErrClassConnection
	ErrClassQuery
	ErrClassSchema
	ErrClassFormat
)

func (c ErrorClass) String() string {
	switch c {
	case ErrClassConfig:
		return "config"
	case ErrClassConnection:
		return "connection"
	case ErrClassQuery:
		return "query"
	case ErrClassSchema:
		return "schema"
	case ErrClassFormat:
		return "format"
	default:
		return "unknown"
	}
}

// Classify maps an error to its ErrorClass.
func Classify(err error) ErrorClass {
	switch {
	case err == nil:
		return ErrClassUnknown
	case errors.Is(err, ErrMissingPassword):
		return ErrClassConfig
	case errors.Is(err, ErrUnsupportedFormat):
		return ErrClassFormat
	}
	var ce *ConnectionError
	if errors.As(err, &ce) {
		return ErrClassConnection
	}
	var qe *QueryError
	if errors.As(err, &qe) {
		return ErrClassQuery
	}
	var se *SchemaError
	if errors.As(err, &se) {
		return ErrClassSchema
	}
	return ErrClassUnknown
}

// truncateError shortens an error message for warning logs.
func truncateError(err error, max int) string {
	msg := err.Error()
	if len(msg) <= max {
		return msg
	}
	return msg[:max]
}
