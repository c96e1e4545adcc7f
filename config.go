package ygggo_dbkit

import (
	"strings"
	"time"
)

// PoolConfig holds pool-related settings applied to the underlying *sql.DB.
type PoolConfig struct {
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPoolConfig returns the pool limits used when none are configured.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpen:         25,
		MaxIdle:         10,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 10 * time.Minute,
	}
}

// Config holds library configuration.
type Config struct {
	// Driver allows overriding the sql driver (e.g. "mysql" in prod,
	// "sqlmock" in tests).
	Driver string
	// DSN, when non-empty, is used verbatim and field-based building is
	// skipped (including the password requirement).
	DSN string
	// Field-based DSN building (used when DSN is empty)
	Host     string
	Port     int
	Username string
	Password string
	Database string
	Params   map[string]string
	Pool     PoolConfig
}

// Configuration defaults. The password deliberately has no default.
const (
	DefaultHost     = "localhost"
	DefaultPort     = 3306
	DefaultUsername = "root"
	DefaultDatabase = "funnel_project"
)

// applyDefaults fills zero-valued connection fields.
func applyDefaults(c *Config) {
	if c.Driver == "" {
		c.Driver = "mysql"
	}
	if strings.TrimSpace(c.Host) == "" {
		c.Host = DefaultHost
	}
	if c.Port <= 0 {
		c.Port = DefaultPort
	}
	if strings.TrimSpace(c.Username) == "" {
		c.Username = DefaultUsername
	}
	if strings.TrimSpace(c.Database) == "" {
		c.Database = DefaultDatabase
	}
	if c.Pool == (PoolConfig{}) {
		c.Pool = DefaultPoolConfig()
	}
}

// dsnFromConfig returns a DSN string.
// Priority: if Config.DSN is non-empty, return it unchanged.
// Otherwise build from host/port/username/password/database/params via the
// DSN builder, which percent-encodes credentials so reserved characters
// (@ # $ / etc.) cannot corrupt the DSN.
func dsnFromConfig(c Config) (string, error) {
	if strings.TrimSpace(c.DSN) != "" {
		return c.DSN, nil
	}
	b := NewDSNBuilder().
		Host(c.Host).
		Port(c.Port).
		Username(c.Username).
		Password(c.Password).
		Database(c.Database)
	for k, v := range c.Params {
		b.SetParam(k, v)
	}
	return b.BuildWithValidation()
}
