package ygggo_dbkit

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DSNBuilder provides a fluent interface for building MySQL DSN strings.
//
// Username and password are percent-encoded on Build so reserved characters
// (@ # $ / :) cannot corrupt the DSN.
type DSNBuilder struct {
	host     string
	port     int
	username string
	password string
	database string

	// Timeout settings
	timeout      *time.Duration
	readTimeout  *time.Duration
	writeTimeout *time.Duration

	// Character encoding
	charset string

	// MySQL-specific settings
	parseTime bool
	location  string

	// Custom parameters
	params map[string]string
}

// NewDSNBuilder creates a new DSN builder with default settings.
func NewDSNBuilder() *DSNBuilder {
	return &DSNBuilder{
		port:   3306, // Default MySQL port
		params: make(map[string]string),
	}
}

// Host sets the database host
func (b *DSNBuilder) Host(host string) *DSNBuilder {
	b.host = host
	return b
}

// Port sets the database port
func (b *DSNBuilder) Port(port int) *DSNBuilder {
	b.port = port
	return b
}

// Username sets the database username
func (b *DSNBuilder) Username(username string) *DSNBuilder {
	b.username = username
	return b
}

// Password sets the database password
func (b *DSNBuilder) Password(password string) *DSNBuilder {
	b.password = password
	return b
}

// Database sets the database name
func (b *DSNBuilder) Database(database string) *DSNBuilder {
	b.database = database
	return b
}

// SetTimeout sets the connection timeout
func (b *DSNBuilder) SetTimeout(timeout time.Duration) *DSNBuilder {
	b.timeout = &timeout
	return b
}

// SetReadTimeout sets the read timeout
func (b *DSNBuilder) SetReadTimeout(timeout time.Duration) *DSNBuilder {
	b.readTimeout = &timeout
	return b
}

// SetWriteTimeout sets the write timeout
func (b *DSNBuilder) SetWriteTimeout(timeout time.Duration) *DSNBuilder {
	b.writeTimeout = &timeout
	return b
}

// SetCharset sets the character set
func (b *DSNBuilder) SetCharset(charset string) *DSNBuilder {
	b.charset = charset
	return b
}

// EnableParseTime enables automatic parsing of TIME and DATE values
func (b *DSNBuilder) EnableParseTime() *DSNBuilder {
	b.parseTime = true
	return b
}

// SetLocation sets the timezone location
func (b *DSNBuilder) SetLocation(location string) *DSNBuilder {
	b.location = location
	return b
}

// SetParam sets a custom parameter
func (b *DSNBuilder) SetParam(key, value string) *DSNBuilder {
	b.params[key] = value
	return b
}

// Build constructs the final DSN string
func (b *DSNBuilder) Build() string {
	var dsn strings.Builder

	// Build authentication part
	if b.username != "" {
		dsn.WriteString(url.QueryEscape(b.username))
		if b.password != "" {
			dsn.WriteString(":")
			dsn.WriteString(url.QueryEscape(b.password))
		}
		dsn.WriteString("@")
	}

	// Build network and address part
	dsn.WriteString("tcp(")
	dsn.WriteString(b.host)
	dsn.WriteString(":")
	dsn.WriteString(strconv.Itoa(b.port))
	dsn.WriteString(")")

	// Build database part
	dsn.WriteString("/")
	if b.database != "" {
		dsn.WriteString(url.QueryEscape(b.database))
	}

	// Build parameters
	params := b.buildParams()
	if len(params) > 0 {
		dsn.WriteString("?")
		dsn.WriteString(params)
	}

	return dsn.String()
}

// buildParams constructs the parameter string in stable key order.
func (b *DSNBuilder) buildParams() string {
	params := make(map[string]string)

	// Copy custom parameters first
	for k, v := range b.params {
		params[k] = v
	}

	// Add timeouts
	if b.timeout != nil {
		params["timeout"] = formatDuration(*b.timeout)
	}
	if b.readTimeout != nil {
		params["readTimeout"] = formatDuration(*b.readTimeout)
	}
	if b.writeTimeout != nil {
		params["writeTimeout"] = formatDuration(*b.writeTimeout)
	}

	// Add charset
	if b.charset != "" {
		params["charset"] = b.charset
	}

	// Add parseTime
	if b.parseTime {
		params["parseTime"] = "true"
	}

	// Add location
	if b.location != "" {
		params["loc"] = b.location
	}

	if len(params) == 0 {
		return ""
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s",
			url.QueryEscape(k), url.QueryEscape(params[k])))
	}

	return strings.Join(parts, "&")
}

// formatDuration formats a duration for MySQL DSN
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Nanoseconds()/1000000)
	}
	return fmt.Sprintf("%.0fs", d.Seconds())
}

// Validate checks if the DSN builder configuration is valid
func (b *DSNBuilder) Validate() error {
	if b.host == "" {
		return fmt.Errorf("host is required")
	}

	if b.port <= 0 || b.port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", b.port)
	}

	if b.database == "" {
		return fmt.Errorf("database name is required")
	}

	if b.timeout != nil && *b.timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", *b.timeout)
	}
	if b.readTimeout != nil && *b.readTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive, got %v", *b.readTimeout)
	}
	if b.writeTimeout != nil && *b.writeTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive, got %v", *b.writeTimeout)
	}

	return nil
}

// BuildWithValidation builds the DSN after validating the configuration
func (b *DSNBuilder) BuildWithValidation() (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}
	return b.Build(), nil
}
