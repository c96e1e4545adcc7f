package ygggo_dbkit

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names recognized by applyEnv.
const (
	EnvHost     = "DB_HOST"
	EnvPort     = "DB_PORT"
	EnvUser     = "DB_USER"
	EnvPassword = "DB_PASSWORD"
	EnvName     = "DB_NAME"
)

// LoadEnv loads environment variables from a .env file.
//
// With an explicit path the file must parse, but a missing file is not an
// error (mirrors dotenv semantics). Without a path it probes .env in the
// working directory and then in the parent directory, loading the first one
// found. Variables already present in the environment are never overridden.
func LoadEnv(path ...string) error {
	if len(path) > 0 {
		err := godotenv.Load(path...)
		if err != nil && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	for _, p := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(p); err == nil {
			return godotenv.Load(p)
		}
	}
	return nil
}

// applyEnv overlays DB_* environment variables onto cfg.
// Only variables that are set and non-empty take effect.
func applyEnv(cfg *Config) {
	if v := getenv(EnvHost); v != "" {
		cfg.Host = v
	}
	if v := getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Port = port
		}
	}
	if v := getenv(EnvUser); v != "" {
		cfg.Username = v
	}
	if v := getenv(EnvPassword); v != "" {
		cfg.Password = v
	}
	if v := getenv(EnvName); v != "" {
		cfg.Database = v
	}
}

func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
