package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvDBPath   = "STENODRILL_DB"
	EnvAddr     = "STENODRILL_ADDR"
	EnvLogLevel = "STENODRILL_LOG_LEVEL"
)

// LoadEnv loads a .env file from the working directory when present and
// applies environment overrides on top of cfg. Variables already set in the
// process environment win over the .env file.
func LoadEnv(cfg *FileConfig) {
	// A missing .env is the common case.
	_ = godotenv.Load()

	if v, ok := lookupEnv(EnvDBPath); ok {
		cfg.Store.Path = &v
	}
	if v, ok := lookupEnv(EnvAddr); ok {
		cfg.Server.Addr = &v
	}
	if v, ok := lookupEnv(EnvLogLevel); ok {
		cfg.Log.Level = &v
	}
}

func lookupEnv(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

// StringOr returns *v or def when v is nil.
func StringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

// IntOr returns *v or def when v is nil.
func IntOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
