// internal/config/config.go
//
// Runtime configuration, read from the environment.
// A .env file in the working directory is loaded first (development only);
// variables already present in the environment always win.
//
// Environment variables:
//   PORT            HTTP listen port                  (default 5175)
//   LOG_LEVEL       zerolog level                     (default info)
//   PUZZLES_FILE    TOML puzzle rotation              (default: embedded)
//   SESSION_SECRET  HMAC key for session tokens       (default dev_secret_change_me)
//   CLIENT_ORIGIN   allowed CORS origin               (default http://localhost:5173)
//   REQUIRE_ROOT    words must contain the root       (default true)
//   NODE_ENV        "production" enables secure cookies

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultSecret is used when SESSION_SECRET is unset. Never use it in production.
const DefaultSecret = "dev_secret_change_me"

// Config holds process-wide settings.
type Config struct {
	Port          string
	LogLevel      string
	PuzzlesFile   string
	SessionSecret string
	ClientOrigin  string
	RequireRoot   bool
	Production    bool
}

// Load reads the given env files (or ./.env when none are given, ignoring a
// missing file) and then builds a Config from the environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	requireRoot, err := envBool("REQUIRE_ROOT", true)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Port:          getEnv("PORT", "5175"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		PuzzlesFile:   os.Getenv("PUZZLES_FILE"),
		SessionSecret: getEnv("SESSION_SECRET", DefaultSecret),
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		RequireRoot:   requireRoot,
		Production:    os.Getenv("NODE_ENV") == "production",
	}, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", k, err)
	}
	return b, nil
}
