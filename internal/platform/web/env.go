package web

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadEnv.
const (
	EnvAddr     = "ARCADE_WEB_ADDR"
	EnvTickRate = "ARCADE_WEB_TICK_RATE"
	EnvSeed     = "ARCADE_WEB_SEED"
	EnvDB       = "ARCADE_DB"
	EnvGinMode  = "GIN_MODE"
)

// EnvConfig is the web server configuration taken from the environment.
// Empty fields were not set.
type EnvConfig struct {
	Addr     string
	TickRate int
	Seed     int64
	DBPath   string
	GinMode  string
}

// LoadEnv loads the given .env files, if present, and reads the server
// settings. Variables already in the environment win over the files.
func LoadEnv(files ...string) (EnvConfig, error) {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return EnvConfig{}, fmt.Errorf("web: loading %s: %w", f, err)
		}
	}

	cfg := EnvConfig{
		Addr:    os.Getenv(EnvAddr),
		DBPath:  os.Getenv(EnvDB),
		GinMode: getEnvWithDefault(EnvGinMode, "release"),
	}

	if v, ok := os.LookupEnv(EnvTickRate); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return EnvConfig{}, fmt.Errorf("web: %s must be a positive integer, got %q", EnvTickRate, v)
		}
		cfg.TickRate = n
	}
	if v, ok := os.LookupEnv(EnvSeed); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return EnvConfig{}, fmt.Errorf("web: %s must be an integer, got %q", EnvSeed, v)
		}
		cfg.Seed = n
	}
	return cfg, nil
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
