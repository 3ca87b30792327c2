package web

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the server variables for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvAddr, EnvTickRate, EnvSeed, EnvDB, EnvGinMode} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, EnvConfig{GinMode: "release"}, cfg)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	content := "ARCADE_WEB_ADDR=:9090\nARCADE_WEB_TICK_RATE=30\nARCADE_WEB_SEED=42\nARCADE_DB=/tmp/arcade.db\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadEnv(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 30, cfg.TickRate)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "/tmp/arcade.db", cfg.DBPath)
}

func TestLoadEnvProcessWins(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAddr, ":7000")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ARCADE_WEB_ADDR=:9090\n"), 0o600))

	cfg, err := LoadEnv(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr)
}

func TestLoadEnvRejectsBadNumbers(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{EnvTickRate, "fast"},
		{EnvTickRate, "0"},
		{EnvSeed, "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadEnv()
			assert.Error(t, err)
		})
	}
}
