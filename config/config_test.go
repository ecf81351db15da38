package config

import (
	"go/format"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TOKEN", "ADMIN_TOKEN", "ADMIN_IDS", "SEED_SOURCE", "SEED_FILE",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"AUTO_MIGRATE", "LOG_LEVEL", "APP_ENV", "DEFAULT_LANG",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.Seed.Source)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "lemurr", cfg.DB.Database)
	assert.Equal(t, "ru", cfg.App.DefaultLang)
	assert.False(t, cfg.App.AutoMigrate)
	assert.False(t, cfg.UsesDB())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN", "shop-token")
	t.Setenv("ADMIN_TOKEN", "admin-token")
	t.Setenv("SEED_SOURCE", "Postgres")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("ADMIN_IDS", "101, 202,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "shop-token", cfg.Telegram.Token)
	assert.Equal(t, "admin-token", cfg.Telegram.AdminToken)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.True(t, cfg.App.AutoMigrate)
	assert.True(t, cfg.UsesDB())
	assert.Equal(t, []int64{101, 202}, cfg.Telegram.AdminIDs)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown seed source", map[string]string{"SEED_SOURCE": "redis"}},
		{"file without path", map[string]string{"SEED_SOURCE": "file"}},
		{"bad port", map[string]string{"DB_PORT": "abc"}},
		{"bad admin id", map[string]string{"ADMIN_IDS": "12,x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestConfigSourceIsFormatted(t *testing.T) {
	src, err := os.ReadFile("config.go")
	require.NoError(t, err)
	formatted, err := format.Source(src)
	require.NoError(t, err)
	assert.Equal(t, string(formatted), string(src), "run gofmt on config.go")
}
