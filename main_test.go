package main

import (
	"io/fs"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lemurr-coffee/config"
)

func TestMigrationsEmbedded(t *testing.T) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.True(t, sort.StringsAreSorted(names))
	assert.Equal(t, "migrations/001_seed_tables.sql", names[0])
}

func TestPendingMigrations(t *testing.T) {
	names := []string{"migrations/002_seed_data.sql", "migrations/001_seed_tables.sql", "migrations/003_cities_index.sql"}
	tests := []struct {
		name    string
		applied map[string]bool
		want    []string
	}{
		{"fresh database", nil, []string{"migrations/001_seed_tables.sql", "migrations/002_seed_data.sql", "migrations/003_cities_index.sql"}},
		{"partially applied", map[string]bool{"migrations/001_seed_tables.sql": true}, []string{"migrations/002_seed_data.sql", "migrations/003_cities_index.sql"}},
		{"up to date", map[string]bool{"migrations/001_seed_tables.sql": true, "migrations/002_seed_data.sql": true, "migrations/003_cities_index.sql": true}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pendingMigrations(names, tt.applied))
		})
	}
	assert.Equal(t, "migrations/002_seed_data.sql", names[0], "input slice is left untouched")
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger(config.AppConfig{Env: "development", LogLevel: "debug"})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = newLogger(config.AppConfig{Env: "production", LogLevel: "loud"})
	assert.Error(t, err)
}
