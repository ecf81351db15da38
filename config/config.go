package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DB       DBConfig
	Telegram TelegramConfig
	Seed     SeedConfig
	App      AppConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type TelegramConfig struct {
	Token      string  // storefront bot
	AdminToken string  // admin panel bot; empty disables the panel
	AdminIDs   []int64 // users allowed into the panel; empty allows everyone
}

type SeedConfig struct {
	Source string // default | file | postgres
	File   string // JSON seed path when Source is "file"
}

type AppConfig struct {
	Env         string // development | production
	LogLevel    string
	DefaultLang string
	AutoMigrate bool
}

// UsesDB reports whether the process needs a Postgres connection.
func (c *Config) UsesDB() bool {
	return c.Seed.Source == "postgres"
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("DB_PORT: %w", err)
	}

	adminIDs, err := parseIDs(getEnv("ADMIN_IDS", ""))
	if err != nil {
		return nil, fmt.Errorf("ADMIN_IDS: %w", err)
	}

	cfg := &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "lemurr"),
		},
		Telegram: TelegramConfig{
			Token:      getEnv("TOKEN", ""),
			AdminToken: getEnv("ADMIN_TOKEN", ""),
			AdminIDs:   adminIDs,
		},
		Seed: SeedConfig{
			Source: strings.ToLower(getEnv("SEED_SOURCE", "default")),
			File:   getEnv("SEED_FILE", ""),
		},
		App: AppConfig{
			Env:         getEnv("APP_ENV", "production"),
			LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
			DefaultLang: getEnv("DEFAULT_LANG", "ru"),
			AutoMigrate: getEnv("AUTO_MIGRATE", "") == "1" || strings.EqualFold(getEnv("AUTO_MIGRATE", ""), "true"),
		},
	}

	switch cfg.Seed.Source {
	case "default", "postgres":
	case "file":
		if cfg.Seed.File == "" {
			return nil, fmt.Errorf("SEED_SOURCE=file requires SEED_FILE")
		}
	default:
		return nil, fmt.Errorf("SEED_SOURCE: unknown value %q", cfg.Seed.Source)
	}
	return cfg, nil
}

// parseIDs reads a comma separated list of Telegram user ids.
func parseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
