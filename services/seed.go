package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"lemurr-coffee/db"
	"lemurr-coffee/models"
)

// Seed is the initial state of a shop. Catalog.Snapshot returns the same shape.
type Seed struct {
	Items    []models.Item       `json:"items"`
	Cities   []string            `json:"cities"`
	Settings models.SiteSettings `json:"settings"`
}

// Seed sources accepted by LoadSeed.
const (
	SeedSourceDefault  = "default"
	SeedSourceFile     = "file"
	SeedSourcePostgres = "postgres"
)

// DefaultSettings is the copy a fresh storefront starts with.
func DefaultSettings() models.SiteSettings {
	return models.SiteSettings{
		Title:        "Lemurr Coffee",
		Description:  "Лучший кофе в городе с заботой о каждом госте",
		HeroTitle:    "Добро пожаловать в Lemurr Coffee",
		HeroSubtitle: "Уютная атмосфера, ароматный кофе и дружелюбные лемуры ждут вас в наших кофейнях",
		Phone:        "+7 (495) 123-45-67",
		Email:        "hello@lemurr-coffee.ru",
		Address:      "Москва, ул. Кофейная, 1",
	}
}

// DefaultSeed returns the built-in menu, cities and settings.
func DefaultSeed() Seed {
	return Seed{
		Items: []models.Item{
			{ID: "1", Name: "Классический эспрессо", Description: "Насыщенный итальянский эспрессо", Price: 180, Category: models.CategoryCoffee},
			{ID: "2", Name: "Капучино лемур", Description: "Нежный капучино с авторским рисунком", Price: 280, Category: models.CategoryCoffee, IsNew: true},
			{ID: "3", Name: "Зеленый чай с жасмином", Description: "Ароматный зеленый чай премиум класса", Price: 220, Category: models.CategoryTea},
			{ID: "4", Name: "Фраппе с малиной", Description: "Освежающий холодный напиток", Price: 320, Category: models.CategoryCold, Discount: models.Int(15)},
			{ID: "5", Name: "Чизкейк с ягодами", Description: "Нежный десерт от шеф-кондитера", Price: 380, Category: models.CategoryDessert, IsNew: true},
		},
		Cities:   []string{"Москва", "Санкт-Петербург", "Новосибирск", "Екатеринбург"},
		Settings: DefaultSettings(),
	}
}

// Validate checks the invariants a catalog relies on.
func (s Seed) Validate() error {
	seen := make(map[string]struct{}, len(s.Items))
	for i, it := range s.Items {
		switch {
		case it.ID == "":
			return fmt.Errorf("item %d: empty id", i)
		case strings.TrimSpace(it.Name) == "":
			return fmt.Errorf("item %q: empty name", it.ID)
		case it.Price < 0:
			return fmt.Errorf("item %q: negative price %d", it.ID, it.Price)
		case !it.Category.Valid():
			return fmt.Errorf("item %q: unknown category %q", it.ID, it.Category)
		case it.Discount != nil && (*it.Discount < 0 || *it.Discount > 100):
			return fmt.Errorf("item %q: discount %d out of range", it.ID, *it.Discount)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("item %q: duplicate id", it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}

// JSON encodes the seed in the format LoadSeedFile reads.
func (s Seed) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// withDefaults fills blank settings fields from DefaultSettings.
func (s Seed) withDefaults() Seed {
	def := DefaultSettings()
	for _, f := range models.SettingsFields {
		if strings.TrimSpace(s.Settings.Get(f)) == "" {
			s.Settings = s.Settings.With(f, def.Get(f))
		}
	}
	return s
}

// LoadSeed picks the seed source named by source.
func LoadSeed(ctx context.Context, source, path string) (Seed, error) {
	switch source {
	case "", SeedSourceDefault:
		return DefaultSeed(), nil
	case SeedSourceFile:
		return LoadSeedFile(path)
	case SeedSourcePostgres:
		return LoadSeedDB(ctx)
	default:
		return Seed{}, fmt.Errorf("unknown seed source %q", source)
	}
}

// LoadSeedFile reads a JSON seed.
func LoadSeedFile(path string) (Seed, error) {
	if path == "" {
		return Seed{}, errors.New("seed file path is empty")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed file: %w", err)
	}
	var s Seed
	if err := json.Unmarshal(raw, &s); err != nil {
		return Seed{}, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Seed{}, fmt.Errorf("seed file %s: %w", path, err)
	}
	return s.withDefaults(), nil
}

// LoadSeedDB reads the seed tables created by the migrations. Read-only:
// edits made in the admin panel are never written back.
func LoadSeedDB(ctx context.Context) (Seed, error) {
	if db.Pool == nil {
		return Seed{}, errors.New("seed from postgres: db pool not initialised")
	}
	var s Seed

	rows, err := db.Pool.Query(ctx, `
		SELECT id, name, description, price, category, is_new, discount
		FROM menu_items
		ORDER BY position, id`,
	)
	if err != nil {
		return Seed{}, fmt.Errorf("query menu_items: %w", err)
	}
	for rows.Next() {
		var (
			it       models.Item
			category string
			discount *int32
		)
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &category, &it.IsNew, &discount); err != nil {
			rows.Close()
			return Seed{}, fmt.Errorf("scan menu_items: %w", err)
		}
		it.Category = models.Category(category)
		if discount != nil {
			it.Discount = models.Int(int(*discount))
		}
		s.Items = append(s.Items, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Seed{}, fmt.Errorf("read menu_items: %w", err)
	}

	cityRows, err := db.Pool.Query(ctx, `SELECT name FROM cities ORDER BY position`)
	if err != nil {
		return Seed{}, fmt.Errorf("query cities: %w", err)
	}
	for cityRows.Next() {
		var name string
		if err := cityRows.Scan(&name); err != nil {
			cityRows.Close()
			return Seed{}, fmt.Errorf("scan cities: %w", err)
		}
		s.Cities = append(s.Cities, name)
	}
	cityRows.Close()
	if err := cityRows.Err(); err != nil {
		return Seed{}, fmt.Errorf("read cities: %w", err)
	}

	setRows, err := db.Pool.Query(ctx, `SELECT key, value FROM site_settings`)
	if err != nil {
		return Seed{}, fmt.Errorf("query site_settings: %w", err)
	}
	for setRows.Next() {
		var key, value string
		if err := setRows.Scan(&key, &value); err != nil {
			setRows.Close()
			return Seed{}, fmt.Errorf("scan site_settings: %w", err)
		}
		s.Settings = s.Settings.With(models.SettingsField(key), value)
	}
	setRows.Close()
	if err := setRows.Err(); err != nil {
		return Seed{}, fmt.Errorf("read site_settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Seed{}, fmt.Errorf("seed from postgres: %w", err)
	}
	return s.withDefaults(), nil
}
