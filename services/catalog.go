package services

import (
	"strconv"
	"strings"

	"lemurr-coffee/models"
)

// Catalog owns the menu items, the city list and the published site settings.
//
// Every mutation follows the same policy: input that is missing, invalid or
// refers to an unknown id is ignored rather than reported. Callers re-read
// state after each call. A Catalog is not safe for concurrent use; Shop
// serialises access when several goroutines share one.
type Catalog struct {
	items    []models.Item
	cities   []string
	settings models.SiteSettings

	newID IDGenerator
	used  map[string]struct{} // every id ever handed out, deleted ones included
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(g IDGenerator) CatalogOption {
	return func(c *Catalog) {
		if g != nil {
			c.newID = g
		}
	}
}

// NewCatalog builds a catalog holding a copy of seed.
func NewCatalog(seed Seed, opts ...CatalogOption) *Catalog {
	c := &Catalog{
		items:    make([]models.Item, 0, len(seed.Items)),
		cities:   append([]string(nil), seed.Cities...),
		settings: seed.Settings,
		newID:    NewUUID,
		used:     make(map[string]struct{}, len(seed.Items)),
	}
	for _, it := range seed.Items {
		c.items = append(c.items, it.Clone())
		c.used[it.ID] = struct{}{}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// maxIDAttempts bounds how often nextID asks the generator before giving up on it.
const maxIDAttempts = 64

func (c *Catalog) nextID() string {
	for i := 0; i < maxIDAttempts; i++ {
		if id := c.newID(); c.claim(id) {
			return id
		}
	}
	if id := NewUUID(); c.claim(id) {
		return id
	}
	// At most len(c.used)+1 candidates before one is free.
	for n := len(c.used) + 1; ; n++ {
		if id := "item-" + strconv.Itoa(n); c.claim(id) {
			return id
		}
	}
}

func (c *Catalog) claim(id string) bool {
	if _, taken := c.used[id]; id == "" || taken {
		return false
	}
	c.used[id] = struct{}{}
	return true
}

func (c *Catalog) indexOf(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// CreateItem appends a new item built from d and returns it.
// A blank name or a missing/negative price leaves the catalog unchanged and
// returns false. An empty category defaults to coffee; an unknown one is rejected.
func (c *Catalog) CreateItem(d models.ItemDraft) (models.Item, bool) {
	name := strings.TrimSpace(d.Name)
	if name == "" || d.Price == nil || *d.Price < 0 {
		return models.Item{}, false
	}
	cat := d.Category
	if cat == "" {
		cat = models.CategoryCoffee
	}
	if !cat.Valid() {
		return models.Item{}, false
	}

	it := models.Item{
		ID:          c.nextID(),
		Name:        name,
		Description: d.Description,
		Price:       *d.Price,
		Category:    cat,
		IsNew:       d.IsNew,
	}
	if d.Discount != nil {
		it.Discount = models.Int(clampPercent(*d.Discount))
	}
	c.items = append(c.items, it)
	return it.Clone(), true
}

// UpdateItem merges the provided fields of p onto the item with the given id.
// Fields that would break an item invariant (blank name, negative price,
// unknown category) are skipped; the rest still apply. Returns false for an
// unknown id.
func (c *Catalog) UpdateItem(id string, p models.ItemPatch) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	it := &c.items[i]
	if p.Name != nil {
		if name := strings.TrimSpace(*p.Name); name != "" {
			it.Name = name
		}
	}
	if p.Description != nil {
		it.Description = *p.Description
	}
	if p.Price != nil && *p.Price >= 0 {
		it.Price = *p.Price
	}
	if p.Category != nil && p.Category.Valid() {
		it.Category = *p.Category
	}
	if p.IsNew != nil {
		it.IsNew = *p.IsNew
	}
	switch {
	case p.ClearDiscount:
		it.Discount = nil
	case p.Discount != nil:
		it.Discount = models.Int(clampPercent(*p.Discount))
	}
	return true
}

// ToggleNew flips the "new" badge of an item.
func (c *Catalog) ToggleNew(id string) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.items[i].IsNew = !c.items[i].IsNew
	return true
}

// DeleteItem removes the item with the given id, if any.
func (c *Catalog) DeleteItem(id string) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

// Item returns a copy of the item with the given id.
func (c *Catalog) Item(id string) (models.Item, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return models.Item{}, false
	}
	return c.items[i].Clone(), true
}

// Items returns all items in insertion order.
func (c *Catalog) Items() []models.Item {
	return c.filter(func(models.Item) bool { return true })
}

// NewItems returns the items flagged as new.
func (c *Catalog) NewItems() []models.Item {
	return c.filter(func(it models.Item) bool { return it.IsNew })
}

// DiscountItems returns every item that carries a discount, 0% included.
func (c *Catalog) DiscountItems() []models.Item {
	return c.filter(models.Item.HasDiscount)
}

// ItemsByCategory returns the items of one menu section.
func (c *Catalog) ItemsByCategory(cat models.Category) []models.Item {
	return c.filter(func(it models.Item) bool { return it.Category == cat })
}

func (c *Catalog) filter(keep func(models.Item) bool) []models.Item {
	out := make([]models.Item, 0, len(c.items))
	for _, it := range c.items {
		if keep(it) {
			out = append(out, it.Clone())
		}
	}
	return out
}

// AddCity appends the trimmed name. Blank input is ignored; duplicates are kept.
func (c *Catalog) AddCity(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	c.cities = append(c.cities, name)
	return true
}

// DeleteCity removes every entry equal to name and returns how many were removed.
func (c *Catalog) DeleteCity(name string) int {
	kept := c.cities[:0]
	for _, city := range c.cities {
		if city != name {
			kept = append(kept, city)
		}
	}
	removed := len(c.cities) - len(kept)
	c.cities = kept
	return removed
}

// Cities returns the city list in insertion order.
func (c *Catalog) Cities() []string {
	return append([]string(nil), c.cities...)
}

// Settings returns the published site settings.
func (c *Catalog) Settings() models.SiteSettings {
	return c.settings
}

// SaveSettings replaces the published settings with s in one step.
func (c *Catalog) SaveSettings(s models.SiteSettings) {
	c.settings = s
}

// Snapshot copies the whole catalog state. The result can seed a new Catalog.
func (c *Catalog) Snapshot() Seed {
	return Seed{
		Items:    c.Items(),
		Cities:   c.Cities(),
		Settings: c.settings,
	}
}
