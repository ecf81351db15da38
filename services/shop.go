package services

import (
	"sync"

	"lemurr-coffee/models"
)

// Shop is the state container shared by the storefront and the admin panel:
// one catalog, one cart per storefront session and one settings draft per
// admin session. All methods are safe for concurrent use.
type Shop struct {
	mu      sync.RWMutex
	catalog *Catalog
	carts   map[int64]*Cart
	drafts  map[int64]*SettingsDraft
}

// NewShop starts a shop from seed.
func NewShop(seed Seed, opts ...CatalogOption) *Shop {
	return &Shop{
		catalog: NewCatalog(seed, opts...),
		carts:   make(map[int64]*Cart),
		drafts:  make(map[int64]*SettingsDraft),
	}
}

// cart returns the session cart, creating it on first use. Caller holds s.mu.
func (s *Shop) cart(userID int64) *Cart {
	c, ok := s.carts[userID]
	if !ok {
		c = NewCart()
		s.carts[userID] = c
	}
	return c
}

// ---- storefront reads ----

func (s *Shop) Items() []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Items()
}

func (s *Shop) Item(id string) (models.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Item(id)
}

func (s *Shop) ItemsByCategory(cat models.Category) []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.ItemsByCategory(cat)
}

func (s *Shop) NewItems() []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.NewItems()
}

func (s *Shop) DiscountItems() []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.DiscountItems()
}

func (s *Shop) Cities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Cities()
}

// Settings returns the published settings, never a draft.
func (s *Shop) Settings() models.SiteSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Settings()
}

// Snapshot copies the catalog state.
func (s *Shop) Snapshot() Seed {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Snapshot()
}

// ---- cart ----

// AddToCart adds one unit of the catalog item itemID. Unknown ids are ignored.
func (s *Shop) AddToCart(userID int64, itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.catalog.Item(itemID)
	if !ok {
		return false
	}
	s.cart(userID).Add(it)
	return true
}

// RemoveFromCart drops the line for itemID.
func (s *Shop) RemoveFromCart(userID int64, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[userID]; ok {
		c.Remove(itemID)
	}
}

// SetQuantity sets an absolute quantity; qty <= 0 removes the line.
func (s *Shop) SetQuantity(userID int64, itemID string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[userID]; ok {
		c.SetQuantity(itemID, qty)
	}
}

// ChangeQuantity is the +/- control: SetQuantity(current+delta).
func (s *Shop) ChangeQuantity(userID int64, itemID string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[userID]
	if !ok {
		return
	}
	if q := c.Quantity(itemID); q > 0 {
		c.SetQuantity(itemID, q+delta)
	}
}

// Cart resolves the session cart against the current catalog.
func (s *Shop) Cart(userID int64) CartView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[userID]
	if !ok {
		return CartView{}
	}
	return c.View(s.catalog)
}

// CartCount is the cart badge figure: the number of units in the session cart.
func (s *Shop) CartCount(userID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.carts[userID]; ok {
		return c.Count()
	}
	return 0
}

// EndSession discards the session cart.
func (s *Shop) EndSession(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

// ---- admin: catalog ----

func (s *Shop) CreateItem(d models.ItemDraft) (models.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.CreateItem(d)
}

func (s *Shop) UpdateItem(id string, p models.ItemPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.UpdateItem(id, p)
}

func (s *Shop) ToggleNew(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.ToggleNew(id)
}

// DeleteItem removes the item and the cart lines that pointed at it.
func (s *Shop) DeleteItem(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.catalog.DeleteItem(id) {
		return false
	}
	for _, c := range s.carts {
		c.Prune(s.catalog)
	}
	return true
}

func (s *Shop) AddCity(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.AddCity(name)
}

func (s *Shop) DeleteCity(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.DeleteCity(name)
}

// ---- admin: settings draft ----

// draft returns the admin's draft rebased on the published settings, starting
// one if needed. Caller holds s.mu.
func (s *Shop) draft(adminID int64) *SettingsDraft {
	d, ok := s.drafts[adminID]
	if !ok {
		d = NewSettingsDraft(s.catalog.Settings())
		s.drafts[adminID] = d
		return d
	}
	d.Rebase(s.catalog.Settings())
	return d
}

// Draft returns the admin's working copy and the fields it changed.
func (s *Shop) Draft(adminID int64) (models.SiteSettings, []models.SettingsField) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft(adminID)
	return d.Settings(), d.Changed(s.catalog.Settings())
}

// EditDraft sets one field of the admin's draft. The storefront does not see it.
func (s *Shop) EditDraft(adminID int64, f models.SettingsField, v string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft(adminID).Set(f, v)
}

// SaveDraft publishes the fields the admin edited. Fields edited and saved by
// other admins meanwhile are kept. The draft stays open, now equal to published.
func (s *Shop) SaveDraft(adminID int64) models.SiteSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft(adminID).Save(s.catalog)
	return s.catalog.Settings()
}

// DiscardDraft drops the admin's draft; the next Draft call starts from published.
func (s *Shop) DiscardDraft(adminID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, adminID)
}
