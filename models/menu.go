package models

import "strings"

// Category is a menu section.
type Category string

const (
	CategoryCoffee  Category = "coffee"
	CategoryTea     Category = "tea"
	CategoryCold    Category = "cold"
	CategoryDessert Category = "dessert"
)

// Categories lists the menu sections in display order.
var Categories = []Category{CategoryCoffee, CategoryTea, CategoryCold, CategoryDessert}

// Valid reports whether c is one of the known menu sections.
func (c Category) Valid() bool {
	switch c {
	case CategoryCoffee, CategoryTea, CategoryCold, CategoryDessert:
		return true
	}
	return false
}

// ParseCategory normalises user input ("Tea", " cold ") to a Category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

// Item is one catalog entry. Discount is a percent in [0,100]; nil means no discount.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Category    Category `json:"category"`
	IsNew       bool     `json:"isNew"`
	Discount    *int     `json:"discount,omitempty"`
}

// HasDiscount reports presence, not positivity: a 0% discount still counts.
func (it Item) HasDiscount() bool {
	return it.Discount != nil
}

// Clone returns a copy that shares no pointers with it.
func (it Item) Clone() Item {
	if it.Discount != nil {
		d := *it.Discount
		it.Discount = &d
	}
	return it
}

// ItemDraft is the input of a create. Price is nil when the field was not filled in.
type ItemDraft struct {
	Name        string
	Description string
	Price       *int64
	Category    Category
	IsNew       bool
	Discount    *int
}

// ItemPatch is a partial update; nil fields are left alone.
// ClearDiscount removes the discount and wins over Discount.
type ItemPatch struct {
	Name          *string
	Description   *string
	Price         *int64
	Category      *Category
	IsNew         *bool
	Discount      *int
	ClearDiscount bool
}

// Int returns a pointer to v. Handy for drafts, patches and seeds.
func Int(v int) *int { return &v }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }
