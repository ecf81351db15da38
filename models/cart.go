package models

// CartLine references a catalog item by id. Quantity is always >= 1.
type CartLine struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// ResolvedLine is a cart line joined with the current catalog definition of its item.
type ResolvedLine struct {
	Item     Item
	Quantity int
}
