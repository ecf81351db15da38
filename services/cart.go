package services

import (
	"github.com/shopspring/decimal"

	"lemurr-coffee/models"
)

// ItemLookup resolves an item id against the current catalog.
type ItemLookup interface {
	Item(id string) (models.Item, bool)
}

// Cart tracks quantities per item id. Prices are never copied into the cart:
// they are resolved from the catalog whenever lines or totals are read, so a
// price edit shows up in carts that already hold the item.
//
// Unknown ids are ignored by every operation. A Cart is not safe for concurrent use.
type Cart struct {
	lines []models.CartLine
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) indexOf(id string) int {
	for i := range c.lines {
		if c.lines[i].ItemID == id {
			return i
		}
	}
	return -1
}

// Add puts one more unit of item into the cart. The first add appends a line.
func (c *Cart) Add(item models.Item) {
	if item.ID == "" {
		return
	}
	if i := c.indexOf(item.ID); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	c.lines = append(c.lines, models.CartLine{ItemID: item.ID, Quantity: 1})
}

// Remove drops the line for id.
func (c *Cart) Remove(id string) {
	if i := c.indexOf(id); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// SetQuantity overwrites the quantity of the line for id.
// qty <= 0 removes the line instead of storing it.
func (c *Cart) SetQuantity(id string, qty int) {
	if qty <= 0 {
		c.Remove(id)
		return
	}
	if i := c.indexOf(id); i >= 0 {
		c.lines[i].Quantity = qty
	}
}

// Quantity returns the quantity held for id, 0 when absent.
func (c *Cart) Quantity(id string) int {
	if i := c.indexOf(id); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

// Lines returns a copy of the raw lines in first-add order.
func (c *Cart) Lines() []models.CartLine {
	return append([]models.CartLine(nil), c.lines...)
}

// Count is the total number of units, the figure on the cart badge.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Prune drops lines whose item no longer exists in the catalog.
func (c *Cart) Prune(items ItemLookup) {
	kept := c.lines[:0]
	for _, l := range c.lines {
		if _, ok := items.Item(l.ItemID); ok {
			kept = append(kept, l)
		}
	}
	c.lines = kept
}

// Resolve joins each line with the current item definition.
// Lines whose item was deleted are skipped.
func (c *Cart) Resolve(items ItemLookup) []models.ResolvedLine {
	out := make([]models.ResolvedLine, 0, len(c.lines))
	for _, l := range c.lines {
		it, ok := items.Item(l.ItemID)
		if !ok {
			continue
		}
		out = append(out, models.ResolvedLine{Item: it, Quantity: l.Quantity})
	}
	return out
}

// TotalPrice sums effective unit price times quantity over all lines.
// Nothing is rounded here: rounding per line and then summing gives different
// figures than rounding the grand total once, and only the latter is displayed.
func (c *Cart) TotalPrice(items ItemLookup) decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Resolve(items) {
		total = total.Add(LineTotal(l))
	}
	return total
}

// DisplayTotal is TotalPrice rounded once, as shown to the customer.
func (c *Cart) DisplayTotal(items ItemLookup) int64 {
	return RoundForDisplay(c.TotalPrice(items))
}

// LineTotal is the unrounded subtotal of one resolved line.
func LineTotal(l models.ResolvedLine) decimal.Decimal {
	return EffectiveUnitPrice(l.Item).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartView is a read-only picture of a cart taken under the shop lock.
type CartView struct {
	Lines        []models.ResolvedLine
	Count        int
	Total        decimal.Decimal
	DisplayTotal int64
}

// Empty reports whether the view has no lines.
func (v CartView) Empty() bool {
	return len(v.Lines) == 0
}

// View resolves the cart into a CartView. Count covers resolved lines only.
func (c *Cart) View(items ItemLookup) CartView {
	lines := c.Resolve(items)
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return CartView{
		Lines:        lines,
		Count:        count,
		Total:        c.TotalPrice(items),
		DisplayTotal: c.DisplayTotal(items),
	}
}
