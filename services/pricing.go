package services

import (
	"github.com/shopspring/decimal"

	"lemurr-coffee/models"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// EffectiveUnitPrice is the item price after its discount, unrounded.
func EffectiveUnitPrice(it models.Item) decimal.Decimal {
	price := decimal.NewFromInt(it.Price)
	if it.Discount == nil {
		return price
	}
	rate := one.Sub(decimal.NewFromInt(int64(*it.Discount)).Div(hundred))
	return price.Mul(rate)
}

// RoundForDisplay rounds half away from zero to a whole amount.
// Amounts are never negative, so this matches the storefront's half-up display rounding.
func RoundForDisplay(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// DisplayPrice is the rounded unit price shown on a menu card.
func DisplayPrice(it models.Item) int64 {
	return RoundForDisplay(EffectiveUnitPrice(it))
}
