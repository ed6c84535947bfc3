package models

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// buildPriceLadder derives the tiers of a raw productPriceList. The first
// entry is the discount base and its own discount fields are always zero.
// Entries must be strictly ascending by ladder quantity; the vendor sends
// them that way and a list that is not is rejected rather than re-sorted.
// A zero base price yields a zero discount percentage on every tier.
func buildPriceLadder(path string, raw []any) ([]PriceTier, error) {
	if len(raw) == 0 {
		return nil, &PriceLadderError{Index: -1, Reason: "no price tiers"}
	}

	tiers := make([]PriceTier, 0, len(raw))
	var base decimal.Decimal
	for i, item := range raw {
		itemPath := indexPath(path, i)
		entry, err := toRecord(itemPath, item)
		if err != nil {
			return nil, err
		}
		quantity, err := entry.intField(itemPath, "ladder")
		if err != nil {
			return nil, err
		}
		price, err := entry.decimalField(itemPath, "usdPrice")
		if err != nil {
			return nil, err
		}

		if quantity < 1 {
			return nil, &PriceLadderError{Index: i, Reason: fmt.Sprintf("quantity %d is below 1", quantity)}
		}
		if price.IsNegative() {
			return nil, &PriceLadderError{Index: i, Reason: fmt.Sprintf("negative price %s", price)}
		}

		tier := PriceTier{quantity: quantity, price: price, discount: decimal.Zero, discountPct: decimal.Zero}
		if i == 0 {
			base = price
		} else {
			prev := tiers[i-1].quantity
			if quantity <= prev {
				return nil, &PriceLadderError{
					Index:  i,
					Reason: fmt.Sprintf("quantity %d does not exceed previous tier %d", quantity, prev),
				}
			}
			tier.discount = base.Sub(price)
			if !base.IsZero() {
				tier.discountPct = price.Sub(base).Abs().Mul(hundred).Div(base)
			}
		}
		tiers = append(tiers, tier)
	}
	return tiers, nil
}

// PriceBreaks returns the tier quantity thresholds in ascending order.
func (p *Product) PriceBreaks() []int {
	breaks := make([]int, len(p.price))
	for i, t := range p.price {
		breaks[i] = t.quantity
	}
	sort.Ints(breaks)
	return breaks
}

// Tier returns the tier with exactly the given threshold.
func (p *Product) Tier(quantity int) (PriceTier, bool) {
	for _, t := range p.price {
		if t.quantity == quantity {
			return t, true
		}
	}
	return PriceTier{}, false
}

// BaseTier returns the tier with the smallest threshold.
func (p *Product) BaseTier() PriceTier {
	return p.price[0]
}

// ResolveTier returns the tier that prices an order of quantity units: the
// one with the largest threshold not above quantity, or the smallest tier when
// quantity is below every threshold. The quantity must be orderable (see
// CheckQuantity).
func (p *Product) ResolveTier(quantity int) (PriceTier, error) {
	if err := p.CheckQuantity(quantity); err != nil {
		return PriceTier{}, err
	}

	breaks := p.PriceBreaks()
	applicable := breaks[0]
	for _, b := range breaks {
		if quantity < b {
			break
		}
		applicable = b
	}
	tier, _ := p.Tier(applicable)
	return tier, nil
}

// CheckQuantity validates an order quantity against the minimum order
// quantity first and the split quantity second.
func (p *Product) CheckQuantity(quantity int) error {
	if quantity < p.minQuantity {
		return &QuantityTooLowError{Quantity: quantity, MinQuantity: p.minQuantity}
	}
	if quantity%p.splitQuantity != 0 {
		return &QuantityNotAMultipleError{Quantity: quantity, SplitQuantity: p.splitQuantity}
	}
	return nil
}

// OrderCost returns the total USD cost of ordering quantity units.
func (p *Product) OrderCost(quantity int) (decimal.Decimal, error) {
	tier, err := p.ResolveTier(quantity)
	if err != nil {
		return decimal.Zero, err
	}
	return tier.price.Mul(decimal.NewFromInt(int64(quantity))), nil
}
