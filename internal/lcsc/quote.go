package lcsc

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/lukman83/lcsc-scrap/internal/models"
)

// Quote is the cost of ordering Quantity units of one product.
type Quote struct {
	Product   *models.Product
	Quantity  int
	Tier      models.PriceTier
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// NewQuote prices quantity units of p. It fails with the same quantity
// errors as Product.OrderCost.
func NewQuote(p *models.Product, quantity int) (Quote, error) {
	tier, err := p.ResolveTier(quantity)
	if err != nil {
		return Quote{}, err
	}
	total, err := p.OrderCost(quantity)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Product:   p,
		Quantity:  quantity,
		Tier:      tier,
		UnitPrice: tier.Price(),
		Total:     total,
	}, nil
}

func (q Quote) AsDict() map[string]any {
	return map[string]any{
		"product_code":   q.Product.Code(),
		"quantity":       q.Quantity,
		"tier_quantity":  q.Tier.Quantity(),
		"unit_price":     q.UnitPrice.String(),
		"total":          q.Total.String(),
		"min_quantity":   q.Product.MinQuantity(),
		"split_quantity": q.Product.SplitQuantity(),
		"price_breaks":   q.Product.PriceBreaks(),
	}
}

func (q Quote) MarshalJSON() ([]byte, error) { return json.Marshal(q.AsDict()) }

// QuoteOrder fetches partNumber and prices quantity units of it.
func (c *Client) QuoteOrder(ctx context.Context, partNumber string, quantity int) (Quote, error) {
	p, err := c.FetchProduct(ctx, partNumber)
	if err != nil {
		return Quote{}, err
	}
	q, err := NewQuote(p, quantity)
	if err != nil {
		return Quote{}, errors.Wrapf(err, "quote %s", p.Code())
	}
	return q, nil
}
