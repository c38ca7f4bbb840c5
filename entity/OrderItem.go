package entity

import "github.com/shopspring/decimal"

// OrderItem is a price snapshot taken at order time. Later menu price
// changes never touch a placed order.
type OrderItem struct {
	MenuItemID uint            `json:"menu_item_id"`
	Name       string          `json:"name,omitempty"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
