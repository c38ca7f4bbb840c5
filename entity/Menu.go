package entity

import "github.com/shopspring/decimal"

type MenuItem struct {
	ID           uint            `json:"id"`
	RestaurantID uint            `json:"restaurant_id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	IsAvailable  bool            `json:"is_available"`
}
