package entity

// CartItem keeps the full menu-item snapshot so the cart can render and
// price itself offline.
type CartItem struct {
	MenuItem MenuItem `json:"menu_item"`
	Quantity int      `json:"quantity"`
}
