package entity

// Cart is the client-local, single-restaurant collection of pending lines.
// RestaurantID == 0 means the cart is empty and not locked to any store.
type Cart struct {
	RestaurantID uint       `json:"restaurant_id"`
	Items        []CartItem `json:"items"`
}

func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

// Find returns the line for menuItemID, or nil.
func (c *Cart) Find(menuItemID uint) *CartItem {
	for i := range c.Items {
		if c.Items[i].MenuItem.ID == menuItemID {
			return &c.Items[i]
		}
	}
	return nil
}
