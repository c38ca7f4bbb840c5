package entity

// DeliveryLocation is the last place the user chose to deliver to, kept
// locally and prefilled into the next placement request.
type DeliveryLocation struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}
