package entity

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusOnTheWay  OrderStatus = "on_the_way"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// statusFlow is the only forward movement the client will ever request.
// Cancellation is reachable from pending alone.
var statusFlow = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusOnTheWay},
	StatusOnTheWay:  {StatusDelivered},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusOnTheWay, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status transition exists.
func (s OrderStatus) Terminal() bool {
	return len(statusFlow[s]) == 0
}

func (s OrderStatus) CanBecome(next OrderStatus) bool {
	for _, t := range statusFlow[s] {
		if t == next {
			return true
		}
	}
	return false
}
