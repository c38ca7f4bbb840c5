package services

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/iamkibet/bitedash-app-sub000/api"
	"github.com/iamkibet/bitedash-app-sub000/entity"
	"github.com/iamkibet/bitedash-app-sub000/repository"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
	ErrBusy      = errors.New("request already in flight")
)

// OrderService turns a valid cart into a placed order. The server creates
// the order or nothing happens: on any error the cart is left untouched for
// retry, on success the cart is cleared here at the flow boundary, never
// inside the aggregate.
type OrderService struct {
	API       *api.Client
	Cart      *CartService
	Locations *repository.LocationRepository

	placing atomic.Bool
}

func NewOrderService(client *api.Client, cart *CartService, locations *repository.LocationRepository) *OrderService {
	return &OrderService{API: client, Cart: cart, Locations: locations}
}

type PlaceOrderIn struct {
	DeliveryAddress string
	Notes           string
}

func (s *OrderService) PlaceOrder(ctx context.Context, in *PlaceOrderIn) (*entity.Order, error) {
	cart := s.Cart.Cart()
	if cart.Empty() || cart.RestaurantID == 0 {
		return nil, ErrEmptyCart
	}
	// Second tap while the first request is outstanding is a no-op.
	if !s.placing.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.placing.Store(false)

	addr := in.DeliveryAddress
	if addr == "" && s.Locations != nil {
		if loc, err := s.Locations.Load(); err == nil && loc != nil {
			addr = loc.Address
		}
	}

	req := &api.CreateOrderReq{
		RestaurantID:    cart.RestaurantID,
		DeliveryAddress: addr,
		Notes:           in.Notes,
	}
	for _, it := range cart.Items {
		req.Items = append(req.Items, api.CreateOrderItemIn{
			MenuItemID: it.MenuItem.ID,
			Quantity:   it.Quantity,
		})
	}

	o, err := s.API.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	s.Cart.Clear()
	if in.DeliveryAddress != "" && s.Locations != nil {
		_ = s.Locations.Save(&entity.DeliveryLocation{Address: in.DeliveryAddress})
	}
	return o, nil
}

// OrderTracker holds the last confirmed snapshot of one order. Mutations go
// through apply: the snapshot is replaced wholesale on a confirmed response
// and untouched on failure. There is no merging.
type OrderTracker struct {
	API *api.Client

	busy    atomic.Bool
	current *entity.Order
}

func NewOrderTracker(client *api.Client, o *entity.Order) *OrderTracker {
	return &OrderTracker{API: client, current: o}
}

func (t *OrderTracker) Current() *entity.Order { return t.current }

// Refresh overwrites the snapshot with the server's latest.
func (t *OrderTracker) Refresh(ctx context.Context) error {
	return t.apply(ctx, func(ctx context.Context) (*entity.Order, error) {
		return t.API.GetOrder(ctx, t.current.ID)
	})
}

func (t *OrderTracker) apply(ctx context.Context, fn func(context.Context) (*entity.Order, error)) error {
	if !t.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer t.busy.Store(false)

	o, err := fn(ctx)
	if err != nil {
		return err
	}
	t.current = o
	return nil
}
