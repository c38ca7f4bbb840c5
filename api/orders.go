package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iamkibet/bitedash-app-sub000/entity"
)

type CreateOrderItemIn struct {
	MenuItemID uint `json:"menu_item_id"`
	Quantity   int  `json:"quantity"`
}

type CreateOrderReq struct {
	RestaurantID    uint                `json:"restaurant_id"`
	Items           []CreateOrderItemIn `json:"items"`
	DeliveryAddress string              `json:"delivery_address,omitempty"`
	Notes           string              `json:"notes,omitempty"`
}

// UpdateOrderReq carries the two mutations the backend accepts on PUT:
// a status move, a rider assignment, or both.
type UpdateOrderReq struct {
	Status  *entity.OrderStatus `json:"status,omitempty"`
	RiderID *uint               `json:"rider_id,omitempty"`
}

// OrderPage is the backend's pagination envelope for order listings.
type OrderPage struct {
	Data        []entity.Order `json:"data"`
	CurrentPage int            `json:"current_page"`
	LastPage    int            `json:"last_page"`
	Total       int64          `json:"total"`
}

func (c *Client) CreateOrder(ctx context.Context, req *CreateOrderReq) (*entity.Order, error) {
	var o entity.Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) UpdateOrder(ctx context.Context, orderID uint, req *UpdateOrderReq) (*entity.Order, error) {
	var o entity.Order
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d", orderID), req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) CancelOrder(ctx context.Context, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/%d/cancel", orderID), nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// AcceptOrder claims an available order for the calling rider.
func (c *Client) AcceptOrder(ctx context.Context, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/%d/accept", orderID), nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) ListMyOrders(ctx context.Context, page int) (*OrderPage, error) {
	return c.listOrders(ctx, "/orders", page)
}

func (c *Client) ListAvailableOrders(ctx context.Context, page int) (*OrderPage, error) {
	return c.listOrders(ctx, "/orders/available", page)
}

func (c *Client) ListRiderOrders(ctx context.Context, page int) (*OrderPage, error) {
	return c.listOrders(ctx, "/orders/my-rider", page)
}

func (c *Client) ListStoreOrders(ctx context.Context, storeID uint, page int) (*OrderPage, error) {
	return c.listOrders(ctx, fmt.Sprintf("/stores/%d/orders", storeID), page)
}

func (c *Client) listOrders(ctx context.Context, path string, page int) (*OrderPage, error) {
	if page <= 0 {
		page = 1
	}
	var out OrderPage
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s?page=%d", path, page), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
