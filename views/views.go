// Package views holds the role-scoped read projections over orders. Each
// view fetches the listing its role is allowed to see and attaches only the
// actions the transition table permits, so no screen ever renders a control
// the actor cannot use.
package views

import (
	"context"

	"github.com/iamkibet/bitedash-app-sub000/api"
	"github.com/iamkibet/bitedash-app-sub000/entity"
	"github.com/iamkibet/bitedash-app-sub000/services"
)

// OrderRow is one order plus the actions the viewing actor may take on it
// right now.
type OrderRow struct {
	Order   entity.Order
	Actions []services.Action
}

type OrderListing struct {
	Rows        []OrderRow
	CurrentPage int
	LastPage    int
	Total       int64
}

func (l *OrderListing) HasMore() bool { return l.CurrentPage < l.LastPage }

func project(page *api.OrderPage, role entity.Role, riderID uint) *OrderListing {
	out := &OrderListing{
		CurrentPage: page.CurrentPage,
		LastPage:    page.LastPage,
		Total:       page.Total,
	}
	for _, o := range page.Data {
		o := o
		out.Rows = append(out.Rows, OrderRow{
			Order:   o,
			Actions: services.PermittedActions(role, &o, riderID),
		})
	}
	return out
}

// CustomerView: own orders; cancel offered only while pending and unpaid.
type CustomerView struct {
	API *api.Client
}

func NewCustomerView(client *api.Client) *CustomerView { return &CustomerView{API: client} }

func (v *CustomerView) Orders(ctx context.Context, page int) (*OrderListing, error) {
	p, err := v.API.ListMyOrders(ctx, page)
	if err != nil {
		return nil, err
	}
	return project(p, entity.RoleCustomer, 0), nil
}

// StoreView: the restaurant's orders; accept, dispatch, assign rider.
type StoreView struct {
	API     *api.Client
	StoreID uint
}

func NewStoreView(client *api.Client, storeID uint) *StoreView {
	return &StoreView{API: client, StoreID: storeID}
}

func (v *StoreView) Orders(ctx context.Context, page int) (*OrderListing, error) {
	p, err := v.API.ListStoreOrders(ctx, v.StoreID, page)
	if err != nil {
		return nil, err
	}
	return project(p, entity.RoleRestaurant, 0), nil
}

// RiderView: the unassigned pool to claim from, and own deliveries.
type RiderView struct {
	API     *api.Client
	RiderID uint
}

func NewRiderView(client *api.Client, riderID uint) *RiderView {
	return &RiderView{API: client, RiderID: riderID}
}

func (v *RiderView) Available(ctx context.Context, page int) (*OrderListing, error) {
	p, err := v.API.ListAvailableOrders(ctx, page)
	if err != nil {
		return nil, err
	}
	return project(p, entity.RoleRider, v.RiderID), nil
}

func (v *RiderView) Deliveries(ctx context.Context, page int) (*OrderListing, error) {
	p, err := v.API.ListRiderOrders(ctx, page)
	if err != nil {
		return nil, err
	}
	return project(p, entity.RoleRider, v.RiderID), nil
}
