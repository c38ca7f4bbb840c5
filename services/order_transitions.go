// services/order_transitions.go
package services

import (
	"context"
	"errors"

	"github.com/iamkibet/bitedash-app-sub000/api"
	"github.com/iamkibet/bitedash-app-sub000/entity"
)

var (
	ErrNotPermitted  = errors.New("transition not permitted for this role")
	ErrOrderFinal    = errors.New("order is in a final state")
	ErrAlreadyPaid   = errors.New("paid orders cannot be cancelled")
	ErrNotYourOrder  = errors.New("order is assigned to another rider")
	ErrRiderAssigned = errors.New("order already has a rider")
	ErrNotDispatched = errors.New("order is not out for delivery")
)

// canTransition is the client-side gate over the status axis. It is
// necessary, not sufficient: the server stays authoritative and may reject
// for reasons invisible here, in which case the caller surfaces the server
// message verbatim and keeps the old snapshot.
func canTransition(role entity.Role, o *entity.Order, to entity.OrderStatus) error {
	if o.Status.Terminal() {
		return ErrOrderFinal
	}
	if !o.Status.CanBecome(to) {
		return ErrNotPermitted
	}

	switch role {
	case entity.RoleRestaurant:
		if o.Status == entity.StatusPending && to == entity.StatusPreparing {
			return nil
		}
		if o.Status == entity.StatusPreparing && to == entity.StatusOnTheWay {
			return nil
		}
	case entity.RoleCustomer:
		if to == entity.StatusCancelled && o.Status == entity.StatusPending {
			if o.PaymentStatus.Settled() {
				return ErrAlreadyPaid
			}
			return nil
		}
	case entity.RoleRider:
		if o.Status == entity.StatusOnTheWay && to == entity.StatusDelivered {
			return nil
		}
	}
	return ErrNotPermitted
}

// ----- Restaurant actions -----

// StoreAccept moves pending → preparing.
func (t *OrderTracker) StoreAccept(ctx context.Context) error {
	if err := canTransition(entity.RoleRestaurant, t.current, entity.StatusPreparing); err != nil {
		return err
	}
	to := entity.StatusPreparing
	return t.apply(ctx, func(ctx context.Context) (*entity.Order, error) {
		return t.API.UpdateOrder(ctx, t.current.ID, &api.UpdateOrderReq{Status: &to})
	})
}

// StoreDispatch moves preparing → on_the_way.
func (t *OrderTracker) StoreDispatch(ctx context.Context) error {
	if err := canTransition(entity.RoleRestaurant, t.current, entity.StatusOnTheWay); err != nil {
		return err
	}
	to := entity.StatusOnTheWay
	return t.apply(ctx, func(ctx context.Context) (*entity.Order, error) {
		return t.API.UpdateOrder(ctx, t.current.ID, &api.UpdateOrderReq{Status: &to})
	})
}

// AssignRider sets rider_id while the kitchen is still preparing. It is a
// side-channel mutation: the status does not move.
func (t *OrderTracker) AssignRider(ctx context.Context, riderID uint) error {
	if t.current.Status != entity.StatusPreparing {
		return ErrNotPermitted
	}
	if t.current.RiderID != nil {
		return ErrRiderAssigned
	}
	return t.apply(ctx, func(ctx context.Context) (*entity.Order, error) {
		return t.API.UpdateOrder(ctx, t.current.ID, &api.UpdateOrderReq{RiderID: &riderID})
	})
}

// ----- Customer actions -----

// CustomerCancel is the only backward escape, and only from pending on an
// unpaid order.
func (t *OrderTracker) CustomerCancel(ctx context.Context) error {
	if err := canTransition(entity.RoleCustomer, t.current, entity.StatusCancelled); err != nil {
		return err
	}
	return t.apply(ctx, func(ctx context.Context) (*entity.Order, error) {
		return t.API.CancelOrder(ctx, t.current.ID)
	})
}

// ----- Rider actions -----

// RiderClaim takes an unassigned order from the available pool.
func (t *OrderTracker) RiderClaim(ctx context.Context) error {
	if t.current.Status.Terminal() {
		return ErrOrderFinal
	}
	if t.current.RiderID != nil {
		return ErrRiderAssigned
	}
	return t.apply(ctx, func(ctx context.Context) (*entity.Order, error) {
		return t.API.AcceptOrder(ctx, t.current.ID)
	})
}

// RiderDeliver moves on_the_way → delivered; only the assigned rider may.
func (t *OrderTracker) RiderDeliver(ctx context.Context, riderID uint) error {
	if !t.current.AssignedTo(riderID) {
		return ErrNotYourOrder
	}
	if err := canTransition(entity.RoleRider, t.current, entity.StatusDelivered); err != nil {
		if errors.Is(err, ErrNotPermitted) && !t.current.Status.Terminal() {
			return ErrNotDispatched
		}
		return err
	}
	to := entity.StatusDelivered
	return t.apply(ctx, func(ctx context.Context) (*entity.Order, error) {
		return t.API.UpdateOrder(ctx, t.current.ID, &api.UpdateOrderReq{Status: &to})
	})
}

// ----- Action listing for the views -----

type Action string

const (
	ActionAccept      Action = "accept"
	ActionDispatch    Action = "dispatch"
	ActionAssignRider Action = "assign_rider"
	ActionCancel      Action = "cancel"
	ActionClaim       Action = "claim"
	ActionDeliver     Action = "deliver"
)

// PermittedActions lists what a view may offer on o for the given actor.
// riderID only matters for RoleRider.
func PermittedActions(role entity.Role, o *entity.Order, riderID uint) []Action {
	var out []Action
	switch role {
	case entity.RoleCustomer:
		if canTransition(role, o, entity.StatusCancelled) == nil {
			out = append(out, ActionCancel)
		}
	case entity.RoleRestaurant:
		if canTransition(role, o, entity.StatusPreparing) == nil {
			out = append(out, ActionAccept)
		}
		if canTransition(role, o, entity.StatusOnTheWay) == nil {
			out = append(out, ActionDispatch)
			if o.RiderID == nil {
				out = append(out, ActionAssignRider)
			}
		}
	case entity.RoleRider:
		if o.RiderID == nil && !o.Status.Terminal() {
			out = append(out, ActionClaim)
		}
		if o.AssignedTo(riderID) && canTransition(role, o, entity.StatusDelivered) == nil {
			out = append(out, ActionDeliver)
		}
	}
	return out
}
