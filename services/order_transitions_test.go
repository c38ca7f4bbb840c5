package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamkibet/bitedash-app-sub000/api"
	"github.com/iamkibet/bitedash-app-sub000/entity"
	"github.com/iamkibet/bitedash-app-sub000/fakeapi"
)

func order(status entity.OrderStatus, pay entity.PaymentStatus) *entity.Order {
	return &entity.Order{ID: 1, UserID: 5, RestaurantID: 10, Status: status, PaymentStatus: pay}
}

func TestStatusNeverMovesBackward(t *testing.T) {
	backward := map[entity.OrderStatus]entity.OrderStatus{
		entity.StatusPreparing: entity.StatusPending,
		entity.StatusOnTheWay:  entity.StatusPreparing,
		entity.StatusDelivered: entity.StatusOnTheWay,
	}
	for from, to := range backward {
		for _, role := range []entity.Role{entity.RoleCustomer, entity.RoleRestaurant, entity.RoleRider} {
			assert.Error(t, canTransition(role, order(from, entity.PaymentUnpaid), to),
				"%s must not allow %s -> %s", role, from, to)
		}
	}
}

func TestCancelOnlyFromPending(t *testing.T) {
	assert.NoError(t, canTransition(entity.RoleCustomer, order(entity.StatusPending, entity.PaymentUnpaid), entity.StatusCancelled))

	for _, from := range []entity.OrderStatus{
		entity.StatusPreparing, entity.StatusOnTheWay, entity.StatusDelivered, entity.StatusCancelled,
	} {
		assert.Error(t, canTransition(entity.RoleCustomer, order(from, entity.PaymentUnpaid), entity.StatusCancelled), string(from))
	}
}

func TestPaidOrderCannotBeCancelled(t *testing.T) {
	err := canTransition(entity.RoleCustomer, order(entity.StatusPending, entity.PaymentPaid), entity.StatusCancelled)
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestTerminalStatesAllowNothing(t *testing.T) {
	for _, from := range []entity.OrderStatus{entity.StatusDelivered, entity.StatusCancelled} {
		for _, to := range []entity.OrderStatus{
			entity.StatusPending, entity.StatusPreparing, entity.StatusOnTheWay,
			entity.StatusDelivered, entity.StatusCancelled,
		} {
			for _, role := range []entity.Role{entity.RoleCustomer, entity.RoleRestaurant, entity.RoleRider} {
				assert.Error(t, canTransition(role, order(from, entity.PaymentUnpaid), to))
			}
		}
	}
}

// Local gating must refuse before any request goes out: the trackers below
// have no API client, so reaching the network would panic the test.
func TestTrackerRefusesLocallyWithoutNetwork(t *testing.T) {
	ctx := context.Background()

	t.Run("customer cancel while preparing", func(t *testing.T) {
		tr := NewOrderTracker(nil, order(entity.StatusPreparing, entity.PaymentUnpaid))
		assert.ErrorIs(t, tr.CustomerCancel(ctx), ErrNotPermitted)
	})
	t.Run("store accept on delivered", func(t *testing.T) {
		tr := NewOrderTracker(nil, order(entity.StatusDelivered, entity.PaymentPaid))
		assert.ErrorIs(t, tr.StoreAccept(ctx), ErrOrderFinal)
	})
	t.Run("rider deliver before dispatch", func(t *testing.T) {
		o := order(entity.StatusPreparing, entity.PaymentPaid)
		rid := uint(77)
		o.RiderID = &rid
		tr := NewOrderTracker(nil, o)
		assert.ErrorIs(t, tr.RiderDeliver(ctx, 77), ErrNotDispatched)
	})
	t.Run("rider deliver someone else's order", func(t *testing.T) {
		o := order(entity.StatusOnTheWay, entity.PaymentPaid)
		rid := uint(42)
		o.RiderID = &rid
		tr := NewOrderTracker(nil, o)
		assert.ErrorIs(t, tr.RiderDeliver(ctx, 77), ErrNotYourOrder)
	})
	t.Run("assign rider twice", func(t *testing.T) {
		o := order(entity.StatusPreparing, entity.PaymentPaid)
		rid := uint(42)
		o.RiderID = &rid
		tr := NewOrderTracker(nil, o)
		assert.ErrorIs(t, tr.AssignRider(ctx, 77), ErrRiderAssigned)
	})
}

func TestFullLifecycleThroughServer(t *testing.T) {
	ctx := context.Background()
	srv := fakeapi.NewServer(testSecret)
	id := srv.SeedOrder(entity.Order{
		UserID: 5, RestaurantID: 10,
		Status: entity.StatusPending, PaymentStatus: entity.PaymentPaid,
	})

	storeClient := newTestClient(t, srv, 10, entity.RoleRestaurant)
	riderClient := newTestClient(t, srv, 77, entity.RoleRider)

	o, err := storeClient.GetOrder(ctx, id)
	require.NoError(t, err)
	tr := NewOrderTracker(storeClient, o)

	require.NoError(t, tr.StoreAccept(ctx))
	assert.Equal(t, entity.StatusPreparing, tr.Current().Status)

	require.NoError(t, tr.AssignRider(ctx, 77))
	require.NotNil(t, tr.Current().RiderID)
	assert.Equal(t, uint(77), *tr.Current().RiderID)
	assert.Equal(t, entity.StatusPreparing, tr.Current().Status, "assignment must not move status")

	require.NoError(t, tr.StoreDispatch(ctx))
	assert.Equal(t, entity.StatusOnTheWay, tr.Current().Status)

	rtr := NewOrderTracker(riderClient, tr.Current())
	require.NoError(t, rtr.RiderDeliver(ctx, 77))
	assert.Equal(t, entity.StatusDelivered, rtr.Current().Status)
}

// The client's table is necessary, not sufficient: a rejection the server
// makes anyway must surface verbatim and leave the snapshot alone.
func TestServerRejectionKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	srv := fakeapi.NewServer(testSecret)
	id := srv.SeedOrder(entity.Order{
		UserID: 5, RestaurantID: 10,
		Status: entity.StatusPreparing, PaymentStatus: entity.PaymentUnpaid,
	})

	custClient := newTestClient(t, srv, 5, entity.RoleCustomer)

	// Forced past the local gate, straight at the server.
	_, err := custClient.CancelOrder(ctx, id)
	require.Error(t, err)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsForbidden())
	assert.Equal(t, "Order can no longer be cancelled.", apiErr.Message)

	o, err := custClient.GetOrder(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPreparing, o.Status)
}

func TestRiderClaimThroughServer(t *testing.T) {
	ctx := context.Background()
	srv := fakeapi.NewServer(testSecret)
	id := srv.SeedOrder(entity.Order{
		UserID: 5, RestaurantID: 10,
		Status: entity.StatusPending, PaymentStatus: entity.PaymentUnpaid,
	})

	riderClient := newTestClient(t, srv, 77, entity.RoleRider)
	o, err := riderClient.GetOrder(ctx, id)
	require.NoError(t, err)

	tr := NewOrderTracker(riderClient, o)
	require.NoError(t, tr.RiderClaim(ctx))
	require.NotNil(t, tr.Current().RiderID)
	assert.Equal(t, uint(77), *tr.Current().RiderID)

	// Second rider finds it taken; their snapshot stays unassigned.
	other := newTestClient(t, srv, 78, entity.RoleRider)
	otr := NewOrderTracker(other, o)
	err = otr.RiderClaim(ctx)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsForbidden())
	assert.Nil(t, otr.Current().RiderID)
}
