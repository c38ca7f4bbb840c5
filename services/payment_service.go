package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/iamkibet/bitedash-app-sub000/api"
	"github.com/iamkibet/bitedash-app-sub000/configs"
	"github.com/iamkibet/bitedash-app-sub000/entity"
	"github.com/iamkibet/bitedash-app-sub000/utils"
)

// PaymentService drives the mobile-money flow: fire the STK prompt, then
// verify the returned reference on a fixed cadence until it settles, the
// attempt cap runs out, or the owning screen cancels the handle.
type PaymentService struct {
	API         *api.Client
	Interval    time.Duration
	MaxAttempts int

	initiating atomic.Bool
}

func NewPaymentService(client *api.Client, cfg *configs.Config) *PaymentService {
	return &PaymentService{
		API:         client,
		Interval:    cfg.PollInterval,
		MaxAttempts: cfg.PollMaxAttempts,
	}
}

// Initiate validates and normalizes the phone number before anything goes
// on the wire, then asks the backend to push the payment prompt.
func (s *PaymentService) Initiate(ctx context.Context, orderID uint, rawPhone string) (*api.InitiatePaymentRes, error) {
	phone, err := utils.NormalizePhone(rawPhone)
	if err != nil {
		return nil, err
	}
	if !s.initiating.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.initiating.Store(false)

	return s.API.InitiatePayment(ctx, orderID, phone)
}

type PollOutcome string

const (
	// OutcomePaid: a verify tick came back completed/paid and the order was
	// refetched.
	OutcomePaid PollOutcome = "paid"
	// OutcomeStillPending: the attempt cap ran out with no settlement; the
	// user should check again later.
	OutcomeStillPending PollOutcome = "still_pending"
	// OutcomeCancelled: the handle was cancelled, normally because the
	// pending-payment screen went away.
	OutcomeCancelled PollOutcome = "cancelled"
)

// PollHandle owns the verify timer. Cancel is idempotent and must be called
// by the owning scope on teardown so no timer outlives the screen.
type PollHandle struct {
	cancel context.CancelFunc
	done   chan struct{}

	outcome PollOutcome
	order   *entity.Order
}

func (h *PollHandle) Cancel() { h.cancel() }

// Done closes once the loop has stopped for any reason.
func (h *PollHandle) Done() <-chan struct{} { return h.done }

// Outcome is valid only after Done is closed. Order is the freshly fetched
// post-payment snapshot for OutcomePaid; it can still be nil when both fetch
// attempts failed, in which case the caller refreshes the order itself.
func (h *PollHandle) Outcome() (PollOutcome, *entity.Order) {
	return h.outcome, h.order
}

// StartPolling begins verifying reference every Interval. Per-tick errors
// and unsettled responses are deliberately silent; the user sits on the
// "waiting for payment" state until the loop resolves.
func (s *PaymentService) StartPolling(ctx context.Context, orderID uint, reference string) *PollHandle {
	ctx, cancel := context.WithCancel(ctx)
	h := &PollHandle{cancel: cancel, done: make(chan struct{}), outcome: OutcomeCancelled}
	go s.poll(ctx, orderID, reference, h)
	return h
}

func (s *PaymentService) poll(ctx context.Context, orderID uint, reference string, h *PollHandle) {
	defer close(h.done)

	interval := s.Interval
	if interval <= 0 {
		interval = 4 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for attempt := 0; s.MaxAttempts <= 0 || attempt < s.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			h.outcome = OutcomeCancelled
			return
		case <-ticker.C:
		}

		status, err := s.API.VerifyPayment(ctx, reference)
		if err != nil || status != entity.PaymentPaid {
			continue
		}

		// Settled. Refresh the full order before reporting back, then stop;
		// no verify call goes out after this tick. The payment is confirmed
		// either way, so a failed refresh gets one more try and then the
		// outcome ships without a snapshot.
		o, err := s.API.GetOrder(ctx, orderID)
		if err != nil {
			if o, err = s.API.GetOrder(ctx, orderID); err != nil {
				o = nil
			}
		}
		h.outcome = OutcomePaid
		h.order = o
		return
	}

	h.outcome = OutcomeStillPending
}
