package storefront

import (
	"context"

	"github.com/google/uuid"

	"github.com/reservat/storefront-go/internal/api"
	"github.com/reservat/storefront-go/internal/fanout"
	"github.com/reservat/storefront-go/internal/messages"
	"github.com/reservat/storefront-go/internal/types"
)

// CheckoutOutcome classifies the aggregate result of a checkout fan-out.
type CheckoutOutcome int

const (
	// CheckoutFullSuccess: every line item became a reservation; the cart
	// has been cleared.
	CheckoutFullSuccess CheckoutOutcome = iota
	// CheckoutPartialSuccess: some lines succeeded, some failed; the cart
	// is left untouched so the user can retry.
	CheckoutPartialSuccess
	// CheckoutFailure: no line succeeded.
	CheckoutFailure
)

func (o CheckoutOutcome) String() string {
	switch o {
	case CheckoutFullSuccess:
		return "full-success"
	case CheckoutPartialSuccess:
		return "partial-success"
	case CheckoutFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// CheckoutLine is the settled result for one cart line.
type CheckoutLine struct {
	ServiceID   string
	Reservation *types.ReservationRecord
	Err         error
}

// CheckoutResult aggregates the fan-out.
type CheckoutResult struct {
	Outcome CheckoutOutcome
	Message string // localized, ready for the user
	Lines   []CheckoutLine
}

// Checkout posts one pending-status reservation per cart line, concurrently,
// and waits for every request to settle. Checkout performs no payment.
//
// Only full success clears the cart; partial or total failure leaves it
// intact for resubmission. Requires an authenticated session and a
// non-empty cart.
func (c *Client) Checkout(ctx context.Context) (*CheckoutResult, error) {
	sess, ok := c.session.Current()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	items := c.store.State().Cart
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	jobs := make([]fanout.Job, len(items))
	records := make([]*types.ReservationRecord, len(items))
	for i, it := range items {
		req := types.CreateReservationRequest{
			IdempotencyKey: uuid.NewString(),
			ServiceID:      it.ID,
			AccountID:      sess.UserID,
			Quantity:       it.Quantity,
			Status:         types.StatusPending,
		}
		if it.Reservation != nil {
			req.CheckIn = it.Reservation.CheckIn
			req.CheckOut = it.Reservation.CheckOut
			req.Time = it.Reservation.Time
		}
		idx := i
		jobs[i] = func(ctx context.Context) error {
			rec, err := api.CreateReservation(ctx, c.http, c.baseURL, req)
			if err != nil {
				return err
			}
			records[idx] = rec
			return nil
		}
	}

	settled := c.pool.Settle(ctx, jobs)

	res := &CheckoutResult{Lines: make([]CheckoutLine, len(items))}
	var failed int
	for i, err := range settled {
		res.Lines[i] = CheckoutLine{
			ServiceID:   items[i].ID,
			Reservation: records[i],
			Err:         err,
		}
		if err != nil {
			failed++
		}
	}

	switch {
	case failed == 0:
		res.Outcome = CheckoutFullSuccess
		res.Message = messages.Lookup("checkout_full_success")
		c.store.Dispatch(ClearCart{})
	case failed == len(items):
		res.Outcome = CheckoutFailure
		res.Message = messages.Lookup("checkout_failure")
	default:
		res.Outcome = CheckoutPartialSuccess
		res.Message = messages.Lookup("checkout_partial_success")
	}

	checkoutOutcomesTotal.WithLabelValues(res.Outcome.String()).Inc()
	c.log.Info().
		Str("outcome", res.Outcome.String()).
		Int("lines", len(items)).
		Int("failed", failed).
		Msg("checkout settled")
	return res, nil
}
