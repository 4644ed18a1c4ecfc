// Package checkout orchestrates reservation transitions and the
// complete → pay → review flow. The three steps are independent requests with
// no transaction around them: once complete succeeds the reservation stays
// COMPLETED whatever happens to payment or review, and the pending listings
// let the user retry the later steps without re-running complete.
package checkout

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"aura/client"
	"aura/lifecycle"
	"aura/models"
	"aura/pricing"
)

// Backend is the slice of the API the checkout flow needs.
type Backend interface {
	Reservation(ctx context.Context, id int64) (*models.Reservation, error)
	ConfirmReservation(ctx context.Context, id int64) (*models.Reservation, error)
	RejectReservation(ctx context.Context, id int64) (*models.Reservation, error)
	CancelReservation(ctx context.Context, id int64, reason string) (*models.Reservation, error)
	CompleteReservation(ctx context.Context, id int64) (*models.Reservation, error)
	CreatePayment(ctx context.Context, req models.CreatePaymentRequest) (*models.Payment, error)
	CreateReview(ctx context.Context, req models.CreateReviewRequest) (*models.Review, error)
	MyReservations(ctx context.Context, page, size int) (*models.Page[models.Reservation], error)
}

// StaleError reports a transition the backend refused because the reservation
// moved under us. Fresh carries the resynced copy for the screen to rebind.
type StaleError struct {
	Fresh *models.Reservation
	Cause error
}

func (e *StaleError) Error() string {
	return fmt.Sprintf("checkout: stale reservation state: %v", e.Cause)
}

func (e *StaleError) Unwrap() error { return e.Cause }

// PaymentPrompt is what the UI shows right after a successful complete.
type PaymentPrompt struct {
	Reservation *models.Reservation
	Amount      float64
	Methods     []models.PaymentMethod
}

// Saga drives role-gated transitions and the checkout chain.
type Saga struct {
	backend Backend
	machine *lifecycle.Machine
	prices  *pricing.Resolver
	log     *zap.Logger
}

// New builds a Saga.
func New(backend Backend, machine *lifecycle.Machine, prices *pricing.Resolver, log *zap.Logger) *Saga {
	return &Saga{backend: backend, machine: machine, prices: prices, log: log}
}

// Transition validates an action against the lifecycle machine and, only when
// permitted, sends it. Nothing is applied optimistically: the server's copy
// replaces ours. A conflict or forbidden answer resyncs the reservation and
// returns a StaleError.
func (s *Saga) Transition(ctx context.Context, res *models.Reservation, role models.Role, action lifecycle.Action, reason string) (*models.Reservation, error) {
	if _, err := s.machine.Target(res.Status, role, action); err != nil {
		return nil, err
	}

	var (
		updated *models.Reservation
		err     error
	)
	switch action {
	case lifecycle.ActionAccept:
		updated, err = s.backend.ConfirmReservation(ctx, res.ID)
	case lifecycle.ActionReject:
		updated, err = s.backend.RejectReservation(ctx, res.ID)
	case lifecycle.ActionCancel:
		updated, err = s.backend.CancelReservation(ctx, res.ID, reason)
	case lifecycle.ActionComplete:
		updated, err = s.backend.CompleteReservation(ctx, res.ID)
	default:
		return nil, fmt.Errorf("checkout: no endpoint for action %q", action)
	}

	if err != nil {
		if client.IsConflict(err) || client.IsForbidden(err) {
			return nil, s.stale(ctx, res.ID, err)
		}
		return nil, err
	}
	return updated, nil
}

func (s *Saga) stale(ctx context.Context, id int64, cause error) error {
	fresh, ferr := s.backend.Reservation(ctx, id)
	if ferr != nil {
		s.log.Warn("resync after rejected transition failed",
			zap.Int64("reservationId", id),
			zap.Error(ferr))
		return cause
	}
	return &StaleError{Fresh: fresh, Cause: cause}
}

// Complete runs step one of the chain and returns the payment prompt with the
// amount pre-resolved. The prompt must be answered (or explicitly deferred)
// before any review prompt appears.
func (s *Saga) Complete(ctx context.Context, res *models.Reservation, role models.Role) (*PaymentPrompt, error) {
	updated, err := s.Transition(ctx, res, role, lifecycle.ActionComplete, "")
	if err != nil {
		return nil, err
	}
	return &PaymentPrompt{
		Reservation: updated,
		Amount:      s.prices.Resolve(ctx, updated),
		Methods:     models.PaymentMethods(),
	}, nil
}

// Pay runs step two. On failure the reservation simply stays in the
// pending-payments listing; nothing is rolled back.
func (s *Saga) Pay(ctx context.Context, reservationID int64, amount float64, method models.PaymentMethod) (*models.Payment, error) {
	return s.backend.CreatePayment(ctx, models.CreatePaymentRequest{
		ReservationID: reservationID,
		Amount:        amount,
		PaymentMethod: method,
	})
}

// Review runs step three.
func (s *Saga) Review(ctx context.Context, reservationID int64, rating int, comment string) (*models.Review, error) {
	return s.backend.CreateReview(ctx, models.CreateReviewRequest{
		ReservationID: reservationID,
		Rating:        rating,
		Comment:       comment,
	})
}

// PendingPayments lists the customer's completed-but-unpaid reservations.
// A paid reservation carries its settled amount as finalPrice, so completed
// entries without a positive finalPrice still owe payment.
func (s *Saga) PendingPayments(ctx context.Context, page, size int) ([]models.Reservation, error) {
	return s.pending(ctx, page, size, func(r *models.Reservation) bool {
		return r.FinalPrice == nil || *r.FinalPrice <= 0
	})
}

// PendingReviews lists the customer's completed reservations not yet
// reviewed.
func (s *Saga) PendingReviews(ctx context.Context, page, size int) ([]models.Reservation, error) {
	return s.pending(ctx, page, size, func(r *models.Reservation) bool {
		return !r.HasReview
	})
}

func (s *Saga) pending(ctx context.Context, page, size int, keep func(*models.Reservation) bool) ([]models.Reservation, error) {
	listed, err := s.backend.MyReservations(ctx, page, size)
	if err != nil {
		return nil, err
	}
	var out []models.Reservation
	for i := range listed.Content {
		r := &listed.Content[i]
		if r.Status == models.StatusCompleted && keep(r) {
			out = append(out, *r)
		}
	}
	return out, nil
}
