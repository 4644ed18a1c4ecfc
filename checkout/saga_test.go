package checkout

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"aura/lifecycle"
	"aura/models"
	"aura/pricing"
)

type fakeBackend struct {
	res models.Reservation

	completeCalls int
	payCalls      int
	failPayment   bool
	transitionErr error
}

func (f *fakeBackend) Reservation(ctx context.Context, id int64) (*models.Reservation, error) {
	cp := f.res
	return &cp, nil
}

func (f *fakeBackend) transition(to models.ReservationStatus) (*models.Reservation, error) {
	if f.transitionErr != nil {
		return nil, f.transitionErr
	}
	f.res.Status = to
	cp := f.res
	return &cp, nil
}

func (f *fakeBackend) ConfirmReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	return f.transition(models.StatusConfirmed)
}

func (f *fakeBackend) RejectReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	return f.transition(models.StatusRejected)
}

func (f *fakeBackend) CancelReservation(ctx context.Context, id int64, reason string) (*models.Reservation, error) {
	return f.transition(models.StatusCancelled)
}

func (f *fakeBackend) CompleteReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	f.completeCalls++
	return f.transition(models.StatusCompleted)
}

func (f *fakeBackend) CreatePayment(ctx context.Context, req models.CreatePaymentRequest) (*models.Payment, error) {
	f.payCalls++
	if f.failPayment {
		return nil, errors.New("payment gateway unavailable")
	}
	f.res.FinalPrice = &req.Amount
	return &models.Payment{
		ID:     1,
		Amount: req.Amount,
		Method: req.PaymentMethod,
		Status: models.PaymentCompleted,
	}, nil
}

func (f *fakeBackend) CreateReview(ctx context.Context, req models.CreateReviewRequest) (*models.Review, error) {
	f.res.HasReview = true
	return &models.Review{ID: 1, Rating: req.Rating, Comment: req.Comment}, nil
}

func (f *fakeBackend) MyReservations(ctx context.Context, page, size int) (*models.Page[models.Reservation], error) {
	return &models.Page[models.Reservation]{
		Content:       []models.Reservation{f.res},
		TotalElements: 1,
		TotalPages:    1,
		Size:          size,
	}, nil
}

type noLookups struct{ t *testing.T }

func (n noLookups) TechnicianServiceLink(ctx context.Context, technicianID, serviceID int64) (*models.TechnicianServiceLink, error) {
	return nil, errors.New("no link")
}

func newSaga(backend *fakeBackend, source pricing.RateSource) *Saga {
	log := zap.NewNop()
	return New(backend, lifecycle.New(false), pricing.NewResolver(source, log), log)
}

func pendingReservation() models.Reservation {
	rate := 30.00
	return models.Reservation{
		ID:                 5,
		Customer:           models.User{ID: 1, Role: models.RoleUser},
		Technician:         models.Technician{ID: 2},
		Service:            models.Service{ID: 3, Name: "Pipe repair"},
		Status:             models.StatusPending,
		TechnicianBaseRate: &rate,
	}
}

func TestTransition_BlockedBeforeNetwork(t *testing.T) {
	backend := &fakeBackend{res: pendingReservation()}
	s := newSaga(backend, noLookups{t})

	res := backend.res
	_, err := s.Transition(context.Background(), &res, models.RoleUser, lifecycle.ActionAccept, "")
	var npe *lifecycle.NotPermittedError
	if !errors.As(err, &npe) {
		t.Fatalf("want NotPermittedError, got %v", err)
	}
	if backend.res.Status != models.StatusPending {
		t.Fatal("backend must not be touched for a disallowed action")
	}
}

func TestTransition_ConflictResyncs(t *testing.T) {
	backend := &fakeBackend{res: pendingReservation()}
	backend.res.Status = models.StatusConfirmed
	backend.transitionErr = &models.APIError{
		Status:  http.StatusConflict,
		Message: "Reservation was already completed",
	}
	s := newSaga(backend, noLookups{t})

	stale := backend.res
	stale.Status = models.StatusConfirmed
	_, err := s.Transition(context.Background(), &stale, models.RoleUser, lifecycle.ActionCancel, "too late")

	var se *StaleError
	if !errors.As(err, &se) {
		t.Fatalf("want StaleError, got %v", err)
	}
	if se.Fresh == nil || se.Fresh.ID != stale.ID {
		t.Fatalf("stale error must carry the resynced reservation: %+v", se.Fresh)
	}
}

func TestComplete_ReturnsPromptWithResolvedAmount(t *testing.T) {
	backend := &fakeBackend{res: pendingReservation()}
	backend.res.Status = models.StatusConfirmed
	s := newSaga(backend, noLookups{t})

	res := backend.res
	prompt, err := s.Complete(context.Background(), &res, models.RoleUser)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if prompt.Reservation.Status != models.StatusCompleted {
		t.Fatalf("status = %s, want COMPLETED", prompt.Reservation.Status)
	}
	if prompt.Amount != 30.00 {
		t.Fatalf("prompt amount = %v, want the booking-time rate 30.00", prompt.Amount)
	}
	if len(prompt.Methods) == 0 {
		t.Fatal("prompt must offer payment methods")
	}
}

func TestPaymentFailureLeavesCompletedAndRetryable(t *testing.T) {
	backend := &fakeBackend{res: pendingReservation(), failPayment: true}
	backend.res.Status = models.StatusConfirmed
	s := newSaga(backend, noLookups{t})

	res := backend.res
	prompt, err := s.Complete(context.Background(), &res, models.RoleUser)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if _, err := s.Pay(context.Background(), prompt.Reservation.ID, prompt.Amount, models.MethodCash); err == nil {
		t.Fatal("payment was supposed to fail")
	}
	if backend.res.Status != models.StatusCompleted {
		t.Fatal("failed payment must not roll the reservation back")
	}

	pendingPay, err := s.PendingPayments(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("PendingPayments: %v", err)
	}
	if len(pendingPay) != 1 || pendingPay[0].ID != 5 {
		t.Fatalf("reservation must sit in pending payments, got %+v", pendingPay)
	}

	// Retry later: payment succeeds without complete being re-triggered.
	backend.failPayment = false
	if _, err := s.Pay(context.Background(), prompt.Reservation.ID, prompt.Amount, models.MethodCash); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if backend.completeCalls != 1 {
		t.Fatalf("complete calls = %d, retrying payment must not re-complete", backend.completeCalls)
	}

	pendingPay, err = s.PendingPayments(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("PendingPayments: %v", err)
	}
	if len(pendingPay) != 0 {
		t.Fatalf("paid reservation must leave pending payments, got %+v", pendingPay)
	}
}

// Full lifecycle: book -> accept -> complete -> cash payment -> five-star
// review, ending reviewed and out of the pending-review set.
func TestCompletePayReviewChain(t *testing.T) {
	backend := &fakeBackend{res: pendingReservation()}
	s := newSaga(backend, noLookups{t})

	ctx := context.Background()

	res := backend.res
	confirmed, err := s.Transition(ctx, &res, models.RoleTechnician, lifecycle.ActionAccept, "")
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if confirmed.Status != models.StatusConfirmed {
		t.Fatalf("status = %s, want CONFIRMED", confirmed.Status)
	}

	prompt, err := s.Complete(ctx, confirmed, models.RoleUser)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	payment, err := s.Pay(ctx, prompt.Reservation.ID, prompt.Amount, models.MethodCash)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if payment.Amount != 30.00 {
		t.Fatalf("paid %v, want the resolved 30.00", payment.Amount)
	}

	pendingRev, err := s.PendingReviews(ctx, 0, 10)
	if err != nil {
		t.Fatalf("PendingReviews: %v", err)
	}
	if len(pendingRev) != 1 {
		t.Fatalf("expected one pending review, got %d", len(pendingRev))
	}

	review, err := s.Review(ctx, prompt.Reservation.ID, 5, "Great job")
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if review.Rating != 5 || review.Comment != "Great job" {
		t.Fatalf("review = %+v", review)
	}

	pendingRev, err = s.PendingReviews(ctx, 0, 10)
	if err != nil {
		t.Fatalf("PendingReviews: %v", err)
	}
	if len(pendingRev) != 0 {
		t.Fatal("reviewed reservation must leave the pending-review set")
	}
}
