package pricing

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"aura/models"
)

type fakeSource struct {
	mu    sync.Mutex
	calls int
	rates map[string]float64
	err   error
}

func (f *fakeSource) TechnicianServiceLink(ctx context.Context, technicianID, serviceID int64) (*models.TechnicianServiceLink, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	rate, ok := f.rates[rateKey(technicianID, serviceID)]
	if !ok {
		return nil, errors.New("no such link")
	}
	return &models.TechnicianServiceLink{
		TechnicianID: technicianID,
		ServiceID:    serviceID,
		BaseRate:     rate,
	}, nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func ptr(v float64) *float64 { return &v }

func reservation(id, technicianID, serviceID int64) models.Reservation {
	return models.Reservation{
		ID:         id,
		Technician: models.Technician{ID: technicianID},
		Service:    models.Service{ID: serviceID},
	}
}

func TestResolve_FinalPriceWins(t *testing.T) {
	src := &fakeSource{rates: map[string]float64{"1-2": 99}}
	r := NewResolver(src, zap.NewNop())

	res := reservation(1, 1, 2)
	res.FinalPrice = ptr(45.00)
	res.TechnicianBaseRate = ptr(30.00)
	res.Service.SuggestedPrice = ptr(20.00)

	if got := r.Resolve(context.Background(), &res); got != 45.00 {
		t.Fatalf("Resolve = %v, want 45.00", got)
	}
	if src.callCount() != 0 {
		t.Fatal("finalPrice must resolve without any lookup")
	}
}

func TestResolve_ZeroFinalPriceIsNotAuthoritative(t *testing.T) {
	r := NewResolver(&fakeSource{}, zap.NewNop())

	res := reservation(1, 0, 0)
	res.FinalPrice = ptr(0)
	res.TechnicianBaseRate = ptr(35.00)

	if got := r.Resolve(context.Background(), &res); got != 35.00 {
		t.Fatalf("Resolve = %v, want the booking-time snapshot 35.00", got)
	}
}

func TestResolve_LinkRateBeatsSuggestedPrice(t *testing.T) {
	src := &fakeSource{rates: map[string]float64{"1-2": 30.00}}
	r := NewResolver(src, zap.NewNop())

	res := reservation(1, 1, 2)
	res.Service.SuggestedPrice = ptr(20.00)

	if got := r.Resolve(context.Background(), &res); got != 30.00 {
		t.Fatalf("Resolve = %v, want link rate 30.00 over suggested 20.00", got)
	}
}

func TestResolve_FallsThroughToSuggestedOnLookupFailure(t *testing.T) {
	src := &fakeSource{err: errors.New("boom")}
	r := NewResolver(src, zap.NewNop())

	res := reservation(1, 1, 2)
	res.Service.SuggestedPrice = ptr(20.00)

	if got := r.Resolve(context.Background(), &res); got != 20.00 {
		t.Fatalf("Resolve = %v, want suggested 20.00", got)
	}
}

func TestResolve_TotallyEmptyIsZero(t *testing.T) {
	src := &fakeSource{err: errors.New("boom")}
	r := NewResolver(src, zap.NewNop())

	res := reservation(1, 1, 2)
	if got := r.Resolve(context.Background(), &res); got != 0 {
		t.Fatalf("Resolve = %v, want 0", got)
	}
}

func TestResolve_CachesLinkRatePerScreen(t *testing.T) {
	src := &fakeSource{rates: map[string]float64{"1-2": 30.00}}
	r := NewResolver(src, zap.NewNop())

	res := reservation(1, 1, 2)
	for i := 0; i < 5; i++ {
		if got := r.Resolve(context.Background(), &res); got != 30.00 {
			t.Fatalf("Resolve = %v, want 30.00", got)
		}
	}
	if src.callCount() != 1 {
		t.Fatalf("lookups = %d, want 1 (cached afterwards)", src.callCount())
	}
}

func TestResolveAll_DeduplicatesPairs(t *testing.T) {
	src := &fakeSource{rates: map[string]float64{
		"1-10": 30.00,
		"2-10": 40.00,
		"3-20": 50.00,
	}}
	r := NewResolver(src, zap.NewNop())

	// 10 reservations over 3 distinct pairs.
	var list []models.Reservation
	pairs := [][2]int64{{1, 10}, {2, 10}, {3, 20}}
	for i := 0; i < 10; i++ {
		p := pairs[i%3]
		list = append(list, reservation(int64(i+1), p[0], p[1]))
	}

	prices := r.ResolveAll(context.Background(), list)
	if src.callCount() != 3 {
		t.Fatalf("lookups = %d, want exactly 3", src.callCount())
	}
	if len(prices) != 10 {
		t.Fatalf("resolved %d prices, want 10", len(prices))
	}
	if prices[1] != 30.00 || prices[2] != 40.00 || prices[3] != 50.00 {
		t.Fatalf("unexpected prices: %v", prices)
	}
}

func TestResolveAll_PartialFailureDegradesOnlyThatPair(t *testing.T) {
	src := &fakeSource{rates: map[string]float64{"1-10": 30.00}}
	r := NewResolver(src, zap.NewNop())

	good := reservation(1, 1, 10)
	bad := reservation(2, 9, 99)
	bad.Service.SuggestedPrice = ptr(20.00)
	naked := reservation(3, 9, 99)

	prices := r.ResolveAll(context.Background(), []models.Reservation{good, bad, naked})
	if prices[1] != 30.00 {
		t.Fatalf("good pair = %v, want 30.00", prices[1])
	}
	if prices[2] != 20.00 {
		t.Fatalf("failed pair must fall back to suggested, got %v", prices[2])
	}
	if prices[3] != 0 {
		t.Fatalf("failed pair without suggested must be 0, got %v", prices[3])
	}
}

func TestResolveAll_SkipsLookupsAlreadyPriced(t *testing.T) {
	src := &fakeSource{}
	r := NewResolver(src, zap.NewNop())

	priced := reservation(1, 1, 10)
	priced.FinalPrice = ptr(80.00)
	snapshotted := reservation(2, 2, 10)
	snapshotted.TechnicianBaseRate = ptr(25.00)

	prices := r.ResolveAll(context.Background(), []models.Reservation{priced, snapshotted})
	if src.callCount() != 0 {
		t.Fatalf("lookups = %d, want 0", src.callCount())
	}
	if prices[1] != 80.00 || prices[2] != 25.00 {
		t.Fatalf("unexpected prices: %v", prices)
	}
}
