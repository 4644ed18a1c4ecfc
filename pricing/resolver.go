// Package pricing resolves a displayable price for a reservation from an
// ordered fallback chain. The backend does not populate pricing on every
// read, so resolution has to be total: it always yields a number >= 0 and
// never fails a screen over a missing rate.
package pricing

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"aura/models"
)

// rateLookupConcurrency caps parallel link fetches in a batch.
const rateLookupConcurrency = 4

// RateSource looks up the technician-service link carrying the base rate.
// *client.Client satisfies it.
type RateSource interface {
	TechnicianServiceLink(ctx context.Context, technicianID, serviceID int64) (*models.TechnicianServiceLink, error)
}

// Resolver evaluates the price chain. Its rate cache lives for one screen
// session: it exists to avoid N+1 lookups over a reservations table, not to
// keep rates fresh. Build a new Resolver per screen.
type Resolver struct {
	source RateSource
	log    *zap.Logger

	mu    sync.Mutex
	rates map[string]float64
}

// NewResolver builds a Resolver with an empty rate cache.
func NewResolver(source RateSource, log *zap.Logger) *Resolver {
	return &Resolver{
		source: source,
		log:    log,
		rates:  map[string]float64{},
	}
}

func rateKey(technicianID, serviceID int64) string {
	return fmt.Sprintf("%d-%d", technicianID, serviceID)
}

// Resolve returns the price for one reservation:
//
//  1. finalPrice, when present and positive
//  2. technicianBaseRate snapshotted at booking time, when present
//  3. the technician-service link base rate, fetched on demand and cached
//  4. the catalog suggestedPrice
//  5. zero
//
// A failed link lookup falls through to the next step.
func (r *Resolver) Resolve(ctx context.Context, res *models.Reservation) float64 {
	if res.FinalPrice != nil && *res.FinalPrice > 0 {
		return *res.FinalPrice
	}
	if res.TechnicianBaseRate != nil {
		return *res.TechnicianBaseRate
	}
	if rate, ok := r.linkRate(ctx, res.Technician.ID, res.Service.ID); ok {
		return rate
	}
	if res.Service.SuggestedPrice != nil {
		return *res.Service.SuggestedPrice
	}
	return 0
}

// linkRate returns the cached link rate, fetching it on a miss.
func (r *Resolver) linkRate(ctx context.Context, technicianID, serviceID int64) (float64, bool) {
	if technicianID == 0 || serviceID == 0 {
		return 0, false
	}
	key := rateKey(technicianID, serviceID)

	r.mu.Lock()
	rate, ok := r.rates[key]
	r.mu.Unlock()
	if ok {
		return rate, true
	}

	link, err := r.source.TechnicianServiceLink(ctx, technicianID, serviceID)
	if err != nil {
		r.log.Debug("rate lookup failed, falling through",
			zap.Int64("technicianId", technicianID),
			zap.Int64("serviceId", serviceID),
			zap.Error(err))
		return 0, false
	}

	r.mu.Lock()
	r.rates[key] = link.BaseRate
	r.mu.Unlock()
	return link.BaseRate, true
}

// cachedRate reads the cache without triggering a fetch.
func (r *Resolver) cachedRate(technicianID, serviceID int64) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rate, ok := r.rates[rateKey(technicianID, serviceID)]
	return rate, ok
}

// ResolveAll resolves prices for a whole listing, keyed by reservation ID.
// Distinct (technician, service) pairs are deduplicated and fetched
// concurrently; one failed pair only degrades that pair's entries to the
// catalog fallback.
func (r *Resolver) ResolveAll(ctx context.Context, reservations []models.Reservation) map[int64]float64 {
	type pair struct{ technicianID, serviceID int64 }
	pending := map[pair]struct{}{}
	for i := range reservations {
		res := &reservations[i]
		// Steps 1 and 2 never need a lookup.
		if res.FinalPrice != nil && *res.FinalPrice > 0 {
			continue
		}
		if res.TechnicianBaseRate != nil {
			continue
		}
		if res.Technician.ID == 0 || res.Service.ID == 0 {
			continue
		}
		if _, ok := r.cachedRate(res.Technician.ID, res.Service.ID); ok {
			continue
		}
		pending[pair{res.Technician.ID, res.Service.ID}] = struct{}{}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rateLookupConcurrency)
	for p := range pending {
		g.Go(func() error {
			// Failures are tolerated per pair; linkRate logs and the
			// resolution below falls through for its entries.
			r.linkRate(gctx, p.technicianID, p.serviceID)
			return nil
		})
	}
	// The closures never return errors, lookup failures only leave the
	// cache cold for their pair.
	_ = g.Wait()

	out := make(map[int64]float64, len(reservations))
	for i := range reservations {
		out[reservations[i].ID] = r.resolveCached(&reservations[i])
	}
	return out
}

// resolveCached runs the chain against the already-warmed cache only, so a
// batch never issues more lookups than its distinct pending pairs.
func (r *Resolver) resolveCached(res *models.Reservation) float64 {
	if res.FinalPrice != nil && *res.FinalPrice > 0 {
		return *res.FinalPrice
	}
	if res.TechnicianBaseRate != nil {
		return *res.TechnicianBaseRate
	}
	if rate, ok := r.cachedRate(res.Technician.ID, res.Service.ID); ok {
		return rate
	}
	if res.Service.SuggestedPrice != nil {
		return *res.Service.SuggestedPrice
	}
	return 0
}
