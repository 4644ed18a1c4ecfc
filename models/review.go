package models

import (
	"fmt"
	"time"
)

// Review is created once per completed reservation. Its existence is what
// removes a reservation from the pending-review set.
type Review struct {
	ID          int64        `json:"id"`
	Reservation *Reservation `json:"reservation,omitempty"`
	Rating      int          `json:"rating"`
	Comment     string       `json:"comment"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// CreateReviewRequest is the review submission body.
type CreateReviewRequest struct {
	ReservationID int64  `json:"reservationId"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
}

// Validate checks the rating bounds before anything goes on the wire.
func (r CreateReviewRequest) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", r.Rating)
	}
	return nil
}
