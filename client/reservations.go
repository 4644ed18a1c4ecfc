package client

import (
	"context"
	"fmt"
	"net/http"

	"aura/models"
)

// CreateReservation submits a booking request. The new reservation starts
// PENDING.
func (c *Client) CreateReservation(ctx context.Context, req models.CreateReservationRequest) (*models.Reservation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out models.Reservation
	if err := c.do(ctx, http.MethodPost, "/reservations", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reservation fetches a single reservation, used to resync after a rejected
// transition.
func (c *Client) Reservation(ctx context.Context, id int64) (*models.Reservation, error) {
	var out models.Reservation
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/reservations/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyReservations lists the authenticated customer's reservations.
func (c *Client) MyReservations(ctx context.Context, page, size int) (*models.Page[models.Reservation], error) {
	var out models.Page[models.Reservation]
	if err := c.do(ctx, http.MethodGet, "/reservations/my", pageQuery(page, size), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyTechnicianReservations lists reservations assigned to the authenticated
// technician.
func (c *Client) MyTechnicianReservations(ctx context.Context, page, size int) (*models.Page[models.Reservation], error) {
	var out models.Page[models.Reservation]
	if err := c.do(ctx, http.MethodGet, "/reservations/my/technician", pageQuery(page, size), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReservationsByStatus lists reservations filtered by lifecycle status.
func (c *Client) ReservationsByStatus(ctx context.Context, status models.ReservationStatus, page, size int) (*models.Page[models.Reservation], error) {
	var out models.Page[models.Reservation]
	path := fmt.Sprintf("/reservations/status/%s", status)
	if err := c.do(ctx, http.MethodGet, path, pageQuery(page, size), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmReservation is the technician's accept action: PENDING -> CONFIRMED.
func (c *Client) ConfirmReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	return c.patchReservation(ctx, id, "confirm", nil)
}

// RejectReservation is the technician's reject action: PENDING -> REJECTED.
func (c *Client) RejectReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	return c.patchReservation(ctx, id, "reject", nil)
}

// CancelReservation cancels with an optional free-text reason.
func (c *Client) CancelReservation(ctx context.Context, id int64, reason string) (*models.Reservation, error) {
	var body any
	if reason != "" {
		body = map[string]string{"reason": reason}
	}
	return c.patchReservation(ctx, id, "cancel", body)
}

// CompleteReservation is the customer's complete action; the checkout saga
// chains payment and review prompts after it.
func (c *Client) CompleteReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	return c.patchReservation(ctx, id, "complete", nil)
}

func (c *Client) patchReservation(ctx context.Context, id int64, action string, body any) (*models.Reservation, error) {
	var out models.Reservation
	path := fmt.Sprintf("/reservations/%d/%s", id, action)
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
