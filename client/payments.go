package client

import (
	"context"
	"fmt"
	"net/http"

	"aura/models"
)

// CreatePayment submits a payment for a completed reservation. Settlement is
// the backend's job; the client only records the attempt.
func (c *Client) CreatePayment(ctx context.Context, req models.CreatePaymentRequest) (*models.Payment, error) {
	var out models.Payment
	if err := c.do(ctx, http.MethodPost, "/payments", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Payment fetches a single payment.
func (c *Client) Payment(ctx context.Context, id int64) (*models.Payment, error) {
	var out models.Payment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/payments/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyPayments lists the authenticated user's payments.
func (c *Client) MyPayments(ctx context.Context, page, size int) (*models.Page[models.Payment], error) {
	var out models.Page[models.Payment]
	if err := c.do(ctx, http.MethodGet, "/payments/my", pageQuery(page, size), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
