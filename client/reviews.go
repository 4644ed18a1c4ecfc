package client

import (
	"context"
	"fmt"
	"net/http"

	"aura/models"
)

// CreateReview rates a completed reservation. The backend rejects duplicates;
// the pending-review listing already filters reviewed reservations out.
func (c *Client) CreateReview(ctx context.Context, req models.CreateReviewRequest) (*models.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out models.Review
	if err := c.do(ctx, http.MethodPost, "/reviews", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyReviews lists reviews written by the authenticated customer. The backend
// serves this one as a bare array; the page decoder normalizes it.
func (c *Client) MyReviews(ctx context.Context, page, size int) (*models.Page[models.Review], error) {
	var out models.Page[models.Review]
	if err := c.do(ctx, http.MethodGet, "/reviews/my", pageQuery(page, size), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TechnicianReviews lists reviews received by a technician.
func (c *Client) TechnicianReviews(ctx context.Context, technicianID int64, page, size int) (*models.Page[models.Review], error) {
	var out models.Page[models.Review]
	path := fmt.Sprintf("/reviews/technician/%d", technicianID)
	if err := c.do(ctx, http.MethodGet, path, pageQuery(page, size), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyTechnicianReviews lists reviews received by the authenticated technician.
func (c *Client) MyTechnicianReviews(ctx context.Context, page, size int) (*models.Page[models.Review], error) {
	var out models.Page[models.Review]
	if err := c.do(ctx, http.MethodGet, "/reviews/technician/my", pageQuery(page, size), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
