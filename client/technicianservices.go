package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"aura/models"
)

// TechnicianServiceLink fetches the rate-bearing link for one technician and
// service pair. Price resolution step three.
func (c *Client) TechnicianServiceLink(ctx context.Context, technicianID, serviceID int64) (*models.TechnicianServiceLink, error) {
	var out models.TechnicianServiceLink
	path := fmt.Sprintf("/technician-services/%d/%d", technicianID, serviceID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LinksByTechnician lists the services a technician offers. This endpoint is
// one of the envelope-or-bare-array offenders; the page decoder hides that.
func (c *Client) LinksByTechnician(ctx context.Context, technicianID int64) ([]models.TechnicianServiceLink, error) {
	var out models.Page[models.TechnicianServiceLink]
	path := fmt.Sprintf("/technician-services/technician/%d", technicianID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Content, nil
}

// LinksByService lists the technicians offering a service.
func (c *Client) LinksByService(ctx context.Context, serviceID int64) ([]models.TechnicianServiceLink, error) {
	var out models.Page[models.TechnicianServiceLink]
	path := fmt.Sprintf("/technician-services/service/%d", serviceID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Content, nil
}

// CreateLink opts the authenticated technician into offering a service at the
// given base rate.
func (c *Client) CreateLink(ctx context.Context, technicianID, serviceID int64, baseRate float64) (*models.TechnicianServiceLink, error) {
	body := map[string]any{
		"technicianId": technicianID,
		"serviceId":    serviceID,
		"baseRate":     baseRate,
	}
	var out models.TechnicianServiceLink
	if err := c.do(ctx, http.MethodPost, "/technician-services", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBaseRate changes the technician's rate for a service.
func (c *Client) UpdateBaseRate(ctx context.Context, technicianID, serviceID int64, baseRate float64) (*models.TechnicianServiceLink, error) {
	path := fmt.Sprintf("/technician-services/%d/%d/base-rate", technicianID, serviceID)
	query := url.Values{"baseRate": []string{fmt.Sprint(baseRate)}}
	var out models.TechnicianServiceLink
	if err := c.do(ctx, http.MethodPatch, path, query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
