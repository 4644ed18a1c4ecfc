package client

import (
	"context"
	"fmt"
	"net/http"

	"aura/models"
)

// Services lists the service catalog.
func (c *Client) Services(ctx context.Context, page, size int) (*models.Page[models.Service], error) {
	var out models.Page[models.Service]
	if err := c.do(ctx, http.MethodGet, "/services", pageQuery(page, size), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Service fetches one catalog entry.
func (c *Client) Service(ctx context.Context, id int64) (*models.Service, error) {
	var out models.Service
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/services/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ServicesByCategory lists catalog entries in one category.
func (c *Client) ServicesByCategory(ctx context.Context, category models.ServiceCategory, page, size int) (*models.Page[models.Service], error) {
	var out models.Page[models.Service]
	path := fmt.Sprintf("/services/category/%s", category)
	if err := c.do(ctx, http.MethodGet, path, pageQuery(page, size), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
