// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
)

// Client talks to the Strapi REST API.
type Client struct {
	http    *resty.Client
	baseURL string
}

// ClientOptions configures a Client.
type ClientOptions struct {
	BaseURL string // e.g. http://localhost:1337, without /api
	Token   string // optional bearer token
	Timeout time.Duration
}

// NewClient creates a CMS client. It does not contact the CMS.
func NewClient(opts ClientOptions) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	hc := resty.New().
		SetBaseURL(opts.BaseURL+"/api").
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	if opts.Token != "" {
		hc.SetAuthToken(opts.Token)
	}

	return &Client{http: hc, baseURL: opts.BaseURL}
}

// get issues GET /api/{path}?{query} and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, path string, q Query) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	if qs := q.Encode(); qs != "" {
		req.SetQueryString(qs)
	}

	resp, err := req.Get(path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from CMS %s: %w", path, err)
	}

	if !resp.IsSuccess() {
		var details any
		if err := json.Unmarshal(resp.Body(), &details); err != nil {
			details = nil
		}
		return nil, &FetchError{
			Status:     resp.StatusCode(),
			StatusText: http.StatusText(resp.StatusCode()),
			Details:    details,
		}
	}

	return resp.Body(), nil
}

// Phases implements Source.
func (c *Client) Phases(ctx context.Context, q Query) ([]model.Phase, error) {
	body, err := c.get(ctx, "/phases", q)
	if err != nil {
		return nil, err
	}
	var entities []phaseEntity
	if _, err := decodeData(body, &entities); err != nil {
		return nil, err
	}
	out := make([]model.Phase, 0, len(entities))
	for i := range entities {
		out = append(out, entities[i].toModel())
	}
	return out, nil
}

// PhaseByID implements Source.
func (c *Client) PhaseByID(ctx context.Context, id int, q Query) (*model.Phase, error) {
	body, err := c.get(ctx, "/phases/"+strconv.Itoa(id), q)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var entity phaseEntity
	ok, err := decodeData(body, &entity)
	if err != nil || !ok {
		return nil, err
	}
	p := entity.toModel()
	return &p, nil
}

// Modules implements Source.
func (c *Client) Modules(ctx context.Context, q Query) ([]model.Module, error) {
	body, err := c.get(ctx, "/modules", q)
	if err != nil {
		return nil, err
	}
	var entities []moduleEntity
	if _, err := decodeData(body, &entities); err != nil {
		return nil, err
	}
	out := make([]model.Module, 0, len(entities))
	for i := range entities {
		out = append(out, entities[i].toModel())
	}
	return out, nil
}

// ModuleByID implements Source.
func (c *Client) ModuleByID(ctx context.Context, id int, q Query) (*model.Module, error) {
	body, err := c.get(ctx, "/modules/"+strconv.Itoa(id), q)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var entity moduleEntity
	ok, err := decodeData(body, &entity)
	if err != nil || !ok {
		return nil, err
	}
	m := entity.toModel()
	return &m, nil
}

// Resources implements Source.
func (c *Client) Resources(ctx context.Context, q Query) ([]model.Resource, error) {
	body, err := c.get(ctx, "/resources", q)
	if err != nil {
		return nil, err
	}
	var entities []resourceEntity
	if _, err := decodeData(body, &entities); err != nil {
		return nil, err
	}
	out := make([]model.Resource, 0, len(entities))
	for i := range entities {
		out = append(out, entities[i].toModel())
	}
	return out, nil
}

// Testimonials implements Source.
func (c *Client) Testimonials(ctx context.Context, q Query) ([]model.Testimonial, error) {
	body, err := c.get(ctx, "/testimonials", q)
	if err != nil {
		return nil, err
	}
	var entities []testimonialEntity
	if _, err := decodeData(body, &entities); err != nil {
		return nil, err
	}
	out := make([]model.Testimonial, 0, len(entities))
	for i := range entities {
		out = append(out, entities[i].toModel())
	}
	return out, nil
}

// Settings implements Source. The settings singleton lives at /setting.
func (c *Client) Settings(ctx context.Context, q Query) (*model.Settings, error) {
	body, err := c.get(ctx, "/setting", q)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var entity settingsEntity
	ok, err := decodeData(body, &entity)
	if err != nil || !ok {
		return nil, err
	}
	s := entity.toModel()
	return &s, nil
}

// Health checks that the CMS answers. Any response below 500 counts as up,
// since Strapi answers the bare /api/ root with 404.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get("/")
	if err != nil {
		return fmt.Errorf("CMS unreachable: %w", err)
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return &FetchError{Status: resp.StatusCode(), StatusText: http.StatusText(resp.StatusCode())}
	}
	return nil
}

var _ Source = (*Client)(nil)
