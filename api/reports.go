package api

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/tidwall/gjson"
)

// ReportsService groups the /reports endpoints. Report payloads vary by kind
// and parameters, so they stay raw with path-based access.
type ReportsService struct {
	client *Client
}

type Report struct {
	Kind string
	Raw  json.RawMessage
}

// Lookup resolves a gjson path against the raw report payload.
func (r *Report) Lookup(path string) gjson.Result {
	return gjson.GetBytes(r.Raw, path)
}

// Sales fetches the sales report; params typically carry a date range.
func (s *ReportsService) Sales(ctx context.Context, params url.Values) (*Report, error) {
	return s.fetch(ctx, "sales", params)
}

// Customers fetches the customer report.
func (s *ReportsService) Customers(ctx context.Context, params url.Values) (*Report, error) {
	return s.fetch(ctx, "customers", params)
}

// Products fetches the product report.
func (s *ReportsService) Products(ctx context.Context, params url.Values) (*Report, error) {
	return s.fetch(ctx, "products", params)
}

func (s *ReportsService) fetch(ctx context.Context, kind string, params url.Values) (*Report, error) {
	raw, err := getJSON[json.RawMessage](ctx, s.client, "/reports/"+kind, params)
	if err != nil {
		return nil, err
	}
	return &Report{Kind: kind, Raw: raw}, nil
}
