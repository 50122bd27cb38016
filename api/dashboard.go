package api

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
)

// DashboardService groups the /dashboard endpoints.
type DashboardService struct {
	client *Client
}

type Stats struct {
	TotalRevenue        float64 `json:"totalRevenue,omitempty"`
	OutstandingAmount   float64 `json:"outstandingAmount,omitempty"`
	TotalCustomers      int     `json:"totalCustomers,omitempty"`
	TotalProducts       int     `json:"totalProducts,omitempty"`
	OpenInvoices        int     `json:"openInvoices,omitempty"`
	OverdueInvoices     int     `json:"overdueInvoices,omitempty"`
	RevenueThisMonth    float64 `json:"revenueThisMonth,omitempty"`
	NewCustomersMonthly int     `json:"newCustomersThisMonth,omitempty"`
}

type Activity struct {
	ID          string    `json:"id,omitempty"`
	Type        string    `json:"type,omitempty"`
	Description string    `json:"description,omitempty"`
	OccurredAt  time.Time `json:"occurredAt,omitempty"`
}

// ChartData holds a chart payload whose shape varies by chart type. The raw
// data object is kept as-is; callers pick values out by path.
type ChartData struct {
	Type   string
	Period string
	Raw    json.RawMessage
}

// Lookup resolves a gjson path against the raw chart payload, e.g.
// "series.0.points.#" or "labels".
func (c *ChartData) Lookup(path string) gjson.Result {
	return gjson.GetBytes(c.Raw, path)
}

// GetStats fetches the dashboard headline numbers.
func (s *DashboardService) GetStats(ctx context.Context) (*Stats, error) {
	payload, err := getJSON[struct {
		Stats *Stats `json:"stats"`
	}](ctx, s.client, "/dashboard/stats", nil)
	if err != nil {
		return nil, err
	}
	return payload.Stats, nil
}

// GetRecentActivity fetches the latest activity feed entries.
func (s *DashboardService) GetRecentActivity(ctx context.Context) ([]Activity, error) {
	payload, err := getJSON[struct {
		Activity []Activity `json:"activity"`
	}](ctx, s.client, "/dashboard/recent-activity", nil)
	if err != nil {
		return nil, err
	}
	return payload.Activity, nil
}

// GetChartData fetches chart data of the given type over a period
// (e.g. "revenue" over "30d").
func (s *DashboardService) GetChartData(ctx context.Context, chartType, period string) (*ChartData, error) {
	query := url.Values{}
	if period != "" {
		query.Set("period", period)
	}
	raw, err := getJSON[json.RawMessage](ctx, s.client, "/dashboard/charts/"+url.PathEscape(chartType), query)
	if err != nil {
		return nil, err
	}
	return &ChartData{Type: chartType, Period: period, Raw: raw}, nil
}
