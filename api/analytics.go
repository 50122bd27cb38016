package api

import (
	"context"
	"encoding/json"
)

// AnalyticsService groups the read-only analytics surfaces: financial
// analytics, VAT compliance reports, marketing campaigns and admin system
// stats. All payloads are backend-shaped and stay raw.
type AnalyticsService struct {
	client *Client
}

// FinancialAnalytics fetches the financial analytics payload.
func (s *AnalyticsService) FinancialAnalytics(ctx context.Context) (*Report, error) {
	return s.fetch(ctx, "financial-analytics", "/financial/analytics")
}

// VATReports fetches the VAT compliance reports.
func (s *AnalyticsService) VATReports(ctx context.Context) (*Report, error) {
	return s.fetch(ctx, "vat-reports", "/compliance/vat-reports")
}

// Campaigns fetches the marketing campaign overview.
func (s *AnalyticsService) Campaigns(ctx context.Context) (*Report, error) {
	return s.fetch(ctx, "campaigns", "/marketing/campaigns")
}

// SystemStats fetches admin-level system statistics.
func (s *AnalyticsService) SystemStats(ctx context.Context) (*Report, error) {
	return s.fetch(ctx, "system-stats", "/admin/system-stats")
}

func (s *AnalyticsService) fetch(ctx context.Context, kind, path string) (*Report, error) {
	raw, err := getJSON[json.RawMessage](ctx, s.client, path, nil)
	if err != nil {
		return nil, err
	}
	return &Report{Kind: kind, Raw: raw}, nil
}
