package api

import (
	"context"
	"net/http"
)

// BusinessService groups the /business and /settings endpoints. Both describe
// the single business the authenticated user belongs to.
type BusinessService struct {
	client *Client
}

type Business struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	TaxNumber string `json:"taxNumber,omitempty"`
	Currency  string `json:"currency,omitempty"`
	LogoURL   string `json:"logoUrl,omitempty"`
}

type Settings struct {
	InvoicePrefix      string  `json:"invoicePrefix,omitempty"`
	DefaultTaxRate     float64 `json:"defaultTaxRate,omitempty"`
	Currency           string  `json:"currency,omitempty"`
	PaymentTermsDays   int     `json:"paymentTermsDays,omitempty"`
	EmailNotifications bool    `json:"emailNotifications,omitempty"`
}

// Get fetches the current business profile.
func (s *BusinessService) Get(ctx context.Context) (*Business, error) {
	payload, err := getJSON[struct {
		Business *Business `json:"business"`
	}](ctx, s.client, "/business", nil)
	if err != nil {
		return nil, err
	}
	return payload.Business, nil
}

// Update replaces the business profile's mutable fields.
func (s *BusinessService) Update(ctx context.Context, business Business) (*Business, error) {
	payload, err := sendJSON[struct {
		Business *Business `json:"business"`
	}](ctx, s.client, http.MethodPut, "/business", business)
	if err != nil {
		return nil, err
	}
	return payload.Business, nil
}

// GetSettings fetches the business-wide settings.
func (s *BusinessService) GetSettings(ctx context.Context) (*Settings, error) {
	payload, err := getJSON[struct {
		Settings *Settings `json:"settings"`
	}](ctx, s.client, "/settings", nil)
	if err != nil {
		return nil, err
	}
	return payload.Settings, nil
}

// UpdateSettings replaces the business-wide settings.
func (s *BusinessService) UpdateSettings(ctx context.Context, settings Settings) (*Settings, error) {
	payload, err := sendJSON[struct {
		Settings *Settings `json:"settings"`
	}](ctx, s.client, http.MethodPut, "/settings", settings)
	if err != nil {
		return nil, err
	}
	return payload.Settings, nil
}
