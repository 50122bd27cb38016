package api

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// CustomersService groups the /customers endpoints.
type CustomersService struct {
	client *Client
}

// Customer is a backend-owned CRUD entity. The client holds transient copies
// only and refetches the list after every mutation.
type Customer struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// List fetches customers; params are passed through as query string values
// (pagination, search).
func (s *CustomersService) List(ctx context.Context, params url.Values) ([]Customer, error) {
	payload, err := getJSON[struct {
		Customers []Customer `json:"customers"`
	}](ctx, s.client, "/customers", params)
	if err != nil {
		return nil, err
	}
	return payload.Customers, nil
}

// Get fetches a single customer by ID.
func (s *CustomersService) Get(ctx context.Context, id string) (*Customer, error) {
	payload, err := getJSON[struct {
		Customer *Customer `json:"customer"`
	}](ctx, s.client, "/customers/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return payload.Customer, nil
}

// Create stores a new customer.
func (s *CustomersService) Create(ctx context.Context, customer Customer) (*Customer, error) {
	payload, err := sendJSON[struct {
		Customer *Customer `json:"customer"`
	}](ctx, s.client, http.MethodPost, "/customers", customer)
	if err != nil {
		return nil, err
	}
	return payload.Customer, nil
}

// Update replaces a customer's mutable fields.
func (s *CustomersService) Update(ctx context.Context, id string, customer Customer) (*Customer, error) {
	payload, err := sendJSON[struct {
		Customer *Customer `json:"customer"`
	}](ctx, s.client, http.MethodPut, "/customers/"+url.PathEscape(id), customer)
	if err != nil {
		return nil, err
	}
	return payload.Customer, nil
}

// Delete removes a customer.
func (s *CustomersService) Delete(ctx context.Context, id string) error {
	_, err := sendJSON[struct{}](ctx, s.client, http.MethodDelete, "/customers/"+url.PathEscape(id), nil)
	return err
}
