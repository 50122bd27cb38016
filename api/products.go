package api

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// ProductsService groups the /products endpoints.
type ProductsService struct {
	client *Client
}

type Product struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name,omitempty"`
	SKU         string    `json:"sku,omitempty"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price,omitempty"`
	TaxRate     float64   `json:"taxRate,omitempty"`
	Stock       int       `json:"stock,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

func (s *ProductsService) List(ctx context.Context, params url.Values) ([]Product, error) {
	payload, err := getJSON[struct {
		Products []Product `json:"products"`
	}](ctx, s.client, "/products", params)
	if err != nil {
		return nil, err
	}
	return payload.Products, nil
}

func (s *ProductsService) Get(ctx context.Context, id string) (*Product, error) {
	payload, err := getJSON[struct {
		Product *Product `json:"product"`
	}](ctx, s.client, "/products/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return payload.Product, nil
}

func (s *ProductsService) Create(ctx context.Context, product Product) (*Product, error) {
	payload, err := sendJSON[struct {
		Product *Product `json:"product"`
	}](ctx, s.client, http.MethodPost, "/products", product)
	if err != nil {
		return nil, err
	}
	return payload.Product, nil
}

func (s *ProductsService) Update(ctx context.Context, id string, product Product) (*Product, error) {
	payload, err := sendJSON[struct {
		Product *Product `json:"product"`
	}](ctx, s.client, http.MethodPut, "/products/"+url.PathEscape(id), product)
	if err != nil {
		return nil, err
	}
	return payload.Product, nil
}

func (s *ProductsService) Delete(ctx context.Context, id string) error {
	_, err := sendJSON[struct{}](ctx, s.client, http.MethodDelete, "/products/"+url.PathEscape(id), nil)
	return err
}
