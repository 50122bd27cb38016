package api

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// InvoicesService groups the /invoices endpoints.
type InvoicesService struct {
	client *Client
}

// InvoiceStatus values mirror the backend's invoice lifecycle.
type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceSent    InvoiceStatus = "sent"
	InvoicePartial InvoiceStatus = "partial"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

type InvoiceItem struct {
	ProductID   string  `json:"productId,omitempty"`
	Description string  `json:"description,omitempty"`
	Quantity    float64 `json:"quantity,omitempty"`
	UnitPrice   float64 `json:"unitPrice,omitempty"`
	Total       float64 `json:"total,omitempty"`
}

type Invoice struct {
	ID            string        `json:"id,omitempty"`
	InvoiceNumber string        `json:"invoiceNumber,omitempty"`
	CustomerID    string        `json:"customerId,omitempty"`
	Items         []InvoiceItem `json:"items,omitempty"`
	Status        InvoiceStatus `json:"status,omitempty"`
	Subtotal      float64       `json:"subtotal,omitempty"`
	Tax           float64       `json:"tax,omitempty"`
	Total         float64       `json:"total,omitempty"`
	AmountPaid    float64       `json:"amountPaid,omitempty"`
	DueDate       time.Time     `json:"dueDate,omitempty"`
	CreatedAt     time.Time     `json:"createdAt,omitempty"`
	UpdatedAt     time.Time     `json:"updatedAt,omitempty"`
}

// Payment records money received against an invoice.
type Payment struct {
	Amount    float64   `json:"amount"`
	Method    string    `json:"method,omitempty"`
	Reference string    `json:"reference,omitempty"`
	PaidAt    time.Time `json:"paidAt,omitempty"`
}

func (s *InvoicesService) List(ctx context.Context, params url.Values) ([]Invoice, error) {
	payload, err := getJSON[struct {
		Invoices []Invoice `json:"invoices"`
	}](ctx, s.client, "/invoices", params)
	if err != nil {
		return nil, err
	}
	return payload.Invoices, nil
}

func (s *InvoicesService) Get(ctx context.Context, id string) (*Invoice, error) {
	payload, err := getJSON[struct {
		Invoice *Invoice `json:"invoice"`
	}](ctx, s.client, "/invoices/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return payload.Invoice, nil
}

func (s *InvoicesService) Create(ctx context.Context, invoice Invoice) (*Invoice, error) {
	payload, err := sendJSON[struct {
		Invoice *Invoice `json:"invoice"`
	}](ctx, s.client, http.MethodPost, "/invoices", invoice)
	if err != nil {
		return nil, err
	}
	return payload.Invoice, nil
}

func (s *InvoicesService) Update(ctx context.Context, id string, invoice Invoice) (*Invoice, error) {
	payload, err := sendJSON[struct {
		Invoice *Invoice `json:"invoice"`
	}](ctx, s.client, http.MethodPut, "/invoices/"+url.PathEscape(id), invoice)
	if err != nil {
		return nil, err
	}
	return payload.Invoice, nil
}

func (s *InvoicesService) Delete(ctx context.Context, id string) error {
	_, err := sendJSON[struct{}](ctx, s.client, http.MethodDelete, "/invoices/"+url.PathEscape(id), nil)
	return err
}

// RecordPayment applies a payment to an invoice and returns its new state.
func (s *InvoicesService) RecordPayment(ctx context.Context, id string, payment Payment) (*Invoice, error) {
	payload, err := sendJSON[struct {
		Invoice *Invoice `json:"invoice"`
	}](ctx, s.client, http.MethodPost, "/invoices/"+url.PathEscape(id)+"/payment", payment)
	if err != nil {
		return nil, err
	}
	return payload.Invoice, nil
}
