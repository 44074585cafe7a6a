package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kmurithi/ministore/internal/models"
)

// Client implements Store against a REST-ish JSON API:
// GET/POST /orders, GET/POST /expenses, GET /products, PUT /products/{id}.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a store client. A nil http.Client falls back to
// http.DefaultClient; production callers inject one with a timeout.
func NewClient(baseURL string, client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// GetProducts fetches all products. An absent collection comes back empty,
// not as an error.
func (c *Client) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.getJSON(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetOrders fetches all recorded orders.
func (c *Client) GetOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.getJSON(ctx, "/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetExpenses fetches all recorded expenses.
func (c *Client) GetExpenses(ctx context.Context) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := c.getJSON(ctx, "/expenses", &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// PostOrder persists an order and returns the record the store echoed back.
func (c *Client) PostOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	var saved models.Order
	if err := c.postJSON(ctx, "/orders", order, &saved); err != nil {
		return nil, err
	}
	if saved.ID == "" {
		return nil, ErrNotPersisted
	}
	return &saved, nil
}

// PostExpense persists an expense and returns the record the store echoed back.
func (c *Client) PostExpense(ctx context.Context, expense models.Expense) (*models.Expense, error) {
	var saved models.Expense
	if err := c.postJSON(ctx, "/expenses", expense, &saved); err != nil {
		return nil, err
	}
	if saved.ID == "" {
		return nil, ErrNotPersisted
	}
	return &saved, nil
}

// PutProduct persists updated stock counters for a product.
func (c *Client) PutProduct(ctx context.Context, product models.Product) error {
	body, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to encode product: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/products/"+product.ID, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotPersisted, err)
	}
	defer drain(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: store returned status %d", ErrNotPersisted, resp.StatusCode)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer drain(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("store returned status %d for %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotPersisted, err)
	}
	defer drain(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: store returned status %d for %s", ErrNotPersisted, resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: undecodable echo from %s: %v", ErrNotPersisted, path, err)
	}
	return nil
}

// drain reads the body to completion so the connection can be reused.
func drain(body io.ReadCloser) {
	io.Copy(io.Discard, body)
	body.Close()
}
