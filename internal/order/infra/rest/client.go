// Package rest implements the order submission client against the backend
// REST API. The backend is an opaque collaborator: one authenticated POST,
// one response carrying the order id.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gymkart/storefront/internal/order/domain"
)

var ErrUnauthorized = errors.New("order submission unauthorized")

// ServerError is any non-2xx response other than auth failures.
type ServerError struct {
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("order submission failed: status %d", e.Status)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

type confirmationDTO struct {
	OrderID   string    `json:"order_id"`
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateOrder posts the order with a bearer token. An idempotency key is
// attached so a retried submission cannot create a second order server-side.
func (c *Client) CreateOrder(ctx context.Context, token string, req domain.CreateOrderRequest) (domain.Confirmation, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return domain.Confirmation{}, fmt.Errorf("encode order: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders", bytes.NewReader(body))
	if err != nil {
		return domain.Confirmation{}, fmt.Errorf("build order request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Idempotency-Key", uuid.NewString())

	res, err := c.http.Do(httpReq)
	if err != nil {
		return domain.Confirmation{}, fmt.Errorf("post order: %w", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return domain.Confirmation{}, ErrUnauthorized
	case res.StatusCode < 200 || res.StatusCode > 299:
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return domain.Confirmation{}, &ServerError{Status: res.StatusCode, Body: string(raw)}
	}

	var dto confirmationDTO
	if err := json.NewDecoder(res.Body).Decode(&dto); err != nil {
		return domain.Confirmation{}, fmt.Errorf("decode order response: %w", err)
	}

	id := dto.OrderID
	if id == "" {
		id = dto.ID
	}
	return domain.Confirmation{
		OrderID:   id,
		Status:    dto.Status,
		CreatedAt: dto.CreatedAt,
	}, nil
}
