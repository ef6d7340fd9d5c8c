// Package rest implements the catalog reader against the backend REST API.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gymkart/storefront/internal/catalog/app"
	"github.com/gymkart/storefront/internal/catalog/domain"
)

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

type productDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	Stock       int32  `json:"stock"`
}

func (d productDTO) toDomain() domain.Product {
	return domain.Product{
		ID:          d.ID,
		Name:        d.Name,
		Price:       domain.Money{Currency: d.Currency, Amount: d.Price},
		Description: d.Description,
		Category:    d.Category,
		ImageURL:    d.ImageURL,
		Stock:       d.Stock,
	}
}

func (c *Client) Get(ctx context.Context, id string) (domain.Product, error) {
	u := c.baseURL + "/api/products/" + url.PathEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.Product{}, fmt.Errorf("build product request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return domain.Product{}, app.ErrNotFound
	}
	if res.StatusCode != http.StatusOK {
		return domain.Product{}, fmt.Errorf("get product %s: unexpected status %d", id, res.StatusCode)
	}

	var dto productDTO
	if err := json.NewDecoder(res.Body).Decode(&dto); err != nil {
		return domain.Product{}, fmt.Errorf("decode product %s: %w", id, err)
	}
	return dto.toDomain(), nil
}

func (c *Client) List(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	q := url.Values{}
	if query != "" {
		q.Set("search", query)
	}
	q.Set("limit", strconv.Itoa(limit))
	u := c.baseURL + "/api/products?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build products request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list products: unexpected status %d", res.StatusCode)
	}

	var dtos []productDTO
	if err := json.NewDecoder(res.Body).Decode(&dtos); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	products := make([]domain.Product, 0, len(dtos))
	for _, dto := range dtos {
		products = append(products, dto.toDomain())
	}
	return products, nil
}
