package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gymkart/storefront/internal/catalog/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products/p1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "p1", "name": "whey protein 1kg",
			"price": 249900, "currency": "INR",
			"category": "supplements", "stock": 12,
			"image_url": "https://cdn.example.com/p1.jpg"
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	p, err := c.Get(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, "whey protein 1kg", p.Name)
	assert.Equal(t, int64(249900), p.Price.Amount)
	assert.Equal(t, "INR", p.Price.Currency)
	assert.Equal(t, int32(12), p.Stock)
}

func TestGetProductNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	_, err := c.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, app.ErrNotFound))
}

func TestListProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "gloves", r.URL.Query().Get("search"))
		require.Equal(t, "20", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": "p2", "name": "lifting gloves", "price": 59900, "currency": "INR", "stock": 4}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	ps, err := c.List(context.Background(), "gloves", 20)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "lifting gloves", ps[0].Name)
}
