package app

import (
	"context"

	"github.com/gymkart/storefront/internal/catalog/domain"
)

type ProductReader interface {
	Get(ctx context.Context, id string) (domain.Product, error)
	List(ctx context.Context, query string, limit int) ([]domain.Product, error)
}
