package app

import (
	"context"

	cartdomain "github.com/gymkart/storefront/internal/cart/domain"
	orderdomain "github.com/gymkart/storefront/internal/order/domain"
)

// Cart is the slice of the cart store checkout needs: the current snapshot,
// and clearing after a placed order. Checkout never mutates the cart any
// other way.
type Cart interface {
	Get() cartdomain.Cart
	Clear(ctx context.Context)
}

// MemberSession answers whether there is a usable bearer token before any
// network call is made.
type MemberSession interface {
	Token(ctx context.Context) (string, error)
	MemberID(ctx context.Context) (string, error)
}

// OrderClient is the backend order-creation endpoint.
type OrderClient interface {
	CreateOrder(ctx context.Context, token string, req orderdomain.CreateOrderRequest) (orderdomain.Confirmation, error)
}
