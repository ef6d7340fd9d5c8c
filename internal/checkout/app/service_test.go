package app

import (
	"context"
	"errors"
	"testing"
	"time"

	cartdomain "github.com/gymkart/storefront/internal/cart/domain"
	"github.com/gymkart/storefront/internal/checkout/domain"
	orderdomain "github.com/gymkart/storefront/internal/order/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCart struct {
	cart    cartdomain.Cart
	cleared bool
}

func (f *fakeCart) Get() cartdomain.Cart { return f.cart }

func (f *fakeCart) Clear(context.Context) {
	f.cart = cartdomain.Cart{}
	f.cleared = true
}

type fakeMembers struct {
	token    string
	memberID string
	err      error
}

func (f fakeMembers) Token(context.Context) (string, error) {
	return f.token, f.err
}

func (f fakeMembers) MemberID(context.Context) (string, error) {
	return f.memberID, f.err
}

type fakeOrders struct {
	req     orderdomain.CreateOrderRequest
	token   string
	conf    orderdomain.Confirmation
	err     error
	calls   int
	started chan struct{}
	release chan struct{}
}

func (f *fakeOrders) CreateOrder(ctx context.Context, token string, req orderdomain.CreateOrderRequest) (orderdomain.Confirmation, error) {
	f.calls++
	f.token = token
	f.req = req
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return orderdomain.Confirmation{}, ctx.Err()
		}
	}
	return f.conf, f.err
}

func oneItemCart() cartdomain.Cart {
	return cartdomain.Cart{Items: []cartdomain.LineItem{{
		ProductID: "P1",
		Name:      "whey protein 1kg",
		UnitPrice: 100,
		Quantity:  2,
		ImageURL:  "https://cdn.example.com/p1.jpg",
	}}}
}

func testPricing() domain.Pricing {
	return domain.Pricing{ShippingFee: 50, TaxRate: 0.05}
}

func readyFlow(t *testing.T, cart *fakeCart, orders *fakeOrders, members MemberSession) *Flow {
	t.Helper()
	f := NewFlow(cart, orders, members, testPricing(), time.Second)

	_, err := f.Begin()
	require.NoError(t, err)
	_, err = f.SetAddress(domain.ShippingAddress{
		Name: "Asha Rao", Phone: "9876543210", Street: "14 MG Road",
		City: "Bengaluru", State: "Karnataka", Zip: "560001",
	})
	require.NoError(t, err)
	_, err = f.SetPaymentMethod(domain.PaymentUPI)
	require.NoError(t, err)
	return f
}

func TestBeginRejectsEmptyCart(t *testing.T) {
	f := NewFlow(&fakeCart{}, &fakeOrders{}, fakeMembers{}, testPricing(), time.Second)

	s, err := f.Begin()
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Equal(t, domain.StageCart, s.Stage)
}

func TestSubmitSuccess(t *testing.T) {
	cart := &fakeCart{cart: oneItemCart()}
	orders := &fakeOrders{conf: orderdomain.Confirmation{OrderID: "ord-9"}}
	f := readyFlow(t, cart, orders, fakeMembers{token: "tok-1", memberID: "mem-42"})

	s, err := f.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.StageConfirmed, s.Stage)
	assert.Equal(t, "ord-9", s.OrderID)
	assert.True(t, cart.cleared)
	assert.Empty(t, cart.cart.Items)

	assert.Equal(t, "tok-1", orders.token)
	assert.Equal(t, "mem-42", orders.req.MemberID)
	assert.Equal(t, "upi", orders.req.PaymentMethod)
	// subtotal 200 + shipping 50 + 5% tax 10
	assert.Equal(t, int64(260), orders.req.TotalAmount)
	require.Len(t, orders.req.Products, 1)
	assert.Equal(t, "P1", orders.req.Products[0].ProductID)
	assert.Equal(t, int32(2), orders.req.Products[0].Quantity)
	assert.Equal(t, "India", orders.req.Address.Country)
}

func TestSubmitFallsBackToLocalOrderID(t *testing.T) {
	cart := &fakeCart{cart: oneItemCart()}
	orders := &fakeOrders{} // server omits the id
	f := readyFlow(t, cart, orders, fakeMembers{token: "tok-1", memberID: "mem-42"})

	s, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StageConfirmed, s.Stage)
	assert.NotEmpty(t, s.OrderID)
}

func TestSubmitNetworkFailureKeepsCartAndForm(t *testing.T) {
	cart := &fakeCart{cart: oneItemCart()}
	orders := &fakeOrders{err: errors.New("connection reset")}
	f := readyFlow(t, cart, orders, fakeMembers{token: "tok-1", memberID: "mem-42"})

	s, err := f.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, domain.StageAddress, s.Stage)
	assert.Equal(t, "9876543210", s.Address.Phone)
	assert.Equal(t, domain.PaymentUPI, s.PaymentMethod)
	assert.False(t, cart.cleared)
	require.Len(t, cart.cart.Items, 1)
}

func TestSubmitWithoutTokenAbortsBeforeNetwork(t *testing.T) {
	cart := &fakeCart{cart: oneItemCart()}
	orders := &fakeOrders{}
	f := readyFlow(t, cart, orders, fakeMembers{err: errors.New("not logged in")})

	s, err := f.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, 0, orders.calls)
	assert.Equal(t, domain.StageAddress, s.Stage)
	assert.False(t, cart.cleared)
}

func TestSubmitTimesOut(t *testing.T) {
	cart := &fakeCart{cart: oneItemCart()}
	orders := &fakeOrders{release: make(chan struct{})} // never released
	f := readyFlow(t, cart, orders, fakeMembers{token: "tok-1", memberID: "mem-42"})
	f.submitTimeout = 20 * time.Millisecond

	s, err := f.Submit(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, domain.StageAddress, s.Stage)
	assert.False(t, cart.cleared)
}

func TestSubmitBlocksReentry(t *testing.T) {
	cart := &fakeCart{cart: oneItemCart()}
	orders := &fakeOrders{
		conf:    orderdomain.Confirmation{OrderID: "ord-1"},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	f := readyFlow(t, cart, orders, fakeMembers{token: "tok-1", memberID: "mem-42"})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = f.Submit(context.Background())
	}()

	<-orders.started
	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrSubmissionInFlight)

	close(orders.release)
	<-done

	assert.Equal(t, domain.StageConfirmed, f.Session().Stage)
	assert.Equal(t, 1, orders.calls)
}

func TestBackFromAddress(t *testing.T) {
	cart := &fakeCart{cart: oneItemCart()}
	f := readyFlow(t, cart, &fakeOrders{}, fakeMembers{})

	s, err := f.Back()
	require.NoError(t, err)
	assert.Equal(t, domain.StageCart, s.Stage)
	// Back never touches the cart itself.
	require.Len(t, cart.cart.Items, 1)
}

func TestTotals(t *testing.T) {
	f := NewFlow(&fakeCart{cart: oneItemCart()}, &fakeOrders{}, fakeMembers{}, testPricing(), time.Second)
	assert.Equal(t, domain.Totals{Subtotal: 200, Shipping: 50, Tax: 10, Total: 260}, f.Totals())
}
