package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	cartdomain "github.com/gymkart/storefront/internal/cart/domain"
	"github.com/gymkart/storefront/internal/checkout/domain"
	orderdomain "github.com/gymkart/storefront/internal/order/domain"
)

// Flow drives one checkout session over the cart store. All state movement
// goes through domain.Transition; this layer adds the order submission side
// effect, the auth precondition and the submission timeout.
type Flow struct {
	mu      sync.Mutex
	session domain.Session

	cart    Cart
	orders  OrderClient
	members MemberSession
	pricing domain.Pricing

	submitTimeout time.Duration
	log           *slog.Logger
}

func NewFlow(cart Cart, orders OrderClient, members MemberSession, pricing domain.Pricing, submitTimeout time.Duration) *Flow {
	if submitTimeout <= 0 {
		submitTimeout = 15 * time.Second
	}
	return &Flow{
		session:       domain.NewSession(),
		cart:          cart,
		orders:        orders,
		members:       members,
		pricing:       pricing,
		submitTimeout: submitTimeout,
		log:           slog.Default(),
	}
}

// Session returns the current session snapshot.
func (f *Flow) Session() domain.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

// Totals prices the current cart under the configured charges.
func (f *Flow) Totals() domain.Totals {
	return domain.ComputeTotals(f.cart.Get().Subtotal(), f.pricing)
}

func (f *Flow) apply(e domain.Event) (domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	next, err := domain.Transition(f.session, e)
	if err != nil {
		return f.session, err
	}
	f.session = next
	return next, nil
}

// Begin opens checkout over the current cart snapshot. Rejected while the
// cart is empty.
func (f *Flow) Begin() (domain.Session, error) {
	return f.apply(domain.Begin{ItemCount: f.cart.Get().ItemCount()})
}

// Back returns to the cart stage, dropping the in-progress form.
func (f *Flow) Back() (domain.Session, error) {
	return f.apply(domain.Back{})
}

func (f *Flow) SetAddress(addr domain.ShippingAddress) (domain.Session, error) {
	return f.apply(domain.SetAddress{Address: addr})
}

func (f *Flow) SetPaymentMethod(m domain.PaymentMethod) (domain.Session, error) {
	return f.apply(domain.SetPaymentMethod{Method: m})
}

func (f *Flow) SetNotes(notes string) (domain.Session, error) {
	return f.apply(domain.SetNotes{Notes: notes})
}

// Submit validates the form, checks the auth precondition, posts the order
// and settles the session. Any failure lands back in the address stage with
// the form intact and the cart untouched; only success clears the cart.
func (f *Flow) Submit(ctx context.Context) (domain.Session, error) {
	// Entering Submitting is what locks out a second submission.
	s, err := f.apply(domain.StartSubmit{})
	if err != nil {
		return s, err
	}

	snapshot := f.cart.Get()
	if len(snapshot.Items) == 0 {
		s, _ = f.apply(domain.SubmitFailed{})
		return s, domain.ErrEmptyCart
	}

	// Auth precondition, checked before any network traffic.
	token, err := f.members.Token(ctx)
	if err != nil {
		s, _ = f.apply(domain.SubmitFailed{})
		return s, err
	}
	memberID, err := f.members.MemberID(ctx)
	if err != nil {
		s, _ = f.apply(domain.SubmitFailed{})
		return s, err
	}

	req := buildOrderRequest(memberID, snapshot, s, f.pricing)

	// A hung backend must not wedge the session in Submitting forever.
	subCtx, cancel := context.WithTimeout(ctx, f.submitTimeout)
	defer cancel()

	conf, err := f.orders.CreateOrder(subCtx, token, req)
	if err != nil {
		s, _ = f.apply(domain.SubmitFailed{})
		f.log.Warn("order submission failed", slog.Any("err", err))
		return s, fmt.Errorf("submit order: %w", err)
	}

	orderID := conf.OrderID
	if orderID == "" {
		orderID = uuid.NewString()
	}

	f.cart.Clear(ctx)
	s, err = f.apply(domain.SubmitSucceeded{OrderID: orderID})
	if err != nil {
		return s, err
	}

	f.log.Info("order placed",
		slog.String("order_id", orderID),
		slog.Int64("total", req.TotalAmount))
	return s, nil
}

func buildOrderRequest(memberID string, cart cartdomain.Cart, s domain.Session, pricing domain.Pricing) orderdomain.CreateOrderRequest {
	products := make([]orderdomain.OrderProduct, 0, len(cart.Items))
	for _, it := range cart.Items {
		products = append(products, orderdomain.OrderProduct{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.UnitPrice,
			Quantity:  it.Quantity,
			Image:     it.ImageURL,
		})
	}

	totals := domain.ComputeTotals(cart.Subtotal(), pricing)
	addr := s.Address.Normalize()

	return orderdomain.CreateOrderRequest{
		MemberID:      memberID,
		Products:      products,
		TotalAmount:   totals.Total,
		PaymentMethod: string(s.PaymentMethod),
		Address: orderdomain.OrderAddress{
			Name:    addr.Name,
			Phone:   addr.Phone,
			Street:  addr.Street,
			City:    addr.City,
			State:   addr.State,
			Zip:     addr.Zip,
			Country: addr.Country,
		},
		Notes: s.Notes,
	}
}
