package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	cartapp "github.com/gymkart/storefront/internal/cart/app"
	cartdomain "github.com/gymkart/storefront/internal/cart/domain"
	catalogapp "github.com/gymkart/storefront/internal/catalog/app"
	checkoutapp "github.com/gymkart/storefront/internal/checkout/app"
	checkoutdomain "github.com/gymkart/storefront/internal/checkout/domain"
	"github.com/gymkart/storefront/internal/session"
)

type handler struct {
	cart    *cartapp.Store
	catalog *catalogapp.Service
	flow    *checkoutapp.Flow
	members *session.Manager
	log     *slog.Logger
}

func newHandler(cart *cartapp.Store, catalog *catalogapp.Service, flow *checkoutapp.Flow, members *session.Manager, log *slog.Logger) http.Handler {
	h := &handler{cart: cart, catalog: catalog, flow: flow, members: members, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	mux.HandleFunc("GET /api/products", h.listProducts)
	mux.HandleFunc("GET /api/products/{id}", h.getProduct)

	mux.HandleFunc("GET /cart", h.getCart)
	mux.HandleFunc("DELETE /cart", h.clearCart)
	mux.HandleFunc("POST /cart/items", h.addToCart)
	mux.HandleFunc("PUT /cart/items/{id}", h.updateQuantity)
	mux.HandleFunc("DELETE /cart/items/{id}", h.removeFromCart)

	mux.HandleFunc("POST /session", h.login)
	mux.HandleFunc("DELETE /session", h.logout)

	mux.HandleFunc("GET /checkout", h.getCheckout)
	mux.HandleFunc("POST /checkout/start", h.startCheckout)
	mux.HandleFunc("POST /checkout/back", h.backToCart)
	mux.HandleFunc("PUT /checkout/address", h.setAddress)
	mux.HandleFunc("POST /checkout/submit", h.submit)

	return mux
}

type cartView struct {
	Items     []cartdomain.LineItem `json:"items"`
	ItemCount int32                 `json:"item_count"`
	Subtotal  int64                 `json:"subtotal"`
}

func viewOf(c cartdomain.Cart) cartView {
	items := c.Items
	if items == nil {
		items = []cartdomain.LineItem{}
	}
	return cartView{Items: items, ItemCount: c.ItemCount(), Subtotal: c.Subtotal()}
}

func (h *handler) getCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, viewOf(h.cart.Get()))
}

func (h *handler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear(r.Context())
	writeJSON(w, http.StatusOK, viewOf(h.cart.Get()))
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

func (h *handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.ProductID) == "" || req.Quantity <= 0 {
		writeErrorMessage(w, http.StatusBadRequest, "BAD_REQUEST", "product_id and a positive quantity are required")
		return
	}

	p, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		writeError(w, err)
		return
	}

	// The stock ceiling lives here, not in the store: the store accepts any
	// positive quantity, the surface refuses to ask for more than is known
	// to exist.
	existing := int32(0)
	if line, ok := h.cart.Get().Line(p.ID); ok {
		existing = line.Quantity
	}
	if existing+req.Quantity > p.Stock {
		writeErrorMessage(w, http.StatusUnprocessableEntity, "OUT_OF_STOCK", "only "+itoa(p.Stock)+" left in stock")
		return
	}

	updated := h.cart.Add(r.Context(), cartdomain.LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price.Amount,
		Quantity:  req.Quantity,
		ImageURL:  p.ImageURL,
		Snapshot: cartdomain.ProductSnapshot{
			Stock:    p.Stock,
			Category: p.Category,
			ImageURL: p.ImageURL,
		},
	})

	msg := "added to cart"
	if updated {
		msg = "cart quantity updated"
	}
	writeJSON(w, http.StatusOK, struct {
		Message string   `json:"message"`
		Cart    cartView `json:"cart"`
	}{Message: msg, Cart: viewOf(h.cart.Get())})
}

type updateQuantityRequest struct {
	Quantity int32 `json:"quantity"`
}

func (h *handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		return
	}

	if line, ok := h.cart.Get().Line(id); ok && req.Quantity > line.Snapshot.Stock {
		writeErrorMessage(w, http.StatusUnprocessableEntity, "OUT_OF_STOCK", "only "+itoa(line.Snapshot.Stock)+" left in stock")
		return
	}

	h.cart.SetQuantity(r.Context(), id, req.Quantity)
	writeJSON(w, http.StatusOK, viewOf(h.cart.Get()))
}

func (h *handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Remove(r.Context(), r.PathValue("id"))
	writeJSON(w, http.StatusOK, viewOf(h.cart.Get()))
}

func (h *handler) listProducts(w http.ResponseWriter, r *http.Request) {
	limit := 20
	products, err := h.catalog.ListProducts(r.Context(), r.URL.Query().Get("search"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type loginRequest struct {
	Token string `json:"token"`
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		return
	}
	if err := h.members.Login(r.Context(), req.Token); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.members.Logout(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type checkoutView struct {
	Session checkoutdomain.Session `json:"session"`
	Totals  checkoutdomain.Totals  `json:"totals"`
}

func (h *handler) checkoutView() checkoutView {
	return checkoutView{Session: h.flow.Session(), Totals: h.flow.Totals()}
}

func (h *handler) getCheckout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.checkoutView())
}

func (h *handler) startCheckout(w http.ResponseWriter, r *http.Request) {
	if _, err := h.flow.Begin(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.checkoutView())
}

func (h *handler) backToCart(w http.ResponseWriter, r *http.Request) {
	if _, err := h.flow.Back(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.checkoutView())
}

type addressRequest struct {
	Address       checkoutdomain.ShippingAddress `json:"address"`
	PaymentMethod string                         `json:"payment_method"`
	Notes         string                         `json:"notes"`
}

func (h *handler) setAddress(w http.ResponseWriter, r *http.Request) {
	var req addressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		return
	}

	if _, err := h.flow.SetAddress(req.Address); err != nil {
		writeError(w, err)
		return
	}
	if req.PaymentMethod != "" {
		if _, err := h.flow.SetPaymentMethod(checkoutdomain.PaymentMethod(req.PaymentMethod)); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.Notes != "" {
		if _, err := h.flow.SetNotes(req.Notes); err != nil {
			writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, h.checkoutView())
}

func (h *handler) submit(w http.ResponseWriter, r *http.Request) {
	s, err := h.flow.Submit(r.Context())
	if err != nil {
		h.log.Warn("checkout submit rejected", slog.Any("err", err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		OrderID string                 `json:"order_id"`
		Session checkoutdomain.Session `json:"session"`
	}{OrderID: s.OrderID, Session: s})
}

func itoa(n int32) string {
	return strconv.Itoa(int(n))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
