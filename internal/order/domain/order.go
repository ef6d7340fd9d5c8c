package domain

import "time"

// Types here mirror the backend order-creation wire contract. The address is
// redeclared rather than imported from the checkout domain so the wire shape
// cannot drift when the checkout form does.

type OrderProduct struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int32  `json:"quantity"`
	Image     string `json:"image"`
}

type OrderAddress struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

type CreateOrderRequest struct {
	MemberID      string         `json:"member_id"`
	Products      []OrderProduct `json:"products"`
	TotalAmount   int64          `json:"total_amount"`
	PaymentMethod string         `json:"payment_method"`
	Address       OrderAddress   `json:"address"`
	Notes         string         `json:"notes,omitempty"`
}

// Confirmation is what the backend returns on success. OrderID may be empty
// if the server omits it; callers fall back to a locally generated id.
type Confirmation struct {
	OrderID   string
	Status    string
	CreatedAt time.Time
}
