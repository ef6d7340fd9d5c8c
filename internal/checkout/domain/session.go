// Package domain holds the checkout session state machine: a tagged event
// union and a pure transition function over an immutable session value.
// Nothing here touches the cart store, storage or the network; the app layer
// wires those side effects around successful transitions.
package domain

import (
	"errors"
	"fmt"
)

type Stage string

const (
	StageCart       Stage = "CART"
	StageAddress    Stage = "ADDRESS_CAPTURE"
	StageSubmitting Stage = "SUBMITTING"
	StageConfirmed  Stage = "CONFIRMED"
)

type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentUPI    PaymentMethod = "upi"
	PaymentCOD    PaymentMethod = "cod"
	PaymentWallet PaymentMethod = "wallet"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentUPI, PaymentCOD, PaymentWallet:
		return true
	}
	return false
}

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidTransition  = errors.New("invalid checkout transition")
	ErrPaymentMethod      = errors.New("payment method is not supported")
	ErrSubmissionInFlight = errors.New("order submission already in progress")
)

// Session is one checkout attempt. It is ephemeral: a new session always
// starts at StageCart and nothing here is persisted across restarts.
type Session struct {
	Stage         Stage           `json:"stage"`
	Address       ShippingAddress `json:"address"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Notes         string          `json:"notes"`
	OrderID       string          `json:"order_id"`
}

func NewSession() Session {
	return Session{Stage: StageCart}
}

// Event is the closed set of inputs the session reacts to.
type Event interface{ isEvent() }

// Begin moves Cart -> AddressCapture. ItemCount is the cart snapshot size at
// the moment the user opened checkout; an empty cart rejects the move.
type Begin struct{ ItemCount int32 }

// Back returns AddressCapture -> Cart, dropping the in-progress address and
// payment selection. Cart contents are untouched.
type Back struct{}

// SetAddress and SetPaymentMethod edit the capture form in place.
type SetAddress struct{ Address ShippingAddress }

type SetPaymentMethod struct{ Method PaymentMethod }

type SetNotes struct{ Notes string }

// StartSubmit moves AddressCapture -> Submitting once the address and
// payment selection validate.
type StartSubmit struct{}

// SubmitSucceeded and SubmitFailed are the only exits from Submitting.
type SubmitSucceeded struct{ OrderID string }

type SubmitFailed struct{}

func (Begin) isEvent()            {}
func (Back) isEvent()             {}
func (SetAddress) isEvent()       {}
func (SetPaymentMethod) isEvent() {}
func (SetNotes) isEvent()         {}
func (StartSubmit) isEvent()      {}
func (SubmitSucceeded) isEvent()  {}
func (SubmitFailed) isEvent()     {}

// Transition applies one event to the session and returns the next state.
// On error the returned session equals the input: rejected events never move
// the machine. While Submitting only the submission's own completion events
// are accepted, which is what blocks double submits.
func Transition(s Session, e Event) (Session, error) {
	switch ev := e.(type) {
	case Begin:
		if s.Stage != StageCart && s.Stage != StageConfirmed {
			return s, rejected(s.Stage, e)
		}
		if ev.ItemCount <= 0 {
			return s, ErrEmptyCart
		}
		// Re-entering after a confirmed order starts a fresh attempt.
		next := NewSession()
		next.Stage = StageAddress
		return next, nil

	case Back:
		if s.Stage != StageAddress {
			return s, rejected(s.Stage, e)
		}
		return NewSession(), nil

	case SetAddress:
		if s.Stage != StageAddress {
			return s, rejected(s.Stage, e)
		}
		s.Address = ev.Address.Normalize()
		return s, nil

	case SetPaymentMethod:
		if s.Stage != StageAddress {
			return s, rejected(s.Stage, e)
		}
		if !ev.Method.Valid() {
			return s, fmt.Errorf("%w: %q", ErrPaymentMethod, ev.Method)
		}
		s.PaymentMethod = ev.Method
		return s, nil

	case SetNotes:
		if s.Stage != StageAddress {
			return s, rejected(s.Stage, e)
		}
		s.Notes = ev.Notes
		return s, nil

	case StartSubmit:
		if s.Stage == StageSubmitting {
			return s, ErrSubmissionInFlight
		}
		if s.Stage != StageAddress {
			return s, rejected(s.Stage, e)
		}
		if err := s.Address.Validate(); err != nil {
			return s, err
		}
		if !s.PaymentMethod.Valid() {
			return s, fmt.Errorf("%w: %q", ErrPaymentMethod, s.PaymentMethod)
		}
		s.Stage = StageSubmitting
		return s, nil

	case SubmitSucceeded:
		if s.Stage != StageSubmitting {
			return s, rejected(s.Stage, e)
		}
		s.Stage = StageConfirmed
		s.OrderID = ev.OrderID
		return s, nil

	case SubmitFailed:
		if s.Stage != StageSubmitting {
			return s, rejected(s.Stage, e)
		}
		// Return to the form with everything the user entered intact.
		s.Stage = StageAddress
		return s, nil

	default:
		return s, fmt.Errorf("%w: unknown event %T", ErrInvalidTransition, e)
	}
}

func rejected(stage Stage, e Event) error {
	return fmt.Errorf("%w: %T in stage %s", ErrInvalidTransition, e, stage)
}
