package main

import (
	"context"
	"errors"
	"net/http"

	catalogapp "github.com/gymkart/storefront/internal/catalog/app"
	checkoutdomain "github.com/gymkart/storefront/internal/checkout/domain"
	orderrest "github.com/gymkart/storefront/internal/order/infra/rest"
	"github.com/gymkart/storefront/internal/session"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// httpStatusFromError maps domain errors to transport status codes. All
// checkout errors are recoverable; nothing here is fatal to the client.
func httpStatusFromError(err error) (int, string, string) {
	var fieldErr checkoutdomain.FieldError
	var srvErr *orderrest.ServerError

	switch {
	case errors.As(err, &fieldErr):
		return http.StatusUnprocessableEntity, "VALIDATION", fieldErr.Error()
	case errors.Is(err, checkoutdomain.ErrEmptyCart):
		return http.StatusUnprocessableEntity, "EMPTY_CART", "cart is empty"
	case errors.Is(err, checkoutdomain.ErrPaymentMethod):
		return http.StatusUnprocessableEntity, "VALIDATION", "select a payment method"
	case errors.Is(err, checkoutdomain.ErrSubmissionInFlight):
		return http.StatusConflict, "SUBMITTING", "order submission already in progress"
	case errors.Is(err, checkoutdomain.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_STAGE", err.Error()
	case errors.Is(err, session.ErrNotAuthenticated),
		errors.Is(err, session.ErrSessionExpired),
		errors.Is(err, orderrest.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHENTICATED", "log in and try again"
	case errors.Is(err, catalogapp.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "product not found"
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return http.StatusBadRequest, "BAD_REQUEST", "invalid input"
	case errors.As(err, &srvErr), errors.Is(err, context.DeadlineExceeded):
		return http.StatusBadGateway, "UPSTREAM", "order could not be placed, try again"
	default:
		return http.StatusInternalServerError, "INTERNAL", "something went wrong"
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, code, msg := httpStatusFromError(err)

	body := errorBody{Code: code, Message: msg}
	var fieldErr checkoutdomain.FieldError
	if errors.As(err, &fieldErr) {
		body.Field = fieldErr.Field
		body.Message = fieldErr.Message
	}

	writeJSON(w, status, struct {
		Error errorBody `json:"error"`
	}{Error: body})
}

func writeErrorMessage(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, struct {
		Error errorBody `json:"error"`
	}{Error: errorBody{Code: code, Message: msg}})
}
