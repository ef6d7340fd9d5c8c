package domain

import (
	"fmt"
	"regexp"
	"strings"
)

const DefaultCountry = "India"

// phone must be exactly ten digits, no separators.
var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

type ShippingAddress struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// FieldError reports which address field failed validation, so the surface
// can attach the message to the right control.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Normalize trims whitespace and applies the country default.
func (a ShippingAddress) Normalize() ShippingAddress {
	a.Name = strings.TrimSpace(a.Name)
	a.Phone = strings.TrimSpace(a.Phone)
	a.Street = strings.TrimSpace(a.Street)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.Zip = strings.TrimSpace(a.Zip)
	a.Country = strings.TrimSpace(a.Country)
	if a.Country == "" {
		a.Country = DefaultCountry
	}
	return a
}

// Validate checks the normalized address. Every required field must be
// non-empty and the phone must match the ten digit pattern exactly.
func (a ShippingAddress) Validate() error {
	a = a.Normalize()

	required := []struct {
		field, value string
	}{
		{"name", a.Name},
		{"phone", a.Phone},
		{"street", a.Street},
		{"city", a.City},
		{"state", a.State},
		{"zip", a.Zip},
	}
	for _, r := range required {
		if r.value == "" {
			return FieldError{Field: r.field, Message: "is required"}
		}
	}

	if !phonePattern.MatchString(a.Phone) {
		return FieldError{Field: "phone", Message: "must be a 10-digit number"}
	}
	return nil
}
