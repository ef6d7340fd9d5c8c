package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressValidate(t *testing.T) {
	t.Run("complete address -> ok", func(t *testing.T) {
		assert.NoError(t, validAddress().Validate())
	})

	t.Run("each required field", func(t *testing.T) {
		cases := []struct {
			field string
			mut   func(*ShippingAddress)
		}{
			{"name", func(a *ShippingAddress) { a.Name = "" }},
			{"phone", func(a *ShippingAddress) { a.Phone = "  " }},
			{"street", func(a *ShippingAddress) { a.Street = "" }},
			{"city", func(a *ShippingAddress) { a.City = "" }},
			{"state", func(a *ShippingAddress) { a.State = "" }},
			{"zip", func(a *ShippingAddress) { a.Zip = "" }},
		}
		for _, tc := range cases {
			a := validAddress()
			tc.mut(&a)
			err := a.Validate()
			var fieldErr FieldError
			require.ErrorAs(t, err, &fieldErr, "field %s", tc.field)
			assert.Equal(t, tc.field, fieldErr.Field)
		}
	})

	t.Run("phone variants", func(t *testing.T) {
		bad := []string{"12345", "abcdefghij", "98765432101", "98765 4321", "+919876543210"}
		for _, phone := range bad {
			a := validAddress()
			a.Phone = phone
			assert.Error(t, a.Validate(), "phone %q", phone)
		}

		a := validAddress()
		a.Phone = "9876543210"
		assert.NoError(t, a.Validate())
	})
}

func TestNormalizeDefaultsCountry(t *testing.T) {
	a := ShippingAddress{Name: "  Asha  "}.Normalize()
	assert.Equal(t, "Asha", a.Name)
	assert.Equal(t, DefaultCountry, a.Country)

	b := ShippingAddress{Country: "Nepal"}.Normalize()
	assert.Equal(t, "Nepal", b.Country)
}
