package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePrice(t *testing.T) {
	testCases := []struct {
		name    string
		price   int
		wantErr bool
	}{
		{name: "lower bound is accepted", price: 1},
		{name: "upper bound is accepted", price: 30},
		{name: "value inside range is accepted", price: 15},
		{name: "zero is rejected", price: 0, wantErr: true},
		{name: "just above upper bound is rejected", price: 31, wantErr: true},
		{name: "negative is rejected", price: -5, wantErr: true},
		{name: "far above upper bound is rejected", price: 50, wantErr: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrice(tt.price)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRestaurantPizzaValidate(t *testing.T) {
	t.Run("valid row passes", func(t *testing.T) {
		rp := RestaurantPizza{Price: 5, PizzaID: 1, RestaurantID: 1}
		assert.NoError(t, rp.Validate())
	})

	t.Run("missing pizza id fails", func(t *testing.T) {
		rp := RestaurantPizza{Price: 5, RestaurantID: 1}
		assert.ErrorIs(t, rp.Validate(), ErrValidation)
	})

	t.Run("missing restaurant id fails", func(t *testing.T) {
		rp := RestaurantPizza{Price: 5, PizzaID: 1}
		assert.ErrorIs(t, rp.Validate(), ErrValidation)
	})

	t.Run("hook rejects out of range price", func(t *testing.T) {
		rp := RestaurantPizza{Price: 31, PizzaID: 1, RestaurantID: 1}
		assert.ErrorIs(t, rp.BeforeSave(nil), ErrValidation)
	})
}

func TestNewValidationErrors(t *testing.T) {
	assert.Equal(t, []string{"validation errors"}, NewValidationErrors().Errors)
	assert.Equal(t, []string{"a", "b"}, NewValidationErrors("a", "b").Errors)
}
