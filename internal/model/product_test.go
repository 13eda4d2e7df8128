package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_JSONOmitsUnsetFields(t *testing.T) {
	price := decimal.RequireFromString("9.99")
	category := "Tools"

	tests := []struct {
		name     string
		product  Product
		expected string
	}{
		{
			name:     "Name only",
			product:  Product{ID: 1, Name: "Widget"},
			expected: `{"id":1,"name":"Widget"}`,
		},
		{
			name:     "With price and category",
			product:  Product{ID: 2, Name: "Hammer", Price: &price, Category: &category},
			expected: `{"id":2,"name":"Hammer","price":"9.99","category":"Tools"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.product)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestProductCreate_AcceptsNumericAndStringPrice(t *testing.T) {
	for _, body := range []string{`{"name":"A","price":12.5}`, `{"name":"A","price":"12.50"}`} {
		var in ProductCreate
		require.NoError(t, json.Unmarshal([]byte(body), &in))
		require.NotNil(t, in.Price)
		assert.True(t, decimal.RequireFromString("12.5").Equal(*in.Price), body)
	}
}

func TestProductUpdate_IsEmpty(t *testing.T) {
	name := "x"

	assert.True(t, (&ProductUpdate{}).IsEmpty())
	assert.False(t, (&ProductUpdate{Name: &name}).IsEmpty())

	var fromJSON ProductUpdate
	require.NoError(t, json.Unmarshal([]byte(`{}`), &fromJSON))
	assert.True(t, fromJSON.IsEmpty())
}

func TestErrProductNotFound(t *testing.T) {
	wrapped := fmt.Errorf("get product: %w", ErrProductNotFound)

	assert.True(t, errors.Is(wrapped, ErrProductNotFound))
	assert.Equal(t, "Product not found", ErrProductNotFound.Error())
	assert.Equal(t, ErrCodeProductNotFound, ErrProductNotFound.Code)

	var domainErr *DomainError
	require.True(t, errors.As(wrapped, &domainErr))
	assert.Equal(t, ErrCodeProductNotFound, domainErr.Code)
}
