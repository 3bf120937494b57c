package encarte_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/encarte"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		price encarte.Price
		want  string
	}{
		{2399, "23.99"},
		{5, "0.05"},
		{199999, "1999.99"},
		{100, "1.00"},
		{-250, "-2.50"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.price.String())
		})
	}
}

func TestPrice_Valid(t *testing.T) {
	t.Parallel()

	assert.False(t, encarte.Price(0).Valid())
	assert.True(t, encarte.MinPrice.Valid())
	assert.True(t, encarte.MaxPrice.Valid())
	assert.False(t, (encarte.MaxPrice + 1).Valid())
	assert.False(t, encarte.Price(-1).Valid())
}

func TestPriceFromFloat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, encarte.Price(459), encarte.PriceFromFloat(4.59))
	assert.Equal(t, encarte.Price(1999), encarte.PriceFromFloat(19.99))
	assert.Equal(t, encarte.Price(1), encarte.PriceFromFloat(0.01))
	assert.InDelta(t, 23.99, encarte.Price(2399).Float64(), 1e-9)
}

func TestPrice_JSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(struct {
		Price encarte.Price `json:"price"`
	}{Price: 2399})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price": 23.99}`, string(b))

	var v struct {
		Price encarte.Price `json:"price"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"price": 4.5}`), &v))
	assert.Equal(t, encarte.Price(450), v.Price)
}
