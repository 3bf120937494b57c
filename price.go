package encarte

import (
	"fmt"
	"math"
	"strconv"
)

// Price is a monetary amount in cents.
type Price int64

// Valid price bounds: 0.01 to 9999.99.
const (
	MinPrice Price = 1
	MaxPrice Price = 999999
)

// PriceFromFloat converts a decimal amount to cents, rounding half away from zero.
func PriceFromFloat(f float64) Price {
	return Price(math.Round(f * 100))
}

// Valid reports whether p is within [MinPrice, MaxPrice].
func (p Price) Valid() bool {
	return p >= MinPrice && p <= MaxPrice
}

// Float64 returns the amount as a decimal number.
func (p Price) Float64() float64 {
	return float64(p) / 100
}

// String formats the price with two decimals, e.g. "23.99".
func (p Price) String() string {
	sign := ""
	if p < 0 {
		sign = "-"
		p = -p
	}
	return fmt.Sprintf("%s%d.%02d", sign, p/100, p%100)
}

// MarshalJSON encodes the price as a number with two decimals.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalJSON decodes a decimal number into cents.
func (p *Price) UnmarshalJSON(b []byte) error {
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("invalid price %s: %w", b, err)
	}
	*p = PriceFromFloat(f)
	return nil
}
