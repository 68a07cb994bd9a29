package valueobject

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	GBP Currency = "GBP" // British Pound (default)
	USD Currency = "USD" // US Dollar
	EUR Currency = "EUR" // Euro
)

// DefaultCurrency is the default currency for the system
const DefaultCurrency = GBP

// Money is a value object for monetary amounts held as integer pence.
// It is immutable - all operations return new Money instances.
type Money struct {
	pence    int64
	currency Currency
}

// NewMoney creates a new Money with the specified amount in minor units
func NewMoney(pence int64, currency Currency) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{pence: pence, currency: currency}, nil
}

// NewMoneyGBP creates Money in GBP from integer pence
func NewMoneyGBP(pence int64) Money {
	return Money{pence: pence, currency: GBP}
}

// Pence returns the amount in minor units
func (m Money) Pence() int64 {
	return m.pence
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// Decimal returns the amount in major units as a decimal
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(m.pence).Div(decimal.NewFromInt(100))
}

// Add returns the sum of two Money values with the same currency
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("currency mismatch: %s != %s", m.currency, other.currency)
	}
	return Money{pence: m.pence + other.pence, currency: m.currency}, nil
}

// Mul returns the Money multiplied by an integer factor
func (m Money) Mul(factor int64) Money {
	return Money{pence: m.pence * factor, currency: m.currency}
}

// IsZero reports whether the amount is zero
func (m Money) IsZero() bool {
	return m.pence == 0
}

// IsNegative reports whether the amount is negative
func (m Money) IsNegative() bool {
	return m.pence < 0
}

// String renders the amount in major units with two decimal places.
// Integer pence leave the domain only through this formatting.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Value implements driver.Valuer, storing the amount as integer pence
func (m Money) Value() (driver.Value, error) {
	return m.pence, nil
}

// Scan implements sql.Scanner
func (m *Money) Scan(src interface{}) error {
	switch v := src.(type) {
	case int64:
		m.pence = v
	case nil:
		m.pence = 0
	default:
		return fmt.Errorf("cannot scan %T into Money", src)
	}
	if m.currency == "" {
		m.currency = DefaultCurrency
	}
	return nil
}
