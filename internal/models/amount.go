package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Amount numeric offer value (percentage or fixed amount, 2 decimal places)
type Amount struct {
	decimal.Decimal
}

// NewAmountFromDecimal creates an amount from a decimal
func NewAmountFromDecimal(value decimal.Decimal) Amount {
	return Amount{Decimal: value.Round(2)}
}

// NewAmountFromInt creates an amount from an integer
func NewAmountFromInt(value int64) Amount {
	return Amount{Decimal: decimal.NewFromInt(value)}
}

// MarshalJSON renders a fixed 2-decimal string
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Decimal.Round(2).StringFixed(2))
}

// UnmarshalJSON parses an amount (string or number)
func (a *Amount) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		a.Decimal = d.Round(2)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	a.Decimal = decimal.NewFromFloat(f).Round(2)
	return nil
}

// Value implements driver.Valuer
func (a Amount) Value() (driver.Value, error) {
	return a.Decimal.Round(2).Value()
}

// Scan implements sql.Scanner
func (a *Amount) Scan(value interface{}) error {
	if err := a.Decimal.Scan(value); err != nil {
		return err
	}
	a.Decimal = a.Decimal.Round(2)
	return nil
}

// String returns the fixed 2-decimal format
func (a Amount) String() string {
	return a.Decimal.Round(2).StringFixed(2)
}
