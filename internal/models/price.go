package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Price limits, matching the NUMERIC(5,2) column.
const (
	PriceMaxDigits     = 5
	PriceDecimalPlaces = 2
)

var (
	ErrPriceInvalid      = errors.New("A valid number is required.")
	ErrPriceTooManyPlace = errors.New("Ensure that there are no more than 2 decimal places.")
	ErrPriceTooManyWhole = errors.New("Ensure that there are no more than 3 digits before the decimal point.")
)

var priceContext = apd.BaseContext.WithPrecision(16)

// Price is a fixed-point amount with two decimal places. It is serialized as a
// decimal string ("5.50") and accepts either a JSON string or a JSON number.
type Price struct {
	d apd.Decimal
}

// ParsePrice parses a decimal literal.
func ParsePrice(s string) (Price, error) {
	var p Price
	if _, _, err := p.d.SetString(strings.TrimSpace(s)); err != nil {
		return Price{}, ErrPriceInvalid
	}
	if p.d.Form != apd.Finite {
		return Price{}, ErrPriceInvalid
	}
	return p, nil
}

// MustPrice is ParsePrice that panics, for constants and tests.
func MustPrice(s string) Price {
	p, err := ParsePrice(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Validate checks the value fits NUMERIC(5,2).
func (p Price) Validate() error {
	if p.d.Form != apd.Finite {
		return ErrPriceInvalid
	}
	var r apd.Decimal
	r.Reduce(&p.d)

	places := int64(0)
	if r.Exponent < 0 {
		places = int64(-r.Exponent)
	}
	whole := r.NumDigits() + int64(r.Exponent)
	if r.IsZero() || whole < 0 {
		whole = 0
	}
	if places > PriceDecimalPlaces {
		return ErrPriceTooManyPlace
	}
	if whole > PriceMaxDigits-PriceDecimalPlaces {
		return ErrPriceTooManyWhole
	}
	return nil
}

// String renders the price with exactly two decimal places.
func (p Price) String() string {
	var q apd.Decimal
	if _, err := priceContext.Quantize(&q, &p.d, -PriceDecimalPlaces); err != nil {
		return p.d.Text('f')
	}
	return q.Text('f')
}

// Equal reports whether both prices denote the same amount.
func (p Price) Equal(o Price) bool {
	return p.d.Cmp(&o.d) == 0
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return ErrPriceInvalid
	}
	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return ErrPriceInvalid
		}
	}
	parsed, err := ParsePrice(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Value implements driver.Valuer.
func (p Price) Value() (driver.Value, error) {
	return p.String(), nil
}

// Scan implements sql.Scanner.
func (p *Price) Scan(src any) error {
	return p.d.Scan(src)
}
