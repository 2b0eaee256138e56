package domain

import (
	"fmt"
	"strconv"
)

// Amount is a currency value kept at full precision and rendered with two
// decimals.
type Amount float64

// String renders the amount as fixed-point with two decimals.
func (a Amount) String() string {
	return strconv.FormatFloat(float64(a), 'f', 2, 64)
}

// Rounded returns the value exactly as it is displayed.
func (a Amount) Rounded() Amount {
	v, err := strconv.ParseFloat(a.String(), 64)
	if err != nil {
		return a
	}
	return Amount(v)
}

// MarshalJSON encodes the amount as a two-decimal string, e.g. "1155.00".
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(a.String())), nil
}

// UnmarshalJSON accepts both the string form and a bare JSON number.
func (a *Amount) UnmarshalJSON(b []byte) error {
	s := string(b)
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", string(b), err)
	}
	*a = Amount(v)
	return nil
}
