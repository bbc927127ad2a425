// Package money represents Lightning amounts as signed satoshis, the unit
// the LnBot API speaks everywhere.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount in satoshis. It is signed because ledger
// entries (debits) can be negative.
type Money int64

const satsPerBtc = 1e8

// ErrFractionalSats is returned when a BTC amount does not land on a whole
// number of satoshis.
var ErrFractionalSats = errors.New("amount is not a whole number of satoshis")

// NewFromBtc converts a BTC-denominated amount to satoshis.
func NewFromBtc(amount decimal.Decimal) (Money, error) {
	sats := amount.Mul(decimal.NewFromInt(satsPerBtc))
	if !sats.IsInteger() {
		return 0, ErrFractionalSats
	}

	return Money(sats.IntPart()), nil
}

// ToBtc returns the amount denominated in BTC.
func (m Money) ToBtc() decimal.Decimal {
	return decimal.NewFromInt(int64(m)).Div(decimal.NewFromInt(satsPerBtc))
}

func (m Money) String() string {
	return fmt.Sprintf("%d sats", int64(m))
}
