package types

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Amount is a quantity of a token in raw (undenominated) units.
type Amount struct {
	raw uint256.Int
}

// NewAmount returns an amount of raw units.
func NewAmount(v uint64) Amount {
	var a Amount
	a.raw.SetUint64(v)
	return a
}

// AmountFromString parses a base-10 amount of raw units.
func AmountFromString(s string) (Amount, error) {
	i, err := uint256.FromDecimal(s)
	if err != nil {
		return Amount{}, errors.Wrapf(err, "invalid amount %q", s)
	}
	return Amount{raw: *i}, nil
}

// Add returns a + o, or an error on 256-bit overflow.
func (a Amount) Add(o Amount) (Amount, error) {
	var out Amount
	if _, overflow := out.raw.AddOverflow(&a.raw, &o.raw); overflow {
		return Amount{}, errors.Errorf("amount overflow adding %s to %s", o, a)
	}
	return out, nil
}

// Sub returns a - o, or an error when o exceeds a.
func (a Amount) Sub(o Amount) (Amount, error) {
	var out Amount
	if _, underflow := out.raw.SubOverflow(&a.raw, &o.raw); underflow {
		return Amount{}, errors.Errorf("amount underflow subtracting %s from %s", o, a)
	}
	return out, nil
}

func (a Amount) IsZero() bool {
	return a.raw.IsZero()
}

func (a Amount) Equal(o Amount) bool {
	return a.raw.Eq(&o.raw)
}

// String renders the amount in base 10.
func (a Amount) String() string {
	return a.raw.Dec()
}

func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.raw.Dec()), nil
}

func (a *Amount) UnmarshalText(text []byte) error {
	parsed, err := AmountFromString(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Denomination is the number of base-10 decimal places of a token.
type Denomination uint8

// NativeMaxDecimalPlaces is the canonical precision of the native token.
const NativeMaxDecimalPlaces Denomination = 6

// DenominatedAmount pairs a raw amount with its decimal precision.
type DenominatedAmount struct {
	Amount Amount       `json:"amount" toml:"amount"`
	Denom  Denomination `json:"denom" toml:"denom"`
}
