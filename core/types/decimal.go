package types

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
)

// decCtx bounds every fixed-point computation in the ledger. 64 digits of
// precision is enough to scale a 256-bit amount by a sub-unit rate without
// losing raw units.
var decCtx = apd.BaseContext.WithPrecision(64)

// Dec is a fixed-point decimal used for inflation rates and reward shares.
type Dec struct {
	d apd.Decimal
}

// NewDecFromString parses a decimal such as "0.05".
func NewDecFromString(s string) (Dec, error) {
	d, _, err := decCtx.NewFromString(s)
	if err != nil {
		return Dec{}, errors.Wrapf(err, "invalid decimal %q", s)
	}
	return Dec{d: *d}, nil
}

// NewDecFromUint64 returns the decimal representation of v.
func NewDecFromUint64(v uint64) Dec {
	var out Dec
	out.d.Coeff.SetUint64(v)
	return out
}

// DecFromAmount converts a raw amount into its decimal representation.
func DecFromAmount(a Amount) Dec {
	d, _, err := decCtx.NewFromString(a.String())
	if err != nil {
		// amounts always render as plain integers
		panic(err)
	}
	return Dec{d: *d}
}

func (d Dec) IsZero() bool {
	return d.d.IsZero()
}

// DivUint64 returns d / v.
func (d Dec) DivUint64(v uint64) (Dec, error) {
	divisor := NewDecFromUint64(v)
	var out Dec
	if _, err := decCtx.Quo(&out.d, &d.d, &divisor.d); err != nil {
		return Dec{}, errors.Wrapf(err, "dividing %s by %d", d, v)
	}
	return out, nil
}

// Mul returns d * o, surfacing any arithmetic error.
func (d Dec) Mul(o Dec) (Dec, error) {
	var out Dec
	if _, err := decCtx.Mul(&out.d, &d.d, &o.d); err != nil {
		return Dec{}, errors.Wrapf(err, "multiplying %s by %s", d, o)
	}
	return out, nil
}

// CheckedMul returns d * o, collapsing any non-representable product to zero.
func (d Dec) CheckedMul(o Dec) Dec {
	out, err := d.Mul(o)
	if err != nil {
		return Dec{}
	}
	return out
}

// ToAmount truncates the decimal to a whole number of raw units. Negative
// values are rejected.
func (d Dec) ToAmount() (Amount, error) {
	if d.d.Negative && !d.d.IsZero() {
		return Amount{}, errors.Errorf("cannot convert negative decimal %s to an amount", d)
	}
	var integ, frac apd.Decimal
	d.d.Modf(&integ, &frac)
	return AmountFromString(integ.Text('f'))
}

func (d Dec) String() string {
	return d.d.Text('f')
}

func (d Dec) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Dec) UnmarshalText(text []byte) error {
	parsed, err := NewDecFromString(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
