// Package rpnumber implements arbitrary-precision decimal literals.
//
// A literal is stored as (digits, decimal): the integer value of all
// digits with the decimal point removed, plus the number of digits that
// belong after the decimal point. This preserves significance for
// literals like 0.0000104321 that would lose precision if parsed
// directly into a float64.
package rpnumber

import (
	"math/big"
)

// Number is an arbitrary-precision decimal value: digits / 10^decimal.
type Number struct {
	Digits  *big.Int
	Decimal uint32
}

// Zero is the Number 0.
func Zero() Number {
	return Number{Digits: big.NewInt(0), Decimal: 0}
}

// FromInt64 constructs a Number representing an integer.
func FromInt64(v int64) Number {
	return Number{Digits: big.NewInt(v), Decimal: 0}
}

var ten = big.NewInt(10)

// pow10 returns 10^n as a new big.Int.
func pow10(n uint32) *big.Int {
	return new(big.Int).Exp(ten, big.NewInt(int64(n)), nil)
}

// IsInteger reports whether the number has no fractional part, i.e. the
// digits are evenly divisible by 10^decimal.
func (n Number) IsInteger() bool {
	if n.Decimal == 0 {
		return true
	}
	_, rem := new(big.Int).QuoRem(n.Digits, pow10(n.Decimal), new(big.Int))
	return rem.Sign() == 0
}

// ToFloat64 converts the number to the nearest float64.
func (n Number) ToFloat64() float64 {
	num := new(big.Rat).SetInt(n.Digits)
	if n.Decimal > 0 {
		num.Quo(num, new(big.Rat).SetInt(pow10(n.Decimal)))
	}
	f, _ := num.Float64()
	return f
}

// ToInt64 converts the number to an int64, returning ok=false if the
// number has a fractional part or does not fit.
func (n Number) ToInt64() (v int64, ok bool) {
	if !n.IsInteger() {
		return 0, false
	}
	i := n.integerValue()
	if !i.IsInt64() {
		return 0, false
	}
	return i.Int64(), true
}

// ToU32 converts the number to a uint32, returning ok=false on a
// fractional value, a negative value, or overflow ("values
// exceeding u32::MAX converted to u32 report overflow").
func (n Number) ToU32() (v uint32, ok bool) {
	i := n.integerValue()
	if i == nil || i.Sign() < 0 {
		return 0, false
	}
	if !i.IsUint64() {
		return 0, false
	}
	u := i.Uint64()
	if u > 0xFFFFFFFF {
		return 0, false
	}
	return uint32(u), true
}

// ToU64 converts the number to a uint64, returning ok=false on a
// fractional value, a negative value, or overflow.
func (n Number) ToU64() (v uint64, ok bool) {
	i := n.integerValue()
	if i == nil || i.Sign() < 0 {
		return 0, false
	}
	if !i.IsUint64() {
		return 0, false
	}
	return i.Uint64(), true
}

// integerValue returns Digits / 10^Decimal if it has no remainder,
// otherwise nil.
func (n Number) integerValue() *big.Int {
	if n.Decimal == 0 {
		return n.Digits
	}
	q, rem := new(big.Int).QuoRem(n.Digits, pow10(n.Decimal), new(big.Int))
	if rem.Sign() != 0 {
		return nil
	}
	return q
}

// String renders the number in decimal form, e.g. "12.4200".
func (n Number) String() string {
	if n.Decimal == 0 {
		return n.Digits.String()
	}

	neg := n.Digits.Sign() < 0
	abs := new(big.Int).Abs(n.Digits)
	s := abs.String()
	for uint32(len(s)) <= n.Decimal {
		s = "0" + s
	}
	cut := len(s) - int(n.Decimal)
	whole, frac := s[:cut], s[cut:]

	out := whole + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

// Equal reports whether a and b represent the same value, even if their
// (digits, decimal) representations differ (e.g. 12 written as digits 12
// with decimal 0 and as digits 120 with decimal 1).
func Equal(a, b Number) bool {
	ra := new(big.Rat).SetInt(a.Digits)
	if a.Decimal > 0 {
		ra.Quo(ra, new(big.Rat).SetInt(pow10(a.Decimal)))
	}
	rb := new(big.Rat).SetInt(b.Digits)
	if b.Decimal > 0 {
		rb.Quo(rb, new(big.Rat).SetInt(pow10(b.Decimal)))
	}
	return ra.Cmp(rb) == 0
}
