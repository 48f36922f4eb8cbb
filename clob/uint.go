package clob

import (
	"encoding/json"

	"lukechampine.com/uint128"
)

// Uint is an unsigned 128-bit amount. All monetary values handled by the
// engine are plain integers scaled by the owning currency's native decimals,
// so only integer arithmetic is performed here. Subtraction below zero and
// overflowing additions wrap, callers are expected to compare first.
type Uint struct {
	v uint128.Uint128
}

// NewZeroUint returns zero valued Uint.
func NewZeroUint() Uint {
	return Uint{}
}

// NewUint returns Uint holding the given 64-bit value.
func NewUint(u uint64) Uint {
	return Uint{v: uint128.From64(u)}
}

// NewUintFromStr parses a decimal string into Uint.
// An empty string parses as zero.
func NewUintFromStr(s string) (Uint, error) {
	if s == "" {
		return NewZeroUint(), nil
	}

	u, err := uint128.FromString(s)
	if err != nil {
		return Uint{}, err
	}

	return Uint{v: u}, nil
}

func (u Uint) Add(v Uint) Uint {
	u.v = u.v.Add(v.v)
	return u
}

func (u Uint) Add64(v uint64) Uint {
	u.v = u.v.Add64(v)
	return u
}

func (u Uint) Sub(v Uint) Uint {
	u.v = u.v.Sub(v.v)
	return u
}

func (u Uint) Mul(v Uint) Uint {
	u.v = u.v.Mul(v.v)
	return u
}

func (u Uint) Mul64(v uint64) Uint {
	u.v = u.v.Mul64(v)
	return u
}

func (u Uint) QuoRem(v Uint) (Uint, Uint) {
	var remainder uint128.Uint128
	u.v, remainder = u.v.QuoRem(v.v)
	return u, Uint{v: remainder}
}

func (u Uint) Div64(v uint64) Uint {
	u.v = u.v.Div64(v)
	return u
}

func (u Uint) Cmp(v Uint) int {
	return u.v.Cmp(v.v)
}

func (u Uint) IsZero() bool {
	return u.v.IsZero()
}

func (u Uint) Equals(v Uint) bool {
	return u.v.Equals(v.v)
}

func (u Uint) LessThan(v Uint) bool {
	return u.v.Cmp(v.v) < 0
}

func (u Uint) LessThanOrEqualTo(v Uint) bool {
	return u.v.Cmp(v.v) <= 0
}

func (u Uint) GreaterThan(v Uint) bool {
	return u.v.Cmp(v.v) > 0
}

func (u Uint) GreaterThanOrEqualTo(v Uint) bool {
	return u.v.Cmp(v.v) >= 0
}

func (u Uint) String() string {
	return u.v.String()
}

var (
	_ json.Marshaler   = Uint{}
	_ json.Unmarshaler = &Uint{}
)

func (u Uint) MarshalJSON() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *Uint) UnmarshalJSON(data []byte) error {
	u128, err := uint128.FromString(string(data))
	if err != nil {
		return err
	}

	u.v = u128

	return nil
}

// Min returns the lesser of two Uint values.
func Min(a Uint, b Uint) Uint {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Max returns the greater of two Uint values.
func Max(a Uint, b Uint) Uint {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}
