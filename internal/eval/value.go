package eval

import (
	"math/big"
	"strconv"
)

// Value is an exact evaluation result. Sums, differences and products of
// integers stay integers; division yields the exact rational quotient.
type Value struct {
	r *big.Rat
}

// Int returns an integer value.
func Int(n int64) Value {
	return Value{r: new(big.Rat).SetInt64(n)}
}

// ParseInt parses a decimal digit string of any length.
func ParseInt(digits string) (Value, bool) {
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return Value{}, false
	}
	return Value{r: new(big.Rat).SetInt(n)}, true
}

func (v Value) rat() *big.Rat {
	if v.r == nil {
		return new(big.Rat)
	}
	return v.r
}

// IsInt reports whether the value has no fractional part.
func (v Value) IsInt() bool {
	return v.rat().IsInt()
}

// IsZero reports whether the value equals zero.
func (v Value) IsZero() bool {
	return v.rat().Sign() == 0
}

// Float64 returns the nearest float64.
func (v Value) Float64() float64 {
	f, _ := v.rat().Float64()
	return f
}

// Rat returns a copy of the underlying rational.
func (v Value) Rat() *big.Rat {
	return new(big.Rat).Set(v.rat())
}

// Equal reports whether both values are numerically equal.
func (v Value) Equal(other Value) bool {
	return v.rat().Cmp(other.rat()) == 0
}

// String prints integers exactly and other values in the shortest decimal
// form of their float64 approximation ("2.5", "0.3333333333333333").
func (v Value) String() string {
	if v.IsInt() {
		return v.rat().Num().String()
	}
	return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
}

func add(a, b Value) Value { return Value{r: new(big.Rat).Add(a.rat(), b.rat())} }
func sub(a, b Value) Value { return Value{r: new(big.Rat).Sub(a.rat(), b.rat())} }
func mul(a, b Value) Value { return Value{r: new(big.Rat).Mul(a.rat(), b.rat())} }

// quo panics on a zero divisor; callers check first.
func quo(a, b Value) Value { return Value{r: new(big.Rat).Quo(a.rat(), b.rat())} }
