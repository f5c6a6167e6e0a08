// Package intmath provides overflow-safe uint64 arithmetic shared by the
// sieve, the two-square resolver and the decomposition engine.
package intmath

import (
	"math"
	"math/bits"
)

// MulMod returns a*b mod m using the full 128-bit product.
func MulMod(a, b, m uint64) uint64 {
	a %= m
	b %= m
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, m)
	return rem
}

// PowMod returns a^e mod m by square and multiply.
func PowMod(a, e, m uint64) uint64 {
	if m == 1 {
		return 0
	}
	result := uint64(1)
	base := a % m
	for e > 0 {
		if e&1 == 1 {
			result = MulMod(result, base, m)
		}
		e >>= 1
		if e > 0 {
			base = MulMod(base, base, m)
		}
	}
	return result
}

// Sqrt returns floor(sqrt(x)). Exact for the full uint64 range; the float
// seed is corrected by at most a couple of steps.
func Sqrt(x uint64) uint64 {
	if x == 0 {
		return 0
	}
	r := uint64(math.Sqrt(float64(x)))
	if r > math.MaxUint32 {
		r = math.MaxUint32
	}
	for r > 0 && r*r > x {
		r--
	}
	for r < math.MaxUint32 && (r+1)*(r+1) <= x {
		r++
	}
	return r
}
