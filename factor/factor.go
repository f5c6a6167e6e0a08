// Package factor decomposes positive integers into prime powers by trial
// division against a sieved prime table, and derives the primality
// certificate and divisor expansion on top of the decomposition.
//
// The engine's answers are exact whenever m's largest prime factor lies
// below the table bound N and m <= N^2. Outside that range two documented
// failure modes apply, inherited by Certificate: a prime m > N^2 is
// indistinguishable from an unfactored composite residual, and a residual
// whose smallest prime factor is >= N may be a composite recorded as a
// single factor. Refine layers probable-prime testing over the residual for
// callers who need more.
package factor

import (
	"errors"
	"fmt"
	"math/big"
	"slices"

	"github.com/tuneinsight/lattigo/v5/utils/factorization"

	"github.com/Singh-Diljit/smallPrimes/primes"
)

// ErrInvalidInput is returned when the integer to decompose is zero.
var ErrInvalidInput = errors.New("factor: input must be positive")

// Decomposition maps each factor to its multiplicity. Keys are prime
// except possibly a single residual entry left when trial division runs
// out (see the package comment).
type Decomposition map[uint64]int

// Engine factors integers against one prime table. Stateless beyond the
// shared read-only table; safe for concurrent use.
type Engine struct {
	table *primes.Table
}

// NewEngine returns an engine backed by t.
func NewEngine(t *primes.Table) *Engine {
	return &Engine{table: t}
}

// Decompose returns the prime-power decomposition of m. Trial division
// walks the prime sequence in increasing order and stops once p*p exceeds
// the undivided remainder; a remainder above 1 at that point is recorded
// with multiplicity 1 whether or not it is prime. Decompose(1) is the
// empty map.
func (e *Engine) Decompose(m uint64) (Decomposition, error) {
	if m == 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidInput, m)
	}
	d := make(Decomposition)
	rem := m
	for _, p := range e.table.Primes() {
		if p*p > rem {
			break
		}
		for rem%p == 0 {
			rem /= p
			d[p]++
		}
	}
	if rem > 1 {
		d[rem]++
	}
	return d, nil
}

// Certificate reports whether m factors as a single prime to the engine's
// knowledge: exactly one entry with multiplicity 1. It approximates "m is
// prime" and silently inherits both failure modes described in the package
// comment; it never errors on those, only on invalid input.
func (e *Engine) Certificate(m uint64) (bool, error) {
	d, err := e.Decompose(m)
	if err != nil {
		return false, err
	}
	if len(d) != 1 {
		return false, nil
	}
	for _, mult := range d {
		if mult != 1 {
			return false, nil
		}
	}
	return true, nil
}

// Divisors returns every positive divisor of m in ascending order, by
// Cartesian expansion of the prime powers. With proper set, 1 and m are
// excluded, so Divisors(p, true) is empty for prime p.
func (e *Engine) Divisors(m uint64, proper bool) ([]uint64, error) {
	d, err := e.Decompose(m)
	if err != nil {
		return nil, err
	}
	divs := []uint64{1}
	for p, mult := range d {
		base := divs
		divs = make([]uint64, 0, len(base)*(mult+1))
		pw := uint64(1)
		for k := 0; k <= mult; k++ {
			for _, v := range base {
				divs = append(divs, v*pw)
			}
			pw *= p
		}
	}
	slices.Sort(divs)
	if proper {
		trimmed := divs[:0]
		for _, v := range divs {
			if v != 1 && v != m {
				trimmed = append(trimmed, v)
			}
		}
		divs = trimmed
	}
	return divs, nil
}

// Verify reports whether the decomposition's prime powers multiply back to
// m. Useful as a cheap completeness check on decompositions from any
// source; the product is taken over big integers so a dishonest map cannot
// wrap around.
func (e *Engine) Verify(m uint64, d Decomposition) bool {
	prod := big.NewInt(1)
	f := new(big.Int)
	for p, mult := range d {
		f.SetUint64(p)
		for i := 0; i < mult; i++ {
			prod.Mul(prod, f)
		}
	}
	return prod.IsUint64() && prod.Uint64() == m
}

// RepeatedFactors returns the entries of m's decomposition with
// multiplicity above 1; m is square-free exactly when the result is empty
// (within the engine's guaranteed range).
func (e *Engine) RepeatedFactors(m uint64) (Decomposition, error) {
	d, err := e.Decompose(m)
	if err != nil {
		return nil, err
	}
	out := make(Decomposition)
	for p, mult := range d {
		if mult > 1 {
			out[p] = mult
		}
	}
	return out, nil
}

// Refine re-examines every factor of d at or above the table bound: each
// is tested with a Miller-Rabin/Lucas probable-prime check and, when
// composite, split by Pollard's rho until only probable primes remain.
// The input map is untouched; the returned map holds the refined
// decomposition. Factors below the bound are certainly prime already and
// pass through.
func (e *Engine) Refine(d Decomposition) Decomposition {
	out := make(Decomposition, len(d))
	for p, mult := range d {
		if p < e.table.Bound() {
			out[p] += mult
			continue
		}
		for _, q := range splitProbablePrime(p) {
			out[q] += mult
		}
	}
	return out
}

// splitProbablePrime reduces n to probable-prime factors. n is a trial
// division residual: odd, with no factor below the sieve bound, so rho
// converges quickly relative to its size.
func splitProbablePrime(n uint64) []uint64 {
	x := new(big.Int).SetUint64(n)
	if factorization.IsPrime(x) {
		return []uint64{n}
	}
	f := factorization.GetFactorPollardRho(x).Uint64()
	return append(splitProbablePrime(f), splitProbablePrime(n/f)...)
}
