package primes

import (
	"errors"
	"fmt"
	"math/bits"
	"time"

	"github.com/Singh-Diljit/smallPrimes/prof"
)

// DefaultBound is the sieve range used by the package-level helpers.
const DefaultBound = 100_000_000

var (
	// ErrInvalidBound is returned when a sieve is requested over a range
	// that cannot contain a prime.
	ErrInvalidBound = errors.New("primes: bound must be at least 2")

	// ErrOutOfRange is returned by IsPrime for arguments at or above the
	// table's bound. Route such values to the factor package instead.
	ErrOutOfRange = errors.New("primes: argument outside sieve range")
)

// Table is the composite-bit sieve over [0, bound) together with the
// ordered primes collected from it. One bit per integer, set = composite
// (indices 0 and 1 are forced set). Immutable after construction.
type Table struct {
	bound     uint64
	composite []uint64
	primes    []uint64
}

// NewTable sieves [0, bound) by classic Eratosthenes: every still-unmarked
// i up to sqrt(bound) marks its multiples starting at i*i.
func NewTable(bound uint64) (*Table, error) {
	if bound < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBound, bound)
	}
	defer prof.Track(time.Now(), "primes.NewTable")

	t := &Table{
		bound:     bound,
		composite: make([]uint64, (bound+63)/64),
	}
	t.mark(0)
	t.mark(1)
	for i := uint64(2); i*i < bound; i++ {
		if t.isComposite(i) {
			continue
		}
		for j := i * i; j < bound; j += i {
			t.mark(j)
		}
	}
	t.collect()
	return t, nil
}

// Rebuild reconstructs a Table from a previously collected prime sequence
// without re-sieving. The sequence must be exactly the strictly increasing
// primes below bound; only cheap structural checks are performed here, so
// callers holding untrusted data should verify it first (the store package
// does, via digests).
func Rebuild(bound uint64, seq []uint64) (*Table, error) {
	if bound < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBound, bound)
	}
	t := &Table{
		bound:     bound,
		composite: make([]uint64, (bound+63)/64),
	}
	for i := range t.composite {
		t.composite[i] = ^uint64(0)
	}
	prev := uint64(0)
	for _, p := range seq {
		if p < 2 || p >= bound || p <= prev {
			return nil, fmt.Errorf("primes: rebuild sequence not strictly increasing in [2, %d): %d", bound, p)
		}
		t.composite[p>>6] &^= 1 << (p & 63)
		prev = p
	}
	t.primes = append([]uint64(nil), seq...)
	return t, nil
}

func (t *Table) mark(x uint64)             { t.composite[x>>6] |= 1 << (x & 63) }
func (t *Table) isComposite(x uint64) bool { return t.composite[x>>6]&(1<<(x&63)) != 0 }

// collect scans the clear bits into the ordered prime sequence.
func (t *Table) collect() {
	n := 0
	for _, word := range t.composite {
		n += 64 - bits.OnesCount64(word)
	}
	// clear bits in the last word past bound are not primes
	n -= int(uint64(len(t.composite))*64 - t.bound)
	t.primes = make([]uint64, 0, n)

	for w, word := range t.composite {
		rem := ^word
		for rem != 0 {
			x := uint64(w)*64 + uint64(bits.TrailingZeros64(rem))
			if x >= t.bound {
				break
			}
			t.primes = append(t.primes, x)
			rem &= rem - 1
		}
	}
}

// Bound returns the exclusive upper end of the sieved range.
func (t *Table) Bound() uint64 { return t.bound }

// Count returns the number of primes below the bound.
func (t *Table) Count() int { return len(t.primes) }

// Primes returns the strictly increasing primes below the bound. The slice
// is shared and must not be modified.
func (t *Table) Primes() []uint64 { return t.primes }

// IsPrime reports whether x is prime. Defined only for x < Bound();
// larger arguments fail with ErrOutOfRange.
func (t *Table) IsPrime(x uint64) (bool, error) {
	if x >= t.bound {
		return false, fmt.Errorf("%w: %d >= %d", ErrOutOfRange, x, t.bound)
	}
	return !t.isComposite(x), nil
}
