// Package twosquares resolves every prime p = 1 (mod 4) below a sieve
// bound into its unique representation p = a^2 + b^2 with 0 < a < b.
//
// The construction follows Fermat's two-square theorem: a square root of
// -1 mod p is found through the Euler criterion, then the Euclidean
// algorithm on (p, r) is descended to the first remainder below sqrt(p),
// which is one leg of the decomposition.
package twosquares

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Singh-Diljit/smallPrimes/internal/intmath"
	"github.com/Singh-Diljit/smallPrimes/primes"
	"github.com/Singh-Diljit/smallPrimes/prof"
)

// ErrNotApplicable is returned for any argument without a cached
// two-square form: composites, primes = 3 (mod 4), the literal 2, and
// anything at or above the resolver's bound.
var ErrNotApplicable = errors.New("twosquares: no two-square form")

// Pair is the decomposition p = A^2 + B^2 with A < B.
type Pair struct {
	A uint64 `json:"a"`
	B uint64 `json:"b"`
}

// Entry pairs a prime with its decomposition, for ordered iteration.
type Entry struct {
	P    uint64 `json:"p"`
	Pair Pair   `json:"pair"`
}

// Resolver caches the two-square form of every prime p = 1 (mod 4) below
// its table's bound. Immutable after construction.
type Resolver struct {
	bound uint64
	pairs map[uint64]Pair
}

// New resolves every qualifying prime in the table. The work is done once
// here; lookups afterwards are map reads.
func New(t *primes.Table) *Resolver {
	defer prof.Track(time.Now(), "twosquares.New")
	r := &Resolver{bound: t.Bound(), pairs: make(map[uint64]Pair)}
	for _, p := range t.Primes() {
		if p%4 == 1 {
			a, b := decompose(p)
			r.pairs[p] = Pair{A: a, B: b}
		}
	}
	return r
}

// Rebuild reconstructs a Resolver from stored entries, verifying each one.
func Rebuild(bound uint64, entries []Entry) (*Resolver, error) {
	r := &Resolver{bound: bound, pairs: make(map[uint64]Pair, len(entries))}
	for _, e := range entries {
		a, b := e.Pair.A, e.Pair.B
		if e.P >= bound || e.P%4 != 1 || a == 0 || a >= b || a*a+b*b != e.P {
			return nil, fmt.Errorf("twosquares: invalid stored entry %d = %d^2 + %d^2", e.P, a, b)
		}
		r.pairs[e.P] = e.Pair
	}
	return r, nil
}

// Bound returns the exclusive upper end of the resolver's prime range.
func (r *Resolver) Bound() uint64 { return r.bound }

// Len returns the number of cached decompositions.
func (r *Resolver) Len() int { return len(r.pairs) }

// Decompose returns (a, b) with a^2 + b^2 = p and a < b. Fails with
// ErrNotApplicable when p has no cached form.
func (r *Resolver) Decompose(p uint64) (a, b uint64, err error) {
	pr, ok := r.pairs[p]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %d is not a prime congruent to 1 mod 4 below %d", ErrNotApplicable, p, r.bound)
	}
	return pr.A, pr.B, nil
}

// Entries returns all cached decompositions ordered by prime.
func (r *Resolver) Entries() []Entry {
	out := make([]Entry, 0, len(r.pairs))
	for p, pr := range r.pairs {
		out = append(out, Entry{P: p, Pair: pr})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].P < out[j].P })
	return out
}

// sqrtMinusOne returns r with r^2 = -1 (mod p), for prime p = 1 (mod 4).
// The smallest witness j with j^((p-1)/2) = -1 is a non-residue, and
// (p-1)/2 is even, so j^((p-1)/4) is the desired root.
func sqrtMinusOne(p uint64) uint64 {
	half := (p - 1) / 2
	for j := uint64(2); ; j++ {
		if intmath.PowMod(j, half, p) == p-1 {
			return intmath.PowMod(j, half/2, p)
		}
	}
}

// decompose runs the Euclidean descent on (p, sqrtMinusOne(p)). The first
// remainder below sqrt(p) is one leg; the other is the exact square root
// of what remains.
func decompose(p uint64) (a, b uint64) {
	prev, cur := p, sqrtMinusOne(p)
	for cur*cur > p {
		prev, cur = cur, prev%cur
	}
	a = cur
	b = intmath.Sqrt(p - a*a)
	if a > b {
		a, b = b, a
	}
	return a, b
}

var (
	defaultOnce     sync.Once
	defaultResolver *Resolver
)

// SumOfSquares resolves p against a resolver over the default prime table,
// building both lazily on first use.
func SumOfSquares(p uint64) (a, b uint64, err error) {
	defaultOnce.Do(func() {
		defaultResolver = New(primes.Default())
	})
	return defaultResolver.Decompose(p)
}
