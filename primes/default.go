package primes

import "sync"

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the process-wide table over [0, DefaultBound), sieving it
// on first use. Subsequent calls share the same immutable table.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := NewTable(DefaultBound)
		if err != nil {
			panic(err) // unreachable: DefaultBound >= 2
		}
		defaultTable = t
	})
	return defaultTable
}

// Generate returns the primes strictly below bound.
func Generate(bound uint64) ([]uint64, error) {
	t, err := NewTable(bound)
	if err != nil {
		return nil, err
	}
	return t.Primes(), nil
}

// IsPrime reports whether x is prime, against the default table. Defined
// only for x < DefaultBound.
func IsPrime(x uint64) (bool, error) {
	return Default().IsPrime(x)
}
