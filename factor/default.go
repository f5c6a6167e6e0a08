package factor

import "github.com/Singh-Diljit/smallPrimes/primes"

// defaultEngine wraps the process-wide prime table; the table itself is
// built lazily inside primes.Default.
func defaultEngine() *Engine {
	return NewEngine(primes.Default())
}

// Decompose factors m against the default prime table.
func Decompose(m uint64) (Decomposition, error) {
	return defaultEngine().Decompose(m)
}

// Certificate reports whether m factors as a single prime against the
// default prime table.
func Certificate(m uint64) (bool, error) {
	return defaultEngine().Certificate(m)
}

// Divisors lists m's divisors against the default prime table.
func Divisors(m uint64, proper bool) ([]uint64, error) {
	return defaultEngine().Divisors(m, proper)
}
