package primes

// Package primes builds the bit-packed Eratosthenes sieve over [0, bound)
// and derives the two read-only views everything else consumes: the strictly
// increasing prime sequence and the O(1) membership test.
//
// A Table is immutable once constructed and safe for any number of
// concurrent readers. The package-level helpers operate on a process-wide
// table over [0, DefaultBound) that is built lazily on first use.
