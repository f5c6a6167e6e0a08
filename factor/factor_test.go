package factor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Singh-Diljit/smallPrimes/primes"
)

func newEngine(t *testing.T, bound uint64) *Engine {
	t.Helper()
	tab, err := primes.NewTable(bound)
	require.NoError(t, err)
	return NewEngine(tab)
}

func TestDecompose(t *testing.T) {
	e := newEngine(t, 10_000)
	for _, tc := range []struct {
		m    uint64
		want Decomposition
	}{
		{1, Decomposition{}},
		{2, Decomposition{2: 1}},
		{37, Decomposition{37: 1}},
		{360, Decomposition{2: 3, 3: 2, 5: 1}},
		{1024, Decomposition{2: 10}},
		{9_699_690, Decomposition{2: 1, 3: 1, 5: 1, 7: 1, 11: 1, 13: 1, 17: 1, 19: 1}},
	} {
		got, err := e.Decompose(tc.m)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "m=%d", tc.m)
	}
}

func TestDecomposeProductInvariant(t *testing.T) {
	e := newEngine(t, 1_000)
	for m := uint64(1); m <= 5_000; m++ {
		d, err := e.Decompose(m)
		require.NoError(t, err)
		if !e.Verify(m, d) {
			t.Fatalf("m=%d: decomposition %v does not multiply back", m, d)
		}
	}
}

func TestDecomposeInvalidInput(t *testing.T) {
	e := newEngine(t, 100)
	_, err := e.Decompose(0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = e.Certificate(0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = e.Divisors(0, false)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCertificate(t *testing.T) {
	e := newEngine(t, 10_000)
	for _, tc := range []struct {
		m    uint64
		want bool
	}{
		{1, false},
		{2, true},
		{37, true},
		{360, false},
		{49, false},   // single prime, multiplicity 2
		{9973, true},  // largest prime below 10^4
		{9991, false}, // 97 * 103
	} {
		got, err := e.Certificate(tc.m)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "m=%d", tc.m)
	}
}

// A residual whose smallest prime factor is at or above the bound is
// recorded as a single factor, so the certificate reports a composite as
// prime. The behavior is documented, not a bug; this pins it down.
func TestCertificateFalsePositiveBeyondBound(t *testing.T) {
	e := newEngine(t, 100)
	const m = 101 * 103

	d, err := e.Decompose(m)
	require.NoError(t, err)
	assert.Equal(t, Decomposition{m: 1}, d)

	cert, err := e.Certificate(m)
	require.NoError(t, err)
	assert.True(t, cert, "documented false positive: composite residual recorded as one factor")
}

func TestRefineSplitsCompositeResidual(t *testing.T) {
	e := newEngine(t, 100)

	d, err := e.Decompose(101 * 103)
	require.NoError(t, err)
	refined := e.Refine(d)
	assert.Equal(t, Decomposition{101: 1, 103: 1}, refined)
	assert.Equal(t, Decomposition{101 * 103: 1}, d, "input must not be mutated")

	// prime residual survives refinement unchanged
	d, err = e.Decompose(2 * 2 * 104729)
	require.NoError(t, err)
	assert.Equal(t, Decomposition{2: 2, 104729: 1}, d)
	assert.Equal(t, Decomposition{2: 2, 104729: 1}, e.Refine(d))

	// residual that is a prime power
	d, err = e.Decompose(101 * 101)
	require.NoError(t, err)
	assert.Equal(t, Decomposition{101 * 101: 1}, d)
	assert.Equal(t, Decomposition{101: 2}, e.Refine(d))
}

func TestVerify(t *testing.T) {
	e := newEngine(t, 100)
	assert.True(t, e.Verify(360, Decomposition{2: 3, 3: 2, 5: 1}))
	assert.True(t, e.Verify(1, Decomposition{}))
	assert.False(t, e.Verify(10, Decomposition{2: 1, 5: 2}))
	assert.False(t, e.Verify(360, Decomposition{2: 3, 3: 2}))
}

func TestDivisors(t *testing.T) {
	e := newEngine(t, 1_000)
	for _, tc := range []struct {
		m      uint64
		proper bool
		want   []uint64
	}{
		{36, false, []uint64{1, 2, 3, 4, 6, 9, 12, 18, 36}},
		{36, true, []uint64{2, 3, 4, 6, 9, 12, 18}},
		{7, true, []uint64{}},
		{7, false, []uint64{1, 7}},
		{1, false, []uint64{1}},
		{1, true, []uint64{}},
		{360, false, []uint64{1, 2, 3, 4, 5, 6, 8, 9, 10, 12, 15, 18, 20, 24, 30, 36, 40, 45, 60, 72, 90, 120, 180, 360}},
	} {
		got, err := e.Divisors(tc.m, tc.proper)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "m=%d proper=%v", tc.m, tc.proper)
	}
}

func TestRepeatedFactors(t *testing.T) {
	e := newEngine(t, 1_000)

	got, err := e.RepeatedFactors(360)
	require.NoError(t, err)
	assert.Equal(t, Decomposition{2: 3, 3: 2}, got)

	got, err = e.RepeatedFactors(2 * 3 * 5 * 7)
	require.NoError(t, err)
	assert.Empty(t, got)
}
