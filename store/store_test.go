package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Singh-Diljit/smallPrimes/primes"
	"github.com/Singh-Diljit/smallPrimes/twosquares"
)

func TestPrimesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	tab, err := primes.NewTable(10_000)
	require.NoError(t, err)

	require.NoError(t, SavePrimes(dir, tab))
	got, err := LoadPrimes(dir)
	require.NoError(t, err)

	assert.Equal(t, tab.Bound(), got.Bound())
	assert.Equal(t, tab.Primes(), got.Primes())
	ok, err := got.IsPrime(9973)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = got.IsPrime(9999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSumOfSquaresRoundTrip(t *testing.T) {
	dir := t.TempDir()
	tab, err := primes.NewTable(2_000)
	require.NoError(t, err)
	res := twosquares.New(tab)

	require.NoError(t, SaveSumOfSquares(dir, res))
	got, err := LoadSumOfSquares(dir)
	require.NoError(t, err)

	assert.Equal(t, res.Len(), got.Len())
	a, b, err := got.Decompose(13)
	require.NoError(t, err)
	assert.Equal(t, [2]uint64{2, 3}, [2]uint64{a, b})
	assert.Equal(t, res.Entries(), got.Entries())
}

func TestLoadDetectsCorruption(t *testing.T) {
	dir := t.TempDir()
	tab, err := primes.NewTable(1_000)
	require.NoError(t, err)
	require.NoError(t, SavePrimes(dir, tab))

	path := filepath.Join(dir, "primes.bin")
	payload, err := os.ReadFile(path)
	require.NoError(t, err)
	payload[len(payload)/2] ^= 0x01
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	_, err = LoadPrimes(dir)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "digest mismatch"), "got: %v", err)
}

func TestLoadDetectsTruncation(t *testing.T) {
	dir := t.TempDir()
	tab, err := primes.NewTable(1_000)
	require.NoError(t, err)
	require.NoError(t, SavePrimes(dir, tab))

	// re-digest a truncated payload so only the count check can catch it
	path := filepath.Join(dir, "primes.bin")
	payload, err := os.ReadFile(path)
	require.NoError(t, err)
	truncated := payload[:len(payload)-4]
	require.NoError(t, os.WriteFile(path, truncated, 0o644))

	meta, err := os.ReadFile(filepath.Join(dir, "primes.json"))
	require.NoError(t, err)
	fixed := strings.Replace(string(meta), digest(payload), digest(truncated), 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "primes.json"), []byte(fixed), 0o644))

	_, err = LoadPrimes(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entries")
}

func TestLoadMissingFiles(t *testing.T) {
	_, err := LoadPrimes(t.TempDir())
	require.Error(t, err)
	_, err = LoadSumOfSquares(t.TempDir())
	require.Error(t, err)
}
