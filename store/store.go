// Package store persists the precomputed tables so a process can reload
// them instead of re-sieving. Each artifact is a little-endian binary
// payload plus a JSON sidecar carrying the bound, the entry count and a
// SHAKE-256 digest of the payload; the digest is verified on load.
package store

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/Singh-Diljit/smallPrimes/primes"
	"github.com/Singh-Diljit/smallPrimes/prof"
	"github.com/Singh-Diljit/smallPrimes/twosquares"
)

const (
	primesBin  = "primes.bin"
	primesMeta = "primes.json"
	sosBin     = "sos.bin"
	sosMeta    = "sos.json"

	digestSize = 32
)

type metadata struct {
	Bound  uint64 `json:"bound"`
	Count  int    `json:"count"`
	Digest string `json:"digest"`
}

func digest(payload []byte) string {
	var sum [digestSize]byte
	h := sha3.NewShake256()
	h.Write(payload)
	h.Read(sum[:])
	return hex.EncodeToString(sum[:])
}

func writeArtifact(dir, bin, meta string, payload []byte, m metadata) error {
	m.Digest = digest(payload)
	if err := os.WriteFile(filepath.Join(dir, bin), payload, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", bin, err)
	}
	js, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", meta, err)
	}
	if err := os.WriteFile(filepath.Join(dir, meta), js, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", meta, err)
	}
	return nil
}

func readArtifact(dir, bin, meta string) ([]byte, metadata, error) {
	var m metadata
	js, err := os.ReadFile(filepath.Join(dir, meta))
	if err != nil {
		return nil, m, fmt.Errorf("store: read %s: %w", meta, err)
	}
	if err := json.Unmarshal(js, &m); err != nil {
		return nil, m, fmt.Errorf("store: decode %s: %w", meta, err)
	}
	payload, err := os.ReadFile(filepath.Join(dir, bin))
	if err != nil {
		return nil, m, fmt.Errorf("store: read %s: %w", bin, err)
	}
	if got := digest(payload); got != m.Digest {
		return nil, m, fmt.Errorf("store: %s digest mismatch: payload %s, metadata %s", bin, got, m.Digest)
	}
	return payload, m, nil
}

// SavePrimes writes t's prime sequence to dir as primes.bin/primes.json.
// Every prime is stored as uint32; bounds above 2^32 are rejected.
func SavePrimes(dir string, t *primes.Table) error {
	defer prof.Track(time.Now(), "store.SavePrimes")
	if t.Bound() > 1<<32 {
		return fmt.Errorf("store: bound %d exceeds uint32 prime encoding", t.Bound())
	}
	seq := t.Primes()
	payload := make([]byte, 4*len(seq))
	for i, p := range seq {
		binary.LittleEndian.PutUint32(payload[4*i:], uint32(p))
	}
	return writeArtifact(dir, primesBin, primesMeta, payload, metadata{
		Bound: t.Bound(),
		Count: len(seq),
	})
}

// LoadPrimes reads a table saved by SavePrimes, verifying the digest and
// rebuilding the membership bitmap.
func LoadPrimes(dir string) (*primes.Table, error) {
	defer prof.Track(time.Now(), "store.LoadPrimes")
	payload, m, err := readArtifact(dir, primesBin, primesMeta)
	if err != nil {
		return nil, err
	}
	if len(payload) != 4*m.Count {
		return nil, fmt.Errorf("store: primes.bin holds %d bytes, metadata promises %d entries", len(payload), m.Count)
	}
	seq := make([]uint64, m.Count)
	for i := range seq {
		seq[i] = uint64(binary.LittleEndian.Uint32(payload[4*i:]))
	}
	t, err := primes.Rebuild(m.Bound, seq)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return t, nil
}

// SaveSumOfSquares writes r's decompositions to dir as sos.bin/sos.json,
// one (p, a, b) uint32 triple per qualifying prime, ordered by prime.
func SaveSumOfSquares(dir string, r *twosquares.Resolver) error {
	defer prof.Track(time.Now(), "store.SaveSumOfSquares")
	if r.Bound() > 1<<32 {
		return fmt.Errorf("store: bound %d exceeds uint32 encoding", r.Bound())
	}
	entries := r.Entries()
	payload := make([]byte, 12*len(entries))
	for i, e := range entries {
		binary.LittleEndian.PutUint32(payload[12*i:], uint32(e.P))
		binary.LittleEndian.PutUint32(payload[12*i+4:], uint32(e.Pair.A))
		binary.LittleEndian.PutUint32(payload[12*i+8:], uint32(e.Pair.B))
	}
	return writeArtifact(dir, sosBin, sosMeta, payload, metadata{
		Bound: r.Bound(),
		Count: len(entries),
	})
}

// LoadSumOfSquares reads a resolver saved by SaveSumOfSquares. Each stored
// triple is re-verified against a^2 + b^2 = p on rebuild.
func LoadSumOfSquares(dir string) (*twosquares.Resolver, error) {
	defer prof.Track(time.Now(), "store.LoadSumOfSquares")
	payload, m, err := readArtifact(dir, sosBin, sosMeta)
	if err != nil {
		return nil, err
	}
	if len(payload) != 12*m.Count {
		return nil, fmt.Errorf("store: sos.bin holds %d bytes, metadata promises %d entries", len(payload), m.Count)
	}
	entries := make([]twosquares.Entry, m.Count)
	for i := range entries {
		entries[i] = twosquares.Entry{
			P: uint64(binary.LittleEndian.Uint32(payload[12*i:])),
			Pair: twosquares.Pair{
				A: uint64(binary.LittleEndian.Uint32(payload[12*i+4:])),
				B: uint64(binary.LittleEndian.Uint32(payload[12*i+8:])),
			},
		}
	}
	r, err := twosquares.Rebuild(m.Bound, entries)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return r, nil
}
