// Package prof collects labeled wall-clock timings for the expensive
// one-shot constructions (sieving, two-square resolution, table I/O).
// Collection is off by default so library callers pay nothing.
package prof

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Entry is a single labeled timing measurement.
type Entry struct {
	Label string
	Dur   time.Duration
}

var (
	mu      sync.Mutex
	enabled bool
	record  []Entry
)

// Enable turns collection on. Safe to call concurrently with Track.
func Enable() {
	mu.Lock()
	enabled = true
	mu.Unlock()
}

// Track records the duration since start under label, if collection is
// enabled. Intended for use as `defer prof.Track(time.Now(), "label")`.
func Track(start time.Time, label string) {
	elapsed := time.Since(start)
	mu.Lock()
	if enabled {
		record = append(record, Entry{Label: label, Dur: elapsed})
	}
	mu.Unlock()
}

// SnapshotAndReset returns the collected entries and clears them.
func SnapshotAndReset() []Entry {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Entry, len(record))
	copy(out, record)
	record = nil
	return out
}

// WriteSummary writes one line per collected entry to w and clears the
// record. Entries appear in collection order.
func WriteSummary(w io.Writer) error {
	for _, e := range SnapshotAndReset() {
		if _, err := fmt.Fprintf(w, "%-28s %v\n", e.Label, e.Dur); err != nil {
			return err
		}
	}
	return nil
}
