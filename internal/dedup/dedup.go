// Package dedup collapses duplicate disclosures of the same trade event
// reported by different or overlapping sources.
package dedup

import "insider-flow/internal/types"

// Collapse retains the first record observed for each dedup key, preserving
// input order among survivors. Records with an empty ticker are dropped
// regardless of key collisions. Idempotent: re-running on already collapsed
// input is a no-op.
func Collapse(records []types.CanonicalTradeRecord) []types.CanonicalTradeRecord {
	seen := make(map[string]bool, len(records))
	out := make([]types.CanonicalTradeRecord, 0, len(records))

	for _, r := range records {
		if r.Ticker == "" {
			continue
		}
		key := r.DeriveDedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		r.DedupKey = key
		out = append(out, r)
	}
	return out
}
