// Package listify flattens the per-vehicle record lists of each bucket into
// one deduplicated slice. Duplicates are identified by the raw tuple
// (vehicle, raw due, control, current km) before any delta annotation is
// computed, so re-exported rows collapse silently.
package listify

import (
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"

	"kontrola/internal/domain"
)

// keyOf builds the dedup key for one record. Fields are joined with an
// unlikely separator and hashed; a missing current km hashes differently
// from km 0.
func keyOf(rec domain.MaintenanceRecord) uint64 {
	var b strings.Builder
	b.WriteString(rec.Vehicle)
	b.WriteByte('\x1f')
	b.WriteString(rec.Due.Raw())
	b.WriteByte('\x1f')
	b.WriteString(rec.Control)
	b.WriteByte('\x1f')
	if rec.CurrentKm != nil {
		b.WriteString(strconv.Itoa(*rec.CurrentKm))
	} else {
		b.WriteByte('\x00')
	}
	return xxh3.HashString(b.String())
}

// Flatten collapses one bucket's vehicle→records mapping into a slice with
// duplicates removed. Iteration order over the input map is not stable;
// ordering is fixed later by the due evaluator's sort.
func Flatten(byVehicle map[string][]domain.MaintenanceRecord) []domain.MaintenanceRecord {
	var out []domain.MaintenanceRecord
	seen := make(map[uint64]struct{})
	for _, recs := range byVehicle {
		for _, rec := range recs {
			k := keyOf(rec)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, rec)
		}
	}
	return out
}

// FlattenAll applies Flatten to every bucket.
func FlattenAll(grouped map[domain.Bucket]map[string][]domain.MaintenanceRecord) map[domain.Bucket][]domain.MaintenanceRecord {
	out := make(map[domain.Bucket][]domain.MaintenanceRecord, len(grouped))
	for b, byVehicle := range grouped {
		out[b] = Flatten(byVehicle)
	}
	return out
}
