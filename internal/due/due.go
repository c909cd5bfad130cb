// Package due turns deduplicated maintenance records into display rows: it
// renders the due cell (including the kilometer delta annotation), flags
// overdue rows, and fixes each bucket's row order.
//
// Date rows display as DD.MM.YYYY with no arithmetic. Distance rows show
// the remaining or exceeded kilometers against the mileage index:
//
//	"60000 (do 2000)"  2000 km left
//	"60000 (po -1500)" 1500 km past due, row flagged overdue
//
// When the index is unavailable the bare due value is shown and nothing is
// flagged overdue, even rows that are logically past due. When the index is
// available but lacks the vehicle, the odometer reading embedded in the
// original export row is used instead, if present.
package due

import (
	"fmt"
	"log"
	"math"
	"sort"
	"strconv"

	"kontrola/internal/domain"
	"kontrola/internal/mileage"
)

// Evaluate renders and sorts the rows of one bucket. Records without a due
// value are dropped here, before sorting. ix may be nil (degraded mode).
func Evaluate(bucket domain.Bucket, recs []domain.MaintenanceRecord, ix mileage.Index) []domain.Row {
	rows := make([]domain.Row, 0, len(recs))
	for _, rec := range recs {
		if rec.Due.Kind == domain.DueUnknown {
			continue
		}
		row := domain.Row{Vehicle: rec.Vehicle, Due: rec.Due}
		if bucket.HasControlColumn() {
			row.Control = rec.Control
		}
		row.DueDisplay, row.Overdue = render(rec, ix)
		rows = append(rows, row)
	}
	Sort(bucket, rows)
	return rows
}

// render computes the due cell value and the overdue flag for one record.
func render(rec domain.MaintenanceRecord, ix mileage.Index) (string, bool) {
	switch rec.Due.Kind {
	case domain.DueDate:
		return rec.Due.Date.Format(domain.Layout), false

	case domain.DueDistance:
		if ix == nil {
			// Degraded mode: no arithmetic, no overdue flags.
			return strconv.Itoa(rec.Due.Km), false
		}
		current, ok := ix.Lookup(rec.Vehicle)
		if !ok {
			if rec.CurrentKm == nil {
				return strconv.Itoa(rec.Due.Km), false
			}
			current = *rec.CurrentKm
			log.Printf("due: %s not in mileage index, using export odometer %d", rec.Vehicle, current)
		}
		delta := rec.Due.Km - current
		if delta > 0 {
			return fmt.Sprintf("%d (do %d)", rec.Due.Km, delta), false
		}
		return fmt.Sprintf("%d (po %d)", rec.Due.Km, delta), true
	}
	return "", false
}

// Sort orders rows in place by the bucket's key: parsed date ascending for
// date-domain buckets, leading kilometers ascending for distance-domain
// buckets, and dates-then-kilometers for the mixed buckets. Rows whose key
// cannot be derived go last.
func Sort(bucket domain.Bucket, rows []domain.Row) {
	var less func(a, b domain.Row) bool
	switch {
	case bucket.DistanceDomain():
		less = func(a, b domain.Row) bool { return kmKey(a) < kmKey(b) }
	case bucket.HasControlColumn():
		less = mixedLess
	default:
		less = func(a, b domain.Row) bool { return dateKey(a) < dateKey(b) }
	}
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
}

// dateKey maps a row to a sortable instant; non-date rows sort last.
func dateKey(r domain.Row) int64 {
	if r.Due.Kind != domain.DueDate {
		return math.MaxInt64
	}
	return r.Due.Date.Unix()
}

// kmKey extracts the leading integer of the raw due value; malformed
// values sort last.
func kmKey(r domain.Row) float64 {
	raw := r.Due.Raw()
	end := 0
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == 0 {
		return math.Inf(1)
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil {
		return math.Inf(1)
	}
	return float64(n)
}

// mixedLess orders the mixed buckets: date rows first (ascending), then
// distance rows (ascending).
func mixedLess(a, b domain.Row) bool {
	aDate := a.Due.Kind == domain.DueDate
	bDate := b.Due.Kind == domain.DueDate
	if aDate != bDate {
		return aDate
	}
	if aDate {
		return a.Due.Date.Before(b.Due.Date)
	}
	return kmKey(a) < kmKey(b)
}
