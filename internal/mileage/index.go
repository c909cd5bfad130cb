// Package mileage builds the vehicle→current-kilometers index from the
// fleet-portal export and guards it with an external time-accuracy check.
//
// The index is optional by design: when the export is missing or the clock
// gate fails, the whole stage degrades to "unavailable" (a nil Index) and
// every distance-domain row downstream falls back to unresolved display.
// A partial or stale index is never returned.
package mileage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"kontrola/internal/domain"
)

// Export layout constants. The portal export carries nine banner rows
// before the data and is terminated by a summary row.
const (
	dataStartRow = 9        // 0-based row index of the first data row
	keyCol       = 0        // vehicle identifier column
	kmCol        = 5        // mileage column
	terminator   = "Celkem" // summary row sentinel in the key column
)

// Index maps a normalized vehicle key (spaces stripped) to its current
// odometer reading. A nil Index means the stage is unavailable.
type Index map[string]int

// Has reports whether the index is available and contains the vehicle.
func (ix Index) Has(spz string) bool {
	if ix == nil {
		return false
	}
	_, ok := ix[domain.SinkKey(spz)]
	return ok
}

// Lookup returns the current kilometers for spz.
func (ix Index) Lookup(spz string) (int, bool) {
	if ix == nil {
		return 0, false
	}
	km, ok := ix[domain.SinkKey(spz)]
	return km, ok
}

// ReadExport parses the portal mileage export at path. Rows before the
// banner boundary are skipped and reading stops at the terminator row.
// Keys are stripped of whitespace; unparsable mileage cells default to 0.
func ReadExport(path string) (Index, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("mileage: open export: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("mileage: read rows: %w", err)
	}

	ix := make(Index)
	for i, row := range rows {
		if i < dataStartRow || len(row) == 0 {
			continue
		}
		key := domain.SinkKey(row[keyCol])
		if key == terminator {
			break
		}
		if key == "" {
			continue
		}
		km := 0
		if len(row) > kmCol {
			km = parseKm(row[kmCol])
		}
		ix[key] = km
	}
	return ix, nil
}

// Fleet snapshot layout: vehicle name in column B, kilometers in column S.
const (
	fleetNameCol = 1
	fleetKmCol   = 18
)

// ReadFleetSnapshot parses the secondary fleet export (vozidla). It is the
// fallback feed for the mileage hand-off when the portal export was
// skipped. Rows with an empty name are dropped; missing km becomes 0.
func ReadFleetSnapshot(path string) (Index, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("mileage: open fleet snapshot: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("mileage: read fleet rows: %w", err)
	}

	ix := make(Index)
	for i, row := range rows {
		if i == 0 || len(row) <= fleetNameCol {
			continue
		}
		name := strings.TrimSpace(row[fleetNameCol])
		if name == "" {
			continue
		}
		km := 0
		if len(row) > fleetKmCol {
			km = parseKm(row[fleetKmCol])
		}
		ix[domain.SinkKey(name)] = km
	}
	return ix, nil
}

// parseKm converts an export cell to kilometers. Cells arrive as integers,
// occasionally as float renderings or with grouping spaces; anything else
// counts as absent.
func parseKm(s string) int {
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if fl, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
		return int(fl)
	}
	return 0
}
