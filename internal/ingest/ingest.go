// Package ingest reads the raw obligation export into normalized
// per-vehicle maintenance records.
//
// Columns are addressed by name, not position, and header matching is
// tolerant: header text is lowercased and stripped of diacritics before
// lookup, so "Název kontr." and "nazev kontr." resolve identically. The
// export's due-date column wins over the due-distance column; a row with
// neither produces a record with an unknown due value, which the due
// evaluator later drops from the report.
package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"kontrola/internal/domain"
)

// Canonical column names after header normalization.
const (
	colSPZ     = "spz"
	colControl = "nazev_kontr"
	colDueDate = "nasledujici_dne"
	colDueKm   = "nasl_km_od_zar"
	colCurKm   = "akt_km_od_zar"
)

// dateLayouts are the renderings a due-date cell can arrive in, depending
// on how the desktop application formatted the export.
var dateLayouts = []string{
	"2006-01-02",
	domain.Layout, // 02.01.2006
	"2.1.2006",
	"2006-01-02 15:04:05",
}

// ReadExport parses the obligation export at path and returns the
// vehicle→records mapping. It fails when the file cannot be opened or when
// the required columns (SPZ, control name) cannot be located; that is the
// pipeline's only fatal input condition.
func ReadExport(path string) (map[string][]domain.MaintenanceRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open export: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("ingest: read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("ingest: export %s is empty", path)
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[normalizeHeader(h)] = i
	}
	spzIdx, okSPZ := cols[colSPZ]
	ctlIdx, okCtl := cols[colControl]
	if !okSPZ || !okCtl {
		return nil, fmt.Errorf("ingest: export %s: required columns not found (spz=%v control=%v)", path, okSPZ, okCtl)
	}
	dueDateIdx, hasDueDate := cols[colDueDate]
	dueKmIdx, hasDueKm := cols[colDueKm]
	curKmIdx, hasCurKm := cols[colCurKm]

	cell := func(row []string, idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	out := make(map[string][]domain.MaintenanceRecord)
	for _, row := range rows[1:] {
		spz := cell(row, spzIdx)
		control := ""
		if ctlIdx < len(row) {
			// Control labels are matched verbatim by the classifier;
			// keep their leading/trailing spaces intact.
			control = row[ctlIdx]
		}
		if spz == "" || strings.TrimSpace(control) == "" {
			continue
		}

		rec := domain.MaintenanceRecord{Vehicle: spz, Control: control}

		// Due precedence: valid calendar date, then kilometers, then unknown.
		if hasDueDate {
			if t, ok := parseDate(cell(row, dueDateIdx)); ok {
				rec.Due = domain.DateDue(t)
			}
		}
		if rec.Due.Kind == domain.DueUnknown && hasDueKm {
			if km, ok := parseInt(cell(row, dueKmIdx)); ok {
				rec.Due = domain.DistanceDue(km)
			}
		}
		if hasCurKm {
			if km, ok := parseInt(cell(row, curKmIdx)); ok {
				rec.CurrentKm = &km
			}
		}

		out[spz] = append(out[spz], rec)
	}
	return out, nil
}

// parseDate tries the known export date renderings.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseInt converts a numeric cell, tolerating float renderings and
// grouping spaces. Malformed cells count as absent.
func parseInt(s string) (int, bool) {
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if fl, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
		return int(fl), true
	}
	return 0, false
}

// normalizeHeader converts arbitrary header text into a lowercase ASCII
// identifier: diacritics stripped, runs of non-alphanumerics collapsed to
// a single underscore.
func normalizeHeader(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	ascii, _, err := transform.String(t, s)
	if err != nil {
		ascii = s
	}
	ascii = strings.ToLower(ascii)

	var b strings.Builder
	lastUnderscore := true // trims leading separators
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimRight(b.String(), "_")
}
