// Package notes recovers the free-text annotations people type into the
// generated report and carries them into the next run.
//
// The previous report is scanned band by band (same geometry the assembler
// writes). A row whose first cell is a known table title switches the
// current bucket; every other non-empty row is remembered under the exact
// key (bucket, vehicle, rendered due value). Carry-forward is exact-match
// only: if the rendered due string changed between runs (for example the
// kilometer delta moved with the mileage index), the note is dropped.
package notes

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"kontrola/internal/domain"
	"kontrola/internal/report"
)

// Prior holds the notes of a previously generated report. A nil Prior is
// valid and matches nothing.
type Prior map[string]string

func key(b domain.Bucket, vehicle, dueDisplay string) string {
	return b.Label() + "\x1f" + vehicle + "\x1f" + dueDisplay
}

// ReadPrior loads the notes of the report at path. A missing file is not
// an error: the first run simply has no notes to carry.
func ReadPrior(path string) (Prior, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("notes: no prior report at %s", path)
			return nil, nil
		}
		return nil, fmt.Errorf("notes: open prior report: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("notes: read prior rows: %w", err)
	}

	cell := func(row []string, col int) string {
		idx := col - 1 // GetRows is 0-based, bands are 1-based
		if idx >= 0 && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	prior := make(Prior)
	for _, band := range report.Bands {
		current := domain.Bucket(-1)
		for _, row := range rows {
			first := cell(row, band.StartCol)
			if first == "" {
				continue
			}
			if b, ok := domain.BucketByLabel(first); ok {
				current = b
				continue
			}
			if current < 0 {
				continue
			}
			due := cell(row, band.StartCol+1)
			note := cell(row, band.StartCol+band.Width-1)
			if note == "" {
				continue
			}
			prior[key(current, first, due)] = note
		}
	}
	return prior, nil
}

// Attach copies prior notes onto the rows of one bucket. Only rows whose
// vehicle and fully rendered due value match a prior row get a note.
func (p Prior) Attach(bucket domain.Bucket, rows []domain.Row) {
	if p == nil {
		return
	}
	for i := range rows {
		if note, ok := p[key(bucket, rows[i].Vehicle, rows[i].DueDisplay)]; ok {
			rows[i].Note = note
		}
	}
}
