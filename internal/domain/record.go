// Package domain holds the business objects shared by the pipeline stages:
// maintenance records as read from the obligation export, the tagged due
// value, category buckets, and the display rows the report is built from.
package domain

import (
	"strconv"
	"strings"
	"time"
)

// Layout is the Czech date format used across all exports and the report.
const Layout = "02.01.2006"

// DueKind tags which due domain applies to a record.
type DueKind int

const (
	// DueUnknown marks records whose due value could not be determined.
	// They are excluded from the report before sorting.
	DueUnknown DueKind = iota

	// DueDate means the obligation is due at a calendar date.
	DueDate

	// DueDistance means the obligation is due at an odometer reading (km).
	DueDistance
)

// Due is the tagged due value. Exactly one of Date/Km is meaningful,
// selected by Kind.
type Due struct {
	Kind DueKind
	Date time.Time
	Km   int
}

// DateDue builds a calendar due value.
func DateDue(t time.Time) Due { return Due{Kind: DueDate, Date: t} }

// DistanceDue builds an odometer due value.
func DistanceDue(km int) Due { return Due{Kind: DueDistance, Km: km} }

// Raw renders the due value before any delta annotation: the formatted date
// for calendar dues, the bare integer for distance dues, "" for unknown.
// This is the value dedup and the prior-report key computation start from.
func (d Due) Raw() string {
	switch d.Kind {
	case DueDate:
		return d.Date.Format(Layout)
	case DueDistance:
		return strconv.Itoa(d.Km)
	}
	return ""
}

// MaintenanceRecord is one obligation row from the raw export, immutable
// after ingestion.
type MaintenanceRecord struct {
	Vehicle   string // SPZ as it appears in the export
	Control   string // control label, e.g. "kontrola technická  STK"
	Due       Due
	CurrentKm *int // odometer reading embedded in the export row, if any
}

// Row is the unit the report assembler sorts and writes. DueDisplay already
// carries the computed delta annotation for distance rows.
type Row struct {
	Vehicle    string
	Due        Due    // retained for sorting
	DueDisplay string // fully rendered due cell value
	Control    string // only populated for the four-column buckets
	Note       string // carried over from the prior report, "" when none
	Overdue    bool   // triggers the red due cell
}

// NormalizeSPZ canonicalizes a vehicle identifier for matching: all
// whitespace removed, lowercased. The report itself keeps the original
// spelling; this form is only used as a map/set key.
func NormalizeSPZ(spz string) string {
	return strings.ToLower(strings.Join(strings.Fields(spz), ""))
}

// SinkKey is the normalization the mileage hand-off uses: spaces stripped,
// case preserved. It must match the mileage-export key normalization so
// downstream consumers can join without re-normalizing.
func SinkKey(spz string) string {
	return strings.Join(strings.Fields(spz), "")
}
