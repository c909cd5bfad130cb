// Package report lays the categorized rows out as one styled table per
// bucket in a single workbook, and defines the sheet geometry shared with
// the prior-report reader.
package report

import "kontrola/internal/domain"

// Band is one fixed column band of the sheet. Tables of the same band are
// written strictly sequentially: each advances the row cursor by its row
// count plus a fixed gap, so ranges never overlap.
type Band struct {
	// StartCol is the 1-based column of the band's first (identifier) cell.
	StartCol int

	// Width is the number of columns: 3 for {SPZ, due, note} tables,
	// 4 for the tables carrying the control name.
	Width int

	// Buckets are rendered top to bottom in this order.
	Buckets []domain.Bucket
}

// firstRow is where every band's first table header goes.
const firstRow = 2

// tableGap is the number of rows between a table's last row and the next
// table's header, matching the historical report layout.
const tableGap = 2

// nonTruckOffset pushes the Osobné table well below Ostatné so manual rows
// appended to Ostatné don't collide with it on the next regeneration.
const nonTruckOffset = 20

// Bands is the full sheet layout. The prior-report reader walks the same
// bands when recovering notes.
var Bands = []Band{
	{StartCol: 2, Width: 3, Buckets: []domain.Bucket{ // B–D
		domain.StkEk, domain.Tachograph, domain.Dpf, domain.Calibration, domain.Certificate,
	}},
	{StartCol: 6, Width: 3, Buckets: []domain.Bucket{ // F–H
		domain.EngineOil, domain.DifferentialOil, domain.Geometry,
		domain.AnnualTractor, domain.AnnualTrailer, domain.Brakes,
	}},
	{StartCol: 10, Width: 4, Buckets: []domain.Bucket{ // J–M
		domain.Other, domain.NonTruck,
	}},
}

// tableStyles alternates the built-in Excel table styles per bucket, kept
// from the historical report.
var tableStyles = map[domain.Bucket]string{
	domain.StkEk:           "TableStyleMedium10",
	domain.Tachograph:      "TableStyleMedium13",
	domain.Dpf:             "TableStyleMedium11",
	domain.Calibration:     "TableStyleMedium9",
	domain.Certificate:     "TableStyleMedium11",
	domain.EngineOil:       "TableStyleMedium9",
	domain.DifferentialOil: "TableStyleMedium9",
	domain.Geometry:        "TableStyleMedium11",
	domain.AnnualTractor:   "TableStyleMedium11",
	domain.AnnualTrailer:   "TableStyleMedium11",
	domain.Brakes:          "TableStyleMedium9",
	domain.Other:           "TableStyleMedium14",
	domain.NonTruck:        "TableStyleMedium12",
}

// columnWidths are the fixed band column widths of the historical report.
var columnWidths = map[string]float64{
	"B": 17.8, "C": 18.5, "D": 17.5,
	"F": 14.75, "G": 18.5, "H": 17.5,
	"J": 10.4, "K": 18.7, "L": 37, "M": 17.5,
}

// domainHeader names the due column of a bucket's table.
func domainHeader(b domain.Bucket) string {
	if b.DistanceDomain() {
		return "Kilometrov"
	}
	return "Datum"
}

// headers builds the header row for a bucket's table.
func headers(b domain.Bucket) []string {
	if b.HasControlColumn() {
		return []string{b.Label(), domainHeader(b), "Kontrola", "Poznamka"}
	}
	return []string{b.Label(), domainHeader(b), "Poznamka"}
}
