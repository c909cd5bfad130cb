package ingest

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"kontrola/internal/domain"
)

// writeExport builds a minimal obligation export fixture. Each row is
// [spz, control, dueDate, dueKm, currentKm].
func writeExport(t *testing.T, header []string, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	all := append([][]string{header}, rows...)
	for i, row := range all {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellStr(sheet, cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "doprava.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
	return path
}

var exportHeader = []string{"SPZ", "Název kontr.", "Následující dne", "Násl. km od zař.", "Akt. km od zař."}

func TestReadExport(t *testing.T) {
	path := writeExport(t, exportHeader, [][]string{
		{"AB 123 CD", "kontrola technická  STK", "2025-06-15", "", ""},
		{"AB 123 CD", "výmena motorového oleje ", "", "60000", "58000"},
		{"EF 456 GH", "kontrola emisná", "15.06.2025", "", ""},
	})

	got, err := ReadExport(path)
	if err != nil {
		t.Fatalf("ReadExport: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("vehicles = %d, want 2", len(got))
	}

	ab := got["AB 123 CD"]
	if len(ab) != 2 {
		t.Fatalf("AB 123 CD records = %d, want 2", len(ab))
	}
	if ab[0].Control != "kontrola technická  STK" {
		t.Errorf("control = %q, inner spacing must survive", ab[0].Control)
	}
	if ab[0].Due.Kind != domain.DueDate || ab[0].Due.Raw() != "15.06.2025" {
		t.Errorf("record 0 due = %+v, want date 15.06.2025", ab[0].Due)
	}
	if ab[1].Due.Kind != domain.DueDistance || ab[1].Due.Km != 60000 {
		t.Errorf("record 1 due = %+v, want 60000 km", ab[1].Due)
	}
	if ab[1].CurrentKm == nil || *ab[1].CurrentKm != 58000 {
		t.Errorf("record 1 current km = %v, want 58000", ab[1].CurrentKm)
	}

	// Both date renderings resolve to the same due value.
	ef := got["EF 456 GH"]
	if len(ef) != 1 || ef[0].Due.Raw() != "15.06.2025" {
		t.Errorf("EF 456 GH = %+v, want one record due 15.06.2025", ef)
	}
}

func TestReadExportDatePrecedence(t *testing.T) {
	// A row carrying both a date and kilometers is a date obligation.
	path := writeExport(t, exportHeader, [][]string{
		{"AB 123 CD", "kontrola technická  STK", "2025-06-15", "120000", "100000"},
	})
	got, err := ReadExport(path)
	if err != nil {
		t.Fatalf("ReadExport: %v", err)
	}
	rec := got["AB 123 CD"][0]
	if rec.Due.Kind != domain.DueDate {
		t.Errorf("due kind = %v, want DueDate", rec.Due.Kind)
	}
}

func TestReadExportSkipsIncompleteRows(t *testing.T) {
	path := writeExport(t, exportHeader, [][]string{
		{"", "kontrola technická  STK", "2025-06-15", "", ""},
		{"AB 123 CD", "  ", "2025-06-15", "", ""},
		{"AB 123 CD", "kontrola emisná", "", "", ""},
	})
	got, err := ReadExport(path)
	if err != nil {
		t.Fatalf("ReadExport: %v", err)
	}
	recs := got["AB 123 CD"]
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1 (blank spz and blank control skipped)", len(recs))
	}
	// A row with neither due cell still ingests; the due stays unknown.
	if recs[0].Due.Kind != domain.DueUnknown {
		t.Errorf("due kind = %v, want DueUnknown", recs[0].Due.Kind)
	}
}

func TestReadExportMissingRequiredColumns(t *testing.T) {
	path := writeExport(t, []string{"SPZ", "Následující dne"}, [][]string{
		{"AB 123 CD", "2025-06-15"},
	})
	if _, err := ReadExport(path); err == nil {
		t.Fatal("ReadExport succeeded without a control column")
	}
}

func TestReadExportMissingFile(t *testing.T) {
	if _, err := ReadExport(filepath.Join(t.TempDir(), "nope.xlsx")); err == nil {
		t.Fatal("ReadExport succeeded on a missing file")
	}
}

func TestNormalizeHeader(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"SPZ", "spz"},
		{"Název kontr.", "nazev_kontr"},
		{"Následující dne", "nasledujici_dne"},
		{"Násl. km od zař.", "nasl_km_od_zar"},
		{"Akt. km od zař.", "akt_km_od_zar"},
		{"  Weird -- Header  ", "weird_header"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := normalizeHeader(tc.in); got != tc.want {
			t.Errorf("normalizeHeader(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseInt(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"60000", 60000, true},
		{"60 000", 60000, true},
		{"60000.0", 60000, true},
		{"60000,5", 60000, true},
		{"", 0, false},
		{"n/a", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseInt(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("parseInt(%q) = (%d, %v), want (%d, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
