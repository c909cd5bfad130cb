package classify

import (
	"testing"

	"kontrola/internal/domain"
)

func rec(vehicle, control string) domain.MaintenanceRecord {
	return domain.MaintenanceRecord{Vehicle: vehicle, Control: control}
}

func TestClassifyPriorityOrder(t *testing.T) {
	c := New(nil)

	cases := []struct {
		name    string
		vehicle string
		control string
		want    domain.Bucket
	}{
		{"stk keyword", "1AB 1234", "kontrola technická  STK", domain.StkEk},
		{"ek keyword", "1AB 1234", "kontrola emisná", domain.StkEk},
		// Rule 1 beats rule 2: STK of a special vehicle stays in StkEk.
		{"stk on special vehicle", "ZC 859 BR", "kontrola technická  STK", domain.StkEk},
		{"special vehicle other control", "ZC 859 BR", "výmena motorového oleje ", domain.NonTruck},
		// Special-set matching is whitespace- and case-insensitive.
		{"special vehicle spacing", "zc859br", "servis kontrola nastavenie geometrie", domain.NonTruck},
		{"special vehicle case", "vzv", "výmena motorového oleje ", domain.NonTruck},
		{"tachograph", "1AB 1234", "kontrola stiahnutie tachografu", domain.Tachograph},
		{"dpf", "1AB 1234", "výmena DPF filtra ", domain.Dpf},
		{"calibration", "1AB 1234", "kontrola pneumatik ciachovanie tachogr. ", domain.Calibration},
		{"certificate", "1AB 1234", "dokument L- Certifikát  Lärmarmes Kraft.", domain.Certificate},
		{"engine oil", "1AB 1234", "výmena motorového oleje ", domain.EngineOil},
		{"differential oil", "1AB 1234", "výmena oleja diferenciálu", domain.DifferentialOil},
		{"geometry", "1AB 1234", "servis kontrola nastavenie geometrie", domain.Geometry},
		{"brakes", "1AB 1234", "servis kontrola komplet  bŕzd", domain.Brakes},
		{"annual trailer", "1AB 1234", "servis ročná prehliadka náves", domain.AnnualTrailer},
		{"annual tractor", "1AB 1234", "servis ročná prehliadka ťahač", domain.AnnualTractor},
		// Keyword match is verbatim; a missing trailing space is a different label.
		{"near-miss keyword", "1AB 1234", "výmena DPF filtra", domain.Other},
		{"unknown control", "1AB 1234", "kontrola niečoho iného", domain.Other},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Classify(rec(tc.vehicle, tc.control)); got != tc.want {
				t.Errorf("Classify(%q, %q) = %v, want %v", tc.vehicle, tc.control, got, tc.want)
			}
		})
	}
}

func TestClassifyIsTotal(t *testing.T) {
	c := New(nil)
	// Whatever we throw at it, exactly one bucket comes back.
	inputs := []domain.MaintenanceRecord{
		rec("", ""),
		rec("???", "!!!"),
		rec("ZC 859 BR", ""),
	}
	for _, in := range inputs {
		got := c.Classify(in)
		if got < domain.StkEk || got > domain.NonTruck {
			t.Errorf("Classify(%q, %q) returned out-of-range bucket %d", in.Vehicle, in.Control, got)
		}
	}
}

func TestClassifySpecialSetOverride(t *testing.T) {
	c := New([]string{"XY 000 ZZ"})

	if got := c.Classify(rec("XY 000 ZZ", "výmena motorového oleje ")); got != domain.NonTruck {
		t.Errorf("override set: got %v, want NonTruck", got)
	}
	// The built-in set is replaced, not extended.
	if got := c.Classify(rec("ZC 859 BR", "výmena motorového oleje ")); got != domain.EngineOil {
		t.Errorf("default entry with override set: got %v, want EngineOil", got)
	}
}

func TestGroupKeepsVehicleLists(t *testing.T) {
	c := New(nil)
	data := map[string][]domain.MaintenanceRecord{
		"AB 123 CD": {
			rec("AB 123 CD", "kontrola technická  STK"),
			rec("AB 123 CD", "výmena motorového oleje "),
		},
	}

	grouped := c.Group(data)

	if n := len(grouped[domain.StkEk]["AB 123 CD"]); n != 1 {
		t.Errorf("StkEk rows for vehicle = %d, want 1", n)
	}
	if n := len(grouped[domain.EngineOil]["AB 123 CD"]); n != 1 {
		t.Errorf("EngineOil rows for vehicle = %d, want 1", n)
	}
	if _, ok := grouped[domain.Other]; ok {
		t.Errorf("unexpected Other bucket: %v", grouped[domain.Other])
	}
}
