// Package classify assigns every maintenance record to exactly one category
// bucket. Classification is an ordered rule table evaluated first-match-wins:
//
//  1. STK/EK controls always land in StkEk, whatever the vehicle is.
//  2. Controls of a special (non-truck) vehicle land in NonTruck.
//  3. The control keyword table routes to the remaining buckets.
//  4. Everything else is Other.
//
// The order matters: swapping rules 1 and 2 would silently move STK controls
// of special vehicles out of the STK table.
package classify

import (
	"kontrola/internal/domain"
)

// DefaultSpecialSPZ is the built-in set of vehicles that are not trucks
// (cars, forklifts, the crane, the compressor). Matching is done on the
// normalized form, so spacing and case in this list are cosmetic.
var DefaultSpecialSPZ = []string{
	"ZC 859 BR", "ZC 954 BA", "EL 638 AE", "ZH 667 CP",
	"ZC 324 BL", "ZC 685 BP", "ZC 642 BU", "ZC 651 BS",
	"ZC 137 BU", "ZC 388 BS", "ZC Z086", "ZC 206 YD",
	"kompresor", "ZC 594 BN", "VZV", "VZV2", "zeriav", "BL040EE",
}

// controlKeywords maps the exact control labels of the source system to
// their buckets. Labels are compared verbatim, including the trailing
// spaces some of them carry in the export.
var controlKeywords = []struct {
	bucket   domain.Bucket
	controls []string
}{
	{domain.Certificate, []string{"dokument L- Certifikát  Lärmarmes Kraft."}},
	{domain.Tachograph, []string{"kontrola stiahnutie tachografu"}},
	{domain.Dpf, []string{"výmena DPF filtra "}},
	{domain.Calibration, []string{"kontrola pneumatik ciachovanie tachogr. "}},
	{domain.EngineOil, []string{"výmena motorového oleje "}},
	{domain.DifferentialOil, []string{"výmena oleja diferenciálu"}},
	{domain.Geometry, []string{"servis kontrola nastavenie geometrie"}},
	{domain.Brakes, []string{"servis kontrola komplet  bŕzd"}},
	{domain.AnnualTrailer, []string{"servis ročná prehliadka náves"}},
	{domain.AnnualTractor, []string{"servis ročná prehliadka ťahač"}},
}

// stkEkControls is rule 1 and is kept out of the generic keyword table so
// the override order is explicit in code, not an artifact of slice order.
var stkEkControls = []string{"kontrola emisná", "kontrola technická  STK"}

// rule is one (predicate, bucket) pair of the ordered rule list.
type rule struct {
	match  func(rec domain.MaintenanceRecord) bool
	bucket domain.Bucket
}

// Classifier is a pure, order-sensitive record classifier.
type Classifier struct {
	rules []rule
}

// New builds a classifier. specialSPZ overrides the special-vehicle set;
// pass nil to use DefaultSpecialSPZ.
func New(specialSPZ []string) *Classifier {
	if specialSPZ == nil {
		specialSPZ = DefaultSpecialSPZ
	}
	special := make(map[string]struct{}, len(specialSPZ))
	for _, spz := range specialSPZ {
		special[domain.NormalizeSPZ(spz)] = struct{}{}
	}

	stkEk := stringSet(stkEkControls)

	rules := []rule{
		{
			match:  func(r domain.MaintenanceRecord) bool { return inSet(stkEk, r.Control) },
			bucket: domain.StkEk,
		},
		{
			match: func(r domain.MaintenanceRecord) bool {
				_, ok := special[domain.NormalizeSPZ(r.Vehicle)]
				return ok
			},
			bucket: domain.NonTruck,
		},
	}
	for _, kw := range controlKeywords {
		set := stringSet(kw.controls)
		b := kw.bucket
		rules = append(rules, rule{
			match:  func(r domain.MaintenanceRecord) bool { return inSet(set, r.Control) },
			bucket: b,
		})
	}

	return &Classifier{rules: rules}
}

// Classify returns the bucket for rec. It is total: records matching no
// rule land in Other.
func (c *Classifier) Classify(rec domain.MaintenanceRecord) domain.Bucket {
	for _, r := range c.rules {
		if r.match(rec) {
			return r.bucket
		}
	}
	return domain.Other
}

// Group classifies every record of every vehicle and returns the per-bucket
// vehicle→records mapping the listifier consumes.
func (c *Classifier) Group(data map[string][]domain.MaintenanceRecord) map[domain.Bucket]map[string][]domain.MaintenanceRecord {
	out := make(map[domain.Bucket]map[string][]domain.MaintenanceRecord, len(domain.Buckets()))
	for vehicle, recs := range data {
		for _, rec := range recs {
			b := c.Classify(rec)
			if out[b] == nil {
				out[b] = make(map[string][]domain.MaintenanceRecord)
			}
			out[b][vehicle] = append(out[b][vehicle], rec)
		}
	}
	return out
}

func stringSet(ss []string) map[string]struct{} {
	m := make(map[string]struct{}, len(ss))
	for _, s := range ss {
		m[s] = struct{}{}
	}
	return m
}

func inSet(m map[string]struct{}, s string) bool {
	_, ok := m[s]
	return ok
}
