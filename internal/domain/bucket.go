package domain

// Bucket is the fixed, closed set of obligation categories. Every record
// lands in exactly one bucket; Other is the catch-all for truck controls
// and NonTruck collects everything belonging to the special vehicles.
type Bucket int

const (
	StkEk Bucket = iota
	Tachograph
	Dpf
	Calibration
	Certificate
	AnnualTractor
	AnnualTrailer
	EngineOil
	DifferentialOil
	Geometry
	Brakes
	Other
	NonTruck

	numBuckets
)

// Buckets lists all buckets in declaration order.
func Buckets() []Bucket {
	out := make([]Bucket, 0, numBuckets)
	for b := Bucket(0); b < numBuckets; b++ {
		out = append(out, b)
	}
	return out
}

// bucketInfo drives both report rendering and prior-report recognition.
// Label is the first header cell of the bucket's table; the same string is
// matched when scanning an earlier report for notes.
type bucketInfo struct {
	label    string
	table    string // Excel table name, ASCII only
	distance bool   // true when the due column is kilometers
	control  bool   // true when the table carries the extra control column
}

var bucketInfos = [numBuckets]bucketInfo{
	StkEk:           {label: "STK + EK", table: "STK_EK"},
	Tachograph:      {label: "Stiahnutie Tach.", table: "Tachograf"},
	Dpf:             {label: "DPF čistenie", table: "DPF", distance: true},
	Calibration:     {label: "Ciachovanie", table: "Ciachovanie"},
	Certificate:     {label: "L- Certifikát", table: "L_Certifikat"},
	AnnualTractor:   {label: "Ročná tahač", table: "Rocna_tahac"},
	AnnualTrailer:   {label: "Ročná náves", table: "Rocna_naves"},
	EngineOil:       {label: "Motor. olej", table: "Motor_olej", distance: true},
	DifferentialOil: {label: "Difer. olej", table: "Difer_olej", distance: true},
	Geometry:        {label: "Geometria", table: "Geometria"},
	Brakes:          {label: "Kontrola Bŕzd", table: "Kontrola_Brzd"},
	Other:           {label: "Ostatné", table: "Ostatne", control: true},
	NonTruck:        {label: "Osobné", table: "Osobne", control: true},
}

// Label returns the bucket's table title, e.g. "STK + EK".
func (b Bucket) Label() string { return bucketInfos[b].label }

// TableName returns the ASCII Excel table name for the bucket.
func (b Bucket) TableName() string { return bucketInfos[b].table }

// DistanceDomain reports whether the bucket's due column holds kilometers.
// The two mixed buckets (Other, NonTruck) return false; their rows carry
// their own due kind.
func (b Bucket) DistanceDomain() bool { return bucketInfos[b].distance }

// HasControlColumn reports whether the bucket's table carries the control
// name between the due column and the note column.
func (b Bucket) HasControlColumn() bool { return bucketInfos[b].control }

// String returns the label for logging.
func (b Bucket) String() string { return bucketInfos[b].label }

// BucketByLabel resolves a table title back to its bucket, used when
// scanning a previously generated report. ok is false for unknown titles.
func BucketByLabel(label string) (Bucket, bool) {
	for b := Bucket(0); b < numBuckets; b++ {
		if bucketInfos[b].label == label {
			return b, true
		}
	}
	return 0, false
}
