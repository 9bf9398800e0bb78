package allelecount

// ReadAllele is one candidate allele observation produced while translating
// a single read's alignment operations.  Position is interval-relative.
//
// A skipped ReadAllele means "no usable event here": off-contig anchors,
// non-canonical bases, and similar data-quality conditions produce one
// instead of an error, keeping the translation total.  Construct skipped
// values with skipReadAllele, never via the zero value.
type ReadAllele struct {
	Position     int
	Bases        string
	Type         AlleleType
	IsLowQuality bool
	Skip         bool
}

func newReadAllele(position int, bases string, typ AlleleType, isLowQuality bool) ReadAllele {
	return ReadAllele{Position: position, Bases: bases, Type: typ, IsLowQuality: isLowQuality}
}

func skipReadAllele() ReadAllele {
	return ReadAllele{Position: -1, Skip: true}
}
