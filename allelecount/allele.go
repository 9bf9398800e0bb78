package allelecount

import (
	"github.com/strandseq/alleles/interval"
)

// PosType is the integer type used to represent genomic positions.
type PosType = interval.PosType

// AlleleType describes the kind of observation one read makes at one
// position.
type AlleleType int

const (
	// Reference means the read base matches the reference base.
	Reference AlleleType = iota
	// Substitution means the read base differs from the reference base.
	Substitution
	// Insertion means the read carries bases absent from the reference.
	Insertion
	// Deletion means the read skips bases present in the reference.
	Deletion
	// SoftClip means the read has soft-clipped bases at this position.
	SoftClip
)

var alleleTypeNames = [...]string{"REFERENCE", "SUBSTITUTION", "INSERTION", "DELETION", "SOFT_CLIP"}

func (t AlleleType) String() string {
	if t < 0 || int(t) >= len(alleleTypeNames) {
		return "UNKNOWN"
	}
	return alleleTypeNames[t]
}

// Allele is one observed allele, with its observation count.  For indel and
// soft-clip alleles, Bases includes the anchor base preceding the event, per
// VCF left-anchoring convention.
type Allele struct {
	Bases        string
	Type         AlleleType
	Count        int
	IsLowQuality bool
}

// MakeAllele constructs an Allele value.
func MakeAllele(bases string, typ AlleleType, count int, isLowQuality bool) Allele {
	return Allele{Bases: bases, Type: typ, Count: count, IsLowQuality: isLowQuality}
}

// AlleleCount aggregates every allele observed at one position.  ReadAlleles
// maps read-identity keys to the allele each read supports; SampleAlleles
// groups the same alleles by sample ID.  Reference support is normally
// tracked only via the integer counters; see Counter's candidate-position
// gating for when reference reads are materialized in ReadAlleles too.
type AlleleCount struct {
	Position PosType
	RefBase  byte
	// ReadAlleles is keyed by read-identity string (fragment name + "/" +
	// read number).  Keys are unique per read.
	ReadAlleles map[string]Allele
	// SampleAlleles holds, per sample ID, the alleles supported by that
	// sample's reads, in Add order.
	SampleAlleles map[string][]Allele
	// RefSupportingReadCount counts confident reference-matching reads.
	// Low-quality reference observations go to RefNonconfidentReadCount
	// instead.
	RefSupportingReadCount   int
	RefNonconfidentReadCount int
	// TrackRefReads records whether reference-supporting reads are
	// materialized in ReadAlleles at candidate positions.
	TrackRefReads bool
}

// IsCanonicalBase returns true iff b is one of the unambiguous nucleotide
// symbols A/C/G/T.
func IsCanonicalBase(b byte) bool {
	switch b {
	case 'A', 'C', 'G', 'T':
		return true
	}
	return false
}

// AreCanonicalBases returns true iff bases is nonempty and every base is
// canonical.
func AreCanonicalBases(bases string) bool {
	if len(bases) == 0 {
		return false
	}
	for i := 0; i < len(bases); i++ {
		if !IsCanonicalBase(bases[i]) {
			return false
		}
	}
	return true
}
