package allelecount

import (
	"sort"
)

// Stateless aggregation over AlleleCount records, for one counter or across
// counters from multiple samples.

type alleleKey struct {
	bases string
	typ   AlleleType
}

// SumAlleleCounts groups the per-read alleles of the given AlleleCounts by
// (bases, type) and returns one aggregated Allele per group, ordered by
// bases then type.  Low-quality per-read records are excluded unless
// includeLowQuality is set.
//
// If reference support was counted but not tracked per-read (the usual
// case), a synthetic REFERENCE allele carrying the summed
// RefSupportingReadCount is appended, so callers always see the full
// accounting without the memory cost of materializing every reference read.
// That count already excludes low-quality reference reads.
func SumAlleleCounts(includeLowQuality bool, counts ...*AlleleCount) []Allele {
	sums := make(map[alleleKey]int)
	for _, ac := range counts {
		for _, allele := range ac.ReadAlleles {
			if includeLowQuality || !allele.IsLowQuality {
				sums[alleleKey{allele.Bases, allele.Type}]++
			}
		}
	}
	keys := make([]alleleKey, 0, len(sums))
	for key := range sums {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].bases != keys[j].bases {
			return keys[i].bases < keys[j].bases
		}
		return keys[i].typ < keys[j].typ
	})
	result := make([]Allele, 0, len(keys)+1)
	for _, key := range keys {
		result = append(result, MakeAllele(key.bases, key.typ, sums[key], false))
	}

	refSupport := 0
	for _, ac := range counts {
		refSupport += ac.RefSupportingReadCount
	}
	if refSupport > 0 && len(counts) > 0 && !counts[0].TrackRefReads {
		result = append(result, MakeAllele(string(counts[0].RefBase), Reference, refSupport, false))
	}
	return result
}

// TotalAlleleCounts returns the total number of counted reads across the
// given AlleleCounts: the non-reference per-read records (quality-filtered
// per includeLowQuality) plus the tracked reference-supporting counts.  This
// is the canonical denominator for allele-fraction computation.
func TotalAlleleCounts(includeLowQuality bool, counts ...*AlleleCount) int {
	total := 0
	for _, ac := range counts {
		for _, allele := range ac.ReadAlleles {
			if allele.Type != Reference && (includeLowQuality || !allele.IsLowQuality) {
				total++
			}
		}
		total += ac.RefSupportingReadCount
	}
	return total
}

// AlleleIndex returns the index of the AlleleCount with the given absolute
// position, or -1 if there is none.  counts must be sorted by position.
func AlleleIndex(counts []AlleleCount, pos PosType) int {
	idx := sort.Search(len(counts), func(i int) bool { return counts[i].Position >= pos })
	if idx == len(counts) || counts[idx].Position != pos {
		return -1
	}
	return idx
}
