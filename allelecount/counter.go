package allelecount

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/grailbio/base/log"
	"github.com/grailbio/hts/sam"
	"github.com/pkg/errors"

	"github.com/strandseq/alleles/interval"
	"github.com/strandseq/alleles/reference"
)

// Separator that appears between the fragment name and the read number in
// the key constructed by readKey.
const fragmentNameReadNumberSeparator = "/"

// Number of duplicate-read diagnostics logged per Counter instance.
const maxDuplicateReadLogs = 1

// ReadRequirements holds the quality thresholds a read and its bases must
// meet to contribute to the counts.
type ReadRequirements struct {
	// MinMappingQuality is the minimum mapping quality for a read to be
	// counted at all.
	MinMappingQuality byte
	// MinBaseQuality is the minimum mean base quality for an allele to be
	// counted as confident.  Alleles below it are still produced, flagged
	// low-quality.
	MinBaseQuality int
}

// Options configures a Counter.
type Options struct {
	ReadRequirements ReadRequirements
	// TrackRefReads enables per-read tracking of reference-supporting reads
	// at candidate positions.
	TrackRefReads bool
}

// Counter accumulates per-position allele counts for one genomic interval.
// It owns one AlleleCount per position, contiguous and sorted by position,
// and borrows a reference.Genome that must outlive it.  A Counter is not
// safe for concurrent mutation.
type Counter struct {
	genome reference.Genome
	region interval.Interval
	opts   Options
	// candidatePositions holds interval-relative offsets of caller-flagged
	// sites of interest, sorted ascending for binary-search membership tests.
	candidatePositions []int
	// refBases caches the reference bases covering the full interval.
	refBases string
	counts   []AlleleCount
	// nReadsCounted is the number of reads that passed the mapping-quality
	// filter and were processed.
	nReadsCounted int
	// nDuplicateReads counts duplicate read-key collisions, for rate-limited
	// logging only; it never affects the counts themselves.
	nDuplicateReads int
}

// New constructs a Counter over the given interval.  It fails if the genome
// cannot supply bases for the full interval.  candidatePositions are
// absolute coordinates; they are normalized to interval-relative offsets and
// sorted.
func New(genome reference.Genome, region interval.Interval, candidatePositions []PosType, opts Options) (*Counter, error) {
	refBases, err := genome.GetBases(region)
	if err != nil {
		return nil, errors.Wrapf(err, "allelecount: interval %s not covered by reference", region)
	}
	c := &Counter{
		genome:   genome,
		region:   region,
		opts:     opts,
		refBases: refBases,
	}
	c.candidatePositions = make([]int, 0, len(candidatePositions))
	for _, pos := range candidatePositions {
		c.candidatePositions = append(c.candidatePositions, int(pos-region.Start))
	}
	sort.Ints(c.candidatePositions)
	c.counts = make([]AlleleCount, region.Len())
	for i := range c.counts {
		c.counts[i] = AlleleCount{
			Position:      region.Start + PosType(i),
			RefBase:       refBases[i],
			TrackRefReads: opts.TrackRefReads,
		}
	}
	return c, nil
}

// Interval returns the interval the Counter tracks.
func (c *Counter) Interval() interval.Interval { return c.region }

// IntervalLength returns the number of tracked positions.
func (c *Counter) IntervalLength() int { return len(c.counts) }

// NReadsCounted returns the number of reads processed so far, not counting
// reads dropped by the mapping-quality filter.
func (c *Counter) NReadsCounted() int { return c.nReadsCounted }

// Counts returns the per-position AlleleCount records, sorted by position.
// The slice is owned by the Counter; callers must not mutate it.
func (c *Counter) Counts() []AlleleCount { return c.counts }

// PositionIndex returns the index into Counts of the given absolute
// position, or -1 if the position lies outside the interval.
func (c *Counter) PositionIndex(pos PosType) int {
	return AlleleIndex(c.counts, pos)
}

func (c *Counter) isValidRefOffset(offset int) bool {
	return offset >= 0 && offset < len(c.refBases)
}

func (c *Counter) isCandidatePosition(offset int) bool {
	idx := sort.SearchInts(c.candidatePositions, offset)
	return idx < len(c.candidatePositions) && c.candidatePositions[idx] == offset
}

// RefBases returns the reference bases of the length-len sub-range of the
// interval starting at relative offset relStart, or "" if the sub-range runs
// off the contig.  length must be >= 1.
func (c *Counter) RefBases(relStart, length int) string {
	if length <= 0 {
		panic(fmt.Sprintf("allelecount: RefBases length must be >= 1, got %d", length))
	}
	absStart := c.region.Start + PosType(relStart)
	region := interval.New(c.region.RefName, absStart, absStart+PosType(length))
	if !c.genome.IsValidInterval(region) {
		return ""
	}
	bases, err := c.genome.GetBases(region)
	if err != nil {
		panic(fmt.Sprintf("allelecount: reference lookup failed for valid interval %s: %v", region, err))
	}
	return bases
}

// canBasesBeUsed reports whether the length read bases starting at offset
// can generate an allele.  A non-canonical base rejects the range outright;
// a mean base quality below the configured minimum only sets lowQuality.
// offset+length must not exceed the quality track.
func (c *Counter) canBasesBeUsed(seq, qual []byte, offset, length int) (ok, lowQuality bool) {
	if offset+length > len(qual) {
		panic(fmt.Sprintf("allelecount: base range [%d, %d) exceeds quality track of length %d",
			offset, offset+length, len(qual)))
	}
	qualSum := 0
	for i := 0; i < length; i++ {
		qualSum += int(qual[offset+i])
		if !IsCanonicalBase(seq[offset+i]) {
			return false, false
		}
	}
	return true, qualSum < c.opts.ReadRequirements.MinBaseQuality*length
}

// prevBase returns the base immediately preceding readOffset, as the anchor
// for a left-anchored indel allele.  When the indel is the first operation
// touching the read there is no previous read base, so it comes from the
// reference instead.
func (c *Counter) prevBase(seq []byte, readOffset, intervalOffset int) string {
	if readOffset < 0 {
		panic("allelecount: readOffset must be 0 or greater")
	}
	if readOffset == 0 {
		return c.RefBases(intervalOffset-1, 1)
	}
	return string(seq[readOffset-1 : readOffset])
}

// makeIndelReadAllele builds the candidate event for one insertion,
// deletion, or soft-clip operation, anchored at the base preceding the
// event per VCF convention.
func (c *Counter) makeIndelReadAllele(samr *sam.Record, seq []byte, intervalOffset, readOffset int, co sam.CigarOp) ReadAllele {
	opLen := co.Len()
	prevBase := c.prevBase(seq, readOffset, intervalOffset)
	if prevBase == "" || !AreCanonicalBases(prevBase) {
		// No previous base (start of the contig), or an unusable one.
		return skipReadAllele()
	}
	var lowQuality bool
	if co.Type() != sam.CigarDeletion {
		var ok bool
		if ok, lowQuality = c.canBasesBeUsed(seq, samr.Qual, readOffset, opLen); !ok {
			return skipReadAllele()
		}
	}

	var typ AlleleType
	var bases string
	switch co.Type() {
	case sam.CigarDeletion:
		typ = Deletion
		bases = c.RefBases(intervalOffset, opLen)
		if bases == "" {
			// The deleted span runs off the contig.  Rare, but it happens in
			// practice: reads aligned past the end of an incomplete contig, or
			// aligners aware that a contig is circular, can produce such
			// CIGARs.
			log.Debug.Printf("allelecount: deletion spans off the contig for read %s at cigar %v with interval %s, interval offset %d, read offset %d",
				samr.Name, co, c.region, intervalOffset, readOffset)
			return skipReadAllele()
		}
		if !AreCanonicalBases(bases) {
			// The reference has non-canonical bases in the deleted span; don't
			// count the deletion.
			return skipReadAllele()
		}
	case sam.CigarInsertion:
		typ = Insertion
		bases = string(seq[readOffset : readOffset+opLen])
	case sam.CigarSoftClipped:
		typ = SoftClip
		bases = string(seq[readOffset : readOffset+opLen])
	default:
		panic(fmt.Sprintf("allelecount: unexpected cigar operation %v", co))
	}

	return newReadAllele(intervalOffset-1, prevBase+bases, typ, lowQuality)
}

// readAlleles translates one read's alignment operations into an ordered
// sequence of candidate events, tracking a running reference-relative offset
// and a running read-relative offset.
func (c *Counter) readAlleles(samr *sam.Record, seq []byte) []ReadAllele {
	toAdd := make([]ReadAllele, 0, len(samr.Qual))
	readOffset := 0
	intervalOffset := int(PosType(samr.Pos) - c.region.Start)
	for _, co := range samr.Cigar {
		opLen := co.Len()
		switch co.Type() {
		case sam.CigarMatch, sam.CigarEqual, sam.CigarMismatch:
			for i := 0; i < opLen; i++ {
				refOffset := intervalOffset + i
				baseOffset := readOffset + i
				if !c.isValidRefOffset(refOffset) {
					continue
				}
				ok, lowQuality := c.canBasesBeUsed(seq, samr.Qual, baseOffset, 1)
				if !ok {
					continue
				}
				typ := Substitution
				if c.refBases[refOffset] == seq[baseOffset] {
					typ = Reference
				}
				toAdd = append(toAdd, newReadAllele(refOffset, string(seq[baseOffset:baseOffset+1]), typ, lowQuality))
			}
			readOffset += opLen
			intervalOffset += opLen
		case sam.CigarInsertion, sam.CigarSoftClipped:
			// By VCF convention the event is anchored at the preceding base.
			toAdd = append(toAdd, c.makeIndelReadAllele(samr, seq, intervalOffset, readOffset, co))
			readOffset += opLen
			// No interval offset change; an insertion doesn't move us on ref.
		case sam.CigarDeletion:
			toAdd = append(toAdd, c.makeIndelReadAllele(samr, seq, intervalOffset, readOffset, co))
			// No read offset change; a deletion doesn't consume read bases.
			intervalOffset += opLen
		case sam.CigarPadded, sam.CigarSkipped:
			intervalOffset += opLen
		case sam.CigarHardClipped:
			// Hard-clipped bases are absent from the aligned sequence.
		default:
			// The remaining codes carry nothing we can count; ignore them.
		}
	}
	return toAdd
}

// addReadAlleles folds one read's candidate events into the counts.
func (c *Counter) addReadAlleles(samr *sam.Record, sampleID string, toAdd []ReadAllele) {
	for i := range toAdd {
		cur := &toAdd[i]

		// Reads can span beyond the interval; don't count outside its bounds.
		if cur.Skip || !c.isValidRefOffset(cur.Position) {
			continue
		}

		// If sequential alleles share a position, skip the earlier one.  This
		// happens when a base observation at position p is followed by an
		// indel allele which, per VCF convention, is anchored at p as well;
		// the indel supersedes the substitution.  Resolving the conflict here
		// keeps the read-to-allele translation simple.
		if i+1 < len(toAdd) && cur.Position == toAdd[i+1].Position {
			continue
		}

		ac := &c.counts[cur.Position]

		if cur.Type == Reference {
			if !cur.IsLowQuality {
				ac.RefSupportingReadCount++
			} else {
				ac.RefNonconfidentReadCount++
			}
		}

		// Non-reference alleles always get a per-read record.  Reference
		// alleles get one only when TrackRefReads is set and this position is
		// a known candidate.
		if cur.Type != Reference ||
			(c.opts.TrackRefReads && c.isCandidatePosition(cur.Position)) {
			key := readKey(samr)
			allele := MakeAllele(cur.Bases, cur.Type, 1, cur.IsLowQuality)
			if ac.ReadAlleles == nil {
				ac.ReadAlleles = make(map[string]Allele)
				ac.SampleAlleles = make(map[string][]Allele)
			}
			if _, dup := ac.ReadAlleles[key]; dup {
				// There should never be two observations under one read key,
				// but data in the wild contains duplicate records we still
				// need to process, so overwrite with a warning instead of
				// failing.
				c.nDuplicateReads++
				if c.nDuplicateReads <= maxDuplicateReadLogs {
					log.Debug.Printf("allelecount: duplicate read %s at %s:%d", key, c.region.RefName, ac.Position)
				}
			}
			ac.ReadAlleles[key] = allele
			ac.SampleAlleles[sampleID] = append(ac.SampleAlleles[sampleID], allele)
		}
	}
}

// Add processes one aligned read, updating the counts for every position the
// read covers.  Reads below the minimum mapping quality are dropped whole;
// this is a filter, not an error.
func (c *Counter) Add(samr *sam.Record, sampleID string) {
	if samr.MapQ < c.opts.ReadRequirements.MinMappingQuality {
		return
	}
	seq := samr.Seq.Expand()
	c.addReadAlleles(samr, sampleID, c.readAlleles(samr, seq))
	c.nReadsCounted++
}

// readKey uniquely identifies one sequencing read: fragment name plus read
// number from the pairing flags.
func readKey(samr *sam.Record) string {
	readNumber := 1
	if samr.Flags&sam.Read2 != 0 {
		readNumber = 2
	}
	return samr.Name + fragmentNameReadNumberSeparator + strconv.Itoa(readNumber)
}
