package interval

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PosType is the integer type used to represent genomic positions.
type PosType int64

// PosTypeMax is the maximum value that can be represented by a PosType.
const PosTypeMax = PosType(math.MaxInt64)

// Interval is a half-open, 0-based coordinate range [Start, End) on one
// reference sequence.
type Interval struct {
	RefName string
	Start   PosType
	End     PosType
}

// New returns the interval [start, end) on refName.
func New(refName string, start, end PosType) Interval {
	return Interval{RefName: refName, Start: start, End: end}
}

// Len returns the number of positions in the interval.
func (i Interval) Len() PosType {
	return i.End - i.Start
}

// Contains returns true iff pos lies inside the interval.
func (i Interval) Contains(pos PosType) bool {
	return pos >= i.Start && pos < i.End
}

// Intersects returns true iff the two intervals are on the same reference
// sequence and share at least one position.
func (i Interval) Intersects(other Interval) bool {
	return i.RefName == other.RefName && i.Start < other.End && other.Start < i.End
}

// String renders the interval as a 1-based inclusive region string, the form
// accepted by ParseRegion.
func (i Interval) String() string {
	return fmt.Sprintf("%s:%d-%d", i.RefName, i.Start+1, i.End)
}

// ParseRegion parses a region string of one of the forms
//
//	[contig ID]:[1-based first pos]-[last pos]
//	[contig ID]:[1-based pos]
//	[contig ID]
//
// returning 0-based half-open interval boundaries.  The interval
// [0, PosTypeMax - 1) is returned if there is no positional restriction.
func ParseRegion(region string) (result Interval, err error) {
	if len(region) == 0 {
		err = fmt.Errorf("interval.ParseRegion: empty region string")
		return
	}
	colonPos := strings.IndexByte(region, ':')
	if colonPos == -1 {
		result.RefName = region
		result.Start = 0
		result.End = PosTypeMax - 1
		return
	}
	if colonPos == 0 {
		err = fmt.Errorf("interval.ParseRegion: empty contig ID")
		return
	}
	result.RefName = region[0:colonPos]
	rangeStr := region[colonPos+1:]
	dashPos := strings.IndexByte(rangeStr, '-')
	if dashPos == -1 {
		var pos1 int64
		if pos1, err = strconv.ParseInt(rangeStr, 10, 64); err != nil {
			return
		}
		if pos1 < 1 {
			err = fmt.Errorf("interval.ParseRegion: position %v in region string out of range", rangeStr)
			return
		}
		result.Start = PosType(pos1 - 1)
		result.End = PosType(pos1)
		return
	}
	var start1, end int64
	if start1, err = strconv.ParseInt(rangeStr[:dashPos], 10, 64); err != nil {
		return
	}
	if end, err = strconv.ParseInt(rangeStr[dashPos+1:], 10, 64); err != nil {
		return
	}
	if start1 < 1 || end < start1 {
		err = fmt.Errorf("interval.ParseRegion: invalid range %v in region string", rangeStr)
		return
	}
	result.Start = PosType(start1 - 1)
	result.End = PosType(end)
	return
}
