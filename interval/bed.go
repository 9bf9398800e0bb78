package interval

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// ReadBED reads 3+ column BED data and returns the intervals grouped by
// reference name, in input order.  Lines starting with "track", "browser",
// or '#' are skipped.  Interval boundaries are interpreted as the usual
// 0-based [start, end).
func ReadBED(r io.Reader) (map[string][]Interval, error) {
	result := make(map[string][]Interval)
	scanner := bufio.NewScanner(r)
	lineIdx := 0
	for scanner.Scan() {
		lineIdx++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' ||
			strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("interval.ReadBED: line %d has fewer than 3 columns", lineIdx)
		}
		start, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("interval.ReadBED: line %d: %v", lineIdx, err)
		}
		end, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("interval.ReadBED: line %d: %v", lineIdx, err)
		}
		if end < start || start < 0 {
			return nil, fmt.Errorf("interval.ReadBED: line %d: invalid interval [%d, %d)", lineIdx, start, end)
		}
		refName := fields[0]
		result[refName] = append(result[refName], Interval{
			RefName: refName,
			Start:   PosType(start),
			End:     PosType(end),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// LoadCandidatePositions reads a BED file (plain or gzip-compressed, decided
// by the .gz suffix) and returns the sorted, deduplicated set of positions on
// refName covered by its intervals.  The result is in the form expected by
// allelecount.New's candidatePositions argument.
func LoadCandidatePositions(path, refName string) (positions []PosType, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if e := f.Close(); e != nil && err == nil {
			err = e
		}
	}()
	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		var gz *gzip.Reader
		if gz, err = gzip.NewReader(f); err != nil {
			return nil, err
		}
		defer func() {
			if e := gz.Close(); e != nil && err == nil {
				err = e
			}
		}()
		r = gz
	}
	bed, err := ReadBED(r)
	if err != nil {
		return nil, err
	}
	return PositionsCovered(bed[refName]), nil
}

// PositionsCovered flattens a set of intervals into the sorted, deduplicated
// list of positions they cover.
func PositionsCovered(intervals []Interval) []PosType {
	var positions []PosType
	for _, iv := range intervals {
		for pos := iv.Start; pos < iv.End; pos++ {
			positions = append(positions, pos)
		}
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i] < positions[j] })
	out := positions[:0]
	for i, pos := range positions {
		if i == 0 || pos != positions[i-1] {
			out = append(out, pos)
		}
	}
	return out
}
