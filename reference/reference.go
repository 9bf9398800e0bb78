// Package reference provides read-only access to reference-genome bases.
// The allele-counting engine borrows a Genome; it never owns or mutates one,
// so a single Genome may be shared across workers processing disjoint
// intervals.
package reference

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/strandseq/alleles/interval"
)

// Genome answers base-sequence and range-validity queries for a set of
// contigs.  Implementations must be safe for concurrent read-only use.
type Genome interface {
	// GetBases returns the bases covered by iv, as an upper-case string of
	// length iv.Len().  It returns an error if iv is not a valid interval of
	// the genome.
	GetBases(iv interval.Interval) (string, error)

	// IsValidInterval returns true iff iv lies fully within one of the
	// genome's contigs.
	IsValidInterval(iv interval.Interval) bool

	// Contigs returns the contig names, in the order of appearance.
	Contigs() []string

	// Len returns the length of the named contig.
	Len(contig string) (interval.PosType, error)
}

type inMemory struct {
	seqs  map[string]string
	names []string
}

// New returns an in-memory Genome over the given contig sequences.  Contig
// names are reported in lexicographically sorted order.  The sequences are
// used as-is; callers are expected to supply upper-case bases.
func New(seqs map[string]string) Genome {
	g := &inMemory{seqs: make(map[string]string, len(seqs))}
	for name, seq := range seqs {
		g.seqs[name] = seq
		g.names = append(g.names, name)
	}
	sort.Strings(g.names)
	return g
}

func (g *inMemory) GetBases(iv interval.Interval) (string, error) {
	s, ok := g.seqs[iv.RefName]
	if !ok {
		return "", errors.Errorf("reference: contig not found: %s", iv.RefName)
	}
	if iv.Start < 0 || iv.End < iv.Start || iv.End > interval.PosType(len(s)) {
		return "", errors.Errorf("reference: invalid query range %d - %d for contig %s with length %d",
			iv.Start, iv.End, iv.RefName, len(s))
	}
	return s[iv.Start:iv.End], nil
}

func (g *inMemory) IsValidInterval(iv interval.Interval) bool {
	s, ok := g.seqs[iv.RefName]
	if !ok {
		return false
	}
	return iv.Start >= 0 && iv.End >= iv.Start && iv.End <= interval.PosType(len(s))
}

func (g *inMemory) Contigs() []string {
	return g.names
}

func (g *inMemory) Len(contig string) (interval.PosType, error) {
	s, ok := g.seqs[contig]
	if !ok {
		return 0, errors.Errorf("reference: contig not found: %s", contig)
	}
	return interval.PosType(len(s)), nil
}
