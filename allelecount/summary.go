package allelecount

// Summary is the flattened per-position record consumed by downstream
// feature encoding.  The field names and semantics are a compatibility
// contract; do not change them.
type Summary struct {
	RefName                  string
	Position                 PosType
	RefBase                  byte
	RefSupportingReadCount   int
	TotalReadCount           int
	RefNonconfidentReadCount int
}

// SummaryCounts returns one Summary per tracked position, in position order.
// It is a read-only projection; the Counter is not modified.
func (c *Counter) SummaryCounts() []Summary {
	summaries := make([]Summary, 0, len(c.counts))
	for i := range c.counts {
		ac := &c.counts[i]
		summaries = append(summaries, Summary{
			RefName:                  c.region.RefName,
			Position:                 ac.Position,
			RefBase:                  ac.RefBase,
			RefSupportingReadCount:   ac.RefSupportingReadCount,
			TotalReadCount:           TotalAlleleCounts(false, ac),
			RefNonconfidentReadCount: ac.RefNonconfidentReadCount,
		})
	}
	return summaries
}
