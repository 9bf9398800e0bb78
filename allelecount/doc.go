// Package allelecount turns a stream of aligned reads over a genomic
// interval into per-position tallies of observed alleles.
//
// Problem:
// Given reads aligned to one reference interval, we want, for every position
// in the interval, the set of alleles observed there (reference-matching
// bases, substitutions, insertions, deletions, soft-clips), gated by
// mapping-quality and base-quality thresholds, with per-read and per-sample
// provenance for the non-reference observations.
//
// Implementation strategy:
// A Counter owns one AlleleCount record per position of a fixed interval,
// kept contiguous and sorted by position so lookups are a binary search.
// Each Add call walks the read's CIGAR once, translating alignment
// operations into interval-relative candidate events, then folds those
// events into the AlleleCount array.  Reference support is tracked as a
// plain integer except at caller-flagged candidate positions, which bounds
// memory for whole-genome-scale runs while keeping exact read-level
// accounting at the sites that matter.
//
// A Counter instance is not safe for concurrent mutation.  The intended
// parallelization strategy is sharding by disjoint genomic intervals, one
// Counter per worker; the borrowed reference.Genome is read-only and may be
// shared.
package allelecount
