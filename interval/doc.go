// Package interval provides genomic coordinate types shared by the
// allele-counting engine: a half-open 0-based Interval, region-string
// parsing, and BED-based candidate-position loading.
package interval
