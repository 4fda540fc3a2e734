// Package wordoverlap implements the order-insensitive word overlap metric.
package wordoverlap

import (
	"strings"
	"unicode/utf8"
)

// MinTokenLength is the shortest token that takes part in the overlap.
// Shorter tokens ("a", "to", "in") are treated as noise.
const MinTokenLength = 3

// Name identifies the metric in score breakdowns and logs.
const Name = "word_overlap"

// Metric computes the Jaccard index of the token sets of two normalized strings.
type Metric struct{}

// New returns the word overlap metric.
func New() Metric {
	return Metric{}
}

// Name returns the metric name.
func (Metric) Name() string {
	return Name
}

// Compute returns Jaccard(a, b). See Jaccard.
func (Metric) Compute(a, b string) float64 {
	return Jaccard(a, b)
}

// Tokens splits normalized text on whitespace and returns the set of
// tokens that are at least MinTokenLength runes long.
func Tokens(normalized string) map[string]struct{} {
	fields := strings.Fields(normalized)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < MinTokenLength {
			continue
		}
		set[f] = struct{}{}
	}
	return set
}

// Jaccard returns |A∩B| / |A∪B| over the token sets of a and b, or 0 when
// either set is empty.
func Jaccard(a, b string) float64 {
	setA := Tokens(a)
	setB := Tokens(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	// Iterate the smaller set.
	if len(setA) > len(setB) {
		setA, setB = setB, setA
	}
	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}
