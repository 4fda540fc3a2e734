// Package editdistance implements the typo-tolerant character metric based
// on the Levenshtein distance with unit costs.
package editdistance

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Name identifies the metric in score breakdowns and logs.
const Name = "edit_distance"

// Metric computes 1 - distance/maxLen over two normalized strings.
type Metric struct{}

// New returns the edit distance metric.
func New() Metric {
	return Metric{}
}

// Name returns the metric name.
func (Metric) Name() string {
	return Name
}

// Compute returns Ratio(a, b).
func (Metric) Compute(a, b string) float64 {
	return Ratio(a, b)
}

// Distance returns the Levenshtein distance between a and b, counted in runes.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Ratio returns 1 for equal strings (two empty strings included), 0 when
// exactly one side is empty, and 1 - Distance(a, b)/max(len(a), len(b))
// otherwise, with lengths in runes.
func Ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	lenA := utf8.RuneCountInString(a)
	lenB := utf8.RuneCountInString(b)
	if lenA == 0 || lenB == 0 {
		return 0
	}
	maxLen := lenA
	if lenB > maxLen {
		maxLen = lenB
	}
	return 1 - float64(Distance(a, b))/float64(maxLen)
}
