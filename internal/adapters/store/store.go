// Package store holds the candidate sources that feed the duplicate finder.
package store

// DefaultLimit bounds the candidate corpus fetched per check. Scoring is
// quadratic in title length per candidate, so the corpus stays small.
const DefaultLimit = 100

// EffectiveLimit returns limit, or DefaultLimit when limit is not positive.
func EffectiveLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
