// Package issuesimilarity detects likely duplicate civic issues by title.
//
// A title is first normalized (lower case, punctuation removed, whitespace
// collapsed). Two normalized titles are compared with two metrics:
//
//	word overlap  = |A ∩ B| / |A ∪ B| over tokens of three or more characters
//	edit distance = 1 - levenshtein(a, b) / max(len(a), len(b))
//
// and combined as
//
//	score = 0.7 * wordOverlap + 0.3 * editDistance
//
// The package-level functions use the default configuration and never log.
// Use pkg/duplicates for tunable thresholds, weights and logging.
package issuesimilarity

import (
	"github.com/baditaflorin/go_issue_similarity/pkg/duplicates"
)

// Candidate is an existing issue eligible for comparison. Only Title is
// read; ID and Payload are returned untouched.
type Candidate[T any] = duplicates.Candidate[T]

// Default thresholds.
const (
	DefaultDuplicateThreshold  = duplicates.DefaultDuplicateThreshold
	DefaultSuggestionThreshold = duplicates.DefaultSuggestionThreshold
)

// defaultEngine serves the payload-free functions. FindSimilar needs an
// engine typed on the caller's payload and builds one per call; engines
// are cheap and hold no state.
var defaultEngine = mustEngine[struct{}]()

func mustEngine[T any]() *duplicates.Engine[T] {
	e, err := duplicates.New[T]()
	if err != nil {
		// The default configuration is constant and always valid.
		panic(err)
	}
	return e
}

// Normalize returns the canonical form of text used for comparisons.
func Normalize(text string) string {
	return defaultEngine.Normalize(text)
}

// Similarity returns the combined similarity of a and b in [0, 1].
func Similarity(a, b string) float64 {
	return defaultEngine.Similarity(a, b)
}

// IsDuplicate reports whether a and b score strictly above 0.65.
func IsDuplicate(a, b string) bool {
	return defaultEngine.IsDuplicate(a, b)
}

// FindSimilar returns at most five candidates scoring at least threshold
// against query, best first; equal scores keep their input order. Pass
// DefaultSuggestionThreshold for live suggestions.
func FindSimilar[T any](query string, candidates []Candidate[T], threshold float64) []Candidate[T] {
	return mustEngine[T]().FindSimilar(query, candidates, threshold)
}
