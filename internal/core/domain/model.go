package domain

import "time"

// Candidate is an existing record eligible for comparison against a new title.
// Only Title is read during scoring; ID and Payload are passed through unchanged.
type Candidate[T any] struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Payload T      `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// Match pairs a candidate with the combined score it obtained against a query.
type Match[T any] struct {
	Candidate Candidate[T] `json:"candidate"`
	Score     float64      `json:"score"`
}

// Score holds both sub-metrics and their weighted combination.
type Score struct {
	WordOverlap  float64 `json:"word_overlap"`
	EditDistance float64 `json:"edit_distance"`
	Combined     float64 `json:"combined"`
}

// Issue is the payload carried by civic issue candidates.
type Issue struct {
	City      string    `json:"city" yaml:"city"`
	Category  string    `json:"category,omitempty" yaml:"category,omitempty"`
	Votes     int       `json:"votes" yaml:"votes"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
