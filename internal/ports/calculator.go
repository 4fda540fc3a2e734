package ports

import (
	"github.com/baditaflorin/go_issue_similarity/internal/core/domain"
)

// PairScorer defines the interface for scoring two titles against each other.
type PairScorer interface {
	Score(a, b string) domain.Score
}

// Metric is a single similarity measure over two already normalized strings.
type Metric interface {
	Name() string
	Compute(a, b string) float64
}
