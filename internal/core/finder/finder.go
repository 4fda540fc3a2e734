package finder

import (
	"errors"
	"sort"
	"strings"

	"github.com/baditaflorin/go_issue_similarity/internal/core/domain"
	"github.com/baditaflorin/go_issue_similarity/internal/ports"
)

// Default configuration values.
const (
	// DefaultDuplicateThreshold is the score a pair must exceed to be called a duplicate.
	DefaultDuplicateThreshold = 0.65
	// DefaultSuggestionThreshold is the minimum score for a live suggestion.
	DefaultSuggestionThreshold = 0.5
	// DefaultMaxResults caps the number of suggestions returned.
	DefaultMaxResults = 5
)

var (
	// ErrThresholdRange is returned when a threshold is outside [0, 1].
	ErrThresholdRange = errors.New("thresholds must be between 0 and 1")
	// ErrMaxResults is returned when the result cap is not positive.
	ErrMaxResults = errors.New("max results must be greater than 0")
)

// Config holds the finder thresholds.
type Config struct {
	DuplicateThreshold  float64
	SuggestionThreshold float64
	MaxResults          int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		DuplicateThreshold:  DefaultDuplicateThreshold,
		SuggestionThreshold: DefaultSuggestionThreshold,
		MaxResults:          DefaultMaxResults,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.DuplicateThreshold < 0 || c.DuplicateThreshold > 1 ||
		c.SuggestionThreshold < 0 || c.SuggestionThreshold > 1 {
		return ErrThresholdRange
	}
	if c.MaxResults <= 0 {
		return ErrMaxResults
	}
	return nil
}

// Finder ranks candidate records against a query title. It keeps no state
// between calls and is safe for concurrent use.
type Finder[T any] struct {
	config Config
	scorer ports.PairScorer
	logger ports.Logger
}

// NewFinder creates a new finder on top of a pair scorer.
func NewFinder[T any](config Config, scorer ports.PairScorer, logger ports.Logger) (*Finder[T], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Finder[T]{
		config: config,
		scorer: scorer,
		logger: logger,
	}, nil
}

// Config returns the configuration the finder was built with.
func (f *Finder[T]) Config() Config {
	return f.config
}

// IsDuplicate reports whether the similarity of a and b is strictly above
// the duplicate threshold.
func (f *Finder[T]) IsDuplicate(a, b string) bool {
	return f.scorer.Score(a, b).Combined > f.config.DuplicateThreshold
}

// Rank scores every candidate against query, keeps those scoring at least
// threshold and returns at most MaxResults of them, best first. Equal scores
// keep their input order. An empty query or candidate list yields an empty
// result without scoring anything.
func (f *Finder[T]) Rank(query string, candidates []domain.Candidate[T], threshold float64) []domain.Match[T] {
	if strings.TrimSpace(query) == "" || len(candidates) == 0 {
		return []domain.Match[T]{}
	}

	matches := make([]domain.Match[T], 0, len(candidates))
	for _, c := range candidates {
		score := f.scorer.Score(query, c.Title).Combined
		if score >= threshold {
			matches = append(matches, domain.Match[T]{Candidate: c, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > f.config.MaxResults {
		matches = matches[:f.config.MaxResults]
	}

	f.logger.Debug("Ranked candidates",
		"candidates", len(candidates),
		"matches", len(matches),
		"threshold", threshold,
	)

	return matches
}

// FindSimilar returns the candidates Rank selects, without their scores.
func (f *Finder[T]) FindSimilar(query string, candidates []domain.Candidate[T], threshold float64) []domain.Candidate[T] {
	matches := f.Rank(query, candidates, threshold)
	out := make([]domain.Candidate[T], len(matches))
	for i, m := range matches {
		out[i] = m.Candidate
	}
	return out
}

// FindSimilarDefault is FindSimilar with the configured suggestion threshold.
func (f *Finder[T]) FindSimilarDefault(query string, candidates []domain.Candidate[T]) []domain.Candidate[T] {
	return f.FindSimilar(query, candidates, f.config.SuggestionThreshold)
}
