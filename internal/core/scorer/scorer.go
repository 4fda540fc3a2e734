package scorer

import (
	"errors"
	"math"

	"github.com/baditaflorin/go_issue_similarity/internal/core/domain"
	"github.com/baditaflorin/go_issue_similarity/internal/core/editdistance"
	"github.com/baditaflorin/go_issue_similarity/internal/core/wordoverlap"
	"github.com/baditaflorin/go_issue_similarity/internal/ports"
)

// Default configuration values.
const (
	DefaultWordWeight = 0.7
	DefaultEditWeight = 0.3
	// DefaultLogFloor is the combined score above which comparisons are
	// reported to the logger.
	DefaultLogFloor = 0.3
)

// weightTolerance absorbs float noise when checking that weights sum to one.
const weightTolerance = 1e-9

var (
	// ErrWeightRange is returned when a weight is outside [0, 1].
	ErrWeightRange = errors.New("weights must be between 0 and 1")
	// ErrWeightSum is returned when the weights do not add up to 1.
	ErrWeightSum = errors.New("weights must sum to 1")
	// ErrLogFloorRange is returned when the log floor is outside [0, 1].
	ErrLogFloorRange = errors.New("log floor must be between 0 and 1")
)

// Weights controls how the two metrics are combined.
type Weights struct {
	Word float64 `json:"word" yaml:"word"`
	Edit float64 `json:"edit" yaml:"edit"`
}

// DefaultWeights returns the 70/30 word/edit weighting.
func DefaultWeights() Weights {
	return Weights{Word: DefaultWordWeight, Edit: DefaultEditWeight}
}

// Validate checks if the weights are usable.
func (w Weights) Validate() error {
	if w.Word < 0 || w.Word > 1 || w.Edit < 0 || w.Edit > 1 {
		return ErrWeightRange
	}
	if math.Abs(w.Word+w.Edit-1) > weightTolerance {
		return ErrWeightSum
	}
	return nil
}

// SimilarityConfig holds configuration for the scorer.
type SimilarityConfig struct {
	Weights  Weights
	LogFloor float64
}

// DefaultConfig returns a default configuration.
func DefaultConfig() SimilarityConfig {
	return SimilarityConfig{
		Weights:  DefaultWeights(),
		LogFloor: DefaultLogFloor,
	}
}

// Validate checks if the configuration is valid.
func (c SimilarityConfig) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if c.LogFloor < 0 || c.LogFloor > 1 {
		return ErrLogFloorRange
	}
	return nil
}

// Scorer combines word overlap and edit distance into a single score.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	config     SimilarityConfig
	logger     ports.Logger
	normalizer ports.Normalizer
	word       ports.Metric
	edit       ports.Metric
}

// NewScorer creates a new scorer.
func NewScorer(config SimilarityConfig, logger ports.Logger, normalizer ports.Normalizer) (*Scorer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Scorer{
		config:     config,
		logger:     logger,
		normalizer: normalizer,
		word:       wordoverlap.New(),
		edit:       editdistance.New(),
	}, nil
}

// Config returns the configuration the scorer was built with.
func (s *Scorer) Config() SimilarityConfig {
	return s.config
}

// Normalize exposes the normalizer used before scoring.
func (s *Scorer) Normalize(text string) string {
	return s.normalizer.Normalize(text)
}

// Score normalizes both titles and returns both metrics and their weighted sum.
func (s *Scorer) Score(a, b string) domain.Score {
	normA := s.normalizer.Normalize(a)
	normB := s.normalizer.Normalize(b)

	word := s.word.Compute(normA, normB)
	edit := s.edit.Compute(normA, normB)
	combined := clamp(s.config.Weights.Word*word + s.config.Weights.Edit*edit)

	if combined > s.config.LogFloor {
		s.logger.Debug("Scored title pair",
			"a", normA,
			"b", normB,
			wordoverlap.Name, word,
			editdistance.Name, edit,
			"score", combined,
		)
	}

	return domain.Score{
		WordOverlap:  word,
		EditDistance: edit,
		Combined:     combined,
	}
}

// Similarity returns the combined score of a and b in [0, 1].
func (s *Scorer) Similarity(a, b string) float64 {
	return s.Score(a, b).Combined
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
