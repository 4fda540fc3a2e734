// Package duplicates is the public entry point to the duplicate-issue
// detection engine: it normalizes titles, scores pairs of titles and ranks
// existing candidates against a new one.
package duplicates

import (
	"context"

	"github.com/baditaflorin/go_issue_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_issue_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_issue_similarity/internal/core/domain"
	"github.com/baditaflorin/go_issue_similarity/internal/core/finder"
	"github.com/baditaflorin/go_issue_similarity/internal/core/scorer"
	"github.com/baditaflorin/go_issue_similarity/internal/ports"
	"github.com/baditaflorin/go_issue_similarity/internal/warmup"
	"github.com/baditaflorin/l"
)

// Candidate is an existing record that can be ranked against a query.
type Candidate[T any] = domain.Candidate[T]

// Match is a ranked candidate with its combined score.
type Match[T any] = domain.Match[T]

// Score is the breakdown of a pair comparison.
type Score = domain.Score

// Weights controls the word/edit weighting of the combined score.
type Weights = scorer.Weights

// Default configuration values.
const (
	DefaultDuplicateThreshold  = finder.DefaultDuplicateThreshold
	DefaultSuggestionThreshold = finder.DefaultSuggestionThreshold
	DefaultMaxResults          = finder.DefaultMaxResults
	DefaultLogFloor            = scorer.DefaultLogFloor
)

// Engine bundles a normalizer, a scorer and a finder for candidates with
// payload type T. It is safe for concurrent use.
type Engine[T any] struct {
	scorer     *scorer.Scorer
	finder     *finder.Finder[T]
	logger     ports.Logger
	normalizer ports.Normalizer
	warmed     bool
}

// Option defines a functional option for configuring an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	Weights             Weights
	LogFloor            float64
	DuplicateThreshold  float64
	SuggestionThreshold float64
	MaxResults          int
	Logger              ports.Logger
	Normalizer          ports.Normalizer
	WarmUp              bool
	WarmUpConfig        warmup.WarmupConfig
}

// WithWeights sets the word/edit weighting.
func WithWeights(word, edit float64) Option {
	return func(cfg *engineConfig) {
		cfg.Weights = Weights{Word: word, Edit: edit}
	}
}

// WithLogFloor sets the combined score above which comparisons are logged at debug level.
func WithLogFloor(floor float64) Option {
	return func(cfg *engineConfig) {
		cfg.LogFloor = floor
	}
}

// WithDuplicateThreshold sets the score a pair must exceed to count as a duplicate.
func WithDuplicateThreshold(th float64) Option {
	return func(cfg *engineConfig) {
		cfg.DuplicateThreshold = th
	}
}

// WithSuggestionThreshold sets the threshold used by FindSimilarDefault.
func WithSuggestionThreshold(th float64) Option {
	return func(cfg *engineConfig) {
		cfg.SuggestionThreshold = th
	}
}

// WithMaxResults sets the maximum number of ranked candidates returned.
func WithMaxResults(n int) Option {
	return func(cfg *engineConfig) {
		cfg.MaxResults = n
	}
}

// WithLogger sets an l.Logger for comparison tracing.
func WithLogger(lg l.Logger) Option {
	return func(cfg *engineConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithPortsLogger sets a logger that already satisfies the internal port.
func WithPortsLogger(lg ports.Logger) Option {
	return func(cfg *engineConfig) {
		cfg.Logger = lg
	}
}

// WithNormalizer sets a custom normalizer.
func WithNormalizer(n ports.Normalizer) Option {
	return func(cfg *engineConfig) {
		cfg.Normalizer = n
	}
}

// WithFoldingNormalizer makes accented and unaccented titles compare equal.
func WithFoldingNormalizer() Option {
	return func(cfg *engineConfig) {
		cfg.Normalizer = normalizer.NewNormalizerFactory().CreateNormalizer(normalizer.FoldingNormalizerType)
	}
}

// WithWarmUp enables warm-up on construction.
func WithWarmUp(enable bool) Option {
	return func(cfg *engineConfig) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration and enables warm-up.
func WithWarmUpConfig(config warmup.WarmupConfig) Option {
	return func(cfg *engineConfig) {
		cfg.WarmUpConfig = config
		cfg.WarmUp = true
	}
}

// New creates an Engine. Without options it uses the 70/30 weighting, a
// 0.65 duplicate threshold, a 0.5 suggestion threshold, five results and
// a silent logger.
func New[T any](opts ...Option) (*Engine[T], error) {
	scorerDefaults := scorer.DefaultConfig()
	finderDefaults := finder.DefaultConfig()

	config := &engineConfig{
		Weights:             scorerDefaults.Weights,
		LogFloor:            scorerDefaults.LogFloor,
		DuplicateThreshold:  finderDefaults.DuplicateThreshold,
		SuggestionThreshold: finderDefaults.SuggestionThreshold,
		MaxResults:          finderDefaults.MaxResults,
		WarmUpConfig:        warmup.DefaultWarmupConfig(),
	}

	for _, opt := range opts {
		opt(config)
	}

	if config.Logger == nil {
		config.Logger = logger.NewNopLogger()
	}
	if config.Normalizer == nil {
		config.Normalizer = normalizer.NewDefaultNormalizer()
	}

	sc, err := scorer.NewScorer(scorer.SimilarityConfig{
		Weights:  config.Weights,
		LogFloor: config.LogFloor,
	}, config.Logger, config.Normalizer)
	if err != nil {
		return nil, err
	}

	f, err := finder.NewFinder[T](finder.Config{
		DuplicateThreshold:  config.DuplicateThreshold,
		SuggestionThreshold: config.SuggestionThreshold,
		MaxResults:          config.MaxResults,
	}, sc, config.Logger)
	if err != nil {
		return nil, err
	}

	e := &Engine[T]{
		scorer:     sc,
		finder:     f,
		logger:     config.Logger,
		normalizer: config.Normalizer,
	}

	if config.WarmUp {
		e.WarmUp(context.Background(), config.WarmUpConfig)
	}

	return e, nil
}

// Normalize returns the canonical form of text used for comparisons.
func (e *Engine[T]) Normalize(text string) string {
	return e.normalizer.Normalize(text)
}

// Score returns both sub-metrics and the combined score of a and b.
func (e *Engine[T]) Score(a, b string) Score {
	return e.scorer.Score(a, b)
}

// Similarity returns the combined score of a and b in [0, 1].
func (e *Engine[T]) Similarity(a, b string) float64 {
	return e.scorer.Similarity(a, b)
}

// IsDuplicate reports whether a and b score above the duplicate threshold.
func (e *Engine[T]) IsDuplicate(a, b string) bool {
	return e.finder.IsDuplicate(a, b)
}

// FindSimilar returns up to MaxResults candidates scoring at least
// threshold against query, best first, ties in input order.
func (e *Engine[T]) FindSimilar(query string, candidates []Candidate[T], threshold float64) []Candidate[T] {
	return e.finder.FindSimilar(query, candidates, threshold)
}

// FindSimilarDefault is FindSimilar with the suggestion threshold.
func (e *Engine[T]) FindSimilarDefault(query string, candidates []Candidate[T]) []Candidate[T] {
	return e.finder.FindSimilarDefault(query, candidates)
}

// Rank is FindSimilar with scores attached.
func (e *Engine[T]) Rank(query string, candidates []Candidate[T], threshold float64) []Match[T] {
	return e.finder.Rank(query, candidates, threshold)
}

// DuplicateThreshold returns the configured duplicate threshold.
func (e *Engine[T]) DuplicateThreshold() float64 {
	return e.finder.Config().DuplicateThreshold
}

// SuggestionThreshold returns the configured suggestion threshold.
func (e *Engine[T]) SuggestionThreshold() float64 {
	return e.finder.Config().SuggestionThreshold
}

// WarmUp exercises the normalizer and scorer once so first requests do not
// pay for lazy initialization.
func (e *Engine[T]) WarmUp(ctx context.Context, config warmup.WarmupConfig) {
	if e.warmed {
		e.logger.Debug("Engine already warmed up, skipping")
		return
	}

	warmupMgr := warmup.NewManager(e.logger, config)
	warmupMgr.RegisterScorer(e.scorer)
	warmupMgr.RegisterNormalizer(e.normalizer)

	warmupMgr.WarmUp(ctx)
	e.warmed = true
}
