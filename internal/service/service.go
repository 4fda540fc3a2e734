// Package service applies the submission-time policy around the duplicate
// finder: minimum title lengths, corpus scoping by city and corpus bounding.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/baditaflorin/go_issue_similarity/internal/adapters/store"
	"github.com/baditaflorin/go_issue_similarity/internal/core/domain"
	"github.com/baditaflorin/go_issue_similarity/internal/ports"
	"github.com/baditaflorin/go_issue_similarity/pkg/duplicates"
)

// Default call-site policy.
const (
	// DefaultMinSuggestLength is the shortest title that triggers live suggestions.
	DefaultMinSuggestLength = 2
	// DefaultMinCheckLength is the shortest title accepted for a duplicate check.
	DefaultMinCheckLength = 10
)

var (
	// ErrTitleTooShort is returned by Check for titles below the minimum length.
	ErrTitleTooShort = errors.New("title too short for a duplicate check")
	// ErrCityRequired is returned when no city scopes the request.
	ErrCityRequired = errors.New("city is required")
)

// Policy holds the call-site limits.
type Policy struct {
	MinSuggestLength int
	MinCheckLength   int
	CorpusLimit      int
}

// DefaultPolicy returns the limits used by the web client.
func DefaultPolicy() Policy {
	return Policy{
		MinSuggestLength: DefaultMinSuggestLength,
		MinCheckLength:   DefaultMinCheckLength,
		CorpusLimit:      store.DefaultLimit,
	}
}

// CheckResult is the outcome of a submission-time duplicate check.
type CheckResult struct {
	Title   string                       `json:"title"`
	City    string                       `json:"city"`
	Matches []domain.Match[domain.Issue] `json:"matches"`
	// Duplicate is set when the best match is a duplicate of Title.
	// Submission proceeds only with explicit user confirmation.
	Duplicate bool `json:"duplicate"`
}

// Service answers suggestion and duplicate-check requests for one city at a time.
type Service struct {
	engine *duplicates.Engine[domain.Issue]
	source ports.CandidateSource
	logger ports.Logger
	policy Policy
}

// New creates a Service.
func New(engine *duplicates.Engine[domain.Issue], source ports.CandidateSource, logger ports.Logger, policy Policy) *Service {
	if policy.CorpusLimit <= 0 {
		policy.CorpusLimit = store.DefaultLimit
	}
	return &Service{
		engine: engine,
		source: source,
		logger: logger,
		policy: policy,
	}
}

// Engine returns the engine used for scoring.
func (s *Service) Engine() *duplicates.Engine[domain.Issue] {
	return s.engine
}

func (s *Service) corpus(ctx context.Context, city string) ([]domain.Candidate[domain.Issue], error) {
	candidates, err := s.source.Recent(ctx, city, s.policy.CorpusLimit)
	if err != nil {
		return nil, fmt.Errorf("load candidates for %q: %w", city, err)
	}
	return candidates, nil
}

// Suggest ranks recent issues of city against a title that is still being
// typed. Titles shorter than MinSuggestLength return no suggestions without
// touching the candidate source.
func (s *Service) Suggest(ctx context.Context, city, title string) ([]domain.Match[domain.Issue], error) {
	if strings.TrimSpace(city) == "" {
		return nil, ErrCityRequired
	}
	if utf8.RuneCountInString(strings.TrimSpace(title)) < s.policy.MinSuggestLength {
		return []domain.Match[domain.Issue]{}, nil
	}

	candidates, err := s.corpus(ctx, city)
	if err != nil {
		return nil, err
	}
	return s.engine.Rank(title, candidates, s.engine.SuggestionThreshold()), nil
}

// Check ranks recent issues of city against a title about to be submitted
// and flags it when the best match is a duplicate.
func (s *Service) Check(ctx context.Context, city, title string) (CheckResult, error) {
	if strings.TrimSpace(city) == "" {
		return CheckResult{}, ErrCityRequired
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(title)); n < s.policy.MinCheckLength {
		return CheckResult{}, fmt.Errorf("%w: %d < %d characters", ErrTitleTooShort, n, s.policy.MinCheckLength)
	}

	candidates, err := s.corpus(ctx, city)
	if err != nil {
		return CheckResult{}, err
	}

	matches := s.engine.Rank(title, candidates, s.engine.SuggestionThreshold())
	result := CheckResult{
		Title:   title,
		City:    city,
		Matches: matches,
	}
	if len(matches) > 0 {
		result.Duplicate = s.engine.IsDuplicate(title, matches[0].Candidate.Title)
	}

	s.logger.Info("Duplicate check",
		"city", city,
		"candidates", len(candidates),
		"matches", len(matches),
		"duplicate", result.Duplicate,
	)
	return result, nil
}
