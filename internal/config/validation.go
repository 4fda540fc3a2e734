package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/baditaflorin/go_issue_similarity/internal/adapters/normalizer"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation error for field '%s' with value '%s': %s", e.Field, e.Value, e.Message)
}

// Validate checks ranges and cross-field constraints.
func (c *Config) Validate() error {
	var errs []error
	add := func(field string, value interface{}, message string) {
		errs = append(errs, ValidationError{Field: field, Value: fmt.Sprint(value), Message: message})
	}

	if c.Port <= 0 || c.Port > 65535 {
		add("PORT", c.Port, "must be between 1 and 65535")
	}
	if c.MaxRequestSize <= 0 {
		add("MAX_REQUEST_SIZE", c.MaxRequestSize, "must be positive")
	}
	if c.Concurrency < 0 {
		add("CONCURRENCY", c.Concurrency, "must not be negative")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		add("LOG_FORMAT", c.LogFormat, "must be json or text")
	}
	if _, err := normalizer.ParseType(c.Normalizer); err != nil {
		add("NORMALIZER", c.Normalizer, "must be default or folding")
	}

	for field, v := range map[string]float64{
		"WORD_WEIGHT":          c.WordWeight,
		"EDIT_WEIGHT":          c.EditWeight,
		"LOG_FLOOR":            c.LogFloor,
		"DUPLICATE_THRESHOLD":  c.DuplicateThreshold,
		"SUGGESTION_THRESHOLD": c.SuggestionThreshold,
	} {
		if v < 0 || v > 1 {
			add(field, v, "must be between 0 and 1")
		}
	}
	if math.Abs(c.WordWeight+c.EditWeight-1) > 1e-9 {
		add("WORD_WEIGHT+EDIT_WEIGHT", c.WordWeight+c.EditWeight, "must sum to 1")
	}

	if c.MaxResults <= 0 {
		add("MAX_RESULTS", c.MaxResults, "must be positive")
	}
	if c.CorpusLimit <= 0 {
		add("CORPUS_LIMIT", c.CorpusLimit, "must be positive")
	}
	if c.MinSuggestLength < 0 {
		add("MIN_SUGGEST_LENGTH", c.MinSuggestLength, "must not be negative")
	}
	if c.MinCheckLength < c.MinSuggestLength {
		add("MIN_CHECK_LENGTH", c.MinCheckLength, "must not be below MIN_SUGGEST_LENGTH")
	}

	return errors.Join(errs...)
}
