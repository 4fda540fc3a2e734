package scorer

import (
	"errors"
	"math"
	"testing"

	"github.com/baditaflorin/go_issue_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_issue_similarity/internal/adapters/normalizer"
)

const epsilon = 1e-9

func newTestScorer(t *testing.T) *Scorer {
	t.Helper()
	s, err := NewScorer(DefaultConfig(), logger.NewNopLogger(), normalizer.NewDefaultNormalizer())
	if err != nil {
		t.Fatalf("failed to create scorer: %v", err)
	}
	return s
}

func TestScoreBreakdown(t *testing.T) {
	s := newTestScorer(t)

	tests := []struct {
		name string
		a, b string
		word float64
		edit float64
	}{
		{
			name: "Two empty strings",
			a:    "", b: "",
			word: 0, edit: 1,
		},
		{
			name: "Empty and non-empty",
			a:    "", b: "anything",
			word: 0, edit: 0,
		},
		{
			name: "Identical after normalization",
			a:    "Fix the potholes!", b: "fix   the potholes",
			word: 1, edit: 1,
		},
		{
			name: "Reordered phrase",
			a:    "ban plastic bags", b: "plastic bags ban",
			word: 1, edit: 1 - 8.0/16.0,
		},
		{
			name: "Single typo in a short title",
			a:    "Fix potholes", b: "Fix pothodes",
			word: 1.0 / 3.0, edit: 1 - 1.0/12.0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := s.Score(tc.a, tc.b)
			if math.Abs(got.WordOverlap-tc.word) > epsilon {
				t.Errorf("word overlap = %v, expected %v", got.WordOverlap, tc.word)
			}
			if math.Abs(got.EditDistance-tc.edit) > epsilon {
				t.Errorf("edit distance = %v, expected %v", got.EditDistance, tc.edit)
			}
			expected := 0.7*tc.word + 0.3*tc.edit
			if math.Abs(got.Combined-expected) > epsilon {
				t.Errorf("combined = %v, expected %v", got.Combined, expected)
			}
		})
	}
}

func TestSimilarityOfTwoEmptyStringsIsPinned(t *testing.T) {
	s := newTestScorer(t)
	if got := s.Similarity("", ""); math.Abs(got-0.3) > epsilon {
		t.Errorf("Similarity(\"\", \"\") = %v, expected 0.3", got)
	}
	if got := s.Similarity("", "anything"); got != 0 {
		t.Errorf("Similarity(\"\", \"anything\") = %v, expected 0", got)
	}
}

func TestSimilarityProperties(t *testing.T) {
	s := newTestScorer(t)
	titles := []string{
		"",
		"Ban single-use plastic bags",
		"ban single use plastic bags now",
		"Ban plastic bags in stores",
		"Improve bike lanes downtown",
		"Fix potholes on Main St",
		"Fix potholes on main street",
		"Streetlight out at 5th & Oak",
		"STREETLIGHT OUT AT 5TH AND OAK!!",
		"a b",
	}

	for _, a := range titles {
		for _, b := range titles {
			ab := s.Similarity(a, b)
			ba := s.Similarity(b, a)
			if ab != ba {
				t.Errorf("not symmetric for %q / %q: %v vs %v", a, b, ab, ba)
			}
			if ab < 0 || ab > 1 {
				t.Errorf("out of range for %q / %q: %v", a, b, ab)
			}
		}
	}
}

func TestSimilarityIdentity(t *testing.T) {
	s := newTestScorer(t)
	// Identity holds for any title carrying at least one token of three or
	// more characters; shorter titles have no word overlap by definition.
	for _, title := range []string{"Ban plastic bags", "fix", "Crème brûlée stand", "Route 66"} {
		if got := s.Similarity(title, title); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %v, expected 1", title, title, got)
		}
	}
	if got := s.Similarity("a b", "a b"); math.Abs(got-0.3) > epsilon {
		t.Errorf("short-token title should score edit term only, got %v", got)
	}
}

func TestCustomWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights = Weights{Word: 0, Edit: 1}
	s, err := NewScorer(cfg, logger.NewNopLogger(), normalizer.NewDefaultNormalizer())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Similarity("kitten", "sitting"); math.Abs(got-(1-3.0/7.0)) > epsilon {
		t.Errorf("edit-only similarity = %v", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  SimilarityConfig
		wantErr error
	}{
		{name: "Defaults", config: DefaultConfig()},
		{name: "Negative weight", config: SimilarityConfig{Weights: Weights{Word: -0.1, Edit: 1.1}}, wantErr: ErrWeightRange},
		{name: "Bad sum", config: SimilarityConfig{Weights: Weights{Word: 0.5, Edit: 0.3}}, wantErr: ErrWeightSum},
		{name: "Bad log floor", config: SimilarityConfig{Weights: DefaultWeights(), LogFloor: 2}, wantErr: ErrLogFloorRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, expected %v", err, tc.wantErr)
			}
			_, err = NewScorer(tc.config, logger.NewNopLogger(), normalizer.NewDefaultNormalizer())
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("NewScorer() = %v, expected %v", err, tc.wantErr)
			}
		})
	}
}

func TestScoreReportsComparisonsAboveLogFloor(t *testing.T) {
	rec := logger.NewRecorder()
	s, err := NewScorer(DefaultConfig(), rec, normalizer.NewDefaultNormalizer())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.Similarity("Ban plastic bags", "ban plastic bags now")
	s.Similarity("Ban plastic bags", "Improve bike lanes downtown")

	entries := rec.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 logged comparison, got %d", len(entries))
	}
	if entries[0].Level != "debug" {
		t.Errorf("expected debug level, got %s", entries[0].Level)
	}
	if v, ok := entries[0].Value("score"); !ok || v.(float64) <= DefaultLogFloor {
		t.Errorf("expected logged score above floor, got %v", v)
	}
}
