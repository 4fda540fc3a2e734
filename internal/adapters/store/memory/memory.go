package memory

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/baditaflorin/go_issue_similarity/internal/adapters/store"
	"github.com/baditaflorin/go_issue_similarity/internal/core/domain"
	"github.com/baditaflorin/go_issue_similarity/internal/ports"
	"gopkg.in/yaml.v3"
)

// Store is an in-process candidate source keyed by city.
type Store struct {
	mu     sync.RWMutex
	byCity map[string][]domain.Candidate[domain.Issue]
}

var _ ports.CandidateSource = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{byCity: make(map[string][]domain.Candidate[domain.Issue])}
}

func cityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// Add stores issues under the city carried in their payload.
func (s *Store) Add(issues ...domain.Candidate[domain.Issue]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, is := range issues {
		key := cityKey(is.Payload.City)
		s.byCity[key] = append(s.byCity[key], is)
	}
}

// Recent returns up to limit issues of city, newest first. Issues created
// at the same instant keep insertion order.
func (s *Store) Recent(ctx context.Context, city string, limit int) ([]domain.Candidate[domain.Issue], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	src := s.byCity[cityKey(city)]
	out := make([]domain.Candidate[domain.Issue], len(src))
	copy(out, src)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Payload.CreatedAt.After(out[j].Payload.CreatedAt)
	})

	if limit = store.EffectiveLimit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Len returns the number of stored issues across all cities.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, issues := range s.byCity {
		n += len(issues)
	}
	return n
}

type fixtureFile struct {
	Issues []domain.Candidate[domain.Issue] `yaml:"issues"`
}

// LoadYAML adds the issues listed in a YAML fixture:
//
//	issues:
//	  - id: "42"
//	    title: Fix potholes on Main St
//	    payload: {city: springfield, votes: 3, created_at: 2024-05-01T10:00:00Z}
func (s *Store) LoadYAML(data []byte) error {
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse issue fixtures: %w", err)
	}
	for i, is := range f.Issues {
		if strings.TrimSpace(is.ID) == "" {
			return fmt.Errorf("issue fixture %d: missing id", i)
		}
		if cityKey(is.Payload.City) == "" {
			return fmt.Errorf("issue fixture %s: missing city", is.ID)
		}
	}
	s.Add(f.Issues...)
	return nil
}

// LoadYAMLFile reads and loads a YAML fixture file.
func (s *Store) LoadYAMLFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read issue fixtures: %w", err)
	}
	return s.LoadYAML(data)
}
