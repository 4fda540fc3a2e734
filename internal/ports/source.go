package ports

import (
	"context"

	"github.com/baditaflorin/go_issue_similarity/internal/core/domain"
)

// CandidateSource supplies the existing issues of one city, newest first,
// bounded by limit.
type CandidateSource interface {
	Recent(ctx context.Context, city string, limit int) ([]domain.Candidate[domain.Issue], error)
}
