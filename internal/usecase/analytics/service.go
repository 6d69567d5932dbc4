package analytics

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/contentdex/internal/domain"
	domanalytics "github.com/kailas-cloud/contentdex/internal/domain/analytics"
	"github.com/kailas-cloud/contentdex/internal/domain/search/query"
	"github.com/kailas-cloud/contentdex/internal/domain/search/result"
)

// Listing defaults.
const (
	DefaultListLimit = 10
	DefaultMinRating = 4
)

// Service exposes the tenant analytics queries.
type Service struct {
	repo Repository
	refs RefResolver
}

// New creates an analytics service.
func New(repo Repository, refs RefResolver) *Service {
	return &Service{repo: repo, refs: refs}
}

// PopularTags returns the tenant's most used tags, most frequent first.
func (s *Service) PopularTags(ctx context.Context, businessID string, limit int) ([]domanalytics.TagCount, error) {
	if businessID == "" {
		return nil, fmt.Errorf("businessId is required: %w", domain.ErrValidation)
	}

	counts, err := s.repo.PopularTags(ctx, businessID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("popular tags: %w", err)
	}
	return counts, nil
}

// Stats returns per-content-type statistics for a tenant.
func (s *Service) Stats(ctx context.Context, businessID string) ([]domanalytics.TypeStats, error) {
	if businessID == "" {
		return nil, fmt.Errorf("businessId is required: %w", domain.ErrValidation)
	}

	stats, err := s.repo.Stats(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("content stats: %w", err)
	}
	return stats, nil
}

// Recent returns the tenant's most recently indexed records with
// reference projections.
func (s *Service) Recent(ctx context.Context, businessID string, limit int) ([]result.Hit, error) {
	if businessID == "" {
		return nil, fmt.Errorf("businessId is required: %w", domain.ErrValidation)
	}

	hits, err := s.repo.Recent(ctx, businessID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("recent: %w", err)
	}
	if err := s.refs.Hydrate(ctx, hits); err != nil {
		return nil, fmt.Errorf("hydrate references: %w", err)
	}
	return hits, nil
}

// HighRated returns the tenant's records rated at or above minRating
// (default 4 when zero), best first, with reference projections.
func (s *Service) HighRated(ctx context.Context, businessID string, minRating float64, limit int) ([]result.Hit, error) {
	if businessID == "" {
		return nil, fmt.Errorf("businessId is required: %w", domain.ErrValidation)
	}
	if minRating < 0 || minRating > 5 {
		return nil, fmt.Errorf("minRating must be between 0 and 5: %w", domain.ErrValidation)
	}
	if minRating == 0 {
		minRating = DefaultMinRating
	}

	hits, err := s.repo.HighRated(ctx, businessID, minRating, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("high rated: %w", err)
	}
	if err := s.refs.Hydrate(ctx, hits); err != nil {
		return nil, fmt.Errorf("hydrate references: %w", err)
	}
	return hits, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > query.MaxLimit {
		return query.MaxLimit
	}
	return limit
}
