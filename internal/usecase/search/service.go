package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/contentdex/internal/domain"
	"github.com/kailas-cloud/contentdex/internal/domain/search/query"
	"github.com/kailas-cloud/contentdex/internal/domain/search/result"
)

// Service composes search specifications and executes them with
// reference hydration.
type Service struct {
	gateway Gateway
	refs    RefResolver
}

// New creates a search service.
func New(gateway Gateway, refs RefResolver) *Service {
	return &Service{gateway: gateway, refs: refs}
}

// Search validates and composes the request parameters, runs the query,
// and hydrates reference projections. Returns the page of hits and the
// total match count reported by the index.
func (s *Service) Search(ctx context.Context, p query.Params) ([]result.Hit, int, error) {
	spec, err := query.Compose(p)
	if err != nil {
		return nil, 0, err
	}

	hits, total, err := s.gateway.Search(ctx, &spec)
	if err != nil {
		return nil, 0, fmt.Errorf("search: %w", err)
	}

	if err := s.refs.Hydrate(ctx, hits); err != nil {
		return nil, 0, fmt.Errorf("hydrate references: %w", err)
	}
	return hits, total, nil
}

// Suggest returns title/tag prefix completions for a tenant. The prefix
// must be at least two characters so single keystrokes never fan out
// into index scans.
func (s *Service) Suggest(ctx context.Context, businessID, prefix string) ([]result.Suggestion, error) {
	if businessID == "" {
		return nil, fmt.Errorf("businessId is required: %w", domain.ErrValidation)
	}
	prefix = strings.TrimSpace(prefix)
	if len(prefix) < 2 {
		return nil, fmt.Errorf("prefix must be at least 2 characters: %w", domain.ErrValidation)
	}

	suggestions, err := s.gateway.Suggest(ctx, businessID, prefix)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	return suggestions, nil
}
