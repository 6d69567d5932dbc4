package search

import (
	"context"

	"github.com/kailas-cloud/contentdex/internal/domain/search/query"
	"github.com/kailas-cloud/contentdex/internal/domain/search/result"
)

// Gateway executes composed search specifications against the index.
type Gateway interface {
	Search(ctx context.Context, spec *query.Spec) ([]result.Hit, int, error)
	Suggest(ctx context.Context, businessID, prefix string) ([]result.Suggestion, error)
}

// RefResolver fills franchise and origin display references into hits.
type RefResolver interface {
	Hydrate(ctx context.Context, hits []result.Hit) error
}
