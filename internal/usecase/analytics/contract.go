package analytics

import (
	"context"

	domanalytics "github.com/kailas-cloud/contentdex/internal/domain/analytics"
	"github.com/kailas-cloud/contentdex/internal/domain/search/result"
)

// Repository runs the canned aggregation pipelines.
type Repository interface {
	PopularTags(ctx context.Context, businessID string, limit int) ([]domanalytics.TagCount, error)
	Stats(ctx context.Context, businessID string) ([]domanalytics.TypeStats, error)
	Recent(ctx context.Context, businessID string, limit int) ([]result.Hit, error)
	HighRated(ctx context.Context, businessID string, minRating float64, limit int) ([]result.Hit, error)
}

// RefResolver fills franchise and origin display references into hits.
type RefResolver interface {
	Hydrate(ctx context.Context, hits []result.Hit) error
}
