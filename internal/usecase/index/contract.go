package index

import (
	"context"

	domcontent "github.com/kailas-cloud/contentdex/internal/domain/content"
)

// Repository defines the storage contract for indexed content records.
type Repository interface {
	Save(ctx context.Context, rec *domcontent.Record) error
	SaveAll(ctx context.Context, recs []domcontent.Record) error
	Get(ctx context.Context, id string) (domcontent.Record, error)
	Delete(ctx context.Context, id string) error
}
