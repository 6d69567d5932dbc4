package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/contentdex/internal/db"
	"github.com/kailas-cloud/contentdex/internal/domain"
	domcontent "github.com/kailas-cloud/contentdex/internal/domain/content"
)

// TitleWeight boosts title matches over body matches in relevance scoring.
// Applied at index-creation time; the engine does the rest.
const TitleWeight = 2.0

// store is the consumer interface for content records (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo implements usecase/index.Repository over Redis hashes and one FT index.
type Repo struct {
	store store
}

// New creates a content repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// EnsureIndex creates the content FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, IndexName())
	if err != nil {
		return fmt.Errorf("probe index: %w", err)
	}
	if exists {
		return nil
	}

	def := db.NewIndex(IndexName()).
		Prefix(keyPrefix()).
		Tag(domcontent.FieldBusinessID).
		Tag(domcontent.FieldFranchiseID).
		Tag(domcontent.FieldContentType).
		TagWithOpts(domcontent.FieldTags, listSeparator, false).
		TagWithOpts(domcontent.FieldCategories, listSeparator, false).
		Tag(domcontent.FieldSentiment).
		Tag(domcontent.FieldLanguage).
		Tag(domcontent.FieldIsActive).
		NumericSortable(domcontent.FieldRating).
		NumericSortable(domcontent.FieldIndexedAt).
		TextWithWeight(domcontent.FieldTitle, TitleWeight).
		Text(domcontent.FieldBody).
		MustBuild()

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Save writes a record, creating or fully overwriting it.
func (r *Repo) Save(ctx context.Context, rec *domcontent.Record) error {
	if err := r.store.HSet(ctx, Key(rec.ID()), buildHashFields(rec)); err != nil {
		return fmt.Errorf("save content %s: %w", rec.ID(), err)
	}
	return nil
}

// SaveAll writes a batch of records in a single pipelined round-trip.
func (r *Repo) SaveAll(ctx context.Context, recs []domcontent.Record) error {
	items := make([]db.HashSetItem, len(recs))
	for i := range recs {
		items[i] = db.HashSetItem{
			Key:    Key(recs[i].ID()),
			Fields: buildHashFields(&recs[i]),
		}
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("save %d records: %w", len(recs), err)
	}
	return nil
}

// Get returns a record by ID.
func (r *Repo) Get(ctx context.Context, id string) (domcontent.Record, error) {
	m, err := r.store.HGetAll(ctx, Key(id))
	if err != nil {
		return domcontent.Record{}, fmt.Errorf("get content %s: %w", id, err)
	}
	if len(m) == 0 {
		return domcontent.Record{}, domain.ErrNotFound
	}
	return FromHash(id, m), nil
}

// Exists reports whether a record is stored.
func (r *Repo) Exists(ctx context.Context, id string) (bool, error) {
	ok, err := r.store.Exists(ctx, Key(id))
	if err != nil {
		return false, fmt.Errorf("check content %s: %w", id, err)
	}
	return ok, nil
}

// Delete hard-deletes a record.
func (r *Repo) Delete(ctx context.Context, id string) error {
	exists, err := r.store.Exists(ctx, Key(id))
	if err != nil {
		return fmt.Errorf("check content %s: %w", id, err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	if err := r.store.Del(ctx, Key(id)); err != nil {
		return fmt.Errorf("delete content %s: %w", id, err)
	}
	return nil
}

// IndexName returns the FT index covering content records.
func IndexName() string {
	return domain.KeyPrefix + "content:idx"
}

// Key returns the hash key for a record ID.
func Key(id string) string {
	return keyPrefix() + id
}

func keyPrefix() string {
	return domain.KeyPrefix + "content:"
}
