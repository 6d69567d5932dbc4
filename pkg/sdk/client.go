package contentdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/contentdex/internal/db"
	dbRedis "github.com/kailas-cloud/contentdex/internal/db/redis"
	domanalytics "github.com/kailas-cloud/contentdex/internal/domain/analytics"
	domcontent "github.com/kailas-cloud/contentdex/internal/domain/content"
	"github.com/kailas-cloud/contentdex/internal/domain/search/query"
	"github.com/kailas-cloud/contentdex/internal/domain/search/result"
	analyticsrepo "github.com/kailas-cloud/contentdex/internal/repository/analytics"
	contentrepo "github.com/kailas-cloud/contentdex/internal/repository/content"
	referencerepo "github.com/kailas-cloud/contentdex/internal/repository/reference"
	searchrepo "github.com/kailas-cloud/contentdex/internal/repository/search"
	analyticsuc "github.com/kailas-cloud/contentdex/internal/usecase/analytics"
	healthuc "github.com/kailas-cloud/contentdex/internal/usecase/health"
	indexuc "github.com/kailas-cloud/contentdex/internal/usecase/index"
	searchuc "github.com/kailas-cloud/contentdex/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces so tests can substitute services.
type searchUseCase interface {
	Search(ctx context.Context, p query.Params) ([]result.Hit, int, error)
	Suggest(ctx context.Context, businessID, prefix string) ([]result.Suggestion, error)
}

type indexUseCase interface {
	Create(ctx context.Context, rec *domcontent.Record) (string, error)
	Update(ctx context.Context, id string, rec *domcontent.Record) (domcontent.Record, error)
	Delete(ctx context.Context, id string) error
	Bulk(ctx context.Context, recs []domcontent.Record) ([]string, error)
	AddTags(ctx context.Context, id string, tags []string) (domcontent.Record, error)
	RemoveTags(ctx context.Context, id string, tags []string) (domcontent.Record, error)
	Reindex(ctx context.Context, id string) (domcontent.Record, error)
}

type analyticsUseCase interface {
	PopularTags(ctx context.Context, businessID string, limit int) ([]domanalytics.TagCount, error)
	Stats(ctx context.Context, businessID string) ([]domanalytics.TypeStats, error)
	Recent(ctx context.Context, businessID string, limit int) ([]result.Hit, error)
	HighRated(ctx context.Context, businessID string, minRating float64, limit int) ([]result.Hit, error)
}

// Client is the contentdex SDK entry point.
type Client struct {
	store        db.Store
	searchSvc    searchUseCase
	indexSvc     indexUseCase
	analyticsSvc analyticsUseCase
	healthSvc    healthUseCase
	obs          *observer
}

// New creates a contentdex Client, connects to the database, and ensures
// the search index exists. The provided context is used for the initial
// readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("contentdex: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("contentdex: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("contentdex: database not ready: %w", err)
	}

	contentRepo := contentrepo.New(store)
	if err := contentRepo.EnsureIndex(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("contentdex: ensure index: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}

	referenceRepo := referencerepo.New(store)

	return &Client{
		store:        store,
		searchSvc:    searchuc.New(searchrepo.New(store), referenceRepo),
		indexSvc:     indexuc.New(contentRepo),
		analyticsSvc: analyticsuc.New(analyticsrepo.New(store), referenceRepo),
		healthSvc:    healthuc.New(store),
		obs:          obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search runs a composed search. At least one of Query or BusinessID
// must be set.
func (c *Client) Search(ctx context.Context, q SearchQuery) (hits []SearchHit, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	res, _, err := c.searchSvc.Search(ctx, toParams(q))
	if err != nil {
		return nil, err
	}
	return fromHits(res), nil
}

// Suggest returns title/tag prefix completions for a tenant.
func (c *Client) Suggest(ctx context.Context, businessID, prefix string) (out []Suggestion, err error) {
	start := time.Now()
	defer func() { c.obs.observe("suggest", start, err) }()

	suggestions, err := c.searchSvc.Suggest(ctx, businessID, prefix)
	if err != nil {
		return nil, err
	}
	out = make([]Suggestion, len(suggestions))
	for i, s := range suggestions {
		out[i] = Suggestion{ID: s.ID, Title: s.Title, Tags: s.Tags}
	}
	return out, nil
}

// IndexRecord validates and stores one record, returning its ID. New
// records are always indexed active; IsActive on the input is ignored.
func (c *Client) IndexRecord(ctx context.Context, r Record) (id string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("index", start, err) }()

	rec, err := toDomainRecord(r)
	if err != nil {
		return "", err
	}
	return c.indexSvc.Create(ctx, &rec)
}

// UpdateRecord replaces an existing record's fields. IsActive on the
// input is honored, so a zero value deactivates the record.
func (c *Client) UpdateRecord(ctx context.Context, id string, r Record) (out Record, err error) {
	start := time.Now()
	defer func() { c.obs.observe("update", start, err) }()

	rec, err := toDomainRecord(r)
	if err != nil {
		return Record{}, err
	}
	rec.SetActive(r.IsActive)

	updated, err := c.indexSvc.Update(ctx, id, &rec)
	if err != nil {
		return Record{}, err
	}
	return fromDomainRecord(&updated), nil
}

// DeleteRecord removes a record permanently.
func (c *Client) DeleteRecord(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("delete", start, err) }()

	return c.indexSvc.Delete(ctx, id)
}

// BulkIndex stores a non-empty batch of records in one round-trip,
// returning the assigned IDs in input order.
func (c *Client) BulkIndex(ctx context.Context, records []Record) (ids []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("bulk_index", start, err) }()

	recs := make([]domcontent.Record, len(records))
	for i, r := range records {
		recs[i], err = toDomainRecord(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return c.indexSvc.Bulk(ctx, recs)
}

// AddTags appends tags to a record; already-present tags are skipped.
func (c *Client) AddTags(ctx context.Context, id string, tags []string) (out Record, err error) {
	start := time.Now()
	defer func() { c.obs.observe("add_tags", start, err) }()

	rec, err := c.indexSvc.AddTags(ctx, id, tags)
	if err != nil {
		return Record{}, err
	}
	return fromDomainRecord(&rec), nil
}

// RemoveTags drops tags from a record; absent tags are ignored.
func (c *Client) RemoveTags(ctx context.Context, id string, tags []string) (out Record, err error) {
	start := time.Now()
	defer func() { c.obs.observe("remove_tags", start, err) }()

	rec, err := c.indexSvc.RemoveTags(ctx, id, tags)
	if err != nil {
		return Record{}, err
	}
	return fromDomainRecord(&rec), nil
}

// Reindex refreshes a record's indexed_at without changing its fields.
func (c *Client) Reindex(ctx context.Context, id string) (out Record, err error) {
	start := time.Now()
	defer func() { c.obs.observe("reindex", start, err) }()

	rec, err := c.indexSvc.Reindex(ctx, id)
	if err != nil {
		return Record{}, err
	}
	return fromDomainRecord(&rec), nil
}

// PopularTags returns the tenant's most used tags, most frequent first.
func (c *Client) PopularTags(ctx context.Context, businessID string, limit int) (out []TagCount, err error) {
	start := time.Now()
	defer func() { c.obs.observe("popular_tags", start, err) }()

	counts, err := c.analyticsSvc.PopularTags(ctx, businessID, limit)
	if err != nil {
		return nil, err
	}
	out = make([]TagCount, len(counts))
	for i, tc := range counts {
		out[i] = TagCount{Tag: tc.Tag, Count: tc.Count}
	}
	return out, nil
}

// Stats returns per-content-type statistics for a tenant.
func (c *Client) Stats(ctx context.Context, businessID string) (out []TypeStats, err error) {
	start := time.Now()
	defer func() { c.obs.observe("stats", start, err) }()

	stats, err := c.analyticsSvc.Stats(ctx, businessID)
	if err != nil {
		return nil, err
	}
	out = make([]TypeStats, len(stats))
	for i, s := range stats {
		out[i] = TypeStats{
			ContentType: s.ContentType,
			Count:       s.Count,
			AvgRating:   s.AvgRating,
			Sentiments:  s.Sentiments,
		}
	}
	return out, nil
}

// Recent returns the tenant's most recently indexed records.
func (c *Client) Recent(ctx context.Context, businessID string, limit int) (hits []SearchHit, err error) {
	start := time.Now()
	defer func() { c.obs.observe("recent", start, err) }()

	res, err := c.analyticsSvc.Recent(ctx, businessID, limit)
	if err != nil {
		return nil, err
	}
	return fromHits(res), nil
}

// HighRated returns the tenant's records rated at or above minRating.
func (c *Client) HighRated(ctx context.Context, businessID string, minRating float64, limit int) (hits []SearchHit, err error) {
	start := time.Now()
	defer func() { c.obs.observe("high_rated", start, err) }()

	res, err := c.analyticsSvc.HighRated(ctx, businessID, minRating, limit)
	if err != nil {
		return nil, err
	}
	return fromHits(res), nil
}
