package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/kailas-cloud/contentdex/internal/db"
	"github.com/kailas-cloud/contentdex/internal/domain/analytics"
	domcontent "github.com/kailas-cloud/contentdex/internal/domain/content"
	"github.com/kailas-cloud/contentdex/internal/domain/search/query"
	"github.com/kailas-cloud/contentdex/internal/domain/search/result"
	contentrepo "github.com/kailas-cloud/contentdex/internal/repository/content"
)

// Aggregation output property names.
const (
	propTag        = "tag"
	propCount      = "count"
	propAvgRating  = "avg_rating"
	propSentiments = "sentiments"
)

// store is the consumer interface for analytics queries (ISP).
type store interface {
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	Aggregate(ctx context.Context, q *db.AggregateQuery) ([]map[string]string, error)
}

// Repo runs the canned aggregation pipelines against the content index.
type Repo struct {
	store store
}

// New creates an analytics repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// PopularTags flattens tag sequences across a tenant's active records and
// counts occurrences, most frequent first.
func (r *Repo) PopularTags(ctx context.Context, businessID string, limit int) ([]analytics.TagCount, error) {
	q := &db.AggregateQuery{
		Index: contentrepo.IndexName(),
		Tags:  tenantScope(businessID),
		Load:  []string{domcontent.FieldTags},
		Apply: []db.ApplyStep{
			{Expression: fmt.Sprintf("split(@%s, %q)", domcontent.FieldTags, ","), As: propTag},
		},
		GroupBy:  []string{propTag},
		Reducers: []db.Reducer{{Func: "COUNT", As: propCount}},
		SortBy:   &db.AggregateSort{Property: propCount},
		Limit:    limit,
	}

	rows, err := r.store.Aggregate(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("popular tags: %w", err)
	}

	counts := make([]analytics.TagCount, 0, len(rows))
	for _, row := range rows {
		tag := row[propTag]
		if tag == "" {
			continue // records without tags group under the empty value
		}
		count, err := strconv.Atoi(row[propCount])
		if err != nil {
			continue
		}
		counts = append(counts, analytics.TagCount{Tag: tag, Count: count})
	}
	return counts, nil
}

// Stats groups a tenant's active records by content type, computing count,
// average rating (2 decimal places), and the raw sentiment sequence.
func (r *Repo) Stats(ctx context.Context, businessID string) ([]analytics.TypeStats, error) {
	q := &db.AggregateQuery{
		Index:   contentrepo.IndexName(),
		Tags:    tenantScope(businessID),
		GroupBy: []string{domcontent.FieldContentType},
		Reducers: []db.Reducer{
			{Func: "COUNT", As: propCount},
			{Func: "AVG", Arg: domcontent.FieldRating, As: propAvgRating},
			{Func: "TOLIST", Arg: domcontent.FieldSentiment, As: propSentiments},
		},
	}

	rows, err := r.store.Aggregate(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("content stats: %w", err)
	}

	stats := make([]analytics.TypeStats, 0, len(rows))
	for _, row := range rows {
		count, err := strconv.Atoi(row[propCount])
		if err != nil {
			continue
		}
		avg, _ := strconv.ParseFloat(row[propAvgRating], 64)
		stats = append(stats, analytics.TypeStats{
			ContentType: row[domcontent.FieldContentType],
			Count:       count,
			AvgRating:   math.Round(avg*100) / 100,
			Sentiments:  splitSentiments(row[propSentiments]),
		})
	}
	return stats, nil
}

// Recent lists a tenant's most recently indexed active records.
func (r *Repo) Recent(ctx context.Context, businessID string, limit int) ([]result.Hit, error) {
	q := &db.SearchQuery{
		Index:  contentrepo.IndexName(),
		Tags:   tenantScope(businessID),
		SortBy: domcontent.FieldIndexedAt,
		Limit:  limit,
	}

	sr, err := r.store.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("recent: %w", err)
	}
	return parseHits(sr), nil
}

// HighRated lists a tenant's active records at or above minRating,
// best-rated first, ties broken by indexed_at descending within the page.
func (r *Repo) HighRated(ctx context.Context, businessID string, minRating float64, limit int) ([]result.Hit, error) {
	q := &db.SearchQuery{
		Index: contentrepo.IndexName(),
		Tags:  tenantScope(businessID),
		Ranges: []query.RangePredicate{
			{Field: domcontent.FieldRating, Min: &minRating},
		},
		SortBy: domcontent.FieldRating,
		Limit:  limit,
	}

	sr, err := r.store.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("high rated: %w", err)
	}

	hits := parseHits(sr)
	sort.SliceStable(hits, func(i, j int) bool {
		ra, rb := hits[i].Record.Meta().Rating, hits[j].Record.Meta().Rating
		if ra != rb {
			return ra > rb
		}
		return hits[i].Record.IndexedAt() > hits[j].Record.IndexedAt()
	})
	return hits, nil
}

func tenantScope(businessID string) []query.TagPredicate {
	return []query.TagPredicate{
		{Field: domcontent.FieldIsActive, Values: []string{"true"}},
		{Field: domcontent.FieldBusinessID, Values: []string{businessID}},
	}
}

func parseHits(sr *db.SearchResult) []result.Hit {
	if sr == nil || len(sr.Entries) == 0 {
		return nil
	}
	hits := make([]result.Hit, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id := strings.TrimPrefix(entry.Key, contentrepo.Key(""))
		hits = append(hits, result.Hit{Record: contentrepo.FromHash(id, entry.Fields)})
	}
	return hits
}

func splitSentiments(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
