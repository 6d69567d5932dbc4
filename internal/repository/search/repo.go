package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/contentdex/internal/db"
	domcontent "github.com/kailas-cloud/contentdex/internal/domain/content"
	"github.com/kailas-cloud/contentdex/internal/domain/search/query"
	"github.com/kailas-cloud/contentdex/internal/domain/search/result"
	contentrepo "github.com/kailas-cloud/contentdex/internal/repository/content"
)

// SuggestLimit bounds typeahead result sizes.
const SuggestLimit = 10

// store is the consumer interface for search execution (ISP).
type store interface {
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
}

// Repo executes normalized search specifications against the FT index.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Search runs one FT.SEARCH round-trip for the given spec and returns the
// page of hits plus the engine's total match count.
func (r *Repo) Search(ctx context.Context, spec *query.Spec) ([]result.Hit, int, error) {
	q := &db.SearchQuery{
		Index:  contentrepo.IndexName(),
		Text:   spec.Text,
		Tags:   spec.Tags,
		Ranges: spec.Ranges,
		Limit:  spec.Limit,
		Offset: spec.Offset,
	}

	switch spec.Sort {
	case query.SortRelevance:
		// Engine score order; no SORTBY.
		q.WithScores = true
	case query.SortRating:
		q.SortBy = domcontent.FieldRating
		q.SortAsc = spec.Ascending
	case query.SortDate:
		q.SortBy = domcontent.FieldIndexedAt
		q.SortAsc = spec.Ascending
	default:
		return nil, 0, fmt.Errorf("unknown sort %q", spec.Sort)
	}

	sr, err := r.store.Search(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("search: %w", err)
	}

	hits := parseHits(sr)
	tieBreak(hits, spec)
	return hits, sr.Total, nil
}

// Suggest runs a tenant-scoped prefix match on title and tags.
func (r *Repo) Suggest(ctx context.Context, businessID, prefix string) ([]result.Suggestion, error) {
	q := &db.SearchQuery{
		Index: contentrepo.IndexName(),
		Tags: []query.TagPredicate{
			{Field: domcontent.FieldIsActive, Values: []string{"true"}},
			{Field: domcontent.FieldBusinessID, Values: []string{businessID}},
		},
		Prefixes: []query.PrefixPredicate{
			{Field: domcontent.FieldTitle, Value: prefix},
			{Field: domcontent.FieldTags, Value: prefix, IsTag: true},
		},
		ReturnFields: []string{domcontent.FieldTitle, domcontent.FieldTags},
		Limit:        SuggestLimit,
	}

	sr, err := r.store.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}

	suggestions := make([]result.Suggestion, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		s := result.Suggestion{
			ID:    recordID(entry.Key),
			Title: entry.Fields[domcontent.FieldTitle],
		}
		if raw := entry.Fields[domcontent.FieldTags]; raw != "" {
			s.Tags = strings.Split(raw, ",")
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, nil
}

// parseHits converts raw search entries into domain hits.
func parseHits(sr *db.SearchResult) []result.Hit {
	if sr == nil || len(sr.Entries) == 0 {
		return nil
	}
	hits := make([]result.Hit, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		hits = append(hits, result.Hit{
			Record: contentrepo.FromHash(recordID(entry.Key), entry.Fields),
			Score:  entry.Score,
		})
	}
	return hits
}

// tieBreak applies the indexed_at-descending secondary order within the
// returned page. The engine's SORTBY is single-key, so ties in the primary
// key arrive in arbitrary order.
func tieBreak(hits []result.Hit, spec *query.Spec) {
	if spec.Sort == query.SortDate {
		return // indexed_at is already the primary key
	}

	sort.SliceStable(hits, func(i, j int) bool {
		a, b := &hits[i], &hits[j]
		switch spec.Sort {
		case query.SortRelevance:
			if a.Score != b.Score {
				return a.Score > b.Score
			}
		case query.SortRating:
			ra, rb := a.Record.Meta().Rating, b.Record.Meta().Rating
			if ra != rb {
				if spec.Ascending {
					return ra < rb
				}
				return ra > rb
			}
		}
		return a.Record.IndexedAt() > b.Record.IndexedAt()
	})
}

func recordID(key string) string {
	return strings.TrimPrefix(key, contentrepo.Key(""))
}
