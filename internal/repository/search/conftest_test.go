package search

import (
	"context"
	"strconv"
	"testing"

	"github.com/kailas-cloud/contentdex/internal/db"
	domcontent "github.com/kailas-cloud/contentdex/internal/domain/content"
	contentrepo "github.com/kailas-cloud/contentdex/internal/repository/content"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn func(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	lastQ    *db.SearchQuery
}

func (m *mockStore) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	m.lastQ = q
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

func entry(id string, score float64, rating int, indexedAt int64) db.SearchEntry {
	return db.SearchEntry{
		Key:   contentrepo.Key(id),
		Score: score,
		Fields: map[string]string{
			domcontent.FieldBusinessID:  "b-1",
			domcontent.FieldContentType: "submission",
			domcontent.FieldContentID:   "src-" + id,
			domcontent.FieldTitle:       "title " + id,
			domcontent.FieldBody:        "body " + id,
			domcontent.FieldRating:      strconv.Itoa(rating),
			domcontent.FieldIsActive:    "true",
			domcontent.FieldIndexedAt:   strconv.FormatInt(indexedAt, 10),
		},
	}
}
