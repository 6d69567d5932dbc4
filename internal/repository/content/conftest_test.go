package content

import (
	"context"
	"testing"

	"github.com/kailas-cloud/contentdex/internal/db"
	domcontent "github.com/kailas-cloud/contentdex/internal/domain/content"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn        func(ctx context.Context, key string, fields map[string]string) error
	hsetMultiFn   func(ctx context.Context, items []db.HashSetItem) error
	hgetAllFn     func(ctx context.Context, key string) (map[string]string, error)
	delFn         func(ctx context.Context, key string) error
	existsFn      func(ctx context.Context, key string) (bool, error)
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
	indexExistsFn func(ctx context.Context, name string) (bool, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	return m.hsetFn(ctx, key, fields)
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	return m.hsetMultiFn(ctx, items)
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return m.hgetAllFn(ctx, key)
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	return m.delFn(ctx, key)
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	return m.existsFn(ctx, key)
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	return m.createIndexFn(ctx, def)
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	return m.indexExistsFn(ctx, name)
}

func newTestRecord(t *testing.T, id string) domcontent.Record {
	t.Helper()
	rec, err := domcontent.New(
		id, "b-1", "",
		domcontent.TypeSubmission, "src-"+id, "some title", "some body",
		[]string{"a", "b"}, nil,
		domcontent.Metadata{Rating: 4},
	)
	if err != nil {
		t.Fatalf("new record: %v", err)
	}
	rec.Stamp(1000)
	return rec
}
