package index

import (
	"context"
	"testing"

	domcontent "github.com/kailas-cloud/contentdex/internal/domain/content"
)

// mockRepo implements Repository with per-test function hooks.
type mockRepo struct {
	saveFn    func(ctx context.Context, rec *domcontent.Record) error
	saveAllFn func(ctx context.Context, recs []domcontent.Record) error
	getFn     func(ctx context.Context, id string) (domcontent.Record, error)
	deleteFn  func(ctx context.Context, id string) error
}

func (m *mockRepo) Save(ctx context.Context, rec *domcontent.Record) error {
	return m.saveFn(ctx, rec)
}

func (m *mockRepo) SaveAll(ctx context.Context, recs []domcontent.Record) error {
	return m.saveAllFn(ctx, recs)
}

func (m *mockRepo) Get(ctx context.Context, id string) (domcontent.Record, error) {
	return m.getFn(ctx, id)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func newRecord(t *testing.T, id string) domcontent.Record {
	t.Helper()
	rec, err := domcontent.New(
		id, "b-1", "f-1",
		domcontent.TypeSubmission, "src-1", "a title", "a body",
		[]string{"pizza"}, nil,
		domcontent.Metadata{Rating: 4},
	)
	if err != nil {
		t.Fatalf("new record: %v", err)
	}
	return rec
}
