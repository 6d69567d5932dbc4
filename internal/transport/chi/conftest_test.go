package chi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/contentdex/internal/domain"
	domanalytics "github.com/kailas-cloud/contentdex/internal/domain/analytics"
	domcontent "github.com/kailas-cloud/contentdex/internal/domain/content"
	"github.com/kailas-cloud/contentdex/internal/domain/search/query"
	"github.com/kailas-cloud/contentdex/internal/domain/search/result"
	analyticsuc "github.com/kailas-cloud/contentdex/internal/usecase/analytics"
	healthuc "github.com/kailas-cloud/contentdex/internal/usecase/health"
	indexuc "github.com/kailas-cloud/contentdex/internal/usecase/index"
	searchuc "github.com/kailas-cloud/contentdex/internal/usecase/search"
)

// fakeGateway implements the search gateway with per-test hooks.
type fakeGateway struct {
	searchFn  func(ctx context.Context, spec *query.Spec) ([]result.Hit, int, error)
	suggestFn func(ctx context.Context, businessID, prefix string) ([]result.Suggestion, error)
}

func (f *fakeGateway) Search(ctx context.Context, spec *query.Spec) ([]result.Hit, int, error) {
	if f.searchFn == nil {
		return nil, 0, nil
	}
	return f.searchFn(ctx, spec)
}

func (f *fakeGateway) Suggest(ctx context.Context, businessID, prefix string) ([]result.Suggestion, error) {
	if f.suggestFn == nil {
		return nil, nil
	}
	return f.suggestFn(ctx, businessID, prefix)
}

// fakeResolver is a no-op reference resolver.
type fakeResolver struct{}

func (fakeResolver) Hydrate(_ context.Context, _ []result.Hit) error { return nil }

// fakeIndexRepo is an in-memory record store.
type fakeIndexRepo struct {
	records map[string]domcontent.Record
	saveErr error
}

func newFakeIndexRepo() *fakeIndexRepo {
	return &fakeIndexRepo{records: make(map[string]domcontent.Record)}
}

func (f *fakeIndexRepo) Save(_ context.Context, rec *domcontent.Record) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.records[rec.ID()] = *rec
	return nil
}

func (f *fakeIndexRepo) SaveAll(_ context.Context, recs []domcontent.Record) error {
	for i := range recs {
		f.records[recs[i].ID()] = recs[i]
	}
	return nil
}

func (f *fakeIndexRepo) Get(_ context.Context, id string) (domcontent.Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return domcontent.Record{}, domain.ErrNotFound
	}
	return rec, nil
}

func (f *fakeIndexRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

// fakeAnalyticsRepo returns canned analytics rows.
type fakeAnalyticsRepo struct {
	tagCounts []domanalytics.TagCount
	stats     []domanalytics.TypeStats
	hits      []result.Hit
	err       error
}

func (f *fakeAnalyticsRepo) PopularTags(_ context.Context, _ string, _ int) ([]domanalytics.TagCount, error) {
	return f.tagCounts, f.err
}

func (f *fakeAnalyticsRepo) Stats(_ context.Context, _ string) ([]domanalytics.TypeStats, error) {
	return f.stats, f.err
}

func (f *fakeAnalyticsRepo) Recent(_ context.Context, _ string, _ int) ([]result.Hit, error) {
	return f.hits, f.err
}

func (f *fakeAnalyticsRepo) HighRated(_ context.Context, _ string, _ float64, _ int) ([]result.Hit, error) {
	return f.hits, f.err
}

// fakePinger reports database health.
type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(_ context.Context) error { return f.err }

// testEnv bundles the server dependencies a test can swap out.
type testEnv struct {
	gateway   *fakeGateway
	indexRepo *fakeIndexRepo
	analytics *fakeAnalyticsRepo
	pinger    *fakePinger
}

func newTestEnv() *testEnv {
	return &testEnv{
		gateway:   &fakeGateway{},
		indexRepo: newFakeIndexRepo(),
		analytics: &fakeAnalyticsRepo{},
		pinger:    &fakePinger{},
	}
}

func (e *testEnv) handler() http.Handler {
	srv := NewServer(
		searchuc.New(e.gateway, fakeResolver{}),
		indexuc.New(e.indexRepo).WithClock(func() int64 { return 1000 }),
		analyticsuc.New(e.analytics, fakeResolver{}),
		healthuc.New(e.pinger),
		zap.NewNop(),
	)
	r := chi.NewRouter()
	srv.Routes(r)
	return r
}

func sampleHit(id string, score float64) result.Hit {
	rec := domcontent.Reconstruct(
		id, "b-1", "f-1",
		domcontent.TypeSubmission, "src-1", "a title", "a body",
		[]string{"pizza"}, nil,
		domcontent.Metadata{Rating: 4, Language: "en"},
		true,
		1000, 1000, 1000,
	)
	return result.Hit{Record: rec, Score: score}
}

func validRecordBody() string {
	return `{
		"businessId": "b-1",
		"contentType": "submission",
		"contentId": "src-1",
		"title": "a title",
		"content": "a body",
		"tags": ["pizza"],
		"metadata": {"rating": 4}
	}`
}
