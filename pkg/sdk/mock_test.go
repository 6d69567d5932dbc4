package contentdex

import (
	"context"

	domanalytics "github.com/kailas-cloud/contentdex/internal/domain/analytics"
	domcontent "github.com/kailas-cloud/contentdex/internal/domain/content"
	"github.com/kailas-cloud/contentdex/internal/domain/search/query"
	"github.com/kailas-cloud/contentdex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/contentdex/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn  func(ctx context.Context, p query.Params) ([]result.Hit, int, error)
	suggestFn func(ctx context.Context, businessID, prefix string) ([]result.Suggestion, error)
}

func (m *mockSearchUC) Search(ctx context.Context, p query.Params) ([]result.Hit, int, error) {
	return m.searchFn(ctx, p)
}

func (m *mockSearchUC) Suggest(ctx context.Context, businessID, prefix string) ([]result.Suggestion, error) {
	return m.suggestFn(ctx, businessID, prefix)
}

// --- indexUseCase mock ---

type mockIndexUC struct {
	createFn     func(ctx context.Context, rec *domcontent.Record) (string, error)
	updateFn     func(ctx context.Context, id string, rec *domcontent.Record) (domcontent.Record, error)
	deleteFn     func(ctx context.Context, id string) error
	bulkFn       func(ctx context.Context, recs []domcontent.Record) ([]string, error)
	addTagsFn    func(ctx context.Context, id string, tags []string) (domcontent.Record, error)
	removeTagsFn func(ctx context.Context, id string, tags []string) (domcontent.Record, error)
	reindexFn    func(ctx context.Context, id string) (domcontent.Record, error)
}

func (m *mockIndexUC) Create(ctx context.Context, rec *domcontent.Record) (string, error) {
	return m.createFn(ctx, rec)
}

func (m *mockIndexUC) Update(ctx context.Context, id string, rec *domcontent.Record) (domcontent.Record, error) {
	return m.updateFn(ctx, id, rec)
}

func (m *mockIndexUC) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockIndexUC) Bulk(ctx context.Context, recs []domcontent.Record) ([]string, error) {
	return m.bulkFn(ctx, recs)
}

func (m *mockIndexUC) AddTags(ctx context.Context, id string, tags []string) (domcontent.Record, error) {
	return m.addTagsFn(ctx, id, tags)
}

func (m *mockIndexUC) RemoveTags(ctx context.Context, id string, tags []string) (domcontent.Record, error) {
	return m.removeTagsFn(ctx, id, tags)
}

func (m *mockIndexUC) Reindex(ctx context.Context, id string) (domcontent.Record, error) {
	return m.reindexFn(ctx, id)
}

// --- analyticsUseCase mock ---

type mockAnalyticsUC struct {
	popularTagsFn func(ctx context.Context, businessID string, limit int) ([]domanalytics.TagCount, error)
	statsFn       func(ctx context.Context, businessID string) ([]domanalytics.TypeStats, error)
	recentFn      func(ctx context.Context, businessID string, limit int) ([]result.Hit, error)
	highRatedFn   func(ctx context.Context, businessID string, minRating float64, limit int) ([]result.Hit, error)
}

func (m *mockAnalyticsUC) PopularTags(ctx context.Context, businessID string, limit int) ([]domanalytics.TagCount, error) {
	return m.popularTagsFn(ctx, businessID, limit)
}

func (m *mockAnalyticsUC) Stats(ctx context.Context, businessID string) ([]domanalytics.TypeStats, error) {
	return m.statsFn(ctx, businessID)
}

func (m *mockAnalyticsUC) Recent(ctx context.Context, businessID string, limit int) ([]result.Hit, error) {
	return m.recentFn(ctx, businessID, limit)
}

func (m *mockAnalyticsUC) HighRated(ctx context.Context, businessID string, minRating float64, limit int) ([]result.Hit, error) {
	return m.highRatedFn(ctx, businessID, minRating, limit)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	checkFn func(ctx context.Context) healthuc.Report
}

func (m *mockHealthUC) Check(ctx context.Context) healthuc.Report {
	return m.checkFn(ctx)
}
