package contentdex

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/contentdex/internal/domain"
	domanalytics "github.com/kailas-cloud/contentdex/internal/domain/analytics"
	domcontent "github.com/kailas-cloud/contentdex/internal/domain/content"
	"github.com/kailas-cloud/contentdex/internal/domain/search/query"
	"github.com/kailas-cloud/contentdex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/contentdex/internal/usecase/health"
)

func domainRecord(id string) domcontent.Record {
	return domcontent.Reconstruct(
		id, "b-1", "f-1",
		domcontent.TypeSubmission, "src-1", "a title", "a body",
		[]string{"pizza"}, nil,
		domcontent.Metadata{Rating: 4, Language: "en"},
		true,
		1000, 1000, 1000,
	)
}

func TestNew_RequiresAddress(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error without WithRedis")
	}
}

func TestClient_Search(t *testing.T) {
	var gotParams query.Params
	mock := &mockSearchUC{
		searchFn: func(_ context.Context, p query.Params) ([]result.Hit, int, error) {
			gotParams = p
			return []result.Hit{{
				Record:    domainRecord("r-1"),
				Score:     2.5,
				Franchise: &domain.Ref{ID: "f-1", Name: "Downtown"},
			}}, 1, nil
		},
	}
	c := &Client{searchSvc: mock}

	hits, err := c.Search(context.Background(), SearchQuery{
		Query:      "pizza",
		BusinessID: "b-1",
		Rating:     4,
		Limit:      20,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotParams.Query != "pizza" || gotParams.Rating != "4" || gotParams.Limit != "20" {
		t.Errorf("params = %+v", gotParams)
	}
	if len(hits) != 1 {
		t.Fatalf("hits = %d", len(hits))
	}
	if hits[0].Record.ID != "r-1" || hits[0].Score != 2.5 {
		t.Errorf("hit = %+v", hits[0])
	}
	if hits[0].Franchise == nil || hits[0].Franchise.Name != "Downtown" {
		t.Errorf("franchise = %+v", hits[0].Franchise)
	}
}

func TestClient_Search_Validation(t *testing.T) {
	mock := &mockSearchUC{
		searchFn: func(_ context.Context, p query.Params) ([]result.Hit, int, error) {
			_, err := query.Compose(p)
			return nil, 0, err
		},
	}
	c := &Client{searchSvc: mock}

	_, err := c.Search(context.Background(), SearchQuery{})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestClient_Suggest(t *testing.T) {
	mock := &mockSearchUC{
		suggestFn: func(_ context.Context, businessID, prefix string) ([]result.Suggestion, error) {
			if businessID != "b-1" || prefix != "piz" {
				t.Errorf("args = %q, %q", businessID, prefix)
			}
			return []result.Suggestion{{ID: "s1", Title: "Pizza", Tags: []string{"pizza"}}}, nil
		},
	}
	c := &Client{searchSvc: mock}

	out, err := c.Suggest(context.Background(), "b-1", "piz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].Title != "Pizza" {
		t.Errorf("suggestions = %+v", out)
	}
}

func TestClient_IndexRecord(t *testing.T) {
	mock := &mockIndexUC{
		createFn: func(_ context.Context, rec *domcontent.Record) (string, error) {
			if !rec.IsActive() {
				t.Error("new records must be indexed active")
			}
			return "generated-id", nil
		},
	}
	c := &Client{indexSvc: mock}

	// IsActive false on input is ignored for new records.
	id, err := c.IndexRecord(context.Background(), Record{
		BusinessID:  "b-1",
		ContentType: "submission",
		ContentID:   "src-1",
		Title:       "a title",
		Content:     "a body",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "generated-id" {
		t.Errorf("id = %q", id)
	}
}

func TestClient_IndexRecord_Invalid(t *testing.T) {
	c := &Client{indexSvc: &mockIndexUC{}}

	_, err := c.IndexRecord(context.Background(), Record{BusinessID: "b-1"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestClient_UpdateRecord_HonorsIsActive(t *testing.T) {
	mock := &mockIndexUC{
		updateFn: func(_ context.Context, id string, rec *domcontent.Record) (domcontent.Record, error) {
			if rec.IsActive() {
				t.Error("IsActive=false on update must deactivate")
			}
			out := domainRecord(id)
			out.SetActive(false)
			return out, nil
		},
	}
	c := &Client{indexSvc: mock}

	out, err := c.UpdateRecord(context.Background(), "r-1", Record{
		BusinessID:  "b-1",
		ContentType: "submission",
		ContentID:   "src-1",
		Title:       "a title",
		Content:     "a body",
		IsActive:    false,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.IsActive {
		t.Error("expected inactive record")
	}
}

func TestClient_BulkIndex_BadRecord(t *testing.T) {
	c := &Client{indexSvc: &mockIndexUC{}}

	_, err := c.BulkIndex(context.Background(), []Record{
		{BusinessID: "b-1", ContentType: "submission", ContentID: "s", Title: "t", Content: "c"},
		{BusinessID: "b-1"},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestClient_AddTags(t *testing.T) {
	mock := &mockIndexUC{
		addTagsFn: func(_ context.Context, id string, tags []string) (domcontent.Record, error) {
			rec := domainRecord(id)
			rec.AddTags(tags...)
			return rec, nil
		},
	}
	c := &Client{indexSvc: mock}

	out, err := c.AddTags(context.Background(), "r-1", []string{"dinner"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Tags) != 2 {
		t.Errorf("tags = %v", out.Tags)
	}
}

func TestClient_DeleteRecord_NotFound(t *testing.T) {
	mock := &mockIndexUC{
		deleteFn: func(_ context.Context, _ string) error { return domain.ErrNotFound },
	}
	c := &Client{indexSvc: mock}

	if err := c.DeleteRecord(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_PopularTags(t *testing.T) {
	mock := &mockAnalyticsUC{
		popularTagsFn: func(_ context.Context, businessID string, limit int) ([]domanalytics.TagCount, error) {
			return []domanalytics.TagCount{{Tag: "pizza", Count: 12}}, nil
		},
	}
	c := &Client{analyticsSvc: mock}

	out, err := c.PopularTags(context.Background(), "b-1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].Tag != "pizza" || out[0].Count != 12 {
		t.Errorf("tags = %+v", out)
	}
}

func TestClient_Stats(t *testing.T) {
	mock := &mockAnalyticsUC{
		statsFn: func(_ context.Context, _ string) ([]domanalytics.TypeStats, error) {
			return []domanalytics.TypeStats{{
				ContentType: "submission",
				Count:       3,
				AvgRating:   4.67,
				Sentiments:  []string{"positive"},
			}}, nil
		},
	}
	c := &Client{analyticsSvc: mock}

	out, err := c.Stats(context.Background(), "b-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].ContentType != "submission" || out[0].AvgRating != 4.67 {
		t.Errorf("stats = %+v", out)
	}
}

func TestClient_Recent(t *testing.T) {
	mock := &mockAnalyticsUC{
		recentFn: func(_ context.Context, _ string, _ int) ([]result.Hit, error) {
			return []result.Hit{{Record: domainRecord("r-1")}}, nil
		},
	}
	c := &Client{analyticsSvc: mock}

	out, err := c.Recent(context.Background(), "b-1", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].Record.ID != "r-1" {
		t.Errorf("hits = %+v", out)
	}
}

func TestClient_Health(t *testing.T) {
	mock := &mockHealthUC{
		checkFn: func(_ context.Context) healthuc.Report {
			return healthuc.Report{
				Status: healthuc.Unhealthy,
				Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckError},
			}
		},
	}
	c := &Client{healthSvc: mock}

	status := c.Health(context.Background())
	if status.Status != "error" {
		t.Errorf("status = %q", status.Status)
	}
	if status.Checks["database"] != "error" {
		t.Errorf("checks = %v", status.Checks)
	}
}
