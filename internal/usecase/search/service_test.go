package search

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/contentdex/internal/domain"
	"github.com/kailas-cloud/contentdex/internal/domain/search/query"
	"github.com/kailas-cloud/contentdex/internal/domain/search/result"
)

// mockGateway implements Gateway with per-test function hooks.
type mockGateway struct {
	searchFn  func(ctx context.Context, spec *query.Spec) ([]result.Hit, int, error)
	suggestFn func(ctx context.Context, businessID, prefix string) ([]result.Suggestion, error)
}

func (m *mockGateway) Search(ctx context.Context, spec *query.Spec) ([]result.Hit, int, error) {
	return m.searchFn(ctx, spec)
}

func (m *mockGateway) Suggest(ctx context.Context, businessID, prefix string) ([]result.Suggestion, error) {
	return m.suggestFn(ctx, businessID, prefix)
}

// mockResolver counts hydration calls.
type mockResolver struct {
	err   error
	calls int
}

func (m *mockResolver) Hydrate(_ context.Context, _ []result.Hit) error {
	m.calls++
	return m.err
}

func TestSearch_ComposesAndHydrates(t *testing.T) {
	var gotSpec *query.Spec
	gw := &mockGateway{
		searchFn: func(_ context.Context, spec *query.Spec) ([]result.Hit, int, error) {
			gotSpec = spec
			return []result.Hit{{}}, 42, nil
		},
	}
	refs := &mockResolver{}
	svc := New(gw, refs)

	hits, total, err := svc.Search(context.Background(), query.Params{
		Query:      "pizza",
		BusinessID: "b-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 42 || len(hits) != 1 {
		t.Errorf("total = %d, hits = %d", total, len(hits))
	}
	if gotSpec.Text != "pizza" {
		t.Errorf("spec text = %q", gotSpec.Text)
	}
	if refs.calls != 1 {
		t.Errorf("hydrate calls = %d, want 1", refs.calls)
	}
}

func TestSearch_InvalidParams(t *testing.T) {
	gw := &mockGateway{
		searchFn: func(_ context.Context, _ *query.Spec) ([]result.Hit, int, error) {
			t.Error("gateway must not be called for invalid params")
			return nil, 0, nil
		},
	}
	svc := New(gw, &mockResolver{})

	_, _, err := svc.Search(context.Background(), query.Params{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestSearch_HydrateError(t *testing.T) {
	gw := &mockGateway{
		searchFn: func(_ context.Context, _ *query.Spec) ([]result.Hit, int, error) {
			return []result.Hit{{}}, 1, nil
		},
	}
	boom := errors.New("resolve failed")
	svc := New(gw, &mockResolver{err: boom})

	_, _, err := svc.Search(context.Background(), query.Params{BusinessID: "b-1"})
	if !errors.Is(err, boom) {
		t.Errorf("expected hydrate error, got %v", err)
	}
}

func TestSuggest_Validation(t *testing.T) {
	gw := &mockGateway{
		suggestFn: func(_ context.Context, _, _ string) ([]result.Suggestion, error) {
			t.Error("gateway must not be called for invalid input")
			return nil, nil
		},
	}
	svc := New(gw, &mockResolver{})

	tests := []struct {
		name       string
		businessID string
		prefix     string
	}{
		{"missing business", "", "piz"},
		{"prefix too short", "b-1", "p"},
		{"whitespace prefix", "b-1", "  p  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Suggest(context.Background(), tt.businessID, tt.prefix)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestSuggest_TrimsPrefix(t *testing.T) {
	var gotPrefix string
	gw := &mockGateway{
		suggestFn: func(_ context.Context, businessID, prefix string) ([]result.Suggestion, error) {
			if businessID != "b-1" {
				t.Errorf("businessID = %q", businessID)
			}
			gotPrefix = prefix
			return []result.Suggestion{{ID: "s1", Title: "Pizza"}}, nil
		},
	}
	svc := New(gw, &mockResolver{})

	got, err := svc.Suggest(context.Background(), "b-1", "  piz ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPrefix != "piz" {
		t.Errorf("prefix = %q, want piz", gotPrefix)
	}
	if len(got) != 1 || got[0].ID != "s1" {
		t.Errorf("suggestions = %+v", got)
	}
}
