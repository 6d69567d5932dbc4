package query

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/contentdex/internal/domain"
	"github.com/kailas-cloud/contentdex/internal/domain/content"
)

func TestCompose_RequiresQueryOrBusinessID(t *testing.T) {
	cases := []struct {
		name   string
		params Params
		wantOK bool
	}{
		{"both missing", Params{}, false},
		{"whitespace only", Params{Query: "   ", BusinessID: " "}, false},
		{"query only", Params{Query: "coffee"}, true},
		{"businessId only", Params{BusinessID: "b-1"}, true},
		{"both present", Params{Query: "coffee", BusinessID: "b-1"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compose(tc.params)
			if tc.wantOK && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.wantOK {
				if !errors.Is(err, domain.ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
			}
		})
	}
}

func TestCompose_AlwaysFiltersActive(t *testing.T) {
	spec, err := Compose(Params{Query: "anything"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, p := range spec.Tags {
		if p.Field == content.FieldIsActive {
			found = true
			if len(p.Values) != 1 || p.Values[0] != "true" {
				t.Errorf("is_active predicate values = %v, want [true]", p.Values)
			}
		}
	}
	if !found {
		t.Error("is_active predicate missing")
	}
}

func TestCompose_AbsentFiltersOmitted(t *testing.T) {
	spec, err := Compose(Params{BusinessID: "b-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Only is_active and business_id.
	if len(spec.Tags) != 2 {
		t.Fatalf("expected 2 tag predicates, got %d: %+v", len(spec.Tags), spec.Tags)
	}
	if len(spec.Ranges) != 0 {
		t.Errorf("expected no range predicates, got %+v", spec.Ranges)
	}
}

func TestCompose_AllFilters(t *testing.T) {
	spec, err := Compose(Params{
		Query:       "latte",
		BusinessID:  "b-1",
		FranchiseID: "f-9",
		ContentType: "submission",
		Tags:        []string{"fast", "friendly"},
		Categories:  []string{"service"},
		Rating:      "5",
		Sentiment:   "positive",
		Language:    "en",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byField := make(map[string][]string)
	for _, p := range spec.Tags {
		byField[p.Field] = p.Values
	}

	want := map[string][]string{
		content.FieldIsActive:    {"true"},
		content.FieldBusinessID:  {"b-1"},
		content.FieldFranchiseID: {"f-9"},
		content.FieldContentType: {"submission"},
		content.FieldTags:        {"fast", "friendly"},
		content.FieldCategories:  {"service"},
		content.FieldSentiment:   {"positive"},
		content.FieldLanguage:    {"en"},
	}
	for field, values := range want {
		got, ok := byField[field]
		if !ok {
			t.Errorf("missing predicate for %s", field)
			continue
		}
		if len(got) != len(values) {
			t.Errorf("%s values = %v, want %v", field, got, values)
			continue
		}
		for i := range values {
			if got[i] != values[i] {
				t.Errorf("%s values = %v, want %v", field, got, values)
			}
		}
	}

	if len(spec.Ranges) != 1 {
		t.Fatalf("expected 1 range predicate, got %d", len(spec.Ranges))
	}
	r := spec.Ranges[0]
	if r.Field != content.FieldRating {
		t.Errorf("range field = %s, want rating", r.Field)
	}
	// Exact match, not a minimum.
	if r.Min == nil || r.Max == nil || *r.Min != 5 || *r.Max != 5 {
		t.Errorf("rating range = [%v, %v], want [5, 5]", r.Min, r.Max)
	}
}

func TestCompose_InvalidEnums(t *testing.T) {
	cases := []struct {
		name   string
		params Params
	}{
		{"unknown contentType", Params{BusinessID: "b-1", ContentType: "podcast"}},
		{"unknown sentiment", Params{BusinessID: "b-1", Sentiment: "angry"}},
		{"unknown sortBy", Params{BusinessID: "b-1", SortBy: "popularity"}},
		{"unknown sortOrder", Params{BusinessID: "b-1", SortOrder: "sideways"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Compose(tc.params); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestCompose_PaginationParsing(t *testing.T) {
	cases := []struct {
		name       string
		limit      string
		offset     string
		wantLimit  int
		wantOffset int
		wantErr    bool
	}{
		{"defaults", "", "", DefaultLimit, 0, false},
		{"explicit", "25", "100", 25, 100, false},
		{"limit capped at max", "10000", "", MaxLimit, 0, false},
		{"malformed limit", "abc", "", 0, 0, true},
		{"malformed offset", "", "1.5", 0, 0, true},
		{"negative limit", "-1", "", 0, 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec, err := Compose(Params{BusinessID: "b-1", Limit: tc.limit, Offset: tc.offset})
			if tc.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if spec.Limit != tc.wantLimit {
				t.Errorf("limit = %d, want %d", spec.Limit, tc.wantLimit)
			}
			if spec.Offset != tc.wantOffset {
				t.Errorf("offset = %d, want %d", spec.Offset, tc.wantOffset)
			}
		})
	}
}

func TestCompose_SortResolution(t *testing.T) {
	cases := []struct {
		name          string
		query         string
		sortBy        string
		sortOrder     string
		wantSort      Sort
		wantAscending bool
	}{
		{"default with text", "coffee", "", "", SortRelevance, false},
		{"default without text", "", "", "", SortDate, false},
		{"relevance without text degrades to date", "", "relevance", "", SortDate, false},
		{"relevance ignores asc", "coffee", "relevance", "asc", SortRelevance, false},
		{"rating desc default", "", "rating", "", SortRating, false},
		{"rating asc", "", "rating", "asc", SortRating, true},
		{"date asc", "", "date", "asc", SortDate, true},
		{"case insensitive", "", "RATING", "DESC", SortRating, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec, err := Compose(Params{
				Query:      tc.query,
				BusinessID: "b-1",
				SortBy:     tc.sortBy,
				SortOrder:  tc.sortOrder,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if spec.Sort != tc.wantSort {
				t.Errorf("sort = %s, want %s", spec.Sort, tc.wantSort)
			}
			if spec.Ascending != tc.wantAscending {
				t.Errorf("ascending = %v, want %v", spec.Ascending, tc.wantAscending)
			}
		})
	}
}

func TestCompose_RatingValidation(t *testing.T) {
	for _, raw := range []string{"0", "6", "four", "4.5"} {
		t.Run(raw, func(t *testing.T) {
			if _, err := Compose(Params{BusinessID: "b-1", Rating: raw}); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation for rating %q, got %v", raw, err)
			}
		})
	}
}

func TestCompose_QueryTooLong(t *testing.T) {
	long := make([]byte, MaxQueryLength+1)
	for i := range long {
		long[i] = 'a'
	}

	if _, err := Compose(Params{Query: string(long)}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSplitCSV(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"  ", nil},
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , ,b ", []string{"a", "b"}},
	}

	for _, tc := range cases {
		got := SplitCSV(tc.in)
		if len(got) != len(tc.want) {
			t.Errorf("SplitCSV(%q) = %v, want %v", tc.in, got, tc.want)
			continue
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Errorf("SplitCSV(%q) = %v, want %v", tc.in, got, tc.want)
			}
		}
	}
}
