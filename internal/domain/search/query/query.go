// Package query turns loosely-typed search parameters into a normalized
// filter and sort specification. Relevance scoring itself is delegated to
// the storage engine; this package only decides which predicates apply,
// which sort strategy wins, and how pagination is bounded.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/contentdex/internal/domain"
	"github.com/kailas-cloud/contentdex/internal/domain/content"
)

// Pagination bounds. The storage engine itself accepts arbitrary page sizes,
// so the cap lives here at the boundary.
const (
	DefaultLimit   = 50
	MaxLimit       = 200
	MaxQueryLength = 1024
)

// Sort is a ranking strategy for search results.
type Sort string

const (
	// SortRelevance orders by the engine's text score, ties by indexed_at desc.
	SortRelevance Sort = "relevance"
	// SortRating orders by metadata rating, ties by indexed_at desc.
	SortRating Sort = "rating"
	// SortDate orders by indexed_at.
	SortDate Sort = "date"
)

// IsValid reports whether s is a known sort strategy.
func (s Sort) IsValid() bool {
	return s == SortRelevance || s == SortRating || s == SortDate
}

// TagPredicate is an any-of membership match on a TAG field.
type TagPredicate struct {
	Field  string
	Values []string
}

// RangePredicate is an inclusive numeric range on a NUMERIC field.
// Min == Max expresses an exact match.
type RangePredicate struct {
	Field string
	Min   *float64
	Max   *float64
}

// PrefixPredicate matches values starting with Value. Used by the
// suggestions operation; predicates of this kind are OR-joined.
type PrefixPredicate struct {
	Field string
	Value string
	IsTag bool
}

// Spec is the normalized search specification: predicate set, sort key,
// and pagination. It has no behavior and no side effects.
type Spec struct {
	Text      string
	Tags      []TagPredicate
	Ranges    []RangePredicate
	Sort      Sort
	Ascending bool
	Limit     int
	Offset    int
}

// Params holds raw request parameters before validation. Integer-valued
// fields arrive as strings so malformed input fails here, not deeper in
// the query path.
type Params struct {
	Query       string
	BusinessID  string
	FranchiseID string
	ContentType string
	Tags        []string
	Categories  []string
	Rating      string
	Sentiment   string
	Language    string
	Limit       string
	Offset      string
	SortBy      string
	SortOrder   string
}

// Compose validates Params and builds a Spec.
//
// At least one of Query or BusinessID must be present. Every optional
// filter that is present becomes an exact-match predicate; absent filters
// are omitted. is_active=true is always appended so inactive records never
// surface regardless of caller intent.
func Compose(p Params) (Spec, error) {
	text := strings.TrimSpace(p.Query)
	businessID := strings.TrimSpace(p.BusinessID)

	if text == "" && businessID == "" {
		return Spec{}, fmt.Errorf("%w: either query or businessId is required", domain.ErrValidation)
	}
	if len(text) > MaxQueryLength {
		return Spec{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrValidation, MaxQueryLength)
	}

	spec := Spec{Text: text}

	spec.Tags = append(spec.Tags, TagPredicate{Field: content.FieldIsActive, Values: []string{"true"}})
	if businessID != "" {
		spec.Tags = append(spec.Tags, TagPredicate{Field: content.FieldBusinessID, Values: []string{businessID}})
	}
	if v := strings.TrimSpace(p.FranchiseID); v != "" {
		spec.Tags = append(spec.Tags, TagPredicate{Field: content.FieldFranchiseID, Values: []string{v}})
	}
	if v := strings.TrimSpace(p.ContentType); v != "" {
		if !content.Type(v).IsValid() {
			return Spec{}, fmt.Errorf("%w: unknown contentType %q", domain.ErrValidation, v)
		}
		spec.Tags = append(spec.Tags, TagPredicate{Field: content.FieldContentType, Values: []string{v}})
	}
	if vs := cleanList(p.Tags); len(vs) > 0 {
		spec.Tags = append(spec.Tags, TagPredicate{Field: content.FieldTags, Values: vs})
	}
	if vs := cleanList(p.Categories); len(vs) > 0 {
		spec.Tags = append(spec.Tags, TagPredicate{Field: content.FieldCategories, Values: vs})
	}
	if v := strings.TrimSpace(p.Sentiment); v != "" {
		if !content.Sentiment(v).IsValid() {
			return Spec{}, fmt.Errorf("%w: unknown sentiment %q", domain.ErrValidation, v)
		}
		spec.Tags = append(spec.Tags, TagPredicate{Field: content.FieldSentiment, Values: []string{v}})
	}
	if v := strings.TrimSpace(p.Language); v != "" {
		spec.Tags = append(spec.Tags, TagPredicate{Field: content.FieldLanguage, Values: []string{v}})
	}

	if v := strings.TrimSpace(p.Rating); v != "" {
		rating, err := strconv.Atoi(v)
		if err != nil {
			return Spec{}, fmt.Errorf("%w: rating must be an integer: %q", domain.ErrValidation, v)
		}
		if rating < 1 || rating > 5 {
			return Spec{}, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
		}
		// Exact match, not a minimum.
		f := float64(rating)
		spec.Ranges = append(spec.Ranges, RangePredicate{Field: content.FieldRating, Min: &f, Max: &f})
	}

	limit, err := parseBounded(p.Limit, "limit", DefaultLimit, MaxLimit)
	if err != nil {
		return Spec{}, err
	}
	spec.Limit = limit

	offset, err := parseBounded(p.Offset, "offset", 0, -1)
	if err != nil {
		return Spec{}, err
	}
	spec.Offset = offset

	sort, ascending, err := resolveSort(p.SortBy, p.SortOrder, text != "")
	if err != nil {
		return Spec{}, err
	}
	spec.Sort = sort
	spec.Ascending = ascending

	return spec, nil
}

// resolveSort picks the ranking strategy.
//
// Default is relevance when free text is present, date otherwise. An
// explicit relevance sort without free text degrades to date: every record
// scores identically on a pure filter query, so the engine's score carries
// no order.
func resolveSort(sortBy, sortOrder string, hasText bool) (Sort, bool, error) {
	ascending := false
	switch strings.ToLower(strings.TrimSpace(sortOrder)) {
	case "", "desc":
	case "asc":
		ascending = true
	default:
		return "", false, fmt.Errorf("%w: sortOrder must be \"asc\" or \"desc\"", domain.ErrValidation)
	}

	sort := Sort(strings.ToLower(strings.TrimSpace(sortBy)))
	if sort == "" {
		if hasText {
			sort = SortRelevance
		} else {
			sort = SortDate
		}
	}
	if !sort.IsValid() {
		return "", false, fmt.Errorf("%w: unknown sortBy %q", domain.ErrValidation, sortBy)
	}
	if sort == SortRelevance {
		if !hasText {
			sort = SortDate
		} else {
			// Relevance is always best-first.
			ascending = false
		}
	}
	return sort, ascending, nil
}

// parseBounded parses a non-negative integer with a default for empty input.
// max < 0 means unbounded.
func parseBounded(raw, name string, def, max int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer: %q", domain.ErrValidation, name, raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", domain.ErrValidation, name)
	}
	if max > 0 && n > max {
		n = max
	}
	return n, nil
}

// SplitCSV splits a comma-separated parameter into trimmed values.
func SplitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
