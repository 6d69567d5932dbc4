package db

import "github.com/kailas-cloud/contentdex/internal/domain/search/query"

// SearchQuery is the input for FT.SEARCH. The db layer owns RediSearch
// query syntax: callers pass structured predicates, never raw query text.
type SearchQuery struct {
	Index string
	// Text is an optional free-text clause matched against all TEXT fields.
	// Relevance weighting is fixed at index-creation time.
	Text   string
	Tags   []query.TagPredicate
	Ranges []query.RangePredicate
	// Prefixes are OR-joined into a single clause (suggestions).
	Prefixes []query.PrefixPredicate
	// SortBy orders results by a SORTABLE field. Empty means engine score
	// order; WithScores is then implied.
	SortBy     string
	SortAsc    bool
	WithScores bool
	Limit      int
	Offset     int
	// ReturnFields restricts the fields fetched per hit; empty fetches all.
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	// Total is the full match count reported by the engine, not the page size.
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

// Reducer is a GROUPBY reduction step in an aggregation pipeline.
type Reducer struct {
	Func string // COUNT, AVG, TOLIST, ...
	Arg  string // property name, empty for COUNT
	As   string
}

// ApplyStep is a projection expression applied before grouping.
type ApplyStep struct {
	Expression string
	As         string
}

// AggregateSort orders aggregation output by a computed or loaded property.
type AggregateSort struct {
	Property  string
	Ascending bool
}

// AggregateQuery is the input for FT.AGGREGATE.
type AggregateQuery struct {
	Index string
	// Query is the pre-filter, built from the same predicate types as search.
	Tags     []query.TagPredicate
	Ranges   []query.RangePredicate
	Load     []string
	Apply    []ApplyStep
	GroupBy  []string
	Reducers []Reducer
	SortBy   *AggregateSort
	Limit    int
}
