package contentdex

// Metadata carries the optional descriptive fields of a record.
type Metadata struct {
	Rating    int
	Sentiment string
	Language  string
	Source    string
	Author    string
	Custom    map[string]string
}

// Record is one unit of searchable content. ID is assigned on indexing
// when empty.
type Record struct {
	ID          string
	BusinessID  string
	FranchiseID string
	ContentType string
	ContentID   string
	Title       string
	Content     string
	Tags        []string
	Categories  []string
	Metadata    Metadata
	IsActive    bool
	IndexedAt   int64
	CreatedAt   int64
	UpdatedAt   int64
}

// SearchQuery holds search parameters. At least one of Query or
// BusinessID is required. Zero-valued fields are omitted from the query.
type SearchQuery struct {
	Query       string
	BusinessID  string
	FranchiseID string
	ContentType string
	Tags        []string
	Categories  []string
	Rating      int    // exact match 1-5, 0 = no filter
	Sentiment   string
	Language    string
	Limit       int
	Offset      int
	SortBy      string // relevance, rating, date
	SortOrder   string // asc, desc
}

// Ref is a denormalized reference projection.
type Ref struct {
	ID          string
	Name        string
	Description string
}

// SearchHit is a single search or listing result.
type SearchHit struct {
	Record    Record
	Score     float64
	Franchise *Ref
	Origin    *Ref
}

// TagCount is one entry of the popular-tags aggregation.
type TagCount struct {
	Tag   string
	Count int
}

// TypeStats is per-content-type statistics for a tenant.
type TypeStats struct {
	ContentType string
	Count       int
	AvgRating   float64
	Sentiments  []string
}

// Suggestion is a prefix-match completion.
type Suggestion struct {
	ID    string
	Title string
	Tags  []string
}
