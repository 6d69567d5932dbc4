package content

import (
	"fmt"
)

// Field length limits enforced at construction time.
const (
	MaxTitleLength = 200
	MaxBodyLength  = 50000
	MaxLabelLength = 50
)

// Type enumerates the kinds of source records that can be indexed.
type Type string

const (
	TypeSubmission   Type = "submission"
	TypeForm         Type = "form"
	TypeStaff        Type = "staff"
	TypeFranchise    Type = "franchise"
	TypeBusiness     Type = "business"
	TypeDiscount     Type = "discount"
	TypeNotification Type = "notification"
	TypeReport       Type = "report"
)

// IsValid reports whether t is a known content type.
func (t Type) IsValid() bool {
	switch t {
	case TypeSubmission, TypeForm, TypeStaff, TypeFranchise,
		TypeBusiness, TypeDiscount, TypeNotification, TypeReport:
		return true
	}
	return false
}

// Sentiment is the analyzed tone of a record.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// IsValid reports whether s is a known sentiment. Empty means unset.
func (s Sentiment) IsValid() bool {
	switch s {
	case "", SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// Origin identifies the source record a content entry was indexed from.
type Origin struct {
	Type Type
	ID   string
}

// Metadata carries the optional descriptive fields of a record.
// Rating 0 means unset; a set rating is 1-5.
type Metadata struct {
	Rating    int
	Sentiment Sentiment
	Language  string
	Source    string
	Author    string
	Custom    map[string]string
}

// Record is one indexed unit of searchable content owned by a business tenant.
type Record struct {
	id          string
	businessID  string
	franchiseID string
	contentType Type
	contentID   string
	title       string
	body        string
	tags        []string
	categories  []string
	meta        Metadata
	isActive    bool
	indexedAt   int64
	createdAt   int64
	updatedAt   int64
}

// New validates and creates a Record. Timestamps are left zero; the service
// layer stamps them. Language defaults to "en", IsActive to true.
func New(
	id, businessID, franchiseID string,
	contentType Type, contentID, title, body string,
	tags, categories []string,
	meta Metadata,
) (Record, error) {
	if businessID == "" {
		return Record{}, fmt.Errorf("businessId is required")
	}
	if !contentType.IsValid() {
		return Record{}, fmt.Errorf("unknown contentType %q", contentType)
	}
	if contentID == "" {
		return Record{}, fmt.Errorf("contentId is required")
	}
	if title == "" {
		return Record{}, fmt.Errorf("title is required")
	}
	if len(title) > MaxTitleLength {
		return Record{}, fmt.Errorf("title too long (max %d)", MaxTitleLength)
	}
	if body == "" {
		return Record{}, fmt.Errorf("content is required")
	}
	if len(body) > MaxBodyLength {
		return Record{}, fmt.Errorf("content too long (max %d bytes)", MaxBodyLength)
	}
	if err := validateLabels("tag", tags); err != nil {
		return Record{}, err
	}
	if err := validateLabels("category", categories); err != nil {
		return Record{}, err
	}
	if meta.Rating < 0 || meta.Rating > 5 {
		return Record{}, fmt.Errorf("rating must be between 1 and 5")
	}
	if !meta.Sentiment.IsValid() {
		return Record{}, fmt.Errorf("unknown sentiment %q", meta.Sentiment)
	}
	if meta.Language == "" {
		meta.Language = "en"
	}

	return Record{
		id:          id,
		businessID:  businessID,
		franchiseID: franchiseID,
		contentType: contentType,
		contentID:   contentID,
		title:       title,
		body:        body,
		tags:        dedupe(tags),
		categories:  dedupe(categories),
		meta:        meta,
		isActive:    true,
	}, nil
}

// Reconstruct creates a Record without validation (storage hydration).
func Reconstruct(
	id, businessID, franchiseID string,
	contentType Type, contentID, title, body string,
	tags, categories []string,
	meta Metadata,
	isActive bool,
	indexedAt, createdAt, updatedAt int64,
) Record {
	return Record{
		id: id, businessID: businessID, franchiseID: franchiseID,
		contentType: contentType, contentID: contentID,
		title: title, body: body,
		tags: tags, categories: categories,
		meta: meta, isActive: isActive,
		indexedAt: indexedAt, createdAt: createdAt, updatedAt: updatedAt,
	}
}

// ID returns the record identifier.
func (r *Record) ID() string { return r.id }

// BusinessID returns the owning tenant.
func (r *Record) BusinessID() string { return r.businessID }

// FranchiseID returns the optional sub-tenant scope.
func (r *Record) FranchiseID() string { return r.franchiseID }

// ContentType returns the source record kind.
func (r *Record) ContentType() Type { return r.contentType }

// ContentID returns the reference to the original source record.
func (r *Record) ContentID() string { return r.contentID }

// Title returns the record title.
func (r *Record) Title() string { return r.title }

// Body returns the searchable text content.
func (r *Record) Body() string { return r.body }

// Tags returns the ordered tag sequence.
func (r *Record) Tags() []string { return r.tags }

// Categories returns the ordered category sequence.
func (r *Record) Categories() []string { return r.categories }

// Meta returns the metadata fields.
func (r *Record) Meta() Metadata { return r.meta }

// IsActive reports whether the record is visible to search.
func (r *Record) IsActive() bool { return r.isActive }

// IndexedAt returns the last index timestamp (unix milli).
func (r *Record) IndexedAt() int64 { return r.indexedAt }

// CreatedAt returns the creation timestamp (unix milli).
func (r *Record) CreatedAt() int64 { return r.createdAt }

// UpdatedAt returns the last update timestamp (unix milli).
func (r *Record) UpdatedAt() int64 { return r.updatedAt }

// SetID assigns a generated identifier.
func (r *Record) SetID(id string) { r.id = id }

// SetActive toggles search visibility.
func (r *Record) SetActive(active bool) { r.isActive = active }

// Stamp refreshes indexedAt and updatedAt, setting createdAt on first stamp.
func (r *Record) Stamp(now int64) {
	r.indexedAt = now
	r.updatedAt = now
	if r.createdAt == 0 {
		r.createdAt = now
	}
}

// AddTags appends tags not already present, preserving order.
// Returns true if the tag sequence changed.
func (r *Record) AddTags(tags ...string) bool {
	changed := false
	for _, t := range tags {
		if t == "" || contains(r.tags, t) {
			continue
		}
		r.tags = append(r.tags, t)
		changed = true
	}
	return changed
}

// RemoveTags drops the given tags from the sequence.
// Returns true if the tag sequence changed.
func (r *Record) RemoveTags(tags ...string) bool {
	changed := false
	for _, t := range tags {
		for i, have := range r.tags {
			if have == t {
				r.tags = append(r.tags[:i], r.tags[i+1:]...)
				changed = true
				break
			}
		}
	}
	return changed
}

func validateLabels(kind string, labels []string) error {
	for _, l := range labels {
		if l == "" {
			return fmt.Errorf("empty %s", kind)
		}
		if len(l) > MaxLabelLength {
			return fmt.Errorf("%s %q too long (max %d)", kind, l, MaxLabelLength)
		}
	}
	return nil
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
