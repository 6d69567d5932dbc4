package chi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/kailas-cloud/contentdex/internal/domain"
	domcontent "github.com/kailas-cloud/contentdex/internal/domain/content"
	"github.com/kailas-cloud/contentdex/internal/domain/search/query"
	"github.com/kailas-cloud/contentdex/internal/domain/search/result"
)

// envelope wraps every /api response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Filters any    `json:"filters,omitempty"`
	Error   string `json:"error,omitempty"`
}

// metadataPayload mirrors the record metadata on the wire.
type metadataPayload struct {
	Rating    int               `json:"rating,omitempty"`
	Sentiment string            `json:"sentiment,omitempty"`
	Language  string            `json:"language,omitempty"`
	Source    string            `json:"source,omitempty"`
	Author    string            `json:"author,omitempty"`
	Custom    map[string]string `json:"custom,omitempty"`
}

// recordPayload is the create/update/bulk request body.
type recordPayload struct {
	ID          string          `json:"id,omitempty"`
	BusinessID  string          `json:"businessId"`
	FranchiseID string          `json:"franchiseId,omitempty"`
	ContentType string          `json:"contentType"`
	ContentID   string          `json:"contentId"`
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Tags        []string        `json:"tags,omitempty"`
	Categories  []string        `json:"categories,omitempty"`
	Metadata    metadataPayload `json:"metadata"`
	IsActive    *bool           `json:"isActive,omitempty"`
}

func (p recordPayload) toRecord() (domcontent.Record, error) {
	rec, err := domcontent.New(
		p.ID, p.BusinessID, p.FranchiseID,
		domcontent.Type(p.ContentType), p.ContentID, p.Title, p.Content,
		p.Tags, p.Categories,
		domcontent.Metadata{
			Rating:    p.Metadata.Rating,
			Sentiment: domcontent.Sentiment(p.Metadata.Sentiment),
			Language:  p.Metadata.Language,
			Source:    p.Metadata.Source,
			Author:    p.Metadata.Author,
			Custom:    p.Metadata.Custom,
		},
	)
	if err != nil {
		return domcontent.Record{}, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}
	if p.IsActive != nil {
		rec.SetActive(*p.IsActive)
	}
	return rec, nil
}

// advancedSearchRequest is the structured POST /api/search/advanced body.
type advancedSearchRequest struct {
	Query       string   `json:"query,omitempty"`
	BusinessID  string   `json:"businessId,omitempty"`
	FranchiseID string   `json:"franchiseId,omitempty"`
	ContentType string   `json:"contentType,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Rating      *int     `json:"rating,omitempty"`
	Sentiment   string   `json:"sentiment,omitempty"`
	Language    string   `json:"language,omitempty"`
	Limit       *int     `json:"limit,omitempty"`
	Offset      *int     `json:"offset,omitempty"`
	SortBy      string   `json:"sortBy,omitempty"`
	SortOrder   string   `json:"sortOrder,omitempty"`
}

func (r advancedSearchRequest) toParams() query.Params {
	return query.Params{
		Query:       r.Query,
		BusinessID:  r.BusinessID,
		FranchiseID: r.FranchiseID,
		ContentType: r.ContentType,
		Tags:        r.Tags,
		Categories:  r.Categories,
		Rating:      intParam(r.Rating),
		Sentiment:   r.Sentiment,
		Language:    r.Language,
		Limit:       intParam(r.Limit),
		Offset:      intParam(r.Offset),
		SortBy:      r.SortBy,
		SortOrder:   r.SortOrder,
	}
}

func intParam(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

// tagsRequest is the tag add/remove body.
type tagsRequest struct {
	Tags []string `json:"tags"`
}

// refPayload is a denormalized reference projection.
type refPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// hitPayload is one search or listing result on the wire.
type hitPayload struct {
	ID          string          `json:"id"`
	BusinessID  string          `json:"businessId"`
	FranchiseID string          `json:"franchiseId,omitempty"`
	Franchise   *refPayload     `json:"franchise,omitempty"`
	ContentType string          `json:"contentType"`
	ContentID   string          `json:"contentId"`
	Origin      *refPayload     `json:"origin,omitempty"`
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Tags        []string        `json:"tags,omitempty"`
	Categories  []string        `json:"categories,omitempty"`
	Metadata    metadataPayload `json:"metadata"`
	Score       *float64        `json:"score,omitempty"`
	IsActive    bool            `json:"isActive"`
	IndexedAt   int64           `json:"indexedAt"`
	CreatedAt   int64           `json:"createdAt"`
	UpdatedAt   int64           `json:"updatedAt"`
}

func hitToPayload(h *result.Hit, withScore bool) hitPayload {
	rec := &h.Record
	meta := rec.Meta()

	p := hitPayload{
		ID:          rec.ID(),
		BusinessID:  rec.BusinessID(),
		FranchiseID: rec.FranchiseID(),
		Franchise:   refToPayload(h.Franchise),
		ContentType: string(rec.ContentType()),
		ContentID:   rec.ContentID(),
		Origin:      refToPayload(h.Origin),
		Title:       rec.Title(),
		Content:     rec.Body(),
		Tags:        rec.Tags(),
		Categories:  rec.Categories(),
		Metadata: metadataPayload{
			Rating:    meta.Rating,
			Sentiment: string(meta.Sentiment),
			Language:  meta.Language,
			Source:    meta.Source,
			Author:    meta.Author,
			Custom:    meta.Custom,
		},
		IsActive:  rec.IsActive(),
		IndexedAt: rec.IndexedAt(),
		CreatedAt: rec.CreatedAt(),
		UpdatedAt: rec.UpdatedAt(),
	}
	if withScore {
		score := h.Score
		p.Score = &score
	}
	return p
}

func hitsToPayload(hits []result.Hit, withScore bool) []hitPayload {
	out := make([]hitPayload, len(hits))
	for i := range hits {
		out[i] = hitToPayload(&hits[i], withScore)
	}
	return out
}

func refToPayload(ref *domain.Ref) *refPayload {
	if ref == nil {
		return nil
	}
	return &refPayload{ID: ref.ID, Name: ref.Name, Description: ref.Description}
}

func writeRecord(w http.ResponseWriter, status int, rec *domcontent.Record) {
	hit := result.Hit{Record: *rec}
	writeJSON(w, status, envelope{Success: true, Data: hitToPayload(&hit, false)})
}

// filtersEcho returns the caller-supplied filters for the response envelope.
func filtersEcho(p query.Params) map[string]any {
	echo := make(map[string]any)
	put := func(k, v string) {
		if v != "" {
			echo[k] = v
		}
	}
	put("query", p.Query)
	put("businessId", p.BusinessID)
	put("franchiseId", p.FranchiseID)
	put("contentType", p.ContentType)
	put("rating", p.Rating)
	put("sentiment", p.Sentiment)
	put("language", p.Language)
	put("sortBy", p.SortBy)
	put("sortOrder", p.SortOrder)
	if len(p.Tags) > 0 {
		echo["tags"] = p.Tags
	}
	if len(p.Categories) > 0 {
		echo["categories"] = p.Categories
	}
	return echo
}
