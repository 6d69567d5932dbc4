package contentdex

import (
	"fmt"

	"github.com/kailas-cloud/contentdex/internal/domain"
	domcontent "github.com/kailas-cloud/contentdex/internal/domain/content"
	"github.com/kailas-cloud/contentdex/internal/domain/search/query"
	"github.com/kailas-cloud/contentdex/internal/domain/search/result"
)

func toDomainRecord(r Record) (domcontent.Record, error) {
	rec, err := domcontent.New(
		r.ID, r.BusinessID, r.FranchiseID,
		domcontent.Type(r.ContentType), r.ContentID, r.Title, r.Content,
		r.Tags, r.Categories,
		domcontent.Metadata{
			Rating:    r.Metadata.Rating,
			Sentiment: domcontent.Sentiment(r.Metadata.Sentiment),
			Language:  r.Metadata.Language,
			Source:    r.Metadata.Source,
			Author:    r.Metadata.Author,
			Custom:    r.Metadata.Custom,
		},
	)
	if err != nil {
		return domcontent.Record{}, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}
	return rec, nil
}

func fromDomainRecord(rec *domcontent.Record) Record {
	meta := rec.Meta()
	return Record{
		ID:          rec.ID(),
		BusinessID:  rec.BusinessID(),
		FranchiseID: rec.FranchiseID(),
		ContentType: string(rec.ContentType()),
		ContentID:   rec.ContentID(),
		Title:       rec.Title(),
		Content:     rec.Body(),
		Tags:        rec.Tags(),
		Categories:  rec.Categories(),
		Metadata: Metadata{
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
}

func fromHit(h *result.Hit) SearchHit {
	return SearchHit{
		Record:    fromDomainRecord(&h.Record),
		Score:     h.Score,
		Franchise: fromRef(h.Franchise),
		Origin:    fromRef(h.Origin),
	}
}

func fromHits(hits []result.Hit) []SearchHit {
	out := make([]SearchHit, len(hits))
	for i := range hits {
		out[i] = fromHit(&hits[i])
	}
	return out
}

func fromRef(ref *domain.Ref) *Ref {
	if ref == nil {
		return nil
	}
	return &Ref{ID: ref.ID, Name: ref.Name, Description: ref.Description}
}

func toParams(q SearchQuery) query.Params {
	return query.Params{
		Query:       q.Query,
		BusinessID:  q.BusinessID,
		FranchiseID: q.FranchiseID,
		ContentType: q.ContentType,
		Tags:        q.Tags,
		Categories:  q.Categories,
		Rating:      intString(q.Rating),
		Sentiment:   q.Sentiment,
		Language:    q.Language,
		Limit:       intString(q.Limit),
		Offset:      intString(q.Offset),
		SortBy:      q.SortBy,
		SortOrder:   q.SortOrder,
	}
}

func intString(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}
