package index

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/contentdex/internal/domain"
	domcontent "github.com/kailas-cloud/contentdex/internal/domain/content"
)

// Service handles the content indexing lifecycle.
type Service struct {
	repo Repository
	now  func() int64
}

// New creates an indexing service.
func New(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  func() int64 { return time.Now().UnixMilli() },
	}
}

// WithClock overrides the timestamp source (tests).
func (s *Service) WithClock(now func() int64) *Service {
	s.now = now
	return s
}

// Create stores a new record, assigning an ID when absent and stamping
// all timestamps. Returns the record ID.
func (s *Service) Create(ctx context.Context, rec *domcontent.Record) (string, error) {
	if rec.ID() == "" {
		rec.SetID(uuid.NewString())
	}
	rec.Stamp(s.now())

	if err := s.repo.Save(ctx, rec); err != nil {
		return "", fmt.Errorf("save record: %w", err)
	}
	return rec.ID(), nil
}

// Update replaces an existing record's fields, preserving its creation
// time and refreshing indexed/updated timestamps.
func (s *Service) Update(ctx context.Context, id string, rec *domcontent.Record) (domcontent.Record, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return domcontent.Record{}, fmt.Errorf("get record: %w", err)
	}

	now := s.now()
	updated := domcontent.Reconstruct(
		id, rec.BusinessID(), rec.FranchiseID(),
		rec.ContentType(), rec.ContentID(), rec.Title(), rec.Body(),
		rec.Tags(), rec.Categories(),
		rec.Meta(), rec.IsActive(),
		now, existing.CreatedAt(), now,
	)

	if err := s.repo.Save(ctx, &updated); err != nil {
		return domcontent.Record{}, fmt.Errorf("save record: %w", err)
	}
	return updated, nil
}

// Delete removes a record permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// Bulk stores a batch of records in one pipelined round-trip. The list
// must be non-empty; storage is never touched otherwise. Returns the
// assigned record IDs in input order.
func (s *Service) Bulk(ctx context.Context, recs []domcontent.Record) ([]string, error) {
	if len(recs) == 0 {
		return nil, fmt.Errorf("empty record list: %w", domain.ErrValidation)
	}

	now := s.now()
	ids := make([]string, len(recs))
	for i := range recs {
		if recs[i].ID() == "" {
			recs[i].SetID(uuid.NewString())
		}
		recs[i].Stamp(now)
		ids[i] = recs[i].ID()
	}

	if err := s.repo.SaveAll(ctx, recs); err != nil {
		return nil, fmt.Errorf("save records: %w", err)
	}
	return ids, nil
}

// AddTags appends tags to a record, skipping ones already present.
// The record is re-stamped even when nothing changed so callers can
// rely on indexed_at reflecting the mutation attempt.
func (s *Service) AddTags(ctx context.Context, id string, tags []string) (domcontent.Record, error) {
	if len(tags) == 0 {
		return domcontent.Record{}, fmt.Errorf("no tags given: %w", domain.ErrValidation)
	}

	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return domcontent.Record{}, fmt.Errorf("get record: %w", err)
	}

	rec.AddTags(tags...)
	rec.Stamp(s.now())

	if err := s.repo.Save(ctx, &rec); err != nil {
		return domcontent.Record{}, fmt.Errorf("save record: %w", err)
	}
	return rec, nil
}

// RemoveTags drops tags from a record; absent tags are ignored.
func (s *Service) RemoveTags(ctx context.Context, id string, tags []string) (domcontent.Record, error) {
	if len(tags) == 0 {
		return domcontent.Record{}, fmt.Errorf("no tags given: %w", domain.ErrValidation)
	}

	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return domcontent.Record{}, fmt.Errorf("get record: %w", err)
	}

	rec.RemoveTags(tags...)
	rec.Stamp(s.now())

	if err := s.repo.Save(ctx, &rec); err != nil {
		return domcontent.Record{}, fmt.Errorf("save record: %w", err)
	}
	return rec, nil
}

// Reindex refreshes a record's indexed_at without changing its fields.
func (s *Service) Reindex(ctx context.Context, id string) (domcontent.Record, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return domcontent.Record{}, fmt.Errorf("get record: %w", err)
	}

	rec.Stamp(s.now())

	if err := s.repo.Save(ctx, &rec); err != nil {
		return domcontent.Record{}, fmt.Errorf("save record: %w", err)
	}
	return rec, nil
}
