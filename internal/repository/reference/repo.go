package reference

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/contentdex/internal/domain"
	"github.com/kailas-cloud/contentdex/internal/domain/content"
	"github.com/kailas-cloud/contentdex/internal/domain/search/result"
)

// store is the consumer interface for reference lookups (ISP).
type store interface {
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
}

// Repo resolves display references (franchise names, origin record titles)
// from hashes maintained by the owning services. Missing hashes resolve to
// nil rather than errors so listings degrade gracefully.
type Repo struct {
	store store
}

// New creates a reference repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// FranchiseKey is the hash key for a franchise reference.
func FranchiseKey(franchiseID string) string {
	return domain.KeyPrefix + "franchise:" + franchiseID
}

// OriginKey is the hash key for a source record reference.
func OriginKey(contentType content.Type, contentID string) string {
	return domain.KeyPrefix + "origin:" + string(contentType) + ":" + contentID
}

// ResolveFranchises fetches references for the given franchise IDs in one
// pipelined round trip. The result maps franchise ID to its reference;
// IDs without a stored hash are absent from the map.
func (r *Repo) ResolveFranchises(ctx context.Context, ids []string) (map[string]*domain.Ref, error) {
	ids = uniqueNonEmpty(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = FranchiseKey(id)
	}

	rows, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("resolve franchises: %w", err)
	}

	refs := make(map[string]*domain.Ref, len(ids))
	for i, row := range rows {
		if ref := toRef(ids[i], row); ref != nil {
			refs[ids[i]] = ref
		}
	}
	return refs, nil
}

// ResolveOrigins fetches references for the given source records in one
// pipelined round trip. Results are positional; entries without a stored
// hash are nil.
func (r *Repo) ResolveOrigins(ctx context.Context, lookups []content.Origin) ([]*domain.Ref, error) {
	if len(lookups) == 0 {
		return nil, nil
	}

	keys := make([]string, len(lookups))
	for i, l := range lookups {
		keys[i] = OriginKey(l.Type, l.ID)
	}

	rows, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("resolve origins: %w", err)
	}

	refs := make([]*domain.Ref, len(lookups))
	for i, row := range rows {
		refs[i] = toRef(lookups[i].ID, row)
	}
	return refs, nil
}

// Hydrate fills the franchise and origin projections of search hits in
// two pipelined round trips. Hits whose references have no stored hash
// are left with nil projections.
func (r *Repo) Hydrate(ctx context.Context, hits []result.Hit) error {
	if len(hits) == 0 {
		return nil
	}

	franchiseIDs := make([]string, 0, len(hits))
	origins := make([]content.Origin, len(hits))
	for i := range hits {
		franchiseIDs = append(franchiseIDs, hits[i].Record.FranchiseID())
		origins[i] = content.Origin{
			Type: hits[i].Record.ContentType(),
			ID:   hits[i].Record.ContentID(),
		}
	}

	franchises, err := r.ResolveFranchises(ctx, franchiseIDs)
	if err != nil {
		return err
	}
	originRefs, err := r.ResolveOrigins(ctx, origins)
	if err != nil {
		return err
	}

	for i := range hits {
		hits[i].Franchise = franchises[hits[i].Record.FranchiseID()]
		hits[i].Origin = originRefs[i]
	}
	return nil
}

func toRef(id string, fields map[string]string) *domain.Ref {
	if len(fields) == 0 {
		return nil
	}
	return &domain.Ref{
		ID:          id,
		Name:        fields["name"],
		Description: fields["description"],
	}
}

func uniqueNonEmpty(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
