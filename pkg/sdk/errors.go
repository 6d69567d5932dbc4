package contentdex

import "github.com/kailas-cloud/contentdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrValidation = domain.ErrValidation
	ErrNotFound   = domain.ErrNotFound
)
