// Package storage declares the primary-store contract the lifecycle
// engine consumes. The store exclusively owns the persisted record;
// the search index and build queue hold derived projections.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pleygg/content-api/internal/domain"
	"github.com/pleygg/content-api/pkg/pagination"
)

// ErrNotFound is returned when no record matches.
var ErrNotFound = errors.New("record not found")

// ListQuery shapes a listing: validated filters plus the normalized
// pagination plan.
type ListQuery struct {
	Filters []domain.Filter
	Page    pagination.Plan
}

// Store is the primary datastore for articles.
type Store interface {
	List(ctx context.Context, q ListQuery) (*pagination.Result[domain.Article], error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	Create(ctx context.Context, article domain.Article, actorID uuid.UUID) (*domain.Article, error)
	Update(ctx context.Context, article domain.Article, actorID uuid.UUID) (*domain.Article, error)
	// DeleteSoft marks the record deleted and clears the named
	// subcollections. It never physically removes the article and is
	// idempotent for already-deleted records.
	DeleteSoft(ctx context.Context, id uuid.UUID, subCollections []string, actorID uuid.UUID) error
	// SlugExists answers slug-uniqueness checks for the issuer.
	SlugExists(ctx context.Context, language, slug string) (bool, error)
}
