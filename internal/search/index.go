// Package search defines the search-index collaborator the lifecycle
// engine propagates to. The index holds a denormalized, plain-text
// projection of the article; the primary store remains the source of
// truth.
package search

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pleygg/content-api/internal/domain"
)

// Index is the downstream full-text index.
type Index interface {
	Upsert(ctx context.Context, doc Document) error
	Delete(ctx context.Context, objectID uuid.UUID) error
}

// Document is the indexed projection of an article. Body is
// markup-stripped plain text, never the raw rich document.
type Document struct {
	ObjectID  string    `json:"objectID"`
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Teaser    string    `json:"teaser"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	Body      string    `json:"body"`
	IndexedAt time.Time `json:"indexedAt"`
}

// DocumentFrom projects a localized article into its index document.
func DocumentFrom(a domain.Article) Document {
	return Document{
		ObjectID:  a.ID.String(),
		ID:        a.ID.String(),
		Title:     a.Title,
		Teaser:    a.Teaser,
		Slug:      a.Slug,
		CreatedAt: a.CreatedAt,
		Body:      StripMarkup(a.Body),
		IndexedAt: time.Now().UTC(),
	}
}
