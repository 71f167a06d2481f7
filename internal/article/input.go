package article

import (
	"github.com/google/uuid"

	"github.com/pleygg/content-api/internal/auth"
	"github.com/pleygg/content-api/internal/domain"
	"github.com/pleygg/content-api/pkg/pagination"
)

// Caller is the per-request context an operation runs under.
type Caller struct {
	Surface   auth.Surface
	Actor     *auth.Actor
	Languages []string
}

func (c Caller) languages() []string {
	if len(c.Languages) == 0 {
		return []string{domain.DefaultLanguage}
	}
	return c.Languages
}

type ListInput struct {
	Filters    []domain.Filter
	Pagination *pagination.Request
}

// GetInput identifies an article by id or, failing that, by slug.
// PreviewToken lets unauthenticated callers view a matching draft.
type GetInput struct {
	ID           *uuid.UUID
	Slug         string
	PreviewToken string
}

type CreateInput struct {
	LocaleTitle  domain.LocaleString
	LocaleTeaser domain.LocaleString
	LocaleBody   domain.LocaleString

	Image          *domain.Image
	Status         *domain.Status
	Priority       *domain.Priority
	PublishedAt    *int64
	HashTag        string
	AuthorUserID   *uuid.UUID
	TeamMentions   []string
	PlayerMentions []string
}

// UpdateInput replaces the supplied fields on the stored record;
// absent fields keep their current values.
type UpdateInput struct {
	ID uuid.UUID

	LocaleTitle  domain.LocaleString
	LocaleTeaser domain.LocaleString
	LocaleBody   domain.LocaleString

	Image          *domain.Image
	Status         *domain.Status
	Priority       *domain.Priority
	PublishedAt    *int64
	HashTag        *string
	AuthorUserID   *uuid.UUID
	TeamMentions   []string
	PlayerMentions []string
}
