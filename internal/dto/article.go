package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/pleygg/content-api/internal/apperr"
	"github.com/pleygg/content-api/internal/article"
	"github.com/pleygg/content-api/internal/domain"
	"github.com/pleygg/content-api/pkg/pagination"
)

type Image struct {
	URL      string `json:"url,omitempty"`
	Alt      string `json:"alt,omitempty"`
	PublicID string `json:"publicId,omitempty"`
}

type CreateArticleRequest struct {
	LocaleTitle  map[string]string `json:"localeTitle" validate:"required"`
	LocaleTeaser map[string]string `json:"localeTeaser" validate:"required"`
	LocaleBody   map[string]string `json:"localeBody" validate:"required"`

	Image          *Image   `json:"image,omitempty"`
	Status         string   `json:"status,omitempty"`
	Priority       string   `json:"priority,omitempty"`
	PublishedAt    *int64   `json:"publishedAt,omitempty"`
	HashTag        string   `json:"hashTag,omitempty"`
	AuthorUserID   string   `json:"authorUserId,omitempty"`
	TeamMentions   []string `json:"teamMentions,omitempty"`
	PlayerMentions []string `json:"playerMentions,omitempty"`
}

func (r CreateArticleRequest) ToInput() (article.CreateInput, error) {
	in := article.CreateInput{
		LocaleTitle:    domain.LocaleString(r.LocaleTitle),
		LocaleTeaser:   domain.LocaleString(r.LocaleTeaser),
		LocaleBody:     domain.LocaleString(r.LocaleBody),
		Image:          imageToDomain(r.Image),
		PublishedAt:    r.PublishedAt,
		HashTag:        r.HashTag,
		TeamMentions:   r.TeamMentions,
		PlayerMentions: r.PlayerMentions,
	}

	if r.Status != "" {
		status, err := domain.ParseStatus(r.Status)
		if err != nil {
			return article.CreateInput{}, apperr.InvalidRequest(err.Error())
		}
		in.Status = &status
	}
	if r.Priority != "" {
		priority, err := domain.ParsePriority(r.Priority)
		if err != nil {
			return article.CreateInput{}, apperr.InvalidRequest(err.Error())
		}
		in.Priority = &priority
	}
	if r.AuthorUserID != "" {
		author, err := uuid.Parse(r.AuthorUserID)
		if err != nil {
			return article.CreateInput{}, apperr.InvalidRequest("invalid authorUserId")
		}
		in.AuthorUserID = &author
	}

	return in, nil
}

type UpdateArticleRequest struct {
	LocaleTitle  map[string]string `json:"localeTitle,omitempty"`
	LocaleTeaser map[string]string `json:"localeTeaser,omitempty"`
	LocaleBody   map[string]string `json:"localeBody,omitempty"`

	Image          *Image   `json:"image,omitempty"`
	Status         string   `json:"status,omitempty"`
	Priority       string   `json:"priority,omitempty"`
	PublishedAt    *int64   `json:"publishedAt,omitempty"`
	HashTag        *string  `json:"hashTag,omitempty"`
	AuthorUserID   string   `json:"authorUserId,omitempty"`
	TeamMentions   []string `json:"teamMentions,omitempty"`
	PlayerMentions []string `json:"playerMentions,omitempty"`
}

func (r UpdateArticleRequest) ToInput(id uuid.UUID) (article.UpdateInput, error) {
	in := article.UpdateInput{
		ID:             id,
		LocaleTitle:    domain.LocaleString(r.LocaleTitle),
		LocaleTeaser:   domain.LocaleString(r.LocaleTeaser),
		LocaleBody:     domain.LocaleString(r.LocaleBody),
		Image:          imageToDomain(r.Image),
		PublishedAt:    r.PublishedAt,
		HashTag:        r.HashTag,
		TeamMentions:   r.TeamMentions,
		PlayerMentions: r.PlayerMentions,
	}

	if r.Status != "" {
		status, err := domain.ParseStatus(r.Status)
		if err != nil {
			return article.UpdateInput{}, apperr.InvalidRequest(err.Error())
		}
		in.Status = &status
	}
	if r.Priority != "" {
		priority, err := domain.ParsePriority(r.Priority)
		if err != nil {
			return article.UpdateInput{}, apperr.InvalidRequest(err.Error())
		}
		in.Priority = &priority
	}
	if r.AuthorUserID != "" {
		author, err := uuid.Parse(r.AuthorUserID)
		if err != nil {
			return article.UpdateInput{}, apperr.InvalidRequest("invalid authorUserId")
		}
		in.AuthorUserID = &author
	}

	return in, nil
}

// Filter mirrors domain.Filter on the wire; values are typed per field
// and rejected at the boundary when they do not fit.
type Filter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

func FiltersToDomain(filters []Filter) ([]domain.Filter, error) {
	if len(filters) == 0 {
		return nil, nil
	}
	out := make([]domain.Filter, 0, len(filters))
	for _, f := range filters {
		df := domain.Filter{
			Field:    domain.Field(f.Field),
			Operator: domain.Operator(f.Operator),
			Value:    f.Value,
		}
		if err := df.Validate(); err != nil {
			return nil, apperr.InvalidRequest(err.Error())
		}
		out = append(out, df)
	}
	return out, nil
}

type Article struct {
	ID uuid.UUID `json:"id"`

	LocaleTitle  map[string]string `json:"localeTitle,omitempty"`
	LocaleTeaser map[string]string `json:"localeTeaser,omitempty"`
	LocaleBody   map[string]string `json:"localeBody,omitempty"`
	LocaleSlug   map[string]string `json:"localeSlug,omitempty"`

	Title  string `json:"title,omitempty"`
	Teaser string `json:"teaser,omitempty"`
	Body   string `json:"body,omitempty"`
	Slug   string `json:"slug,omitempty"`

	Image    *domain.Image `json:"image,omitempty"`
	Priority string        `json:"priority"`
	HashTag  string        `json:"hashTag,omitempty"`

	Status       string `json:"status"`
	PublishedAt  int64  `json:"publishedAt,omitempty"`
	PreviewToken string `json:"previewToken,omitempty"`
	IsDeleted    bool   `json:"isDeleted"`

	AuthorUserID string `json:"authorUserId,omitempty"`
	CreatedBy    string `json:"createdBy,omitempty"`

	TeamMentions   []string `json:"teamMentions,omitempty"`
	PlayerMentions []string `json:"playerMentions,omitempty"`

	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt,omitempty"`
}

func FromArticle(a domain.Article) Article {
	out := Article{
		ID:             a.ID,
		LocaleTitle:    a.LocaleTitle,
		LocaleTeaser:   a.LocaleTeaser,
		LocaleBody:     a.LocaleBody,
		LocaleSlug:     a.LocaleSlug,
		Title:          a.Title,
		Teaser:         a.Teaser,
		Body:           a.Body,
		Slug:           a.Slug,
		Image:          a.Image,
		Priority:       a.Priority.String(),
		HashTag:        a.HashTag,
		Status:         a.Status.String(),
		PublishedAt:    a.PublishedAt,
		PreviewToken:   a.PreviewToken,
		IsDeleted:      a.IsDeleted,
		TeamMentions:   a.TeamMentions,
		PlayerMentions: a.PlayerMentions,
		CreatedAt:      a.CreatedAt,
		LastUpdatedAt:  a.LastUpdatedAt,
	}
	if a.AuthorUserID != uuid.Nil {
		out.AuthorUserID = a.AuthorUserID.String()
	}
	if a.CreatedBy != uuid.Nil {
		out.CreatedBy = a.CreatedBy.String()
	}
	return out
}

func FromPage(page *pagination.Result[domain.Article]) *pagination.Result[Article] {
	return pagination.Map(page, FromArticle)
}

func imageToDomain(img *Image) *domain.Image {
	if img == nil {
		return nil
	}
	return &domain.Image{
		URL:      img.URL,
		Alt:      img.Alt,
		PublicID: img.PublicID,
	}
}
