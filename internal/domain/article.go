package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultLanguage is the only authored locale currently supported.
const DefaultLanguage = "en"

// LocaleString maps a language code to a translated value.
type LocaleString map[string]string

func (ls LocaleString) Get(language string) string {
	if ls == nil {
		return ""
	}
	return ls[language]
}

// Clone returns an independent copy so callers can build new records
// without mutating the input.
func (ls LocaleString) Clone() LocaleString {
	if ls == nil {
		return nil
	}
	out := make(LocaleString, len(ls))
	for k, v := range ls {
		out[k] = v
	}
	return out
}

// Image describes the article's hero asset as stored by the asset CDN.
type Image struct {
	URL             string `json:"url,omitempty"`
	Alt             string `json:"alt,omitempty"`
	PublicID        string `json:"publicId,omitempty"`
	CloudinaryAsset bool   `json:"cloudinaryAssetData,omitempty"`
	CloudName       string `json:"cloudName,omitempty"`
}

// Article is the authoritative record owned by the primary store.
// The flat Title/Teaser/Body/Slug fields are the localized view filled
// in by the locale projector; the Locale* maps hold the authored values.
type Article struct {
	ID uuid.UUID `json:"id"`

	LocaleTitle  LocaleString `json:"localeTitle,omitempty"`
	LocaleTeaser LocaleString `json:"localeTeaser,omitempty"`
	LocaleBody   LocaleString `json:"localeBody,omitempty"`
	LocaleSlug   LocaleString `json:"localeSlug,omitempty"`

	Title  string `json:"title,omitempty"`
	Teaser string `json:"teaser,omitempty"`
	Body   string `json:"body,omitempty"`
	Slug   string `json:"slug,omitempty"`

	Image    *Image   `json:"image,omitempty"`
	Priority Priority `json:"priority"`
	HashTag  string   `json:"hashTag,omitempty"`

	Status       Status `json:"status"`
	PublishedAt  int64  `json:"publishedAt,omitempty"`
	PreviewToken string `json:"previewToken,omitempty"`
	IsDeleted    bool   `json:"isDeleted"`

	AuthorUserID uuid.UUID `json:"authorUserId,omitempty"`
	CreatedBy    uuid.UUID `json:"createdBy,omitempty"`

	TeamMentions   []string `json:"teamMentions,omitempty"`
	PlayerMentions []string `json:"playerMentions,omitempty"`

	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt,omitempty"`
}

// IsLive reports whether the article is visible to unauthenticated
// readers at the given instant. PublishedAt is epoch millis.
func (a *Article) IsLive(nowMillis int64) bool {
	return !a.IsDeleted && a.Status == StatusPublished && a.PublishedAt > 0 && a.PublishedAt <= nowMillis
}

// Clone returns a deep copy of the article.
func (a Article) Clone() Article {
	out := a
	out.LocaleTitle = a.LocaleTitle.Clone()
	out.LocaleTeaser = a.LocaleTeaser.Clone()
	out.LocaleBody = a.LocaleBody.Clone()
	out.LocaleSlug = a.LocaleSlug.Clone()
	if a.Image != nil {
		img := *a.Image
		out.Image = &img
	}
	out.TeamMentions = append([]string(nil), a.TeamMentions...)
	out.PlayerMentions = append([]string(nil), a.PlayerMentions...)
	return out
}

// EpochMillis converts a time to the epoch-millis representation used
// for publishedAt throughout the system.
func EpochMillis(t time.Time) int64 {
	return t.UnixMilli()
}
