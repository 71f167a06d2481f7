// Package locale flattens locale-keyed fields into the single-language
// view callers see.
package locale

import "github.com/pleygg/content-api/internal/domain"

// Pick selects the first requested language with a non-empty value,
// falling back to "en". When neither matches, the field resolves to
// the empty string rather than an error.
func Pick(ls domain.LocaleString, languages []string) string {
	for _, lang := range languages {
		if v := ls.Get(lang); v != "" {
			return v
		}
	}
	return ls.Get(domain.DefaultLanguage)
}

// Article returns a copy of the record with Title/Teaser/Body/Slug
// resolved for the requested languages. Projecting an already-flat
// record (empty locale maps) leaves it unchanged, so the projection is
// idempotent.
func Article(a domain.Article, languages []string) domain.Article {
	out := a.Clone()
	if v := Pick(a.LocaleTitle, languages); v != "" {
		out.Title = v
	}
	if v := Pick(a.LocaleTeaser, languages); v != "" {
		out.Teaser = v
	}
	if v := Pick(a.LocaleBody, languages); v != "" {
		out.Body = v
	}
	if v := Pick(a.LocaleSlug, languages); v != "" {
		out.Slug = v
	}
	return out
}

// Articles projects a whole result page.
func Articles(items []domain.Article, languages []string) []domain.Article {
	out := make([]domain.Article, len(items))
	for i, a := range items {
		out[i] = Article(a, languages)
	}
	return out
}
