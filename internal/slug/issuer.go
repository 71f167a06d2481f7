// Package slug derives URL slugs from titles and issues preview tokens.
package slug

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// ScopeChecker answers whether a slug is already taken within a
// collection scope. The primary store is the authority on uniqueness;
// the issuer itself is stateless.
type ScopeChecker interface {
	SlugExists(ctx context.Context, language, slug string) (bool, error)
}

const maxCollisionAttempts = 50

// Generate derives a normalized, URL-safe slug from a title and
// resolves collisions against the existing scope by suffixing -2, -3...
func Generate(ctx context.Context, checker ScopeChecker, title, language string) (string, error) {
	base := Normalize(title)
	if base == "" {
		return "", fmt.Errorf("title %q yields an empty slug", title)
	}

	candidate := base
	for i := 2; ; i++ {
		exists, err := checker.SlugExists(ctx, language, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug %q: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		if i > maxCollisionAttempts {
			return "", fmt.Errorf("could not find a free slug for %q", title)
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// Normalize lowercases the title, maps runs of non-alphanumerics to a
// single hyphen and trims leading/trailing hyphens.
func Normalize(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// IssuePreviewToken produces an opaque token for viewing a draft.
// The token is derived from the current time, so it is guessable and
// not a cryptographic secret; it only gates low-stakes previews.
func IssuePreviewToken() string {
	return base64.StdEncoding.EncodeToString([]byte("time" + time.Now().Format(time.RFC3339Nano)))
}
