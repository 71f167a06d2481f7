package auth

import (
	"fmt"

	"github.com/google/uuid"
)

// Surface is the caller context an operation runs under. It decides
// which operations and visibility rules apply.
type Surface string

const (
	SurfaceAdmin Surface = "admin"
	SurfaceApp   Surface = "app"
)

func ParseSurface(s string) (Surface, error) {
	switch sf := Surface(s); sf {
	case SurfaceAdmin, SurfaceApp:
		return sf, nil
	default:
		return "", fmt.Errorf("invalid surface: %q", s)
	}
}

// ActorType distinguishes admin users from regular app users.
type ActorType string

const (
	ActorAdmin ActorType = "ADMIN"
	ActorUser  ActorType = "USER"
)

// Actor is an authenticated caller as resolved by the authentication
// oracle.
type Actor struct {
	ID   uuid.UUID
	Type ActorType
	Role string
}

// Operation is the kind of access being attempted.
type Operation string

const (
	OpView   Operation = "VIEW"
	OpCreate Operation = "CREATE"
	OpUpdate Operation = "UPDATE"
	OpDelete Operation = "DELETE"
)

// Permission names a grantable capability.
type Permission string

const (
	PermArticleView   Permission = "ARTICLE_VIEW"
	PermArticleCreate Permission = "ARTICLE_CREATE"
	PermArticleUpdate Permission = "ARTICLE_UPDATE"
	PermArticleDelete Permission = "ARTICLE_DELETE"
)
