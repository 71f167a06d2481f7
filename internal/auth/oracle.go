package auth

import "context"

// Oracle is the external authentication/permission collaborator.
// Authenticate resolves a transport token to an actor (nil when the
// token is absent or unknown); IsPermitted answers permission lookups.
type Oracle interface {
	Authenticate(ctx context.Context, surface Surface, token string) (*Actor, error)
	IsPermitted(ctx context.Context, actor Actor, op Operation, permission Permission) (bool, error)
}
