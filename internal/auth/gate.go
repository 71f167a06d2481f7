package auth

import (
	"context"

	"github.com/pleygg/content-api/internal/apperr"
)

// Gate decides allow/deny for an operation. It is a pure decision
// function over the supplied actor state; fetching that state is the
// oracle's job.
type Gate struct {
	oracle Oracle
}

func NewGate(oracle Oracle) *Gate {
	return &Gate{oracle: oracle}
}

// Authorize runs the three admin-surface checks as sequential
// short-circuits, in fixed order, so the most specific error surfaces
// first: authenticated, then admin type, then the permission lookup.
// Mutations are never permitted on the app surface.
func (g *Gate) Authorize(ctx context.Context, surface Surface, actor *Actor, op Operation, required Permission) error {
	if surface != SurfaceAdmin && op != OpView {
		return apperr.Unauthorized("not available on this surface")
	}

	if actor == nil {
		return apperr.Unauthenticated("not authenticated")
	}
	if actor.Type != ActorAdmin {
		return apperr.Unauthorized("not authorized")
	}

	ok, err := g.oracle.IsPermitted(ctx, *actor, op, required)
	if err != nil {
		return apperr.Upstream("permission lookup failed", err)
	}
	if !ok {
		return apperr.Unauthorized("not authorized")
	}
	return nil
}
