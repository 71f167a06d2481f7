package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/pleygg/content-api/internal/apperr"
)

const actorContextKey = "auth.actor"

// Middleware resolves the request's `token` header to an actor and
// stashes it on the echo context. A missing or unknown token yields no
// actor; denying is the access gate's job, not the middleware's.
func Middleware(oracle Oracle, surface Surface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get("token")
			actor, err := oracle.Authenticate(c.Request().Context(), surface, token)
			if err != nil {
				return apperr.Upstream("authentication failed", err)
			}
			if actor != nil {
				c.Set(actorContextKey, actor)
			}
			return next(c)
		}
	}
}

// ActorFrom returns the authenticated actor for the request, or nil.
func ActorFrom(c echo.Context) *Actor {
	actor, _ := c.Get(actorContextKey).(*Actor)
	return actor
}
