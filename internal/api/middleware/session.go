package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/oncallhq/user-directory/internal/core/domain"
	"github.com/oncallhq/user-directory/internal/infrastructure/session"
)

// Echo context keys populated by ResolveSession.
const (
	ActorKey         = "actor"
	AuthenticatedKey = "authenticated"
	SessionIDKey     = "session_id"
)

// SessionResolver is the slice of the session manager the middleware needs.
type SessionResolver interface {
	Get(ctx context.Context, id string) (*session.Session, error)
}

// ResolveSession resolves the session cookie into an actor and authenticated
// flag on the echo context. It never rejects a request by itself: anonymous
// and broken sessions pass through unresolved, and the access engine denies
// them downstream.
func ResolveSession(resolver SessionResolver, cookie session.CookieConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := cookie.Read(c.Request())
			if id != "" {
				if sess, err := resolver.Get(c.Request().Context(), id); err == nil {
					c.Set(ActorKey, &domain.Actor{ID: sess.UserID, Role: sess.Role})
					c.Set(AuthenticatedKey, sess.Authenticated)
					c.Set(SessionIDKey, sess.ID)
				}
			}
			return next(c)
		}
	}
}
