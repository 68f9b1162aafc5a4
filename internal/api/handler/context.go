package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/oncallhq/user-directory/internal/api/middleware"
	"github.com/oncallhq/user-directory/internal/core/domain"
)

// ctxCaller assembles the caller identity injected by the session middleware.
// An unauthenticated request yields a zero Caller rather than an error; the
// access rules decide per operation whether anonymity is acceptable.
func ctxCaller(c echo.Context) domain.Caller {
	actor, _ := c.Get(middleware.ActorKey).(*domain.Actor)
	authenticated, _ := c.Get(middleware.AuthenticatedKey).(bool)
	return domain.Caller{Actor: actor, Authenticated: authenticated}
}

// ctxSessionID returns the resolved session id, or "" when the request
// carried no valid session cookie.
func ctxSessionID(c echo.Context) string {
	id, _ := c.Get(middleware.SessionIDKey).(string)
	return id
}
