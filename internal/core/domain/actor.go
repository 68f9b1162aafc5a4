package domain

// Actor is the authenticated identity attempting an operation. It is an
// immutable value resolved once per request from the session; nothing mutates
// it mid-request.
type Actor struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// IsAdmin reports whether the actor carries the ADMIN role.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

// Caller pairs the optional actor with the session's authenticated flag. The
// flag is kept separate from actor presence; both must hold for the request
// to count as authenticated.
type Caller struct {
	Actor         *Actor
	Authenticated bool
}

// IsAuthenticated reports whether an actor is present and the session flagged
// it authenticated.
func (c Caller) IsAuthenticated() bool {
	return c.Actor != nil && c.Authenticated
}
