// Package access holds the pure access-control decision logic for the user
// directory. Decide has no side effects and no state, so it is safe under
// arbitrary concurrent use.
package access

import (
	"github.com/oncallhq/user-directory/internal/core/domain"
)

// Action identifies a directory operation being attempted.
type Action int

const (
	ActionListUsers Action = iota
	ActionSearchUsers
	ActionReadUser
	ActionCreateUser
	ActionUpdateUser
	ActionDeleteUser
)

// Deny reasons returned to callers. These strings are contract; tests and
// clients match on them verbatim.
const (
	ReasonAdminRequired  = "Access denied. Admin privileges required."
	ReasonViewOwnProfile = "Access denied. You can only view your own profile."
	ReasonUpdateOwnOnly  = "Access denied. You can only update your own profile."
	ReasonRoleChange     = "Only admins can update user roles"
	ReasonSelfDelete     = "You cannot delete your own account"
)

// Request describes the attempted operation. TargetID is empty for actions
// without a target record. RoleChange marks an update whose field set includes
// a role value, which triggers the admin-only sub-check.
type Request struct {
	Action     Action
	TargetID   string
	RoleChange bool
}

// Decide evaluates (caller, request) and returns nil to allow or a typed
// error to deny. Rules are evaluated in order; the first match wins.
//
// Denials map onto status classes through the error type:
// domain.ErrNotAuthenticated → 401, *domain.ForbiddenError → 403,
// *domain.ValidationError → 400.
func Decide(caller domain.Caller, req Request) error {
	if !caller.IsAuthenticated() {
		return domain.ErrNotAuthenticated
	}
	actor := caller.Actor

	switch req.Action {
	case ActionListUsers:
		// Intentionally open to every authenticated actor.
		return nil

	case ActionSearchUsers, ActionCreateUser:
		if !actor.IsAdmin() {
			return &domain.ForbiddenError{Reason: ReasonAdminRequired}
		}
		return nil

	case ActionReadUser:
		if !actor.IsAdmin() && actor.ID != req.TargetID {
			return &domain.ForbiddenError{Reason: ReasonViewOwnProfile}
		}
		return nil

	case ActionUpdateUser:
		if !actor.IsAdmin() && actor.ID != req.TargetID {
			return &domain.ForbiddenError{Reason: ReasonUpdateOwnOnly}
		}
		if req.RoleChange && !actor.IsAdmin() {
			return &domain.ForbiddenError{Reason: ReasonRoleChange}
		}
		return nil

	case ActionDeleteUser:
		if !actor.IsAdmin() {
			return &domain.ForbiddenError{Reason: ReasonAdminRequired}
		}
		// Self-delete is forbidden even for admins.
		if actor.ID == req.TargetID {
			return &domain.ValidationError{Field: "id", Message: ReasonSelfDelete}
		}
		return nil
	}

	return &domain.ForbiddenError{Reason: ReasonAdminRequired}
}
