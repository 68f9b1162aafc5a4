package handler

import (
	"github.com/oncallhq/user-directory/internal/core/domain"
	"github.com/oncallhq/user-directory/internal/core/pagination"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// fieldErrorResponse is the aggregated per-field envelope the profile update
// returns when several fields fail at once.
type fieldErrorResponse struct {
	Success bool              `json:"success"`
	Errors  map[string]string `json:"errors"`
}

// --- Request / Response types ---

// The directory contract is camelCase JSON. Field presence rules live in the
// services; the transport types bind the payload verbatim.

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type listUsersResponse struct {
	Success    bool                `json:"success"`
	Users      []domain.PublicUser `json:"users"`
	TotalCount int                 `json:"totalCount"`
}

// searchCriteria echoes back the filters exactly as the caller supplied them.
type searchCriteria struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type searchUsersResponse struct {
	Success        bool                `json:"success"`
	Users          []domain.PublicUser `json:"users"`
	TotalCount     int                 `json:"totalCount"`
	SearchCriteria searchCriteria      `json:"searchCriteria"`
}

type getUserResponse struct {
	Success bool              `json:"success"`
	User    domain.PublicUser `json:"user"`
}

type mutateUserResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	User    domain.PublicUser `json:"user"`
}

type deleteUserResponse struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message"`
	DeletedUser domain.PublicUser `json:"deletedUser"`
}

type listPoliciesResponse struct {
	Success            bool                      `json:"success"`
	EscalationPolicies []domain.EscalationPolicy `json:"escalationPolicies"`
	Pagination         pagination.Page           `json:"pagination"`
}
