package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

var ErrUserNotFound = errors.New("User not found")
var ErrEmailExists = errors.New("Email already exists")
var ErrInvalidCredentials = errors.New("Invalid email or password")
var ErrNotAuthenticated = errors.New("Not authenticated")

// ForbiddenError is an access denial with a caller-facing reason. The reason
// strings are part of the API contract and must not be reworded.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string { return e.Reason }

// ValidationError rejects a single invalid or missing field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// FieldErrors aggregates per-field validation messages for flows that report
// every failing field at once instead of stopping at the first.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, m := range e {
		msgs = append(msgs, m)
	}
	return strings.Join(msgs, "; ")
}

// User is a directory record. The password hash never leaves the service
// layer; callers only ever see the Public projection.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the outward projection of a User with the credential hash
// stripped.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public strips the credential hash from the record.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NormalizeEmail lowercases and trims an address; emails are stored and
// compared in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeRole trims and uppercases a role value.
func NormalizeRole(role string) string {
	return strings.ToUpper(strings.TrimSpace(role))
}

// ValidRole reports whether role is one of the two known roles after
// normalization.
func ValidRole(role string) bool {
	r := NormalizeRole(role)
	return r == RoleUser || r == RoleAdmin
}
