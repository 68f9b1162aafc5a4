package ports

import (
	"context"

	"github.com/oncallhq/user-directory/internal/core/domain"
)

// UpdateProfileInput carries a self-service profile update. Unlike the
// directory update, all three fields are required and failures are reported
// per field, aggregated.
type UpdateProfileInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService verifies credentials and manages the caller's own profile.
type AuthService interface {
	// Login returns the full record on success so the transport layer can
	// establish a session from it. Any mismatch yields ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*domain.User, error)
	UpdateProfile(ctx context.Context, caller domain.Caller, input UpdateProfileInput) (*domain.PublicUser, error)
}
