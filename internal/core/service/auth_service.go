package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/oncallhq/user-directory/internal/core/domain"
	"github.com/oncallhq/user-directory/internal/core/ports"
)

var validate = validator.New()

// AuthService implements credential verification and the self-service profile
// update. Session lifecycle itself lives at the transport boundary.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.CredentialHasher
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher ports.CredentialHasher, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, logger: logger}
}

// Login verifies the credentials against the stored hash. Unknown address and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	s.logger.Info().Str("user_id", user.ID).Msg("login succeeded")
	return user, nil
}

// UpdateProfile updates the caller's own name, email and password. All three
// fields are required and every failing field is reported at once; the update
// commits all changes or none.
func (s *AuthService) UpdateProfile(ctx context.Context, caller domain.Caller, input ports.UpdateProfileInput) (*domain.PublicUser, error) {
	if !caller.IsAuthenticated() {
		return nil, domain.ErrNotAuthenticated
	}

	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	password := strings.TrimSpace(input.Password)

	fieldErrs := domain.FieldErrors{}

	if name == "" {
		fieldErrs["name"] = "Name is required and cannot be empty"
	}

	switch {
	case email == "":
		fieldErrs["email"] = "Email is required and cannot be empty"
	case validate.Var(email, "email") != nil:
		fieldErrs["email"] = "Please provide a valid email address"
	default:
		normalized := domain.NormalizeEmail(email)
		if existing, err := s.repo.FindByEmail(ctx, normalized); err == nil && existing != nil && existing.ID != caller.Actor.ID {
			fieldErrs["email"] = "Email already exists. Please choose a different email."
		}
	}

	switch {
	case password == "":
		fieldErrs["password"] = "Password is required and cannot be empty"
	case len(password) < 6:
		fieldErrs["password"] = "Password must be at least 6 characters long"
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	user, err := s.repo.FindByID(ctx, caller.Actor.ID)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.Email = domain.NormalizeEmail(email)
	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()

	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", saved.ID).Msg("profile updated")
	pub := saved.Public()
	return &pub, nil
}
