package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/oncallhq/user-directory/internal/core/access"
	"github.com/oncallhq/user-directory/internal/core/domain"
	"github.com/oncallhq/user-directory/internal/core/ports"
)

// UserService implements ports.UserService. Every operation runs the access
// engine first, then field validation, then store I/O. Validation precedes
// the uniqueness check, and uniqueness precedes persistence; that ordering is
// part of the error contract.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.CredentialHasher
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.CredentialHasher, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, logger: logger}
}

// List returns every record projected to public fields.
func (s *UserService) List(ctx context.Context, caller domain.Caller) ([]domain.PublicUser, error) {
	if err := access.Decide(caller, access.Request{Action: access.ActionListUsers}); err != nil {
		return nil, err
	}

	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return project(users), nil
}

// Search filters the directory with AND semantics across the supplied
// filters. With no filters it behaves exactly like List, apart from the
// stricter access rule.
func (s *UserService) Search(ctx context.Context, caller domain.Caller, filters ports.SearchFilters) ([]domain.PublicUser, error) {
	if err := access.Decide(caller, access.Request{Action: access.ActionSearchUsers}); err != nil {
		return nil, err
	}

	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	trimmed := ports.SearchFilters{
		Email: strings.TrimSpace(filters.Email),
		Name:  strings.TrimSpace(filters.Name),
		Role:  strings.TrimSpace(filters.Role),
	}
	if trimmed.Empty() {
		return project(users), nil
	}

	matched := make([]domain.User, 0, len(users))
	for _, u := range users {
		if matchesFilters(&u, trimmed) {
			matched = append(matched, u)
		}
	}
	return project(matched), nil
}

// Get returns one record by id.
func (s *UserService) Get(ctx context.Context, caller domain.Caller, id string) (*domain.PublicUser, error) {
	if err := access.Decide(caller, access.Request{Action: access.ActionReadUser, TargetID: id}); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pub := user.Public()
	return &pub, nil
}

// Create validates fields in a fixed order, checks email uniqueness, then
// hashes and persists. The store's unique email index remains the
// authoritative guard; the lookup here exists for the better error message.
func (s *UserService) Create(ctx context.Context, caller domain.Caller, input ports.CreateUserInput) (*domain.PublicUser, error) {
	if err := access.Decide(caller, access.Request{Action: access.ActionCreateUser}); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Email) == "" {
		return nil, &domain.ValidationError{Field: "email", Message: "Email is required"}
	}
	if strings.TrimSpace(input.Password) == "" {
		return nil, &domain.ValidationError{Field: "password", Message: "Password is required"}
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, &domain.ValidationError{Field: "name", Message: "Name is required"}
	}
	if strings.TrimSpace(input.Role) == "" {
		return nil, &domain.ValidationError{Field: "role", Message: "Role is required"}
	}
	if !domain.ValidRole(input.Role) {
		return nil, &domain.ValidationError{Field: "role", Message: "Role must be either USER or ADMIN"}
	}

	email := domain.NormalizeEmail(input.Email)
	if existing, err := s.repo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.ErrEmailExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hash,
		Role:         domain.NormalizeRole(input.Role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("actor_id", caller.Actor.ID).Msg("user created")
	pub := created.Public()
	return &pub, nil
}

// Update applies a partial update. A field is present only when non-blank
// after trimming; an update with no present field is rejected. Either every
// validated change commits or none does.
func (s *UserService) Update(ctx context.Context, caller domain.Caller, id string, input ports.UpdateUserInput) (*domain.PublicUser, error) {
	email := strings.TrimSpace(input.Email)
	name := strings.TrimSpace(input.Name)
	role := strings.TrimSpace(input.Role)
	password := strings.TrimSpace(input.Password)

	req := access.Request{Action: access.ActionUpdateUser, TargetID: id, RoleChange: role != ""}
	if err := access.Decide(caller, req); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := false

	if email != "" {
		email = domain.NormalizeEmail(email)
		if existing, err := s.repo.FindByEmail(ctx, email); err == nil && existing != nil && existing.ID != id {
			return nil, domain.ErrEmailExists
		}
		user.Email = email
		updated = true
	}

	if name != "" {
		user.Name = name
		updated = true
	}

	if role != "" {
		if !domain.ValidRole(role) {
			return nil, &domain.ValidationError{Field: "role", Message: "Role must be either USER or ADMIN"}
		}
		user.Role = domain.NormalizeRole(role)
		updated = true
	}

	if password != "" {
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
		updated = true
	}

	if !updated {
		return nil, &domain.ValidationError{Field: "", Message: "No valid fields provided for update"}
	}

	user.UpdatedAt = time.Now().UTC()
	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", saved.ID).Str("actor_id", caller.Actor.ID).Msg("user updated")
	pub := saved.Public()
	return &pub, nil
}

// Delete removes a record and returns a snapshot of its public fields taken
// before removal.
func (s *UserService) Delete(ctx context.Context, caller domain.Caller, id string) (*domain.PublicUser, error) {
	if err := access.Decide(caller, access.Request{Action: access.ActionDeleteUser, TargetID: id}); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot := user.Public()
	if err := s.repo.Delete(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Str("actor_id", caller.Actor.ID).Msg("user deleted")
	return &snapshot, nil
}

// matchesFilters applies every supplied filter with case-insensitive
// substring containment.
func matchesFilters(u *domain.User, f ports.SearchFilters) bool {
	if f.Email != "" && !containsFold(u.Email, f.Email) {
		return false
	}
	if f.Name != "" && !containsFold(u.Name, f.Name) {
		return false
	}
	if f.Role != "" && !containsFold(u.Role, f.Role) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func project(users []domain.User) []domain.PublicUser {
	out := make([]domain.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out
}
