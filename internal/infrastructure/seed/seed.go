// Package seed creates the initial directory records on a fresh store.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/oncallhq/user-directory/internal/core/domain"
	"github.com/oncallhq/user-directory/internal/core/ports"
)

type Seeder struct {
	repo   ports.UserRepository
	hasher ports.CredentialHasher
	logger zerolog.Logger
}

func NewSeeder(repo ports.UserRepository, hasher ports.CredentialHasher, logger zerolog.Logger) *Seeder {
	return &Seeder{repo: repo, hasher: hasher, logger: logger}
}

type seedUser struct {
	email    string
	name     string
	password string
	role     string
}

var initialUsers = []seedUser{
	{email: "admin@example.com", name: "Admin User", password: "admin123", role: domain.RoleAdmin},
	{email: "user@example.com", name: "Regular User", password: "user123", role: domain.RoleUser},
	{email: "test@test.com", name: "Test User", password: "test123", role: domain.RoleUser},
}

// Run populates the store with the initial users when it is empty. A
// non-empty store is left untouched.
func (s *Seeder) Run(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		s.logger.Debug().Int64("count", count).Msg("store already populated, skipping seed")
		return nil
	}

	now := time.Now().UTC()
	for _, su := range initialUsers {
		hash, err := s.hasher.Hash(su.password)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		user := &domain.User{
			Email:        su.email,
			Name:         su.name,
			PasswordHash: hash,
			Role:         su.role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if _, err := s.repo.Save(ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", su.email, err)
		}
		s.logger.Info().Str("email", su.email).Str("role", su.role).Msg("seed user created")
	}
	return nil
}
