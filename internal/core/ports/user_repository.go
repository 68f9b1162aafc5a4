package ports

import (
	"context"

	"github.com/oncallhq/user-directory/internal/core/domain"
)

// UserRepository defines the persistence contract for directory records. The
// store exclusively owns the record set; the core never caches records.
type UserRepository interface {
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail matches the normalized (lowercase-trimmed) address.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Save inserts when the record has no ID and replaces otherwise.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, user *domain.User) error
	Count(ctx context.Context) (int64, error)
}
