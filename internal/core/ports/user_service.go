package ports

import (
	"context"

	"github.com/oncallhq/user-directory/internal/core/domain"
)

// SearchFilters narrows a directory search. A filter participates only when
// non-blank after trimming; supplied filters combine with AND semantics using
// case-insensitive substring containment.
type SearchFilters struct {
	Email string
	Name  string
	Role  string
}

// Empty reports whether no filter was supplied.
func (f SearchFilters) Empty() bool {
	return f.Email == "" && f.Name == "" && f.Role == ""
}

// CreateUserInput carries the fields for a new directory record. All fields
// are required.
type CreateUserInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// UpdateUserInput carries a partial update. A field counts as present only
// when non-blank after trimming.
type UpdateUserInput struct {
	Email    string
	Name     string
	Role     string
	Password string
}

// UserService orchestrates CRUD against the directory, gating every operation
// through the access engine before touching the store.
type UserService interface {
	List(ctx context.Context, caller domain.Caller) ([]domain.PublicUser, error)
	Search(ctx context.Context, caller domain.Caller, filters SearchFilters) ([]domain.PublicUser, error)
	Get(ctx context.Context, caller domain.Caller, id string) (*domain.PublicUser, error)
	Create(ctx context.Context, caller domain.Caller, input CreateUserInput) (*domain.PublicUser, error)
	Update(ctx context.Context, caller domain.Caller, id string, input UpdateUserInput) (*domain.PublicUser, error)
	// Delete returns a snapshot of the removed record's public fields for the
	// caller's confirmation response.
	Delete(ctx context.Context, caller domain.Caller, id string) (*domain.PublicUser, error)
}
