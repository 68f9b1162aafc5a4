package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/oncallhq/user-directory/internal/core/access"
	"github.com/oncallhq/user-directory/internal/core/domain"
	"github.com/oncallhq/user-directory/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, other := range r.users {
		if other.Email == user.Email && other.ID != user.ID {
			return nil, domain.ErrEmailExists
		}
	}
	saved := cloneUser(user)
	if saved.ID == "" {
		r.nextID++
		saved.ID = fmt.Sprintf("u%d", r.nextID)
	}
	r.users[saved.ID] = cloneUser(saved)
	return saved, nil
}

func (r *stubUserRepo) Delete(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, user.ID)
	return nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type stubHasher struct{}

func (stubHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }

func (stubHasher) Verify(plaintext, hash string) bool { return hash == "hashed:"+plaintext }

func seedUser(r *stubUserRepo, id, email, name, role string) {
	r.users[id] = &domain.User{
		ID:           id,
		Email:        email,
		Name:         name,
		PasswordHash: "hashed:secret",
		Role:         role,
	}
}

func admin(id string) domain.Caller {
	return domain.Caller{Actor: &domain.Actor{ID: id, Role: domain.RoleAdmin}, Authenticated: true}
}

func regular(id string) domain.Caller {
	return domain.Caller{Actor: &domain.Actor{ID: id, Role: domain.RoleUser}, Authenticated: true}
}

func newUserService(repo *stubUserRepo) *UserService {
	return NewUserService(repo, stubHasher{}, zerolog.Nop())
}

func TestUserService_List(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "1", "admin@example.com", "Admin User", domain.RoleAdmin)
	seedUser(repo, "2", "user@example.com", "Regular User", domain.RoleUser)
	svc := newUserService(repo)

	users, err := svc.List(context.Background(), regular("2"))
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

func TestUserService_List_Anonymous(t *testing.T) {
	svc := newUserService(newStubUserRepo())
	if _, err := svc.List(context.Background(), domain.Caller{}); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestUserService_Search_AdminOnly(t *testing.T) {
	svc := newUserService(newStubUserRepo())
	_, err := svc.Search(context.Background(), regular("2"), ports.SearchFilters{})
	var forbidden *domain.ForbiddenError
	if !errors.As(err, &forbidden) || forbidden.Reason != access.ReasonAdminRequired {
		t.Fatalf("expected admin-required denial, got %v", err)
	}
}

func TestUserService_Search_NoFiltersReturnsAll(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "1", "admin@example.com", "Admin User", domain.RoleAdmin)
	seedUser(repo, "2", "user@example.com", "Regular User", domain.RoleUser)
	svc := newUserService(repo)

	users, err := svc.Search(context.Background(), admin("1"), ports.SearchFilters{Email: "  ", Name: ""})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected all users, got %d", len(users))
	}
}

func TestUserService_Search_RoleFilterCaseInsensitive(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "1", "admin@example.com", "Admin User", domain.RoleAdmin)
	seedUser(repo, "2", "user@example.com", "Regular User", domain.RoleUser)
	svc := newUserService(repo)

	users, err := svc.Search(context.Background(), admin("1"), ports.SearchFilters{Role: "admin"})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(users) != 1 || users[0].Role != domain.RoleAdmin {
		t.Fatalf("expected only the admin record, got %+v", users)
	}
}

func TestUserService_Search_FiltersCombineWithAnd(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "1", "admin@example.com", "Admin User", domain.RoleAdmin)
	seedUser(repo, "2", "other@example.com", "Admin Impostor", domain.RoleUser)
	svc := newUserService(repo)

	users, err := svc.Search(context.Background(), admin("1"), ports.SearchFilters{Name: "Admin", Role: "ADMIN"})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(users) != 1 || users[0].ID != "1" {
		t.Fatalf("expected only record 1, got %+v", users)
	}
}

func TestUserService_Get_SelfAndOther(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "2", "user@example.com", "Regular User", domain.RoleUser)
	seedUser(repo, "3", "third@example.com", "Third User", domain.RoleUser)
	svc := newUserService(repo)

	user, err := svc.Get(context.Background(), regular("2"), "2")
	if err != nil {
		t.Fatalf("self read failed: %v", err)
	}
	if user.Email != "user@example.com" {
		t.Fatalf("unexpected record: %+v", user)
	}

	_, err = svc.Get(context.Background(), regular("2"), "3")
	var forbidden *domain.ForbiddenError
	if !errors.As(err, &forbidden) || forbidden.Reason != access.ReasonViewOwnProfile {
		t.Fatalf("expected view-own-profile denial, got %v", err)
	}
}

func TestUserService_Get_NotFound(t *testing.T) {
	svc := newUserService(newStubUserRepo())
	if _, err := svc.Get(context.Background(), admin("1"), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Create_ValidationOrder(t *testing.T) {
	svc := newUserService(newStubUserRepo())
	caller := admin("1")

	cases := []struct {
		input   ports.CreateUserInput
		message string
	}{
		{ports.CreateUserInput{}, "Email is required"},
		{ports.CreateUserInput{Email: "a@b.com"}, "Password is required"},
		{ports.CreateUserInput{Email: "a@b.com", Password: "pw"}, "Name is required"},
		{ports.CreateUserInput{Email: "a@b.com", Password: "pw", Name: "A"}, "Role is required"},
		{ports.CreateUserInput{Email: "a@b.com", Password: "pw", Name: "A", Role: "ROOT"}, "Role must be either USER or ADMIN"},
	}
	for _, tc := range cases {
		_, err := svc.Create(context.Background(), caller, tc.input)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) || ve.Message != tc.message {
			t.Fatalf("input %+v: expected %q, got %v", tc.input, tc.message, err)
		}
	}
}

func TestUserService_Create_NonAdminDenied(t *testing.T) {
	svc := newUserService(newStubUserRepo())
	_, err := svc.Create(context.Background(), regular("2"), ports.CreateUserInput{
		Email: "new@example.com", Password: "pw", Name: "New", Role: domain.RoleUser,
	})
	var forbidden *domain.ForbiddenError
	if !errors.As(err, &forbidden) || forbidden.Reason != access.ReasonAdminRequired {
		t.Fatalf("expected admin-required denial, got %v", err)
	}
}

func TestUserService_Create_DuplicateEmailCaseInsensitive(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "2", "user@example.com", "Regular User", domain.RoleUser)
	svc := newUserService(repo)

	_, err := svc.Create(context.Background(), admin("1"), ports.CreateUserInput{
		Email: "  USER@Example.COM ", Password: "pw", Name: "Dup", Role: domain.RoleUser,
	})
	if !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestUserService_Create_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	user, err := svc.Create(context.Background(), admin("1"), ports.CreateUserInput{
		Email:    "  New.User@Example.com ",
		Password: "pw123",
		Name:     "  New User ",
		Role:     " user ",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.Email != "new.user@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Name != "New User" {
		t.Fatalf("name not trimmed: %q", user.Name)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("role not normalized: %q", user.Role)
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set: %+v", user)
	}

	stored := repo.users[user.ID]
	if stored == nil || !strings.HasPrefix(stored.PasswordHash, "hashed:") {
		t.Fatalf("password not hashed: %+v", stored)
	}
}

func TestUserService_Update_NoFields(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "2", "user@example.com", "Regular User", domain.RoleUser)
	svc := newUserService(repo)

	_, err := svc.Update(context.Background(), regular("2"), "2", ports.UpdateUserInput{Name: "   "})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Message != "No valid fields provided for update" {
		t.Fatalf("expected no-valid-fields error, got %v", err)
	}
}

func TestUserService_Update_RoleChangeByUserDenied(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "2", "user@example.com", "Regular User", domain.RoleUser)
	svc := newUserService(repo)

	// Denied regardless of the other fields' validity.
	_, err := svc.Update(context.Background(), regular("2"), "2", ports.UpdateUserInput{
		Email: "not-even-checked", Role: domain.RoleAdmin,
	})
	var forbidden *domain.ForbiddenError
	if !errors.As(err, &forbidden) || forbidden.Reason != access.ReasonRoleChange {
		t.Fatalf("expected role-change denial, got %v", err)
	}
	if repo.users["2"].Role != domain.RoleUser {
		t.Fatalf("record mutated despite denial")
	}
}

func TestUserService_Update_EmailCollision(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "1", "admin@example.com", "Admin User", domain.RoleAdmin)
	seedUser(repo, "2", "user@example.com", "Regular User", domain.RoleUser)
	svc := newUserService(repo)

	_, err := svc.Update(context.Background(), admin("1"), "2", ports.UpdateUserInput{Email: "Admin@Example.com"})
	if !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	// Re-submitting the record's own address is not a collision.
	if _, err := svc.Update(context.Background(), admin("1"), "2", ports.UpdateUserInput{Email: "user@example.com"}); err != nil {
		t.Fatalf("own email rejected: %v", err)
	}
}

func TestUserService_Update_Fields(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "2", "user@example.com", "Regular User", domain.RoleUser)
	svc := newUserService(repo)

	user, err := svc.Update(context.Background(), admin("1"), "2", ports.UpdateUserInput{
		Name:     " Renamed ",
		Role:     "admin",
		Password: "newpass",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if user.Name != "Renamed" || user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected projection: %+v", user)
	}
	if repo.users["2"].PasswordHash != "hashed:newpass" {
		t.Fatalf("password not re-hashed: %q", repo.users["2"].PasswordHash)
	}
	if user.UpdatedAt.IsZero() {
		t.Fatalf("updatedAt not refreshed")
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc := newUserService(newStubUserRepo())
	if _, err := svc.Update(context.Background(), admin("1"), "missing", ports.UpdateUserInput{Name: "X"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete_SelfForbiddenStoreUnchanged(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "1", "admin@example.com", "Admin User", domain.RoleAdmin)
	seedUser(repo, "2", "user@example.com", "Regular User", domain.RoleUser)
	svc := newUserService(repo)

	before, _ := repo.Count(context.Background())
	_, err := svc.Delete(context.Background(), admin("1"), "1")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Message != access.ReasonSelfDelete {
		t.Fatalf("expected self-delete denial, got %v", err)
	}
	after, _ := repo.Count(context.Background())
	if before != after {
		t.Fatalf("store changed: before=%d after=%d", before, after)
	}
}

func TestUserService_Delete_ByUserDenied(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "2", "user@example.com", "Regular User", domain.RoleUser)
	seedUser(repo, "3", "third@example.com", "Third User", domain.RoleUser)
	svc := newUserService(repo)

	_, err := svc.Delete(context.Background(), regular("2"), "3")
	var forbidden *domain.ForbiddenError
	if !errors.As(err, &forbidden) || forbidden.Reason != access.ReasonAdminRequired {
		t.Fatalf("expected admin-required denial, got %v", err)
	}
}

func TestUserService_Delete_ReturnsSnapshot(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "1", "admin@example.com", "Admin User", domain.RoleAdmin)
	seedUser(repo, "2", "user@example.com", "Regular User", domain.RoleUser)
	svc := newUserService(repo)

	snapshot, err := svc.Delete(context.Background(), admin("1"), "2")
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if snapshot.ID != "2" || snapshot.Email != "user@example.com" {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}
	if _, ok := repo.users["2"]; ok {
		t.Fatalf("record still present after delete")
	}
}
