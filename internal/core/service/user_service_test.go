package service

import (
	"context"
	"testing"
	"time"

	"github.com/dinith-rusiru/internExam1/internal/core/domain"
)

func strptr(s string) *string { return &s }

func seedUser(t *testing.T, repo *stubUserRepo, name, email, role string) *domain.User {
	t.Helper()
	now := time.Now().UTC()
	u, err := repo.Create(context.Background(), &domain.User{
		Name: name, Email: email, PasswordHash: "x", Role: role,
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestUserService_List(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)

	seedUser(t, repo, "A", "a@x.com", domain.RoleUser)
	seedUser(t, repo, "B", "b@x.com", domain.RoleAdmin)

	users, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

func TestUserService_Update_Fields(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)

	admin := seedUser(t, repo, "Admin", "admin@x.com", domain.RoleAdmin)
	target := seedUser(t, repo, "Old", "old@x.com", domain.RoleUser)

	updated, err := svc.Update(context.Background(), admin.ID, target.ID, domain.UserPatch{
		Name:  strptr("New"),
		Email: strptr("new@x.com"),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "New" || updated.Email != "new@x.com" {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Role != domain.RoleUser {
		t.Fatalf("role should be unchanged, got %s", updated.Role)
	}
	if !updated.UpdatedAt.After(target.UpdatedAt) {
		t.Fatalf("expected UpdatedAt to advance")
	}
}

func TestUserService_Update_RoleChange(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)

	admin := seedUser(t, repo, "Admin", "admin@x.com", domain.RoleAdmin)
	target := seedUser(t, repo, "U", "u@x.com", domain.RoleUser)

	updated, err := svc.Update(context.Background(), admin.ID, target.ID, domain.UserPatch{Role: strptr(domain.RoleAdmin)})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", updated.Role)
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)
	admin := seedUser(t, repo, "Admin", "admin@x.com", domain.RoleAdmin)

	if _, err := svc.Update(context.Background(), admin.ID, "missing", domain.UserPatch{Name: strptr("X")}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Update_InvalidRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)
	admin := seedUser(t, repo, "Admin", "admin@x.com", domain.RoleAdmin)
	target := seedUser(t, repo, "U", "u@x.com", domain.RoleUser)

	if _, err := svc.Update(context.Background(), admin.ID, target.ID, domain.UserPatch{Role: strptr("root")}); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserService_Update_SelfRoleChangeRejected(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)
	admin := seedUser(t, repo, "Admin", "admin@x.com", domain.RoleAdmin)

	if _, err := svc.Update(context.Background(), admin.ID, admin.ID, domain.UserPatch{Role: strptr(domain.RoleUser)}); err != domain.ErrSelfAction {
		t.Fatalf("expected ErrSelfAction, got %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), admin.ID)
	if stored.Role != domain.RoleAdmin {
		t.Fatalf("role must be unchanged after rejected self-demotion, got %s", stored.Role)
	}

	// Re-asserting the current role is not a change and may pass through.
	if _, err := svc.Update(context.Background(), admin.ID, admin.ID, domain.UserPatch{Role: strptr(domain.RoleAdmin), Name: strptr("Renamed")}); err != nil {
		t.Fatalf("same-role self update should succeed: %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)
	admin := seedUser(t, repo, "Admin", "admin@x.com", domain.RoleAdmin)
	target := seedUser(t, repo, "U", "u@x.com", domain.RoleUser)

	if err := svc.Delete(context.Background(), admin.ID, target.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), target.ID); err != domain.ErrUserNotFound {
		t.Fatalf("user should be gone, got %v", err)
	}
}

func TestUserService_Delete_SelfRejected(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)
	admin := seedUser(t, repo, "Admin", "admin@x.com", domain.RoleAdmin)

	if err := svc.Delete(context.Background(), admin.ID, admin.ID); err != domain.ErrSelfAction {
		t.Fatalf("expected ErrSelfAction, got %v", err)
	}
	if _, err := repo.FindByID(context.Background(), admin.ID); err != nil {
		t.Fatalf("admin must still exist: %v", err)
	}
}

func TestUserService_Delete_MissingIDSucceeds(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)
	admin := seedUser(t, repo, "Admin", "admin@x.com", domain.RoleAdmin)

	// The store's contract is delete-if-exists, so an unknown id is success.
	if err := svc.Delete(context.Background(), admin.ID, "never-existed"); err != nil {
		t.Fatalf("expected idempotent success, got %v", err)
	}
}
