package users

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"storekeeper-backend/internal/platform/db"
	"storekeeper-backend/internal/platform/rest"
)

func apiCode(t *testing.T, err error) rest.Code {
	t.Helper()
	var api *rest.Error
	if !errors.As(err, &api) {
		t.Fatalf("expected *rest.Error, got %v", err)
	}
	return api.Code
}

func TestCreateAndGetUser(t *testing.T) {
	svc := NewService(db.NewTestDB(t))
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateUserRequest{Username: "alice", Password: "secret", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == 0 {
		t.Error("expected assigned id")
	}

	got, err := svc.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Username != "alice" || got.Email != "alice@example.com" {
		t.Errorf("unexpected user: %+v", got)
	}
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc := NewService(db.NewTestDB(t))
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateUserRequest{Username: "bob", Password: "hunter2", Email: "bob@example.com"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	raw, err := svc.FindByUsername(ctx, "bob")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if raw.PasswordHash == "hunter2" {
		t.Fatal("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(raw.PasswordHash), []byte("hunter2")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	svc := NewService(db.NewTestDB(t))
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateUserRequest{Username: "carol", Password: "pw", Email: "c@example.com"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := svc.Create(ctx, CreateUserRequest{Username: "carol", Password: "pw2", Email: "c2@example.com"})
	if code := apiCode(t, err); code != rest.CodeConflict {
		t.Errorf("expected CONFLICT, got %s", code)
	}
}

func TestUpdateUserPartial(t *testing.T) {
	svc := NewService(db.NewTestDB(t))
	ctx := context.Background()

	u, _ := svc.Create(ctx, CreateUserRequest{Username: "dave", Password: "pw", Email: "d@example.com"})

	email := "new@example.com"
	got, err := svc.Update(ctx, u.ID, UpdateUserRequest{Email: &email})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Email != "new@example.com" {
		t.Errorf("expected updated email, got %q", got.Email)
	}
	// 触っていないフィールドは据え置き
	if got.Username != "dave" {
		t.Errorf("username changed unexpectedly: %q", got.Username)
	}
}

func TestUpdateUserPassword(t *testing.T) {
	conn := db.NewTestDB(t)
	svc := NewService(conn)
	ctx := context.Background()

	u, _ := svc.Create(ctx, CreateUserRequest{Username: "erin", Password: "old", Email: "e@example.com"})

	pw := "newpass"
	if _, err := svc.Update(ctx, u.ID, UpdateUserRequest{Password: &pw}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	raw, _ := svc.FindByUsername(ctx, "erin")
	if err := bcrypt.CompareHashAndPassword([]byte(raw.PasswordHash), []byte("newpass")); err != nil {
		t.Errorf("new password not accepted: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(raw.PasswordHash), []byte("old")); err == nil {
		t.Error("old password still accepted")
	}
}

func TestUpdateUserNotFound(t *testing.T) {
	svc := NewService(db.NewTestDB(t))

	name := "ghost"
	_, err := svc.Update(context.Background(), 999, UpdateUserRequest{Username: &name})
	if code := apiCode(t, err); code != rest.CodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", code)
	}
}

func TestDeleteUser(t *testing.T) {
	svc := NewService(db.NewTestDB(t))
	ctx := context.Background()

	u, _ := svc.Create(ctx, CreateUserRequest{Username: "frank", Password: "pw", Email: "f@example.com"})
	if err := svc.Delete(ctx, u.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, err := svc.Get(ctx, u.ID)
	if code := apiCode(t, err); code != rest.CodeNotFound {
		t.Errorf("expected NOT_FOUND after delete, got %s", code)
	}

	if err := svc.Delete(ctx, u.ID); apiCode(t, err) != rest.CodeNotFound {
		t.Error("expected NOT_FOUND on second delete")
	}
}
