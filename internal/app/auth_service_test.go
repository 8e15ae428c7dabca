package app

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"echome-server/internal/pkg/jwtutil"
)

func newTestAuthService() (*AuthService, *fakeUserStore) {
	users := newFakeUserStore()
	return NewAuthService(users, "test-secret", time.Hour), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, users := newTestAuthService()

	result, err := svc.Register(RegisterInput{
		Name:     "Ada",
		Email:    "Ada@Example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if result.User.Email != "ada@example.com" {
		t.Fatalf("expected lowercased email, got %s", result.User.Email)
	}
	if result.User.PasswordHash == "hunter2hunter2" {
		t.Fatal("password stored in plaintext")
	}
	stored, _ := users.GetByEmail("ada@example.com")
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter2hunter2")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	claims, err := jwtutil.ParseToken("test-secret", result.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != result.User.ID {
		t.Fatalf("token user id mismatch: %d vs %d", claims.UserID, result.User.ID)
	}

	login, err := svc.Login(LoginInput{Email: "ada@example.com", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if login.User.ID != result.User.ID {
		t.Fatal("login resolved a different user")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, err := svc.Register(RegisterInput{Name: "A", Email: "a@example.com", Password: "passwordpw"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(RegisterInput{Name: "B", Email: "a@example.com", Password: "otherpassword"}); err != ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	svc, _ := newTestAuthService()
	if _, err := svc.Register(RegisterInput{Email: "a@example.com"}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newTestAuthService()
	if _, err := svc.Login(LoginInput{Email: "none@example.com", Password: "whatever"}); err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()
	if _, err := svc.Register(RegisterInput{Name: "A", Email: "a@example.com", Password: "correct-horse"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Login(LoginInput{Email: "a@example.com", Password: "wrong-horse"}); err != ErrInvalidCredential {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}
