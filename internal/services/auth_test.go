package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventadmissions/internal/domain"
)

type fakeHasher struct {
	failCompare bool
}

func (f *fakeHasher) GenerateSalt() (string, error) { return "salt", nil }

func (f *fakeHasher) Hash(salt, password string) (string, error) {
	return "hash:" + salt + ":" + password, nil
}

func (f *fakeHasher) Compare(hash, salt, password string) error {
	if f.failCompare || hash != "hash:"+salt+":"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeIssuer struct {
	lastRoles []string
}

func (f *fakeIssuer) Issue(userID, email string, roles []string, expiry time.Duration) (string, error) {
	f.lastRoles = roles
	return "token-for-" + userID, nil
}

func newAuthFixture() (*mockUserRepository, *mockRoleRepository, *fakeHasher, *fakeIssuer, domain.AuthService) {
	userRepo := &mockUserRepository{users: map[string]*domain.User{}}
	roleRepo := &mockRoleRepository{
		roles: map[string]*domain.Role{
			"member": {ID: "r-member", Code: "member"},
			"admin":  {ID: "r-admin", Code: "admin"},
		},
	}
	hasher := &fakeHasher{}
	issuer := &fakeIssuer{}
	svc := NewAuthService(userRepo, roleRepo, hasher, issuer, time.Hour)
	return userRepo, roleRepo, hasher, issuer, svc
}

func TestAuthService_SignUp(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		role     string
		wantErr  bool
	}{
		{"valid member", "a@example.com", "longenough", "member", false},
		{"valid admin", "b@example.com", "longenough", "admin", false},
		{"unknown role falls back to member", "c@example.com", "longenough", "superuser", false},
		{"invalid email", "not-an-email", "longenough", "member", true},
		{"short password", "d@example.com", "short", "member", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, _, svc := newAuthFixture()
			user, err := svc.SignUp(context.Background(), tt.email, tt.password, "Someone", tt.role)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.ID == "" {
				t.Fatal("user ID not set")
			}
			if user.PasswordHash == "" || user.Salt == "" {
				t.Fatal("credentials not hashed")
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	_, _, _, issuer, svc := newAuthFixture()
	if _, err := svc.SignUp(context.Background(), "m@example.com", "longenough", "Member", "member"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	token, err := svc.Login(context.Background(), "m@example.com", "longenough")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "token-for-user-1" {
		t.Fatalf("token = %s", token)
	}
	if len(issuer.lastRoles) != 2 {
		t.Fatalf("roles in token = %v", issuer.lastRoles)
	}
}

func TestAuthService_Login_wrongPassword(t *testing.T) {
	_, _, _, _, svc := newAuthFixture()
	if _, err := svc.SignUp(context.Background(), "m@example.com", "longenough", "Member", "member"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, err := svc.Login(context.Background(), "m@example.com", "wrongpass"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestAuthService_Login_unknownEmail(t *testing.T) {
	_, _, _, _, svc := newAuthFixture()

	if _, err := svc.Login(context.Background(), "nobody@example.com", "whatever"); err == nil {
		t.Fatal("expected error, got nil")
	}
}
