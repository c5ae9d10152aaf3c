package service

import (
	"context"
	"errors"
	"testing"

	dom "github.com/Collinul/home-task-management-sub001/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

func TestUserServiceRegister(t *testing.T) {
	t.Run("hashes the password", func(t *testing.T) {
		var gotHash string
		users := &fakeUserRepo{
			CreateFn: func(_ context.Context, name, email, passwordHash string) (dom.User, error) {
				gotHash = passwordHash
				return dom.User{ID: 1, Name: name, Email: email}, nil
			},
		}
		svc := NewUserService(users)

		u, err := svc.Register(context.Background(), " Ana ", " ana@example.com ", "correct horse")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if u.Name != "Ana" || u.Email != "ana@example.com" {
			t.Errorf("user = %+v, want trimmed fields", u)
		}
		if gotHash == "correct horse" {
			t.Fatal("password stored in plain text")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(gotHash), []byte("correct horse")); err != nil {
			t.Errorf("stored hash does not verify: %v", err)
		}
	})

	t.Run("short password", func(t *testing.T) {
		svc := NewUserService(&fakeUserRepo{})
		if _, err := svc.Register(context.Background(), "Ana", "ana@example.com", "short"); !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("Register() error = %v, want ErrWeakPassword", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := &fakeUserRepo{
			CreateFn: func(_ context.Context, name, email, passwordHash string) (dom.User, error) {
				return dom.User{}, &pgconn.PgError{Code: "23505"}
			},
		}
		svc := NewUserService(users)
		if _, err := svc.Register(context.Background(), "Ana", "ana@example.com", "longenough"); !errors.Is(err, ErrUserExists) {
			t.Fatalf("Register() error = %v, want ErrUserExists", err)
		}
	})

	t.Run("blank fields", func(t *testing.T) {
		svc := NewUserService(&fakeUserRepo{})
		if _, err := svc.Register(context.Background(), "  ", "ana@example.com", "longenough"); !errors.Is(err, ErrValidation) {
			t.Fatalf("Register() error = %v, want ErrValidation", err)
		}
	})
}

func TestUserServiceValidateCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("opensesame"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	users := &fakeUserRepo{
		GetByEmailFn: func(_ context.Context, email string) (dom.User, error) {
			if email == "ana@example.com" {
				return dom.User{ID: 1, Email: email, PasswordHash: string(hash)}, nil
			}
			return dom.User{}, pgx.ErrNoRows
		},
	}
	svc := NewUserService(users)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "ana@example.com", "opensesame", nil},
		{"wrong password", "ana@example.com", "guess", ErrInvalidCredentials},
		{"unknown email", "bob@example.com", "opensesame", ErrInvalidCredentials},
		{"empty password", "ana@example.com", "", ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := svc.ValidateCredentials(context.Background(), tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateCredentials() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && u.ID != 1 {
				t.Errorf("user = %+v, want ID 1", u)
			}
		})
	}
}
