package auth

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/library-manager/internal/config"
	"github.com/mrlokans/library-manager/internal/database/users"
	"github.com/mrlokans/library-manager/internal/entities"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewService(users.NewRepository(db), config.Auth{Mode: config.AuthModeLocal, BcryptCost: 10})
}

func TestService_CreateUser(t *testing.T) {
	svc := setupTestService(t)

	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "valid admin user",
			username: "admin",
			email:    "admin@example.com",
			password: "password12345",
			wantErr:  nil,
		},
		{
			name:     "missing username",
			username: "",
			email:    "test@example.com",
			password: "password12345",
			wantErr:  ErrUsernameRequired,
		},
		{
			name:     "missing email",
			username: "testuser",
			email:    "",
			password: "password12345",
			wantErr:  ErrEmailRequired,
		},
		{
			name:     "missing password",
			username: "testuser",
			email:    "test@example.com",
			password: "",
			wantErr:  ErrPasswordRequired,
		},
		{
			name:     "password too short",
			username: "testuser",
			email:    "test@example.com",
			password: "short",
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "username with invalid characters",
			username: "bad user!",
			email:    "test@example.com",
			password: "password12345",
			wantErr:  ErrUsernameInvalid,
		},
		{
			name:     "malformed email",
			username: "testuser",
			email:    "not-an-email",
			password: "password12345",
			wantErr:  ErrEmailInvalid,
		},
		{
			name:     "duplicate username",
			username: "admin",
			email:    "other@example.com",
			password: "password12345",
			wantErr:  ErrUserExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.CreateUser(tt.username, tt.email, tt.password, entities.UserRoleAdmin)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateUser() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr == nil {
				if user == nil || user.ID == 0 {
					t.Error("CreateUser() did not persist the user")
					return
				}
				if user.PasswordHash == tt.password {
					t.Error("CreateUser() stored the plaintext password")
				}
			}
		})
	}
}

func TestService_Authenticate(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.CreateUser("librarian", "librarian@example.com", "password12345", entities.UserRoleLibrarian)
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	t.Run("by username", func(t *testing.T) {
		user, err := svc.Authenticate("librarian", "password12345")
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if user.LastLoginAt == nil {
			t.Error("Authenticate() did not record the login time")
		}
	})

	t.Run("by email", func(t *testing.T) {
		if _, err := svc.Authenticate("librarian@example.com", "password12345"); err != nil {
			t.Errorf("Authenticate() error = %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate("librarian", "wrongpassword12")
		if !errors.Is(err, ErrInvalidPassword) {
			t.Errorf("Authenticate() error = %v, want ErrInvalidPassword", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Authenticate("nobody", "password12345")
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("Authenticate() error = %v, want ErrUserNotFound", err)
		}
	})
}

func TestService_HasUsers(t *testing.T) {
	svc := setupTestService(t)

	hasUsers, err := svc.HasUsers()
	if err != nil {
		t.Fatalf("HasUsers() error = %v", err)
	}
	if hasUsers {
		t.Error("HasUsers() = true for an empty database")
	}

	if _, err := svc.CreateUser("admin", "admin@example.com", "password12345", entities.UserRoleAdmin); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	hasUsers, err = svc.HasUsers()
	if err != nil {
		t.Fatalf("HasUsers() error = %v", err)
	}
	if !hasUsers {
		t.Error("HasUsers() = false after creating a user")
	}
}
