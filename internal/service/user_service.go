package service

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"go-blog-admin/internal/model"
	"go-blog-admin/internal/store"
	"go-blog-admin/pkg/apierror"
)

const (
	bcryptCost        = 12
	minPasswordLength = 8
)

// UserService is the only writer of user records and credentials. Compound
// sequences (create, delete, password change) run under one mutex so that two
// of them never interleave; the stores additionally enforce uniqueness on
// their own.
type UserService struct {
	mu    sync.Mutex
	users store.UserDirectory
	creds store.CredentialStore
}

func NewUserService(users store.UserDirectory, creds store.CredentialStore) *UserService {
	return &UserService{users: users, creds: creds}
}

// Create inserts the user record and its credential as one logical unit: if
// the credential cannot be stored, the user insertion is rolled back so
// neither is visible.
func (s *UserService) Create(ctx context.Context, username string, email string, password string, role string) (model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" {
		return model.User{}, apierror.New("BAD_REQUEST", "username and email are required", "", http.StatusBadRequest)
	}
	if len(password) < minPasswordLength {
		return model.User{}, apierror.New("BAD_REQUEST", "password must be at least 8 characters", "password", http.StatusBadRequest)
	}

	parsedRole, ok := model.ParseRole(role)
	if !ok {
		return model.User{}, apierror.New("BAD_REQUEST", "invalid role", role, http.StatusBadRequest)
	}

	// Hashing is slow on purpose; keep it outside the critical section.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return model.User{}, err
	}

	user := model.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		Role:      parsedRole,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.users.Insert(ctx, user); err != nil {
		return model.User{}, err
	}

	if err := s.creds.Set(ctx, user.ID, string(hash)); err != nil {
		if rbErr := s.users.Remove(ctx, user.ID); rbErr != nil {
			slog.Error("rollback of user insert failed", "user_id", user.ID, "error", rbErr)
		}
		return model.User{}, err
	}

	return user, nil
}

// Delete refuses to remove the last admin. The admin count and the removal
// happen under the service mutex, so two concurrent deletes cannot both pass
// the check.
func (s *UserService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if user.Role == model.RoleAdmin {
		admins, err := s.users.CountAdmins(ctx)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return model.ErrLastAdmin
		}
	}

	if err := s.users.Remove(ctx, id); err != nil {
		return err
	}

	return s.creds.Remove(ctx, id)
}

// ChangePassword re-verifies the old password before accepting the new one.
// There is no path around the check.
func (s *UserService) ChangePassword(ctx context.Context, userID string, oldPassword string, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apierror.New("BAD_REQUEST", "password must be at least 8 characters", "new_password", http.StatusBadRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hash, ok, err := s.creds.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(oldPassword)); err != nil {
		return model.ErrInvalidCredentials
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}

	return s.creds.Set(ctx, userID, string(newHash))
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// Bootstrap seeds the first admin account when the directory is empty, so a
// fresh deployment is never left without an administrator.
func (s *UserService) Bootstrap(ctx context.Context, username string, email string, password string) error {
	existing, err := s.users.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	user, err := s.Create(ctx, username, email, password, string(model.RoleAdmin))
	if err != nil {
		return err
	}

	slog.Info("seeded initial admin account", "user_id", user.ID, "username", user.Username)
	return nil
}
