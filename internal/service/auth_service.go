package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"go-blog-admin/internal/model"
	"go-blog-admin/internal/store"
	"go-blog-admin/internal/token"
)

// AuthService turns credentials into sessions and bearer tokens back into
// users. Every failure that depends on caller input collapses into
// ErrInvalidCredentials so the response never reveals whether a username
// exists. Storage faults pass through untranslated; "store is down" must not
// read as "wrong password".
type AuthService struct {
	users  store.UserDirectory
	creds  store.CredentialStore
	tokens *token.Service
}

func NewAuthService(users store.UserDirectory, creds store.CredentialStore, tokens *token.Service) *AuthService {
	return &AuthService{users: users, creds: creds, tokens: tokens}
}

// Login matches usernameOrEmail exactly (case-sensitive) and verifies the
// password against the stored bcrypt hash. Nothing is mutated on any failure
// path; lastLogin moves only after the password check passes.
func (s *AuthService) Login(ctx context.Context, usernameOrEmail string, password string) (model.Session, error) {
	user, err := s.users.FindByUsernameOrEmail(ctx, usernameOrEmail)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.Session{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.Session{}, err
	}

	hash, ok, err := s.creds.Get(ctx, user.ID)
	if err != nil {
		return model.Session{}, err
	}
	if !ok {
		// A user without a credential cannot log in; same generic failure.
		return model.Session{}, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return model.Session{}, model.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return model.Session{}, err
	}
	user.LastLogin = &now

	signed, expiresAt, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return model.Session{}, err
	}

	return model.Session{User: user, Token: signed, ExpiresAt: expiresAt}, nil
}

// Verify is the sole gate for protected routes. A token is only good if its
// signature and expiry check out and its subject still resolves to a
// directory record; the role comes back fresh from that record, never from a
// cache.
func (s *AuthService) Verify(ctx context.Context, tokenString string) (model.User, error) {
	claims, ok := s.tokens.Verify(tokenString)
	if !ok {
		return model.User{}, model.ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.User{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, err
	}

	return user, nil
}
